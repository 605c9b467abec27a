// Command bounce-term plays the arena in a terminal. Drag with the left
// mouse button to flick the player.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/bounce/config"
	"github.com/plus3/bounce/scene"
	"github.com/plus3/bounce/sound"
	"github.com/plus3/bounce/term"
)

func main() {
	cfg, err := config.Load("bounce-term", os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var jukebox scene.Jukebox = scene.Silent{}
	if !cfg.Muted {
		jb, err := sound.NewSpeakerJukebox(cfg.MusicPath)
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			defer jb.Close()
			jukebox = jb
		}
	}

	host, err := term.NewHost(cfg, jukebox)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := host.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
