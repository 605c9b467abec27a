// Command bounce opens the arena in a window.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bounce/config"
	"github.com/plus3/bounce/debugui"
	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/gesture"
	"github.com/plus3/bounce/scene"
	"github.com/plus3/bounce/sound"
)

const title = "Bounce"

// app quits on Esc or Q and otherwise defers to the director.
type app struct {
	*scene.Director
}

func (a app) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return a.Director.Update()
}

func main() {
	cfg, err := config.Load("bounce", os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var jukebox scene.Jukebox = scene.Silent{}
	if !cfg.Muted {
		jb, err := sound.NewJukebox(cfg.MusicPath)
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			jukebox = jb
		}
	}

	width, height := int(cfg.Width), int(cfg.Height)
	dir := scene.NewDirector(width, height, cfg.TPS)

	var source gesture.PointerSource = &gesture.EbitenSource{}
	if cfg.Debug {
		overlay := debugui.NewOverlay(debugui.NewImguiBackend(title, width, height), cfg.TPS)
		currentGame := func() *scene.Game {
			g, _ := dir.Current().(*scene.Game)
			return g
		}
		stats := debugui.NewStatsPanel(
			func() (scene.Stats, bool) {
				if g := currentGame(); g != nil {
					return g.Stats(), true
				}
				return scene.Stats{}, false
			},
			func() *ecs.Storage {
				if g := currentGame(); g != nil {
					return g.Storage()
				}
				return nil
			},
		)
		overlay.AddPanel(stats.Render)
		overlay.AddPanel(debugui.NewEntityPanel(currentGame).Render)
		dir.SetOverlay(overlay)
		source = overlay.Guard(source)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetTPS(cfg.TPS)

	dir.Present(scene.NewGame(cfg, jukebox, source), scene.Transition{})

	if err := ebiten.RunGame(app{dir}); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("run: %v", err)
	}
}
