// Command bounce-bench plays headless games with a scripted flicker and
// reports frame timings.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/bounce/config"
	"github.com/plus3/bounce/gesture"
	"github.com/plus3/bounce/physics"
	"github.com/plus3/bounce/scene"
)

// headless records what the game presents instead of showing it.
type headless struct {
	over *scene.GameOver
}

func (h *headless) Present(next scene.Scene, _ scene.Transition) {
	if over, ok := next.(*scene.GameOver); ok {
		h.over = over
	}
}

// flicker drags from the player toward a random monster every few frames.
type flicker struct {
	src    *gesture.ManualSource
	rng    *rand.Rand
	every  int
	frame  int
	from   physics.Vec
	toward physics.Vec
}

func (f *flicker) step(g *scene.Game, sprites []scene.SpriteState) {
	arena := g.Arena()
	screen := func(p physics.Vec, k float64) (float64, float64) {
		x := p.X + (f.toward.X-p.X)*k
		y := p.Y + (f.toward.Y-p.Y)*k
		return x, arena.Height - y
	}

	switch f.frame % f.every {
	case 0:
		var monsters []physics.Vec
		for _, s := range sprites {
			if s.Role == scene.RoleMonster {
				monsters = append(monsters, s.Position)
			}
		}
		if len(monsters) == 0 || !g.Player().Attached() {
			break
		}
		f.from = g.Player().Position()
		f.toward = monsters[f.rng.IntN(len(monsters))]
		f.src.Press(screen(f.from, 0))
	case 1:
		f.src.Move(screen(f.from, 0.3))
	case 2:
		f.src.Move(screen(f.from, 0.6))
	case 3:
		f.src.Release()
	}
	f.frame++
}

func main() {
	fs := flag.NewFlagSet("bounce-bench", flag.ExitOnError)
	games := fs.Int("games", 5, "Number of games to play.")
	maxFrames := fs.Int("max-frames", 20000, "Frames before an unfinished game is abandoned.")
	every := fs.Int("flick", 30, "Frames between flicks.")
	gcPauseMetrics := fs.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")

	// Arena settings come from the shared config layers: .env, BOUNCE_* and
	// flags such as -rows or -seed.
	cfg, err := config.LoadFlagSet(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *every < 4 {
		log.Fatalf("-flick must be at least 4")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	dt := cfg.TickSeconds()

	report := &Report{
		Games:          *games,
		MaxFrames:      *maxFrames,
		Seed:           seed,
		Monsters:       cfg.MonsterCount(),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Playing %d games...\n", *games)
	start := time.Now()
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	var sprites []scene.SpriteState
	for i := 0; i < *games; i++ {
		src := &gesture.ManualSource{}
		f := &flicker{src: src, rng: rng, every: *every}
		p := &headless{}

		cfg.Seed = seed + int64(i)
		game := scene.NewGame(cfg, scene.Silent{}, src)
		game.DidMove(p)

		frames := 0
		for ; frames < *maxFrames && p.over == nil; frames++ {
			sprites = game.Sprites(sprites[:0])
			f.step(game, sprites)

			t := time.Now()
			if err := game.Update(dt); err != nil {
				log.Fatalf("update: %v", err)
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(t))
		}
		game.WillMove()

		score := game.Score()
		report.Frames += frames
		report.Moves += score.Moves
		report.Kills += score.MonsterKilled
		if game.Won() {
			report.Wins++
		}
		report.Systems = game.Stats().Scheduler
		log.Printf("game %d: %d/%d monsters, %d moves, %d frames\n",
			i+1, score.MonsterKilled, score.MonsterCount, score.Moves, frames)
	}

	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Bounce Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
