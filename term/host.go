// Package term plays the arena in a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bounce/config"
	"github.com/plus3/bounce/gesture"
	"github.com/plus3/bounce/scene"
)

// Host runs scenes in a tcell screen and implements scene.Presenter. Mouse
// drags with the left button drive the game's pan gestures.
type Host struct {
	screen  tcell.Screen
	cfg     config.Config
	jukebox scene.Jukebox
	source  *gesture.ManualSource

	current scene.Scene
	pending scene.Scene
	grid    grid
	overFor time.Duration
	sprites []scene.SpriteState
}

// NewHost initialises the terminal with mouse reporting.
func NewHost(cfg config.Config, jukebox scene.Jukebox) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	h := newHost(cfg, jukebox)
	h.screen = screen
	h.resize()
	return h, nil
}

func newHost(cfg config.Config, jukebox scene.Jukebox) *Host {
	return &Host{
		cfg:     cfg,
		jukebox: jukebox,
		source:  &gesture.ManualSource{},
	}
}

// NewGame returns a fresh arena bound to the host's pointer.
func (h *Host) NewGame() *scene.Game {
	return scene.NewGame(h.cfg, h.jukebox, h.source)
}

// Present swaps scenes at the end of the current tick. Transitions are not
// animated in a terminal.
func (h *Host) Present(next scene.Scene, _ scene.Transition) {
	if h.current == nil {
		h.swap(next)
		return
	}
	h.pending = next
}

func (h *Host) swap(next scene.Scene) {
	if h.current != nil {
		h.current.WillMove()
	}
	h.current = next
	h.overFor = 0
	next.DidMove(h)
}

// Run ticks the active scene until ctx is done or the player quits.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()
	if h.current == nil {
		h.Present(h.NewGame(), scene.Transition{})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go pollEvents(ctx, h.screen, events)

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if err := h.tick(h.cfg.TickSeconds()); err != nil {
				return err
			}
			h.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or ctx is
// done.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (h *Host) tick(dt float64) error {
	if err := h.current.Update(dt); err != nil {
		return err
	}
	if _, ok := h.current.(*scene.GameOver); ok {
		h.overFor += time.Duration(dt * float64(time.Second))
	}
	if next := h.pending; next != nil {
		h.pending = nil
		h.swap(next)
	}
	return nil
}

// handle processes one terminal event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		x, y := h.grid.toPointer(ev.Position())
		_, _, down := h.source.Pointer()
		switch {
		case ev.Buttons()&tcell.Button1 != 0 && !down:
			h.source.Press(x, y)
		case ev.Buttons()&tcell.Button1 != 0:
			h.source.Move(x, y)
		case down:
			h.source.Move(x, y)
			h.source.Release()
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	}
	return true
}

func (h *Host) resize() {
	w, ht := h.screen.Size()
	h.grid = newGrid(w, ht, scene.Arena{Width: h.cfg.Width, Height: h.cfg.Height})
}

func (h *Host) draw() {
	h.screen.Clear()
	switch s := h.current.(type) {
	case *scene.Game:
		h.sprites = s.Sprites(h.sprites[:0])
		drawGame(h.screen, h.grid, s.Score(), h.sprites)
	case *scene.GameOver:
		w, ht := h.screen.Size()
		drawBanner(h.screen, w, ht, s, (h.cfg.RestartDelay - h.overFor).Seconds())
	}
	h.screen.Show()
}
