// Package scene holds the arena game, the game over screen and the director
// that switches between them.
package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the game. The director owns the active scene and
// forwards the host's ticks to it.
type Scene interface {
	Update(dt float64) error
	Draw(screen *ebiten.Image)
	// DidMove is called when the scene becomes active.
	DidMove(p Presenter)
	// WillMove is called before the scene is replaced.
	WillMove()
}

// Presenter replaces the active scene.
type Presenter interface {
	Present(next Scene, t Transition)
}

type TransitionKind int

const (
	TransitionCut TransitionKind = iota
	TransitionFlipHorizontal
)

// Transition describes how the director swaps scenes. The zero value is an
// immediate cut.
type Transition struct {
	Kind     TransitionKind
	Duration time.Duration
}

// Flip returns a horizontal flip lasting d.
func Flip(d time.Duration) Transition {
	return Transition{Kind: TransitionFlipHorizontal, Duration: d}
}

func (t Transition) animated() bool {
	return t.Kind != TransitionCut && t.Duration > 0
}
