package scene

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var bannerFace = text.NewGoXFace(basicfont.Face7x13)

// GameOver shows the result of a game and, once RestartDelay has passed,
// presents the scene returned by Next.
type GameOver struct {
	size  Arena
	won   bool
	moves int

	RestartDelay time.Duration
	Transition   Transition
	Next         func() Scene

	presenter Presenter
	elapsed   time.Duration
	restarted bool
}

func NewGameOver(size Arena, won bool, moves int) *GameOver {
	return &GameOver{size: size, won: won, moves: moves}
}

func (g *GameOver) Won() bool  { return g.won }
func (g *GameOver) Moves() int { return g.moves }

// Message is the headline shown for the result.
func (g *GameOver) Message() string {
	if g.won {
		return "You Won!"
	}
	return "You Lose :["
}

func (g *GameOver) Update(dt float64) error {
	g.elapsed += time.Duration(dt * float64(time.Second))
	if g.restarted || g.Next == nil || g.presenter == nil || g.elapsed < g.RestartDelay {
		return nil
	}
	g.restarted = true
	g.presenter.Present(g.Next(), g.Transition)
	return nil
}

func (g *GameOver) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	mid := float64(screen.Bounds().Dy()) / 2
	drawCentered(screen, g.Message(), bannerFace, mid-20, color.White)
	drawCentered(screen, fmt.Sprintf("Moves: %d", g.moves), bannerFace, mid+4, color.White)
}

func (g *GameOver) DidMove(p Presenter) {
	g.presenter = p
}

func (g *GameOver) WillMove() {}
