package scene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/physics"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.Black
	hudFace         = text.NewGoXFace(basicfont.Face7x13)
)

type Role int

const (
	RoleWall Role = iota
	RoleMonster
	RolePlayer
)

// SpriteState is a drawable snapshot of one entity.
type SpriteState struct {
	Entity   ecs.EntityId
	Role     Role
	Position physics.Vec
	Sprite   Sprite
}

type spriteView struct {
	ecs.EntityId
	Body    *Body
	Sprite  *Sprite
	Player  *Player  `ecs:"optional"`
	Monster *Monster `ecs:"optional"`
}

// Sprites appends a snapshot of every drawable entity to dst.
func (g *Game) Sprites(dst []SpriteState) []SpriteState {
	if !g.ready {
		return dst
	}
	g.sprites.Execute()
	for id, v := range g.sprites.Iter() {
		if !v.Body.Attached() {
			continue
		}
		role := RoleWall
		switch {
		case v.Player != nil:
			role = RolePlayer
		case v.Monster != nil:
			role = RoleMonster
		}
		dst = append(dst, SpriteState{
			Entity:   id,
			Role:     role,
			Position: v.Body.Position(),
			Sprite:   *v.Sprite,
		})
	}
	return dst
}

// toScreen flips world y (up) into screen y (down).
func toScreen(arena Arena, p physics.Vec) (float32, float32) {
	return float32(p.X), float32(arena.Height - p.Y)
}

func drawSprites(screen *ebiten.Image, arena Arena, sprites []SpriteState) {
	for _, s := range sprites {
		x, y := toScreen(arena, s.Position)
		switch s.Sprite.Kind {
		case SpriteCircle:
			vector.DrawFilledCircle(screen, x, y, float32(s.Sprite.Radius), s.Sprite.Color, true)
		case SpriteRect:
			w, h := float32(s.Sprite.Width), float32(s.Sprite.Height)
			vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, s.Sprite.Color, false)
		}
	}
}

func drawHUD(screen *ebiten.Image, score Score) {
	msg := fmt.Sprintf("Moves: %d  Monsters: %d/%d", score.Moves, score.Remaining(), score.MonsterCount)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, hudFace, op)
}

// drawCentered draws msg centred horizontally with its top at y.
func drawCentered(screen *ebiten.Image, msg string, face text.Face, y float64, clr color.Color) {
	w, _ := text.Measure(msg, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-w/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, face, op)
}
