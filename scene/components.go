package scene

import (
	"image/color"

	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/physics"
)

// Body links an entity to its physics body.
type Body struct {
	*physics.Body
}

type SpriteKind int

const (
	SpriteCircle SpriteKind = iota
	SpriteRect
)

// Sprite describes how an entity is drawn.
type Sprite struct {
	Kind   SpriteKind
	Radius float64
	Width  float64
	Height float64
	Color  color.RGBA
}

// Player tags the controllable circle.
type Player struct{}

// Monster tags a field circle with its grid cell.
type Monster struct {
	Row, Col int
}

type Side int

const (
	SideTop Side = iota
	SideBottom
	SideRight
	SideLeft
)

// Wall tags a border.
type Wall struct {
	Side Side
}

// Score is the game's counter singleton.
type Score struct {
	MonsterCount  int
	MonsterKilled int
	Moves         int
}

// Remaining is the number of monsters still in play.
func (s Score) Remaining() int {
	return s.MonsterCount - s.MonsterKilled
}

// Arena is the playfield size singleton.
type Arena struct {
	Width, Height float64
}

// World holds the physics world as a singleton.
type World struct {
	*physics.World
}

// RegisterComponents adds the scene's component types to registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Monster](registry)
	ecs.RegisterComponent[Wall](registry)
}
