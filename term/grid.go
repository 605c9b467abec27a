package term

import (
	"math"

	"github.com/plus3/bounce/physics"
	"github.com/plus3/bounce/scene"
)

const hudRows = 1

// grid maps the arena onto the cells inside a one-cell frame below the HUD.
type grid struct {
	left, top  int
	cols, rows int
	arena      scene.Arena
}

func newGrid(width, height int, arena scene.Arena) grid {
	return grid{
		left:  1,
		top:   hudRows + 1,
		cols:  max(1, width-2),
		rows:  max(1, height-hudRows-2),
		arena: arena,
	}
}

// toPointer converts a cell to a screen-space pointer position in arena
// units, y growing downward.
func (g grid) toPointer(cx, cy int) (float64, float64) {
	x := (float64(cx-g.left) + 0.5) * g.arena.Width / float64(g.cols)
	y := (float64(cy-g.top) + 0.5) * g.arena.Height / float64(g.rows)
	return x, y
}

// toCell converts a world position (y up) to the cell showing it.
func (g grid) toCell(p physics.Vec) (int, int, bool) {
	col := int(math.Floor(p.X / g.arena.Width * float64(g.cols)))
	row := int(math.Floor((g.arena.Height - p.Y) / g.arena.Height * float64(g.rows)))
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0, 0, false
	}
	return col + g.left, row + g.top, true
}

// frameSide returns the frame line a wall at p belongs to.
func frameSide(arena scene.Arena, p physics.Vec) scene.Side {
	switch {
	case p.Y > arena.Height:
		return scene.SideTop
	case p.Y < 0:
		return scene.SideBottom
	case p.X > arena.Width:
		return scene.SideRight
	default:
		return scene.SideLeft
	}
}
