package gesture

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ManualSource is a pointer driven by the host, for hosts without Ebitengine
// input.
type ManualSource struct {
	x, y float64
	down bool
}

func (m *ManualSource) Press(x, y float64) {
	m.x, m.y = x, y
	m.down = true
}

func (m *ManualSource) Move(x, y float64) {
	m.x, m.y = x, y
}

func (m *ManualSource) Release() {
	m.down = false
}

func (m *ManualSource) Pointer() (float64, float64, bool) {
	return m.x, m.y, m.down
}

// EbitenSource follows the first active touch and falls back to the left
// mouse button. It must be polled from ebiten.Game.Update.
type EbitenSource struct {
	touches  []ebiten.TouchID
	touch    ebiten.TouchID
	tracking bool
	x, y     float64
}

func (s *EbitenSource) Pointer() (float64, float64, bool) {
	if s.tracking {
		if inpututil.IsTouchJustReleased(s.touch) {
			s.tracking = false
			return s.x, s.y, false
		}
		tx, ty := ebiten.TouchPosition(s.touch)
		s.x, s.y = float64(tx), float64(ty)
		return s.x, s.y, true
	}

	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	if len(s.touches) > 0 {
		s.touch = s.touches[0]
		s.tracking = true
		tx, ty := ebiten.TouchPosition(s.touch)
		s.x, s.y = float64(tx), float64(ty)
		return s.x, s.y, true
	}

	cx, cy := ebiten.CursorPosition()
	s.x, s.y = float64(cx), float64(cy)
	return s.x, s.y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
