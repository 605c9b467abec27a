package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bounce/scene"
)

// cellWriter is the part of tcell.Screen the renderer needs.
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	wallStyle    = tcell.StyleDefault.Foreground(tcell.ColorRoyalBlue)
	monsterStyle = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	playerStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

func drawText(w cellWriter, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		w.SetContent(x+i, y, r, nil, style)
	}
}

func drawFrame(w cellWriter, g grid, side scene.Side) {
	right, bottom := g.left+g.cols, g.top+g.rows
	switch side {
	case scene.SideTop, scene.SideBottom:
		y := g.top - 1
		if side == scene.SideBottom {
			y = bottom
		}
		for x := g.left - 1; x <= right; x++ {
			w.SetContent(x, y, '#', nil, wallStyle)
		}
	case scene.SideLeft, scene.SideRight:
		x := g.left - 1
		if side == scene.SideRight {
			x = right
		}
		for y := g.top - 1; y <= bottom; y++ {
			w.SetContent(x, y, '#', nil, wallStyle)
		}
	}
}

func hudLine(score scene.Score) string {
	return fmt.Sprintf("Moves: %d  Monsters: %d/%d  drag to flick, q quits",
		score.Moves, score.Remaining(), score.MonsterCount)
}

// drawGame renders walls as frame lines, monsters as 'o' and the player as
// '@' on top.
func drawGame(w cellWriter, g grid, score scene.Score, sprites []scene.SpriteState) {
	drawText(w, 0, 0, hudLine(score), hudStyle)

	var player []scene.SpriteState
	for _, s := range sprites {
		switch s.Role {
		case scene.RoleWall:
			drawFrame(w, g, frameSide(g.arena, s.Position))
		case scene.RoleMonster:
			if x, y, ok := g.toCell(s.Position); ok {
				w.SetContent(x, y, 'o', nil, monsterStyle)
			}
		case scene.RolePlayer:
			player = append(player, s)
		}
	}
	for _, s := range player {
		if x, y, ok := g.toCell(s.Position); ok {
			w.SetContent(x, y, '@', nil, playerStyle)
		}
	}
}

func drawBanner(w cellWriter, width, height int, over *scene.GameOver, left float64) {
	lines := []string{
		over.Message(),
		fmt.Sprintf("Moves: %d", over.Moves()),
		fmt.Sprintf("new game in %.0fs", max(0, left)),
	}
	top := height/2 - len(lines)/2
	for i, line := range lines {
		drawText(w, (width-len([]rune(line)))/2, top+i, line, hudStyle)
	}
}
