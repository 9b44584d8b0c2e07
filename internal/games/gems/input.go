package gems

import (
	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/match3"
)

// handleInput moves the cursor and turns two selections into a swap.
// Selecting a cell next to the current selection submits the move;
// selecting the same cell again, or pressing Back, drops the selection.
func (g *Game) handleInput(in core.InputFrame) {
	rows, cols := g.engine.Board().Dimensions()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, rows-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, rows-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, cols-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, cols-1)
	}

	if in.Has(core.ActionBack) {
		g.hasSel = false
		return
	}
	if !in.Has(core.ActionConfirm) {
		return
	}

	switch {
	case !g.hasSel:
		g.selected = g.cursor
		g.hasSel = true
	case g.selected == g.cursor:
		g.hasSel = false
	case adjacent(g.selected, g.cursor):
		g.submit(g.selected, g.cursor)
	default:
		g.selected = g.cursor
	}
}

func adjacent(a, b match3.Cell) bool {
	return core.Abs(a.Row-b.Row)+core.Abs(a.Col-b.Col) == 1
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter/Space: Select | Esc/B: Deselect | P: Pause | R: Restart | Q: Quit"
}
