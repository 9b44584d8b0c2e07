package gems

import (
	"fmt"

	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/match3"
)

const (
	cellWidth = 3 // gem plus cursor brackets
	hudHeight = 3 // title, scores, message
)

var gemGlyphs = [...]rune{'·', '♦', '♣', '★', '●', '▲', '■', '◆', '♥'}

var gemColors = [...]core.Color{
	core.ColorGray,
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
	core.ColorWhite,
}

// glyph returns the rune and color a tile is drawn with.
func glyph(t match3.Tile) (rune, core.Color) {
	if int(t) < len(gemGlyphs) {
		return gemGlyphs[t], gemColors[t]
	}
	return '?', core.ColorDefault
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		if g.err != nil {
			g.drawOverlay(dst, g.screenW/2, g.screenH/2, core.ColorRed,
				"COULD NOT DEAL A BOARD", trim(g.err.Error(), g.screenW-6), "Press Q to quit")
		}
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	rows, cols := g.engine.Board().Dimensions()
	boardW := cols*cellWidth + 2
	boardH := rows + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// playerLabel names a seat for the HUD.
func (g *Game) playerLabel(p core.PlayerID) string {
	if p == core.Player2 && g.cpu != nil {
		return "CPU"
	}
	return p.String()
}

// renderHUD draws the title, both scores and the message line.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title())

	scores := g.engine.Scores()
	active := g.engine.ActivePlayer()
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		text := fmt.Sprintf("%s %d", g.playerLabel(p), scores.Of(p))
		color := core.ColorGray
		if p == active && !g.over() {
			text = "▶ " + text
			color = core.ColorBrightWhite
		}
		x := 1
		if p == core.Player2 {
			x = g.screenW - len([]rune(text)) - 1
		}
		dst.DrawTextColor(x, 1, text, color)
	}

	snap := g.engine.Snapshot()
	goal := fmt.Sprintf("Target %d", snap.WinningScore)
	if snap.MovesRemaining >= 0 {
		goal += fmt.Sprintf("  Moves %d/%d", snap.MovesRemaining, snap.MoveLimit)
	}
	dst.DrawTextCentered(1, goal)

	switch {
	case g.messageTicks > 0:
		dst.DrawTextCenteredColor(2, trim(g.message, g.screenW-2), g.messageColor)
	case g.anim.busy():
		if s := g.anim.step(); s != nil && s.Combo > 1 {
			dst.DrawTextCenteredColor(2, fmt.Sprintf("Combo x%d", s.Combo), core.ColorBrightYellow)
		}
	case g.cpuTurn() && !g.over():
		dst.DrawTextCenteredColor(2, "CPU is thinking...", core.ColorGray)
	case !g.over():
		dst.DrawTextCentered(2, g.playerLabel(active)+" to move")
	}
}

// renderBoard draws the frame, the gems, the cursor and the selection.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	board := g.engine.Board()
	step := g.anim.step()
	if step != nil && step.Board != nil {
		board = step.Board
	}
	rows, cols := board.Dimensions()

	dst.DrawBox(core.NewRect(boardX, boardY, cols*cellWidth+2, rows+2), core.ColorGray)

	flashing := map[match3.Cell]bool{}
	if step != nil && step.Kind == match3.StepClear {
		for _, c := range step.Cleared {
			flashing[c] = true
		}
	}

	for r := range rows {
		for c := range cols {
			x := boardX + 1 + c*cellWidth
			y := boardY + 1 + r

			tile := board.Get(r, c)
			if t, ok := g.anim.override(r, c); ok {
				tile = t
			}

			ch, color := glyph(tile)
			if flashing[match3.Cell{Row: r, Col: c}] {
				ch, color = '✦', core.ColorBrightWhite
			}
			dst.SetColor(x+1, y, ch, color)
		}
	}

	if g.over() || g.anim.busy() {
		return
	}

	if g.hasSel {
		g.drawBrackets(dst, boardX, boardY, g.selected, '<', '>', core.ColorBrightYellow)
	}
	if !g.cpuTurn() {
		g.drawBrackets(dst, boardX, boardY, g.cursor, '[', ']', core.ColorBrightWhite)
	}
}

// drawBrackets marks a cell with a pair of runes on either side of the gem
// and brightens the gem.
func (g *Game) drawBrackets(dst *core.Screen, boardX, boardY int, c match3.Cell, left, right rune, color core.Color) {
	x := boardX + 1 + c.Col*cellWidth
	y := boardY + 1 + c.Row
	dst.SetColor(x, y, left, color)
	dst.SetColor(x+2, y, right, color)

	cell := dst.GetCell(x+1, y)
	dst.SetColor(x+1, y, cell.Rune, cell.Color.Bright())
}

// renderFooter draws the last turn summary and the controls.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	if combo := g.engine.Combo(); combo > 1 && !g.anim.busy() {
		dst.DrawTextCenteredColor(y, fmt.Sprintf("Last chain reached x%d", combo), core.ColorGray)
	}
	dst.DrawTextCenteredColor(g.screenH-1, trim(g.Controls(), g.screenW), core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightWhite, "PAUSED", "Press P to resume")
		return
	}

	if g.err != nil {
		g.drawOverlay(dst, centerX, centerY, core.ColorRed,
			"BOARD STALLED", trim(g.err.Error(), g.screenW-6), "Press R to restart")
		return
	}

	if !g.engine.Status().Over() || g.anim.busy() {
		return
	}

	scores := g.engine.Scores()
	line := fmt.Sprintf("%s %d   %s %d",
		g.playerLabel(core.Player1), scores.Player1, g.playerLabel(core.Player2), scores.Player2)
	g.drawOverlay(dst, centerX, centerY, core.ColorBrightYellow, g.headline(), line, "Press R to restart")
}

// headline is the title of the game over overlay.
func (g *Game) headline() string {
	switch g.engine.Status() {
	case match3.StatusPlayer1Wins:
		return "PLAYER 1 WINS!"
	case match3.StatusPlayer2Wins:
		if g.cpu != nil {
			return "CPU WINS!"
		}
		return "PLAYER 2 WINS!"
	case match3.StatusDraw:
		return "DRAW"
	case match3.StatusWin:
		return fmt.Sprintf("TARGET REACHED BY %s!", g.playerLabel(g.engine.Winner()))
	case match3.StatusLose:
		if g.engine.MovesRemaining() == 0 {
			return "OUT OF MOVES"
		}
		return "NO MOVES LEFT"
	default:
		return "GAME OVER"
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), color)

	for i, line := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColor(centerX-len([]rune(line))/2, boxY+1+i, line, c)
	}
}

// trim shortens s to at most n runes.
func trim(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
