package gems

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gemduel/internal/config"
	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/match3"
	"github.com/vovakirdan/gemduel/internal/registry"
)

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id   string
		mode match3.Mode
		cpu  bool
	}{
		{"gems", match3.ModeDuel, false},
		{"gems_cpu", match3.ModeDuel, true},
		{"gems_moves", match3.ModeMoves, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			game, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.id, err)
			}
			g := newTestGame(t, game.(*Game), nil)
			if g.ID() != tt.id {
				t.Errorf("ID() = %q", g.ID())
			}
			if g.engine.Config().Mode != tt.mode {
				t.Errorf("mode = %v, want %v", g.engine.Config().Mode, tt.mode)
			}
			if (g.cpu != nil) != tt.cpu {
				t.Errorf("cpu present = %v, want %v", g.cpu != nil, tt.cpu)
			}
			if info, ok := registry.Info(tt.id); !ok || info.Summary == "" {
				t.Errorf("Info(%q) = %+v, %v", tt.id, info, ok)
			}
			if g.State().GameOver {
				t.Error("fresh game reports game over")
			}
		})
	}
}

func TestResetCentersCursor(t *testing.T) {
	g := newTestGame(t, New(), nil)
	if g.cursor != (match3.Cell{Row: 4, Col: 4}) {
		t.Errorf("cursor = %+v, want (4,4)", g.cursor)
	}
	if g.match == nil || g.match.ID() == "" {
		t.Error("Reset() did not start a match")
	}
}

func TestCursorClamps(t *testing.T) {
	g := newTestGame(t, New(), scenarioBoard)

	for range 10 {
		g.Step(press(core.ActionUp))
		g.Step(press(core.ActionLeft))
	}
	if g.cursor != (match3.Cell{}) {
		t.Errorf("cursor = %+v, want top-left", g.cursor)
	}

	for range 10 {
		g.Step(press(core.ActionDown))
		g.Step(press(core.ActionRight))
	}
	if g.cursor != (match3.Cell{Row: 7, Col: 7}) {
		t.Errorf("cursor = %+v, want bottom-right", g.cursor)
	}
}

func TestSelection(t *testing.T) {
	g := newTestGame(t, New(), scenarioBoard)

	g.Step(press(core.ActionConfirm))
	if !g.hasSel || g.selected != g.cursor {
		t.Fatalf("Confirm did not select the cursor cell")
	}

	g.Step(press(core.ActionConfirm))
	if g.hasSel {
		t.Error("confirming the selected cell should deselect it")
	}

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionBack))
	if g.hasSel {
		t.Error("Back should drop the selection")
	}

	// A far cell moves the selection instead of submitting.
	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionConfirm))
	if !g.hasSel || g.selected != g.cursor || g.engine.Turns() != 0 {
		t.Errorf("selection = %+v (has=%v), turns = %d", g.selected, g.hasSel, g.engine.Turns())
	}
}

func TestRejectedSwapFlashes(t *testing.T) {
	g := newTestGame(t, New(), scenarioBoard)
	g.cursor = match3.Cell{Row: 0, Col: 0}

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionConfirm))

	if g.engine.Turns() != 0 || g.engine.ActivePlayer() != core.Player1 {
		t.Errorf("rejected swap changed the turn: turns=%d active=%v", g.engine.Turns(), g.engine.ActivePlayer())
	}
	if g.messageTicks == 0 || !strings.Contains(g.message, "no match") {
		t.Errorf("message = %q (ticks %d)", g.message, g.messageTicks)
	}
	if g.anim.busy() {
		t.Error("a rejected swap should not animate")
	}
}

func TestAcceptedSwapAnimatesThenPassesTurn(t *testing.T) {
	g := newTestGame(t, New(), scenarioBoard)
	g.cursor = match3.Cell{Row: 2, Col: 2}

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionDown))
	res := g.Step(press(core.ActionConfirm))

	if !res.Busy {
		t.Fatal("accepted swap should start playback")
	}
	if g.hasSel {
		t.Error("selection should clear after a swap")
	}
	if got := g.engine.Scores().Player1; got < 300 {
		t.Errorf("P1 score = %d, want at least 300", got)
	}
	if g.engine.ActivePlayer() != core.Player2 {
		t.Errorf("active = %v, want P2", g.engine.ActivePlayer())
	}
	if !strings.HasPrefix(g.message, "P1 +") {
		t.Errorf("message = %q", g.message)
	}

	// Input is ignored while steps play back.
	before := g.cursor
	g.Step(press(core.ActionLeft))
	if g.cursor != before {
		t.Error("cursor moved during playback")
	}

	settle(t, g)
	if g.State().Score != g.engine.Scores().Max() {
		t.Errorf("State().Score = %d", g.State().Score)
	}
}

func TestCPUPlaysAfterThinking(t *testing.T) {
	g := newTestGame(t, NewVsCPU(), scenarioBoard)
	g.cursor = match3.Cell{Row: 2, Col: 2}
	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionDown))
	g.Step(press(core.ActionConfirm))
	settle(t, g)

	if !g.cpuTurn() {
		t.Fatal("CPU should be on turn")
	}

	// Player input does not act for the CPU.
	for range g.cfg.CPU.ThinkTicks - 1 {
		g.Step(press(core.ActionConfirm))
	}
	if g.engine.Turns() != 1 {
		t.Fatalf("CPU moved before its think delay: turns=%d", g.engine.Turns())
	}

	g.Step(press())
	if g.engine.Turns() != 2 {
		t.Fatalf("CPU did not move: turns=%d", g.engine.Turns())
	}
	if g.engine.Scores().Player2 == 0 {
		t.Error("CPU move scored nothing")
	}
	settle(t, g)
	if g.engine.ActivePlayer() != core.Player1 {
		t.Errorf("active = %v, want P1", g.engine.ActivePlayer())
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, New(), scenarioBoard)

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("P should pause")
	}
	before := g.cursor
	g.Step(press(core.ActionUp))
	if g.cursor != before {
		t.Error("cursor moved while paused")
	}
	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("P should resume")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	newTestGame(t, g, nil)
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.tooSmall || !g.State().Paused {
		t.Fatal("small screen should pause the game")
	}
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("render:\n%s", screen)
	}
}

func TestPublisherReceivesTurns(t *testing.T) {
	rec := newRecorder()
	SetPublisher(rec)
	t.Cleanup(func() { SetPublisher(nil) })

	g := newTestGame(t, New(), scenarioBoard)
	g.submit(match3.Cell{Row: 2, Col: 2}, match3.Cell{Row: 3, Col: 2})

	if len(rec.turns) != 1 || !rec.turns[0].Accepted {
		t.Fatalf("turns = %+v", rec.turns)
	}
	if len(rec.steps) == 0 || rec.steps[0].Kind != match3.StepSwap {
		t.Errorf("first step = %+v", rec.steps)
	}
	// One snapshot from Reset, one after the turn.
	if len(rec.snapshots) != 2 {
		t.Errorf("snapshots = %d, want 2", len(rec.snapshots))
	}
	if len(rec.matches) != 1 || !rec.matches[g.match.ID()] {
		t.Errorf("events published for matches %v", rec.matches)
	}
}

func TestSameSeedDealsSameBoard(t *testing.T) {
	a := newTestGame(t, New(), nil)
	b := newTestGame(t, New(), nil)
	if !a.engine.Board().Equal(b.engine.Board()) {
		t.Error("same seed dealt different boards")
	}
}

func TestDuelRecord(t *testing.T) {
	g := newTestGame(t, NewVsCPU(), nil)
	if _, ok := g.DuelRecord(); ok {
		t.Fatal("DuelRecord() of a running game should not be ok")
	}

	cfg := g.engine.Config()
	cfg.WinningScore = 100
	e, err := match3.NewWithBoard(cfg, match3.MustParseBoard(scenarioBoard...))
	if err != nil {
		t.Fatalf("NewWithBoard() failed: %v", err)
	}
	e.Observe(g.onStep)
	g.engine = e

	g.submit(match3.Cell{Row: 2, Col: 2}, match3.Cell{Row: 3, Col: 2})
	settle(t, g)

	if !g.State().GameOver {
		t.Fatal("reaching the winning score should end the game")
	}
	rec, ok := g.DuelRecord()
	if !ok {
		t.Fatal("DuelRecord() not ok after game over")
	}
	if rec.GameID != "gems_cpu" || rec.Opponent != "cpu" || rec.Mode != "duel" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Winner != 1 || rec.Score1 < 300 || rec.Turns != 1 || rec.MatchID != string(g.match.ID()) {
		t.Errorf("record = %+v", rec)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PLAYER 1 WINS!") {
		t.Errorf("render:\n%s", screen)
	}
}

func TestSnapshot(t *testing.T) {
	var g Game
	if _, ok := g.Snapshot(); ok {
		t.Error("Snapshot() before Reset should not be ok")
	}

	newTestGame(t, &g, scenarioBoard)
	g.Step(press(core.ActionConfirm))
	snap, ok := g.Snapshot()
	if !ok {
		t.Fatal("Snapshot() not ok")
	}
	if snap.ID != "gems" || snap.Selected == nil || *snap.Selected != g.cursor {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Engine.Turns != 0 || snap.Engine.Active != core.Player1 {
		t.Errorf("engine snapshot = %+v", snap.Engine)
	}
}

func TestRenderShowsScoresAndCursor(t *testing.T) {
	g := newTestGame(t, NewVsCPU(), scenarioBoard)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Gem Duel (vs CPU)", "▶ P1 0", "CPU 0", "Target 5000", "P1 to move"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	// Cursor brackets sit on either side of the gem at (4,4).
	boardX := (80 - (8*cellWidth + 2)) / 2
	x := boardX + 1 + 4*cellWidth
	y := hudHeight + 1 + 4
	if screen.Get(x, y) != '[' || screen.Get(x+2, y) != ']' {
		t.Errorf("cursor not drawn at (%d,%d): %q", x, y, screen.Row(y))
	}
	if got, _ := glyph(match3.Yellow); screen.Get(x+1, y) != got {
		t.Errorf("gem under cursor = %q, want %q", screen.Get(x+1, y), got)
	}
}

func TestRenderMovesBudget(t *testing.T) {
	g := newTestGame(t, NewMoves(), nil)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Moves 30/30") {
		t.Errorf("render:\n%s", screen)
	}
}

func TestSetDifficulty(t *testing.T) {
	g := New()
	g.SetDifficulty(config.DifficultyHard)
	newTestGame(t, g, nil)

	cfg := g.engine.Config()
	if cfg.Palette != 6 || cfg.WinningScore != 7000 {
		t.Errorf("hard preset gave palette %d, target %d", cfg.Palette, cfg.WinningScore)
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := newTestGame(t, New(), scenarioBoard)
	g.submit(match3.Cell{Row: 2, Col: 2}, match3.Cell{Row: 3, Col: 2})
	settle(t, g)

	g.Resize(30, 10)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}
	g.Resize(100, 30)
	if g.State().Paused || g.engine.Turns() != 1 {
		t.Errorf("resize lost the game: paused=%v turns=%d", g.State().Paused, g.engine.Turns())
	}
}
