package gems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/match3"
	"github.com/vovakirdan/gemduel/internal/multiplayer"
)

// scenarioBoard has no run. Swapping (2,2) with (3,2) lines up three reds
// on row 3.
var scenarioBoard = []string{
	"RGYBMRGY",
	"YBMRGYBM",
	"MRRYBMRG",
	"RRBMRGYB",
	"BMRGYBMR",
	"RGYBMRGY",
	"YBMRGYBG",
	"MRGYBGGB",
}

// crossBoard: swapping (2,2) with (2,3) clears a horizontal and a vertical
// red run at once.
var crossBoard = []string{
	"GYMCG",
	"YMCGY",
	"RRBRM",
	"CGRYC",
	"MCRGY",
}

const testConfig = `
cpu:
  skill: 1
  think_ticks: 3
animation:
  step_ticks: 2
  drop_ticks: 3
  flash_ticks: 5
`

// newTestGame resets g with a small animation budget and, when rows is not
// nil, swaps the dealt board for rows.
func newTestGame(t *testing.T, g *Game, rows []string) *Game {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gems.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.engine == nil {
		t.Fatalf("Reset() left no engine: %v", g.err)
	}
	if rows != nil {
		e, err := match3.NewWithBoard(g.engine.Config(), match3.MustParseBoard(rows...))
		if err != nil {
			t.Fatalf("NewWithBoard() failed: %v", err)
		}
		e.Observe(g.onStep)
		g.engine = e
	}
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps with empty input until playback ends.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for range 1000 {
		if !g.Step(press()).Busy && !g.anim.busy() {
			return
		}
	}
	t.Fatal("animation never finished")
}

// recorder is a Publisher that keeps everything it receives.
type recorder struct {
	steps     []match3.Step
	turns     []match3.TurnOutcome
	snapshots []match3.Snapshot
	matches   map[multiplayer.MatchID]bool
}

func newRecorder() *recorder {
	return &recorder{matches: map[multiplayer.MatchID]bool{}}
}

func (r *recorder) PublishStep(m multiplayer.MatchID, s match3.Step) {
	r.matches[m] = true
	r.steps = append(r.steps, s)
}

func (r *recorder) PublishTurn(m multiplayer.MatchID, out match3.TurnOutcome) {
	r.matches[m] = true
	r.turns = append(r.turns, out)
}

func (r *recorder) PublishSnapshot(m multiplayer.MatchID, snap match3.Snapshot) {
	r.matches[m] = true
	r.snapshots = append(r.snapshots, snap)
}
