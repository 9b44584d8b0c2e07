package gems

import (
	"testing"

	"github.com/vovakirdan/gemduel/internal/match3"
)

func TestSimulateDuel(t *testing.T) {
	cfg := match3.DefaultConfig()
	cfg.Seed = 3
	cfg.WinningScore = 2000

	res, err := Simulate(cfg, NewCPU(1, 1), NewCPU(2, 0.5), 0, nil)
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if !res.Finished || res.Winner == 0 {
		t.Fatalf("duel did not finish with a winner: %+v", res)
	}
	if res.Scores.Of(res.Winner) < cfg.WinningScore {
		t.Errorf("winner score %d below target", res.Scores.Of(res.Winner))
	}
	if res.BestChain < 1 {
		t.Errorf("BestChain = %d", res.BestChain)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := match3.MovesConfig()
	cfg.Seed = 11

	run := func() SimResult {
		res, err := Simulate(cfg, NewCPU(5, 0.7), NewCPU(6, 0.7), 0, nil)
		if err != nil {
			t.Fatalf("Simulate() failed: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seeds gave %+v and %+v", a, b)
	}
	if a.Turns > cfg.MoveLimit {
		t.Errorf("played %d turns with a budget of %d", a.Turns, cfg.MoveLimit)
	}
}

func TestSimulateTurnCap(t *testing.T) {
	cfg := match3.DefaultConfig()
	cfg.Seed = 4
	cfg.WinningScore = 1000000

	turns := 0
	res, err := Simulate(cfg, NewCPU(1, 1), NewCPU(2, 1), 4, func(out match3.TurnOutcome) {
		if !out.Accepted {
			t.Errorf("onTurn got a rejected move: %+v", out)
		}
		turns++
	})
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if res.Turns != 4 || turns != 4 || res.Finished {
		t.Errorf("res = %+v, callbacks = %d", res, turns)
	}
}
