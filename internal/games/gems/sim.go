package gems

import (
	"fmt"

	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/match3"
)

// SimResult summarizes a headless game between two CPUs.
type SimResult struct {
	Status     match3.Status
	Scores     match3.Scores
	Winner     core.PlayerID
	Turns      int
	Reshuffles int
	BestChain  int // most cascade passes in one turn
	Finished   bool
}

// Simulate plays a whole game between p1 and p2 without rendering. The
// game stops early after maxTurns accepted moves when maxTurns > 0. Each
// accepted turn is passed to onTurn when it is not nil.
func Simulate(cfg match3.Config, p1, p2 *CPU, maxTurns int, onTurn func(match3.TurnOutcome)) (SimResult, error) {
	var res SimResult

	e, err := match3.New(cfg)
	if err != nil {
		return res, err
	}

	seats := map[core.PlayerID]*CPU{core.Player1: p1, core.Player2: p2}
	for !e.Status().Over() && (maxTurns <= 0 || e.Turns() < maxTurns) {
		player := e.ActivePlayer()
		m, ok := seats[player].Choose(e.Board())
		if !ok {
			break
		}

		out, err := e.SubmitMove(player, m.A, m.B)
		if err != nil {
			return res, err
		}
		if !out.Accepted {
			return res, fmt.Errorf("gems: %s move %v rejected: %s", player, m, out.Reason)
		}

		if out.Reshuffled {
			res.Reshuffles++
		}
		res.BestChain = max(res.BestChain, out.Passes)
		if onTurn != nil {
			onTurn(out)
		}
	}

	res.Status = e.Status()
	res.Scores = e.Scores()
	res.Winner = e.Winner()
	res.Turns = e.Turns()
	res.Finished = e.Status().Over()
	return res, nil
}
