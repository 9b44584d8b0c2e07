package gems

import (
	"github.com/vovakirdan/gemduel/internal/match3"
	"github.com/vovakirdan/gemduel/internal/storage"
)

// Snapshot is the platform view of a game: the engine state plus the
// cursor and playback state around it.
type Snapshot struct {
	ID       string          `json:"id"`
	Match    string          `json:"match"`
	Tick     uint64          `json:"tick"`
	Cursor   match3.Cell     `json:"cursor"`
	Selected *match3.Cell    `json:"selected,omitempty"`
	Busy     bool            `json:"busy"`
	Message  string          `json:"message,omitempty"`
	Engine   match3.Snapshot `json:"engine"`
}

// Snapshot returns the current platform view. ok is false before the
// first successful Reset.
func (g *Game) Snapshot() (snap Snapshot, ok bool) {
	if g.engine == nil {
		return Snapshot{}, false
	}
	snap = Snapshot{
		ID:     g.ID(),
		Match:  string(g.match.ID()),
		Tick:   g.tick,
		Cursor: g.cursor,
		Busy:   g.anim.busy(),
		Engine: g.engine.Snapshot(),
	}
	if g.hasSel {
		sel := g.selected
		snap.Selected = &sel
	}
	if g.messageTicks > 0 {
		snap.Message = g.message
	}
	return snap, true
}

// DuelRecord returns the result to persist once the game is over. ok is
// false while the game is running or when the engine stalled.
func (g *Game) DuelRecord() (storage.DuelResult, bool) {
	if g.engine == nil || g.err != nil || !g.engine.Status().Over() {
		return storage.DuelResult{}, false
	}
	scores := g.engine.Scores()
	return storage.DuelResult{
		MatchID:  string(g.match.ID()),
		GameID:   g.ID(),
		Mode:     g.Mode().String(),
		Opponent: g.MatchMode().Opponent(),
		Score1:   scores.Player1,
		Score2:   scores.Player2,
		Winner:   int(g.engine.Winner()),
		Status:   g.engine.Status().String(),
		Turns:    g.engine.Turns(),
		Duration: int(g.tick) / g.tickRate,
	}, true
}
