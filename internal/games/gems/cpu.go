package gems

import (
	"math/rand"

	"github.com/vovakirdan/gemduel/internal/match3"
)

// CPU picks moves for the computer-controlled seat.
type CPU struct {
	rng   *rand.Rand
	skill float64 // chance of playing the best move instead of a random one
}

// NewCPU creates a CPU opponent. Skill is clamped to [0, 1].
func NewCPU(seed int64, skill float64) *CPU {
	return &CPU{
		rng:   rand.New(rand.NewSource(seed)),
		skill: max(0, min(1, skill)),
	}
}

// Choose returns the move the CPU plays on b. The second result is false
// when b has no valid move.
func (c *CPU) Choose(b *match3.Board) (match3.Move, bool) {
	moves := match3.ValidMoves(b)
	if len(moves) == 0 {
		return match3.Move{}, false
	}
	if c.rng.Float64() >= c.skill {
		return moves[c.rng.Intn(len(moves))], true
	}
	return BestMove(b, moves), true
}

// BestMove returns the move among moves that clears the most gems on its
// first pass. Ties go to the earliest move in row-major order. b is left
// as it was.
func BestMove(b *match3.Board, moves []match3.Move) match3.Move {
	best, bestCount := moves[0], -1
	for _, m := range moves {
		b.Swap(m.A, m.B)
		n := match3.FindMatches(b).Count()
		b.Swap(m.A, m.B)
		if n > bestCount {
			best, bestCount = m, n
		}
	}
	return best
}
