package match3

import (
	"fmt"
	"math/rand"
)

// Generate deals a fresh board. Each cell receives a uniformly random kind
// among those that would not complete a run with the two cells to its left
// or the two cells above it, so the board never starts with a match. Boards
// without a valid move are thrown away and dealt again, at most maxAttempts
// times.
func Generate(rng *rand.Rand, rows, cols, palette, maxAttempts int) (*Board, error) {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	b := NewBoard(rows, cols)
	candidates := make([]Tile, 0, palette)

	for range maxAttempts {
		for r := range rows {
			for c := range cols {
				candidates = candidates[:0]
				for k := Tile(1); int(k) <= palette; k++ {
					if c >= 2 && b.Get(r, c-1) == k && b.Get(r, c-2) == k {
						continue
					}
					if r >= 2 && b.Get(r-1, c) == k && b.Get(r-2, c) == k {
						continue
					}
					candidates = append(candidates, k)
				}
				b.Set(r, c, candidates[rng.Intn(len(candidates))])
			}
		}
		if HasAnyValidMove(b) {
			return b, nil
		}
	}

	return nil, fmt.Errorf("%w: %dx%d board with %d kinds after %d attempts",
		ErrGenerationExhausted, rows, cols, palette, maxAttempts)
}
