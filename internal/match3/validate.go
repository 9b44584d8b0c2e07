package match3

import "github.com/vovakirdan/gemduel/internal/core"

// IsAdjacent reports whether both cells of m are on the board and differ
// by exactly one step in a single row or column.
func IsAdjacent(b *Board, m Move) bool {
	if !b.InBounds(m.A) || !b.InBounds(m.B) {
		return false
	}
	dr := m.A.Row - m.B.Row
	dc := m.A.Col - m.B.Col
	return core.Abs(dr)+core.Abs(dc) == 1
}

// WouldMatch reports whether performing m would line up a run through
// either swapped cell. The board is swapped, inspected and swapped back,
// so callers never observe an intermediate state.
func WouldMatch(b *Board, m Move) bool {
	if !IsAdjacent(b, m) {
		return false
	}
	b.Swap(m.A, m.B)
	ok := matchAt(b, m.A) || matchAt(b, m.B)
	b.Swap(m.A, m.B)
	return ok
}

// HasAnyValidMove reports whether some swap with a right or lower neighbour
// produces a match. It stops at the first hit.
func HasAnyValidMove(b *Board) bool {
	for r := range b.rows {
		for c := range b.cols {
			from := Cell{r, c}
			if c+1 < b.cols && WouldMatch(b, Move{from, from.Add(0, 1)}) {
				return true
			}
			if r+1 < b.rows && WouldMatch(b, Move{from, from.Add(1, 0)}) {
				return true
			}
		}
	}
	return false
}

// ValidMoves lists every matching swap in row-major order, the right-hand
// swap of a cell before the downward one.
func ValidMoves(b *Board) []Move {
	var moves []Move
	for r := range b.rows {
		for c := range b.cols {
			from := Cell{r, c}
			if m := (Move{from, from.Add(0, 1)}); c+1 < b.cols && WouldMatch(b, m) {
				moves = append(moves, m)
			}
			if m := (Move{from, from.Add(1, 0)}); r+1 < b.rows && WouldMatch(b, m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}
