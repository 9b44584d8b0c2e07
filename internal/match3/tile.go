// Package match3 implements a two-player match-three board engine.
//
// The engine is a deterministic, turn-based state machine. A player submits
// a swap of two adjacent gems; when the swap lines up three or more gems of
// one kind the matched gems are cleared, the columns fall, the gaps are
// refilled and the board is rechecked until it settles. Every stage is
// reported as a Step so a presentation layer can animate it. Nothing in this
// package depends on time, terminals or I/O.
package match3

import "fmt"

// Tile is the content of one board cell: Empty or one of the gem kinds.
type Tile uint8

const (
	Empty Tile = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Orange
	White
)

// MaxPalette is the number of distinct gem kinds available.
const MaxPalette = 8

// MinPalette is the smallest palette for which generation is guaranteed to
// find boards without spawn matches.
const MinPalette = 3

var tileLetters = [...]byte{'.', 'R', 'G', 'Y', 'B', 'M', 'C', 'O', 'W'}

var tileNames = [...]string{"Empty", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "Orange", "White"}

// Letter returns the single-character code used by ParseBoard and String.
func (t Tile) Letter() byte {
	if int(t) < len(tileLetters) {
		return tileLetters[t]
	}
	return '?'
}

// String returns the gem's name.
func (t Tile) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("Tile(%d)", uint8(t))
}

// IsGem reports whether the tile holds a gem of a kind within palette.
func (t Tile) IsGem(palette int) bool {
	return t != Empty && int(t) <= palette
}

// TileFromLetter converts a letter code back to a tile.
func TileFromLetter(b byte) (Tile, bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	for i, l := range tileLetters {
		if l == b {
			return Tile(i), true
		}
	}
	return Empty, false
}
