package match3

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cell addresses a board position. Row 0 is the top row.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the cell offset by dr rows and dc columns.
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Move is a requested swap of two cells.
type Move struct {
	A Cell `json:"a"`
	B Cell `json:"b"`
}

func (m Move) String() string {
	return m.A.String() + "<->" + m.B.String()
}

// Board is a fixed-size grid of tiles stored row-major.
// Its dimensions never change after construction.
type Board struct {
	rows  int
	cols  int
	cells []Tile
}

// NewBoard returns a board of the given size with every cell Empty.
func NewBoard(rows, cols int) *Board {
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Tile, rows*cols),
	}
}

// ParseBoard builds a board from rows of tile letters ("RGB", ". R G").
// Spaces are ignored and '.' is Empty.
func ParseBoard(lines ...string) (*Board, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("match3: parse board: no rows")
	}

	var grid [][]Tile
	for i, line := range lines {
		var row []Tile
		for j := 0; j < len(line); j++ {
			if line[j] == ' ' {
				continue
			}
			t, ok := TileFromLetter(line[j])
			if !ok {
				return nil, fmt.Errorf("match3: parse board: row %d: unknown tile %q", i, line[j])
			}
			row = append(row, t)
		}
		if i > 0 && len(row) != len(grid[0]) {
			return nil, fmt.Errorf("match3: parse board: row %d has %d cells, want %d", i, len(row), len(grid[0]))
		}
		grid = append(grid, row)
	}
	if len(grid[0]) == 0 {
		return nil, fmt.Errorf("match3: parse board: empty rows")
	}

	b := NewBoard(len(grid), len(grid[0]))
	for r, row := range grid {
		copy(b.cells[r*b.cols:], row)
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on error. Intended for tests
// and fixed fixtures.
func MustParseBoard(lines ...string) *Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}

// Dimensions returns the number of rows and columns.
func (b *Board) Dimensions() (rows, cols int) {
	return b.rows, b.cols
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// Get returns the tile at (row, col), or Empty when out of bounds.
func (b *Board) Get(row, col int) Tile {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.cells[row*b.cols+col]
}

// At is Get for a Cell.
func (b *Board) At(c Cell) Tile {
	return b.Get(c.Row, c.Col)
}

// Set stores t at (row, col). Out-of-bounds writes are ignored.
func (b *Board) Set(row, col int, t Tile) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.cells[row*b.cols+col] = t
}

// Swap exchanges the contents of two cells without any validation.
func (b *Board) Swap(a, c Cell) {
	if !b.InBounds(a) || !b.InBounds(c) {
		return
	}
	i, j := a.Row*b.cols+a.Col, c.Row*b.cols+c.Col
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{rows: b.rows, cols: b.cols, cells: make([]Tile, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if o == nil || b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a snapshot of the grid as a slice of rows.
func (b *Board) Rows() [][]Tile {
	out := make([][]Tile, b.rows)
	for r := range b.rows {
		out[r] = make([]Tile, b.cols)
		copy(out[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return out
}

// Lines returns each row encoded as tile letters.
func (b *Board) Lines() []string {
	out := make([]string, b.rows)
	buf := make([]byte, b.cols)
	for r := range b.rows {
		for c := range b.cols {
			buf[c] = b.cells[r*b.cols+c].Letter()
		}
		out[r] = string(buf)
	}
	return out
}

// String renders the board as newline separated letter rows.
func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}

// MarshalJSON encodes the board as an array of letter rows.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Lines())
}

// UnmarshalJSON decodes a board produced by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	parsed, err := ParseBoard(lines...)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}

// load replaces the contents of b with those of src, which must have the
// same dimensions.
func (b *Board) load(src *Board) {
	copy(b.cells, src.cells)
}
