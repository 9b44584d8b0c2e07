package match3

import (
	"encoding/json"
	"testing"
)

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("R G .", "b y m")
	if err != nil {
		t.Fatalf("ParseBoard() failed: %v", err)
	}

	rows, cols := b.Dimensions()
	if rows != 2 || cols != 3 {
		t.Fatalf("Dimensions() = %dx%d, want 2x3", rows, cols)
	}
	if b.Get(0, 0) != Red || b.Get(0, 2) != Empty || b.Get(1, 1) != Yellow {
		t.Errorf("unexpected contents:\n%s", b)
	}
	if got := b.String(); got != "RG.\nBYM" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"no rows", nil},
		{"ragged", []string{"RGB", "RG"}},
		{"unknown letter", []string{"RGX"}},
		{"blank row", []string{"   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.lines...); err == nil {
				t.Error("ParseBoard() should fail")
			}
		})
	}
}

func TestBoardGetSetBounds(t *testing.T) {
	b := NewBoard(3, 4)

	b.Set(2, 3, Blue)
	if b.Get(2, 3) != Blue {
		t.Errorf("Get(2, 3) = %v, want Blue", b.Get(2, 3))
	}

	// Out of bounds access is ignored.
	b.Set(-1, 0, Red)
	b.Set(3, 0, Red)
	if b.Get(-1, 0) != Empty || b.Get(0, 4) != Empty {
		t.Error("out of bounds Get should return Empty")
	}
	if b.InBounds(Cell{3, 0}) || !b.InBounds(Cell{2, 3}) {
		t.Error("InBounds mismatch")
	}
}

func TestBoardSwapAndClone(t *testing.T) {
	b := MustParseBoard("RG", "YB")
	c := b.Clone()

	b.Swap(Cell{0, 0}, Cell{1, 1})
	if b.Get(0, 0) != Blue || b.Get(1, 1) != Red {
		t.Errorf("Swap() result:\n%s", b)
	}
	if c.Get(0, 0) != Red {
		t.Error("Clone() should not share storage")
	}
	if b.Equal(c) {
		t.Error("Equal() should detect the swap")
	}

	b.Swap(Cell{0, 0}, Cell{1, 1})
	if !b.Equal(c) {
		t.Error("swapping twice should restore the board")
	}
}

func TestBoardRowsSnapshot(t *testing.T) {
	b := MustParseBoard("RG", "YB")
	rows := b.Rows()
	rows[0][0] = Empty

	if b.Get(0, 0) != Red {
		t.Error("Rows() must return a copy")
	}
}

func TestBoardJSON(t *testing.T) {
	b := MustParseBoard("RGY", "BMC")

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `["RGY","BMC"]` {
		t.Errorf("Marshal() = %s", data)
	}

	var back Board
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !back.Equal(b) {
		t.Errorf("round trip mismatch:\n%s", &back)
	}
}

func TestTileLetters(t *testing.T) {
	for k := Empty; k <= White; k++ {
		got, ok := TileFromLetter(k.Letter())
		if !ok || got != k {
			t.Errorf("TileFromLetter(%q) = %v, %v; want %v", k.Letter(), got, ok, k)
		}
	}
	if Cyan.IsGem(5) || !Cyan.IsGem(6) || Empty.IsGem(8) {
		t.Error("IsGem mismatch")
	}
}
