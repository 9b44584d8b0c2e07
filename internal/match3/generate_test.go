package match3

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGeneratePlayable(t *testing.T) {
	tests := []struct {
		rows, cols, palette int
	}{
		{3, 3, 3},
		{8, 8, 5},
		{6, 10, 7},
		{9, 9, 8},
	}

	for _, tt := range tests {
		for seed := int64(1); seed <= 10; seed++ {
			b, err := Generate(rand.New(rand.NewSource(seed)), tt.rows, tt.cols, tt.palette, DefaultGenerationAttempts)
			if err != nil {
				t.Fatalf("Generate(%dx%d, %d) seed %d failed: %v", tt.rows, tt.cols, tt.palette, seed, err)
			}
			if rows, cols := b.Dimensions(); rows != tt.rows || cols != tt.cols {
				t.Fatalf("dimensions = %dx%d", rows, cols)
			}
			if HasAnyMatch(b) {
				t.Errorf("seed %d dealt a match:\n%s", seed, b)
			}
			if !HasAnyValidMove(b) {
				t.Errorf("seed %d dealt a dead board:\n%s", seed, b)
			}
			for _, row := range b.Rows() {
				for _, tile := range row {
					if !tile.IsGem(tt.palette) {
						t.Fatalf("tile %v outside palette %d", tile, tt.palette)
					}
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(rand.New(rand.NewSource(42)), 8, 8, 5, DefaultGenerationAttempts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(rand.New(rand.NewSource(42)), 8, 8, 5, DefaultGenerationAttempts)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("same seed dealt different boards:\n%s\n\n%s", a, b)
	}
}

func TestGenerateExhausted(t *testing.T) {
	// A 2x2 board can never hold a run, so no swap is ever valid.
	_, err := Generate(rand.New(rand.NewSource(1)), 2, 2, 5, 20)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Errorf("Generate(2x2) error = %v, want ErrGenerationExhausted", err)
	}
}
