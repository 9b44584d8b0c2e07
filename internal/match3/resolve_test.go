package match3

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestResolver(b *Board, cfg Config) *Resolver {
	return NewResolver(b, rand.New(rand.NewSource(7)), cfg)
}

func TestDropGems(t *testing.T) {
	b := MustParseBoard(
		"R.G",
		".B.",
		"Y.M",
		"..C",
	)

	drops := DropGems(b)

	want := MustParseBoard(
		"...",
		"..G",
		"R.M",
		"YBC",
	)
	if !b.Equal(want) {
		t.Errorf("DropGems() board:\n%s\nwant:\n%s", b, want)
	}

	wantDrops := []Drop{
		{Col: 0, FromRow: 2, ToRow: 3, Tile: Yellow},
		{Col: 0, FromRow: 0, ToRow: 2, Tile: Red},
		{Col: 1, FromRow: 1, ToRow: 3, Tile: Blue},
		{Col: 2, FromRow: 0, ToRow: 1, Tile: Green},
	}
	if len(drops) != len(wantDrops) {
		t.Fatalf("DropGems() = %+v, want %+v", drops, wantDrops)
	}
	for i := range drops {
		if drops[i] != wantDrops[i] {
			t.Errorf("drop %d = %+v, want %+v", i, drops[i], wantDrops[i])
		}
	}
}

func TestDropGemsKeepsColumnOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for range 50 {
		b := NewBoard(6, 5)
		for r := range 6 {
			for c := range 5 {
				if rng.Intn(3) > 0 {
					b.Set(r, c, Tile(1+rng.Intn(5)))
				}
			}
		}
		before := b.Clone()

		DropGems(b)

		for c := range 5 {
			var want, got []Tile
			for r := range 6 {
				if tile := before.Get(r, c); tile != Empty {
					want = append(want, tile)
				}
			}
			seenGem := false
			for r := range 6 {
				tile := b.Get(r, c)
				if tile == Empty && seenGem {
					t.Fatalf("column %d has a gap below a gem:\n%s", c, b)
				}
				if tile != Empty {
					seenGem = true
					got = append(got, tile)
				}
			}
			if len(got) != len(want) {
				t.Fatalf("column %d lost gems: %v -> %v", c, want, got)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("column %d order changed: %v -> %v", c, want, got)
				}
			}
		}
	}
}

func TestRefill(t *testing.T) {
	b := MustParseBoard("..R", "G..", "BYM")
	filled := Refill(b, rand.New(rand.NewSource(1)), 3)

	if len(filled) != 4 {
		t.Errorf("Refill() filled %d cells, want 4", len(filled))
	}
	for r := range 3 {
		for c := range 3 {
			if b.Get(r, c) == Empty {
				t.Errorf("cell (%d,%d) still empty", r, c)
			}
		}
	}
	for _, c := range filled {
		if !b.At(c).IsGem(3) {
			t.Errorf("refilled %v with %v outside palette", c, b.At(c))
		}
	}
	if b.Get(2, 2) != Magenta {
		t.Error("Refill() must not touch occupied cells")
	}
}

func TestResolveSwapNoMatchReverts(t *testing.T) {
	b := MustParseBoard(scenarioBoard...)
	before := b.Clone()
	r := newTestResolver(b, DefaultConfig())

	res, err := r.ResolveSwap(Move{Cell{0, 0}, Cell{0, 1}})
	if err != nil {
		t.Fatalf("ResolveSwap() failed: %v", err)
	}
	if res.Matched || res.Points != 0 || res.Combo != 1 {
		t.Errorf("unexpected resolution: %+v", res)
	}
	if !b.Equal(before) {
		t.Errorf("board not restored:\n%s", b)
	}
	if len(res.Steps) != 2 || res.Steps[0].Kind != StepSwap || res.Steps[1].Kind != StepRevert {
		t.Errorf("steps = %v", res.Steps)
	}
	if r.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", r.Phase())
	}
}

func TestResolveSwapClearsRun(t *testing.T) {
	b := MustParseBoard(scenarioBoard...)
	r := newTestResolver(b, DefaultConfig())

	res, err := r.ResolveSwap(Move{Cell{2, 2}, Cell{3, 2}})
	if err != nil {
		t.Fatalf("ResolveSwap() failed: %v", err)
	}
	if !res.Matched {
		t.Fatal("swap should match")
	}

	clears := clearSteps(res.Steps)
	if len(clears) == 0 {
		t.Fatal("no clear step")
	}
	first := clears[0]
	want := []Cell{{3, 0}, {3, 1}, {3, 2}}
	if len(first.Cleared) != len(want) {
		t.Fatalf("cleared %v, want %v", first.Cleared, want)
	}
	for i := range want {
		if first.Cleared[i] != want[i] {
			t.Errorf("cleared %v, want %v", first.Cleared, want)
		}
	}
	if first.Points != 3*DefaultPointsPerTile || first.Combo != 1 {
		t.Errorf("first pass points=%d combo=%d, want 300 and 1", first.Points, first.Combo)
	}

	total := 0
	for _, s := range clears {
		total += s.Points
	}
	if res.Points != total {
		t.Errorf("Points = %d, sum of passes = %d", res.Points, total)
	}
	if HasAnyMatch(b) {
		t.Errorf("board should be settled:\n%s", b)
	}
	if res.Steps[1].Kind != StepClear || res.Steps[2].Kind != StepDrop || res.Steps[3].Kind != StepRefill {
		t.Errorf("unexpected step order: %v %v %v", res.Steps[1].Kind, res.Steps[2].Kind, res.Steps[3].Kind)
	}
}

func TestResolveSwapCascadeRaisesCombo(t *testing.T) {
	b := MustParseBoard(cascadeBoard...)
	cfg := DefaultConfig()
	cfg.Palette = 6
	r := newTestResolver(b, cfg)

	res, err := r.ResolveSwap(Move{Cell{3, 0}, Cell{3, 1}})
	if err != nil {
		t.Fatalf("ResolveSwap() failed: %v", err)
	}

	clears := clearSteps(res.Steps)
	if len(clears) < 2 {
		t.Fatalf("expected a cascade, got %d passes", len(clears))
	}
	if clears[0].Combo != 1 || clears[0].Points != 300 {
		t.Errorf("pass 1 combo=%d points=%d, want 1 and 300", clears[0].Combo, clears[0].Points)
	}
	if clears[1].Combo != 2 {
		t.Errorf("pass 2 combo = %d, want 2", clears[1].Combo)
	}
	for _, c := range []Cell{{4, 0}, {4, 1}, {4, 2}} {
		if !containsCell(clears[1].Cleared, c) {
			t.Errorf("pass 2 should clear %v, cleared %v", c, clears[1].Cleared)
		}
	}
	if clears[1].Points < 3*DefaultPointsPerTile*2 {
		t.Errorf("pass 2 points = %d, want at least 600", clears[1].Points)
	}
	if res.Passes != len(clears) {
		t.Errorf("Passes = %d, want %d", res.Passes, len(clears))
	}
}

func TestResolveSwapCascadeLimit(t *testing.T) {
	b := MustParseBoard(cascadeBoard...)
	cfg := DefaultConfig()
	cfg.Palette = 6
	cfg.MaxCascadePasses = 1
	r := newTestResolver(b, cfg)

	res, err := r.ResolveSwap(Move{Cell{3, 0}, Cell{3, 1}})
	if !errors.Is(err, ErrCascadeLimit) {
		t.Fatalf("ResolveSwap() error = %v, want ErrCascadeLimit", err)
	}
	if res.Passes != 1 || res.Points != 300 {
		t.Errorf("partial resolution = %+v", res)
	}
}

func TestScoringPolicies(t *testing.T) {
	tests := []struct {
		name    string
		scoring Scoring
		want    int
	}{
		{"union counts shared cell once", ScoreUnion, 5 * DefaultPointsPerTile},
		{"per run counts shared cell twice", ScorePerRun, 6 * DefaultPointsPerTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParseBoard(crossBoard...)
			cfg := DefaultConfig()
			cfg.Palette = 6
			cfg.Scoring = tt.scoring
			r := newTestResolver(b, cfg)

			res, err := r.ResolveSwap(Move{Cell{2, 2}, Cell{2, 3}})
			if err != nil {
				t.Fatalf("ResolveSwap() failed: %v", err)
			}
			first := clearSteps(res.Steps)[0]
			if first.Points != tt.want {
				t.Errorf("first pass points = %d, want %d", first.Points, tt.want)
			}
			if len(first.Cleared) != 5 {
				t.Errorf("mask should hold 5 cells under every policy, got %d", len(first.Cleared))
			}
		})
	}
}

func TestKindPoints(t *testing.T) {
	b := MustParseBoard(scenarioBoard...)
	cfg := DefaultConfig()
	cfg.KindPoints = ClassicKindPoints()
	r := newTestResolver(b, cfg)

	res, err := r.ResolveSwap(Move{Cell{2, 2}, Cell{3, 2}})
	if err != nil {
		t.Fatalf("ResolveSwap() failed: %v", err)
	}
	if got := clearSteps(res.Steps)[0].Points; got != 900 {
		t.Errorf("three reds scored %d, want 900", got)
	}
}

func TestReshuffle(t *testing.T) {
	b := MustParseBoard("RGYB", "YBMR", "MRGY", "GYBM")
	r := newTestResolver(b, DefaultConfig())

	step, err := r.Reshuffle()
	if err != nil {
		t.Fatalf("Reshuffle() failed: %v", err)
	}
	if step.Kind != StepReshuffle || !step.Board.Equal(b) {
		t.Errorf("unexpected step %v", step.Kind)
	}
	if !HasAnyValidMove(b) || HasAnyMatch(b) {
		t.Errorf("reshuffled board is not playable:\n%s", b)
	}
	if r.Combo() != 1 {
		t.Errorf("Combo() = %d after reshuffle", r.Combo())
	}
}

func TestParseScoring(t *testing.T) {
	if s, err := ParseScoring("per_run"); err != nil || s != ScorePerRun {
		t.Errorf("ParseScoring(per_run) = %v, %v", s, err)
	}
	if s, err := ParseScoring(""); err != nil || s != ScoreUnion {
		t.Errorf("ParseScoring(\"\") = %v, %v", s, err)
	}
	if _, err := ParseScoring("double"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseScoring(double) error = %v", err)
	}
}
