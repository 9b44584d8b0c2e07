package match3

import (
	"fmt"
	"math/rand"
)

// Phase is the resolver's position in the swap state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSwapping
	PhaseReverting
	PhaseClearing
	PhaseDropping
	PhaseRefilling
	PhaseRechecking
	PhaseReshuffling
)

var phaseNames = [...]string{"idle", "swapping", "reverting", "clearing", "dropping", "refilling", "rechecking", "reshuffling"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// StepKind identifies the stage a Step reports.
type StepKind int

const (
	StepDeal StepKind = iota
	StepSwap
	StepRevert
	StepClear
	StepDrop
	StepRefill
	StepReshuffle
)

var stepNames = [...]string{"deal", "swap", "revert", "clear", "drop", "refill", "reshuffle"}

func (k StepKind) String() string {
	if int(k) < len(stepNames) {
		return stepNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Drop records one gem falling inside its column.
type Drop struct {
	Col     int  `json:"col"`
	FromRow int  `json:"from_row"`
	ToRow   int  `json:"to_row"`
	Tile    Tile `json:"tile"`
}

// Step is one observable stage of a turn. Board is a snapshot taken right
// after the stage was applied.
type Step struct {
	Kind    StepKind `json:"kind"`
	Pass    int      `json:"pass,omitempty"`
	Move    *Move    `json:"move,omitempty"`
	Runs    []Run    `json:"runs,omitempty"`
	Cleared []Cell   `json:"cleared,omitempty"`
	Drops   []Drop   `json:"drops,omitempty"`
	Filled  []Cell   `json:"filled,omitempty"`
	Points  int      `json:"points,omitempty"`
	Combo   int      `json:"combo,omitempty"`
	Board   *Board   `json:"board"`
}

// Resolution summarizes a resolved swap.
type Resolution struct {
	Matched    bool
	Points     int
	Cleared    int
	Passes     int
	Combo      int // multiplier reached when the chain ended
	Reshuffled bool
	Stalemate  bool // no valid move left and reshuffling is disabled
	Steps      []Step
}

// Scoring selects how overlapping runs are paid.
type Scoring int

const (
	// ScoreUnion pays every cleared cell once.
	ScoreUnion Scoring = iota
	// ScorePerRun pays every run in full, so a cell at the crossing of a
	// horizontal and a vertical run is paid twice.
	ScorePerRun
)

func (s Scoring) String() string {
	if s == ScorePerRun {
		return "per_run"
	}
	return "union"
}

// ParseScoring converts a config name into a Scoring policy.
func ParseScoring(name string) (Scoring, error) {
	switch name {
	case "", "union":
		return ScoreUnion, nil
	case "per_run":
		return ScorePerRun, nil
	default:
		return ScoreUnion, fmt.Errorf("%w: unknown scoring policy %q", ErrInvalidConfig, name)
	}
}

// Resolver runs the clear, drop, refill and recheck cycle on a board it
// shares with its owner.
type Resolver struct {
	board *Board
	rng   *rand.Rand

	palette       int
	pointsPerTile int
	kindPoints    map[Tile]int
	scoring       Scoring
	maxPasses     int
	maxAttempts   int
	reshuffle     bool

	phase Phase
	combo int
}

// NewResolver builds a resolver for board using the scoring and limit
// settings of cfg. cfg is expected to be validated.
func NewResolver(board *Board, rng *rand.Rand, cfg Config) *Resolver {
	cfg = cfg.withDefaults()
	return &Resolver{
		board:         board,
		rng:           rng,
		palette:       cfg.Palette,
		pointsPerTile: cfg.PointsPerTile,
		kindPoints:    cfg.KindPoints,
		scoring:       cfg.Scoring,
		maxPasses:     cfg.MaxCascadePasses,
		maxAttempts:   cfg.MaxGenerationAttempts,
		reshuffle:     cfg.Mode.reshuffles(),
		combo:         1,
	}
}

// Phase returns the current state machine phase. Outside ResolveSwap it is
// always PhaseIdle.
func (r *Resolver) Phase() Phase {
	return r.phase
}

// Combo returns the multiplier reached by the last chain: 1 after a
// reverted swap or a reshuffle, one more than the last pass otherwise.
func (r *Resolver) Combo() int {
	return r.combo
}

// ResolveSwap swaps the two cells of m and resolves the result. Every swap
// starts a new chain with the combo at 1. Without a match the swap is
// undone. With a match the cascade runs until the board settles, the combo
// growing by one per pass; if no valid move remains afterwards the board is
// reshuffled and the combo resets. The returned error is ErrCascadeLimit or wraps
// ErrGenerationExhausted; the Resolution is filled up to the failure.
func (r *Resolver) ResolveSwap(m Move) (Resolution, error) {
	defer func() { r.phase = PhaseIdle }()

	var res Resolution
	r.combo = 1

	r.phase = PhaseSwapping
	r.board.Swap(m.A, m.B)
	res.Steps = append(res.Steps, Step{Kind: StepSwap, Move: &m, Board: r.board.Clone()})

	runs := FindRuns(r.board)
	if len(runs) == 0 {
		r.phase = PhaseReverting
		r.board.Swap(m.A, m.B)
		res.Combo = r.combo
		res.Steps = append(res.Steps, Step{Kind: StepRevert, Move: &m, Board: r.board.Clone()})
		return res, nil
	}

	res.Matched = true
	if err := r.cascade(runs, &res); err != nil {
		res.Combo = r.combo
		return res, err
	}

	if !HasAnyValidMove(r.board) {
		if !r.reshuffle {
			res.Stalemate = true
		} else {
			step, err := r.Reshuffle()
			if err != nil {
				res.Combo = r.combo
				return res, err
			}
			res.Reshuffled = true
			res.Steps = append(res.Steps, step)
		}
	}

	res.Combo = r.combo
	return res, nil
}

// cascade clears runs and repeats drop, refill and recheck until the board
// holds no run.
func (r *Resolver) cascade(runs []Run, res *Resolution) error {
	for pass := 1; len(runs) > 0; pass++ {
		if pass > r.maxPasses {
			return fmt.Errorf("%w after %d passes", ErrCascadeLimit, r.maxPasses)
		}

		r.phase = PhaseClearing
		mask := maskOf(r.board, runs)
		points := r.passPoints(mask, runs) * r.combo
		cleared := mask.Cells()
		for _, c := range cleared {
			r.board.Set(c.Row, c.Col, Empty)
		}
		res.Steps = append(res.Steps, Step{
			Kind:    StepClear,
			Pass:    pass,
			Runs:    runs,
			Cleared: cleared,
			Points:  points,
			Combo:   r.combo,
			Board:   r.board.Clone(),
		})
		res.Points += points
		res.Cleared += len(cleared)
		res.Passes = pass
		r.combo++

		r.phase = PhaseDropping
		drops := DropGems(r.board)
		res.Steps = append(res.Steps, Step{Kind: StepDrop, Pass: pass, Drops: drops, Board: r.board.Clone()})

		r.phase = PhaseRefilling
		filled := Refill(r.board, r.rng, r.palette)
		res.Steps = append(res.Steps, Step{Kind: StepRefill, Pass: pass, Filled: filled, Board: r.board.Clone()})

		r.phase = PhaseRechecking
		runs = FindRuns(r.board)
	}
	return nil
}

// passPoints returns the unmultiplied value of one clearing pass.
func (r *Resolver) passPoints(mask Mask, runs []Run) int {
	total := 0
	switch r.scoring {
	case ScorePerRun:
		for _, run := range runs {
			total += run.Length * r.tileValue(run.Kind)
		}
	default:
		for _, c := range mask.Cells() {
			total += r.tileValue(r.board.At(c))
		}
	}
	return total
}

func (r *Resolver) tileValue(t Tile) int {
	if v, ok := r.kindPoints[t]; ok {
		return v
	}
	return r.pointsPerTile
}

// Reshuffle replaces the whole board with a freshly generated one and
// resets the combo.
func (r *Resolver) Reshuffle() (Step, error) {
	r.phase = PhaseReshuffling
	rows, cols := r.board.Dimensions()
	fresh, err := Generate(r.rng, rows, cols, r.palette, r.maxAttempts)
	if err != nil {
		return Step{}, fmt.Errorf("reshuffle: %w", err)
	}
	r.board.load(fresh)
	r.combo = 1
	return Step{Kind: StepReshuffle, Board: r.board.Clone()}, nil
}

// DropGems compacts every column toward the bottom row, keeping the gems'
// top-to-bottom order, and leaves the vacated cells Empty. It returns the
// gems that moved, bottom-most first within each column.
func DropGems(b *Board) []Drop {
	var drops []Drop
	for c := range b.cols {
		write := b.rows - 1
		for r := b.rows - 1; r >= 0; r-- {
			t := b.Get(r, c)
			if t == Empty {
				continue
			}
			if r != write {
				b.Set(write, c, t)
				b.Set(r, c, Empty)
				drops = append(drops, Drop{Col: c, FromRow: r, ToRow: write, Tile: t})
			}
			write--
		}
	}
	return drops
}

// Refill assigns a uniformly random gem to every Empty cell, row-major, and
// returns the cells it filled.
func Refill(b *Board, rng *rand.Rand, palette int) []Cell {
	var filled []Cell
	for r := range b.rows {
		for c := range b.cols {
			if b.Get(r, c) == Empty {
				b.Set(r, c, Tile(1+rng.Intn(palette)))
				filled = append(filled, Cell{r, c})
			}
		}
	}
	return filled
}
