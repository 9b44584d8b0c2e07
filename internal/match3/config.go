package match3

import "fmt"

// Mode selects the rule set of a session.
type Mode int

const (
	// ModeDuel is a score race. The first player to reach the winning
	// score wins; an optional shared move limit ends the game early and
	// the higher score takes it.
	ModeDuel Mode = iota

	// ModeMoves gives both players a shared move budget. Reaching the
	// winning score is a Win; running out of moves, or out of valid swaps,
	// is a Lose.
	ModeMoves
)

func (m Mode) String() string {
	if m == ModeMoves {
		return "moves"
	}
	return "duel"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode converts a config name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "duel":
		return ModeDuel, nil
	case "moves":
		return ModeMoves, nil
	default:
		return ModeDuel, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, name)
	}
}

func (m Mode) reshuffles() bool {
	return m == ModeDuel
}

// Config holds the construction parameters of an Engine.
type Config struct {
	Rows    int
	Cols    int
	Palette int // number of gem kinds in play

	Mode         Mode
	WinningScore int
	MoveLimit    int // shared by both players; 0 means unlimited (duel only)

	PointsPerTile int          // 0 means DefaultPointsPerTile
	KindPoints    map[Tile]int // overrides PointsPerTile per kind
	Scoring       Scoring

	MaxGenerationAttempts int // 0 means DefaultGenerationAttempts
	MaxCascadePasses      int // 0 means DefaultCascadePasses

	Seed int64
}

const (
	DefaultPointsPerTile      = 100
	DefaultGenerationAttempts = 1000
	DefaultCascadePasses      = 100
)

// DefaultConfig returns the classic duel: an 8x8 board with five kinds,
// first to 5000 points.
func DefaultConfig() Config {
	return Config{
		Rows:                  8,
		Cols:                  8,
		Palette:               5,
		Mode:                  ModeDuel,
		WinningScore:          5000,
		PointsPerTile:         DefaultPointsPerTile,
		Scoring:               ScoreUnion,
		MaxGenerationAttempts: DefaultGenerationAttempts,
		MaxCascadePasses:      DefaultCascadePasses,
	}
}

// MovesConfig returns the move-limited rules: 30 shared moves to reach
// 10000 points.
func MovesConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeMoves
	cfg.WinningScore = 10000
	cfg.MoveLimit = 30
	return cfg
}

// ClassicKindPoints is the per-kind payout table for the five classic
// gems.
func ClassicKindPoints() map[Tile]int {
	return map[Tile]int{
		Red:     300,
		Green:   250,
		Yellow:  200,
		Blue:    150,
		Magenta: 100,
	}
}

// Validate reports the first problem that would make the engine unusable.
// All returned errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Rows < MinRun || c.Cols < MinRun:
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalidConfig, c.Rows, c.Cols, MinRun, MinRun)
	case c.Palette < MinPalette:
		return fmt.Errorf("%w: palette %d is below %d", ErrInvalidConfig, c.Palette, MinPalette)
	case c.Palette > MaxPalette:
		return fmt.Errorf("%w: palette %d exceeds %d", ErrInvalidConfig, c.Palette, MaxPalette)
	case c.WinningScore <= 0:
		return fmt.Errorf("%w: winning score must be positive, got %d", ErrInvalidConfig, c.WinningScore)
	case c.MoveLimit < 0:
		return fmt.Errorf("%w: move limit must not be negative, got %d", ErrInvalidConfig, c.MoveLimit)
	case c.Mode == ModeMoves && c.MoveLimit == 0:
		return fmt.Errorf("%w: moves mode needs a move limit", ErrInvalidConfig)
	case c.Mode != ModeDuel && c.Mode != ModeMoves:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	case c.PointsPerTile < 0:
		return fmt.Errorf("%w: points per tile must not be negative, got %d", ErrInvalidConfig, c.PointsPerTile)
	case c.MaxGenerationAttempts < 0 || c.MaxCascadePasses < 0:
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidConfig)
	case c.Scoring != ScoreUnion && c.Scoring != ScorePerRun:
		return fmt.Errorf("%w: unknown scoring policy %d", ErrInvalidConfig, c.Scoring)
	}

	for kind, pts := range c.KindPoints {
		if !kind.IsGem(c.Palette) {
			return fmt.Errorf("%w: points given for %v, which is not in a palette of %d", ErrInvalidConfig, kind, c.Palette)
		}
		if pts < 0 {
			return fmt.Errorf("%w: points for %v must not be negative", ErrInvalidConfig, kind)
		}
	}
	return nil
}

// withDefaults fills zero-valued tuning fields.
func (c Config) withDefaults() Config {
	if c.PointsPerTile == 0 {
		c.PointsPerTile = DefaultPointsPerTile
	}
	if c.MaxGenerationAttempts == 0 {
		c.MaxGenerationAttempts = DefaultGenerationAttempts
	}
	if c.MaxCascadePasses == 0 {
		c.MaxCascadePasses = DefaultCascadePasses
	}
	return c
}
