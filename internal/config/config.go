// Package config provides YAML-based configuration loading and difficulty
// presets for the gem duel.
package config

// GemsConfig contains all configuration for the gem duel.
type GemsConfig struct {
	Board     GemsBoard     `yaml:"board"`
	Duel      GemsRules     `yaml:"duel"`
	Moves     GemsRules     `yaml:"moves"`
	Scoring   GemsScoring   `yaml:"scoring"`
	Limits    GemsLimits    `yaml:"limits"`
	CPU       GemsCPU       `yaml:"cpu"`
	Animation GemsAnimation `yaml:"animation"`
}

// GemsBoard defines the board shape.
type GemsBoard struct {
	Rows    int `yaml:"rows"`
	Cols    int `yaml:"cols"`
	Palette int `yaml:"palette"` // number of gem kinds, 3..8
}

// GemsRules defines the end condition of one variant.
type GemsRules struct {
	WinningScore int `yaml:"winning_score"`
	MoveLimit    int `yaml:"move_limit"` // shared by both players, 0 = unlimited
}

// GemsScoring defines how cleared gems are paid.
type GemsScoring struct {
	PointsPerTile int            `yaml:"points_per_tile"`
	Policy        string         `yaml:"policy"`      // "union" or "per_run"
	KindPoints    map[string]int `yaml:"kind_points"` // keyed by gem name or letter
}

// GemsLimits bounds the engine's retry loops.
type GemsLimits struct {
	GenerationAttempts int `yaml:"generation_attempts"`
	CascadePasses      int `yaml:"cascade_passes"`
}

// GemsCPU tunes the computer opponent.
type GemsCPU struct {
	Skill      float64 `yaml:"skill"`       // 0.0 = random valid move, 1.0 = always the best
	ThinkTicks int     `yaml:"think_ticks"` // delay before the CPU moves
}

// GemsAnimation defines how long each resolution step stays on screen.
type GemsAnimation struct {
	StepTicks  int `yaml:"step_ticks"`
	DropTicks  int `yaml:"drop_ticks"`
	FlashTicks int `yaml:"flash_ticks"` // how long a rejection message stays up
}
