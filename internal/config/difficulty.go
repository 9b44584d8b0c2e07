package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. The empty string means
// "use the config as loaded" and maps to DifficultyFixed.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return DifficultyFixed, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// IsFixedPreset returns true if the preset leaves the loaded config alone.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed || preset == ""
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
// Easy plays with four gem kinds and hard with six.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Palette = 4
		cfg.Duel.WinningScore = 3000
		cfg.Moves.WinningScore = 8000
		cfg.Moves.MoveLimit = 40
		cfg.CPU.Skill = 0.4
		cfg.CPU.ThinkTicks = 45
	case DifficultyNormal:
		cfg.Board.Palette = 5
		cfg.Duel.WinningScore = 5000
		cfg.Moves.WinningScore = 10000
		cfg.Moves.MoveLimit = 30
		cfg.CPU.Skill = 0.75
		cfg.CPU.ThinkTicks = 30
	case DifficultyHard:
		cfg.Board.Palette = 6
		cfg.Duel.WinningScore = 7000
		cfg.Moves.WinningScore = 12000
		cfg.Moves.MoveLimit = 25
		cfg.CPU.Skill = 1.0
		cfg.CPU.ThinkTicks = 15
	}
}
