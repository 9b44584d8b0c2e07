package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the default gem duel configuration.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: GemsBoard{
			Rows:    8,
			Cols:    8,
			Palette: 5,
		},
		Duel: GemsRules{
			WinningScore: 5000,
		},
		Moves: GemsRules{
			WinningScore: 10000,
			MoveLimit:    30,
		},
		Scoring: GemsScoring{
			PointsPerTile: 100,
			Policy:        "union",
		},
		Limits: GemsLimits{
			GenerationAttempts: 1000,
			CascadePasses:      100,
		},
		CPU: GemsCPU{
			Skill:      0.75,
			ThinkTicks: 30,
		},
		Animation: GemsAnimation{
			StepTicks:  8,
			DropTicks:  10,
			FlashTicks: 90,
		},
	}
}
