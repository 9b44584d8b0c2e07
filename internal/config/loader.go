package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gemduel/internal/match3"
)

// LoadGems loads the gem duel configuration.
// Search order: customPath -> ~/.gemduel/configs/gems.yaml -> ./configs/gems.yaml -> embedded default
//
// Files only need to name the keys they change; everything else keeps its
// default value.
func LoadGems(customPath string) (GemsConfig, error) {
	cfg := DefaultGemsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("gems.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := parseOver(cfg, data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/gems.yaml"); err == nil {
		if parsed, ok := parseOver(cfg, data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := parseOver(cfg, defaultGemsYAML); ok {
		return parsed, nil
	}
	return DefaultGemsConfig(), nil // Fallback to hardcoded if embed fails
}

// parseOver decodes data on top of base. A file that fails to parse is
// skipped as a whole.
func parseOver(base GemsConfig, data []byte) (GemsConfig, bool) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gemduel", "configs", filename)
}

// Rules returns the end condition configured for mode.
func (c GemsConfig) Rules(mode match3.Mode) GemsRules {
	if mode == match3.ModeMoves {
		return c.Moves
	}
	return c.Duel
}

// EngineConfig converts the file configuration into an engine configuration
// for mode. The result is validated.
func (c GemsConfig) EngineConfig(mode match3.Mode, seed int64) (match3.Config, error) {
	scoring, err := match3.ParseScoring(c.Scoring.Policy)
	if err != nil {
		return match3.Config{}, err
	}

	var kindPoints map[match3.Tile]int
	if len(c.Scoring.KindPoints) > 0 {
		kindPoints = make(map[match3.Tile]int, len(c.Scoring.KindPoints))
		for key, pts := range c.Scoring.KindPoints {
			kind, ok := ParseKind(key)
			if !ok {
				return match3.Config{}, fmt.Errorf("%w: unknown gem %q in kind_points", match3.ErrInvalidConfig, key)
			}
			kindPoints[kind] = pts
		}
	}

	rules := c.Rules(mode)
	cfg := match3.Config{
		Rows:                  c.Board.Rows,
		Cols:                  c.Board.Cols,
		Palette:               c.Board.Palette,
		Mode:                  mode,
		WinningScore:          rules.WinningScore,
		MoveLimit:             rules.MoveLimit,
		PointsPerTile:         c.Scoring.PointsPerTile,
		KindPoints:            kindPoints,
		Scoring:               scoring,
		MaxGenerationAttempts: c.Limits.GenerationAttempts,
		MaxCascadePasses:      c.Limits.CascadePasses,
		Seed:                  seed,
	}
	if err := cfg.Validate(); err != nil {
		return match3.Config{}, err
	}
	return cfg, nil
}

// ParseKind resolves a gem by name ("red") or letter ("R"), ignoring case.
func ParseKind(key string) (match3.Tile, bool) {
	key = strings.TrimSpace(key)
	if len(key) == 1 {
		t, ok := match3.TileFromLetter(key[0])
		return t, ok && t != match3.Empty
	}
	for t := match3.Tile(1); t <= match3.MaxPalette; t++ {
		if strings.EqualFold(t.String(), key) {
			return t, true
		}
	}
	return match3.Empty, false
}
