package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemduel/internal/config"
	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/games/gems"
	"github.com/vovakirdan/gemduel/internal/match3"
	"github.com/vovakirdan/gemduel/internal/storage"
)

var (
	flagSimGames    int
	flagSimMode     string
	flagSimSkill1   float64
	flagSimSkill2   float64
	flagSimMaxTurns int
	flagSimSave     bool
	flagSimVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let two CPUs play each other",
	Long: `Play games between two CPU players without a terminal UI and print
a summary. Useful to tune the config: targets, palette size and scoring.

Examples:
  gemduel sim --games 100
  gemduel sim --mode moves --skill1 1 --skill2 0.3
  gemduel sim --difficulty hard --seed 42 --verbose
  gemduel sim --games 20 --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of games to play")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "duel", "Rules: duel or moves")
	simCmd.Flags().Float64Var(&flagSimSkill1, "skill1", 1, "Skill of the first CPU (0-1)")
	simCmd.Flags().Float64Var(&flagSimSkill2, "skill2", 0.75, "Skill of the second CPU (0-1)")
	simCmd.Flags().IntVar(&flagSimMaxTurns, "max-turns", 500, "Stop a game after this many moves (0 = no cap)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished games in the duel history")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every turn")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// simTally adds up the outcomes of simulated games.
type simTally struct {
	wins       map[core.PlayerID]int
	noWinner   int // finished draws and losses
	unfinished int // cut off by --max-turns
	stalled    int
	turns      int
}

func newSimTally() *simTally {
	return &simTally{wins: map[core.PlayerID]int{}}
}

func (t *simTally) add(res gems.SimResult) {
	t.turns += res.Turns
	switch {
	case !res.Finished:
		t.unfinished++
	case res.Winner == 0:
		t.noWinner++
	default:
		t.wins[res.Winner]++
	}
}

func (t *simTally) played() int {
	return t.wins[core.Player1] + t.wins[core.Player2] + t.noWinner + t.unfinished
}

func (t *simTally) summary() string {
	line := fmt.Sprintf("Games: %d  P1 wins: %d  P2 wins: %d  No winner: %d  Unfinished: %d  Stalled: %d",
		t.played(), t.wins[core.Player1], t.wins[core.Player2], t.noWinner, t.unfinished, t.stalled)
	if n := t.played(); n > 0 {
		line += fmt.Sprintf("\nAverage turns: %.1f", float64(t.turns)/float64(n))
	}
	return line
}

// loadSimConfig reads the game config, applies the preset and checks that
// the engine accepts it for the requested rules.
func loadSimConfig(path, difficulty, modeName string) (config.GemsConfig, match3.Mode, error) {
	mode, err := match3.ParseMode(modeName)
	if err != nil {
		return config.GemsConfig{}, 0, err
	}

	cfg, err := config.LoadGems(path)
	if err != nil {
		return cfg, mode, err
	}
	preset, err := config.ParseDifficultyPreset(difficulty)
	if err != nil {
		return cfg, mode, err
	}
	config.ApplyGemsPreset(&cfg, preset)

	if _, err := cfg.EngineConfig(mode, 1); err != nil {
		return cfg, mode, err
	}
	return cfg, mode, nil
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gemduel-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, mode, err := loadSimConfig(flagConfig, flagDifficulty, flagSimMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tally, err := playSims(logger, cfg, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(tally.summary())
}

// playSims runs --games CPU duels and records finished ones when --save
// is set.
func playSims(logger *log.Logger, cfg config.GemsConfig, mode match3.Mode) (*simTally, error) {
	var store *storage.Store
	if flagSimSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tally := newSimTally()
	for i := range flagSimGames {
		gameSeed := seed + int64(i)
		engineCfg, err := cfg.EngineConfig(mode, gameSeed)
		if err != nil {
			return tally, err
		}

		start := time.Now()
		res, err := gems.Simulate(engineCfg,
			gems.NewCPU(gameSeed+1, flagSimSkill1),
			gems.NewCPU(gameSeed+2, flagSimSkill2),
			flagSimMaxTurns,
			func(out match3.TurnOutcome) {
				logger.Debug("turn", "game", i+1, "player", out.Player, "points", out.Points,
					"passes", out.Passes, "p1", out.Scores.Player1, "p2", out.Scores.Player2)
			})
		if err != nil {
			tally.stalled++
			logger.Warn("game stalled", "game", i+1, "seed", gameSeed, "error", err)
			continue
		}

		tally.add(res)
		logger.Info("game over",
			"game", i+1,
			"seed", gameSeed,
			"status", res.Status,
			"finished", res.Finished,
			"p1", res.Scores.Player1,
			"p2", res.Scores.Player2,
			"turns", res.Turns,
			"best_chain", res.BestChain,
			"reshuffles", res.Reshuffles,
			"elapsed", time.Since(start).Round(time.Microsecond),
		)

		if store != nil && res.Finished {
			_, err := store.SaveDuel(storage.DuelResult{
				GameID:   "gems_sim",
				Mode:     mode.String(),
				Opponent: "cpu",
				Score1:   res.Scores.Player1,
				Score2:   res.Scores.Player2,
				Winner:   int(res.Winner),
				Status:   res.Status.String(),
				Turns:    res.Turns,
			})
			if err != nil {
				logger.Warn("cannot save duel", "error", err)
			}
		}
	}
	return tally, nil
}
