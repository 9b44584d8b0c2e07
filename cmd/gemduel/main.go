// gemduel is a two-player match-three game for the terminal.
//
// Usage:
//
//	gemduel list              - List available game variants
//	gemduel play <game>       - Play a variant
//	gemduel menu              - Start menu to pick variants interactively
//	gemduel serve             - Start SSH server for remote play
//	gemduel scores <game>     - Show high scores and duel history
//	gemduel sim               - Run CPU vs CPU games without a terminal UI
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.gemduel/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/gemduel/internal/games/gems"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemduel",
	Short: "Gem Duel - two-player match-three in your terminal",
	Long: `Gem Duel is a turn-based match-three game for two players sharing
one board. Swap neighbouring gems to line up three or more of a kind;
cleared gems score points and cascades keep paying out.

Available commands:
  list     - Show all game variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and duel history
  sim      - Let two CPUs play each other

Examples:
  gemduel list
  gemduel play gems
  gemduel play gems_cpu --difficulty hard
  gemduel menu
  gemduel serve --ssh :2222
  gemduel scores gems_cpu`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gemduel/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
