package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemduel/internal/registry"
	"github.com/vovakirdan/gemduel/internal/storage"
)

var flagHistory int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and duel history for a game",
	Long: `Display the top 10 scores, duel statistics and the most recent
duels for the specified variant.

Examples:
  gemduel scores gems
  gemduel scores gems_cpu --history 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagHistory, "history", 10, "Number of recent duels to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gemduel list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printScores(store, info); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, info registry.GameInfo) error {
	scores, err := store.TopScores(info.ID, 10)
	if err != nil {
		return err
	}
	stats, err := store.GetGameStats(info.ID)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gemduel play %s' to set the first high score!\n", info.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)

	duelStats, err := store.GetDuelStats(info.ID)
	if err != nil {
		return err
	}
	if duelStats.Played == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Duels")
	fmt.Println()
	fmt.Printf("  Played %d  P1 wins %d  P2 wins %d  No winner %d  Avg turns %.1f\n",
		duelStats.Played, duelStats.P1Wins, duelStats.P2Wins, duelStats.NoWinner, duelStats.AvgTurns)

	duels, err := store.RecentDuels(info.ID, flagHistory)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %-16s  %-7s  %-7s  %-13s  %-5s  %s\n", "Date", "P1", "P2", "Status", "Turns", "Time")
	fmt.Printf("  %-16s  %-7s  %-7s  %-13s  %-5s  %s\n", "----", "--", "--", "------", "-----", "----")
	for _, d := range duels {
		fmt.Printf("  %-16s  %-7d  %-7d  %-13s  %-5d  %dm%02ds\n",
			d.CreatedAt.Format("2006-01-02 15:04"), d.Score1, d.Score2, d.Status, d.Turns,
			d.Duration/60, d.Duration%60)
	}
	return nil
}
