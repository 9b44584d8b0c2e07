package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/games/gems"
	"github.com/vovakirdan/gemduel/internal/platform/feed"
	"github.com/vovakirdan/gemduel/internal/platform/tui"
	"github.com/vovakirdan/gemduel/internal/registry"
	"github.com/vovakirdan/gemduel/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFeedAddr   string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified variant.

Controls:
  Arrows/WASD/hjkl - Move the cursor
  Enter/Space      - Select a gem, then a neighbour to swap
  Esc/B            - Drop the selection (back to menu after game over)
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Four gem kinds, lower targets, slow and sloppy CPU
  normal - Five gem kinds, default targets
  hard   - Six gem kinds, higher targets, quick and precise CPU
  fixed  - Use the config file as is

Spectators:
  --feed :8080 streams every move as JSON over a WebSocket at /feed.

Examples:
  gemduel play gems
  gemduel play gems_cpu --difficulty easy
  gemduel play gems_moves --config ./my-gems.yaml
  gemduel play gems --feed :8080`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve a spectator feed on this address (host:port)")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database, or returns nil with a warning so
// games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// startFeed starts the spectator feed when --feed is set. The returned
// function stops it.
func startFeed() (stop func(), err error) {
	if flagFeedAddr == "" {
		return func() {}, nil
	}

	// The terminal belongs to the game, so the feed logs to a file.
	logPath := filepath.Join(filepath.Dir(expandHome(flagDBPath)), "feed.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open feed log: %w", err)
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Prefix:          "gemduel-feed",
	})

	hub := feed.NewHub(logger)
	addr, err := hub.Start(flagFeedAddr)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("cannot start feed: %w", err)
	}
	gems.SetPublisher(hub)
	fmt.Printf("Spectator feed on ws://%s/feed\n", addr)

	return func() {
		gems.SetPublisher(nil)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		hub.Shutdown(ctx)
		logFile.Close()
	}, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gemduel list' to see available games.")
		os.Exit(1)
	}

	// Set config path and difficulty before creation
	gems.SetConfigPath(flagConfig)
	gems.SetDifficultyPreset(flagDifficulty)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Opening the store also creates ~/.gemduel for the feed log
	store := openStore()

	stopFeed, err := startFeed()
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	_, runErr := tui.Run(game, store, terminalConfig())

	// Close store before potential exit
	stopFeed()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
