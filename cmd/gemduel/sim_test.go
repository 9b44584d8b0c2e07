package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/games/gems"
	"github.com/vovakirdan/gemduel/internal/match3"
)

func TestSimTallySeparatesUnfinishedGames(t *testing.T) {
	tally := newSimTally()
	results := []gems.SimResult{
		{Status: match3.StatusPlayer1Wins, Winner: core.Player1, Turns: 10, Finished: true},
		{Status: match3.StatusPlayer2Wins, Winner: core.Player2, Turns: 12, Finished: true},
		{Status: match3.StatusDraw, Turns: 30, Finished: true},
		{Status: match3.StatusOngoing, Turns: 500, Finished: false},
		{Status: match3.StatusOngoing, Turns: 500, Finished: false},
	}
	for _, res := range results {
		tally.add(res)
	}
	tally.stalled = 1

	if tally.noWinner != 1 {
		t.Errorf("noWinner = %d, want 1 (the draw only)", tally.noWinner)
	}
	if tally.unfinished != 2 {
		t.Errorf("unfinished = %d, want 2", tally.unfinished)
	}
	if tally.played() != 5 {
		t.Errorf("played() = %d, want 5", tally.played())
	}

	summary := tally.summary()
	for _, want := range []string{
		"Games: 5", "P1 wins: 1", "P2 wins: 1", "No winner: 1", "Unfinished: 2", "Stalled: 1",
		"Average turns: 210.4",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary() = %q, missing %q", summary, want)
		}
	}
}

func TestSimTallyEmpty(t *testing.T) {
	summary := newSimTally().summary()
	if strings.Contains(summary, "Average") {
		t.Errorf("summary() of no games = %q, want no average", summary)
	}
}

func TestLoadSimConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		return path
	}
	good := writeConfig("good.yaml", "board:\n  rows: 6\n  cols: 6\n  palette: 5\n")
	tiny := writeConfig("tiny.yaml", "board:\n  rows: 2\n")
	noLimit := writeConfig("nolimit.yaml", "moves:\n  move_limit: 0\n")

	cfg, mode, err := loadSimConfig(good, "", "moves")
	if err != nil {
		t.Fatalf("loadSimConfig() failed: %v", err)
	}
	if mode != match3.ModeMoves || cfg.Board.Rows != 6 {
		t.Errorf("loadSimConfig() = rows %d mode %v", cfg.Board.Rows, mode)
	}

	tests := []struct {
		name       string
		path       string
		difficulty string
		mode       string
		engine     bool // error must wrap match3.ErrInvalidConfig
	}{
		{"unknown mode", good, "", "blitz", false},
		{"unknown difficulty", good, "insane", "duel", false},
		{"missing file", filepath.Join(dir, "absent.yaml"), "", "duel", false},
		{"board too small", tiny, "", "duel", true},
		{"moves without limit", noLimit, "", "moves", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadSimConfig(tt.path, tt.difficulty, tt.mode)
			if err == nil {
				t.Fatal("loadSimConfig() succeeded, want error")
			}
			if tt.engine && !errors.Is(err, match3.ErrInvalidConfig) {
				t.Errorf("loadSimConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
