package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/gemduel/internal/core"
)

func TestPaletteRenderKeepsLayout(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 0, '◆', core.ColorRed)
	s.SetColor(3, 0, '◆', core.ColorBrightRed)
	s.DrawTextColor(0, 1, "xy", core.ColorGray)

	out := NewPalette(nil).Render(s)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() has %d lines, want 2", len(lines))
	}
	if lines[0] != "ab◆◆ " {
		t.Errorf("row 0 = %q, want %q", lines[0], "ab◆◆ ")
	}
	if lines[1] != "xy   " {
		t.Errorf("row 1 = %q, want %q", lines[1], "xy   ")
	}
}

func TestTickCmdFallsBackToDefaultRate(t *testing.T) {
	if tickCmd(0) == nil {
		t.Fatal("tickCmd(0) returned nil")
	}
}
