package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/sim"
)

func TestArenaViewportMapping(t *testing.T) {
	// 710×510 world units onto 71×51 cells: 10 units per cell.
	vp := ArenaViewport(71, 51, 0, 0)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"center col", vp.Col(0), 35},
		{"center row", vp.Row(0), 25},
		{"left edge", vp.Col(-355), 0},
		{"right edge clamps", vp.Col(355), 70},
		{"far right clamps", vp.Col(1000), 70},
		{"top edge", vp.Row(255), 0},
		{"below floor clamps", vp.Row(-1000), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, expected %d", tt.got, tt.want)
			}
		})
	}
}

func TestViewportOffset(t *testing.T) {
	vp := ArenaViewport(71, 51, 3, 2)
	if got := vp.Col(0); got != 38 {
		t.Errorf("Col(0) = %d, expected 38", got)
	}
	if got := vp.Row(0); got != 27 {
		t.Errorf("Row(0) = %d, expected 27", got)
	}
}

func TestViewportContains(t *testing.T) {
	vp := ArenaViewport(71, 51, 0, 0)
	if !vp.Contains(core.V(0, -200)) {
		t.Error("paddle position should be inside")
	}
	if vp.Contains(core.V(0, -300)) {
		t.Error("escaped ball should be outside")
	}
}

func TestDrawWorld(t *testing.T) {
	s := core.NewScreen(71, 51)
	vp := ArenaViewport(71, 51, 0, 0)

	DrawWorld(s, vp, []sim.Drawable{
		{Kind: entity.KindBall, Shape: entity.Circle(5), Pos: core.V(0, 0), Color: core.ColorWhite},
		{Kind: entity.KindBrick, Shape: entity.Rect(100, 10), Pos: core.V(100, 100), Color: core.ColorBisque, HP: 1},
		{Kind: entity.KindBrick, Shape: entity.Rect(100, 10), Pos: core.V(-130, 100), Color: core.ColorBisque, HP: 2},
		{Kind: entity.KindBall, Shape: entity.Circle(5), Pos: core.V(0, -300), Color: core.ColorWhite},
	})

	if c := s.GetCell(35, 25); c.Rune != '●' || c.Color != core.ColorWhite {
		t.Errorf("ball cell = %+v", c)
	}
	if c := s.GetCell(45, 15); c.Rune != '▒' || c.Color != core.ColorBisque {
		t.Errorf("damaged brick cell = %+v", c)
	}
	if c := s.GetCell(vp.Col(-130), vp.Row(100)); c.Rune != '█' {
		t.Errorf("healthy brick cell = %+v", c)
	}
	if c := s.GetCell(35, 50); c.Rune != ' ' {
		t.Errorf("escaped ball should not be drawn, got %q", c.Rune)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawText(2, 0, "HELLO", core.ColorDefault)
	s.SetColored(0, 1, '█', core.ColorGray)

	out := RenderScreen(s)
	if !strings.Contains(out, "HELLO") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", got)
	}
}
