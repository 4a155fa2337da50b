package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBisque:       lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Viewport maps the world rectangle [MinX,MaxX]×[MinY,MaxY] onto a block of
// Cols×Rows cells whose top-left cell is (OffX, OffY). World y points up,
// screen rows grow down.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Cols, Rows int
	OffX, OffY int
}

// ArenaViewport covers the canonical arena from the outer wall faces down to
// the escape line.
func ArenaViewport(cols, rows, offX, offY int) Viewport {
	edge := sim.SideWallX + sim.WallThickness/2
	return Viewport{
		MinX: -edge,
		MaxX: edge,
		MinY: -(sim.TopWallY + sim.WallThickness/2),
		MaxY: sim.TopWallY + sim.WallThickness/2,
		Cols: max(cols, 1),
		Rows: max(rows, 1),
		OffX: offX,
		OffY: offY,
	}
}

// Contains reports whether p lies inside the mapped world rectangle.
func (v Viewport) Contains(p core.Vec2) bool {
	return p.X >= v.MinX && p.X <= v.MaxX && p.Y >= v.MinY && p.Y <= v.MaxY
}

// Col returns the screen column for world x, clamped to the viewport.
func (v Viewport) Col(x float64) int {
	c := int(math.Floor((x - v.MinX) / (v.MaxX - v.MinX) * float64(v.Cols)))
	return v.OffX + core.Clamp(c, 0, v.Cols-1)
}

// Row returns the screen row for world y, clamped to the viewport.
func (v Viewport) Row(y float64) int {
	r := int(math.Floor((v.MaxY - y) / (v.MaxY - v.MinY) * float64(v.Rows)))
	return v.OffY + core.Clamp(r, 0, v.Rows-1)
}

// Cells returns the screen rectangle covered by an axis-aligned box of size
// w×h centered at p. The result is at least one cell.
func (v Viewport) Cells(p core.Vec2, w, h float64) core.Rect {
	x0, x1 := v.Col(p.X-w/2), v.Col(p.X+w/2)
	y0, y1 := v.Row(p.Y+h/2), v.Row(p.Y-h/2)
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

// DrawWorld draws every drawable onto the screen.
func DrawWorld(s *core.Screen, v Viewport, items []sim.Drawable) {
	for _, d := range items {
		switch d.Shape.Kind {
		case entity.ShapeCircle:
			if !v.Contains(d.Pos) {
				continue
			}
			s.SetColored(v.Col(d.Pos.X), v.Row(d.Pos.Y), glyph(d), d.Color)
		default:
			s.DrawRect(v.Cells(d.Pos, d.Shape.W, d.Shape.H), glyph(d), d.Color)
		}
	}
}

func glyph(d sim.Drawable) rune {
	switch d.Kind {
	case entity.KindBall:
		return '●'
	case entity.KindPaddle:
		return '▀'
	case entity.KindBrick:
		if d.HP <= 1 {
			return '▒'
		}
		return '█'
	default:
		return '█'
	}
}
