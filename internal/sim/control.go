package sim

import (
	"github.com/vovakirdan/breakout-sim/internal/core"
)

// ResolveInput maps a logical input to the paddle displacement for one tick.
func ResolveInput(in core.Input, speed float64) core.Vec2 {
	switch in {
	case core.InputLeft:
		return core.V(-speed, 0)
	case core.InputRight:
		return core.V(speed, 0)
	default:
		return core.Vec2{}
	}
}

// ClampDelta trims dx so a paddle centered at x stays within [minX, maxX].
// A paddle already outside the range is only allowed to move back toward it.
func ClampDelta(x, dx, minX, maxX float64) float64 {
	next := x + dx
	switch {
	case dx > 0 && next > maxX:
		return core.ClampF(maxX-x, 0, dx)
	case dx < 0 && next < minX:
		return core.ClampF(minX-x, dx, 0)
	default:
		return dx
	}
}
