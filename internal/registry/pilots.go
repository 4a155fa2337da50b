package registry

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/sim"
)

const (
	sweepPeriod = 60 // ticks per direction
	randomHold  = 10 // ticks a random choice is held
)

func init() {
	Register("idle", "never moves the paddle", func(int64) Pilot { return idlePilot{} })
	Register("track", "follows the ball horizontally", func(int64) Pilot { return trackPilot{} })
	Register("sweep", "alternates direction every second", func(int64) Pilot { return &sweepPilot{period: sweepPeriod} })
	Register("random", "holds a random direction for a few ticks", func(seed int64) Pilot {
		return &randomPilot{rng: rand.New(rand.NewSource(seed))}
	})
}

type idlePilot struct{}

func (idlePilot) Name() string { return "idle" }

func (idlePilot) Next(sim.View) core.Input { return core.InputIdle }

// trackPilot keeps the paddle under the ball, within one step of slack.
type trackPilot struct{}

func (trackPilot) Name() string { return "track" }

func (trackPilot) Next(v sim.View) core.Input {
	dx := v.Ball.X - v.Paddle.X
	if math.Abs(dx) < math.Max(v.PaddleSpeed, 1) {
		return core.InputIdle
	}
	if dx > 0 {
		return core.InputRight
	}
	return core.InputLeft
}

type sweepPilot struct {
	period int
	n      int
}

func (p *sweepPilot) Name() string { return "sweep" }

func (p *sweepPilot) Next(sim.View) core.Input {
	in := core.InputRight
	if (p.n/p.period)%2 == 1 {
		in = core.InputLeft
	}
	p.n++
	return in
}

type randomPilot struct {
	rng     *rand.Rand
	current core.Input
	left    int
}

func (p *randomPilot) Name() string { return "random" }

func (p *randomPilot) Next(sim.View) core.Input {
	if p.left == 0 {
		p.current = core.Input(p.rng.Intn(3))
		p.left = randomHold
	}
	p.left--
	return p.current
}
