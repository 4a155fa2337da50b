package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/breakout-sim/internal/config"
	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
)

func newRealSim(t *testing.T, cfg config.Config) *Simulation {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestPaddleBoundReal(t *testing.T) {
	s := newRealSim(t, config.Default())
	for tick := 1; tick <= 90; tick++ {
		res := s.Tick(core.InputRight)
		want := math.Min(5*float64(tick), 295)
		if math.Abs(res.PaddlePos.X-want) > 1e-6 {
			t.Fatalf("tick %d: paddle x = %v, expected %v", tick, res.PaddlePos.X, want)
		}
		if res.PaddlePos.Y != -200 {
			t.Fatalf("tick %d: paddle y = %v, expected -200", tick, res.PaddlePos.Y)
		}
	}
}

func TestPaddleUnclampedPassesWall(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.ClampPaddle = false
	s := newRealSim(t, cfg)

	var res TickResult
	for i := 0; i < 100; i++ {
		res = s.Tick(core.InputRight)
	}
	if math.Abs(res.PaddlePos.X-500) > 1e-6 {
		t.Errorf("unclamped paddle x = %v, expected 500", res.PaddlePos.X)
	}
}

func TestBrickDeltaReal(t *testing.T) {
	s := newRealSim(t, config.Default())
	brick := s.Layout().Bricks[0]

	s.phys.ApplyKinematicDelta(brick, core.V(0, 5))
	s.Tick(core.InputIdle)

	want := core.V(-260, 105)
	if got, _ := s.phys.Position(brick); got != want {
		t.Errorf("physics brick position = %v, expected %v", got, want)
	}
	if got, _ := s.Store().Position(brick); got != want {
		t.Errorf("store brick position = %v, expected %v", got, want)
	}

	s.Tick(core.InputIdle)
	if got, _ := s.phys.Position(brick); got != want {
		t.Errorf("brick drifted to %v after an idle tick, expected %v", got, want)
	}
}

func TestIdleRunDestroysBrick(t *testing.T) {
	s := newRealSim(t, config.Default())
	store := s.Store()

	lastHP := make(map[entity.ID]int)
	for _, id := range s.Layout().Bricks {
		lastHP[id] = 2
	}
	gone := make(map[entity.ID]bool)

	for tick := 0; tick < 1200; tick++ {
		res := s.Tick(core.InputIdle)

		for _, ev := range res.Events {
			if gone[ev.A] || gone[ev.B] {
				t.Fatalf("tick %d: event %+v names a destroyed entity", res.Tick, ev)
			}
		}
		for _, id := range res.Destroyed {
			gone[id] = true
		}
		for id, prev := range lastHP {
			hp := 0
			if h := store.Health(id); h != nil {
				hp = h.HP
			}
			if hp > prev {
				t.Fatalf("tick %d: brick %v health rose from %d to %d", res.Tick, id, prev, hp)
			}
			lastHP[id] = hp
		}
		if store.Count(entity.KindBall) != 1 || store.Count(entity.KindPaddle) != 1 {
			t.Fatalf("tick %d: singletons lost", res.Tick)
		}
	}

	if s.BricksDestroyed() == 0 {
		t.Error("idle run should destroy at least one brick within 1200 ticks")
	}
	if got := store.Count(entity.KindWall); got != 3 {
		t.Errorf("walls = %d, expected 3", got)
	}
}

func TestDeterministicReplay(t *testing.T) {
	inputs := make([]core.Input, 600)
	for i := range inputs {
		if i >= 200 && i < 230 {
			inputs[i] = core.InputLeft
		}
	}

	run := func() uint64 {
		s := newRealSim(t, config.Default())
		for _, in := range inputs {
			s.Tick(in)
		}
		return s.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("replay hashes differ: %x vs %x", a, b)
	}
}
