package registry

import (
	"testing"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/sim"
)

func TestBuiltinPilotsRegistered(t *testing.T) {
	for _, name := range []string{"idle", "random", "sweep", "track"} {
		if !Exists(name) {
			t.Errorf("pilot %q should be registered", name)
		}
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("List() not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
	for _, info := range list {
		if info.Description == "" {
			t.Errorf("pilot %q has no description", info.Name)
		}
	}
}

func TestCreate(t *testing.T) {
	p, err := Create("track", 0)
	if err != nil {
		t.Fatalf("Create(track) error: %v", err)
	}
	if p.Name() != "track" {
		t.Errorf("Name() = %q, expected track", p.Name())
	}

	if _, err := Create("autopilot", 0); err == nil {
		t.Error("Create() of unknown pilot should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("idle", "again", func(int64) Pilot { return idlePilot{} })
}

func TestTrackPilot(t *testing.T) {
	p, _ := Create("track", 0)

	tests := []struct {
		name     string
		paddle   float64
		ball     float64
		expected core.Input
	}{
		{"ball to the right", 0, 100, core.InputRight},
		{"ball to the left", 0, -100, core.InputLeft},
		{"ball overhead", 10, 12, core.InputIdle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := sim.View{Paddle: core.V(tc.paddle, -200), Ball: core.V(tc.ball, 0), PaddleSpeed: 5}
			if got := p.Next(v); got != tc.expected {
				t.Errorf("Next() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSweepPilotAlternates(t *testing.T) {
	p, _ := Create("sweep", 0)
	for i := 0; i < sweepPeriod; i++ {
		if got := p.Next(sim.View{}); got != core.InputRight {
			t.Fatalf("tick %d: %v, expected Right", i, got)
		}
	}
	if got := p.Next(sim.View{}); got != core.InputLeft {
		t.Errorf("after one period: %v, expected Left", got)
	}
}

func TestRandomPilotSeeded(t *testing.T) {
	a, _ := Create("random", 7)
	b, _ := Create("random", 7)
	for i := 0; i < 200; i++ {
		if x, y := a.Next(sim.View{}), b.Next(sim.View{}); x != y {
			t.Fatalf("tick %d: same seed diverged (%v vs %v)", i, x, y)
		}
	}
}

func TestIdlePilot(t *testing.T) {
	p, _ := Create("idle", 0)
	if got := p.Next(sim.View{Ball: core.V(100, 0)}); got != core.InputIdle {
		t.Errorf("Next() = %v, expected Idle", got)
	}
}
