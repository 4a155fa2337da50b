package entity

import (
	"errors"
	"testing"

	"github.com/vovakirdan/breakout-sim/internal/core"
)

func newBrick(s *Store, x float64) ID {
	return s.Create(KindBrick, Components{
		Shape:  Rect(100, 10),
		Color:  core.ColorBisque,
		Pos:    core.V(x, 100),
		Health: &Health{HP: 2},
	})
}

func TestCreateAndRead(t *testing.T) {
	s := New()
	ball := s.Create(KindBall, Components{
		Shape:   Circle(5),
		Color:   core.ColorWhite,
		Pos:     core.V(0, 0),
		Motion:  &Motion{Vel: core.V(0, -200)},
		Speed:   &Speed{Value: 200},
		Bounced: true,
	})

	b, ok := s.Body(ball)
	if !ok || b.Kind != KindBall || b.Shape.Radius != 5 {
		t.Errorf("Body() = %+v, %v; expected ball of radius 5", b, ok)
	}
	if v, ok := s.Velocity(ball); !ok || v != core.V(0, -200) {
		t.Errorf("Velocity() = %v, %v; expected (0, -200)", v, ok)
	}
	if sp, ok := s.Speed(ball); !ok || sp != 200 {
		t.Errorf("Speed() = %v, %v; expected 200", sp, ok)
	}
	if !s.IsBounced(ball) {
		t.Error("ball should carry the Bounced tag")
	}
	if s.HasController(ball) {
		t.Error("ball should not carry the Controller tag")
	}
	if s.Health(ball) != nil {
		t.Error("ball should not have health")
	}
}

func TestSetters(t *testing.T) {
	s := New()
	paddle := s.Create(KindPaddle, Components{
		Shape:      Rect(100, 10),
		Pos:        core.V(0, -200),
		Motion:     &Motion{},
		Controller: true,
	})

	if !s.SetPosition(paddle, core.V(5, -200)) {
		t.Fatal("SetPosition() on live entity should succeed")
	}
	if p, _ := s.Position(paddle); p != core.V(5, -200) {
		t.Errorf("Position() = %v, expected (5, -200)", p)
	}
	if !s.SetVelocity(paddle, core.V(300, 0)) {
		t.Fatal("SetVelocity() on live entity should succeed")
	}
	if v, _ := s.Velocity(paddle); v != core.V(300, 0) {
		t.Errorf("Velocity() = %v, expected (300, 0)", v)
	}

	wall := s.Create(KindWall, Components{Shape: Rect(10, 1000), Pos: core.V(350, 0)})
	if s.SetVelocity(wall, core.V(1, 0)) {
		t.Error("SetVelocity() on entity without Motion should fail")
	}
}

func TestHealthIsMutable(t *testing.T) {
	s := New()
	brick := newBrick(s, 0)

	h := s.Health(brick)
	if h == nil || h.HP != 2 {
		t.Fatalf("Health() = %v, expected HP 2", h)
	}
	h.HP--
	if got := s.Health(brick).HP; got != 1 {
		t.Errorf("after decrement HP = %d, expected 1", got)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	s := New()
	brick := newBrick(s, 0)

	if !s.Destroy(brick) {
		t.Error("first Destroy() should return true")
	}
	if s.Destroy(brick) {
		t.Error("second Destroy() should return false")
	}
	if s.Alive(brick) {
		t.Error("destroyed brick should not be alive")
	}
}

func TestStaleAccessReportsAbsence(t *testing.T) {
	s := New()
	brick := newBrick(s, 0)
	s.Destroy(brick)

	if _, ok := s.Body(brick); ok {
		t.Error("Body() through stale id should report absence")
	}
	if _, ok := s.Position(brick); ok {
		t.Error("Position() through stale id should report absence")
	}
	if s.SetPosition(brick, core.V(1, 1)) {
		t.Error("SetPosition() through stale id should fail")
	}
	if s.Health(brick) != nil {
		t.Error("Health() through stale id should be nil")
	}
	if s.MarkDoomed(brick) {
		t.Error("MarkDoomed() through stale id should fail")
	}
}

func TestStaleIDNotConfusedWithReusedSlot(t *testing.T) {
	s := New()
	old := newBrick(s, 0)
	s.Destroy(old)
	fresh := newBrick(s, 130)

	if s.Alive(old) {
		t.Error("stale id should stay dead after its slot is reused")
	}
	if p, ok := s.Position(fresh); !ok || p.X != 130 {
		t.Errorf("fresh Position() = %v, %v; expected x=130", p, ok)
	}
}

func TestQueriesReflectDestroy(t *testing.T) {
	s := New()
	var bricks []ID
	for i := 0; i < 5; i++ {
		bricks = append(bricks, newBrick(s, float64(i)*130))
	}
	s.Create(KindWall, Components{Shape: Rect(1000, 10), Pos: core.V(0, 250)})

	if got := s.Count(KindBrick); got != 5 {
		t.Errorf("Count(brick) = %d, expected 5", got)
	}

	s.Destroy(bricks[2])
	got := s.Bricks()
	if len(got) != 4 {
		t.Fatalf("Bricks() len = %d, expected 4", len(got))
	}
	for _, id := range got {
		if id == bricks[2] {
			t.Error("Bricks() should not contain the destroyed brick")
		}
	}
	if s.Count(KindWall) != 1 {
		t.Errorf("Count(wall) = %d, expected 1", s.Count(KindWall))
	}
	if len(s.All()) != 5 {
		t.Errorf("All() len = %d, expected 5", len(s.All()))
	}
}

func TestSingle(t *testing.T) {
	s := New()

	if _, err := s.Single(KindBall); !errors.Is(err, ErrMissingSingleton) {
		t.Errorf("Single() on empty store error = %v, expected ErrMissingSingleton", err)
	}

	ball := s.Create(KindBall, Components{Shape: Circle(5)})
	got, err := s.Single(KindBall)
	if err != nil || got != ball {
		t.Errorf("Single() = %v, %v; expected the ball", got, err)
	}

	s.Create(KindBall, Components{Shape: Circle(5)})
	if _, err := s.Single(KindBall); !errors.Is(err, ErrMissingSingleton) {
		t.Errorf("Single() with two balls error = %v, expected ErrMissingSingleton", err)
	}
}

func TestDoomedMarker(t *testing.T) {
	s := New()
	a := newBrick(s, 0)
	b := newBrick(s, 130)

	if !s.MarkDoomed(b) {
		t.Fatal("MarkDoomed() should succeed once")
	}
	if s.MarkDoomed(b) {
		t.Error("MarkDoomed() twice should report false")
	}
	if !s.IsDoomed(b) || s.IsDoomed(a) {
		t.Error("only b should be doomed")
	}

	doomed := s.Doomed()
	if len(doomed) != 1 || doomed[0] != b {
		t.Errorf("Doomed() = %v, expected [b]", doomed)
	}

	if !s.Unmark(b) {
		t.Error("Unmark() should succeed on a doomed entity")
	}
	if len(s.Doomed()) != 0 {
		t.Error("Doomed() should be empty after Unmark")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindWall, "wall"},
		{KindPaddle, "paddle"},
		{KindBall, "ball"},
		{KindBrick, "brick"},
		{Kind(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tc.kind, got, tc.expected)
		}
	}
}
