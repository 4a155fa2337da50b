package sim

import (
	"fmt"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/physics"
)

// fakePhysics moves kinematic bodies exactly, integrates dynamic bodies
// without collisions and replays scripted contact events, one batch per step.
type fakePhysics struct {
	bodies       map[entity.ID]*fakeBody
	pending      map[entity.ID]core.Vec2
	script       [][]physics.ContactEvent
	steps        int
	deregistered []entity.ID
}

type fakeBody struct {
	kind physics.BodyKind
	pos  core.Vec2
	vel  core.Vec2
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		bodies:  make(map[entity.ID]*fakeBody),
		pending: make(map[entity.ID]core.Vec2),
	}
}

// queue schedules events for the next unscripted step.
func (f *fakePhysics) queue(events ...physics.ContactEvent) {
	f.script = append(f.script, events)
}

func (f *fakePhysics) Register(def physics.BodyDef) error {
	if _, ok := f.bodies[def.ID]; ok {
		return fmt.Errorf("fake: %w", physics.ErrDuplicateBody)
	}
	f.bodies[def.ID] = &fakeBody{kind: def.Kind, pos: def.Position, vel: def.Velocity}
	return nil
}

func (f *fakePhysics) Deregister(id entity.ID) bool {
	if _, ok := f.bodies[id]; !ok {
		return false
	}
	delete(f.bodies, id)
	f.deregistered = append(f.deregistered, id)
	return true
}

func (f *fakePhysics) ApplyKinematicDelta(id entity.ID, delta core.Vec2) {
	b, ok := f.bodies[id]
	if !ok || b.kind != physics.KinematicPositionBased {
		return
	}
	f.pending[id] = f.pending[id].Add(delta)
}

func (f *fakePhysics) Step(dt float64) []physics.ContactEvent {
	f.steps++
	for id, d := range f.pending {
		if b, ok := f.bodies[id]; ok {
			b.pos = b.pos.Add(d)
		}
	}
	clear(f.pending)
	for _, b := range f.bodies {
		if b.kind == physics.Dynamic {
			b.pos = b.pos.Add(b.vel.Scale(dt))
		}
	}

	if len(f.script) == 0 {
		return nil
	}
	batch := f.script[0]
	f.script = f.script[1:]

	var out []physics.ContactEvent
	for _, ev := range batch {
		_, okA := f.bodies[ev.A]
		_, okB := f.bodies[ev.B]
		if okA && okB {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakePhysics) Position(id entity.ID) (core.Vec2, bool) {
	b, ok := f.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.pos, true
}

func (f *fakePhysics) Velocity(id entity.ID) (core.Vec2, bool) {
	b, ok := f.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.vel, true
}

func (f *fakePhysics) SetVelocity(id entity.ID, v core.Vec2) bool {
	b, ok := f.bodies[id]
	if !ok || b.kind != physics.Dynamic {
		return false
	}
	b.vel = v
	return true
}

func (f *fakePhysics) setPosition(id entity.ID, p core.Vec2) {
	if b, ok := f.bodies[id]; ok {
		b.pos = p
	}
}

func begin(a, b entity.ID) physics.ContactEvent {
	return physics.ContactEvent{Phase: physics.Begin, A: a, B: b}
}

func end(a, b entity.ID) physics.ContactEvent {
	return physics.ContactEvent{Phase: physics.End, A: a, B: b}
}
