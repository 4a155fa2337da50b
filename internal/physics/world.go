// Package physics adapts the chipmunk solver (jakecoffman/cp) to entity ids.
// It owns every rigid body and collider, integrates one fixed step at a time
// and reports contact begin and end events keyed by entity id.
package physics

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
)

// ErrDuplicateBody is returned when an id is registered twice.
var ErrDuplicateBody = errors.New("body already registered")

// Phase tells whether a contact started or ended.
type Phase uint8

const (
	Begin Phase = iota
	End
)

func (p Phase) String() string {
	if p == Begin {
		return "begin"
	}
	return "end"
}

// ContactEvent reports a change in contact state between two bodies.
type ContactEvent struct {
	Phase Phase
	A, B  entity.ID
}

// Involves reports whether id is one of the participants.
func (e ContactEvent) Involves(id entity.ID) bool {
	return e.A == id || e.B == id
}

// Other returns the participant that is not id.
func (e ContactEvent) Other(id entity.ID) entity.ID {
	if e.A == id {
		return e.B
	}
	return e.A
}

// World is the physics world of one simulation.
// It is not safe for concurrent use.
type World struct {
	space  *cp.Space
	logger *log.Logger

	bodies map[entity.ID]*handle

	pending   []pendingMove
	pendingAt map[entity.ID]int

	events []ContactEvent
}

type pendingMove struct {
	id    entity.ID
	delta core.Vec2
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// WithIterations sets the number of solver iterations per step.
func WithIterations(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.space.Iterations = uint(n)
		}
	}
}

// New creates an empty world with zero gravity.
func New(opts ...Option) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{
		space:     space,
		logger:    log.New(io.Discard),
		bodies:    make(map[entity.ID]*handle),
		pendingAt: make(map[entity.ID]int),
	}
	for _, opt := range opts {
		opt(w)
	}

	handler := space.NewWildcardCollisionHandler(collisionDynamic)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		userData.(*World).record(Begin, arb)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		userData.(*World).record(End, arb)
	}
	return w
}

// record appends an event if both colliders still belong to registered ids.
func (w *World) record(phase Phase, arb *cp.Arbiter) {
	a, b := arb.Shapes()
	idA, okA := w.owner(a)
	idB, okB := w.owner(b)
	if !okA || !okB {
		return
	}
	w.events = append(w.events, ContactEvent{Phase: phase, A: idA, B: idB})
}

func (w *World) owner(s *cp.Shape) (entity.ID, bool) {
	id, ok := s.UserData.(entity.ID)
	if !ok {
		return entity.ID{}, false
	}
	if _, live := w.bodies[id]; !live {
		return entity.ID{}, false
	}
	return id, true
}

// Register creates the body and collider for def.ID.
func (w *World) Register(def BodyDef) error {
	if _, ok := w.bodies[def.ID]; ok {
		return fmt.Errorf("physics: register %v: %w", def.ID, ErrDuplicateBody)
	}

	var body *cp.Body
	switch def.Kind {
	case Fixed:
		body = cp.NewStaticBody()
	case KinematicPositionBased:
		body = cp.NewKinematicBody()
	case Dynamic:
		density := def.Density
		if density <= 0 {
			density = 1
		}
		// Infinite moment locks rotation.
		body = cp.NewBody(density*area(def.Shape), math.Inf(1))
		body.SetVelocity(def.Velocity.X, def.Velocity.Y)
	default:
		return fmt.Errorf("physics: register %v: unknown body kind %d", def.ID, def.Kind)
	}
	body.SetPosition(toVector(def.Position))

	var shape *cp.Shape
	if def.Shape.Kind == entity.ShapeCircle {
		shape = cp.NewCircle(body, def.Shape.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, def.Shape.W, def.Shape.H, 0)
	}
	shape.SetElasticity(def.Material.Restitution)
	shape.SetFriction(def.Material.Friction)
	if def.Kind == Dynamic {
		shape.SetCollisionType(collisionDynamic)
	} else {
		shape.SetCollisionType(collisionSolid)
	}
	shape.UserData = def.ID
	body.UserData = def.ID

	w.space.AddBody(body)
	w.space.AddShape(shape)

	w.bodies[def.ID] = &handle{id: def.ID, kind: def.Kind, body: body, shape: shape}
	w.logger.Debug("body registered", "id", def.ID.ID(), "kind", def.Kind, "pos", def.Position)
	return nil
}

// Deregister removes the body and collider of id.
// It returns false when id was not registered.
func (w *World) Deregister(id entity.ID) bool {
	h, ok := w.bodies[id]
	if !ok {
		return false
	}
	// Unmap first so separation callbacks fired by the removal are dropped.
	delete(w.bodies, id)
	if i, queued := w.pendingAt[id]; queued {
		w.pending[i].delta = core.Vec2{}
	}

	w.space.RemoveShape(h.shape)
	w.space.RemoveBody(h.body)
	w.logger.Debug("body deregistered", "id", id.ID())
	return true
}

// ApplyKinematicDelta queues a displacement for a kinematic body, applied on the next Step.
// Calls within one step accumulate. Unknown ids and non-kinematic bodies are ignored.
func (w *World) ApplyKinematicDelta(id entity.ID, delta core.Vec2) {
	h, ok := w.bodies[id]
	if !ok {
		return
	}
	if h.kind != KinematicPositionBased {
		w.logger.Warn("kinematic delta on non-kinematic body", "id", id.ID(), "kind", h.kind)
		return
	}
	if i, queued := w.pendingAt[id]; queued {
		w.pending[i].delta = w.pending[i].delta.Add(delta)
		return
	}
	w.pendingAt[id] = len(w.pending)
	w.pending = append(w.pending, pendingMove{id: id, delta: delta})
}

// Step advances the world by dt seconds and returns the contact events
// reported during the step, in the order the solver produced them.
func (w *World) Step(dt float64) []ContactEvent {
	type snap struct {
		h      *handle
		target cp.Vector
	}
	var moves []snap
	for _, m := range w.pending {
		h, ok := w.bodies[m.id]
		if !ok || m.delta.IsZero() {
			continue
		}
		target := h.body.Position().Add(toVector(m.delta))
		h.body.SetVelocity(m.delta.X/dt, m.delta.Y/dt)
		moves = append(moves, snap{h: h, target: target})
	}
	w.pending = w.pending[:0]
	clear(w.pendingAt)

	w.space.Step(dt)

	// Land kinematic bodies exactly on their targets.
	for _, m := range moves {
		m.h.body.SetPosition(m.target)
		m.h.body.SetVelocity(0, 0)
	}

	events := w.events
	w.events = nil
	return events
}

// Position returns the current position of id.
func (w *World) Position(id entity.ID) (core.Vec2, bool) {
	h, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return fromVector(h.body.Position()), true
}

// Velocity returns the current linear velocity of id.
func (w *World) Velocity(id entity.ID) (core.Vec2, bool) {
	h, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return fromVector(h.body.Velocity()), true
}

// SetVelocity overwrites the velocity of a dynamic body.
func (w *World) SetVelocity(id entity.ID, v core.Vec2) bool {
	h, ok := w.bodies[id]
	if !ok || h.kind != Dynamic {
		return false
	}
	h.body.SetVelocity(v.X, v.Y)
	return true
}

// Has reports whether id is registered.
func (w *World) Has(id entity.ID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Len returns the number of registered bodies.
func (w *World) Len() int {
	return len(w.bodies)
}
