package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
)

// EntityState is the observable state of one entity.
type EntityState struct {
	ID   uint32
	Kind entity.Kind
	Pos  core.Vec2
	Vel  core.Vec2
	HP   int
}

// Snapshot is the observable state of the whole world after a tick.
type Snapshot struct {
	Tick     uint64
	Entities []EntityState
}

// Snapshot captures every live entity, ordered by id.
func (s *Simulation) Snapshot() Snapshot {
	ids := s.store.All()
	snap := Snapshot{Tick: s.tick, Entities: make([]EntityState, 0, len(ids))}
	for _, id := range ids {
		st := EntityState{ID: id.ID()}
		st.Kind, _ = s.store.KindOf(id)
		st.Pos, _ = s.store.Position(id)
		st.Vel, _ = s.store.Velocity(id)
		if h := s.store.Health(id); h != nil {
			st.HP = h.HP
		}
		snap.Entities = append(snap.Entities, st)
	}
	return snap
}

// Hash returns a digest of the snapshot. Equal states give equal hashes.
func (snap Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	put(snap.Tick)
	for _, e := range snap.Entities {
		put(uint64(e.ID))
		put(uint64(e.Kind))
		put(math.Float64bits(e.Pos.X))
		put(math.Float64bits(e.Pos.Y))
		put(math.Float64bits(e.Vel.X))
		put(math.Float64bits(e.Vel.Y))
		put(uint64(e.HP))
	}
	return d.Sum64()
}

// Hash digests the current state.
func (s *Simulation) Hash() uint64 {
	return s.Snapshot().Hash()
}

// Drawable is what a render sink needs to draw one entity.
type Drawable struct {
	Kind  entity.Kind
	Shape entity.Shape
	Pos   core.Vec2
	Color core.Color
	HP    int
}

// Drawables lists every live entity for rendering, ordered by id.
func (s *Simulation) Drawables() []Drawable {
	ids := s.store.All()
	out := make([]Drawable, 0, len(ids))
	for _, id := range ids {
		body, ok := s.store.Body(id)
		if !ok {
			continue
		}
		d := Drawable{Kind: body.Kind, Shape: body.Shape, Color: body.Color}
		d.Pos, _ = s.store.Position(id)
		if h := s.store.Health(id); h != nil {
			d.HP = h.HP
		}
		out = append(out, d)
	}
	return out
}

// View is the minimal observation a scripted pilot steers by.
type View struct {
	Tick        uint64
	Paddle      core.Vec2
	PaddleSpeed float64
	Ball        core.Vec2
	BallVel     core.Vec2
}

// View returns the current paddle and ball state.
func (s *Simulation) View() View {
	v := View{Tick: s.tick}
	v.Paddle, _ = s.store.Position(s.layout.Paddle)
	v.PaddleSpeed, _ = s.store.Speed(s.layout.Paddle)
	v.Ball, _ = s.store.Position(s.layout.Ball)
	v.BallVel, _ = s.store.Velocity(s.layout.Ball)
	return v
}
