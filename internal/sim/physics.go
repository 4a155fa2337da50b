package sim

import (
	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/physics"
)

// Physics is the subset of the physics world the tick loop drives.
// *physics.World satisfies it; tests substitute a scripted fake.
type Physics interface {
	Register(def physics.BodyDef) error
	Deregister(id entity.ID) bool
	ApplyKinematicDelta(id entity.ID, delta core.Vec2)
	Step(dt float64) []physics.ContactEvent
	Position(id entity.ID) (core.Vec2, bool)
	Velocity(id entity.ID) (core.Vec2, bool)
	SetVelocity(id entity.ID, v core.Vec2) bool
}

var _ Physics = (*physics.World)(nil)
