package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
)

// BodyKind selects how the solver treats a body.
type BodyKind uint8

const (
	// Fixed bodies never move.
	Fixed BodyKind = iota
	// KinematicPositionBased bodies move only through ApplyKinematicDelta and
	// push dynamic bodies without being pushed back.
	KinematicPositionBased
	// Dynamic bodies are integrated by the solver.
	Dynamic
)

func (k BodyKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case KinematicPositionBased:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Material holds per-collider surface coefficients.
// The solver multiplies the coefficients of both colliders of a contact pair.
type Material struct {
	Restitution float64
	Friction    float64
}

// BodyDef describes a body to register.
type BodyDef struct {
	ID       entity.ID
	Kind     BodyKind
	Shape    entity.Shape
	Material Material
	Position core.Vec2
	Velocity core.Vec2 // Dynamic only
	Density  float64   // Dynamic only; mass is density times area
}

const (
	collisionSolid cp.CollisionType = iota + 1
	collisionDynamic
)

type handle struct {
	id    entity.ID
	kind  BodyKind
	body  *cp.Body
	shape *cp.Shape
}

func toVector(v core.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVector(v cp.Vector) core.Vec2 {
	return core.Vec2{X: v.X, Y: v.Y}
}

func area(s entity.Shape) float64 {
	if s.Kind == entity.ShapeCircle {
		return math.Pi * s.Radius * s.Radius
	}
	return s.W * s.H
}
