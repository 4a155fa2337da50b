// Package entity is the entity store of the simulation.
// It keeps every paddle, ball, brick and wall as an ark entity and hands out
// generation-checked ids; lookups through a destroyed id report absence.
package entity

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/breakout-sim/internal/core"
)

// ID is a stable, generation-checked entity handle.
type ID = ecs.Entity

// Kind classifies an entity for spawning, rendering and collision rules.
type Kind uint8

const (
	KindWall Kind = iota
	KindPaddle
	KindBall
	KindBrick
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindPaddle:
		return "paddle"
	case KindBall:
		return "ball"
	case KindBrick:
		return "brick"
	default:
		return "unknown"
	}
}

// ShapeKind selects the collider geometry.
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape is either a circle of Radius or an axis-aligned W×H rectangle.
type Shape struct {
	Kind   ShapeKind
	W, H   float64
	Radius float64
}

// Rect returns a rectangular shape.
func Rect(w, h float64) Shape {
	return Shape{Kind: ShapeRect, W: w, H: h}
}

// Circle returns a circular shape.
func Circle(r float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: r}
}

// Body is carried by every entity.
type Body struct {
	Kind  Kind
	Shape Shape
	Color core.Color
}

// Transform holds the world position.
type Transform struct {
	Pos core.Vec2
}

// Motion holds the linear velocity in units per second.
type Motion struct {
	Vel core.Vec2
}

// Speed is the nominal speed: units per tick for the paddle, units per second for the ball.
type Speed struct {
	Value float64
}

// Health is the remaining hit points of a brick.
type Health struct {
	HP int
}

// Controller tags the input-driven paddle.
type Controller struct{}

// Bounced tags the ball.
type Bounced struct{}

// Doomed marks an entity for removal at the next sweep.
type Doomed struct{}

// Components describes the initial component set of a new entity.
// Nil pointers and false tags are left off the entity.
type Components struct {
	Shape      Shape
	Color      core.Color
	Pos        core.Vec2
	Motion     *Motion
	Speed      *Speed
	Health     *Health
	Controller bool
	Bounced    bool
}
