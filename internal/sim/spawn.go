package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/breakout-sim/internal/config"
	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/physics"
)

// Arena geometry in world units. The origin is the arena center, y points up.
const (
	TopWallY      = 250.0
	SideWallX     = 350.0
	WallThickness = 10.0
	WallLength    = 1000.0

	BrickWidth  = 100.0
	BrickHeight = 10.0
	BrickRows   = 4
	BrickBaseY  = 100.0
	BrickRowGap = 20.0
)

// BrickColumns are the x centers of the brick columns.
var BrickColumns = [...]float64{-260, -130, 0, 130, 260}

// Layout holds the ids created at spawn and the arena limits derived from them.
type Layout struct {
	Paddle entity.ID
	Ball   entity.ID
	Walls  []entity.ID
	Bricks []entity.ID

	PaddleMinX float64 // paddle center limits between the side walls
	PaddleMaxX float64
	EscapeY    float64 // ball below this line has left the arena
}

// Spawner populates an empty store and physics world.
type Spawner func(store *entity.Store, phys Physics, cfg config.Config) (Layout, error)

// SpawnCanonical builds the standard arena: three walls, the paddle, the ball
// and a 5×4 grid of bricks.
func SpawnCanonical(store *entity.Store, phys Physics, cfg config.Config) (Layout, error) {
	var layout Layout
	solid := physics.Material{Restitution: cfg.Physics.Restitution, Friction: cfg.Physics.WallFriction}

	walls := []struct {
		pos  core.Vec2
		w, h float64
	}{
		{core.V(0, TopWallY), WallLength, WallThickness},
		{core.V(-SideWallX, 0), WallThickness, WallLength},
		{core.V(SideWallX, 0), WallThickness, WallLength},
	}
	for _, w := range walls {
		id, err := spawn(store, phys, entity.KindWall, entity.Components{
			Shape: entity.Rect(w.w, w.h),
			Color: core.ColorGray,
			Pos:   w.pos,
		}, physics.Fixed, solid, 0)
		if err != nil {
			return layout, err
		}
		layout.Walls = append(layout.Walls, id)
	}

	paddle, err := spawn(store, phys, entity.KindPaddle, entity.Components{
		Shape:      entity.Rect(cfg.Paddle.Width, cfg.Paddle.Height),
		Color:      core.ColorCyan,
		Pos:        core.V(0, cfg.Paddle.Y),
		Motion:     &entity.Motion{},
		Speed:      &entity.Speed{Value: cfg.Paddle.Speed},
		Controller: true,
	}, physics.KinematicPositionBased, physics.Material{
		Restitution: cfg.Physics.Restitution,
		Friction:    cfg.Physics.PaddleFriction,
	}, 0)
	if err != nil {
		return layout, err
	}
	layout.Paddle = paddle

	ball, err := spawn(store, phys, entity.KindBall, entity.Components{
		Shape:   entity.Circle(cfg.Ball.Radius),
		Color:   core.ColorWhite,
		Pos:     core.V(0, 0),
		Motion:  &entity.Motion{Vel: core.V(0, -cfg.Ball.Speed)},
		Speed:   &entity.Speed{Value: cfg.Ball.Speed},
		Bounced: true,
	}, physics.Dynamic, physics.Material{
		Restitution: cfg.Physics.Restitution,
		Friction:    cfg.Physics.BallFriction,
	}, cfg.Ball.Density)
	if err != nil {
		return layout, err
	}
	layout.Ball = ball

	for row := 0; row < BrickRows; row++ {
		for _, x := range BrickColumns {
			id, err := spawn(store, phys, entity.KindBrick, entity.Components{
				Shape:  entity.Rect(BrickWidth, BrickHeight),
				Color:  core.ColorBisque,
				Pos:    core.V(x, BrickBaseY+BrickRowGap*float64(row)),
				Health: &entity.Health{HP: cfg.Bricks.Health},
			}, physics.KinematicPositionBased, solid, 0)
			if err != nil {
				return layout, err
			}
			layout.Bricks = append(layout.Bricks, id)
		}
	}

	inner := SideWallX - WallThickness/2
	layout.PaddleMinX = -inner + cfg.Paddle.Width/2
	layout.PaddleMaxX = inner - cfg.Paddle.Width/2
	layout.EscapeY = -TopWallY
	return layout, nil
}

func spawn(store *entity.Store, phys Physics, kind entity.Kind, c entity.Components, body physics.BodyKind, mat physics.Material, density float64) (entity.ID, error) {
	id := store.Create(kind, c)
	def := physics.BodyDef{
		ID:       id,
		Kind:     body,
		Shape:    c.Shape,
		Material: mat,
		Position: c.Pos,
		Density:  density,
	}
	if c.Motion != nil {
		def.Velocity = c.Motion.Vel
	}
	if err := phys.Register(def); err != nil {
		store.Destroy(id)
		return id, fmt.Errorf("spawn %s: %w", kind, err)
	}
	return id, nil
}

// validateLayout checks that the paddle and ball exist exactly once and match the layout.
func validateLayout(store *entity.Store, layout Layout) error {
	paddle, err := store.Single(entity.KindPaddle)
	if err != nil {
		return err
	}
	ball, err := store.Single(entity.KindBall)
	if err != nil {
		return err
	}
	if paddle != layout.Paddle || ball != layout.Ball {
		return fmt.Errorf("%w: layout references do not match the store", entity.ErrMissingSingleton)
	}
	if !store.HasController(paddle) {
		return errors.New("paddle has no controller")
	}
	return nil
}
