// Package sim runs the fixed-timestep breakout simulation.
//
// One Tick performs, in order: input resolution into a paddle displacement,
// the kinematic move, one physics step, the sync of positions and velocities
// back into the entity store, collision resolution and the sweep of destroyed
// bricks. A Simulation is owned by a single goroutine.
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout-sim/internal/config"
	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/physics"
)

// ErrStaleSingleton reports that the paddle or ball vanished after setup.
var ErrStaleSingleton = errors.New("paddle or ball reference is stale")

// TickResult describes what happened during one tick.
type TickResult struct {
	Tick        uint64
	Input       core.Input
	Events      []physics.ContactEvent
	Damaged     []entity.ID
	Destroyed   []entity.ID
	BricksLeft  int
	PaddlePos   core.Vec2
	BallPos     core.Vec2
	BallVel     core.Vec2
	BallEscaped bool
	Cleared     bool
}

// Simulation is one breakout world.
type Simulation struct {
	cfg    config.Config
	dt     float64
	logger *log.Logger

	store    *entity.Store
	phys     Physics
	resolver *Resolver
	life     *Lifecycle
	layout   Layout

	tick      uint64
	destroyed int
	escaped   bool
	cleared   bool
}

type options struct {
	logger  *log.Logger
	phys    Physics
	spawner Spawner
}

// Option configures a Simulation.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPhysics replaces the cp-backed physics world.
func WithPhysics(p Physics) Option {
	return func(o *options) {
		o.phys = p
	}
}

// WithSpawner replaces the canonical arena.
func WithSpawner(s Spawner) Option {
	return func(o *options) {
		o.spawner = s
	}
}

// New validates cfg, spawns the arena and returns a ready simulation.
// It fails with entity.ErrMissingSingleton if the spawner did not create
// exactly one paddle and one ball.
func New(cfg config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	o := options{
		logger:  log.New(io.Discard),
		spawner: SpawnCanonical,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.phys == nil {
		o.phys = physics.New(
			physics.WithLogger(o.logger.WithPrefix("physics")),
			physics.WithIterations(cfg.Physics.Iterations),
		)
	}

	store := entity.New()
	layout, err := o.spawner(store, o.phys, cfg)
	if err != nil {
		return nil, fmt.Errorf("sim: spawn: %w", err)
	}
	if err := validateLayout(store, layout); err != nil {
		return nil, fmt.Errorf("sim: spawn: %w", err)
	}

	s := &Simulation{
		cfg:      cfg,
		dt:       cfg.Dt(),
		logger:   o.logger,
		store:    store,
		phys:     o.phys,
		resolver: NewResolver(store, o.logger),
		life:     NewLifecycle(store, o.phys, o.logger),
		layout:   layout,
	}
	s.logger.Debug("simulation ready",
		"bricks", len(layout.Bricks),
		"walls", len(layout.Walls),
		"dt", s.dt,
	)
	return s, nil
}

// Tick advances the simulation by one fixed step.
// It panics if the paddle or ball no longer exist, which only happens when
// setup invariants were broken.
func (s *Simulation) Tick(in core.Input) TickResult {
	paddle, ball := s.layout.Paddle, s.layout.Ball
	if !s.store.Alive(paddle) || !s.store.Alive(ball) {
		panic(fmt.Sprintf("sim: tick %d: %v", s.tick+1, ErrStaleSingleton))
	}
	s.tick++

	delta := s.paddleDelta(in)
	s.phys.ApplyKinematicDelta(paddle, delta)

	events := s.phys.Step(s.dt)

	s.sync(paddle)
	s.sync(ball)
	for _, id := range s.store.Bricks() {
		s.sync(id)
	}
	s.capBallSpeed(ball)

	res := s.resolver.Resolve(events)
	destroyed := s.life.Sweep()
	s.destroyed += len(destroyed)

	result := TickResult{
		Tick:       s.tick,
		Input:      in,
		Events:     events,
		Damaged:    res.Damaged,
		Destroyed:  destroyed,
		BricksLeft: s.store.Count(entity.KindBrick),
	}
	result.PaddlePos, _ = s.store.Position(paddle)
	result.BallPos, _ = s.store.Position(ball)
	result.BallVel, _ = s.store.Velocity(ball)

	if result.BallPos.Y < s.layout.EscapeY {
		result.BallEscaped = true
		if !s.escaped {
			s.escaped = true
			s.logger.Warn("ball left the arena", "tick", s.tick, "pos", result.BallPos)
		}
	}
	if result.BricksLeft == 0 {
		result.Cleared = true
		if !s.cleared {
			s.cleared = true
			s.logger.Info("all bricks destroyed", "tick", s.tick)
		}
	}
	for _, id := range destroyed {
		s.logger.Debug("brick destroyed", "tick", s.tick, "id", id.ID())
	}
	return result
}

func (s *Simulation) paddleDelta(in core.Input) core.Vec2 {
	speed, _ := s.store.Speed(s.layout.Paddle)
	delta := ResolveInput(in, speed)
	if s.cfg.Physics.ClampPaddle && delta.X != 0 {
		pos, _ := s.store.Position(s.layout.Paddle)
		delta.X = ClampDelta(pos.X, delta.X, s.layout.PaddleMinX, s.layout.PaddleMaxX)
	}
	return delta
}

// sync copies the solver state of id into the store.
func (s *Simulation) sync(id entity.ID) {
	if pos, ok := s.phys.Position(id); ok {
		s.store.SetPosition(id, pos)
	}
	if vel, ok := s.phys.Velocity(id); ok {
		s.store.SetVelocity(id, vel)
	}
}

func (s *Simulation) capBallSpeed(ball entity.ID) {
	limit := s.cfg.Ball.MaxSpeed
	if limit <= 0 {
		return
	}
	vel, ok := s.store.Velocity(ball)
	if !ok {
		return
	}
	speed := vel.Len()
	if speed <= limit {
		return
	}
	capped := vel.Scale(limit / speed)
	s.phys.SetVelocity(ball, capped)
	s.store.SetVelocity(ball, capped)
}

// Store returns the entity store. Callers must not mutate it between ticks.
func (s *Simulation) Store() *entity.Store {
	return s.store
}

// Layout returns the spawn layout.
func (s *Simulation) Layout() Layout {
	return s.layout
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.Config {
	return s.cfg
}

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() uint64 {
	return s.tick
}

// BricksDestroyed returns the total number of bricks swept so far.
func (s *Simulation) BricksDestroyed() int {
	return s.destroyed
}

// Cleared reports whether every brick has been destroyed.
func (s *Simulation) Cleared() bool {
	return s.cleared
}
