// Package config provides YAML-based simulation configuration loading,
// presets and validation for breakout-sim.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// MaxTickRate is the highest accepted loop.tick_rate.
const MaxTickRate = 1000

// Config contains all tunables of a simulation run.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Ball    BallConfig    `yaml:"ball"`
	Bricks  BricksConfig  `yaml:"bricks"`
	Loop    LoopConfig    `yaml:"loop"`
}

// PhysicsConfig defines material and solver parameters.
type PhysicsConfig struct {
	Restitution    float64 `yaml:"restitution"`     // applied to every collider
	WallFriction   float64 `yaml:"wall_friction"`   // walls and bricks
	PaddleFriction float64 `yaml:"paddle_friction"` // paddle surface
	BallFriction   float64 `yaml:"ball_friction"`
	Iterations     int     `yaml:"iterations"`   // solver iterations per step
	ClampPaddle    bool    `yaml:"clamp_paddle"` // keep the paddle between the side walls
}

// PaddleConfig defines the player paddle.
type PaddleConfig struct {
	Speed  float64 `yaml:"speed"` // world units per tick
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"` // world units per second, launched straight down
	Density  float64 `yaml:"density"`
	MaxSpeed float64 `yaml:"max_speed"` // 0 disables the cap
}

// BricksConfig defines the brick grid.
type BricksConfig struct {
	Health int `yaml:"health"`
}

// LoopConfig defines the fixed-timestep loop.
type LoopConfig struct {
	TickRate   int `yaml:"tick_rate"`   // ticks per second
	MaxCatchup int `yaml:"max_catchup"` // max ticks run for one wall-clock advance
}

// Dt returns the fixed timestep in seconds.
func (c Config) Dt() float64 {
	return 1.0 / float64(c.Loop.TickRate)
}

// TickInterval returns the fixed timestep as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Loop.TickRate)
}

// Validate checks that every value is usable by the simulation.
func (c Config) Validate() error {
	switch {
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("%w: loop.tick_rate must be positive, got %d", ErrInvalid, c.Loop.TickRate)
	case c.Loop.TickRate > MaxTickRate:
		return fmt.Errorf("%w: loop.tick_rate %d exceeds %d", ErrInvalid, c.Loop.TickRate, MaxTickRate)
	case c.Loop.MaxCatchup <= 0:
		return fmt.Errorf("%w: loop.max_catchup must be positive, got %d", ErrInvalid, c.Loop.MaxCatchup)
	case c.Physics.Restitution < 0 || c.Physics.Restitution > 1:
		return fmt.Errorf("%w: physics.restitution must be in [0,1], got %g", ErrInvalid, c.Physics.Restitution)
	case c.Physics.WallFriction < 0 || c.Physics.PaddleFriction < 0 || c.Physics.BallFriction < 0:
		return fmt.Errorf("%w: friction must not be negative", ErrInvalid)
	case c.Physics.Iterations <= 0:
		return fmt.Errorf("%w: physics.iterations must be positive, got %d", ErrInvalid, c.Physics.Iterations)
	case c.Paddle.Speed <= 0:
		return fmt.Errorf("%w: paddle.speed must be positive, got %g", ErrInvalid, c.Paddle.Speed)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle size must be positive", ErrInvalid)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball.radius must be positive, got %g", ErrInvalid, c.Ball.Radius)
	case c.Ball.Speed <= 0:
		return fmt.Errorf("%w: ball.speed must be positive, got %g", ErrInvalid, c.Ball.Speed)
	case c.Ball.Density <= 0:
		return fmt.Errorf("%w: ball.density must be positive, got %g", ErrInvalid, c.Ball.Density)
	case c.Ball.MaxSpeed != 0 && c.Ball.MaxSpeed < c.Ball.Speed:
		return fmt.Errorf("%w: ball.max_speed %g is below ball.speed %g", ErrInvalid, c.Ball.MaxSpeed, c.Ball.Speed)
	case c.Bricks.Health <= 0:
		return fmt.Errorf("%w: bricks.health must be positive, got %d", ErrInvalid, c.Bricks.Health)
	}
	return nil
}

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}

// ParsePreset converts a flag value to a Preset.
// An empty string selects the normal preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy:
		return PresetEasy, nil
	case PresetHard:
		return PresetHard, nil
	default:
		return "", fmt.Errorf("%w: unknown preset %q", ErrInvalid, s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The normal preset leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Paddle.Speed = 7
		cfg.Ball.Speed = 150
	case PresetHard:
		cfg.Paddle.Speed = 4
		cfg.Ball.Speed = 260
	}
}
