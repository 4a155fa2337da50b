package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultYAML []byte

// Default returns the canonical configuration.
// Values mirror defaults/breakout.yaml and back any field a YAML file leaves out.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Restitution:    1.0,
			WallFriction:   0.0,
			PaddleFriction: 2.0,
			BallFriction:   1.0,
			Iterations:     10,
			ClampPaddle:    true,
		},
		Paddle: PaddleConfig{
			Speed:  5,
			Width:  100,
			Height: 10,
			Y:      -200,
		},
		Ball: BallConfig{
			Radius:   5,
			Speed:    200,
			Density:  2,
			MaxSpeed: 600,
		},
		Bricks: BricksConfig{
			Health: 2,
		},
		Loop: LoopConfig{
			TickRate:   60,
			MaxCatchup: 5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
