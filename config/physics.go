package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// PhysicsConfig holds the simulation tuning. Geometry lives in
// shared/netconfig because clients need it too; these values are server-only.
type PhysicsConfig struct {
	// Per-tick velocity retention.
	PuckFriction   float64 `yaml:"puckFriction"`
	PlayerFriction float64 `yaml:"playerFriction"`

	// Player-player response: v -= Damping * relV / CombinedMass.
	CollisionDamping float64 `yaml:"collisionDamping"`
	CombinedMass     float64 `yaml:"combinedMass"`

	// Movement intent
	MoveSpeed float64 `yaml:"moveSpeed"`
	MaxIntent float64 `yaml:"maxIntent"` // largest accepted |dx| or |dy|

	// Jolt
	JoltSpeed            float64       `yaml:"joltSpeed"`
	JoltCooldown         time.Duration `yaml:"joltCooldown"`
	SpeedPenalty         float64       `yaml:"speedPenalty"`
	SpeedPenaltyDuration time.Duration `yaml:"speedPenaltyDuration"`
}

// Physics is the global simulation tuning.
var Physics PhysicsConfig

func init() {
	Physics = DefaultPhysics()
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		PuckFriction:   0.99,
		PlayerFriction: 0.9,

		CollisionDamping: 0.5,
		CombinedMass:     2, // equal unit masses

		MoveSpeed: 1,
		MaxIntent: 2,

		JoltSpeed:            15,
		JoltCooldown:         1 * time.Second,
		SpeedPenalty:         0.7,
		SpeedPenaltyDuration: 1500 * time.Millisecond,
	}
}

// Validate rejects tunings the simulation cannot run with.
func (c PhysicsConfig) Validate() error {
	if c.PuckFriction <= 0 || c.PuckFriction > 1 {
		return fmt.Errorf("puckFriction must be in (0, 1], got %v", c.PuckFriction)
	}
	if c.PlayerFriction <= 0 || c.PlayerFriction > 1 {
		return fmt.Errorf("playerFriction must be in (0, 1], got %v", c.PlayerFriction)
	}
	if c.CombinedMass <= 0 {
		return fmt.Errorf("combinedMass must be positive, got %v", c.CombinedMass)
	}
	if c.MoveSpeed <= 0 {
		return fmt.Errorf("moveSpeed must be positive, got %v", c.MoveSpeed)
	}
	if c.JoltSpeed < 0 {
		return fmt.Errorf("joltSpeed must not be negative, got %v", c.JoltSpeed)
	}
	if c.MaxIntent <= 0 {
		return fmt.Errorf("maxIntent must be positive, got %v", c.MaxIntent)
	}
	if c.SpeedPenalty <= 0 || c.SpeedPenalty > 1 {
		return fmt.Errorf("speedPenalty must be in (0, 1], got %v", c.SpeedPenalty)
	}
	if c.JoltCooldown < 0 || c.SpeedPenaltyDuration < 0 {
		return fmt.Errorf("jolt timers must not be negative")
	}
	return nil
}

// LoadPhysics overlays a YAML file onto the defaults. Keys absent from the
// file keep their default value.
func LoadPhysics(path string) (PhysicsConfig, error) {
	cfg := DefaultPhysics()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read physics config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse physics config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("physics config %s: %w", path, err)
	}
	return cfg, nil
}
