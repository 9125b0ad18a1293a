// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
)

// RushConfig contains all configuration for the lane runner.
type RushConfig struct {
	Track      TrackConfig      `yaml:"track"`
	Timing     TimingConfig     `yaml:"timing"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Speed      SpeedConfig      `yaml:"speed"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TrackConfig defines positions along the track. Entities enter at
// SpawnPosition and travel towards and past CharacterPosition.
type TrackConfig struct {
	SpawnPosition     float64 `yaml:"spawn_position"`
	EvictPosition     float64 `yaml:"evict_position"`     // Entities at or below this are removed
	CharacterPosition float64 `yaml:"character_position"` // Center of the proximity band
	ProximityRadius   float64 `yaml:"proximity_radius"`   // Half-width of the proximity band (exclusive)
	MagnetRadius      float64 `yaml:"magnet_radius"`      // Coin band half-width while a magnet is active
	MoveStep          float64 `yaml:"move_step"`          // Distance per movement tick at speed 1.0
}

// TimingConfig defines loop intervals and effect durations in milliseconds.
type TimingConfig struct {
	MovementIntervalMs int `yaml:"movement_interval_ms"`
	ActionDurationMs   int `yaml:"action_duration_ms"`  // Jump/slide length
	PowerUpDurationMs  int `yaml:"powerup_duration_ms"` // Magnet/shield/boost length
}

// SpawnConfig defines the three independent spawner families.
type SpawnConfig struct {
	Obstacles SpawnFamily `yaml:"obstacles"`
	Coins     SpawnFamily `yaml:"coins"`
	PowerUps  SpawnFamily `yaml:"powerups"`
}

// SpawnFamily defines one spawner loop.
type SpawnFamily struct {
	IntervalMs  int     `yaml:"interval_ms"`
	Probability float64 `yaml:"probability"` // Base chance per tick, scaled by speed
	// Variant is the chance of the secondary subtype: tall vehicles for
	// obstacles, airborne coins for coins. Unused for power-ups.
	Variant float64 `yaml:"variant"`
}

// SpeedConfig defines the speed multiplier.
type SpeedConfig struct {
	Base        float64 `yaml:"base"`         // Multiplier at the start of a run
	BoostFactor float64 `yaml:"boost_factor"` // Extra factor while a speed boost is active
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives          int `yaml:"lives"`
	CoinReward     int `yaml:"coin_reward"`
	MilestoneEvery int `yaml:"milestone_every"` // 0 disables milestone notices
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that a config can drive the simulation.
func (c RushConfig) Validate() error {
	var errs []error

	if c.Timing.MovementIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.movement_interval_ms must be positive, got %d", c.Timing.MovementIntervalMs))
	}
	if c.Timing.ActionDurationMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.action_duration_ms must be positive, got %d", c.Timing.ActionDurationMs))
	}
	if c.Timing.PowerUpDurationMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.powerup_duration_ms must be positive, got %d", c.Timing.PowerUpDurationMs))
	}

	families := []struct {
		name string
		f    SpawnFamily
	}{
		{"obstacles", c.Spawn.Obstacles},
		{"coins", c.Spawn.Coins},
		{"powerups", c.Spawn.PowerUps},
	}
	for _, fam := range families {
		if fam.f.IntervalMs <= 0 {
			errs = append(errs, fmt.Errorf("spawn.%s.interval_ms must be positive, got %d", fam.name, fam.f.IntervalMs))
		}
		if fam.f.Probability < 0 || fam.f.Probability > 1 {
			errs = append(errs, fmt.Errorf("spawn.%s.probability must be in [0,1], got %v", fam.name, fam.f.Probability))
		}
		if fam.f.Variant < 0 || fam.f.Variant > 1 {
			errs = append(errs, fmt.Errorf("spawn.%s.variant must be in [0,1], got %v", fam.name, fam.f.Variant))
		}
	}

	if c.Track.SpawnPosition <= c.Track.EvictPosition {
		errs = append(errs, fmt.Errorf("track.spawn_position (%v) must be above evict_position (%v)", c.Track.SpawnPosition, c.Track.EvictPosition))
	}
	if c.Track.ProximityRadius <= 0 {
		errs = append(errs, fmt.Errorf("track.proximity_radius must be positive, got %v", c.Track.ProximityRadius))
	}
	if c.Track.MoveStep <= 0 {
		errs = append(errs, fmt.Errorf("track.move_step must be positive, got %v", c.Track.MoveStep))
	}
	if c.Speed.Base <= 0 {
		errs = append(errs, fmt.Errorf("speed.base must be positive, got %v", c.Speed.Base))
	}
	if c.Speed.BoostFactor <= 0 {
		errs = append(errs, fmt.Errorf("speed.boost_factor must be positive, got %v", c.Speed.BoostFactor))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be positive, got %d", c.Gameplay.Lives))
	}

	return errors.Join(errs...)
}
