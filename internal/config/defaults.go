package config

import (
	_ "embed"
)

//go:embed defaults/rush.yaml
var defaultRushYAML []byte

// DefaultRushConfig returns the default runner configuration.
func DefaultRushConfig() RushConfig {
	return RushConfig{
		Track: TrackConfig{
			SpawnPosition:     100,
			EvictPosition:     -10,
			CharacterPosition: 15,
			ProximityRadius:   5,
			MagnetRadius:      15,
			MoveStep:          1.0,
		},
		Timing: TimingConfig{
			MovementIntervalMs: 16,
			ActionDurationMs:   800,
			PowerUpDurationMs:  5000,
		},
		Spawn: SpawnConfig{
			Obstacles: SpawnFamily{IntervalMs: 50, Probability: 0.05, Variant: 0.5},
			Coins:     SpawnFamily{IntervalMs: 100, Probability: 0.03, Variant: 0.3},
			PowerUps:  SpawnFamily{IntervalMs: 200, Probability: 0.01},
		},
		Speed: SpeedConfig{
			Base:        1.0,
			BoostFactor: 1.5,
		},
		Gameplay: GameplayConfig{
			Lives:          3,
			CoinReward:     10,
			MilestoneEvery: 1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3000, // +0.0005 per tick until 2.5
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "rush":
		return defaultRushYAML
	default:
		return nil
	}
}
