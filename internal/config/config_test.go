package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML RushConfig
	if err := yaml.Unmarshal(GetDefaultYAML("rush"), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if !reflect.DeepEqual(fromYAML, DefaultRushConfig()) {
		t.Errorf("embedded YAML and DefaultRushConfig differ:\nyaml: %+v\ncode: %+v", fromYAML, DefaultRushConfig())
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultRushConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultRushConfig()
	cfg.Timing.MovementIntervalMs = 0
	cfg.Spawn.Coins.Probability = 1.5
	cfg.Gameplay.Lives = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"movement_interval_ms", "spawn.coins.probability", "gameplay.lives"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %q", msg, want)
		}
	}
}

func TestLoadRushCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rush.yaml")
	data := []byte("gameplay:\n  lives: 7\nspawn:\n  coins:\n    probability: 0.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRush(path)
	if err != nil {
		t.Fatalf("LoadRush() failed: %v", err)
	}

	if cfg.Gameplay.Lives != 7 {
		t.Errorf("lives = %d, expected 7", cfg.Gameplay.Lives)
	}
	if cfg.Spawn.Coins.Probability != 0.5 {
		t.Errorf("coin probability = %v, expected 0.5", cfg.Spawn.Coins.Probability)
	}
	// Untouched fields keep defaults
	if cfg.Spawn.Coins.IntervalMs != 100 {
		t.Errorf("coin interval = %d, expected default 100", cfg.Spawn.Coins.IntervalMs)
	}
	if cfg.Track.CharacterPosition != 15 {
		t.Errorf("character position = %v, expected default 15", cfg.Track.CharacterPosition)
	}
}

func TestLoadRushCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRush(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("track: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRush(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("timing:\n  movement_interval_ms: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRush(invalid); err == nil {
		t.Error("invalid custom config should fail validation")
	}
}

func TestApplyRushPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		level       float64
		lives       int
		description string
	}{
		{DifficultyEasy, true, 0.0, 5, "easy"},
		{DifficultyNormal, true, 0.3, 3, "normal"},
		{DifficultyHard, true, 0.7, 2, "hard"},
		{DifficultyFixed, false, 0.0, 3, "fixed"},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			cfg := DefaultRushConfig()
			ApplyRushPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("initial level = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Gameplay.Lives != tc.lives {
				t.Errorf("lives = %d, expected %d", cfg.Gameplay.Lives, tc.lives)
			}
		})
	}

	cfg := DefaultRushConfig()
	ApplyRushPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultRushConfig()) {
		t.Error("empty preset should leave config untouched")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) failed")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultySpeedRampMatchesDefaults(t *testing.T) {
	cfg := DefaultRushConfig()
	d := NewDifficultyManager(cfg.Difficulty)

	tests := []struct {
		ticks    int
		expected float64
	}{
		{0, 1.0},
		{1, 1.0005},
		{1000, 1.5},
		{3000, 2.5},
		{100000, 2.5},
	}

	for _, tc := range tests {
		got := d.Speed(cfg.Speed.Base, 0, tc.ticks)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Speed at %d ticks = %v, expected %v", tc.ticks, got, tc.expected)
		}
	}

	if got := d.MaxSpeed(cfg.Speed.Base); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("MaxSpeed = %v, expected 2.5", got)
	}
}

func TestDifficultyMonotonic(t *testing.T) {
	d := NewDifficultyManager(DefaultRushConfig().Difficulty)
	d.SetInitialLevel(0.3)

	prev := d.Speed(1.0, 0, 0)
	for ticks := 1; ticks < 4000; ticks++ {
		cur := d.Speed(1.0, 0, ticks)
		if cur < prev {
			t.Fatalf("speed decreased at tick %d: %v -> %v", ticks, prev, cur)
		}
		prev = cur
	}
}

func TestDifficultyDisabledIsFlat(t *testing.T) {
	cfg := DefaultRushConfig().Difficulty
	cfg.Enabled = false
	cfg.InitialLevel = 0.5
	d := NewDifficultyManager(cfg)

	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if d.Speed(1.0, 0, 0) != d.Speed(1.0, 0, 10000) {
		t.Error("disabled progression should keep a constant speed")
	}
	if got := d.MaxSpeed(1.0); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("MaxSpeed disabled = %v, expected 1.75", got)
	}

	d.SetEnabled(true)
	if !d.IsEnabled() {
		t.Error("SetEnabled(true) should enable progression")
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(50, 99999); got != 0.5 {
		t.Errorf("Level at half score = %v, expected 0.5", got)
	}
}
