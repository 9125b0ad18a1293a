package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRush loads the runner configuration.
// Search order: customPath -> ~/.rush/configs/rush.yaml -> ./configs/rush.yaml -> embedded default
func LoadRush(customPath string) (RushConfig, error) {
	// Unset fields keep their defaults so partial files are valid.
	cfg := DefaultRushConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rush.yaml"); userCfgPath != "" {
		if parsed, ok := tryLoad(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryLoad(filepath.Join("configs", "rush.yaml")); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	embedded := DefaultRushConfig()
	if err := yaml.Unmarshal(defaultRushYAML, &embedded); err != nil {
		return DefaultRushConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing, malformed or invalid files
// are skipped so the next location in the search order is used.
func tryLoad(path string) (RushConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RushConfig{}, false
	}
	cfg := DefaultRushConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RushConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return RushConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rush", "configs", filename)
}

// ApplyRushPreset modifies the config based on a difficulty preset.
func ApplyRushPreset(cfg *RushConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Lives follow the preset like breakout's paddle/lives tweaks did
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
	}
}
