package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults parses the embedded default YAML.
func Defaults() FlappyConfig {
	cfg := FlappyConfig{}
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// Load overlays a YAML file onto base and validates the result.
// Keys missing from the file keep their base value.
// Search order: customPath -> ~/.flappy/flappy.yaml -> ./configs/flappy.yaml -> base unchanged
func Load(customPath string, base FlappyConfig) (FlappyConfig, error) {
	cfg := base

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return base, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := Validate(cfg); err != nil {
			return base, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := base
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		cfg = candidate
		break
	}

	if err := Validate(cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// searchPaths returns the implicit config locations in priority order.
func searchPaths() []string {
	paths := make([]string, 0, 2)
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		paths = append(paths, userCfgPath)
	}
	return append(paths, filepath.Join("configs", "flappy.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", filename)
}
