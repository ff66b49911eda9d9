package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".ropesim"

// Load loads the rope configuration.
// Search order: customPath -> ~/.ropesim/configs/rope.yaml -> ./configs/rope.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (RopeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RopeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RopeConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("rope.yaml"), filepath.Join("configs", "rope.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRopeYAML)
	if err != nil {
		return DefaultRopeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultRopeConfig and validates the result.
func Parse(data []byte) (RopeConfig, error) {
	cfg := DefaultRopeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RopeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RopeConfig{}, err
	}
	return cfg, nil
}

// HomePath joins elem onto ~/.ropesim, or returns "" if home is unavailable.
func HomePath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	return HomePath("configs", filename)
}
