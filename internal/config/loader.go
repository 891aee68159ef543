package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "barista.yaml"

// LoadBarista loads the simulation configuration and validates it.
// Search order: customPath -> ~/.barista/configs/barista.yaml ->
// ./configs/barista.yaml -> embedded default -> hardcoded default.
func LoadBarista(customPath string) (BaristaConfig, error) {
	// Custom path errors are reported, the rest fall through silently
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if cfg, err := readFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	if cfg, err := readFile(filepath.Join("configs", configFileName)); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultBaristaYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultBaristaConfig(), nil
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the hardcoded defaults, so a
// partial file only overrides the keys it names.
func Parse(data []byte) (BaristaConfig, error) {
	cfg := DefaultBaristaConfig()
	// Lists are replaced wholesale rather than merged element-wise
	cfg.Levels = nil
	cfg.Cups.Sizes = nil
	cfg.Cups.Distribution = nil
	cfg.Cups.Names = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	def := DefaultBaristaConfig()
	if len(cfg.Levels) == 0 {
		cfg.Levels = def.Levels
	}
	if len(cfg.Cups.Sizes) == 0 {
		cfg.Cups.Sizes = def.Cups.Sizes
	}
	if len(cfg.Cups.Distribution) == 0 {
		cfg.Cups.Distribution = def.Cups.Distribution
	}
	if len(cfg.Cups.Names) == 0 {
		cfg.Cups.Names = def.Cups.Names
	}
	return cfg, nil
}

func readFile(path string) (BaristaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BaristaConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".barista", "configs", filename)
}
