package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/releasegate/releasegate/internal/domain"
)

const fileName = ".releasegate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .releasegate.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .releasegate.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.PipelineConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.PipelineConfig{}, err
	}

	var cfg domain.PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.PipelineConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg = mergeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return domain.PipelineConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}

// mergeDefaults fills in the fields the file left unset. Explicit values
// always win; an explicit criteria list replaces the defaults entirely.
func mergeDefaults(cfg domain.PipelineConfig) domain.PipelineConfig {
	defaults := domain.DefaultConfig()

	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaults.Concurrency
	}
	if cfg.GatewaySuffix == "" {
		cfg.GatewaySuffix = defaults.GatewaySuffix
	}
	if len(cfg.Criteria) == 0 {
		cfg.Criteria = defaults.Criteria
	}

	return cfg
}
