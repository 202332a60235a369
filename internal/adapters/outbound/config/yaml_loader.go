package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seatbelt/seatbelt/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = ".seatbelt.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .seatbelt.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .seatbelt.yaml from projectPath and overlays it on the
// defaults. Returns DefaultConfig if the file does not exist.
//
// Maps merge key by key; lists replace the default list entirely.
func (l *YAMLLoader) Load(projectPath string) (domain.HealthConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.HealthConfig{}, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.HealthConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.HealthConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}
