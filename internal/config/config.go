package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/kerrsim/internal/kerr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMass      = 10.0
	DefaultSpin      = 0.7
	DefaultAccretion = 0.3
	DefaultTimeScale = 1.2
	DefaultTheme     = "cyberpunk"
)

var ErrInvalidTimeScale = errors.New("config: time_scale must be finite and >= 0")

type Config struct {
	Mass      float64 `yaml:"mass"`
	Spin      float64 `yaml:"spin"`
	Accretion float64 `yaml:"accretion"`
	TimeScale float64 `yaml:"time_scale"`
	Theme     string  `yaml:"theme,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:      DefaultMass,
		Spin:      DefaultSpin,
		Accretion: DefaultAccretion,
		TimeScale: DefaultTimeScale,
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters returns the physical inputs held by the config.
func (c *Config) Parameters() kerr.Parameters {
	return kerr.Parameters{
		MassSolar:     c.Mass,
		Spin:          c.Spin,
		AccretionRate: c.Accretion,
	}
}

func (c *Config) Validate() error {
	var errs []error
	if err := kerr.Validate(c.Parameters()); err != nil {
		errs = append(errs, err)
	}
	if math.IsNaN(c.TimeScale) || math.IsInf(c.TimeScale, 0) || c.TimeScale < 0 {
		errs = append(errs, ErrInvalidTimeScale)
	}
	return errors.Join(errs...)
}
