package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

type DetectConfig struct {
	Window    int     `yaml:"window" default:"40" validate:"gt=0"`
	Threshold float64 `yaml:"threshold" default:"3.0" validate:"gt=0"`
}

type LevelsConfig struct {
	Order            int     `yaml:"order" default:"5" validate:"gt=0"`
	TrendOrder       int     `yaml:"trend_order" default:"20" validate:"gt=0"`
	ATRPeriod        int     `yaml:"atr_period" default:"14" validate:"gt=0"`
	ATRMultiplier    float64 `yaml:"atr_multiplier" default:"1.0" validate:"gt=0"`
	CollapsePlateaus bool    `yaml:"collapse_plateaus"`
}

type SyntheticConfig struct {
	NumPoints       int     `yaml:"num_points" default:"300" validate:"gt=0"`
	Seed            uint64  `yaml:"seed" default:"42"`
	StartTime       string  `yaml:"start_time" default:"2025-10-01T09:00:00Z"`
	IntervalMinutes int     `yaml:"interval_minutes" default:"15" validate:"gt=0"`
	NoiseSigma      float64 `yaml:"noise_sigma" default:"0.5" validate:"gte=0"`
	DriftScale      float64 `yaml:"drift_scale" default:"0.5"`
	ShiftMagnitude  float64 `yaml:"shift_magnitude" default:"15.0"`
	// ShiftAt zero keeps the shift at the series midpoint.
	ShiftAt int `yaml:"shift_at" validate:"gte=0"`
}

type OutputConfig struct {
	Dir string `yaml:"dir" default:"."`
}

type Config struct {
	Detect    DetectConfig    `yaml:"detect"`
	Levels    LevelsConfig    `yaml:"levels"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
	Output    OutputConfig    `yaml:"output"`
}

// Default returns a configuration with every field at its default value.
func Default() (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a YAML configuration file, fills unset fields with their
// defaults and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks the field constraints and the start time format.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Synthetic.Start(); err != nil {
		return err
	}
	return nil
}

// Start parses the synthetic start timestamp.
func (s *SyntheticConfig) Start() (time.Time, error) {
	res, err := time.Parse(time.RFC3339, s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start_time: %w", err)
	}
	return res, nil
}

// Interval returns the synthetic sampling interval as a duration.
func (s *SyntheticConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}
