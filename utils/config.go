package utils

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/decaylife/rules"
)

// StepMode selects how a generation is computed
type StepMode string

const (
	ModeSequential StepMode = "sequential"
	ModeParallel   StepMode = "parallel"
	ModeBounded    StepMode = "bounded"
)

const (
	DefaultRows      = 45
	DefaultCols      = 60
	DefaultFrameRate = time.Second
)

// SimulationConfig carries everything the engine needs to build and step a grid
type SimulationConfig struct {
	Rows          int `yaml:"rows"`
	Cols          int `yaml:"cols"`
	DecayDuration int `yaml:"decay"`
}

// DefaultSimulationConfig returns the reference 45x60 board with a decay of 3
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Rows:          DefaultRows,
		Cols:          DefaultCols,
		DecayDuration: rules.DefaultDecay,
	}
}

// SeedEntry is one cell override of the initial pattern
type SeedEntry struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	State string `yaml:"state"`
	Timer int    `yaml:"timer,omitempty"`
}

// Config holds the configuration for the simulation and its driver
type Config struct {
	SimulationConfig `yaml:",inline"`

	FrameRate           time.Duration `yaml:"frame_rate"`
	MaxGenerations      int           `yaml:"max_generations"`
	Mode                StepMode      `yaml:"mode"`
	UseMemoryPool       bool          `yaml:"use_memory_pool"`
	Color               bool          `yaml:"color"`
	AutoRestart         bool          `yaml:"auto_restart"`
	StagnationThreshold int           `yaml:"stagnation_threshold"`
	RandomDensity       float64       `yaml:"random_density"`
	RandomSeed          int64         `yaml:"random_seed"`
	Pattern             []SeedEntry   `yaml:"pattern,omitempty"`
}

// DefaultConfig returns the reference behavior: unbounded, one frame per second
func DefaultConfig() Config {
	return Config{
		SimulationConfig:    DefaultSimulationConfig(),
		FrameRate:           DefaultFrameRate,
		MaxGenerations:      0,
		Mode:                ModeSequential,
		UseMemoryPool:       true,
		Color:               false,
		AutoRestart:         false,
		StagnationThreshold: 5,
	}
}

// Validate checks the values a grid and driver cannot run with
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Validate] grid dimensions must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.DecayDuration < 0 {
		return errors.Errorf("[Validate] decay must not be negative, got %d", c.DecayDuration)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame rate must not be negative, got %s", c.FrameRate)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	}
	switch c.Mode {
	case ModeSequential, ModeParallel, ModeBounded:
	default:
		return errors.Errorf("[Validate] unknown mode %q", c.Mode)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random density must be within [0,1], got %v", c.RandomDensity)
	}
	for i, entry := range c.Pattern {
		if _, ok := rules.ParseState(entry.State); !ok {
			return errors.Errorf("[Validate] pattern entry %d has unknown state %q", i, entry.State)
		}
	}
	return nil
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(filename string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "[SaveConfig] failed to marshal config")
	}
	if err = os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "[SaveConfig] failed to write file: %+v", filename)
	}
	return nil
}

// CheckRestartConditions determines if a run should reseed, and why
func CheckRestartConditions(livingCells, stagnantCount int, config Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}
