package utils

import (
	"encoding/json"
	"flag"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for an automaton run
type Config struct {
	Size                int           `json:"size"`
	Rule                string        `json:"rule"`
	PatternFile         string        `json:"pattern_file"`
	Probability         float64       `json:"probability"`
	FrameRate           time.Duration `json:"frame_rate"`
	MaxGenerations      int           `json:"max_generations"`
	Seed                int64         `json:"seed"`
	Workers             int           `json:"workers"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:                64,
		Rule:                "23/3/2",
		Probability:         0.6,
		FrameRate:           50 * time.Millisecond,
		MaxGenerations:      1000,
		Workers:             1,
		UseMemoryPool:       true,
		AutoRestart:         false,
		StagnationThreshold: 5,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// Validate checks the fields that can be judged without parsing the rule.
// The rule string is validated when the engine is built.
func (c Config) Validate() error {
	if c.Size < 1 {
		return errors.Wrapf(ErrValidation, "[Validate] size must be positive, got %d", c.Size)
	}
	if c.PatternFile == "" && (math.IsNaN(c.Probability) || c.Probability < 0 || c.Probability > 1) {
		return errors.Wrapf(ErrValidation, "[Validate] probability must be within [0,1], got %v", c.Probability)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrValidation, "[Validate] workers must not be negative, got %d", c.Workers)
	}
	if c.StagnationThreshold < 0 {
		return errors.Wrapf(ErrValidation, "[Validate] stagnation threshold must not be negative, got %d", c.StagnationThreshold)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "board side length")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule string <survival>/<birth>/<states>")
	fs.StringVar(&c.PatternFile, "pattern", c.PatternFile, "pattern file of row/col pairs")
	fs.Float64Var(&c.Probability, "prob", c.Probability, "probability that a cell starts alive")
	fs.DurationVar(&c.FrameRate, "frame", c.FrameRate, "delay between generations")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills (0 picks one)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel row bands per generation")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "reuse grid buffers between generations")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "reset the board when it stagnates")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant generations before a restart")
}
