package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"logmon/internal/types"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks configuration that cannot be used to start a run
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultFilePath        = "system.log"
	DefaultFailedThreshold = 3
	DefaultAlertLogPath    = "alerts.log"
	DefaultFollowInterval  = 5 * time.Second
)

// Default returns the configuration used when no file and no flags are given
func Default() types.Config {
	var cfg types.Config
	cfg.Input.FilePath = DefaultFilePath
	cfg.Detection.FailedThreshold = DefaultFailedThreshold
	cfg.Output.AlertLogPath = DefaultAlertLogPath
	cfg.Output.Color = true
	cfg.Follow.Interval = DefaultFollowInterval
	return cfg
}

// LoadConfig reads the configuration from the given path. Keys missing from
// the file keep their defaults. An empty path yields Default().
func LoadConfig(path string) (*types.Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open config file: %v", ErrInvalid, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to decode config: %v", ErrInvalid, err)
	}

	validateConfig(&cfg)
	return &cfg, nil
}

// Overrides holds values given on the command line. Nil fields leave the
// loaded configuration untouched.
type Overrides struct {
	FilePath        *string
	FailedThreshold *int
	NoColor         bool
	Follow          bool
	Interval        *time.Duration
	DBPath          *string
}

// Apply returns a copy of cfg with the overrides applied
func Apply(cfg types.Config, o Overrides) types.Config {
	if o.FilePath != nil {
		cfg.Input.FilePath = *o.FilePath
	}
	if o.FailedThreshold != nil {
		cfg.Detection.FailedThreshold = *o.FailedThreshold
	}
	if o.NoColor {
		cfg.Output.Color = false
	}
	if o.Follow {
		cfg.Follow.Enabled = true
	}
	if o.Interval != nil {
		cfg.Follow.Interval = *o.Interval
	}
	if o.DBPath != nil {
		cfg.State.DBPath = *o.DBPath
	}
	validateConfig(&cfg)
	return cfg
}

// validateConfig applies defaults for values that have no meaningful zero.
// The failed-login threshold is taken as is: 0 and negative values are valid.
func validateConfig(cfg *types.Config) {
	if cfg.Input.FilePath == "" {
		cfg.Input.FilePath = DefaultFilePath
	}
	if cfg.Output.AlertLogPath == "" {
		cfg.Output.AlertLogPath = DefaultAlertLogPath
	}
	if cfg.Follow.Interval <= 0 {
		cfg.Follow.Interval = DefaultFollowInterval
	}
}
