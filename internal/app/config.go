package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// NetPath points at a .hcl or .yaml network definition file.
	NetPath string

	// Strategy overrides the execution strategy from the definition when
	// non-empty ("dag" or "sequential").
	Strategy string
	// Workers overrides the definition's worker count when positive.
	Workers int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates the raw configuration values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.NetPath == "" {
		return nil, errors.New("NetPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
