package app

import (
	"errors"
	"fmt"
)

// Output formats for call results.
const (
	OutputJSON      = "json"
	OutputProtoJSON = "protojson"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SessionPath string // hcl file or directory

	LogFormat       string
	LogLevel        string
	Output          string
	HealthcheckPort int
	// WorkerCount bounds how many component instances run calls at once.
	WorkerCount int
	// MaxContexts bounds live execution contexts. 0 is unbounded.
	MaxContexts   int
	StrictNumbers bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SessionPath == "" {
		return nil, errors.New("SessionPath is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = OutputJSON
	}
	if cfg.Output != OutputJSON && cfg.Output != OutputProtoJSON {
		return nil, fmt.Errorf("invalid output format '%s': must be '%s' or '%s'", cfg.Output, OutputJSON, OutputProtoJSON)
	}
	if cfg.WorkerCount < 0 {
		return nil, errors.New("WorkerCount must not be negative")
	}
	if cfg.MaxContexts < 0 {
		return nil, errors.New("MaxContexts must not be negative")
	}
	return &cfg, nil
}
