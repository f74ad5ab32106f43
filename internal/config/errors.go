package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	ErrMissingToken  = errors.New("missing GitHub token: set GITHUB_TOKEN or AIREADY_GITHUB_TOKEN")
)
