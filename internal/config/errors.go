package config

import (
	"errors"
)

// Sentinels wrapped by Load so callers can distinguish a bad source
// (unreadable file, malformed YAML) from values that fail validation.
var (
	ErrLoadConfig    = errors.New("load config failed")
	ErrInvalidConfig = errors.New("invalid config")
)
