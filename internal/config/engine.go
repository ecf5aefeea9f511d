package config

import (
	"fmt"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// EngineConfig holds settings for the computer's move oracle.
type EngineConfig struct {
	// Path is the UCI engine binary; empty selects the built-in random oracle
	Path string

	// Depth is the fixed search depth sent with "go depth"
	Depth int

	// Seed seeds the built-in random oracle
	Seed int64
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{Depth: 15, Seed: 1}
}

// Validate checks that the engine configuration is valid.
func (e *EngineConfig) Validate() error {
	if e.Depth < 1 {
		return fmt.Errorf("engine depth (%d) must be positive: %w", e.Depth, errors.ErrInvalidConfig)
	}
	return nil
}
