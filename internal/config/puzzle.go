package config

import (
	"fmt"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// PuzzleConfig holds settings for the puzzle source.
type PuzzleConfig struct {
	// Index selects the puzzle by rating order
	Index int

	// File is a JSON or CSV puzzle collection
	File string

	// DSN is a MySQL data source name, used when File is empty
	DSN string

	// ValidateAll replays every puzzle instead of playing one
	ValidateAll bool
}

// NewPuzzleConfig creates a PuzzleConfig with default values.
// All fields use Go zero values.
func NewPuzzleConfig() *PuzzleConfig {
	return &PuzzleConfig{}
}

// Validate checks that the puzzle configuration is valid.
func (p *PuzzleConfig) Validate() error {
	if p.Index < 0 {
		return fmt.Errorf("puzzle index (%d) must not be negative: %w", p.Index, errors.ErrInvalidConfig)
	}
	if p.File == "" && p.DSN == "" {
		return fmt.Errorf("no puzzle file or database: %w", errors.ErrInvalidConfig)
	}
	return nil
}
