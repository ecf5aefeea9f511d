// Package config provides configuration for the chess game controller.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Mode selects what the controller runs.
type Mode int

const (
	NormalMode Mode = iota // A game between two sides
	PuzzleMode             // A scripted puzzle from the puzzle source
)

// String returns the command line name of the mode.
func (m Mode) String() string {
	if m == PuzzleMode {
		return "puzzle"
	}
	return "normal"
}

// ParseMode accepts "normal" or "puzzle" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "normal":
		return NormalMode, nil
	case "puzzle":
		return PuzzleMode, nil
	}
	return NormalMode, fmt.Errorf("mode %q: enter 'normal' or 'puzzle': %w", s, errors.ErrInvalidConfig)
}

// DSNEnv names the environment variable consulted for the puzzle database.
const DSNEnv = "CHESSGAME_DSN"

// Config holds all program configuration.
type Config struct {
	Mode      Mode
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Sub-configurations
	Play   *PlayConfig
	Engine *EngineConfig
	Puzzle *PuzzleConfig

	// Workers is the size of the validation pool.
	Workers int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:       NormalMode,
		Verbosity:  1,
		Play:       NewPlayConfig(),
		Engine:     NewEngineConfig(),
		Puzzle:     NewPuzzleConfig(),
		Workers:    runtime.NumCPU(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes to LogFile when the verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers (%d) must be positive: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Play.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.Mode == PuzzleMode {
		return c.Puzzle.Validate()
	}
	return nil
}

// LoadEnv fills unset values from the environment.
func (c *Config) LoadEnv() {
	if c.Puzzle.DSN == "" {
		c.Puzzle.DSN = os.Getenv(DSNEnv)
	}
}
