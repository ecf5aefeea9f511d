package config

import (
	"io"
	"time"

	"github.com/lgbarn/chessgame-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMode sets normal or puzzle mode.
func (b *ConfigBuilder) WithMode(mode Mode) *ConfigBuilder {
	b.cfg.Mode = mode
	return b
}

// WithOpponent sets the opponent and the colour the user plays.
func (b *ConfigBuilder) WithOpponent(opponent Opponent, colour chess.Colour) *ConfigBuilder {
	b.cfg.Play.Opponent = opponent
	b.cfg.Play.PlayerColour = colour
	return b
}

// WithFiftyMoveThreshold sets the halfmove clock value that draws.
func (b *ConfigBuilder) WithFiftyMoveThreshold(threshold uint) *ConfigBuilder {
	b.cfg.Play.FiftyMoveThreshold = threshold
	return b
}

// WithDelays sets the computer think time and the puzzle reply delay.
func (b *ConfigBuilder) WithDelays(think, reply time.Duration) *ConfigBuilder {
	b.cfg.Play.ThinkTime = think
	b.cfg.Play.ReplyDelay = reply
	return b
}

// WithEngine sets the UCI engine binary and search depth.
func (b *ConfigBuilder) WithEngine(path string, depth int) *ConfigBuilder {
	b.cfg.Engine.Path = path
	b.cfg.Engine.Depth = depth
	return b
}

// WithPuzzleFile selects a puzzle collection file.
func (b *ConfigBuilder) WithPuzzleFile(path string, index int) *ConfigBuilder {
	b.cfg.Puzzle.File = path
	b.cfg.Puzzle.Index = index
	return b
}

// WithPuzzleDSN selects a puzzle database.
func (b *ConfigBuilder) WithPuzzleDSN(dsn string, index int) *ConfigBuilder {
	b.cfg.Puzzle.DSN = dsn
	b.cfg.Puzzle.Index = index
	return b
}

// WithWorkers sets the validation pool size.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
