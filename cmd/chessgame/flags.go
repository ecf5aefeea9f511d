// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/oracle"
)

var (
	// Logging
	logFile = flag.String("l", "", "Write log output to this file (default: stderr)")
	silent  = flag.Bool("s", false, "Silent mode: no log output")
	verbose = flag.Bool("v", false, "Log every move")

	// Play
	startFEN   = flag.String("fen", "", "Start position for a normal game or -perft (default: initial position)")
	thinkTime  = flag.Duration("think", 2*time.Second, "Pause before the computer moves")
	replyDelay = flag.Duration("reply", time.Second, "Pause before a scripted puzzle reply")
	fiftyMoves = flag.Uint("fifty", 100, "Halfmove clock value that draws")

	// Computer opponent
	enginePath  = flag.String("engine", "", "UCI engine binary (default: built-in random mover)")
	engineDepth = flag.Int("depth", oracle.DefaultDepth, "Engine search depth")
	engineSeed  = flag.Int64("seed", 1, "Seed for the built-in random mover")

	// Puzzles
	puzzleFile  = flag.String("puzzles", "", "Puzzle collection (.json or lichess .csv)")
	puzzleDSN   = flag.String("dsn", "", "MySQL puzzle database DSN (default: $"+config.DSNEnv+")")
	validateAll = flag.Bool("validate", false, "Replay every puzzle solution and report failures")
	workers     = flag.Int("workers", 0, "Validation workers (0 = number of CPUs)")

	// Debugging
	perftDepth = flag.Int("perft", 0, "Count leaf nodes to depth N from -fen and exit")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies the parsed flags and the positional arguments to cfg.
func applyFlags(cfg *config.Config, args []string) error {
	applyLogFlags(cfg)
	applyPlayFlags(cfg)
	applyEngineFlags(cfg)
	applyPuzzleFlags(cfg)
	if *perftDepth > 0 {
		return nil
	}
	return parseArgs(cfg, args)
}

func applyLogFlags(cfg *config.Config) {
	switch {
	case *silent:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

func applyPlayFlags(cfg *config.Config) {
	cfg.Play.ThinkTime = *thinkTime
	cfg.Play.ReplyDelay = *replyDelay
	cfg.Play.FiftyMoveThreshold = *fiftyMoves
}

func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.Path = *enginePath
	cfg.Engine.Depth = *engineDepth
	cfg.Engine.Seed = *engineSeed
}

func applyPuzzleFlags(cfg *config.Config) {
	cfg.Puzzle.File = *puzzleFile
	cfg.Puzzle.DSN = *puzzleDSN
	cfg.Puzzle.ValidateAll = *validateAll
	if *validateAll {
		cfg.Mode = config.PuzzleMode
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
}

// parseArgs reads the positional arguments:
//
//	normal [man|computer [white|black]]
//	puzzle INDEX
//
// With -validate no positional argument is needed.
func parseArgs(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		if cfg.Puzzle.ValidateAll {
			return nil
		}
		return fmt.Errorf("not enough arguments: %w", errors.ErrInvalidConfig)
	}

	mode, err := config.ParseMode(args[0])
	if err != nil {
		return err
	}
	cfg.Mode = mode

	if mode == config.PuzzleMode {
		return parsePuzzleArgs(cfg, args[1:])
	}
	return parseNormalArgs(cfg, args[1:])
}

func parseNormalArgs(cfg *config.Config, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("unexpected argument %q: %w", args[2], errors.ErrInvalidConfig)
	}
	if len(args) > 0 {
		opponent, err := config.ParseOpponent(args[0])
		if err != nil {
			return err
		}
		cfg.Play.Opponent = opponent
	}
	if len(args) > 1 {
		colour, ok := chess.ParseColour(strings.ToLower(args[1]))
		if !ok {
			return fmt.Errorf("colour %q: enter 'white' or 'black': %w", args[1], errors.ErrInvalidConfig)
		}
		cfg.Play.PlayerColour = colour
	}
	return nil
}

func parsePuzzleArgs(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		if cfg.Puzzle.ValidateAll {
			return nil
		}
		return fmt.Errorf("puzzle index is required for puzzle mode: %w", errors.ErrInvalidConfig)
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected argument %q: %w", args[1], errors.ErrInvalidConfig)
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("puzzle index %q must be an integer: %w", args[0], errors.ErrInvalidConfig)
	}
	cfg.Puzzle.Index = index
	return nil
}
