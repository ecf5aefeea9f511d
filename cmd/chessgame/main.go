// chessgame plays chess at the terminal: a game against another person or
// a computer opponent, or a rated puzzle from a puzzle collection.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/oracle"
	"github.com/lgbarn/chessgame-go/internal/puzzle"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessgame version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	cfg.LoadEnv()
	setupLogFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := runOptions{perft: *perftDepth, fen: *startFEN}
	if err := run(ctx, cfg, opts, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// runOptions carries the flags that select a one-shot command.
type runOptions struct {
	perft int    // Perft depth; 0 plays instead
	fen   string // Start position for a normal game or perft
}

// run dispatches on the configuration. Moves are read from in; the board
// and results go to cfg.OutputFile.
func run(ctx context.Context, cfg *config.Config, opts runOptions, in io.Reader) error {
	if opts.perft > 0 {
		return runPerft(cfg.OutputFile, opts.fen, opts.perft)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Mode == config.NormalMode {
		o, closeOracle, err := openOracle(ctx, cfg)
		if err != nil {
			return err
		}
		err = playNormal(ctx, cfg, o, opts.fen, in)
		return closeAll(err, closeOracle)
	}

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Puzzle.ValidateAll {
		err = runValidate(ctx, cfg, src)
	} else {
		err = playPuzzle(ctx, cfg, src, in)
	}
	return closeAll(err, src.Close)
}

// openOracle starts the configured UCI engine, or the built-in random
// mover when no engine path is set. The returned func releases it.
func openOracle(ctx context.Context, cfg *config.Config) (oracle.MoveOracle, func() error, error) {
	if cfg.Play.Opponent != config.Computer {
		return nil, func() error { return nil }, nil
	}
	if cfg.Engine.Path == "" {
		cfg.Logf(1, "using the built-in random mover\n")
		return oracle.NewRandomOracle(cfg.Engine.Seed), func() error { return nil }, nil
	}
	e, err := oracle.NewUCIEngine(ctx, cfg.Engine.Path, cfg.Engine.Depth)
	if err != nil {
		return nil, nil, err
	}
	cfg.Logf(1, "engine %s at depth %d\n", cfg.Engine.Path, cfg.Engine.Depth)
	return e, e.Close, nil
}

// openSource opens the puzzle file, or the MySQL database when no file is
// set.
func openSource(ctx context.Context, cfg *config.Config) (puzzle.Source, error) {
	if cfg.Puzzle.File != "" {
		src, err := puzzle.LoadFile(cfg.Puzzle.File)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	src, err := puzzle.OpenMySQL(ctx, cfg.Puzzle.DSN)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// closeAll runs every close func and merges their failures with err.
func closeAll(err error, closers ...func() error) error {
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	for _, c := range closers {
		if cerr := c(); cerr != nil {
			result = multierror.Append(result, cerr)
		}
	}
	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessgame [options] normal [man|computer [white|black]]\n")
	fmt.Fprintf(os.Stderr, "       chessgame [options] puzzle INDEX\n")
	fmt.Fprintf(os.Stderr, "       chessgame [options] -validate\n")
	fmt.Fprintf(os.Stderr, "       chessgame -perft N [-fen FEN]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess at the terminal.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are entered as coordinates (e2e4). Entering a square\n")
	fmt.Fprintf(os.Stderr, "(e2) shows where its piece can go; 'quit' gives up.\n")
}
