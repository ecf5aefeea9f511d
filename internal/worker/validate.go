package worker

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/hashing"
	"github.com/lgbarn/chessgame-go/internal/puzzle"
)

// Duplicate names a puzzle whose start position an earlier puzzle shares.
type Duplicate struct {
	ID    string
	First string
}

// Report summarises a validation run.
type Report struct {
	Checked    int
	Failed     int
	Duplicates []Duplicate
	Results    []Result // In source order; skipped puzzles are absent

	// Err aggregates every failure, or is nil.
	Err error
}

// Validator replays every puzzle of a source through the rules engine.
type Validator struct {
	cfg   *config.Config
	quiet *config.Config
}

// NewValidator creates a validator. The games it replays never log.
func NewValidator(cfg *config.Config) *Validator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	quiet := *cfg
	quiet.Verbosity = 0
	return &Validator{cfg: cfg, quiet: &quiet}
}

// Check replays one puzzle: replies are played as the opponent and solver
// moves are submitted, and the script must end solved.
func (v *Validator) Check(item WorkItem) Result {
	r := Result{Puzzle: item.Puzzle, Index: item.Index}
	if item.LoadErr != nil {
		r.Err = item.LoadErr
		return r
	}

	start, err := engine.NewBoardFromFEN(item.Puzzle.FEN)
	if err != nil {
		r.Err = err
		return r
	}
	r.Start = start

	solution, err := item.Puzzle.Solution()
	if err != nil {
		r.Err = err
		return r
	}
	p, err := game.NewPuzzle(v.quiet, item.Puzzle.FEN, solution)
	if err != nil {
		r.Err = err
		return r
	}

	for !p.Solved() {
		move, _ := p.Expected()
		if p.SolverToMove() {
			if !p.Submit(move.From, move.To) {
				err = &errors.MoveError{Err: errors.ErrIllegalMove, Ply: p.Index() + 1, Move: move.String()}
				break
			}
			continue
		}
		if _, err = p.PlayReply(); err != nil {
			break
		}
	}

	r.Final = p.FEN()
	r.Outcome = p.Outcome()
	r.Err = err
	return r
}

// Run checks every puzzle in src on the configured number of workers.
// Duplicate start positions are reported in source order. When ctx is
// cancelled the puzzles not yet started are skipped and ctx.Err() is
// returned with the partial report.
func (v *Validator) Run(ctx context.Context, src puzzle.Source) (*Report, error) {
	count, err := src.Count(ctx)
	if err != nil {
		return nil, err
	}

	pool := NewPool(v.Check, WithWorkers(v.cfg.Workers), WithBufferSize(2*v.cfg.Workers))
	pool.Start()

	go func() {
		defer pool.Close()
		for i := 0; i < count; i++ {
			if ctx.Err() != nil {
				pool.Stop()
				return
			}
			p, err := src.Puzzle(ctx, i)
			pool.Submit(WorkItem{Puzzle: p, Index: i, LoadErr: err})
		}
	}()

	byIndex := make([]*Result, count)
	for r := range pool.Results() {
		r := r
		byIndex[r.Index] = &r
	}

	report := &Report{}
	detector := hashing.NewDuplicateDetector()
	var errs *multierror.Error
	for _, r := range byIndex {
		if r == nil {
			continue
		}
		report.Checked++
		report.Results = append(report.Results, *r)
		if r.Err != nil {
			report.Failed++
			errs = multierror.Append(errs, errors.Wrapf(r.Err, "puzzle %d (%s)", r.Index, r.Puzzle.ID))
			v.cfg.Logf(2, "puzzle %d (%s): %v\n", r.Index, r.Puzzle.ID, r.Err)
		}
		if first, dup := detector.CheckAndAdd(r.Puzzle.ID, r.Start); dup {
			report.Duplicates = append(report.Duplicates, Duplicate{ID: r.Puzzle.ID, First: first})
		}
	}
	report.Err = errs.ErrorOrNil()

	v.cfg.Logf(1, "%d puzzles checked, %d failed, %d duplicate positions\n",
		report.Checked, report.Failed, len(report.Duplicates))
	return report, ctx.Err()
}
