// play.go - Terminal game loops, perft and puzzle validation
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/oracle"
	"github.com/lgbarn/chessgame-go/internal/puzzle"
	"github.com/lgbarn/chessgame-go/internal/worker"
)

const quitCommand = "quit"

// board is the part of a game the terminal loop draws and selects on.
type board interface {
	Render(flipped bool, highlight chess.SquareSet) string
	LegalMoves(sq chess.Square) chess.SquareSet
	ToMove() chess.Colour
}

// terminal reads user input a line at a time and draws the board.
type terminal struct {
	out     io.Writer
	lines   *bufio.Scanner
	flipped bool
}

func newTerminal(out io.Writer, in io.Reader, flipped bool) *terminal {
	return &terminal{out: out, lines: bufio.NewScanner(in), flipped: flipped}
}

// read draws b and prompts until the user enters something other than a
// square. A square redraws the board with its piece's destinations. It
// returns false at the end of input.
func (t *terminal) read(b board) (string, bool) {
	highlight := chess.SquareSet(0)
	for {
		fmt.Fprint(t.out, b.Render(t.flipped, highlight))
		fmt.Fprintf(t.out, "%s to move: ", b.ToMove())
		if !t.lines.Scan() {
			fmt.Fprintln(t.out)
			return "", false
		}
		line := strings.ToLower(strings.TrimSpace(t.lines.Text()))
		if sq, ok := chess.ParseSquare(line); ok {
			highlight = b.LegalMoves(sq)
			continue
		}
		return line, true
	}
}

// playNormal runs a game between the user and a second player at the same
// terminal or the computer.
func playNormal(ctx context.Context, cfg *config.Config, o oracle.MoveOracle, fen string, in io.Reader) error {
	g := game.New(cfg)
	if err := g.Setup(fen); err != nil {
		return err
	}

	white, black := game.Human, game.Human
	if cfg.Play.Opponent == config.Computer {
		if cfg.Play.PlayerColour == chess.White {
			black = game.Computer
		} else {
			white = game.Computer
		}
	}
	g.SetPlayers(white, black)

	// The user playing Black against the computer sees the board from Black's side.
	flipped := cfg.Play.Opponent == config.Computer && cfg.Play.PlayerColour == chess.Black
	term := newTerminal(cfg.OutputFile, in, flipped)

	for g.State() == game.InProgress {
		if g.PlayerToMove() == game.Computer {
			if err := pause(ctx, cfg.Play.ThinkTime); err != nil {
				return err
			}
			move, err := g.PlayOracle(ctx, o)
			if err != nil {
				return err
			}
			fmt.Fprintf(cfg.OutputFile, "computer plays %s\n", move)
			continue
		}

		line, ok := term.read(g)
		if !ok || line == quitCommand {
			g.Abort(nil)
			break
		}
		if err := g.ApplyMoveText(line); err != nil {
			cfg.Logf(2, "rejected %q: %v\n", line, err)
		}
	}

	fmt.Fprint(cfg.OutputFile, g.Render(flipped, 0))
	fmt.Fprintf(cfg.OutputFile, "game over: %v\n", g.Outcome())
	return nil
}

// playPuzzle loads the configured puzzle and runs it: scripted replies are
// played after a short delay and only the exact solution move is accepted.
func playPuzzle(ctx context.Context, cfg *config.Config, src puzzle.Source, in io.Reader) error {
	pz, err := src.Puzzle(ctx, cfg.Puzzle.Index)
	if err != nil {
		return err
	}
	solution, err := pz.Solution()
	if err != nil {
		return err
	}
	p, err := game.NewPuzzle(cfg, pz.FEN, solution)
	if err != nil {
		return err
	}
	cfg.Logf(1, "puzzle %d: %s (rating %d)\n", cfg.Puzzle.Index, pz.ID, pz.Rating)

	// The side to move plays the first reply; the solver has the other side.
	flipped := p.ToMove() == chess.White
	term := newTerminal(cfg.OutputFile, in, flipped)

	for p.State() == game.InProgress {
		if !p.SolverToMove() {
			if err := pause(ctx, cfg.Play.ReplyDelay); err != nil {
				return err
			}
			move, err := p.PlayReply()
			if err != nil {
				return err
			}
			fmt.Fprintf(cfg.OutputFile, "reply %s\n", move)
			continue
		}

		line, ok := term.read(p)
		if !ok || line == quitCommand {
			p.Abort(nil)
			break
		}
		if !p.SubmitText(line) {
			cfg.Logf(2, "rejected %q\n", line)
		}
	}

	fmt.Fprint(cfg.OutputFile, p.Render(flipped, 0))
	if p.Solved() {
		fmt.Fprintf(cfg.OutputFile, "solved, %d points\n", p.Points())
	} else {
		fmt.Fprintf(cfg.OutputFile, "not solved: %v\n", p.Outcome())
	}
	return nil
}

// runPerft prints the leaf count below each root move and the total.
func runPerft(out io.Writer, fen string, depth int) error {
	b, err := engine.Setup(fen)
	if err != nil {
		return err
	}

	start := time.Now()
	divide := engine.Divide(b, depth)
	moves := maps.Keys(divide)
	slices.Sort(moves)

	var total uint64
	for _, m := range moves {
		fmt.Fprintf(out, "%s: %d\n", m, divide[m])
		total += divide[m]
	}
	fmt.Fprintf(out, "\nperft(%d) = %d (%v)\n", depth, total, time.Since(start).Round(time.Millisecond))
	return nil
}

// runValidate replays every puzzle in src and reports the failures.
func runValidate(ctx context.Context, cfg *config.Config, src puzzle.Source) error {
	report, err := worker.NewValidator(cfg).Run(ctx, src)
	if err != nil {
		return err
	}
	for _, d := range report.Duplicates {
		fmt.Fprintf(cfg.OutputFile, "duplicate: %s has the start position of %s\n", d.ID, d.First)
	}
	fmt.Fprintf(cfg.OutputFile, "%d puzzles checked, %d failed\n", report.Checked, report.Failed)
	return report.Err
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
