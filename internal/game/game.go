// Package game implements the controller boundary around the rules engine:
// a turn-enforcing state machine, the computer turn through a move oracle
// and the scripted puzzle variant.
package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/oracle"
)

// State is the controller state.
type State int

const (
	AwaitingSetup State = iota
	InProgress
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingSetup:
		return "AwaitingSetup"
	case InProgress:
		return "InProgress"
	case Terminated:
		return "Terminated"
	}
	return "Unknown"
}

// Reason says why a game terminated.
type Reason int

const (
	NotTerminated Reason = iota
	ByRule               // Checkmate, stalemate or a draw rule; see Outcome.Status
	Aborted              // The oracle failed or the controller gave up
	Solved               // The last puzzle move was played
)

func (r Reason) String() string {
	switch r {
	case ByRule:
		return "rule"
	case Aborted:
		return "aborted"
	case Solved:
		return "solved"
	}
	return "none"
}

// Outcome describes a terminated game.
type Outcome struct {
	Reason Reason
	Status engine.Status // Terminal status when Reason is ByRule
	Err    error         // Cause when Reason is Aborted
}

func (o Outcome) String() string {
	switch o.Reason {
	case ByRule:
		return o.Status.String()
	case Aborted:
		if o.Err != nil {
			return fmt.Sprintf("aborted: %v", o.Err)
		}
	}
	return o.Reason.String()
}

// Player says who moves for one side.
type Player int

const (
	Human Player = iota
	Computer
)

// Game owns one board and enforces turns on top of the turn-agnostic
// engine. It is not safe for concurrent use; see package session.
type Game struct {
	cfg     *config.Config
	board   *chess.Board
	state   State
	outcome Outcome
	players [2]Player
}

// New creates a game awaiting setup. A nil cfg selects the defaults.
func New(cfg *config.Config) *Game {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Game{cfg: cfg}
}

// SetPlayers assigns who moves for each side.
func (g *Game) SetPlayers(white, black Player) {
	g.players[chess.White] = white
	g.players[chess.Black] = black
}

// PlayerToMove returns who moves next.
func (g *Game) PlayerToMove() Player {
	if g.board == nil {
		return Human
	}
	return g.players[g.board.ToMove]
}

// Setup loads a FEN position, or the initial position for "". On error the
// game keeps its previous state. A position that is already decided
// terminates the game immediately.
func (g *Game) Setup(fen string) error {
	board, err := engine.Setup(fen)
	if err != nil {
		return err
	}
	g.board = board
	g.state = InProgress
	g.outcome = Outcome{}
	g.cfg.Logf(2, "setup %s\n", engine.BoardToFEN(board))
	g.evaluate()
	return nil
}

// State returns the controller state.
func (g *Game) State() State {
	return g.state
}

// Outcome returns why the game terminated.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	if g.board == nil {
		return chess.White
	}
	return g.board.ToMove
}

// Board returns a copy of the current board, or nil before setup.
func (g *Game) Board() *chess.Board {
	if g.board == nil {
		return nil
	}
	return g.board.Copy()
}

// LegalMoves returns the destinations for the piece on sq. It is empty
// unless the game is in progress and sq holds a piece of the side to move.
func (g *Game) LegalMoves(sq chess.Square) chess.SquareSet {
	if g.state != InProgress || !g.board.IsFriend(sq, g.board.ToMove) {
		return 0
	}
	return engine.LegalMoves(g.board, sq)
}

// ApplyMove plays a move for the side to move and re-evaluates the status.
func (g *Game) ApplyMove(from, to chess.Square) error {
	if err := g.checkPlayable(); err != nil {
		return err
	}
	if !g.board.IsFriend(from, g.board.ToMove) {
		return &errors.MoveError{
			Err:  errors.Wrapf(errors.ErrIllegalMove, "%v to move", g.board.ToMove),
			Ply:  g.board.Plies + 1,
			Move: chess.Move{From: from, To: to}.String(),
		}
	}
	if err := engine.ApplyMove(g.board, from, to); err != nil {
		return err
	}
	g.cfg.Logf(2, "%d. %v %s\n", g.board.Plies, g.board.ToMove.Opposite(), chess.Move{From: from, To: to})
	g.evaluate()
	return nil
}

// ApplyMoveText plays coordinate move text such as "e2e4".
func (g *Game) ApplyMoveText(text string) error {
	m, err := chess.ParseMove(text)
	if err != nil {
		return &errors.MoveError{Err: errors.Wrap(errors.ErrIllegalMove, err.Error()), Move: text}
	}
	return g.ApplyMove(m.From, m.To)
}

// PlayOracle asks the oracle for a move in the current position and plays
// it. An oracle failure, or an answer that is not legal, aborts the game.
func (g *Game) PlayOracle(ctx context.Context, o oracle.MoveOracle) (chess.Move, error) {
	if err := g.checkPlayable(); err != nil {
		return chess.NullMove, err
	}
	move, err := o.BestMove(ctx, engine.BoardToFEN(g.board))
	if err != nil {
		g.Abort(err)
		return chess.NullMove, err
	}
	if err := g.ApplyMove(move.From, move.To); err != nil {
		err = errors.Wrapf(errors.ErrOracleUnavailable, "oracle answered %s: %v", move, err)
		g.Abort(err)
		return chess.NullMove, err
	}
	return move, nil
}

// Abort terminates the game with the given cause.
func (g *Game) Abort(cause error) {
	g.terminate(Outcome{Reason: Aborted, Err: cause})
}

// Status returns the rules status of the current position.
func (g *Game) Status() engine.Status {
	if g.board == nil {
		return engine.Status{Kind: engine.InProgress}
	}
	return engine.Evaluate(g.board, g.cfg.Play.FiftyMoveThreshold)
}

// FEN returns the current position, or "" before setup.
func (g *Game) FEN() string {
	if g.board == nil {
		return ""
	}
	return engine.BoardToFEN(g.board)
}

// Render draws the board, marking highlight squares.
func (g *Game) Render(flipped bool, highlight chess.SquareSet) string {
	if g.board == nil {
		return ""
	}
	return engine.Render(&g.board.Grid, flipped, highlight)
}

func (g *Game) checkPlayable() error {
	switch g.state {
	case AwaitingSetup:
		return errors.ErrNoSetup
	case Terminated:
		return errors.Wrap(errors.ErrGameOver, g.outcome.String())
	}
	return nil
}

func (g *Game) evaluate() {
	if status := g.Status(); status.IsOver() {
		g.terminate(Outcome{Reason: ByRule, Status: status})
	}
}

func (g *Game) terminate(o Outcome) {
	if g.state == Terminated {
		return
	}
	g.state = Terminated
	g.outcome = o
	g.cfg.Logf(1, "game over: %v\n", o)
}
