package game

import (
	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Puzzle is a Game driven by a scripted solution. Moves at even indices
// are the opponent's replies, played by PlayReply; moves at odd indices are
// the solver's and must be submitted exactly.
type Puzzle struct {
	game     *Game
	solution []chess.Move
	index    int
	points   int
}

// NewPuzzle sets up fen and loads the solution. The side to move comes
// from the FEN.
func NewPuzzle(cfg *config.Config, fen string, solution []chess.Move) (*Puzzle, error) {
	g := New(cfg)
	if err := g.Setup(fen); err != nil {
		return nil, err
	}
	p := &Puzzle{game: g, solution: solution}
	if len(solution) == 0 {
		p.game.terminate(Outcome{Reason: Solved})
	}
	return p, nil
}

// Index returns the position in the solution.
func (p *Puzzle) Index() int {
	return p.index
}

// SolverToMove reports whether the next scripted move is the solver's.
func (p *Puzzle) SolverToMove() bool {
	return p.index%2 == 1 && p.index < len(p.solution)
}

// Expected returns the next scripted move.
func (p *Puzzle) Expected() (chess.Move, bool) {
	if p.index >= len(p.solution) {
		return chess.NullMove, false
	}
	return p.solution[p.index], true
}

// PlayReply plays the scripted opponent reply.
func (p *Puzzle) PlayReply() (chess.Move, error) {
	move, ok := p.Expected()
	if !ok || p.SolverToMove() {
		return chess.NullMove, errors.Wrap(errors.ErrIllegalMove, "no reply due")
	}
	if err := p.game.ApplyMove(move.From, move.To); err != nil {
		return chess.NullMove, err
	}
	p.advance()
	return move, nil
}

// Submit plays the solver's move if it is exactly the expected move.
// Anything else is rejected silently and changes nothing.
func (p *Puzzle) Submit(from, to chess.Square) bool {
	move, ok := p.Expected()
	if !ok || !p.SolverToMove() || move.From != from || move.To != to {
		return false
	}
	if err := p.game.ApplyMove(from, to); err != nil {
		return false
	}
	p.points++
	p.advance()
	return true
}

// SubmitText parses coordinate move text and submits it. Unparseable
// text is rejected like any wrong move.
func (p *Puzzle) SubmitText(text string) bool {
	m, err := chess.ParseMove(text)
	if err != nil {
		return false
	}
	return p.Submit(m.From, m.To)
}

// State returns the controller state.
func (p *Puzzle) State() State { return p.game.State() }

// Outcome returns why the puzzle terminated.
func (p *Puzzle) Outcome() Outcome { return p.game.Outcome() }

// ToMove returns the side to move.
func (p *Puzzle) ToMove() chess.Colour { return p.game.ToMove() }

// LegalMoves returns the destinations for the piece on sq, for highlighting.
func (p *Puzzle) LegalMoves(sq chess.Square) chess.SquareSet {
	if !p.SolverToMove() {
		return 0
	}
	return p.game.LegalMoves(sq)
}

// FEN returns the current position.
func (p *Puzzle) FEN() string { return p.game.FEN() }

// Render draws the board.
func (p *Puzzle) Render(flipped bool, highlight chess.SquareSet) string {
	return p.game.Render(flipped, highlight)
}

// Abort gives the puzzle up.
func (p *Puzzle) Abort(cause error) { p.game.Abort(cause) }

// Solved reports whether every scripted move has been played.
func (p *Puzzle) Solved() bool {
	return p.index >= len(p.solution)
}

// Points returns the number of correct solver moves.
func (p *Puzzle) Points() int {
	return p.points
}

func (p *Puzzle) advance() {
	p.index++
	if p.Solved() {
		p.game.terminate(Outcome{Reason: Solved})
	}
}
