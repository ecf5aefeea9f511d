package engine

import (
	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/hashing"
)

// DefaultFiftyMoveThreshold is the halfmove clock value, in plies, at which
// the fifty-move rule draws the game.
const DefaultFiftyMoveThreshold = 100

// repetitionLimit is the occurrence count that draws by repetition.
const repetitionLimit = 3

// StatusKind classifies the state of a position.
type StatusKind int

const (
	InProgress StatusKind = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawRepetition
)

// String returns the name of the status kind.
func (k StatusKind) String() string {
	switch k {
	case InProgress:
		return "InProgress"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case DrawFiftyMove:
		return "DrawFiftyMove"
	case DrawRepetition:
		return "DrawRepetition"
	}
	return "Unknown"
}

// Status is the result of evaluating a position. Colour is the mated side
// for Checkmate and the side without moves for Stalemate.
type Status struct {
	Kind   StatusKind
	Colour chess.Colour
}

// IsOver reports whether the status ends the game.
func (s Status) IsOver() bool {
	return s.Kind != InProgress
}

// String returns a human readable status such as "Checkmate(Black)".
func (s Status) String() string {
	switch s.Kind {
	case Checkmate, Stalemate:
		return s.Kind.String() + "(" + s.Colour.String() + ")"
	}
	return s.Kind.String()
}

// IsCheckmate returns true if colour is in check with no legal move.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if colour is not in check but has no legal move.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsFiftyMoveDraw returns true once the halfmove clock reaches threshold.
// A zero threshold selects DefaultFiftyMoveThreshold.
func IsFiftyMoveDraw(board *chess.Board, threshold uint) bool {
	if threshold == 0 {
		threshold = DefaultFiftyMoveThreshold
	}
	return board.HalfmoveClock >= threshold
}

// IsThreefoldRepetition returns true if any position occurred three times.
func IsThreefoldRepetition(board *chess.Board) bool {
	return hashing.MaxRepetition(board) >= repetitionLimit
}

// Evaluate returns the status of the position for the side to move. The
// first matching rule wins, in this order: fifty-move draw, threefold
// repetition, checkmate, stalemate.
func Evaluate(board *chess.Board, fiftyMoveThreshold uint) Status {
	colour := board.ToMove
	switch {
	case IsFiftyMoveDraw(board, fiftyMoveThreshold):
		return Status{Kind: DrawFiftyMove}
	case IsThreefoldRepetition(board):
		return Status{Kind: DrawRepetition}
	}

	if HasLegalMoves(board, colour) {
		return Status{Kind: InProgress}
	}
	if IsInCheck(board, colour) {
		return Status{Kind: Checkmate, Colour: colour}
	}
	return Status{Kind: Stalemate, Colour: colour}
}

// HasInsufficientMaterial returns true if neither side can possibly mate:
// bare kings, or a single minor piece against a bare king, or bishops on
// the same square colour. Reported to callers but never ends a game.
func HasInsufficientMaterial(board *chess.Board) bool {
	var minors []chess.Piece
	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		for _, p := range board.Pieces(colour) {
			switch p.Kind {
			case chess.King:
			case chess.Knight, chess.Bishop:
				minors = append(minors, p)
			default:
				return false
			}
		}
	}

	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b := minors[0], minors[1]
		return a.Kind == chess.Bishop && b.Kind == chess.Bishop &&
			a.Colour != b.Colour && isLightSquare(a.Square) == isLightSquare(b.Square)
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (sq.File+sq.Rank)%2 == 1
}
