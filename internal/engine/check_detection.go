package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked. A colour
// without a king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingSq, ok := board.FindKing(colour)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, kingSq, colour.Opposite())
}

// IsSquareAttacked returns true if any piece of byColour has sq among its
// pseudo-legal destinations. The opponent's pseudo-legal generator is used
// rather than the legality filter, so there is no recursion.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, p := range board.Pieces(byColour) {
		if PseudoLegalMoves(board, p).Has(sq) {
			return true
		}
	}
	return false
}
