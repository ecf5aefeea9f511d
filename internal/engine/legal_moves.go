package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// LegalMoves returns the legal destinations of the piece on from. An empty
// square yields the empty set. The filter is turn-agnostic: it answers for
// whichever colour stands on from.
func LegalMoves(board *chess.Board, from chess.Square) chess.SquareSet {
	piece := board.Get(from)
	if piece.IsEmpty() {
		return 0
	}
	return legalMovesForPiece(board, piece)
}

// legalMovesForPiece filters the pseudo-legal destinations of piece down to
// those that do not leave its own king attacked.
func legalMovesForPiece(board *chess.Board, piece chess.Piece) chess.SquareSet {
	var legal chess.SquareSet
	for _, to := range PseudoLegalMoves(board, piece).Squares() {
		if isCastlingMove(piece, to) && !isCastlingPathSafe(board, piece, to) {
			continue
		}
		if tryMove(board, piece, to) {
			legal = legal.Add(to)
		}
	}
	return legal
}

// tryMove simulates the move on a copy of the grid and reports whether the
// mover's king is safe afterwards. The live board is never touched.
func tryMove(board *chess.Board, piece chess.Piece, to chess.Square) bool {
	trial := *board
	applyToGrid(&trial.Grid, piece, to)
	trial.ClearEnPassant()
	return !IsInCheck(&trial, piece.Colour)
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, p := range board.Pieces(colour) {
		if !legalMovesForPiece(board, p).IsEmpty() {
			return true
		}
	}
	return false
}

// AllLegalMoves returns every legal move of the colour, ordered by origin
// square then destination square.
func AllLegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	for _, p := range board.Pieces(colour) {
		for _, to := range legalMovesForPiece(board, p).Squares() {
			moves = append(moves, chess.Move{From: p.Square, To: to})
		}
	}
	return moves
}

// IsLegal reports whether moving the piece on from to to is legal.
func IsLegal(board *chess.Board, from, to chess.Square) bool {
	return LegalMoves(board, from).Has(to)
}
