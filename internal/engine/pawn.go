package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// pawnMoves generates pawn pushes, captures and en passant captures.
func pawnMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	var set chess.SquareSet
	fwd := piece.Colour.Forward()

	one := piece.Square.Offset(fwd, 0)
	if board.IsBlank(one) {
		set = set.Add(one)
		two := one.Offset(fwd, 0)
		if !piece.HasMoved && board.IsBlank(two) {
			set = set.Add(two)
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := piece.Square.Offset(fwd, df)
		if board.IsEnemy(to, piece.Colour) {
			set = set.Add(to)
		}
	}

	if to, ok := enPassantCapture(board, piece); ok {
		set = set.Add(to)
	}
	return set
}

// enPassantCapture returns the en passant destination available to pawn, if
// any. The canonical target is checked first; the previous ply is consulted
// as a fallback when no target is recorded.
func enPassantCapture(board *chess.Board, pawn chess.Piece) (chess.Square, bool) {
	fwd := pawn.Colour.Forward()

	if target, ok := board.EnPassantTarget(); ok {
		victim := target.Offset(-fwd, 0)
		if target.Rank == pawn.Square.Rank+fwd && abs(target.File-pawn.Square.File) == 1 &&
			board.IsBlank(target) && isEnemyPawn(board, victim, pawn.Colour) {
			return target, true
		}
		return chess.NoSquare, false
	}

	last := board.Last
	if !last.IsDoublePush() || last.Colour == pawn.Colour {
		return chess.NoSquare, false
	}
	if last.To.Rank != pawn.Square.Rank || abs(last.To.File-pawn.Square.File) != 1 {
		return chess.NoSquare, false
	}
	if !isEnemyPawn(board, last.To, pawn.Colour) {
		return chess.NoSquare, false
	}
	to := last.To.Offset(fwd, 0)
	if !board.IsBlank(to) {
		return chess.NoSquare, false
	}
	return to, true
}

func isEnemyPawn(board *chess.Board, sq chess.Square, colour chess.Colour) bool {
	p := board.Get(sq)
	return p.Kind == chess.Pawn && p.Colour != colour
}

// isEnPassantMove reports whether a pawn moving from one square to another
// is an en passant capture: a diagonal step into an empty square.
func isEnPassantMove(grid *chess.Grid, piece chess.Piece, to chess.Square) bool {
	return piece.Kind == chess.Pawn && to.File != piece.Square.File && grid.IsBlank(to)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
