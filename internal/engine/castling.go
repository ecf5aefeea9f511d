package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// castlingCandidates returns the king destinations two files towards each
// unmoved rook of the same colour on the home rank, provided every square
// strictly between king and rook is empty.
func castlingCandidates(board *chess.Board, king chess.Piece) chess.SquareSet {
	var set chess.SquareSet
	if king.Kind != chess.King || king.HasMoved {
		return set
	}
	home := king.Colour.HomeRank()
	if king.Square.Rank != home {
		return set
	}

	for _, rookFile := range [2]int{0, chess.BoardSize - 1} {
		rook := board.Get(chess.Sq(home, rookFile))
		if rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.HasMoved {
			continue
		}
		step := sign(rookFile - king.Square.File)
		if !isPathClear(&board.Grid, king.Square, rook.Square, step) {
			continue
		}
		to := king.Square.Offset(0, 2*step)
		if to.OnBoard() {
			set = set.Add(to)
		}
	}
	return set
}

// isPathClear checks that every square strictly between from and to along
// the rank is empty.
func isPathClear(grid *chess.Grid, from, to chess.Square, step int) bool {
	if step == 0 {
		return false
	}
	for sq := from.Offset(0, step); sq != to; sq = sq.Offset(0, step) {
		if !grid.IsBlank(sq) {
			return false
		}
	}
	return true
}

// isCastlingMove reports whether a king move spans two files.
func isCastlingMove(piece chess.Piece, to chess.Square) bool {
	return piece.Kind == chess.King && abs(to.File-piece.Square.File) == 2
}

// castlingRookSquares returns where the castling rook starts and lands for a
// king moving to kingTo.
func castlingRookSquares(kingFrom, kingTo chess.Square) (from, to chess.Square) {
	step := sign(kingTo.File - kingFrom.File)
	rookFile := 0
	if step > 0 {
		rookFile = chess.BoardSize - 1
	}
	return chess.Sq(kingFrom.Rank, rookFile), kingFrom.Offset(0, step)
}

// isCastlingPathSafe checks that the king is not attacked on its start
// square or on the square it passes over. The destination is checked by the
// ordinary simulation.
func isCastlingPathSafe(board *chess.Board, king chess.Piece, to chess.Square) bool {
	if IsInCheck(board, king.Colour) {
		return false
	}
	step := sign(to.File - king.Square.File)
	for sq := king.Square.Offset(0, step); sq != to; sq = sq.Offset(0, step) {
		trial := *board
		trial.Clear(king.Square)
		trial.Set(sq, king)
		if IsInCheck(&trial, king.Colour) {
			return false
		}
	}
	return true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
