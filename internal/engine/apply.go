package engine

import (
	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/hashing"
)

// ApplyMove moves the piece on from to to after checking the move against
// the legal move set. It fails with a MoveError wrapping ErrIllegalMove and
// leaves the board unchanged when the move is not legal.
func ApplyMove(board *chess.Board, from, to chess.Square) error {
	if !IsLegal(board, from, to) {
		return &errors.MoveError{
			Err:  errors.ErrIllegalMove,
			Ply:  board.Plies + 1,
			Move: chess.Move{From: from, To: to}.String(),
		}
	}
	MovePiece(board, board.Get(from), to)
	return nil
}

// ApplyMoveText parses coordinate text ("e2e4") and applies it.
func ApplyMoveText(board *chess.Board, text string) error {
	m, err := chess.ParseMove(text)
	if err != nil {
		return &errors.MoveError{Err: errors.Wrap(errors.ErrIllegalMove, err.Error()), Ply: board.Plies + 1, Move: text}
	}
	return ApplyMove(board, m.From, m.To)
}

// MovePiece is the sole board mutator. It does not check legality. The
// effects happen in this order: halfmove clock, en passant capture, castling
// rook, promotion, HasMoved, fullmove number, history, position count and
// finally the en passant target.
func MovePiece(board *chess.Board, piece chess.Piece, to chess.Square) {
	from := piece.Square
	mover := piece.Colour
	isCapture := !board.IsBlank(to) || isEnPassantMove(&board.Grid, piece, to)

	if piece.Kind == chess.Pawn || isCapture {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}

	applyToGrid(&board.Grid, piece, to)

	if mover == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = mover.Opposite()
	board.Plies++
	hashing.RecordPosition(board)

	board.Last = chess.LastMove{Kind: piece.Kind, Colour: mover, Move: chess.Move{From: from, To: to}}
	if board.Last.IsDoublePush() {
		board.SetEnPassant(from.Offset(mover.Forward(), 0))
	} else {
		board.ClearEnPassant()
	}
}

// applyToGrid performs the placement part of a move: en passant removal,
// the castling rook, promotion to a Queen and the HasMoved flag. It is
// shared by MovePiece and the legality simulation so both agree exactly.
func applyToGrid(grid *chess.Grid, piece chess.Piece, to chess.Square) {
	from := piece.Square

	if isEnPassantMove(grid, piece, to) {
		grid.Clear(to.Offset(-piece.Colour.Forward(), 0))
	}

	if isCastlingMove(piece, to) {
		rookFrom, rookTo := castlingRookSquares(from, to)
		rook := grid.Get(rookFrom)
		if rook.Kind == chess.Rook {
			rook.HasMoved = true
			grid.Clear(rookFrom)
			grid.Set(rookTo, rook)
		}
	}

	if piece.Kind == chess.Pawn && to.Rank == piece.Colour.PromotionRank() {
		piece = chess.Piece{Kind: chess.Queen, Colour: piece.Colour}
	}

	switch piece.Kind {
	case chess.Pawn, chess.King, chess.Rook:
		piece.HasMoved = true
	}

	grid.Clear(from)
	grid.Set(to, piece)
}
