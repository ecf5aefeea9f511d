package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth from
// the side to move. Promotions count once since only Queens are produced.
func Perft(board *chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := AllLegalMoves(board, board.ToMove)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		child := board.Copy()
		MovePiece(child, child.Get(m.From), m.To)
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by move text.
func Divide(board *chess.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range AllLegalMoves(board, board.ToMove) {
		child := board.Copy()
		MovePiece(child, child.Get(m.From), m.To)
		out[m.String()] = Perft(child, depth-1)
	}
	return out
}
