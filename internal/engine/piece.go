package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// MoveGenerator produces the pseudo-legal destinations of a piece: squares
// allowed by its movement pattern and board occupancy, ignoring whether the
// move leaves its own king attacked. Generators never modify the board.
type MoveGenerator func(board *chess.Board, piece chess.Piece) chess.SquareSet

// generators is the capability table mapping each piece kind to its rule.
var generators = [chess.NumPieceKinds]MoveGenerator{
	chess.Empty:  func(*chess.Board, chess.Piece) chess.SquareSet { return 0 },
	chess.Pawn:   pawnMoves,
	chess.Knight: knightMoves,
	chess.Bishop: bishopMoves,
	chess.Rook:   rookMoves,
	chess.Queen:  queenMoves,
	chess.King:   kingMoves,
}

// Direction sets as (rank, file) steps.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allDirs       = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// PseudoLegalMoves returns the pseudo-legal destinations of piece.
func PseudoLegalMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	if piece.Kind <= chess.Empty || piece.Kind >= chess.NumPieceKinds {
		return 0
	}
	return generators[piece.Kind](board, piece)
}

// stepMoves collects the squares one step away along each offset that are
// empty or hold an enemy.
func stepMoves(board *chess.Board, piece chess.Piece, offsets [][2]int) chess.SquareSet {
	var set chess.SquareSet
	for _, off := range offsets {
		to := piece.Square.Offset(off[0], off[1])
		if board.IsBlank(to) || board.IsEnemy(to, piece.Colour) {
			set = set.Add(to)
		}
	}
	return set
}

// rayMoves casts a ray along each direction. A ray stops at the first
// occupied square, which is included only when it holds an enemy.
func rayMoves(board *chess.Board, piece chess.Piece, dirs [][2]int) chess.SquareSet {
	var set chess.SquareSet
	for _, dir := range dirs {
		to := piece.Square.Offset(dir[0], dir[1])
		for to.OnBoard() {
			if !board.IsBlank(to) {
				if board.IsEnemy(to, piece.Colour) {
					set = set.Add(to)
				}
				break
			}
			set = set.Add(to)
			to = to.Offset(dir[0], dir[1])
		}
	}
	return set
}

func knightMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	return stepMoves(board, piece, knightOffsets)
}

func bishopMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	return rayMoves(board, piece, diagonalDirs)
}

func rookMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	return rayMoves(board, piece, straightDirs)
}

func queenMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	return rayMoves(board, piece, allDirs)
}

// kingMoves adds the castling candidates to the adjacent squares. Whether
// the king passes through attacked squares is left to the legality filter.
func kingMoves(board *chess.Board, piece chess.Piece) chess.SquareSet {
	return stepMoves(board, piece, kingOffsets) | castlingCandidates(board, piece)
}
