package chess

import "fmt"

// Move is a coordinate move from one square to another. Promotion is never
// encoded: a pawn reaching the farthest rank always becomes a Queen.
type Move struct {
	From Square
	To   Square
}

// NullMove is the zero-information move used where no move exists.
var NullMove = Move{From: NoSquare, To: NoSquare}

// ParseMove parses coordinate text such as "e2e4". A trailing promotion
// letter ("e7e8q") is accepted and ignored.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("move %q: want 4 or 5 characters", s)
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return NullMove, fmt.Errorf("move %q: bad origin square", s)
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return NullMove, fmt.Errorf("move %q: bad destination square", s)
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
		default:
			return NullMove, fmt.Errorf("move %q: bad promotion letter", s)
		}
	}
	return Move{From: from, To: to}, nil
}

// String returns the coordinate text of the move ("e2e4").
func (m Move) String() string {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// LastMove records the previous ply. It replaces a full board history for
// the en passant fallback, which only ever looks one ply back.
type LastMove struct {
	Kind   PieceKind
	Colour Colour
	Move
}

// IsDoublePush reports whether the recorded ply was a two-square pawn advance.
func (l LastMove) IsDoublePush() bool {
	if l.Kind != Pawn {
		return false
	}
	d := l.To.Rank - l.From.Rank
	return (d == 2 || d == -2) && l.To.File == l.From.File
}
