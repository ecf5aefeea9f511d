package chess

import (
	"math/bits"
	"strings"
)

// Square is a (rank, file) pair. Rank 0 is White's back rank and file 0 is
// the a-file. Coordinates outside [0,7] are representable so that move
// generation can step off the board and ask OnBoard.
type Square struct {
	Rank int
	File int
}

// NoSquare is the sentinel used where an optional square is absent.
var NoSquare = Square{Rank: -1, File: -1}

// Sq builds a square from rank and file indices.
func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// ParseSquare parses algebraic text such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	file := int(s[0]) - FirstFile
	rank := int(s[1]) - FirstRank
	sq := Square{Rank: rank, File: file}
	if !sq.OnBoard() {
		return NoSquare, false
	}
	return sq, true
}

// OnBoard reports whether both coordinates are in range.
func (s Square) OnBoard() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

// Offset returns the square shifted by the given rank and file deltas.
func (s Square) Offset(dRank, dFile int) Square {
	return Square{Rank: s.Rank + dRank, File: s.File + dFile}
}

// Index returns the 0-63 index of an on-board square (a1 = 0, h8 = 63).
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// SquareAt is the inverse of Index.
func SquareAt(index int) Square {
	return Square{Rank: index / BoardSize, File: index % BoardSize}
}

// String returns algebraic text for the square, or "-" when off the board.
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string([]byte{byte(FirstFile + s.File), byte(FirstRank + s.Rank)})
}

// SquareSet is a set of on-board squares, one bit per square.
type SquareSet uint64

// NewSquareSet builds a set from the given squares; off-board squares are dropped.
func NewSquareSet(squares ...Square) SquareSet {
	var set SquareSet
	for _, sq := range squares {
		set = set.Add(sq)
	}
	return set
}

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.OnBoard() {
		return s
	}
	return s | 1<<uint(sq.Index())
}

// Remove returns the set without sq.
func (s SquareSet) Remove(sq Square) SquareSet {
	if !sq.OnBoard() {
		return s
	}
	return s &^ (1 << uint(sq.Index()))
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.OnBoard() && s&(1<<uint(sq.Index())) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty reports whether the set holds no squares.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// Squares lists the members in index order (a1, b1, ..., h8).
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		out = append(out, SquareAt(bits.TrailingZeros64(rest)))
	}
	return out
}

// String lists the squares separated by spaces.
func (s SquareSet) String() string {
	squares := s.Squares()
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
