package chess

// Piece is the content of a grid cell. The zero value (Kind Empty) is an
// empty square. HasMoved only matters for Pawn, Rook and King.
type Piece struct {
	Kind     PieceKind
	Colour   Colour
	Square   Square
	HasMoved bool
}

// NoPiece is returned for empty and off-board squares.
var NoPiece = Piece{Kind: Empty, Square: NoSquare}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Letter returns the FEN letter of the piece: uppercase for White,
// lowercase for Black, space for an empty cell.
func (p Piece) Letter() byte {
	letter := p.Kind.Letter()
	if p.Kind != Empty && p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// Grid is the 8x8 board, indexed [rank][file]. It is a value type: copying
// a Grid copies every cell, which the legality filter relies on.
type Grid [BoardSize][BoardSize]Piece

// Get returns the piece at sq, or NoPiece for empty and off-board squares.
func (g *Grid) Get(sq Square) Piece {
	if !sq.OnBoard() {
		return NoPiece
	}
	p := g[sq.Rank][sq.File]
	if p.Kind == Empty {
		return NoPiece
	}
	return p
}

// Set places p on sq, keeping the piece's stored square in step with its
// cell. Setting a piece of kind Empty clears the cell.
func (g *Grid) Set(sq Square, p Piece) {
	if !sq.OnBoard() {
		return
	}
	if p.Kind == Empty {
		g[sq.Rank][sq.File] = Piece{}
		return
	}
	p.Square = sq
	g[sq.Rank][sq.File] = p
}

// Clear empties sq.
func (g *Grid) Clear(sq Square) {
	g.Set(sq, Piece{})
}

// IsBlank reports whether sq is on the board and empty.
func (g *Grid) IsBlank(sq Square) bool {
	return sq.OnBoard() && g[sq.Rank][sq.File].Kind == Empty
}

// IsEnemy reports whether sq holds a piece of the colour opposing c.
func (g *Grid) IsEnemy(sq Square, c Colour) bool {
	p := g.Get(sq)
	return p.Kind != Empty && p.Colour != c
}

// IsFriend reports whether sq holds a piece of colour c.
func (g *Grid) IsFriend(sq Square, c Colour) bool {
	p := g.Get(sq)
	return p.Kind != Empty && p.Colour == c
}

// Pieces returns every piece of colour c in index order.
func (g *Grid) Pieces(c Colour) []Piece {
	var out []Piece
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := g[rank][file]; p.Kind != Empty && p.Colour == c {
				out = append(out, p)
			}
		}
	}
	return out
}

// FindKing returns the square of the colour's king.
func (g *Grid) FindKing(c Colour) (Square, bool) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := g[rank][file]; p.Kind == King && p.Colour == c {
				return p.Square, true
			}
		}
	}
	return NoSquare, false
}

// Board represents a chess board with all state needed for the game.
type Board struct {
	Grid

	// Who has the next move.
	ToMove Colour

	// The full move number, incremented after Black's move.
	MoveNumber uint

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// Is an en passant capture possible? If so EPSquare is the square
	// the capturing pawn lands on. Valid for one reply ply only.
	EnPassant bool
	EPSquare  Square

	// The previous ply, for the en passant fallback.
	Last LastMove

	// Occurrence count per position key (placement + side to move).
	Repetitions map[uint64]int

	// Number of plies applied since setup. The setup position is the
	// first history entry, so the history length is Plies+1.
	Plies int
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{
		ToMove:      White,
		MoveNumber:  1,
		EPSquare:    NoSquare,
		Last:        LastMove{Move: NullMove},
		Repetitions: make(map[uint64]int),
	}
}

// EnPassantTarget returns the en passant square when one is set.
func (b *Board) EnPassantTarget() (Square, bool) {
	if !b.EnPassant {
		return NoSquare, false
	}
	return b.EPSquare, true
}

// SetEnPassant sets the en passant target square.
func (b *Board) SetEnPassant(sq Square) {
	b.EnPassant = true
	b.EPSquare = sq
}

// ClearEnPassant removes any en passant target.
func (b *Board) ClearEnPassant() {
	b.EnPassant = false
	b.EPSquare = NoSquare
}

// HistoryLen returns the number of recorded positions: the setup position
// plus one per applied ply.
func (b *Board) HistoryLen() int {
	return b.Plies + 1
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	newBoard.Repetitions = make(map[uint64]int, len(b.Repetitions))
	for k, v := range b.Repetitions {
		newBoard.Repetitions[k] = v
	}
	return newBoard
}
