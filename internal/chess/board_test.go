package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber)
		}
		if b.EnPassant {
			t.Error("EnPassant = true; want false")
		}
		if b.HalfmoveClock != 0 {
			t.Errorf("HalfmoveClock = %d; want 0", b.HalfmoveClock)
		}
		if b.HistoryLen() != 1 {
			t.Errorf("HistoryLen() = %d; want 1", b.HistoryLen())
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for rank := 0; rank < BoardSize; rank++ {
			for file := 0; file < BoardSize; file++ {
				if !b.IsBlank(Sq(rank, file)) {
					t.Errorf("IsBlank(%v) = false; want true", Sq(rank, file))
				}
			}
		}
	})
}

func TestGridQueriesAreTotal(t *testing.T) {
	var g Grid
	g.Set(Sq(3, 3), Piece{Kind: Knight, Colour: White})

	tests := []struct {
		name      string
		sq        Square
		onBoard   bool
		blank     bool
		enemyOfB  bool
		pieceKind PieceKind
	}{
		{"occupied", Sq(3, 3), true, false, true, Knight},
		{"empty", Sq(4, 4), true, true, false, Empty},
		{"negative rank", Sq(-1, 0), false, false, false, Empty},
		{"file too large", Sq(0, 8), false, false, false, Empty},
		{"far off", Sq(100, -100), false, false, false, Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sq.OnBoard(); got != tt.onBoard {
				t.Errorf("%v.OnBoard() = %v; want %v", tt.sq, got, tt.onBoard)
			}
			if got := g.IsBlank(tt.sq); got != tt.blank {
				t.Errorf("IsBlank(%v) = %v; want %v", tt.sq, got, tt.blank)
			}
			if got := g.IsEnemy(tt.sq, Black); got != tt.enemyOfB {
				t.Errorf("IsEnemy(%v, Black) = %v; want %v", tt.sq, got, tt.enemyOfB)
			}
			if got := g.Get(tt.sq).Kind; got != tt.pieceKind {
				t.Errorf("Get(%v).Kind = %v; want %v", tt.sq, got, tt.pieceKind)
			}
		})
	}
}

func TestGridSetKeepsSquareInStep(t *testing.T) {
	var g Grid
	g.Set(Sq(0, 4), Piece{Kind: King, Colour: White, Square: Sq(7, 7)})

	p := g.Get(Sq(0, 4))
	if p.Square != Sq(0, 4) {
		t.Errorf("stored square = %v; want e1", p.Square)
	}

	sq, ok := g.FindKing(White)
	if !ok || sq != Sq(0, 4) {
		t.Errorf("FindKing(White) = %v, %v; want e1, true", sq, ok)
	}
	if _, ok := g.FindKing(Black); ok {
		t.Error("FindKing(Black) found a king on an empty board")
	}

	g.Clear(Sq(0, 4))
	if !g.IsBlank(Sq(0, 4)) {
		t.Error("Clear(e1) left the square occupied")
	}
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := NewBoard()
	b.Set(Sq(1, 4), Piece{Kind: Pawn, Colour: White})
	b.Repetitions[42] = 1

	c := b.Copy()
	c.Clear(Sq(1, 4))
	c.Repetitions[42] = 2
	c.SetEnPassant(Sq(2, 4))

	if b.IsBlank(Sq(1, 4)) {
		t.Error("clearing the copy changed the source grid")
	}
	if b.Repetitions[42] != 1 {
		t.Errorf("source repetition count = %d; want 1", b.Repetitions[42])
	}
	if b.EnPassant {
		t.Error("setting en passant on the copy changed the source")
	}
}

func TestPieceLetter(t *testing.T) {
	tests := []struct {
		piece Piece
		want  byte
	}{
		{Piece{Kind: King, Colour: White}, 'K'},
		{Piece{Kind: King, Colour: Black}, 'k'},
		{Piece{Kind: Knight, Colour: Black}, 'n'},
		{Piece{Kind: Pawn, Colour: White}, 'P'},
		{Piece{}, ' '},
	}
	for _, tt := range tests {
		if got := tt.piece.Letter(); got != tt.want {
			t.Errorf("%v %v Letter() = %q; want %q", tt.piece.Colour, tt.piece.Kind, got, tt.want)
		}
	}
}

func TestColourHelpers(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() is not an involution")
	}
	if White.Forward() != 1 || Black.Forward() != -1 {
		t.Error("Forward() has the wrong sign")
	}
	if White.PawnRank() != 1 || Black.PawnRank() != 6 {
		t.Errorf("PawnRank() = %d, %d; want 1, 6", White.PawnRank(), Black.PawnRank())
	}
	if White.PromotionRank() != 7 || Black.PromotionRank() != 0 {
		t.Errorf("PromotionRank() = %d, %d; want 7, 0", White.PromotionRank(), Black.PromotionRank())
	}
	if c, ok := ParseColour("black"); !ok || c != Black {
		t.Errorf("ParseColour(black) = %v, %v", c, ok)
	}
	if _, ok := ParseColour("green"); ok {
		t.Error("ParseColour(green) succeeded")
	}
}
