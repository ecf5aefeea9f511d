package testutil

import (
	"testing"

	"github.com/lgbarn/chessgame-go/internal/chess"
)

// FEN fixtures shared by the engine, controller and puzzle tests.
const (
	InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// CastlingFEN has both sides free to castle either way.
	CastlingFEN = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	// EnPassantFEN lets the e5 pawn take the f5 pawn en passant on f6.
	EnPassantFEN = "rnbqkbnr/ppppp1pp/8/4Pp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"

	// KiwipeteFEN is the standard move generator stress position.
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	// RookEndgameFEN is the third standard perft position.
	RookEndgameFEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"

	// FoolsMateFEN is the position after 1.f3 e5 2.g4 Qh4#.
	FoolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

	// StalemateFEN leaves Black to move with no legal reply.
	StalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

	// BlunderFEN leaves Black to blunder with Nf6, reaching MateInOneFEN.
	BlunderFEN = "r1bqkbnr/pppp1ppp/2n5/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 3 3"

	// MateInOneFEN is White to play Qh5xf7#.
	MateInOneFEN = "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4"
)

// FoolsMateMoves reaches FoolsMateFEN from the initial position.
var FoolsMateMoves = []string{"f2f3", "e7e5", "g2g4", "d8h4"}

// MustSquare parses a square name, failing the test on bad input.
func MustSquare(t *testing.T, name string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return sq
}

// MustSquares builds a square set from square names.
func MustSquares(t *testing.T, names ...string) chess.SquareSet {
	t.Helper()
	var set chess.SquareSet
	for _, name := range names {
		set = set.Add(MustSquare(t, name))
	}
	return set
}

// MustMove parses coordinate move text, failing the test on bad input.
func MustMove(t *testing.T, text string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(text)
	if err != nil {
		t.Fatalf("bad move %q: %v", text, err)
	}
	return m
}
