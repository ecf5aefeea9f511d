package engine

import (
	"testing"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		threshold uint
		want      Status
	}{
		{"initial position", InitialFEN, 0, Status{Kind: InProgress}},
		{"fool's mate", testutil.FoolsMateFEN, 0, Status{Kind: Checkmate, Colour: chess.White}},
		{"stalemate", testutil.StalemateFEN, 0, Status{Kind: Stalemate, Colour: chess.Black}},
		{"clock below threshold", "4k3/8/8/8/8/8/8/4K2R w - - 99 80", 0, Status{Kind: InProgress}},
		{"clock at threshold", "4k3/8/8/8/8/8/8/4K2R w - - 100 80", 0, Status{Kind: DrawFiftyMove}},
		{"source-literal threshold", "4k3/8/8/8/8/8/8/4K2R w - - 50 80", 50, Status{Kind: DrawFiftyMove}},
		{
			name:      "fifty-move rule beats checkmate",
			fen:       "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 100 3",
			threshold: 100,
			want:      Status{Kind: DrawFiftyMove},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			board := mustBoard(t, tt.fen)
			testutil.AssertEqual(t, Evaluate(board, tt.threshold), tt.want)
		})
	}
}

func TestFoolsMateSequence(t *testing.T) {
	board := NewInitialBoard()
	playMoves(t, board, testutil.FoolsMateMoves...)

	testutil.AssertEqual(t, BoardToFEN(board), testutil.FoolsMateFEN)
	testutil.AssertEqual(t, Evaluate(board, DefaultFiftyMoveThreshold), Status{Kind: Checkmate, Colour: chess.White})
	testutil.AssertTrue(t, IsCheckmate(board, chess.White))
	testutil.AssertFalse(t, IsCheckmate(board, chess.Black))
	testutil.AssertFalse(t, IsStalemate(board, chess.White))

	for _, p := range board.Pieces(chess.White) {
		testutil.AssertSquares(t, LegalMoves(board, p.Square), nil, "%v on %v", p.Kind, p.Square)
	}
}

func TestMateInOne(t *testing.T) {
	board := mustBoard(t, testutil.MateInOneFEN)
	testutil.AssertEqual(t, Evaluate(board, 0).Kind, InProgress)

	playMoves(t, board, "h5f7")
	testutil.AssertTrue(t, IsInCheck(board, chess.Black))
	testutil.AssertEqual(t, Evaluate(board, 0), Status{Kind: Checkmate, Colour: chess.Black})
	testutil.AssertEqual(t, Evaluate(board, 0).String(), "Checkmate(Black)")
}

func TestThreefoldRepetition(t *testing.T) {
	board := NewInitialBoard()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}

	for i, text := range shuffle {
		testutil.AssertFalse(t, IsThreefoldRepetition(board), "before ply %d", i+1)
		testutil.AssertEqual(t, Evaluate(board, 0).Kind, InProgress, "before ply %d", i+1)
		playMoves(t, board, text)
	}

	testutil.AssertTrue(t, IsThreefoldRepetition(board))
	testutil.AssertEqual(t, Evaluate(board, 0), Status{Kind: DrawRepetition})
}

func TestRepetitionCountsSetupPosition(t *testing.T) {
	// The setup position is the first occurrence.
	board := mustBoard(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	playMoves(t, board, "a1a2", "e8d8", "a2a1", "d8e8")
	testutil.AssertFalse(t, IsThreefoldRepetition(board))
	playMoves(t, board, "a1a2", "e8d8", "a2a1", "d8e8")
	testutil.AssertTrue(t, IsThreefoldRepetition(board))
}

func TestIsFiftyMoveDraw(t *testing.T) {
	board := mustBoard(t, "4k3/8/8/8/8/8/8/4K2R w - - 99 80")
	testutil.AssertFalse(t, IsFiftyMoveDraw(board, DefaultFiftyMoveThreshold))
	playMoves(t, board, "h1h2")
	testutil.AssertTrue(t, IsFiftyMoveDraw(board, DefaultFiftyMoveThreshold))
	testutil.AssertTrue(t, IsFiftyMoveDraw(board, 0), "zero selects the default")
}

// TestHasInsufficientMaterial tests various material configurations
func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool // true = insufficient material
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same color", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"K+B vs K+B opposite color", "4kb2/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+B+B vs K", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", false},
		{"K+N+N vs K", "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1", false},
		{"standard starting position", InitialFEN, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			board := mustBoard(t, tt.fen)
			if got := HasInsufficientMaterial(board); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}
