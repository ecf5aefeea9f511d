package game

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/oracle"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

type stubOracle struct {
	move chess.Move
	err  error
	fens []string
}

func (s *stubOracle) BestMove(_ context.Context, fen string) (chess.Move, error) {
	s.fens = append(s.fens, fen)
	return s.move, s.err
}

func newGame(t *testing.T, fen string) *Game {
	t.Helper()
	g := New(nil)
	require.NoError(t, g.Setup(fen))
	return g
}

func TestGame_BeforeSetup(t *testing.T) {
	g := New(nil)

	assert.Equal(t, AwaitingSetup, g.State())
	assert.Equal(t, "", g.FEN())
	assert.Nil(t, g.Board())
	assert.True(t, g.LegalMoves(testutil.MustSquare(t, "e2")).IsEmpty())

	err := g.ApplyMoveText("e2e4")
	assert.True(t, errors.Is(err, errors.ErrNoSetup), "got %v", err)

	_, err = g.PlayOracle(context.Background(), oracle.NewRandomOracle(1))
	assert.True(t, errors.Is(err, errors.ErrNoSetup))
}

func TestGame_SetupFailureKeepsState(t *testing.T) {
	g := New(nil)
	err := g.Setup("8/8/8 w - -")
	assert.True(t, errors.Is(err, errors.ErrMalformedPosition))
	assert.Equal(t, AwaitingSetup, g.State())

	require.NoError(t, g.Setup(""))
	require.NoError(t, g.ApplyMoveText("e2e4"))
	fen := g.FEN()

	assert.Error(t, g.Setup("garbage"))
	assert.Equal(t, InProgress, g.State())
	assert.Equal(t, fen, g.FEN())
}

func TestGame_TurnEnforcement(t *testing.T) {
	g := newGame(t, "")

	assert.True(t, g.LegalMoves(testutil.MustSquare(t, "e7")).IsEmpty(), "black pawn on white's turn")
	testutil.AssertSquares(t, g.LegalMoves(testutil.MustSquare(t, "e2")), []string{"e3", "e4"})

	err := g.ApplyMoveText("e7e5")
	assert.True(t, errors.Is(err, errors.ErrIllegalMove))
	var moveErr *errors.MoveError
	require.True(t, errors.As(err, &moveErr))
	assert.Equal(t, 1, moveErr.Ply)
	assert.Equal(t, "e7e5", moveErr.Move)
	assert.Equal(t, engine.InitialFEN, g.FEN())

	require.NoError(t, g.ApplyMoveText("e2e4"))
	assert.Equal(t, chess.Black, g.ToMove())
	testutil.AssertSquares(t, g.LegalMoves(testutil.MustSquare(t, "e7")), []string{"e6", "e5"})
}

func TestGame_IllegalDestination(t *testing.T) {
	g := newGame(t, "")
	err := g.ApplyMoveText("e2e5")
	assert.True(t, errors.Is(err, errors.ErrIllegalMove))
	assert.True(t, errors.Is(g.ApplyMoveText("e2"), errors.ErrIllegalMove))
	assert.Equal(t, InProgress, g.State())
}

func TestGame_FoolsMateTerminates(t *testing.T) {
	g := newGame(t, "")
	for _, text := range testutil.FoolsMateMoves {
		require.NoError(t, g.ApplyMoveText(text))
	}

	assert.Equal(t, Terminated, g.State())
	want := Outcome{Reason: ByRule, Status: engine.Status{Kind: engine.Checkmate, Colour: chess.White}}
	assert.Equal(t, want, g.Outcome())
	assert.Equal(t, "Checkmate(White)", g.Outcome().String())
	assert.True(t, g.LegalMoves(testutil.MustSquare(t, "e2")).IsEmpty())

	err := g.ApplyMoveText("e2e3")
	assert.True(t, errors.Is(err, errors.ErrGameOver), "got %v", err)
}

func TestGame_SetupDecidedPosition(t *testing.T) {
	g := newGame(t, testutil.StalemateFEN)
	assert.Equal(t, Terminated, g.State())
	assert.Equal(t, engine.Stalemate, g.Outcome().Status.Kind)

	require.NoError(t, g.Setup(""))
	assert.Equal(t, InProgress, g.State())
	assert.Equal(t, Outcome{}, g.Outcome())
}

func TestGame_FiftyMoveThresholdFromConfig(t *testing.T) {
	cfg := config.NewConfigBuilder().WithFiftyMoveThreshold(50).Build()
	g := New(cfg)
	require.NoError(t, g.Setup("4k3/8/8/8/8/8/8/4K2R w - - 49 80"))
	require.NoError(t, g.ApplyMoveText("h1h2"))

	assert.Equal(t, Terminated, g.State())
	assert.Equal(t, engine.DrawFiftyMove, g.Outcome().Status.Kind)
}

func TestGame_PlayOracle(t *testing.T) {
	g := newGame(t, "")
	g.SetPlayers(Human, Computer)
	assert.Equal(t, Human, g.PlayerToMove())

	require.NoError(t, g.ApplyMoveText("e2e4"))
	assert.Equal(t, Computer, g.PlayerToMove())

	stub := &stubOracle{move: testutil.MustMove(t, "e7e5")}
	move, err := g.PlayOracle(context.Background(), stub)
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move.String())
	assert.Equal(t, []string{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"}, stub.fens)
	assert.Equal(t, chess.White, g.ToMove())
}

func TestGame_PlayOracleRandom(t *testing.T) {
	g := newGame(t, "")
	o := oracle.NewRandomOracle(7)
	for i := 0; i < 3; i++ {
		_, err := g.PlayOracle(context.Background(), o)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, g.Board().Plies)
	assert.Equal(t, InProgress, g.State())
}

func TestGame_OracleFailureAborts(t *testing.T) {
	tests := []struct {
		name   string
		oracle *stubOracle
	}{
		{"unavailable", &stubOracle{err: errors.Wrap(errors.ErrOracleUnavailable, "engine exited")}},
		{"illegal answer", &stubOracle{move: chess.Move{From: chess.Sq(1, 4), To: chess.Sq(4, 4)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, "")
			_, err := g.PlayOracle(context.Background(), tt.oracle)
			assert.True(t, errors.Is(err, errors.ErrOracleUnavailable), "got %v", err)
			assert.Equal(t, Terminated, g.State())
			assert.Equal(t, Aborted, g.Outcome().Reason)
			assert.Equal(t, engine.InitialFEN, g.FEN())

			_, err = g.PlayOracle(context.Background(), tt.oracle)
			assert.True(t, errors.Is(err, errors.ErrGameOver))
			assert.Len(t, tt.oracle.fens, 1, "never retried")
		})
	}
}

func TestGame_Logging(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := config.NewConfigBuilder().WithLog(buf).WithVerbosity(2).Build()
	g := New(cfg)
	require.NoError(t, g.Setup(""))
	for _, text := range testutil.FoolsMateMoves {
		require.NoError(t, g.ApplyMoveText(text))
	}

	assert.Contains(t, buf.String(), "setup "+engine.InitialFEN)
	assert.Contains(t, buf.String(), "4. Black d8h4")
	assert.Contains(t, buf.String(), "game over: Checkmate(White)")
}

func TestGame_BoardIsACopy(t *testing.T) {
	g := newGame(t, "")
	b := g.Board()
	b.Clear(testutil.MustSquare(t, "e1"))
	assert.Equal(t, engine.InitialFEN, g.FEN())
	assert.Contains(t, g.Render(false, 0), "1  R  N  B  Q  K  B  N  R")
}
