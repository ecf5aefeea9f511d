package oracle

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

const (
	helperEnv     = "GO_WANT_HELPER_PROCESS"
	helperModeEnv = "GO_HELPER_ENGINE_MODE"
)

// TestHelperProcess is not a real test. It is re-executed by the tests
// below and plays a minimal UCI engine on stdin/stdout.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	mode := os.Getenv(helperModeEnv)
	searches := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch fields := strings.Fields(scanner.Text()); {
		case len(fields) == 0:
		case fields[0] == "uci":
			if mode == "mute" {
				continue
			}
			fmt.Println("id name helper")
			fmt.Println("uciok")
		case fields[0] == "isready":
			fmt.Println("readyok")
		case fields[0] == "go":
			searches++
			switch {
			case mode == "crash":
				os.Exit(3)
			case mode == "deaf":
				continue
			case mode == "late" && searches == 1:
				// Answers the first search after the caller gave up, ignoring stop.
				time.Sleep(300 * time.Millisecond)
				fmt.Println("bestmove a2a3")
				continue
			}
			fmt.Println("info depth 1 score cp 12 nodes 20 pv e2e4")
			fmt.Println("info depth " + fields[len(fields)-1] + " score mate 2 nodes 400 pv e2e4 e7e5")
			fmt.Println("bestmove  e2e4 ponder e7e5")
		case fields[0] == "quit":
			if mode == "stubborn" {
				continue
			}
			os.Exit(0)
		}
	}
	if mode == "stubborn" {
		time.Sleep(time.Hour)
	}
	os.Exit(0)
}

func startHelper(t *testing.T, ctx context.Context, mode string) (*UCIEngine, error) {
	t.Helper()
	t.Setenv(helperEnv, "1")
	t.Setenv(helperModeEnv, mode)
	return NewUCIEngine(ctx, os.Args[0], 7, "-test.run=TestHelperProcess", "--")
}

func TestUCIEngine_BestMove(t *testing.T) {
	e, err := startHelper(t, context.Background(), "")
	require.NoError(t, err)
	defer e.Close()

	move, err := e.BestMove(context.Background(), testutil.InitialFEN)
	require.NoError(t, err)
	assert.Equal(t, "e2e4", move.String())

	eval := e.Evaluation()
	assert.Equal(t, Evaluation{Depth: 7, Score: 12, IsMate: true, MateIn: 2, BestMove: "e2e4"}, eval)
	assert.Equal(t, "+M2", FormatEvaluation(&eval))
}

func TestUCIEngine_DefaultDepth(t *testing.T) {
	t.Setenv(helperEnv, "1")
	e, err := NewUCIEngine(context.Background(), os.Args[0], 0, "-test.run=TestHelperProcess", "--")
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, DefaultDepth, e.depth)
}

func TestUCIEngine_ProcessExitIsUnavailable(t *testing.T) {
	e, err := startHelper(t, context.Background(), "crash")
	require.NoError(t, err)
	defer e.Close()

	_, err = e.BestMove(context.Background(), testutil.InitialFEN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOracleUnavailable), "got %v", err)
}

func TestUCIEngine_HandshakeTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := startHelper(t, ctx, "mute")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOracleUnavailable), "got %v", err)
}

func TestUCIEngine_MissingBinary(t *testing.T) {
	_, err := NewUCIEngine(context.Background(), "/nonexistent/stockfish", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOracleUnavailable))
}

func TestUCIEngine_CloseTwice(t *testing.T) {
	e, err := startHelper(t, context.Background(), "")
	require.NoError(t, err)
	assert.NoError(t, e.Close())
	assert.NoError(t, e.Close())

	_, err = e.BestMove(context.Background(), testutil.InitialFEN)
	assert.True(t, errors.Is(err, errors.ErrOracleUnavailable))
}

func TestUCIEngine_CancelledSearchDiscardsLateReply(t *testing.T) {
	e, err := startHelper(t, context.Background(), "late")
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = e.BestMove(ctx, testutil.InitialFEN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOracleUnavailable), "got %v", err)

	// The reply to the abandoned search must not answer this one.
	move, err := e.BestMove(context.Background(), testutil.KiwipeteFEN)
	require.NoError(t, err)
	assert.Equal(t, "e2e4", move.String())
}

func TestUCIEngine_UnstoppableSearchIsUnavailable(t *testing.T) {
	e, err := startHelper(t, context.Background(), "deaf")
	require.NoError(t, err)
	defer e.Close()
	e.stopGrace = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = e.BestMove(ctx, testutil.InitialFEN)
	require.Error(t, err)

	_, err = e.BestMove(context.Background(), testutil.InitialFEN)
	assert.True(t, errors.Is(err, errors.ErrOracleUnavailable), "got %v", err)
}

func TestUCIEngine_CloseKillsEngineIgnoringQuit(t *testing.T) {
	e, err := startHelper(t, context.Background(), "stubborn")
	require.NoError(t, err)
	e.closeGrace = 100 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- e.Close() }()
	select {
	case err := <-done:
		assert.Error(t, err, "killed engine reports its exit")
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}
