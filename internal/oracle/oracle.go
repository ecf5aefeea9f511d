// Package oracle provides move oracles: collaborators that, given a FEN
// position, answer with one legal move. The rules engine never searches;
// a computer opponent always asks an oracle.
package oracle

import (
	"context"
	"math/rand"
	"sync"

	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/engine"
	apperrors "github.com/lgbarn/chessgame-go/internal/errors"
)

// MoveOracle answers a position with one move in coordinate form.
// Failure to answer is reported as ErrOracleUnavailable.
type MoveOracle interface {
	BestMove(ctx context.Context, fen string) (chess.Move, error)
}

// RandomOracle picks uniformly among the legal moves of a position. It runs
// in process and stands in for an engine binary when none is configured.
type RandomOracle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomOracle creates a RandomOracle with a fixed seed so games are
// reproducible.
func NewRandomOracle(seed int64) *RandomOracle {
	return &RandomOracle{rng: rand.New(rand.NewSource(seed))}
}

// BestMove returns a random legal move. Under-promotions are skipped since
// every promotion on this board becomes a Queen.
func (o *RandomOracle) BestMove(ctx context.Context, fen string) (chess.Move, error) {
	if err := ctx.Err(); err != nil {
		return chess.NullMove, errors.Wrap(apperrors.ErrOracleUnavailable, err.Error())
	}

	// dragontoothmg does not validate its input.
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return chess.NullMove, errors.WithMessage(apperrors.ErrOracleUnavailable, err.Error())
	}

	ref := dragontoothmg.ParseFen(fen)
	var candidates []chess.Move
	for _, m := range ref.GenerateLegalMoves() {
		m := m
		if promo := m.Promote(); promo != 0 && promo != dragontoothmg.Queen {
			continue
		}
		move, err := chess.ParseMove(m.String())
		if err != nil || !engine.IsLegal(board, move.From, move.To) {
			continue
		}
		candidates = append(candidates, move)
	}
	if len(candidates) == 0 {
		return chess.NullMove, errors.Wrapf(apperrors.ErrOracleUnavailable, "no legal move in %q", fen)
	}

	o.mu.Lock()
	pick := candidates[o.rng.Intn(len(candidates))]
	o.mu.Unlock()
	return pick, nil
}
