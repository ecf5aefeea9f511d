package puzzle

import (
	"strings"

	refchess "github.com/notnil/chess"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// NormalizeSolution resolves solution text against the puzzle position.
// Each move may be UCI ("e2e4", "e7e8q") or SAN ("Nf3", "exd6", "O-O").
// Under-promotions are rejected since every promotion here is a Queen.
func NormalizeSolution(fen string, texts []string) ([]chess.Move, error) {
	opt, err := refchess.FEN(fen)
	if err != nil {
		return nil, &errors.PositionError{Err: errors.ErrMalformedPosition, FEN: fen, Value: err.Error()}
	}
	pos := refchess.NewGame(opt).Position()

	moves := make([]chess.Move, 0, len(texts))
	for i, text := range texts {
		m := findMove(pos, text)
		if m == nil {
			return nil, &errors.MoveError{Err: errors.ErrIllegalMove, Ply: i + 1, Move: text}
		}
		if promo := m.Promo(); promo != refchess.NoPieceType && promo != refchess.Queen {
			return nil, &errors.MoveError{
				Err:  errors.Wrap(errors.ErrIllegalMove, "under-promotion"),
				Ply:  i + 1,
				Move: text,
			}
		}
		move, err := chess.ParseMove(m.String())
		if err != nil {
			return nil, &errors.MoveError{Err: errors.Wrap(errors.ErrIllegalMove, err.Error()), Ply: i + 1, Move: text}
		}
		moves = append(moves, move)
		pos = pos.Update(m)
	}
	return moves, nil
}

func findMove(pos *refchess.Position, text string) *refchess.Move {
	uci := strings.ToLower(text)
	san := strings.TrimRight(text, "+#!?")
	for _, m := range pos.ValidMoves() {
		if m.String() == uci {
			return m
		}
		if strings.TrimRight(refchess.AlgebraicNotation{}.Encode(pos, m), "+#") == san {
			return m
		}
	}
	return nil
}
