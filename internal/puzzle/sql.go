package puzzle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

const (
	selectByRank = "SELECT id, fen, moves, rating FROM puzzles ORDER BY rating ASC LIMIT 1 OFFSET ?"
	selectCount  = "SELECT COUNT(*) FROM puzzles"
)

// SQLSource reads the puzzles table. Moves are stored space separated.
type SQLSource struct {
	db *sql.DB
}

// NewSQLSource wraps an open database handle.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// OpenMySQL checks the DSN, opens the database and pings it.
func OpenMySQL(ctx context.Context, dsn string) (*SQLSource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("puzzle dsn: %v: %w", err, errors.ErrInvalidConfig)
	}
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connect to %s", cfg.Addr)
	}
	return NewSQLSource(db), nil
}

// Puzzle returns the index-th puzzle by ascending rating.
func (s *SQLSource) Puzzle(ctx context.Context, index int) (Puzzle, error) {
	if index < 0 {
		return Puzzle{}, fmt.Errorf("index %d: %w", index, errors.ErrPuzzleNotFound)
	}
	var (
		p     Puzzle
		moves string
	)
	err := s.db.QueryRowContext(ctx, selectByRank, index).Scan(&p.ID, &p.FEN, &moves, &p.Rating)
	if err == sql.ErrNoRows {
		return Puzzle{}, fmt.Errorf("index %d: %w", index, errors.ErrPuzzleNotFound)
	}
	if err != nil {
		return Puzzle{}, errors.Wrapf(err, "puzzle %d", index)
	}
	p.Moves = strings.Fields(moves)
	return p, nil
}

// Count returns the number of rows in the puzzles table.
func (s *SQLSource) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, selectCount).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count puzzles")
	}
	return n, nil
}

// Close closes the database handle.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
