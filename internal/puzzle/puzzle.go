// Package puzzle provides puzzle sources: collections of start positions
// with scripted solutions, ordered by rating. Sources read JSON or CSV
// files or a MySQL table.
package puzzle

import (
	"context"
	"sync"

	"github.com/lgbarn/chessgame-go/internal/chess"
)

// Puzzle is one scripted exercise. Moves alternate opponent reply and
// solver move, starting with the reply.
type Puzzle struct {
	ID     string   `json:"id"`
	FEN    string   `json:"fen"`
	Moves  []string `json:"moves"`
	Rating int      `json:"rating"`
}

// Solution converts Moves to coordinate moves. Moves may be UCI or SAN.
func (p Puzzle) Solution() ([]chess.Move, error) {
	return NormalizeSolution(p.FEN, p.Moves)
}

// Source yields puzzles by index in ascending rating order.
type Source interface {
	// Puzzle returns the puzzle at index, or ErrPuzzleNotFound.
	Puzzle(ctx context.Context, index int) (Puzzle, error)

	// Count returns the number of puzzles.
	Count(ctx context.Context) (int, error)

	Close() error
}

// Iterator walks a source from the easiest puzzle up.
type Iterator struct {
	src Source

	mu   sync.Mutex
	next int
}

// NewIterator creates an iterator positioned at the first puzzle.
func NewIterator(src Source) *Iterator {
	return &Iterator{src: src}
}

// Next returns the next puzzle. At the end it returns ErrPuzzleNotFound and
// stays at the end.
func (it *Iterator) Next(ctx context.Context) (Puzzle, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	p, err := it.src.Puzzle(ctx, it.next)
	if err != nil {
		return Puzzle{}, err
	}
	it.next++
	return p, nil
}

// Reset moves back to the first puzzle.
func (it *Iterator) Reset() {
	it.mu.Lock()
	it.next = 0
	it.mu.Unlock()
}
