// Package hashing provides position keys for repetition detection and
// duplicate detection of puzzle positions.
package hashing

import (
	"github.com/lgbarn/chessgame-go/internal/chess"
)

// Zobrist keys, generated from a fixed seed so that keys are stable
// across runs.
var (
	zobristPiece      [2][chess.NumPieceKinds][chess.BoardSize * chess.BoardSize]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng is an xorshift64* generator used only to fill the key tables.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}
	for c := range zobristPiece {
		for kind := chess.Pawn; kind < chess.NumPieceKinds; kind++ {
			for sq := range zobristPiece[c][kind] {
				zobristPiece[c][kind][sq] = rng.next()
			}
		}
	}
	zobristSideToMove = rng.next()
}

// PositionKey hashes piece placement and side to move. Castling rights,
// en passant and the clocks are deliberately not part of the key.
func PositionKey(grid *chess.Grid, toMove chess.Colour) uint64 {
	var hash uint64
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			p := grid[rank][file]
			if p.Kind == chess.Empty {
				continue
			}
			hash ^= zobristPiece[p.Colour][p.Kind][chess.Sq(rank, file).Index()]
		}
	}
	if toMove == chess.Black {
		hash ^= zobristSideToMove
	}
	return hash
}

// GenerateZobristHash returns the position key of the board's current position.
func GenerateZobristHash(board *chess.Board) uint64 {
	return PositionKey(&board.Grid, board.ToMove)
}

// RecordPosition increments the occurrence count of the board's current
// position and returns the new count.
func RecordPosition(board *chess.Board) int {
	if board.Repetitions == nil {
		board.Repetitions = make(map[uint64]int)
	}
	key := GenerateZobristHash(board)
	board.Repetitions[key]++
	return board.Repetitions[key]
}

// Occurrences returns how often the board's current position has been seen.
func Occurrences(board *chess.Board) int {
	return board.Repetitions[GenerateZobristHash(board)]
}

// MaxRepetition returns the highest occurrence count of any position.
func MaxRepetition(board *chess.Board) int {
	highest := 0
	for _, n := range board.Repetitions {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// DuplicateDetector tracks seen positions, flagging puzzles whose starting
// position has already been encountered.
type DuplicateDetector struct {
	// hashTable maps a position key to the ids that produced it
	hashTable map[uint64][]string
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		hashTable: make(map[uint64][]string),
	}
}

// CheckAndAdd checks if the board's position was seen before and records it
// under id. Returns the id of the first holder when it is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(id string, board *chess.Board) (string, bool) {
	if board == nil {
		return "", false
	}

	hash := GenerateZobristHash(board)
	existing, ok := d.hashTable[hash]
	d.hashTable[hash] = append(existing, id)
	if ok && len(existing) > 0 {
		d.duplicateCount++
		return existing[0], true
	}
	return "", false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct positions seen.
func (d *DuplicateDetector) UniqueCount() int {
	return len(d.hashTable)
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]string)
	d.duplicateCount = 0
}
