package puzzle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

const lichessCSV = `PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl
00sHx,q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B1PP1b2/B5PP/5K2 b k - 0 17,e8d7 a2e6 d7d8 f7f8,1760,80,83,72,mate mateIn2,https://lichess.org/yyznGmXs/black#34
00sJ9,r3r1k1/p4ppp/2p2n2/1p6/3P1qb1/2NQR3/PPB2PP1/R1B3K1 w - - 5 18,e3g3 e8e1 g1h2 e1c1,1519,73,87,325,advantage attraction,https://lichess.org/gyFeQsOE#35
00sO1,1k1r4/pp3pp1/2p1p3/4b3/P3n1P1/8/KPP2PN1/3rBR1R b - - 2 31,b8c7 e1a5 b7b6 f1d1,998,85,94,293,advantage discoveredAttack,https://lichess.org/vsfFkG0s/black#62
`

const puzzlesJSON = `[
  {"id": "b", "fen": "r1bqkbnr/pppp1ppp/2n5/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 3 3", "moves": ["g8f6", "h5f7"], "rating": 900},
  {"id": "a", "fen": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "moves": ["e2e4", "e7e5"], "rating": 600},
  {"id": "c", "fen": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "moves": ["d2d4", "d7d5"], "rating": 900}
]`

func ids(t *testing.T, src Source) []string {
	t.Helper()
	n, err := src.Count(context.Background())
	require.NoError(t, err)
	var out []string
	for i := 0; i < n; i++ {
		p, err := src.Puzzle(context.Background(), i)
		require.NoError(t, err)
		out = append(out, p.ID)
	}
	return out
}

func TestReadSource_CSV(t *testing.T) {
	src, err := ReadSource(strings.NewReader(lichessCSV), CSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"00sO1", "00sJ9", "00sHx"}, ids(t, src), "ascending rating")

	p, err := src.Puzzle(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1760, p.Rating)
	assert.Equal(t, []string{"e8d7", "a2e6", "d7d8", "f7f8"}, p.Moves)
	assert.Equal(t, "q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B1PP1b2/B5PP/5K2 b k - 0 17", p.FEN)
}

func TestReadSource_JSONStableOrder(t *testing.T) {
	src, err := ReadSource(strings.NewReader(puzzlesJSON), JSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(t, src))
}

func TestReadSource_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"bad json", "[{", JSON},
		{"empty csv", "", CSV},
		{"csv without moves column", "PuzzleId,FEN,Rating\nx,8/8/8/8/8/8/8/8 w - - 0 1,1\n", CSV},
		{"csv bad rating", "PuzzleId,FEN,Moves,Rating\nx,fen,e2e4,high\n", CSV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSource(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFileSource_NotFound(t *testing.T) {
	src := NewFileSource(nil)
	for _, i := range []int{-1, 0, 5} {
		_, err := src.Puzzle(context.Background(), i)
		assert.True(t, errors.Is(err, errors.ErrPuzzleNotFound), "index %d", i)
	}
	assert.NoError(t, src.Close())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "puzzles.json")
	csvPath := filepath.Join(dir, "puzzles.CSV")
	require.NoError(t, os.WriteFile(jsonPath, []byte(puzzlesJSON), 0o644))
	require.NoError(t, os.WriteFile(csvPath, []byte(lichessCSV), 0o644))

	src, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(t, src))

	src, err = LoadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, ids(t, src), 3)

	_, err = LoadFile(filepath.Join(dir, "puzzles.txt"))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSource_Iterator(t *testing.T) {
	src, err := ReadSource(strings.NewReader(puzzlesJSON), JSON)
	require.NoError(t, err)

	it := NewIterator(src)
	var seen []string
	for {
		p, err := it.Next(context.Background())
		if errors.Is(err, errors.ErrPuzzleNotFound) {
			break
		}
		require.NoError(t, err)
		seen = append(seen, p.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, seen)

	it.Reset()
	p, err := it.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", p.ID)
}
