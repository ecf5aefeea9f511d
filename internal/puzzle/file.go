package puzzle

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Format is a puzzle file encoding.
type Format int

const (
	JSON Format = iota // An array of Puzzle objects
	CSV                // Lichess export: PuzzleId,FEN,Moves,Rating,...
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".csv":
		return CSV, nil
	}
	return JSON, fmt.Errorf("puzzle file %q: want .json or .csv: %w", path, errors.ErrInvalidConfig)
}

// FileSource holds a whole collection in memory, sorted by rating.
type FileSource struct {
	puzzles []Puzzle
}

// LoadFile reads a JSON or CSV collection.
func LoadFile(path string) (*FileSource, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := ReadSource(f, format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return src, nil
}

// ReadSource decodes a collection from r.
func ReadSource(r io.Reader, format Format) (*FileSource, error) {
	var puzzles []Puzzle
	var err error
	switch format {
	case CSV:
		puzzles, err = readCSV(r)
	default:
		err = json.NewDecoder(r).Decode(&puzzles)
	}
	if err != nil {
		return nil, err
	}
	return NewFileSource(puzzles), nil
}

// NewFileSource sorts puzzles by rating; equal ratings keep file order.
func NewFileSource(puzzles []Puzzle) *FileSource {
	sorted := append([]Puzzle(nil), puzzles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating < sorted[j].Rating
	})
	return &FileSource{puzzles: sorted}
}

// Puzzle returns the puzzle at index.
func (s *FileSource) Puzzle(_ context.Context, index int) (Puzzle, error) {
	if index < 0 || index >= len(s.puzzles) {
		return Puzzle{}, fmt.Errorf("index %d of %d: %w", index, len(s.puzzles), errors.ErrPuzzleNotFound)
	}
	return s.puzzles[index], nil
}

// Count returns the number of puzzles.
func (s *FileSource) Count(context.Context) (int, error) {
	return len(s.puzzles), nil
}

// Close does nothing; the collection is in memory.
func (s *FileSource) Close() error {
	return nil
}

func readCSV(r io.Reader) ([]Puzzle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	idCol, ok := cols["puzzleid"]
	if !ok {
		idCol, ok = cols["id"]
	}
	fenCol, fenOK := cols["fen"]
	movesCol, movesOK := cols["moves"]
	ratingCol, ratingOK := cols["rating"]
	if !ok || !fenOK || !movesOK || !ratingOK {
		return nil, fmt.Errorf("csv header %v: want PuzzleId, FEN, Moves and Rating", header)
	}

	var puzzles []Puzzle
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return puzzles, nil
		}
		if err != nil {
			return nil, err
		}
		field := func(col int) string {
			if col < len(record) {
				return strings.TrimSpace(record[col])
			}
			return ""
		}
		rating, err := strconv.Atoi(field(ratingCol))
		if err != nil {
			return nil, fmt.Errorf("line %d: rating %q", line, field(ratingCol))
		}
		puzzles = append(puzzles, Puzzle{
			ID:     field(idCol),
			FEN:    field(fenCol),
			Moves:  strings.Fields(field(movesCol)),
			Rating: rating,
		})
	}
}
