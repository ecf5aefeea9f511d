package engine

import (
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
)

// Render draws the grid as text, White's back rank at the bottom. With
// flipped set the board is drawn from Black's side. Squares in highlight
// are marked with '*' when empty and bracketed when occupied.
func Render(grid *chess.Grid, flipped bool, highlight chess.SquareSet) string {
	var sb strings.Builder

	ranks, files := orderedIndices(flipped)
	for _, rank := range ranks {
		sb.WriteByte(byte(chess.FirstRank + rank))
		sb.WriteByte(' ')
		for _, file := range files {
			sq := chess.Sq(rank, file)
			p := grid.Get(sq)
			switch {
			case highlight.Has(sq) && p.IsEmpty():
				sb.WriteString(" * ")
			case highlight.Has(sq):
				sb.WriteByte('[')
				sb.WriteByte(p.Letter())
				sb.WriteByte(']')
			case p.IsEmpty():
				sb.WriteString(" . ")
			default:
				sb.WriteByte(' ')
				sb.WriteByte(p.Letter())
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for _, file := range files {
		sb.WriteByte(' ')
		sb.WriteByte(byte(chess.FirstFile + file))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// orderedIndices returns the rank order (top to bottom) and file order
// (left to right) for the chosen orientation.
func orderedIndices(flipped bool) (ranks, files []int) {
	for i := 0; i < chess.BoardSize; i++ {
		ranks = append(ranks, chess.BoardSize-1-i)
		files = append(files, i)
	}
	if flipped {
		for i, j := 0, chess.BoardSize-1; i < j; i, j = i+1, j-1 {
			ranks[i], ranks[j] = ranks[j], ranks[i]
			files[i], files[j] = files[j], files[i]
		}
	}
	return ranks, files
}
