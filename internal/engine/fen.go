// Package engine implements the chess rules: position setup, per-piece move
// generation, the legality filter, move application, game termination and
// the FEN codec.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/hashing"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field names used in PositionError.
const (
	fieldCount     = "field count"
	fieldPlacement = "placement"
	fieldSide      = "side to move"
	fieldCastling  = "castling rights"
	fieldEnPassant = "en passant"
	fieldHalfmove  = "halfmove clock"
	fieldFullmove  = "fullmove number"
)

// fenPieceKinds is the closed table of placement letters.
var fenPieceKinds = map[rune]chess.PieceKind{
	'p': chess.Pawn,
	'n': chess.Knight,
	'b': chess.Bishop,
	'r': chess.Rook,
	'q': chess.Queen,
	'k': chess.King,
}

// castlingRight ties a FEN castling letter to the rook corner it names.
type castlingRight struct {
	letter byte
	colour chess.Colour
	file   int
}

// castlingRights lists the rights in FEN output order.
var castlingRights = []castlingRight{
	{'K', chess.White, chess.BoardSize - 1},
	{'Q', chess.White, 0},
	{'k', chess.Black, chess.BoardSize - 1},
	{'q', chess.Black, 0},
}

// kingFile is the file both kings start on.
const kingFile = 4

// ConvertFENCharToPiece converts a FEN character to a piece kind.
// Unknown characters yield chess.Empty.
func ConvertFENCharToPiece(c byte) chess.PieceKind {
	return fenPieceKinds[unicode.ToLower(rune(c))]
}

// Setup builds a board from fen, or the standard opening array when fen is
// empty. The resulting position is recorded as the first history entry.
func Setup(fen string) (*chess.Board, error) {
	if strings.TrimSpace(fen) == "" {
		fen = InitialFEN
	}
	return NewBoardFromFEN(fen)
}

// NewBoardFromFEN creates a board from a FEN string. At least the four
// position fields are required; the clocks default to 0 and 1.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fenError(fen, fieldCount, strconv.Itoa(len(parts)))
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, withFEN(err, fen)
	}
	if err := parseSideToMove(board, parts[1]); err != nil {
		return nil, withFEN(err, fen)
	}
	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, withFEN(err, fen)
	}
	if err := parseEnPassant(board, parts[3]); err != nil {
		return nil, withFEN(err, fen)
	}
	if err := parseClocks(board, parts[4:]); err != nil {
		return nil, withFEN(err, fen)
	}

	hashing.RecordPosition(board)
	return board, nil
}

// fenError builds a PositionError wrapping ErrMalformedPosition.
func fenError(fen, field, value string) error {
	return &errors.PositionError{
		Err:   errors.ErrMalformedPosition,
		Field: field,
		Value: value,
		FEN:   fen,
	}
}

// withFEN attaches the full input to a PositionError raised by a field parser.
func withFEN(err error, fen string) error {
	var posErr *errors.PositionError
	if errors.As(err, &posErr) {
		posErr.FEN = fen
	}
	return err
}

// parsePiecePositions parses the piece placement field. Every rank must
// describe exactly eight squares.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fenError("", fieldPlacement, positions)
	}

	for i, rankText := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range rankText {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				kind, ok := fenPieceKinds[unicode.ToLower(c)]
				if !ok {
					return fenError("", fieldPlacement, string(c))
				}
				if file >= chess.BoardSize {
					return fenError("", fieldPlacement, rankText)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				board.Set(chess.Sq(rank, file), newSetupPiece(kind, colour, rank))
				file++
			}
			if file > chess.BoardSize {
				return fenError("", fieldPlacement, rankText)
			}
		}
		if file != chess.BoardSize {
			return fenError("", fieldPlacement, rankText)
		}
	}
	return nil
}

// newSetupPiece creates a piece with the HasMoved flag it gets before the
// castling rights are applied. Kings and rooks count as moved until a right
// names them; pawns count as moved when off their starting rank.
func newSetupPiece(kind chess.PieceKind, colour chess.Colour, rank int) chess.Piece {
	p := chess.Piece{Kind: kind, Colour: colour}
	switch kind {
	case chess.King, chess.Rook:
		p.HasMoved = true
	case chess.Pawn:
		p.HasMoved = rank != colour.PawnRank()
	}
	return p
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fenError("", fieldSide, side)
	}
	return nil
}

// parseCastlingRights parses the castling availability field. A right clears
// HasMoved on the king and the named rook when both stand on their
// starting squares; a right without them is ignored.
func parseCastlingRights(board *chess.Board, rights string) error {
	if rights == "-" {
		return nil
	}

	seen := make(map[byte]bool, len(castlingRights))
	for i := 0; i < len(rights); i++ {
		c := rights[i]
		right, ok := findCastlingRight(c)
		if !ok || seen[c] {
			return fenError("", fieldCastling, rights)
		}
		seen[c] = true

		home := right.colour.HomeRank()
		kingSq := chess.Sq(home, kingFile)
		rookSq := chess.Sq(home, right.file)
		king := board.Get(kingSq)
		rook := board.Get(rookSq)
		if king.Kind != chess.King || king.Colour != right.colour {
			continue
		}
		if rook.Kind != chess.Rook || rook.Colour != right.colour {
			continue
		}
		king.HasMoved = false
		rook.HasMoved = false
		board.Set(kingSq, king)
		board.Set(rookSq, rook)
	}
	return nil
}

func findCastlingRight(letter byte) (castlingRight, bool) {
	for _, right := range castlingRights {
		if right.letter == letter {
			return right, true
		}
	}
	return castlingRight{}, false
}

// parseEnPassant parses the en passant target square field. The target must
// lie on the third or sixth rank. The previous ply is reconstructed from it so
// that the last-move fallback agrees with the target.
func parseEnPassant(board *chess.Board, field string) error {
	if field == "-" {
		return nil
	}
	sq, ok := ParseEnPassantSquare(field)
	if !ok {
		return fenError("", fieldEnPassant, field)
	}

	pusher := chess.White
	if sq.Rank == chess.Black.PawnRank()+chess.Black.Forward() {
		pusher = chess.Black
	}
	board.SetEnPassant(sq)
	board.Last = chess.LastMove{
		Kind:   chess.Pawn,
		Colour: pusher,
		Move: chess.Move{
			From: sq.Offset(-pusher.Forward(), 0),
			To:   sq.Offset(pusher.Forward(), 0),
		},
	}
	return nil
}

// ParseEnPassantSquare parses an en passant target, accepting only squares
// on the ranks a double push can skip over.
func ParseEnPassantSquare(s string) (chess.Square, bool) {
	sq, ok := chess.ParseSquare(s)
	if !ok {
		return chess.NoSquare, false
	}
	if sq.Rank != chess.White.PawnRank()+chess.White.Forward() &&
		sq.Rank != chess.Black.PawnRank()+chess.Black.Forward() {
		return chess.NoSquare, false
	}
	return sq, true
}

// parseClocks parses the optional halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, clocks []string) error {
	if len(clocks) >= 1 {
		n, err := strconv.ParseUint(clocks[0], 10, 32)
		if err != nil {
			return fenError("", fieldHalfmove, clocks[0])
		}
		board.HalfmoveClock = uint(n)
	}
	if len(clocks) >= 2 {
		n, err := strconv.ParseUint(clocks[1], 10, 32)
		if err != nil || n == 0 {
			return fenError("", fieldFullmove, clocks[1])
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string, always emitting all six
// fields. Castling rights are derived from the HasMoved flags of the kings
// and corner rooks.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, &board.Grid)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board.ToMove)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, &board.Grid)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// PlacementFEN returns only the placement field for a grid.
func PlacementFEN(grid *chess.Grid) string {
	var sb strings.Builder
	writePiecePositions(&sb, grid)
	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, grid *chess.Grid) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := grid.Get(chess.Sq(rank, file))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, colour chess.Colour) {
	if colour == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, grid *chess.Grid) {
	hasCastling := false
	for _, right := range castlingRights {
		if canStillCastle(grid, right.colour, right.file) {
			sb.WriteByte(right.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// canStillCastle reports whether the colour's king and the rook on rookFile
// are both unmoved on their starting squares.
func canStillCastle(grid *chess.Grid, colour chess.Colour, rookFile int) bool {
	home := colour.HomeRank()
	king := grid.Get(chess.Sq(home, kingFile))
	rook := grid.Get(chess.Sq(home, rookFile))
	return king.Kind == chess.King && king.Colour == colour && !king.HasMoved &&
		rook.Kind == chess.Rook && rook.Colour == colour && !rook.HasMoved
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if sq, ok := board.EnPassantTarget(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, _ := NewBoardFromFEN(InitialFEN)
	return board
}
