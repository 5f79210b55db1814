package chessmg

import (
	"errors"
	"fmt"
	"strings"
)

// StartingPlacement is the piece-placement field of the standard initial position.
const StartingPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// FENStartPos is the full FEN string for the standard initial position.
// Only the placement field is consumed by ParsePlacement.
const FENStartPos = StartingPlacement + " w KQkq - 0 1"

var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrInvalidState     = errors.New("invalid state string")
)

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	switch p {
	case WhitePawn:
		return 'P'
	case WhiteKnight:
		return 'N'
	case WhiteBishop:
		return 'B'
	case WhiteRook:
		return 'R'
	case WhiteQueen:
		return 'Q'
	case WhiteKing:
		return 'K'
	case BlackPawn:
		return 'p'
	case BlackKnight:
		return 'n'
	case BlackBishop:
		return 'b'
	case BlackRook:
		return 'r'
	case BlackQueen:
		return 'q'
	case BlackKing:
		return 'k'
	default:
		return emptySentinel
	}
}

// ParsePlacement decodes the piece-placement field of a FEN string into a Board.
// Anything after the first space (side to move, castling, clocks) is ignored.
// On error no board is returned.
func ParsePlacement(placement string) (*Board, error) {
	if i := strings.IndexByte(placement, ' '); i >= 0 {
		placement = placement[:i]
	}
	if placement == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPlacement)
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidPlacement, len(ranks))
	}

	board := &Board{}
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, fmt.Errorf("%w: empty rank %d", ErrInvalidPlacement, 8-i)
		}
		rank := 7 - i // first rank field is rank 8, index 7
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, fmt.Errorf("%w: rank %d overflows 8 files", ErrInvalidPlacement, rank+1)
				}
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, fmt.Errorf("%w: unrecognized character %q", ErrInvalidPlacement, ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: rank %d overflows 8 files", ErrInvalidPlacement, rank+1)
			}
			board.pieces[rank*8+file] = piece
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidPlacement, rank+1, file)
		}
	}
	return board, nil
}

// Placement produces the FEN piece-placement field for the board.
func (b *Board) Placement() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[rank*8+file]
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(charFromPiece(p))
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN returns a full FEN string for the board with the given side to move.
// Castling and en passant are always "-": this package does not track them.
func (b *Board) FEN(side Color) string {
	stm := "w"
	if side == Black {
		stm = "b"
	}
	return b.Placement() + " " + stm + " - - 0 1"
}
