package chessmg

import "fmt"

// emptySentinel marks an unoccupied square in the flat state string.
const emptySentinel = '0'

// StateLength is the length of a flat state string: one character per square.
const StateLength = 64

// StateString returns one character per square, a1 first and h8 last,
// with '0' for empty squares. It is meant for save/restore, not interchange.
func (b *Board) StateString() string {
	buf := make([]byte, StateLength)
	for sq, p := range b.pieces {
		if p == NoPiece {
			buf[sq] = emptySentinel
			continue
		}
		buf[sq] = byte(charFromPiece(p))
	}
	return string(buf)
}

// ParseStateString is the inverse of StateString.
func ParseStateString(s string) (*Board, error) {
	if len(s) != StateLength {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidState, len(s), StateLength)
	}
	board := &Board{}
	for i := 0; i < StateLength; i++ {
		ch := s[i]
		if ch == emptySentinel {
			continue
		}
		p := pieceFromChar(rune(ch))
		if p == NoPiece {
			return nil, fmt.Errorf("%w: unrecognized character %q at %s", ErrInvalidState, ch, Square(i))
		}
		board.pieces[i] = p
	}
	return board, nil
}
