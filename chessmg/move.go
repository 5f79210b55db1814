package chessmg

import (
	"errors"
	"strings"
)

// Move is a pseudo-legal move: origin, destination and the moving piece type.
// Captures are implied by the destination's occupancy at generation time.
type Move struct {
	From  Square
	To    Square
	Piece PieceType
}

// String produces the coordinate form of the move, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

var errBadSquare = errors.New("invalid algebraic square")

// ParseSquare converts algebraic coordinates ("e4") into a Square.
func ParseSquare(alg string) (Square, error) {
	alg = strings.TrimSpace(strings.ToLower(alg))
	if len(alg) != 2 {
		return NoSquare, errBadSquare
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, errBadSquare
	}
	return Square(int(file-'a') + int(rank-'1')*8), nil
}

// ParseMove converts a coordinate string ("e2e4") into its two squares.
func ParseMove(movestr string) (from, to Square, err error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) != 4 {
		return NoSquare, NoSquare, errors.New("invalid move length")
	}
	if from, err = ParseSquare(movestr[0:2]); err != nil {
		return NoSquare, NoSquare, err
	}
	if to, err = ParseSquare(movestr[2:4]); err != nil {
		return NoSquare, NoSquare, err
	}
	return from, to, nil
}
