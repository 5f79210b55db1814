package chessmg

import "math/bits"

// BitboardSet is a scratch view of a Board: one mask per (color, piece type)
// plus occupancy aggregates. It is derived on demand and never kept in sync
// with a Board incrementally.
type BitboardSet struct {
	pieces    [2][7]uint64 // [color][PieceType], index 0 unused
	occupancy [2]uint64
}

// Bitboards derives the bitboard set for the board.
func (b *Board) Bitboards() BitboardSet {
	var set BitboardSet
	for sq, p := range b.pieces {
		if p == NoPiece {
			continue
		}
		ci := int(p.Color())
		set.pieces[ci][p.Type()] |= bb(Square(sq))
		set.occupancy[ci] |= bb(Square(sq))
	}
	return set
}

// Pieces returns the mask of pieces of the given color and type.
func (s *BitboardSet) Pieces(c Color, pt PieceType) uint64 {
	if pt < PieceTypePawn || pt > PieceTypeKing {
		return 0
	}
	return s.pieces[int(c)][pt]
}

// ColorOccupancy returns the occupancy bitboard for the given color.
func (s *BitboardSet) ColorOccupancy(c Color) uint64 { return s.occupancy[int(c)] }

// AllOccupancy returns a bitboard of all occupied squares.
func (s *BitboardSet) AllOccupancy() uint64 { return s.occupancy[0] | s.occupancy[1] }

// Empty returns a bitboard of all unoccupied squares.
func (s *BitboardSet) Empty() uint64 { return ^s.AllOccupancy() }

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// Squares lists the set squares of a mask in ascending order.
func Squares(mask uint64) []Square {
	out := make([]Square, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, Square(popLSB(&mask)))
	}
	return out
}
