package chessmg

// Piece is a coloured piece code: the low three bits hold the PieceType,
// bit 3 is set for Black. NoPiece marks an empty cell.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is the piece without its colour; it also labels generated moves.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

func (pt PieceType) String() string {
	switch pt {
	case PieceTypePawn:
		return "pawn"
	case PieceTypeKnight:
		return "knight"
	case PieceTypeBishop:
		return "bishop"
	case PieceTypeRook:
		return "rook"
	case PieceTypeQueen:
		return "queen"
	case PieceTypeKing:
		return "king"
	}
	return "none"
}

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// Valid reports whether p is one of the twelve piece codes.
func (p Piece) Valid() bool {
	t := p.Type()
	return t >= PieceTypePawn && t <= PieceTypeKing && p&^0xF == 0
}

func (p Piece) String() string {
	if !p.Valid() {
		return string(emptySentinel)
	}
	return string(charFromPiece(p))
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
// This is the piece-factory contract: (owner, type) -> tagged piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt < PieceTypePawn || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// ParseColor accepts "w"/"white" and "b"/"black".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "white", "W":
		return White, true
	case "b", "black", "B":
		return Black, true
	}
	return White, false
}

// Square represents a board position (0-63).
type Square int

const NoSquare Square = -1

// NewSquare builds a square from 0-based file and rank, or NoSquare when either is off the board.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= 8 || rank < 0 || rank >= 8 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// Valid reports whether sq lies in [0,64).
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

func (sq Square) File() int { return int(sq) % 8 }

func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Board is the flat 64-cell board state, indexed by Square with rank 0 first.
type Board struct {
	pieces [64]Piece
}

// PieceAt returns the piece on a square. Out-of-range squares read as NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.pieces[sq]
}

// SetPiece sets a piece on a square, replacing any existing piece.
func (b *Board) SetPiece(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	b.pieces[sq] = p
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { b.SetPiece(sq, NoPiece) }

// MovePiece moves a piece from one square to another. If a piece exists on 'to', it is captured.
func (b *Board) MovePiece(from, to Square) {
	if !from.Valid() || !to.Valid() || from == to {
		return
	}
	b.pieces[to] = b.pieces[from]
	b.pieces[from] = NoPiece
}

// Reset empties every square.
func (b *Board) Reset() { b.pieces = [64]Piece{} }

// Validate checks that every cell holds NoPiece or a valid piece code.
func (b *Board) Validate() bool {
	for _, p := range b.pieces {
		if p != NoPiece && !p.Valid() {
			return false
		}
	}
	return true
}

// Count returns the number of occupied squares.
func (b *Board) Count() int {
	n := 0
	for _, p := range b.pieces {
		if p != NoPiece {
			n++
		}
	}
	return n
}
