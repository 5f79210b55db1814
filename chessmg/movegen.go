package chessmg

// Precomputed destinations for knights and kings from each square, in offset-table order.
var knightTargets [64][]Square
var kingTargets [64][]Square

// Precomputed rays for sliders: the squares walked from sq in a direction,
// nearest first, excluding the origin square.
// Rook directions: 0=N, 1=S, 2=E, 3=W
var rookRays [64][4][]Square

// Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW
var bishopRays [64][4][]Square

// Offsets are (file delta, rank delta).
var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

var rookDirections = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

var bishopDirections = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

func init() {
	initAttackTables()
	initRays()
}

// initAttackTables precomputes knight and king destinations.
func initAttackTables() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for _, off := range knightOffsets {
			if t := NewSquare(file+off[0], rank+off[1]); t != NoSquare {
				knightTargets[sq] = append(knightTargets[sq], t)
			}
		}
		for _, off := range kingOffsets {
			if t := NewSquare(file+off[0], rank+off[1]); t != NoSquare {
				kingTargets[sq] = append(kingTargets[sq], t)
			}
		}
	}
}

// initRays precomputes directional rays for rook and bishop moves.
func initRays() {
	walk := func(file, rank int, dir [2]int) []Square {
		var ray []Square
		for f, r := file+dir[0], rank+dir[1]; ; f, r = f+dir[0], r+dir[1] {
			t := NewSquare(f, r)
			if t == NoSquare {
				return ray
			}
			ray = append(ray, t)
		}
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for d, dir := range rookDirections {
			rookRays[sq][d] = walk(file, rank, dir)
		}
		for d, dir := range bishopDirections {
			bishopRays[sq][d] = walk(file, rank, dir)
		}
	}
}

// Generator produces pseudo-legal moves for a board and side to move.
// The zero value is not ready for use; call NewGenerator.
type Generator struct {
	friendlyCapture bool
	slidingPieces   bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFriendlyCapture controls whether knight and king moves onto squares
// held by the mover's own pieces are emitted. It defaults to true.
func WithFriendlyCapture(allow bool) GeneratorOption {
	return func(g *Generator) { g.friendlyCapture = allow }
}

// WithSlidingPieces enables ray generation for bishops, rooks and queens.
// It defaults to false, in which case those pieces generate no moves.
func WithSlidingPieces(enable bool) GeneratorOption {
	return func(g *Generator) { g.slidingPieces = enable }
}

// NewGenerator returns a generator with the given options applied over the defaults.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{friendlyCapture: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FriendlyCapture reports whether the generator emits moves onto friendly pieces.
func (g *Generator) FriendlyCapture() bool { return g.friendlyCapture }

// SlidingPieces reports whether bishops, rooks and queens generate moves.
func (g *Generator) SlidingPieces() bool { return g.slidingPieces }

var defaultGenerator = NewGenerator()

// GenerateMoves runs the default generator.
func GenerateMoves(b *Board, side Color) []Move {
	return defaultGenerator.GenerateMoves(b, side)
}

// GenerateMoves returns every pseudo-legal move for side. The board is not modified.
func (g *Generator) GenerateMoves(b *Board, side Color) []Move {
	return g.GenerateMovesInto(make([]Move, 0, 64), b, side)
}

// GenerateMovesInto appends the moves into dst[:0] and returns it.
// Order: knights, kings, pawns, then bishops, rooks and queens when enabled;
// ascending origin square within each piece type.
func (g *Generator) GenerateMovesInto(dst []Move, b *Board, side Color) []Move {
	moves := dst[:0]
	set := b.Bitboards()

	ownOcc := set.ColorOccupancy(side)
	oppOcc := set.ColorOccupancy(side.Other())
	allOcc := ownOcc | oppOcc

	var blocked uint64
	if !g.friendlyCapture {
		blocked = ownOcc
	}

	moves = appendStepMoves(moves, set.Pieces(side, PieceTypeKnight), &knightTargets, blocked, PieceTypeKnight)
	moves = appendStepMoves(moves, set.Pieces(side, PieceTypeKing), &kingTargets, blocked, PieceTypeKing)
	moves = appendPawnMoves(moves, set.Pieces(side, PieceTypePawn), side, allOcc, oppOcc)

	if g.slidingPieces {
		moves = g.appendSliderMoves(moves, set.Pieces(side, PieceTypeBishop), PieceTypeBishop, allOcc, oppOcc)
		moves = g.appendSliderMoves(moves, set.Pieces(side, PieceTypeRook), PieceTypeRook, allOcc, oppOcc)
		moves = g.appendSliderMoves(moves, set.Pieces(side, PieceTypeQueen), PieceTypeQueen, allOcc, oppOcc)
	}
	return moves
}

// appendStepMoves emits one move per precomputed target not in blocked.
func appendStepMoves(moves []Move, pieces uint64, targets *[64][]Square, blocked uint64, pt PieceType) []Move {
	for pieces != 0 {
		from := popLSB(&pieces)
		for _, to := range targets[from] {
			if blocked&bb(to) != 0 {
				continue
			}
			moves = append(moves, Move{From: Square(from), To: to, Piece: pt})
		}
	}
	return moves
}

func appendPawnMoves(moves []Move, pawns uint64, side Color, allOcc, oppOcc uint64) []Move {
	direction, startRank := 1, 1
	if side == Black {
		direction, startRank = -1, 6
	}
	for pawns != 0 {
		from := popLSB(&pawns)
		fromSq := Square(from)
		file := from % 8
		rank := from / 8

		// Stop if pawn is already on last rank
		nextRank := rank + direction
		if nextRank < 0 || nextRank >= 8 {
			continue
		}

		one := NewSquare(file, nextRank)
		if allOcc&bb(one) == 0 {
			moves = append(moves, Move{From: fromSq, To: one, Piece: PieceTypePawn})
			if rank == startRank {
				two := NewSquare(file, nextRank+direction)
				if allOcc&bb(two) == 0 {
					moves = append(moves, Move{From: fromSq, To: two, Piece: PieceTypePawn})
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			to := NewSquare(file+df, nextRank)
			if to == NoSquare {
				continue
			}
			if oppOcc&bb(to) != 0 {
				moves = append(moves, Move{From: fromSq, To: to, Piece: PieceTypePawn})
			}
		}
	}
	return moves
}

func (g *Generator) appendSliderMoves(moves []Move, pieces uint64, pt PieceType, allOcc, oppOcc uint64) []Move {
	for pieces != 0 {
		from := popLSB(&pieces)
		if pt == PieceTypeRook || pt == PieceTypeQueen {
			for d := range rookRays[from] {
				moves = g.appendRay(moves, Square(from), rookRays[from][d], pt, allOcc, oppOcc)
			}
		}
		if pt == PieceTypeBishop || pt == PieceTypeQueen {
			for d := range bishopRays[from] {
				moves = g.appendRay(moves, Square(from), bishopRays[from][d], pt, allOcc, oppOcc)
			}
		}
	}
	return moves
}

// appendRay walks a ray until the edge or the first occupied square.
func (g *Generator) appendRay(moves []Move, from Square, ray []Square, pt PieceType, allOcc, oppOcc uint64) []Move {
	for _, to := range ray {
		if allOcc&bb(to) != 0 {
			if oppOcc&bb(to) != 0 || g.friendlyCapture {
				moves = append(moves, Move{From: from, To: to, Piece: pt})
			}
			return moves
		}
		moves = append(moves, Move{From: from, To: to, Piece: pt})
	}
	return moves
}
