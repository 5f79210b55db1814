package chessmg

// Perft counts leaf nodes of the pseudo-legal move tree to the given depth.
// Moves are applied by destination overwrite, so kings may be captured.
// A negative depth counts nothing.
func Perft(g *Generator, b *Board, side Color, depth int) uint64 {
	if depth < 0 {
		return 0
	}
	if depth == 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	work := *b
	return perftRec(g, &work, side, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 64)
	}
	return buf[:0]
}

func perftRec(g *Generator, b *Board, side Color, depth int, pc *perftCtx) uint64 {
	if depth == 0 {
		return 1
	}
	moves := g.GenerateMovesInto(pc.bufFor(depth), b, side)
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for i := 0; i < len(moves); i++ {
		m := moves[i]
		captured := b.pieces[m.To]
		moved := b.pieces[m.From]
		b.MovePiece(m.From, m.To)
		nodes += perftRec(g, b, side.Other(), depth-1, pc)
		b.pieces[m.From] = moved
		b.pieces[m.To] = captured
	}
	return nodes
}

// PerftDivide returns a map from each root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(g *Generator, b *Board, side Color, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range g.GenerateMoves(b, side) {
		next := *b
		next.MovePiece(m.From, m.To)
		result[m] = Perft(g, &next, side.Other(), depth-1)
	}
	return result
}
