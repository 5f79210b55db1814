package chessmg

import "math/rand"

// Zobrist hashing tables for pieces and side to move.
var zobristPiece [15][64]uint64 // Zobrist keys for piece (index by piece code) on each square
var zobristSide uint64          // Zobrist key for side to move (Black to move)

func init() {
	initZobrist()
}

func initZobrist() {
	// Use a fixed seed so hashes are stable across runs and stored snapshots
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	zobristSide = rnd.Uint64()
}

// Hash calculates the Zobrist hash for the board with the given side to move.
func (b *Board) Hash(side Color) uint64 {
	var key uint64
	for sq, p := range b.pieces {
		if p != NoPiece && p.Valid() {
			key ^= zobristPiece[p][sq]
		}
	}
	if side == Black {
		key ^= zobristSide
	}
	return key
}
