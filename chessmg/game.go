package chessmg

import (
	"errors"
	"fmt"
)

var (
	ErrNoGame           = errors.New("game not set up")
	ErrSquareOutOfRange = errors.New("square out of range")
	ErrEmptySquare      = errors.New("no piece on square")
	ErrIllegalMove      = errors.New("move not in generated move list")
)

// Game owns a board, the side to move and the move list generated for it.
// The move list is rebuilt in full after set-up, restore and every completed
// move, and answers every legality query until the next rebuild.
// A Game is not safe for concurrent use.
type Game struct {
	gen     *Generator
	board   Board
	side    Color
	moves   []Move
	started bool
}

// NewGame returns a stopped game using gen, or the default generator when gen is nil.
func NewGame(gen *Generator) *Game {
	if gen == nil {
		gen = NewGenerator()
	}
	return &Game{gen: gen, moves: make([]Move, 0, 64)}
}

// SetUp places pieces from a FEN placement field, gives White the move and
// generates the first move list. On error the game is left unchanged.
func (g *Game) SetUp(placement string) error {
	b, err := ParsePlacement(placement)
	if err != nil {
		return err
	}
	g.board = *b
	g.side = White
	g.started = true
	g.regenerate()
	return nil
}

// SetUpStandard sets up the standard initial position.
func (g *Game) SetUpStandard() {
	if err := g.SetUp(StartingPlacement); err != nil {
		panic(err)
	}
}

// Stop clears the board and the move list. Queries deny until the next SetUp.
func (g *Game) Stop() {
	g.board.Reset()
	g.moves = g.moves[:0]
	g.side = White
	g.started = false
}

// Started reports whether the game has been set up and not stopped.
func (g *Game) Started() bool { return g.started }

func (g *Game) regenerate() {
	g.moves = g.gen.GenerateMovesInto(g.moves, &g.board, g.side)
}

// MoveCompleted records a move the caller has made: the piece on from
// replaces whatever stands on to, the side to move toggles and the move
// list is regenerated. Legality is not checked beyond from != to; see TryMove.
func (g *Game) MoveCompleted(from, to Square) error {
	if !g.started {
		return ErrNoGame
	}
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %d-%d", ErrSquareOutOfRange, from, to)
	}
	if g.board.PieceAt(from) == NoPiece {
		return fmt.Errorf("%w: %s", ErrEmptySquare, from)
	}
	if from == to {
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	g.board.MovePiece(from, to)
	g.side = g.side.Other()
	g.regenerate()
	return nil
}

// TryMove completes the move only if the current move list contains it.
func (g *Game) TryMove(from, to Square) error {
	if !g.started {
		return ErrNoGame
	}
	if !g.CanMoveFromTo(from, to) {
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	return g.MoveCompleted(from, to)
}

// CanMoveFrom reports whether the piece on sq belongs to the side to move
// and has at least one generated move.
func (g *Game) CanMoveFrom(sq Square) bool {
	p := g.board.PieceAt(sq)
	if p == NoPiece || p.Color() != g.side {
		return false
	}
	for _, m := range g.moves {
		if m.From == sq {
			return true
		}
	}
	return false
}

// CanMoveFromTo reports whether a generated move joins from and to.
// The piece type is not compared.
func (g *Game) CanMoveFromTo(from, to Square) bool {
	for _, m := range g.moves {
		if m.From == from && m.To == to {
			return true
		}
	}
	return false
}

// MovesFrom lists the destinations generated for the piece on sq.
func (g *Game) MovesFrom(sq Square) []Square {
	var out []Square
	if !g.CanMoveFrom(sq) {
		return out
	}
	for _, m := range g.moves {
		if m.From == sq {
			out = append(out, m.To)
		}
	}
	return out
}

// Moves returns a copy of the current move list.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// SideToMove reports which side is to play.
func (g *Game) SideToMove() Color { return g.side }

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board }

// Generator returns the generator the game regenerates with.
func (g *Game) Generator() *Generator { return g.gen }

// StateString returns the flat 64-character state of the board.
func (g *Game) StateString() string { return g.board.StateString() }

// Placement returns the FEN placement field of the board.
func (g *Game) Placement() string { return g.board.Placement() }

// Hash returns the Zobrist hash of the board and side to move.
func (g *Game) Hash() uint64 { return g.board.Hash(g.side) }

// RestoreFromStateString replaces the board with a saved flat state, keeps
// the side to move and regenerates. On error the game is left unchanged.
func (g *Game) RestoreFromStateString(s string) error {
	b, err := ParseStateString(s)
	if err != nil {
		return err
	}
	g.board = *b
	g.started = true
	g.regenerate()
	return nil
}

// RestoreWithSide is RestoreFromStateString followed by setting the side to move.
func (g *Game) RestoreWithSide(s string, side Color) error {
	b, err := ParseStateString(s)
	if err != nil {
		return err
	}
	g.board = *b
	g.side = side
	g.started = true
	g.regenerate()
	return nil
}
