// Package crosscheck compares the pseudo-legal generator against full chess
// move generators. The reference engines filter for king safety and know
// castling, en passant and promotion, so only the piece types the generator
// covers are compared, and extra moves are expected wherever a king walks
// into an attack or a piece is pinned.
package crosscheck

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	mg "chess-board/chessmg"
)

// Pair is a move reduced to its endpoints.
type Pair struct {
	From mg.Square
	To   mg.Square
}

func (p Pair) String() string { return p.From.String() + p.To.String() }

// Oracle produces reference moves for a full FEN string.
type Oracle interface {
	Name() string
	Moves(fen string) ([]Pair, error)
}

var ErrMissingKing = errors.New("reference engines need exactly one king per side")

// ByName returns the oracle registered under name.
func ByName(name string) (Oracle, error) {
	switch name {
	case "dragontooth", "dragontoothmg":
		return Dragontooth{}, nil
	case "notnil", "notnil/chess":
		return Notnil{}, nil
	}
	return nil, fmt.Errorf("unknown oracle %q", name)
}

// Report lists the moves the generator and an oracle disagree on.
type Report struct {
	Oracle  string
	FEN     string
	Missing []string // reference moves the generator did not produce
	Extra   []string // generated moves the reference rejects
}

// Match reports whether both sides produced the same move set.
func (r Report) Match() bool { return len(r.Missing) == 0 && len(r.Extra) == 0 }

// Compare runs gen and the oracle on the same position and diffs the move sets.
func Compare(gen *mg.Generator, o Oracle, b *mg.Board, side mg.Color) (Report, error) {
	if err := checkKings(b); err != nil {
		return Report{}, err
	}
	fen := b.FEN(side)
	report := Report{Oracle: o.Name(), FEN: fen}

	covered := func(p Pair) bool {
		piece := b.PieceAt(p.From)
		switch piece.Type() {
		case mg.PieceTypePawn, mg.PieceTypeKnight:
			return true
		case mg.PieceTypeKing:
			d := p.To.File() - p.From.File()
			return d <= 1 && d >= -1 // castling is out of scope
		case mg.PieceTypeBishop, mg.PieceTypeRook, mg.PieceTypeQueen:
			return gen.SlidingPieces()
		}
		return false
	}

	ours := map[Pair]struct{}{}
	for _, m := range gen.GenerateMoves(b, side) {
		p := Pair{From: m.From, To: m.To}
		if covered(p) {
			ours[p] = struct{}{}
		}
	}

	refMoves, err := o.Moves(fen)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", o.Name(), err)
	}
	theirs := map[Pair]struct{}{}
	for _, p := range refMoves {
		if covered(p) {
			theirs[p] = struct{}{}
		}
	}

	for _, p := range maps.Keys(theirs) {
		if _, ok := ours[p]; !ok {
			report.Missing = append(report.Missing, p.String())
		}
	}
	for _, p := range maps.Keys(ours) {
		if _, ok := theirs[p]; !ok {
			report.Extra = append(report.Extra, p.String())
		}
	}
	slices.Sort(report.Missing)
	slices.Sort(report.Extra)
	return report, nil
}

func checkKings(b *mg.Board) error {
	set := b.Bitboards()
	for _, c := range []mg.Color{mg.White, mg.Black} {
		if len(mg.Squares(set.Pieces(c, mg.PieceTypeKing))) != 1 {
			return fmt.Errorf("%w: %v", ErrMissingKing, c)
		}
	}
	return nil
}
