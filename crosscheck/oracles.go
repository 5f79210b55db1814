package crosscheck

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	mg "chess-board/chessmg"
)

// Dragontooth uses github.com/dylhunn/dragontoothmg. Both libraries number
// squares a1=0 .. h8=63, so indices carry over unchanged.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) Moves(fen string) ([]Pair, error) {
	board := dragontoothmg.ParseFen(fen)
	moves := board.GenerateLegalMoves()
	out := make([]Pair, 0, len(moves))
	for i := range moves {
		m := moves[i]
		out = append(out, Pair{From: mg.Square(m.From()), To: mg.Square(m.To())})
	}
	return out, nil
}

// Notnil uses github.com/notnil/chess.
type Notnil struct{}

func (Notnil) Name() string { return "notnil/chess" }

func (Notnil) Moves(fen string) ([]Pair, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	game := chess.NewGame(opt)
	moves := game.ValidMoves()
	out := make([]Pair, 0, len(moves))
	for _, m := range moves {
		out = append(out, Pair{From: mg.Square(m.S1()), To: mg.Square(m.S2())})
	}
	return out, nil
}
