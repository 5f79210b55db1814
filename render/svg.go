// Package render draws boards as SVG for the UI collaborator.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	mg "chess-board/chessmg"
)

// Unicode glyphs indexed by piece code.
var glyphs = map[mg.Piece]string{
	mg.WhiteKing: "♔", mg.WhiteQueen: "♕", mg.WhiteRook: "♖",
	mg.WhiteBishop: "♗", mg.WhiteKnight: "♘", mg.WhitePawn: "♙",
	mg.BlackKing: "♚", mg.BlackQueen: "♛", mg.BlackRook: "♜",
	mg.BlackBishop: "♝", mg.BlackKnight: "♞", mg.BlackPawn: "♟",
}

// Renderer draws an 8x8 board with optional square highlights.
type Renderer struct {
	SquareSize int
	Light      string
	Dark       string
	Highlight  string
	Selected   string
	Coords     bool
	// FlipBoard draws rank 8 at the bottom (Black's view).
	FlipBoard bool
}

// NewRenderer returns a renderer with the default palette.
func NewRenderer(squareSize int) *Renderer {
	if squareSize <= 0 {
		squareSize = 60
	}
	return &Renderer{
		SquareSize: squareSize,
		Light:      "#f0d9b5",
		Dark:       "#b58863",
		Highlight:  "#9bc86a",
		Selected:   "#f6f669",
		Coords:     true,
	}
}

// Render writes the board. selected is marked when valid; targets get the highlight colour.
func (r *Renderer) Render(w io.Writer, b *mg.Board, selected mg.Square, targets []mg.Square) {
	size := r.SquareSize
	canvas := svg.New(w)
	canvas.Start(size*8, size*8)

	marked := make(map[mg.Square]bool, len(targets))
	for _, t := range targets {
		marked[t] = true
	}

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := mg.NewSquare(file, rank)
			x, y := r.origin(file, rank)

			fill := r.Dark
			if (file+rank)%2 == 1 {
				fill = r.Light
			}
			switch {
			case sq == selected:
				fill = r.Selected
			case marked[sq]:
				fill = r.Highlight
			}
			canvas.Rect(x, y, size, size, "fill:"+fill)

			if g, ok := glyphs[b.PieceAt(sq)]; ok {
				canvas.Text(x+size/2, y+size*3/4, g,
					fmt.Sprintf("font-size:%dpx;text-anchor:middle", size*3/4))
			}
		}
	}

	if r.Coords {
		style := fmt.Sprintf("font-size:%dpx;fill:#333", size/6)
		for i := 0; i < 8; i++ {
			fx, _ := r.origin(i, 0)
			_, ry := r.origin(0, i)
			canvas.Text(fx+size-size/6, size*8-2, string(rune('a'+i)), style)
			canvas.Text(2, ry+size/5, string(rune('1'+i)), style)
		}
	}
	canvas.End()
}

// origin returns the top-left pixel of a square.
func (r *Renderer) origin(file, rank int) (int, int) {
	if r.FlipBoard {
		return (7 - file) * r.SquareSize, rank * r.SquareSize
	}
	return file * r.SquareSize, (7 - rank) * r.SquareSize
}
