package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	mg "chess-board/chessmg"
	"chess-board/render"
)

func main() {
	placement := flag.String("placement", mg.StartingPlacement, "FEN placement field")
	sideFlag := flag.String("side", "w", "Side to move when highlighting: w or b")
	from := flag.String("from", "", "Highlight the generated destinations of the piece on this square")
	out := flag.String("out", "", "Output file (defaults to stdout)")
	size := flag.Int("size", 60, "Square size in pixels")
	flip := flag.Bool("flip", false, "Draw the board from Black's side")
	friendly := flag.Bool("friendly", true, "Allow moves onto squares held by the mover's own pieces")
	sliders := flag.Bool("sliders", false, "Generate bishop, rook and queen moves")
	flag.Parse()

	board, err := mg.ParsePlacement(*placement)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParsePlacement error: %v\n", err)
		os.Exit(2)
	}
	side, ok := mg.ParseColor(*sideFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "-side must be w or b, got %q\n", *sideFlag)
		os.Exit(2)
	}

	selected := mg.NoSquare
	var targets []mg.Square
	if *from != "" {
		if selected, err = mg.ParseSquare(*from); err != nil {
			fmt.Fprintf(os.Stderr, "-from: %v\n", err)
			os.Exit(2)
		}
		gen := mg.NewGenerator(mg.WithFriendlyCapture(*friendly), mg.WithSlidingPieces(*sliders))
		for _, m := range gen.GenerateMoves(board, side) {
			if m.From == selected {
				targets = append(targets, m.To)
			}
		}
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating %s: %v\n", *out, err)
			os.Exit(2)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	r := render.NewRenderer(*size)
	r.FlipBoard = *flip
	r.Render(bw, board, selected, targets)
	if err := bw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}
