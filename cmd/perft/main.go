package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	mg "chess-board/chessmg"
	"chess-board/crosscheck"
)

func main() {
	placement := flag.String("placement", mg.StartingPlacement, "FEN placement field (trailing FEN fields are ignored)")
	sideFlag := flag.String("side", "w", "Side to move: w or b")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	friendly := flag.Bool("friendly", true, "Allow moves onto squares held by the mover's own pieces")
	sliders := flag.Bool("sliders", false, "Generate bishop, rook and queen moves")
	oracle := flag.String("crosscheck", "", "Compare root moves against a reference generator: dragontooth or notnil")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
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
	gen := mg.NewGenerator(mg.WithFriendlyCapture(*friendly), mg.WithSlidingPieces(*sliders))

	if *oracle != "" {
		os.Exit(runCrosscheck(gen, *oracle, board, side))
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *divide {
		div := mg.PerftDivide(gen, board, side, *depth)
		lines := make([]string, 0, len(div))
		var sum uint64
		for _, m := range maps.Keys(div) {
			lines = append(lines, fmt.Sprintf("%s: %d", m, div[m]))
			sum += div[m]
		}
		slices.Sort(lines)
		fmt.Println(strings.Join(lines, "\n"))
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += mg.Perft(gen, board, side, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

func runCrosscheck(gen *mg.Generator, name string, board *mg.Board, side mg.Color) int {
	o, err := crosscheck.ByName(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	rep, err := crosscheck.Compare(gen, o, board, side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crosscheck: %v\n", err)
		return 2
	}
	fmt.Printf("%s vs %s\n", o.Name(), rep.FEN)
	if rep.Match() {
		fmt.Println("match")
		return 0
	}
	if len(rep.Missing) > 0 {
		fmt.Printf("missing: %s\n", strings.Join(rep.Missing, " "))
	}
	if len(rep.Extra) > 0 {
		fmt.Printf("extra:   %s\n", strings.Join(rep.Extra, " "))
	}
	return 1
}
