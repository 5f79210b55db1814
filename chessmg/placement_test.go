package chessmg_test

import (
	"errors"
	"strings"
	"testing"

	mg "chess-board/chessmg"
)

var startState = "RNBQKBNR" + "PPPPPPPP" + strings.Repeat("0", 32) + "pppppppp" + "rnbqkbnr"

func TestParsePlacementStart(t *testing.T) {
	b, err := mg.ParsePlacement(mg.StartingPlacement)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if !b.Validate() {
		t.Fatalf("board invariants invalid after placement parse")
	}

	// a1 white rook, e1 white king, a8 black rook, e8 black king
	if b.PieceAt(0) != mg.WhiteRook {
		t.Errorf("expected a1 WhiteRook, got %v", b.PieceAt(0))
	}
	if b.PieceAt(4) != mg.WhiteKing {
		t.Errorf("expected e1 WhiteKing, got %v", b.PieceAt(4))
	}
	if b.PieceAt(56) != mg.BlackRook {
		t.Errorf("expected a8 BlackRook, got %v", b.PieceAt(56))
	}
	if b.PieceAt(60) != mg.BlackKing {
		t.Errorf("expected e8 BlackKing, got %v", b.PieceAt(60))
	}
	if b.Count() != 32 {
		t.Errorf("expected 32 pieces, got %d", b.Count())
	}
}

func TestStartPlacementStateString(t *testing.T) {
	b, err := mg.ParsePlacement(mg.StartingPlacement)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if got := b.StateString(); got != startState {
		t.Fatalf("state string:\n got %s\nwant %s", got, startState)
	}
}

func TestParsePlacementIgnoresTrailingFields(t *testing.T) {
	full, err := mg.ParsePlacement(mg.FENStartPos)
	if err != nil {
		t.Fatalf("ParsePlacement full FEN: %v", err)
	}
	bare, err := mg.ParsePlacement(mg.StartingPlacement)
	if err != nil {
		t.Fatalf("ParsePlacement placement: %v", err)
	}
	if full.StateString() != bare.StateString() {
		t.Fatalf("trailing fields changed the board")
	}

	// Side to move in the FEN is not consulted.
	b, err := mg.ParsePlacement("4k3/8/8/8/8/8/8/4K3 b - - 12 40")
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if b.PieceAt(4) != mg.WhiteKing || b.PieceAt(60) != mg.BlackKing {
		t.Fatalf("kings not placed on e1/e8")
	}
}

func TestParsePlacementErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"nine ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"unknown letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQXBNR"},
		{"short rank", "rnbqkbnr/pppppppp/8/8/7/8/PPPPPPPP/RNBQKBNR"},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"digit overflow", "rnbqkbnr/pppppppp/44p/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"empty rank", "rnbqkbnr//8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"zero digit", "rnbqkbnr/pppppppp/08/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"nine digit", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR"},
	}
	for _, tc := range cases {
		b, err := mg.ParsePlacement(tc.in)
		if err == nil {
			t.Errorf("%s: expected error for %q", tc.name, tc.in)
			continue
		}
		if !errors.Is(err, mg.ErrInvalidPlacement) {
			t.Errorf("%s: error %v does not wrap ErrInvalidPlacement", tc.name, err)
		}
		if b != nil {
			t.Errorf("%s: expected nil board on error", tc.name)
		}
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	placements := []string{
		mg.StartingPlacement,
		"8/8/8/8/8/8/8/8",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R",
		"4k3/8/8/3p4/4P3/2N5/8/4K3",
	}
	for _, p := range placements {
		b, err := mg.ParsePlacement(p)
		if err != nil {
			t.Fatalf("ParsePlacement(%q): %v", p, err)
		}
		if got := b.Placement(); got != p {
			t.Errorf("Placement round trip: got %q want %q", got, p)
		}
	}
}

func TestBoardFEN(t *testing.T) {
	b, err := mg.ParsePlacement(mg.StartingPlacement)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := b.FEN(mg.Black), mg.StartingPlacement+" b - - 0 1"; got != want {
		t.Fatalf("FEN: got %q want %q", got, want)
	}
}
