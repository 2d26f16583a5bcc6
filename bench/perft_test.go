package bench

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/daystram/knight/board"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	// Results obtained from https://www.chessprogramming.org/Perft_Results.
	tests := map[string][]struct {
		depth int
		want  Stats
	}{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1": {
			{depth: 0, want: Stats{Nodes: 1}},
			{depth: 1, want: Stats{Nodes: 20}},
			{depth: 2, want: Stats{Nodes: 400}},
			{depth: 3, want: Stats{Nodes: 8_902, Captures: 34, Checks: 12}},
			{depth: 4, want: Stats{Nodes: 197_281, Captures: 1_576, Checks: 469}},
		},
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1": {
			{depth: 1, want: Stats{Nodes: 48, Captures: 8, Castles: 2}},
			{depth: 2, want: Stats{Nodes: 2_039, Captures: 351, EnPassants: 1, Castles: 91, Checks: 3}},
			{depth: 3, want: Stats{Nodes: 97_862, Captures: 17_102, EnPassants: 45, Castles: 3_162, Checks: 993}},
		},
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1": {
			{depth: 1, want: Stats{Nodes: 14, Captures: 1, Checks: 2}},
			{depth: 2, want: Stats{Nodes: 191, Captures: 14, Checks: 10}},
			{depth: 3, want: Stats{Nodes: 2_812, Captures: 209, EnPassants: 2, Checks: 267}},
			{depth: 4, want: Stats{Nodes: 43_238, Captures: 3_348, EnPassants: 123, Checks: 1_680}},
		},
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1": {
			{depth: 1, want: Stats{Nodes: 6}},
			{depth: 2, want: Stats{Nodes: 264, Captures: 87, Castles: 6, Promotions: 48, Checks: 10}},
			{depth: 3, want: Stats{Nodes: 9_467, Captures: 1_021, EnPassants: 4, Promotions: 120, Checks: 38}},
		},
	}

	for fen, constraints := range tests {
		fen := fen
		for _, tt := range constraints {
			tt := tt
			t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, fen), func(t *testing.T) {
				t.Parallel()
				if testing.Short() && tt.want.Nodes > 10_000 {
					t.Skip("skipping deep perft in short mode")
				}
				b, err := board.NewBoard(board.WithFEN(fen), board.WithHashSize(0))
				if err != nil {
					t.Fatal("unexpected error:", err)
				}

				got := Collect(b, tt.depth)
				if got != tt.want {
					t.Errorf("unexpected stats: got=%+v want=%+v", got, tt.want)
				}
				if n := Count(b, tt.depth); n != tt.want.Nodes {
					t.Errorf("unexpected nodes: got=%d want=%d", n, tt.want.Nodes)
				}
			})
		}
	}
}

func TestPerft(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		parallel bool
	}{
		{"sequential", false},
		{"parallel", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := make(chan string, 64)
			if err := Perft(2, board.DefaultStartingPositionFEN, tt.parallel, true, out); err != nil {
				t.Fatal("unexpected error:", err)
			}
			close(out)

			var lines []string
			for s := range out {
				lines = append(lines, s)
			}
			if len(lines) != 21 {
				t.Fatalf("unexpected line count: got=%d want=21", len(lines))
			}
			for _, line := range lines[:20] {
				if !strings.HasSuffix(line, ": 20") {
					t.Errorf("unexpected divide line: %q", line)
				}
			}
			if summary := lines[20]; !strings.HasPrefix(summary, "d=2 nodes=400 ") {
				t.Errorf("unexpected summary: %q", summary)
			}
		})
	}
}

func TestPerftErrors(t *testing.T) {
	t.Parallel()
	out := make(chan string, 1)
	if err := Perft(-1, board.DefaultStartingPositionFEN, false, false, out); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidDepth)
	}
	if err := Perft(1, "not a fen", false, false, out); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("unexpected error: got=%v want=%v", err, board.ErrInvalidFEN)
	}
	if len(out) != 0 {
		t.Errorf("unexpected output on error: %d lines", len(out))
	}
}
