package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/daystram/knight/board"
)

func TestSelfplay(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	// mate in one for White ends the game after the first move
	err := selfplay(zerolog.Nop(), &out, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 3, 10)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if got, want := lines[len(lines)-1], "1.a1a8"; got != want {
		t.Errorf("unexpected history: got=%q want=%q", got, want)
	}
}

func TestFormatHistory(t *testing.T) {
	t.Parallel()
	b, err := board.NewBoard(board.WithHashSize(0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	var mvs []board.Move
	for _, s := range []string{"e2e4", "e7e5", "g1f3"} {
		mv, err := b.ParseMove(s)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		b.MakeMove(mv)
		mvs = append(mvs, mv)
	}

	tests := []struct {
		startPly int
		want     string
	}{
		{0, "1.e2e4 e7e5 2.g1f3"},
		{3, "2...e2e4 3.e7e5 g1f3"},
	}
	for _, tt := range tests {
		if got := formatHistory(mvs, tt.startPly); got != tt.want {
			t.Errorf("unexpected history: got=%q want=%q", got, tt.want)
		}
	}
}

func TestMovegen(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := movegen(&out, board.DefaultStartingPositionFEN, false); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := strings.Count(out.String(), "option "); got != 20 {
		t.Errorf("unexpected option count: got=%d want=20", got)
	}
}

func TestPerftMode(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := perft(zerolog.Nop(), &out, 1, board.DefaultStartingPositionFEN, false); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !strings.Contains(out.String(), "d=1 nodes=20 ") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
