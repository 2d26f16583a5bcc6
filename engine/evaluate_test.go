package engine

import (
	"fmt"
	"testing"

	"github.com/daystram/knight/board"
	"github.com/daystram/knight/position"
)

func TestEvaluateSymmetry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		white string
		black string
	}{
		{
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		},
		{
			"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
			"4k3/4p3/8/8/8/8/8/4K3 b - - 0 1",
		},
		{
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			"r3k2r/pppbbppp/2n2q1P/1P2p3/3pn3/BN2PNP1/P1PPQPB1/R3K2R b KQkq - 0 1",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.white, func(t *testing.T) {
			t.Parallel()
			w := Evaluate(newTestBoard(t, tt.white))
			b := Evaluate(newTestBoard(t, tt.black))
			if w != b {
				t.Errorf("unexpected mirrored score: got=%d want=%d", b, w)
			}
		})
	}
}

func TestEvaluatePerspective(t *testing.T) {
	t.Parallel()
	w := Evaluate(newTestBoard(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1"))
	b := Evaluate(newTestBoard(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1"))
	if w <= 0 {
		t.Errorf("unexpected score for side ahead: got=%d want>0", w)
	}
	if b != -w {
		t.Errorf("unexpected score for side behind: got=%d want=%d", b, -w)
	}
}

func TestEvaluateFiftyMoveScaling(t *testing.T) {
	t.Parallel()
	full := Evaluate(newTestBoard(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1"))
	tests := []struct {
		half int
		want int32
	}{
		{0, full},
		{50, full * 50 / 100},
		{99, full * 1 / 100},
		{100, 0},
	}
	for _, tt := range tests {
		b, err := board.NewBoard(board.WithHashSize(1), board.WithFEN(
			fmt.Sprintf("4k3/8/8/8/8/8/8/3QK3 w - - %d 80", tt.half)))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if got := Evaluate(b); got != tt.want {
			t.Errorf("unexpected score at half move %d: got=%d want=%d", tt.half, got, tt.want)
		}
	}
}

func TestPSTIndex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sq   position.Pos
		side board.Side
		want int
	}{
		{position.A1, board.SideWhite, 56},
		{position.H8, board.SideWhite, 7},
		{position.A1, board.SideBlack, 0},
		{position.H8, board.SideBlack, 63},
		{position.E2, board.SideWhite, 52},
		{position.E7, board.SideBlack, 52},
	}
	for _, tt := range tests {
		if got := pstIndex(tt.sq, tt.side); got != tt.want {
			t.Errorf("unexpected index for %s %s: got=%d want=%d", tt.sq, tt.side, got, tt.want)
		}
	}
}
