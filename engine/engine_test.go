package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/daystram/knight/board"
)

func newTestBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen), board.WithHashSize(1))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func newSilentEngine() *Engine {
	return NewEngine(&EngineConfig{Printer: func(...any) {}})
}

func TestSearchMate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen      string
		wantMove string
	}{
		{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", "a1a8"},
		{"r5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()
			var lines []string
			e := NewEngine(&EngineConfig{Printer: func(a ...any) {
				lines = append(lines, a[0].(string))
			}})
			b := newTestBoard(t, tt.fen)
			mv, err := e.Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: 4}})
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if mv.UCI() != tt.wantMove {
				t.Errorf("unexpected move: got=%s want=%s", mv.UCI(), tt.wantMove)
			}
			if len(lines) == 0 {
				t.Fatal("expected info lines")
			}
			want := "info score cp 28999 "
			if last := lines[len(lines)-1]; !strings.HasPrefix(last, want) {
				t.Errorf("unexpected info line: got=%q want prefix %q", last, want)
			}
		})
	}
}

func TestSearchNoMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
	}{
		{"checkmate", "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 1 1"},
		{"stalemate", "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, tt.fen)
			_, err := newSilentEngine().Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: 3}})
			if !errors.Is(err, ErrNoMove) {
				t.Errorf("unexpected error: got=%v want=%v", err, ErrNoMove)
			}
		})
	}
}

func TestAlphaBetaTerminalScores(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want int32
	}{
		{"checkmate", "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 1 1", -board.ScoreMate},
		{"stalemate", "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1", board.ScoreDraw},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, tt.fen)
			b.ResetSearch()
			e := newSilentEngine()
			if got := e.alphaBeta(b, -board.ScoreInf, board.ScoreInf, 2, true); got != tt.want {
				t.Errorf("unexpected score: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestSearchDeterministic(t *testing.T) {
	t.Parallel()
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	var moves []board.Move
	var nodes []uint64
	for i := 0; i < 2; i++ {
		b := newTestBoard(t, fen)
		e := newSilentEngine()
		mv, err := e.Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: 4}})
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		moves = append(moves, mv)
		nodes = append(nodes, e.Info().Nodes)
	}
	if moves[0] != moves[1] {
		t.Errorf("unexpected move: got=%s want=%s", moves[1], moves[0])
	}
	if nodes[0] != nodes[1] {
		t.Errorf("unexpected nodes: got=%d want=%d", nodes[1], nodes[0])
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	fen, hash := b.FEN(), b.Hash()
	if _, err := newSilentEngine().Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: 4}}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := b.FEN(); got != fen {
		t.Errorf("unexpected fen: got=%s want=%s", got, fen)
	}
	if got := b.Hash(); got != hash {
		t.Errorf("unexpected hash: got=%x want=%x", got, hash)
	}
	if got := b.Ply(); got != 0 {
		t.Errorf("unexpected ply: got=%d want=0", got)
	}
	if err := b.Check(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSearchStop(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tests := []struct {
		name     string
		ctx      context.Context
		cfg      *SearchConfig
		wantQuit bool
	}{
		{
			name: "poll stop",
			ctx:  context.Background(),
			cfg:  &SearchConfig{Poll: func() Signal { return SignalStop }},
		},
		{
			name:     "poll quit",
			ctx:      context.Background(),
			cfg:      &SearchConfig{Poll: func() Signal { return SignalQuit }},
			wantQuit: true,
		},
		{
			name: "context",
			ctx:  ctx,
			cfg:  &SearchConfig{},
		},
		{
			name: "nodes",
			ctx:  context.Background(),
			cfg:  &SearchConfig{ClockConfig: ClockConfig{Nodes: 5000}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, board.DefaultStartingPositionFEN)
			e := newSilentEngine()
			mv, err := e.Search(tt.ctx, b, tt.cfg)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if !b.MoveExists(mv) {
				t.Errorf("unexpected move %s", mv)
			}
			info := e.Info()
			if !info.Stopped {
				t.Error("expected search to be stopped")
			}
			if info.Quit != tt.wantQuit {
				t.Errorf("unexpected quit: got=%v want=%v", info.Quit, tt.wantQuit)
			}
			if got := b.FEN(); got != board.DefaultStartingPositionFEN {
				t.Errorf("unexpected fen: got=%s want=%s", got, board.DefaultStartingPositionFEN)
			}
		})
	}
}

func TestSearchDebugOutput(t *testing.T) {
	t.Parallel()
	var lines []string
	e := NewEngine(&EngineConfig{Printer: func(a ...any) {
		lines = append(lines, a[0].(string))
	}})
	b := newTestBoard(t, board.DefaultStartingPositionFEN)
	if _, err := e.Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: 2}, Debug: true}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(lines) != 4 {
		t.Fatalf("unexpected line count: got=%d want=4 %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "info score cp ") || !strings.Contains(lines[0], " depth 1 ") {
		t.Errorf("unexpected info line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "info string depth:1") {
		t.Errorf("unexpected debug line: %q", lines[1])
	}
	if info := e.Info(); info.ID == "" || info.Depth != 2 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestFormatScoreDebug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score int32
		want  string
	}{
		{0, "0"},
		{150, "+1.50"},
		{-25, "-0.25"},
		{board.ScoreMate - 1, "#+1"},
		{board.ScoreMate - 3, "#+2"},
		{-board.ScoreMate + 2, "#-1"},
	}
	for _, tt := range tests {
		if got := formatScoreDebug(tt.score); got != tt.want {
			t.Errorf("unexpected format for %d: got=%s want=%s", tt.score, got, tt.want)
		}
	}
}

func TestCanNullMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		move  string
		depth int
		want  bool
	}{
		{"quiet with pieces", board.DefaultStartingPositionFEN, "e2e4", nullMoveMinDepth, true},
		{"root", board.DefaultStartingPositionFEN, "", nullMoveMinDepth, false},
		{"shallow", board.DefaultStartingPositionFEN, "e2e4", nullMoveMinDepth - 1, false},
		{"in check", "r3k3/8/8/8/8/8/8/4K2R w - - 0 1", "h1h8", nullMoveMinDepth, false},
		{"pawns and king only", "4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1", "e2e4", nullMoveMinDepth, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, tt.fen)
			b.ResetSearch()
			if tt.move != "" {
				mv, err := b.ParseMove(tt.move)
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				if !b.MakeMove(mv) {
					t.Fatalf("unexpected illegal move %s", tt.move)
				}
			}
			if got := canNullMove(b, tt.depth, b.IsKingChecked(b.Turn())); got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestNullMoveCutoff(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/QQ2K3 b - - 0 1")
	b.ResetSearch()
	mv, err := b.ParseMove("e8e7")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !b.MakeMove(mv) {
		t.Fatal("unexpected illegal move")
	}

	// two queens up, passing the turn still fails high
	e := newSilentEngine()
	if got := e.alphaBeta(b, -100, 100, nullMoveMinDepth, true); got != 100 {
		t.Errorf("unexpected score: got=%d want=100", got)
	}
	if info := e.Info(); info.NullMoves != 1 || info.NullCutoffs != 1 {
		t.Errorf("unexpected null move counters: moves=%d cutoffs=%d", info.NullMoves, info.NullCutoffs)
	}
	if got, want := b.FEN(), "8/4k3/8/8/8/8/8/QQ2K3 w - - 1 2"; got != want {
		t.Errorf("unexpected fen: got=%s want=%s", got, want)
	}
}

func TestSearchNullMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		fen       string
		depth     int
		wantTried bool
	}{
		{"quiet middlegame", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", 5, true},
		{"pawn ending", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", 6, false},
		{"shallow", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", 2, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, tt.fen)
			e := newSilentEngine()
			mv, err := e.Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: tt.depth}})
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if !b.MoveExists(mv) {
				t.Errorf("unexpected move %s", mv)
			}
			info := e.Info()
			if got := info.NullMoves > 0; got != tt.wantTried {
				t.Errorf("unexpected null move attempts: got=%d wantTried=%v", info.NullMoves, tt.wantTried)
			}
			if info.NullCutoffs > info.NullMoves {
				t.Errorf("unexpected null move cutoffs: got=%d attempts=%d", info.NullCutoffs, info.NullMoves)
			}
		})
	}
}

func TestSearchOrderingHeuristics(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, board.DefaultStartingPositionFEN)
	if _, err := newSilentEngine().Search(context.Background(), b, &SearchConfig{ClockConfig: ClockConfig{Depth: 4}}); err != nil {
		t.Fatal("unexpected error:", err)
	}

	var history int32
	mvs := b.LegalMoves()
	for _, mv := range mvs {
		history += b.HistoryScore(b.PieceAt(mv.From()), mv.To())
	}
	if history <= 0 {
		t.Errorf("expected history scores on root moves, got=%d", history)
	}

	// killers are kept per ply, so any reply position shows the ply 1 slots
	if !b.MakeMove(mvs[0]) {
		t.Fatal("unexpected illegal move")
	}
	defer b.UnmakeMove()
	first, _ := b.Killers()
	if first == board.MoveNone {
		t.Fatal("expected a killer move at ply 1")
	}
	if first.IsCapture() {
		t.Errorf("unexpected capture killer %s", first)
	}
}

func TestQuiescenceStoresMove(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	b.ResetSearch()
	e := newSilentEngine()
	if got := e.quiescence(b, -board.ScoreInf, board.ScoreInf); got <= 0 {
		t.Errorf("unexpected score: got=%d want>0", got)
	}
	if got := b.ProbeMove().UCI(); got != "e4d5" {
		t.Errorf("unexpected stored move: got=%s want=e4d5", got)
	}
}

func TestSearchHistoryFull(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, "r3k1n1/8/8/8/8/8/8/R3K1N1 w - - 0 1")
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; b.TotalPly() < board.MaxGamePly-1; i++ {
		mv, err := b.ParseMove(shuffle[i%len(shuffle)])
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if !b.MakeMove(mv) {
			t.Fatalf("unexpected illegal move at ply %d", b.TotalPly())
		}
	}
	b.ResetSearch()
	mv, err := b.ParseMove("a8a1")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !b.MakeMove(mv) {
		t.Fatal("expected the last history slot to be usable")
	}

	// no room for replies, so the node is evaluated rather than scored as mate
	e := newSilentEngine()
	want := Evaluate(b)
	if got := e.alphaBeta(b, -board.ScoreInf, board.ScoreInf, 2, true); got != want {
		t.Errorf("unexpected search score: got=%d want=%d", got, want)
	}
	if got := e.quiescence(b, -board.ScoreInf, board.ScoreInf); got != want {
		t.Errorf("unexpected quiescence score: got=%d want=%d", got, want)
	}
}
