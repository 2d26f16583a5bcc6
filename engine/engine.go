package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/knight/board"
)

const (
	// pollInterval is the number of nodes between two stop checks.
	pollInterval = 2053

	nullMoveReduction = 4
	nullMoveMinDepth  = 4
)

var (
	// ErrNoMove is returned when the searched position has no legal move.
	ErrNoMove = errors.New("no legal move")
)

// Signal is the answer of a stop poll.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalStop
	SignalQuit
)

func DefaultPrinter(a ...any) {
	fmt.Println(a...)
}

type EngineConfig struct {
	// Printer receives protocol output lines.
	Printer func(...any)

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

type SearchConfig struct {
	ClockConfig ClockConfig
	Debug       bool

	// Poll is called every few thousand nodes and must not block.
	Poll func() Signal
}

// SearchInfo is the bookkeeping of the current or last search.
type SearchInfo struct {
	ID            string
	Depth         int
	Nodes         uint64
	FailHigh      uint64
	FailHighFirst uint64
	NullMoves     uint64
	NullCutoffs   uint64
	Stopped       bool
	Quit          bool
}

// Ordering returns the share of beta cutoffs produced by the first move searched.
func (si *SearchInfo) Ordering() float64 {
	if si.FailHigh == 0 {
		return 0
	}
	return float64(si.FailHighFirst) / float64(si.FailHigh)
}

type Engine struct {
	clock   *Clock
	info    SearchInfo
	ctx     context.Context
	poll    func() Signal
	printer func(...any)
	logger  zerolog.Logger
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	e := &Engine{
		clock:   NewClock(),
		printer: cfg.Printer,
		logger:  zerolog.Nop(),
	}
	if e.printer == nil {
		e.printer = DefaultPrinter
	}
	if cfg.Logger != nil {
		e.logger = *cfg.Logger
	}
	return e
}

// Info returns the bookkeeping of the last search.
func (e *Engine) Info() SearchInfo {
	return e.info
}

// Search runs iterative deepening on b and returns the best move of the deepest completed iteration.
// b is restored to its initial position before returning.
func (e *Engine) Search(ctx context.Context, b *board.Board, cfg *SearchConfig) (board.Move, error) {
	if cfg == nil {
		cfg = &SearchConfig{}
	}
	e.ctx = ctx
	e.poll = cfg.Poll
	e.info = SearchInfo{ID: uuid.NewString()}
	log := e.logger.With().Str("search", e.info.ID).Logger()

	start := time.Now()
	e.clock.Start(start, b.Turn(), &cfg.ClockConfig)
	b.ResetSearch()
	log.Debug().
		Str("fen", b.FEN()).
		Stringer("mode", e.clock.Mode()).
		Dur("allocated", e.clock.Allocated()).
		Int("depth", e.clock.TargetDepth()).
		Msg("search started")

	bestMove := board.MoveNone
	for depth := 1; depth <= e.clock.TargetDepth(); depth++ {
		score := e.alphaBeta(b, -board.ScoreInf, board.ScoreInf, depth, true)
		if e.info.Stopped {
			break
		}
		e.info.Depth = depth

		n := b.BestLine(depth)
		pv := b.PV(n)
		if n > 0 {
			bestMove = pv[0]
		}
		elapsed := time.Since(start)
		e.printer(fmt.Sprintf("info score cp %d depth %d nodes %d time %d pv %s",
			score, depth, e.info.Nodes, elapsed.Milliseconds(), formatPV(pv)))
		if cfg.Debug {
			e.printer(message.NewPrinter(language.English).
				Sprintf("info string depth:%d score:%s nodes:%d (%.0fn/s) ordering:%.2f tt:%d t:%s",
					depth, formatScoreDebug(score), e.info.Nodes, float64(e.info.Nodes)/((elapsed + 1).Seconds()),
					e.info.Ordering(), b.TranspositionTable().Stats(), elapsed))
		}
		if abs(score) >= board.ScoreMate-int32(depth) {
			break
		}
	}

	if bestMove == board.MoveNone {
		// the first iteration was interrupted before recording anything
		if mvs := b.LegalMoves(); len(mvs) > 0 {
			bestMove = mvs[0]
		}
	}
	log.Debug().
		Int("depth", e.info.Depth).
		Uint64("nodes", e.info.Nodes).
		Float64("ordering", e.info.Ordering()).
		Uint64("nullcuts", e.info.NullCutoffs).
		Bool("stopped", e.info.Stopped).
		Dur("elapsed", time.Since(start)).
		Str("bestmove", bestMove.UCI()).
		Msg("search finished")
	if bestMove == board.MoveNone {
		return board.MoveNone, ErrNoMove
	}
	return bestMove, nil
}

// checkUp sets the stop flags from the clock, the context and the poll collaborator.
func (e *Engine) checkUp() {
	if e.info.Depth > 0 && e.clock.Expired(time.Now()) {
		e.info.Stopped = true
	}
	if e.clock.DoneByNodes(e.info.Nodes) {
		e.info.Stopped = true
	}
	if e.ctx != nil {
		select {
		case <-e.ctx.Done():
			e.info.Stopped = true
		default:
		}
	}
	if e.poll != nil {
		switch e.poll() {
		case SignalStop:
			e.info.Stopped = true
		case SignalQuit:
			e.info.Stopped = true
			e.info.Quit = true
		}
	}
}

// alphaBeta is a fail-hard negamax. A stopped search returns 0, which callers must discard.
func (e *Engine) alphaBeta(b *board.Board, alpha, beta int32, depth int, nullAllowed bool) int32 {
	if depth <= 0 {
		return e.quiescence(b, alpha, beta)
	}

	e.info.Nodes++
	if e.info.Nodes%pollInterval == 0 {
		e.checkUp()
	}
	if e.info.Stopped {
		return 0
	}

	ply := b.Ply()
	if ply > 0 && (b.IsRepetition() || b.HalfMoveClock() >= 100) {
		return board.ScoreDraw
	}
	if ply > MaxDepth-1 || b.TotalPly() >= board.MaxGamePly {
		return Evaluate(b)
	}

	inCheck := b.IsKingChecked(b.Turn())
	if inCheck {
		depth++
	}

	if nullAllowed && canNullMove(b, depth, inCheck) {
		e.info.NullMoves++
		b.MakeNullMove()
		score := -e.alphaBeta(b, -beta, -beta+1, depth-nullMoveReduction, false)
		b.UnmakeNullMove()
		if e.info.Stopped {
			return 0
		}
		if score >= beta {
			e.info.NullCutoffs++
			return beta
		}
	}

	var ml board.MoveList
	b.GenerateMoves(&ml)
	if pvMove := b.ProbeMove(); pvMove != board.MoveNone {
		if i := ml.Index(pvMove); i >= 0 {
			ml.SetScore(i, board.ScoreTranspositionMove)
		}
	}

	legal := 0
	bestMove := board.MoveNone
	bestScore := -board.ScoreInf
	for i := 0; i < ml.Len(); i++ {
		mv := ml.PickNext(i)
		if !b.MakeMove(mv) {
			continue
		}
		legal++
		score := -e.alphaBeta(b, -beta, -alpha, depth-1, true)
		b.UnmakeMove()
		if e.info.Stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
		if score > alpha {
			if score >= beta {
				if legal == 1 {
					e.info.FailHighFirst++
				}
				e.info.FailHigh++
				if !mv.IsCapture() {
					b.StoreKiller(mv)
				}
				b.StoreMove(mv)
				return beta
			}
			alpha = score
			if !mv.IsCapture() {
				b.AddHistoryScore(mv, depth)
			}
		}
	}

	if legal == 0 {
		if inCheck {
			return -board.ScoreMate + int32(ply)
		}
		return board.ScoreDraw
	}

	b.StoreMove(bestMove)
	return alpha
}

// quiescence resolves captures until the position is quiet. Recursion ends when captures run out or
// the ply limit is reached.
func (e *Engine) quiescence(b *board.Board, alpha, beta int32) int32 {
	e.info.Nodes++
	if e.info.Nodes%pollInterval == 0 {
		e.checkUp()
	}
	if e.info.Stopped {
		return 0
	}

	ply := b.Ply()
	if ply > 0 && (b.IsRepetition() || b.HalfMoveClock() >= 100) {
		return board.ScoreDraw
	}
	if ply > MaxDepth-1 || b.TotalPly() >= board.MaxGamePly {
		return Evaluate(b)
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml board.MoveList
	b.GenerateCaptures(&ml)
	legal := 0
	for i := 0; i < ml.Len(); i++ {
		mv := ml.PickNext(i)
		if !b.MakeMove(mv) {
			continue
		}
		legal++
		score := -e.quiescence(b, -beta, -alpha)
		b.UnmakeMove()
		if e.info.Stopped {
			return 0
		}

		if score > alpha {
			if score >= beta {
				if legal == 1 {
					e.info.FailHighFirst++
				}
				e.info.FailHigh++
				return beta
			}
			alpha = score
			b.StoreMove(mv)
		}
	}
	return alpha
}

// canNullMove reports whether passing the turn may be tried here. It is never tried at the root, in
// check, below the minimum depth or when the mover has only pawns and a king.
func canNullMove(b *board.Board, depth int, inCheck bool) bool {
	return !inCheck &&
		b.Ply() > 0 &&
		depth >= nullMoveMinDepth &&
		b.BigPieces(b.Turn()) > 0
}

func formatPV(pv []board.Move) string {
	builder := strings.Builder{}
	for i, mv := range pv {
		_, _ = builder.WriteString(mv.UCI())
		if i < len(pv)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

func formatScoreDebug(s int32) string {
	if abs(s) >= board.ScoreMate-MaxDepth {
		plies := board.ScoreMate - abs(s)
		if s > 0 {
			return fmt.Sprintf("#+%d", (plies+1)/2)
		}
		return fmt.Sprintf("#-%d", (plies+1)/2)
	}
	if s > 0 {
		return fmt.Sprintf("+%.2f", float64(s)/100)
	}
	if s < 0 {
		return fmt.Sprintf("%.2f", float64(s)/100)
	}
	return "0"
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
