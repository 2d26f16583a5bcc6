package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/knight/board"
	"github.com/daystram/knight/engine"
)

// selfplay lets the engine play both sides from fen until the game ends or steps plies were played.
func selfplay(logger zerolog.Logger, w io.Writer, fen string, depth, steps int) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Printer: func(a ...any) {
			logger.Debug().Msg(fmt.Sprint(a...))
		},
		Logger: &logger,
	})
	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.FEN())

	var history []board.Move
	startPly := b.FullMoveClock()*2 - 2
	if b.Turn() == board.SideBlack {
		startPly++
	}
	for step := 0; step < steps && b.State().IsRunning(); step++ {
		start := time.Now()
		mv, err := e.Search(context.Background(), b, &engine.SearchConfig{
			ClockConfig: engine.ClockConfig{Depth: depth},
		})
		if err != nil {
			return err
		}
		side := b.Turn()
		if !b.MakeMove(mv) {
			return fmt.Errorf("%w: engine played %s", board.ErrInvalidMove, mv)
		}
		b.ResetPly()
		history = append(history, mv)

		logger.Info().
			Int("move", b.FullMoveClock()).
			Stringer("side", side).
			Str("played", mv.UCI()).
			Uint64("nodes", e.Info().Nodes).
			Dur("took", time.Since(start)).
			Msg("selfplay")
		fmt.Fprintf(w, "\n>>> %s: %s\n", side, mv.UCI())
		fmt.Fprintln(w, b.FEN())
		fmt.Fprintln(w, b.Draw())
	}

	logger.Info().Stringer("state", b.State()).Msg("game ended")
	fmt.Fprintln(w, b.FEN())
	fmt.Fprintln(w, formatHistory(history, startPly))
	return nil
}

// formatHistory numbers the moves the way a move list is usually written, starting at startPly.
func formatHistory(mvs []board.Move, startPly int) string {
	builder := strings.Builder{}
	for i, mv := range mvs {
		ply := startPly + i
		switch {
		case ply%2 == 0:
			_, _ = builder.WriteString(fmt.Sprintf("%d.", ply/2+1))
		case i == 0:
			_, _ = builder.WriteString(fmt.Sprintf("%d...", ply/2+1))
		}
		_, _ = builder.WriteString(mv.UCI())
		if i < len(mvs)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}
