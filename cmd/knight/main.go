package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/knight/board"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	hashSize = flag.Int("hash", board.DefaultHashSize, "transposition table size in megabytes")
	debug    = flag.Bool("debug", false, "enable debug logging and search statistics")
	profile  = flag.Bool("profile", false, "serve pprof endpoint")

	perftDepth    = flag.Int("perft", 0, "run perft to the given depth and exit")
	perftParallel = flag.Bool("perft.parallel", true, "walk root moves in parallel in perft mode")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	selfplayRun   = flag.Bool("selfplay", false, "run self-play mode")
	selfplayDepth = flag.Int("selfplay.depth", 4, "search depth per move in self-play mode")
	selfplaySteps = flag.Int("selfplay.steps", 100, "maximum plies in self-play mode")
)

func main() {
	flag.Parse()

	logger := newLogger(*debug)
	if *profile {
		runProfiler(logger)
	}

	err := realMain(logger, flag.Args())
	if err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func runProfiler(logger zerolog.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info().Str("url", "http://"+addr+"/debug/pprof").Msg("starting pprof endpoint")
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error().Err(err).Msg("pprof endpoint stopped")
		}
	}()
}

// realMain picks a mode from the flags. Positional arguments form the FEN for the offline modes.
func realMain(logger zerolog.Logger, args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *perftDepth > 0:
		return perft(logger, os.Stdout, *perftDepth, fen, *perftParallel)
	case *movegenRun:
		return movegen(os.Stdout, fen, *movegenDraw)
	case *selfplayRun:
		return selfplay(logger, os.Stdout, fen, *selfplayDepth, *selfplaySteps)
	}
	return runUCI(logger, *hashSize, *debug)
}
