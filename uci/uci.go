package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/knight/bench"
	"github.com/daystram/knight/board"
	"github.com/daystram/knight/engine"
)

const (
	MinHashSize = 1
	MaxHashSize = 4096

	inputBuffer = 64

	// maxGamePly leaves the history stack room for a full depth search.
	maxGamePly = board.MaxGamePly - board.MaxDepth
)

var (
	EngineName   = "Knight"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		hashSize:      board.DefaultHashSize,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	hashSize      int
	parallelPerft bool
}

type Option func(*Interface)

func WithLogger(logger zerolog.Logger) Option {
	return func(i *Interface) {
		i.logger = logger
	}
}

// WithHashSize sets the initial transposition table budget in megabytes.
func WithHashSize(mb int) Option {
	return func(i *Interface) {
		if mb >= MinHashSize && mb <= MaxHashSize {
			i.options.hashSize = mb
		}
	}
}

func WithDebug(debug bool) Option {
	return func(i *Interface) {
		i.options.debug = debug
	}
}

// Interface drives one board and one engine from a line based command stream.
type Interface struct {
	board   *board.Board
	tt      *board.TranspositionTable
	engine  *engine.Engine
	options options
	logger  zerolog.Logger

	out     io.Writer
	input   <-chan string
	pending []string
}

func NewInterface(opts ...Option) *Interface {
	i := &Interface{
		options: defaultOptions,
		logger:  zerolog.Nop(),
	}
	for _, f := range opts {
		f(i)
	}
	return i
}

// Run processes commands from r until quit or the end of input, writing protocol output to w.
func (i *Interface) Run(r io.Reader, w io.Writer) error {
	i.out = w
	i.pending = nil

	input := make(chan string, inputBuffer)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case input <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()
	i.input = input

	i.tt = board.NewTranspositionTable(i.options.hashSize)
	i.reset()
	for {
		cmd, ok := i.next()
		if !ok {
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}
		if quit := i.handle(cmd); quit {
			return nil
		}
	}
}

// next returns the oldest requeued line, or blocks on the reader.
func (i *Interface) next() (string, bool) {
	if len(i.pending) > 0 {
		cmd := i.pending[0]
		i.pending = i.pending[1:]
		return cmd, true
	}
	if i.input == nil {
		return "", false
	}
	cmd, ok := <-i.input
	if !ok {
		i.input = nil
	}
	return cmd, ok
}

// handle runs a single command and reports whether the loop should end.
func (i *Interface) handle(cmd string) bool {
	args := strings.Fields(cmd)
	if len(args) == 0 {
		return false
	}
	i.logger.Debug().Str("cmd", cmd).Msg("received")

	switch args[0] {
	case "uci":
		i.commandUCI()
	case "ucinewgame":
		i.reset()
	case "isready":
		i.commandReady()
	case "setoption":
		i.commandSetOption(args[1:])
	case "position":
		i.commandPosition(args[1:])
	case "d":
		i.commandDraw()
	case "evaluate":
		i.commandEvaluate()
	case "go":
		return i.commandGo(args[1:])
	case "stop":
		// nothing is running outside a search
	case "quit":
		return true
	default:
		i.logger.Warn().Str("cmd", cmd).Msg("unknown command")
	}
	return false
}

// poll answers the engine between nodes without blocking. A line other than stop, quit or isready
// ends the search and is handled once bestmove has been sent.
func (i *Interface) poll() engine.Signal {
	for {
		select {
		case cmd, ok := <-i.input:
			if !ok {
				i.input = nil
				return engine.SignalNone
			}
			switch strings.TrimSpace(cmd) {
			case "":
				continue
			case "stop":
				return engine.SignalStop
			case "quit":
				return engine.SignalQuit
			case "isready":
				i.commandReady()
				continue
			default:
				i.pending = append(i.pending, cmd)
				return engine.SignalStop
			}
		default:
			return engine.SignalNone
		}
	}
}

func (i *Interface) commandUCI() {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Hash type spin default %d min %d max %d", defaultOptions.hashSize, MinHashSize, MaxHashSize))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println("uciok")
}

func (i *Interface) commandReady() {
	if i.board != nil && i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		i.logger.Warn().Strs("args", args).Msg("malformed setoption")
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			i.logger.Warn().Err(err).Msg("invalid debug value")
			return
		}
		i.options.debug = value
	case "hash":
		value, err := strconv.Atoi(valueStr)
		if err != nil || value < MinHashSize || value > MaxHashSize {
			i.logger.Warn().Str("value", valueStr).Msg("invalid hash size")
			return
		}
		i.options.hashSize = value
		i.tt.Init(value)
		i.logger.Info().Int("mb", value).Int("entries", i.tt.Len()).Msg("transposition table resized")
	default:
		i.logger.Warn().Str("name", args[1]).Msg("unknown option")
	}
}

func (i *Interface) commandPosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for j, arg := range args {
		if arg == "moves" {
			movesAt = j
			break
		}
	}

	fen := board.DefaultStartingPositionFEN
	switch args[0] {
	case "startpos":
	case "fen":
		fen = strings.Join(args[1:movesAt], " ")
	default:
		i.logger.Warn().Str("kind", args[0]).Msg("unknown position kind, using starting position")
	}

	b, err := board.NewBoard(board.WithFEN(fen), board.WithTranspositionTable(i.tt))
	if err != nil {
		i.logger.Warn().Err(err).Str("fen", fen).Msg("falling back to starting position")
		b, _ = board.NewBoard(board.WithTranspositionTable(i.tt))
	}

	if movesAt < len(args) {
		for _, notation := range args[movesAt+1:] {
			if b.TotalPly() >= maxGamePly {
				i.logger.Warn().Int("ply", b.TotalPly()).Str("move", notation).Msg("game history full, stopped applying moves")
				break
			}
			mv, err := b.ParseMove(notation)
			if err == nil && !b.MakeMove(mv) {
				err = fmt.Errorf("%w: %s leaves the king in check", board.ErrInvalidMove, notation)
			}
			if err != nil {
				i.logger.Warn().Err(err).Msg("stopped applying moves")
				break
			}
			b.ResetPly()
		}
	}
	i.board = b
}

func (i *Interface) commandDraw() {
	i.println(i.board.Draw())
	i.println(i.board.DebugString())
}

func (i *Interface) commandEvaluate() {
	i.println(engine.Evaluate(i.board))
}

// commandGo runs a search, or perft, to completion and reports whether a quit arrived meanwhile.
func (i *Interface) commandGo(args []string) bool {
	if len(args) > 0 && args[0] == "perft" {
		i.commandPerft(args[1:])
		return false
	}

	cfg, err := parseGo(args)
	if err != nil {
		i.logger.Warn().Err(err).Msg("ignoring go parameter")
	}

	bestMove, err := i.engine.Search(context.Background(), i.board, &engine.SearchConfig{
		ClockConfig: cfg,
		Debug:       i.options.debug,
		Poll:        i.poll,
	})
	if err != nil && !errors.Is(err, engine.ErrNoMove) {
		i.logger.Error().Err(err).Msg("search failed")
	}
	i.println(fmt.Sprintf("bestmove %s", bestMove.UCI()))
	return i.engine.Info().Quit
}

func (i *Interface) commandPerft(args []string) {
	if len(args) != 1 {
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		i.logger.Warn().Str("depth", args[0]).Msg("invalid perft depth")
		return
	}

	out := make(chan string, inputBuffer)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for s := range out {
			i.println(s)
		}
	}()
	if err := bench.Perft(depth, i.board.FEN(), i.options.parallelPerft, true, out); err != nil {
		i.logger.Error().Err(err).Msg("perft failed")
	}
	close(out)
	<-printed
}

// parseGo reads the search limits of a go command. Malformed values are skipped and the last error is
// returned alongside whatever parsed.
func parseGo(args []string) (engine.ClockConfig, error) {
	var cfg engine.ClockConfig
	var lastErr error
	for j := 0; j < len(args); j++ {
		key := args[j]
		switch key {
		case "infinite":
			cfg.Infinite = true
			continue
		case "depth", "nodes", "movetime", "wtime", "btime", "winc", "binc", "movestogo":
		default:
			lastErr = fmt.Errorf("unknown parameter %s", key)
			continue
		}
		if j+1 >= len(args) {
			lastErr = fmt.Errorf("missing value for %s", key)
			break
		}
		j++
		value, err := strconv.ParseInt(args[j], 10, 64)
		if err != nil {
			lastErr = fmt.Errorf("invalid value for %s: %w", key, err)
			continue
		}
		ms := time.Duration(value) * time.Millisecond
		switch key {
		case "depth":
			cfg.Depth = int(value)
		case "nodes":
			if value > 0 {
				cfg.Nodes = uint64(value)
			}
		case "movetime":
			cfg.Movetime = ms
		case "wtime":
			cfg.WhiteTime = ms
		case "btime":
			cfg.BlackTime = ms
		case "winc":
			cfg.WhiteIncrement = ms
		case "binc":
			cfg.BlackIncrement = ms
		case "movestogo":
			cfg.MovesToGo = int(value)
		}
	}
	return cfg, lastErr
}

func (i *Interface) reset() {
	i.tt.Clear()
	i.commandPosition([]string{"startpos"})
	i.engine = engine.NewEngine(&engine.EngineConfig{
		Printer: i.println,
		Logger:  &i.logger,
	})
}

func (i *Interface) println(a ...any) {
	fmt.Fprintln(i.out, a...)
}
