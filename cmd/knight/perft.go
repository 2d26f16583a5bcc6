package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/daystram/knight/bench"
)

func perft(logger zerolog.Logger, w io.Writer, depth int, fen string, parallel bool) error {
	logger.Info().Int("depth", depth).Bool("parallel", parallel).Str("fen", fen).Msg("perft")

	out := make(chan string, 64)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for s := range out {
			fmt.Fprintln(w, s)
		}
	}()
	err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	<-printed
	return err
}
