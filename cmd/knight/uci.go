package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/daystram/knight/uci"
)

func runUCI(logger zerolog.Logger, hashSize int, debug bool) error {
	i := uci.NewInterface(
		uci.WithLogger(logger),
		uci.WithHashSize(hashSize),
		uci.WithDebug(debug),
	)
	return i.Run(os.Stdin, os.Stdout)
}
