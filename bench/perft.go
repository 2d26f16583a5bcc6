package bench

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/knight/board"
)

var (
	ErrInvalidDepth = errors.New("invalid depth")
)

// Stats counts the leaves of a perft walk by the kind of move that reached them.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassants += o.EnPassants
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
}

// Perft walks fen to depth, sending a line per root move when verbose and a summary line at the end.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) error {
	if depth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	// perft never probes the table
	b, err := board.NewBoard(board.WithFEN(fen), board.WithHashSize(0))
	if err != nil {
		return err
	}

	var run divideFunc
	if parallel {
		run = divideParallel
	} else {
		run = divide
	}

	start := time.Now()
	s := run(b, depth, verbose, out)
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, s.Nodes, int(float64(s.Nodes)/elapsed.Seconds()), s.Captures, s.EnPassants, s.Castles,
			s.Promotions, s.Checks, elapsed.Seconds())
	return nil
}

// Count returns the number of leaves depth plies below b.
func Count(b *board.Board, depth int) uint64 {
	return Collect(b, depth).Nodes
}

// Collect returns the leaf statistics depth plies below b.
func Collect(b *board.Board, depth int) Stats {
	var s Stats
	walk(b, depth, board.MoveNone, &s)
	return s
}

func walk(b *board.Board, depth int, last board.Move, s *Stats) {
	if depth == 0 {
		s.Nodes++
		if last == board.MoveNone {
			return
		}
		if last.IsCapture() {
			s.Captures++
		}
		if last.IsEnPassant() {
			s.EnPassants++
		}
		if last.IsCastle() {
			s.Castles++
		}
		if last.IsPromote() {
			s.Promotions++
		}
		if b.IsKingChecked(b.Turn()) {
			s.Checks++
		}
		return
	}

	var ml board.MoveList
	b.GenerateMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		mv := ml.At(i).Move
		if !b.MakeMove(mv) {
			continue
		}
		walk(b, depth-1, mv, s)
		b.UnmakeMove()
	}
}

type divideFunc func(b *board.Board, depth int, verbose bool, out chan string) Stats

func divide(b *board.Board, depth int, verbose bool, out chan string) Stats {
	if depth == 0 {
		return Collect(b, 0)
	}

	var total Stats
	for _, mv := range b.LegalMoves() {
		var child Stats
		b.MakeMove(mv)
		walk(b, depth-1, mv, &child)
		b.UnmakeMove()
		if verbose {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child.Nodes)
		}
		total.add(child)
	}
	return total
}

// divideParallel walks every root move on its own clone of b.
func divideParallel(b *board.Board, depth int, verbose bool, out chan string) Stats {
	if depth == 0 {
		return Collect(b, 0)
	}

	moves := b.LegalMoves()
	children := make([]Stats, len(moves))
	var wg sync.WaitGroup
	for k, mv := range moves {
		k, mv := k, mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := b.Clone()
			bb.MakeMove(mv)
			walk(bb, depth-1, mv, &children[k])
			if verbose {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), children[k].Nodes)
			}
		}()
	}
	wg.Wait()

	var total Stats
	for _, child := range children {
		total.add(child)
	}
	return total
}
