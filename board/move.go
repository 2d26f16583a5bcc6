package board

import (
	"strings"

	"github.com/daystram/knight/position"
)

// Move packs a move into 25 bits:
//
//	0-6   from square
//	7-13  to square
//	14-17 captured piece
//	18    en passant
//	19    pawn double push
//	20-23 promoted piece
//	24    castle
type Move uint32

const (
	MoveNone Move = 0

	moveFlagEnPassant Move = 0x40000
	moveFlagPawnStart Move = 0x80000
	moveFlagCastle    Move = 0x1000000

	moveMaskCapture Move = 0x7C000
	moveMaskPromote Move = 0xF00000
)

func NewMove(from, to position.Pos, captured, promoted Piece, flags Move) Move {
	return Move(uint32(from)) | Move(uint32(to))<<7 | Move(captured)<<14 | Move(promoted)<<20 | flags
}

func (m Move) From() position.Pos {
	return position.Pos(m & 0x7F)
}

func (m Move) To() position.Pos {
	return position.Pos((m >> 7) & 0x7F)
}

func (m Move) Captured() Piece {
	return Piece((m >> 14) & 0xF)
}

func (m Move) Promoted() Piece {
	return Piece((m >> 20) & 0xF)
}

// IsCapture includes en passant.
func (m Move) IsCapture() bool {
	return m&moveMaskCapture != 0
}

func (m Move) IsPromote() bool {
	return m&moveMaskPromote != 0
}

func (m Move) IsEnPassant() bool {
	return m&moveFlagEnPassant != 0
}

func (m Move) IsPawnStart() bool {
	return m&moveFlagPawnStart != 0
}

func (m Move) IsCastle() bool {
	return m&moveFlagCastle != 0
}

func (m Move) String() string {
	return m.UCI()
}

// UCI returns the long algebraic notation of m, e.g. e7e8q.
func (m Move) UCI() string {
	if m == MoveNone {
		return "0000"
	}
	nt := m.From().Notation() + m.To().Notation()
	if m.IsPromote() {
		nt += strings.ToLower(m.Promoted().SymbolFEN())
	}
	return nt
}

// ScoredMove is a generated move with its ordering score.
type ScoredMove struct {
	Move  Move
	Score int32
}

// MoveList is a fixed capacity move buffer, reset on every generation.
type MoveList struct {
	moves [MaxPositionMoves]ScoredMove
	count int
}

func (ml *MoveList) Reset() {
	ml.count = 0
}

func (ml *MoveList) Len() int {
	return ml.count
}

func (ml *MoveList) Add(mv Move, score int32) {
	ml.moves[ml.count] = ScoredMove{Move: mv, Score: score}
	ml.count++
}

func (ml *MoveList) At(i int) ScoredMove {
	return ml.moves[i]
}

func (ml *MoveList) SetScore(i int, score int32) {
	ml.moves[i].Score = score
}

// Index returns the slot of mv, or -1.
func (ml *MoveList) Index(mv Move) int {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].Move == mv {
			return i
		}
	}
	return -1
}

// PickNext swaps the highest scored move of [i, Len) into slot i and returns it.
func (ml *MoveList) PickNext(i int) Move {
	best := i
	for j := i + 1; j < ml.count; j++ {
		if ml.moves[j].Score > ml.moves[best].Score {
			best = j
		}
	}
	ml.moves[i], ml.moves[best] = ml.moves[best], ml.moves[i]
	return ml.moves[i].Move
}

func (ml *MoveList) Moves() []Move {
	mvs := make([]Move, ml.count)
	for i := 0; i < ml.count; i++ {
		mvs[i] = ml.moves[i].Move
	}
	return mvs
}
