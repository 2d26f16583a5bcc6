package engine

import (
	"github.com/daystram/knight/board"
	"github.com/daystram/knight/position"
)

var (
	// PST table taken from https://www.chessprogramming.org/Simplified_Evaluation_Function
	// Rows run from rank 8 down to rank 1, from White's point of view.
	scorePiecePosition = [board.PieceTypeKing + 1][64]int32{
		board.PieceTypePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.PieceTypeKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		board.PieceTypeBishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		board.PieceTypeRook: {
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		board.PieceTypeQueen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		board.PieceTypeKing: {
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}
)

// pstIndex maps a square to its PST slot for side s. Black reads the table mirrored vertically.
func pstIndex(sq position.Pos, s board.Side) int {
	x, y := int(sq.X()), int(sq.Y())
	if s == board.SideWhite {
		return (7-y)*8 + x
	}
	return y*8 + x
}

// Evaluate returns the static score of b in centipawns, positive for the side to move. The score
// shrinks linearly as the fifty move counter runs out.
func Evaluate(b *board.Board) int32 {
	score := b.Material(board.SideWhite) - b.Material(board.SideBlack)
	for p := board.WhitePawn; p <= board.BlackKing; p++ {
		s, t := p.Side(), p.Type()
		for i := 0; i < b.PieceCount(p); i++ {
			v := scorePiecePosition[t][pstIndex(b.PiecePos(p, i), s)]
			if s == board.SideWhite {
				score += v
			} else {
				score -= v
			}
		}
	}
	if b.Turn() == board.SideBlack {
		score = -score
	}
	fifty := int32(min(b.HalfMoveClock(), 100))
	return score * (100 - fifty) / 100
}
