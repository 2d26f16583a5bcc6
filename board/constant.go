package board

import (
	"github.com/daystram/knight/position"
)

const (
	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// MaxDepth is the deepest ply the search tables support.
	MaxDepth = 64

	// MaxPositionMoves is the capacity of a MoveList.
	MaxPositionMoves = 256

	// MaxGamePly is the capacity of the history stack.
	MaxGamePly = 5898

	// DefaultHashSize is the transposition table budget in megabytes.
	DefaultHashSize = 64

	// DefaultTablesSeed seeds the Zobrist keys of DefaultTables.
	DefaultTablesSeed uint64 = 0x9D39247E33776D41

	maxPieceSlots = 10
)

const (
	ScoreDraw int32 = 0
	ScoreMate int32 = 29000
	ScoreInf  int32 = 30000
)

// Move ordering tiers.
const (
	ScoreTranspositionMove int32 = 2_000_000
	ScoreCapturesFirst     int32 = 1_000_000
	ScoreKillerFirst       int32 = 900_000
	ScoreKillerSecond      int32 = 800_000
)

var (
	dirKing   = []position.Pos{-1, -10, 1, 10, -9, -11, 11, 9}
	dirRook   = []position.Pos{-1, -10, 1, 10}
	dirBishop = []position.Pos{-9, -11, 11, 9}
	dirKnight = []position.Pos{-8, -19, -21, -12, 8, 19, 21, 12}

	// pieceDirs is indexed by PieceType.
	pieceDirs = [PieceTypeKing + 1][]position.Pos{
		PieceTypeKnight: dirKnight,
		PieceTypeBishop: dirBishop,
		PieceTypeRook:   dirRook,
		PieceTypeQueen:  dirKing,
		PieceTypeKing:   dirKing,
	}

	// pieceValue is indexed by PieceType.
	pieceValue = [PieceTypeKing + 1]int32{
		PieceTypePawn:   100,
		PieceTypeKnight: 325,
		PieceTypeBishop: 350,
		PieceTypeRook:   550,
		PieceTypeQueen:  1000,
		PieceTypeKing:   50000,
	}

	// Pawn ranks and deltas, indexed by Side.
	pawnStartRank   = [2]position.Pos{1, 6}
	pawnPromoteRank = [2]position.Pos{7, 0}
	pawnForward     = [2]position.Pos{10, -10}
	pawnCaptures    = [2][2]position.Pos{{9, 11}, {-9, -11}}
)
