package board

import (
	"errors"
	"fmt"

	"github.com/daystram/knight/position"
)

var (
	// ErrInvalidFEN represents an unparsable or inconsistent FEN record.
	ErrInvalidFEN = errors.New("invalid fen")

	// ErrInvalidMove represents a move text that does not name a generated move.
	ErrInvalidMove = errors.New("invalid move")

	// ErrCorrupted is returned by Check when an incremental field disagrees with the squares.
	ErrCorrupted = errors.New("corrupted board")
)

// undo holds the state a move cannot restore from the board alone.
type undo struct {
	move          Move
	castleRights  CastleRights
	enPassant     position.Pos
	halfMoveClock int
	fullMoveClock int
	hash          uint64
}

// Board is a mutable chess position on a padded 10x12 mailbox. All incremental fields (piece lists,
// counters, pawn bitmaps, hash) are kept in step by addPiece, removePiece and movePiece.
type Board struct {
	t *Tables

	squares    [position.Size]Piece
	pieceList  [PieceKinds][maxPieceSlots]position.Pos
	pieceCount [PieceKinds]uint8
	pawns      [3]bitmap
	kingPos    [2]position.Pos

	bigPieces   [2]uint8
	majorPieces [2]uint8
	minorPieces [2]uint8
	material    [2]int32

	turn          Side
	enPassant     position.Pos
	castleRights  CastleRights
	halfMoveClock int
	fullMoveClock int
	ply           int
	totalPly      int
	hash          uint64

	history [MaxGamePly]undo

	// search support
	killers       [2][MaxDepth]Move
	searchHistory [PieceKinds][position.Size]int32
	pv            [MaxDepth]Move
	tt            *TranspositionTable
}

type boardConfig struct {
	fen      string
	tables   *Tables
	hashSize int
	tt       *TranspositionTable
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func WithTables(t *Tables) BoardOption {
	return func(cfg *boardConfig) {
		cfg.tables = t
	}
}

// WithHashSize sets the transposition table budget in megabytes.
func WithHashSize(mb int) BoardOption {
	return func(cfg *boardConfig) {
		cfg.hashSize = mb
	}
}

// WithTranspositionTable shares an existing table instead of allocating one.
func WithTranspositionTable(tt *TranspositionTable) BoardOption {
	return func(cfg *boardConfig) {
		cfg.tt = tt
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen:      DefaultStartingPositionFEN,
		tables:   DefaultTables,
		hashSize: DefaultHashSize,
	}
	for _, f := range opts {
		f(cfg)
	}
	if cfg.tt == nil {
		cfg.tt = NewTranspositionTable(cfg.hashSize)
	}
	b := &Board{
		t:  cfg.tables,
		tt: cfg.tt,
	}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset empties the board. Tables and the transposition table are kept.
func (b *Board) Reset() {
	for sq := range b.squares {
		b.squares[sq] = PieceOffboard
	}
	for i := 0; i < position.Size64; i++ {
		b.squares[b.t.Sq120(i)] = PieceNone
	}
	b.pieceList = [PieceKinds][maxPieceSlots]position.Pos{}
	b.pieceCount = [PieceKinds]uint8{}
	b.pawns = [3]bitmap{}
	b.kingPos = [2]position.Pos{position.NoSquare, position.NoSquare}
	b.bigPieces = [2]uint8{}
	b.majorPieces = [2]uint8{}
	b.minorPieces = [2]uint8{}
	b.material = [2]int32{}
	b.turn = SideWhite
	b.enPassant = position.NoSquare
	b.castleRights = CastleRightsNone
	b.halfMoveClock = 0
	b.fullMoveClock = 1
	b.ply = 0
	b.totalPly = 0
	b.hash = 0
	b.killers = [2][MaxDepth]Move{}
	b.searchHistory = [PieceKinds][position.Size]int32{}
	b.pv = [MaxDepth]Move{}
}

// ResetSearch clears the move ordering heuristics and the transposition table, and makes the current
// position the search root.
func (b *Board) ResetSearch() {
	b.killers = [2][MaxDepth]Move{}
	b.searchHistory = [PieceKinds][position.Size]int32{}
	b.pv = [MaxDepth]Move{}
	if b.tt != nil {
		b.tt.Clear()
	}
	b.ply = 0
}

// ResetPly makes the current position the search root without touching the heuristics.
func (b *Board) ResetPly() {
	b.ply = 0
}

// Clone returns an independent copy sharing the immutable tables and the transposition table.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

func (b *Board) addPiece(p Piece, sq position.Pos) {
	s := p.Side()
	b.hash ^= b.t.pieceKeys[p][sq]
	b.squares[sq] = p
	if p.IsBig() {
		b.bigPieces[s]++
		if p.IsMajor() {
			b.majorPieces[s]++
		} else {
			b.minorPieces[s]++
		}
	}
	switch p.Type() {
	case PieceTypePawn:
		b.pawns[s].Set(b.t.Sq64(sq))
		b.pawns[SideBoth].Set(b.t.Sq64(sq))
	case PieceTypeKing:
		b.kingPos[s] = sq
	}
	b.material[s] += p.Value()
	b.pieceList[p][b.pieceCount[p]] = sq
	b.pieceCount[p]++
}

func (b *Board) removePiece(sq position.Pos) {
	p := b.squares[sq]
	s := p.Side()
	b.hash ^= b.t.pieceKeys[p][sq]
	b.squares[sq] = PieceNone
	if p.IsBig() {
		b.bigPieces[s]--
		if p.IsMajor() {
			b.majorPieces[s]--
		} else {
			b.minorPieces[s]--
		}
	}
	if p.Type() == PieceTypePawn {
		b.pawns[s].Unset(b.t.Sq64(sq))
		b.pawns[SideBoth].Unset(b.t.Sq64(sq))
	}
	b.material[s] -= p.Value()

	last := b.pieceCount[p] - 1
	for i := uint8(0); i <= last; i++ {
		if b.pieceList[p][i] == sq {
			b.pieceList[p][i] = b.pieceList[p][last]
			break
		}
	}
	b.pieceCount[p]--
}

func (b *Board) movePiece(from, to position.Pos) {
	p := b.squares[from]
	s := p.Side()
	b.hash ^= b.t.pieceKeys[p][from]
	b.squares[from] = PieceNone
	b.hash ^= b.t.pieceKeys[p][to]
	b.squares[to] = p
	switch p.Type() {
	case PieceTypePawn:
		b.pawns[s].Unset(b.t.Sq64(from))
		b.pawns[SideBoth].Unset(b.t.Sq64(from))
		b.pawns[s].Set(b.t.Sq64(to))
		b.pawns[SideBoth].Set(b.t.Sq64(to))
	case PieceTypeKing:
		b.kingPos[s] = to
	}
	for i := uint8(0); i < b.pieceCount[p]; i++ {
		if b.pieceList[p][i] == from {
			b.pieceList[p][i] = to
			break
		}
	}
}

// ComputeHash recomputes the Zobrist key from scratch.
func (b *Board) ComputeHash() uint64 {
	var h uint64
	for i := 0; i < position.Size64; i++ {
		sq := b.t.Sq120(i)
		if p := b.squares[sq]; p.IsPiece() {
			h ^= b.t.pieceKeys[p][sq]
		}
	}
	if b.turn == SideWhite {
		h ^= b.t.sideKey
	}
	if b.enPassant != position.NoSquare {
		h ^= b.t.enPassantKey(b.enPassant)
	}
	h ^= b.t.castleKeys[b.castleRights]
	return h
}

// Check verifies every incremental field against the squares.
func (b *Board) Check() error {
	var (
		count    [PieceKinds]uint8
		big      [2]uint8
		major    [2]uint8
		minor    [2]uint8
		material [2]int32
		pawns    [3]bitmap
	)
	for p := WhitePawn; p <= BlackKing; p++ {
		for i := uint8(0); i < b.pieceCount[p]; i++ {
			sq := b.pieceList[p][i]
			if b.squares[sq] != p {
				return fmt.Errorf("%w: piece list of %s holds %s", ErrCorrupted, p, sq)
			}
		}
	}
	for i := 0; i < position.Size64; i++ {
		sq := b.t.Sq120(i)
		p := b.squares[sq]
		if p == PieceNone {
			continue
		}
		if !p.IsPiece() {
			return fmt.Errorf("%w: marker %d on %s", ErrCorrupted, p, sq)
		}
		s := p.Side()
		count[p]++
		if p.IsBig() {
			big[s]++
		}
		if p.IsMajor() {
			major[s]++
		}
		if p.IsMinor() {
			minor[s]++
		}
		material[s] += p.Value()
		if p.Type() == PieceTypePawn {
			pawns[s].Set(i)
			pawns[SideBoth].Set(i)
		}
	}
	if count != b.pieceCount {
		return fmt.Errorf("%w: piece count", ErrCorrupted)
	}
	if big != b.bigPieces || major != b.majorPieces || minor != b.minorPieces {
		return fmt.Errorf("%w: piece class counters", ErrCorrupted)
	}
	if material != b.material {
		return fmt.Errorf("%w: material got=%v want=%v", ErrCorrupted, b.material, material)
	}
	if pawns != b.pawns {
		return fmt.Errorf("%w: pawn bitmaps", ErrCorrupted)
	}
	if b.squares[b.kingPos[SideWhite]] != WhiteKing || b.squares[b.kingPos[SideBlack]] != BlackKing {
		return fmt.Errorf("%w: king squares", ErrCorrupted)
	}
	if b.enPassant != position.NoSquare {
		if (b.turn == SideWhite && b.enPassant.Y() != 5) || (b.turn == SideBlack && b.enPassant.Y() != 2) {
			return fmt.Errorf("%w: en passant square %s", ErrCorrupted, b.enPassant)
		}
	}
	if h := b.ComputeHash(); h != b.hash {
		return fmt.Errorf("%w: hash got=%x want=%x", ErrCorrupted, b.hash, h)
	}
	return nil
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) Ply() int {
	return b.ply
}

func (b *Board) TotalPly() int {
	return b.totalPly
}

func (b *Board) HalfMoveClock() int {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() int {
	return b.fullMoveClock
}

func (b *Board) EnPassant() position.Pos {
	return b.enPassant
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

func (b *Board) PieceAt(sq position.Pos) Piece {
	return b.squares[sq]
}

func (b *Board) PieceCount(p Piece) int {
	return int(b.pieceCount[p])
}

// PiecePos returns the square of the i-th piece of kind p, in no particular order.
func (b *Board) PiecePos(p Piece, i int) position.Pos {
	return b.pieceList[p][i]
}

func (b *Board) KingPos(s Side) position.Pos {
	return b.kingPos[s]
}

func (b *Board) Material(s Side) int32 {
	return b.material[s]
}

func (b *Board) BigPieces(s Side) int {
	return int(b.bigPieces[s])
}

func (b *Board) MajorPieces(s Side) int {
	return int(b.majorPieces[s])
}

func (b *Board) MinorPieces(s Side) int {
	return int(b.minorPieces[s])
}

// Pawns returns the pawn occupancy of s in 0-63 numbering.
func (b *Board) Pawns(s Side) uint64 {
	return uint64(b.pawns[s])
}

func (b *Board) Tables() *Tables {
	return b.t
}

func (b *Board) TranspositionTable() *TranspositionTable {
	return b.tt
}

// LastMove returns the move that led to the current position.
func (b *Board) LastMove() Move {
	if b.totalPly == 0 {
		return MoveNone
	}
	return b.history[b.totalPly-1].move
}

func (b *Board) IsKingChecked(s Side) bool {
	return b.IsSquareAttacked(b.kingPos[s], s.Opposite())
}

// IsRepetition looks for the current key among earlier positions with the same side to move, going
// back no further than the last irreversible move.
func (b *Board) IsRepetition() bool {
	for i := 4; i <= b.halfMoveClock && i <= b.totalPly; i += 2 {
		if b.history[b.totalPly-i].hash == b.hash {
			return true
		}
	}
	return false
}

// StoreKiller records a quiet move that caused a beta cutoff at the current ply.
func (b *Board) StoreKiller(mv Move) {
	if b.ply >= MaxDepth || b.killers[0][b.ply] == mv {
		return
	}
	b.killers[1][b.ply] = b.killers[0][b.ply]
	b.killers[0][b.ply] = mv
}

func (b *Board) Killers() (Move, Move) {
	if b.ply >= MaxDepth {
		return MoveNone, MoveNone
	}
	return b.killers[0][b.ply], b.killers[1][b.ply]
}

// AddHistoryScore rewards a quiet move that raised alpha. Must be called before the move is made.
func (b *Board) AddHistoryScore(mv Move, depth int) {
	b.searchHistory[b.squares[mv.From()]][mv.To()] += int32(depth)
}

func (b *Board) HistoryScore(p Piece, to position.Pos) int32 {
	return b.searchHistory[p][to]
}
