package board

import "github.com/daystram/knight/position"

// Tables holds the immutable lookup data shared by boards: square mappings, castle permission
// masks and Zobrist keys. Build one with NewTables and never mutate it afterwards.
type Tables struct {
	sq64  [position.Size]int8
	sq120 [position.Size64]position.Pos
	files [position.Size]int8
	ranks [position.Size]int8

	// castlePerm is ANDed into the castle rights for both squares of every move.
	castlePerm [position.Size]CastleRights

	pieceKeys  [PieceKinds][position.Size]uint64
	sideKey    uint64
	castleKeys [16]uint64
}

// DefaultTables is used by boards built without WithTables.
var DefaultTables = NewTables(DefaultTablesSeed)

func NewTables(seed uint64) *Tables {
	t := &Tables{}
	for sq := 0; sq < position.Size; sq++ {
		t.sq64[sq] = -1
		t.files[sq] = -1
		t.ranks[sq] = -1
		t.castlePerm[sq] = CastleRightsAll
	}
	for i := 0; i < position.Size64; i++ {
		sq := position.NewPosFrom64(i)
		t.sq120[i] = sq
		t.sq64[sq] = int8(i)
		t.files[sq] = int8(sq.X())
		t.ranks[sq] = int8(sq.Y())
	}

	t.castlePerm[position.A1] &^= maskCastleRights[CastleDirectionWhiteLeft]
	t.castlePerm[position.H1] &^= maskCastleRights[CastleDirectionWhiteRight]
	t.castlePerm[position.E1] &^= maskCastleRights[CastleDirectionWhiteLeft] | maskCastleRights[CastleDirectionWhiteRight]
	t.castlePerm[position.A8] &^= maskCastleRights[CastleDirectionBlackLeft]
	t.castlePerm[position.H8] &^= maskCastleRights[CastleDirectionBlackRight]
	t.castlePerm[position.E8] &^= maskCastleRights[CastleDirectionBlackLeft] | maskCastleRights[CastleDirectionBlackRight]

	r := NewPseudoRand(seed)
	for p := range t.pieceKeys {
		for sq := range t.pieceKeys[p] {
			t.pieceKeys[p][sq] = r.Uint64()
		}
	}
	t.sideKey = r.Uint64()
	for i := range t.castleKeys {
		t.castleKeys[i] = r.Uint64()
	}
	return t
}

// Sq64 maps a padded square to 0-63, or -1 for walls.
func (t *Tables) Sq64(sq position.Pos) int {
	return int(t.sq64[sq])
}

func (t *Tables) Sq120(i int) position.Pos {
	return t.sq120[i]
}

func (t *Tables) File(sq position.Pos) int {
	return int(t.files[sq])
}

func (t *Tables) Rank(sq position.Pos) int {
	return int(t.ranks[sq])
}

// enPassantKey reuses the empty-square row of the piece keys.
func (t *Tables) enPassantKey(sq position.Pos) uint64 {
	return t.pieceKeys[PieceNone][sq]
}
