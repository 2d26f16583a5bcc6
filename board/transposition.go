package board

const (
	ttEntrySize = 16 // bytes per entry
	megabyte    = 1 << 20
)

type ttEntry struct {
	hash  uint64
	move  Move
	depth int32
}

// TranspositionTable maps position keys to the best move found there. Slots are addressed by
// key modulo capacity and every write overwrites, so a read must be validated against the key.
type TranspositionTable struct {
	table []ttEntry

	// stats
	writes int
}

func NewTranspositionTable(sizeMB int) *TranspositionTable {
	t := &TranspositionTable{}
	t.Init(sizeMB)
	return t
}

// Init reallocates the table for a budget of sizeMB megabytes. Previous entries are lost.
func (t *TranspositionTable) Init(sizeMB int) {
	n := sizeMB * megabyte / ttEntrySize
	if n < 1 {
		n = 1
	}
	t.table = make([]ttEntry, n)
	t.writes = 0
}

func (t *TranspositionTable) Len() int {
	return len(t.table)
}

func (t *TranspositionTable) Index(hash uint64) int {
	return int(hash % uint64(len(t.table)))
}

func (t *TranspositionTable) Set(index int, mv Move, hash uint64, depth int) {
	t.writes++
	t.table[index] = ttEntry{
		hash:  hash,
		move:  mv,
		depth: int32(depth),
	}
}

// Hash returns the key stored at index.
func (t *TranspositionTable) Hash(index int) uint64 {
	return t.table[index].hash
}

// Move returns the move stored at index without checking who wrote it.
func (t *TranspositionTable) Move(index int) Move {
	return t.table[index].move
}

func (t *TranspositionTable) Depth(index int) int {
	return int(t.table[index].depth)
}

func (t *TranspositionTable) Clear() {
	for i := range t.table {
		t.table[i] = ttEntry{}
	}
	t.writes = 0
}

// Stats returns the number of writes since the last Clear.
func (t *TranspositionTable) Stats() int {
	return t.writes
}

// StoreMove records mv as the best move of the current position.
func (b *Board) StoreMove(mv Move) {
	b.tt.Set(b.tt.Index(b.hash), mv, b.hash, b.ply)
}

// ProbeMove returns the stored best move of the current position, or MoveNone when the slot holds
// another position.
func (b *Board) ProbeMove() Move {
	i := b.tt.Index(b.hash)
	if b.tt.Hash(i) != b.hash {
		return MoveNone
	}
	return b.tt.Move(i)
}

// BestLine follows stored moves from the current position for at most depth plies, verifying each
// with MoveExists, and records them as the principal variation. The board is restored before
// returning the line length.
func (b *Board) BestLine(depth int) int {
	if depth > MaxDepth {
		depth = MaxDepth
	}
	n := 0
	for mv := b.ProbeMove(); mv != MoveNone && n < depth; mv = b.ProbeMove() {
		if !b.MoveExists(mv) {
			break
		}
		b.MakeMove(mv)
		b.pv[n] = mv
		n++
	}
	for i := 0; i < n; i++ {
		b.UnmakeMove()
	}
	return n
}

// PV returns the first n moves recorded by the last BestLine.
func (b *Board) PV(n int) []Move {
	if n > MaxDepth {
		n = MaxDepth
	}
	pv := make([]Move, n)
	copy(pv, b.pv[:n])
	return pv
}
