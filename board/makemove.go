package board

import "github.com/daystram/knight/position"

// MakeMove applies a pseudo-legal move generated for the current position. It returns false and
// leaves the board untouched if the move would leave the mover's king attacked.
func (b *Board) MakeMove(mv Move) bool {
	if b.totalPly >= MaxGamePly {
		return false
	}
	from, to := mv.From(), mv.To()
	side := b.turn

	h := &b.history[b.totalPly]
	h.move = mv
	h.hash = b.hash
	h.castleRights = b.castleRights
	h.enPassant = b.enPassant
	h.halfMoveClock = b.halfMoveClock
	h.fullMoveClock = b.fullMoveClock

	if mv.IsEnPassant() {
		b.removePiece(to - pawnForward[side])
	} else if mv.IsCastle() {
		rookFrom, rookTo := castleRook(to)
		b.movePiece(rookFrom, rookTo)
	}

	if b.enPassant != position.NoSquare {
		b.hash ^= b.t.enPassantKey(b.enPassant)
		b.enPassant = position.NoSquare
	}
	b.hash ^= b.t.castleKeys[b.castleRights]
	b.castleRights &= b.t.castlePerm[from] & b.t.castlePerm[to]
	b.hash ^= b.t.castleKeys[b.castleRights]

	b.halfMoveClock++
	if captured := mv.Captured(); captured != PieceNone {
		b.removePiece(to)
		b.halfMoveClock = 0
	}
	if side == SideBlack {
		b.fullMoveClock++
	}
	b.totalPly++
	b.ply++

	if b.squares[from].Type() == PieceTypePawn {
		b.halfMoveClock = 0
		if mv.IsPawnStart() {
			b.enPassant = from + pawnForward[side]
			b.hash ^= b.t.enPassantKey(b.enPassant)
		}
	}

	b.movePiece(from, to)
	if promoted := mv.Promoted(); promoted != PieceNone {
		b.removePiece(to)
		b.addPiece(promoted, to)
	}

	b.turn = side.Opposite()
	b.hash ^= b.t.sideKey

	if b.IsSquareAttacked(b.kingPos[side], b.turn) {
		b.UnmakeMove()
		return false
	}
	return true
}

// UnmakeMove reverts the last move made with MakeMove.
func (b *Board) UnmakeMove() {
	b.totalPly--
	b.ply--

	h := &b.history[b.totalPly]
	mv := h.move
	from, to := mv.From(), mv.To()

	if b.enPassant != position.NoSquare {
		b.hash ^= b.t.enPassantKey(b.enPassant)
	}
	b.hash ^= b.t.castleKeys[b.castleRights]
	b.castleRights = h.castleRights
	b.enPassant = h.enPassant
	b.halfMoveClock = h.halfMoveClock
	b.fullMoveClock = h.fullMoveClock
	if b.enPassant != position.NoSquare {
		b.hash ^= b.t.enPassantKey(b.enPassant)
	}
	b.hash ^= b.t.castleKeys[b.castleRights]

	b.turn = b.turn.Opposite()
	b.hash ^= b.t.sideKey
	side := b.turn

	if mv.IsEnPassant() {
		b.addPiece(NewPiece(PieceTypePawn, side.Opposite()), to-pawnForward[side])
	} else if mv.IsCastle() {
		rookFrom, rookTo := castleRook(to)
		b.movePiece(rookTo, rookFrom)
	}

	b.movePiece(to, from)
	if captured := mv.Captured(); captured != PieceNone {
		b.addPiece(captured, to)
	}
	if mv.Promoted() != PieceNone {
		b.removePiece(from)
		b.addPiece(NewPiece(PieceTypePawn, side), from)
	}
}

// MakeNullMove passes the turn. No legality test is made.
func (b *Board) MakeNullMove() {
	h := &b.history[b.totalPly]
	h.move = MoveNone
	h.hash = b.hash
	h.castleRights = b.castleRights
	h.enPassant = b.enPassant
	h.halfMoveClock = b.halfMoveClock
	h.fullMoveClock = b.fullMoveClock

	if b.enPassant != position.NoSquare {
		b.hash ^= b.t.enPassantKey(b.enPassant)
		b.enPassant = position.NoSquare
	}
	b.turn = b.turn.Opposite()
	b.hash ^= b.t.sideKey
	b.ply++
	b.totalPly++
}

func (b *Board) UnmakeNullMove() {
	b.totalPly--
	b.ply--

	h := &b.history[b.totalPly]
	b.castleRights = h.castleRights
	b.halfMoveClock = h.halfMoveClock
	b.fullMoveClock = h.fullMoveClock
	b.enPassant = h.enPassant
	if b.enPassant != position.NoSquare {
		b.hash ^= b.t.enPassantKey(b.enPassant)
	}
	b.turn = b.turn.Opposite()
	b.hash ^= b.t.sideKey
}

// IsSquareAttacked reports whether any piece of side by attacks sq.
func (b *Board) IsSquareAttacked(sq position.Pos, by Side) bool {
	pawn := NewPiece(PieceTypePawn, by)
	for _, d := range pawnCaptures[by] {
		if b.squares[sq-d] == pawn {
			return true
		}
	}

	knight := NewPiece(PieceTypeKnight, by)
	for _, d := range dirKnight {
		if b.squares[sq+d] == knight {
			return true
		}
	}

	rook, bishop, queen := NewPiece(PieceTypeRook, by), NewPiece(PieceTypeBishop, by), NewPiece(PieceTypeQueen, by)
	for _, d := range dirRook {
		t := sq + d
		for b.squares[t] == PieceNone {
			t += d
		}
		if p := b.squares[t]; p == rook || p == queen {
			return true
		}
	}
	for _, d := range dirBishop {
		t := sq + d
		for b.squares[t] == PieceNone {
			t += d
		}
		if p := b.squares[t]; p == bishop || p == queen {
			return true
		}
	}

	king := NewPiece(PieceTypeKing, by)
	for _, d := range dirKing {
		if b.squares[sq+d] == king {
			return true
		}
	}
	return false
}
