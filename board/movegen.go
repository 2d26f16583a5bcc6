package board

import (
	"fmt"
	"strings"

	"github.com/daystram/knight/position"
)

// GenerateMoves fills ml with every pseudo-legal move of the side to move, scored for ordering.
// Legality is decided by MakeMove.
func (b *Board) GenerateMoves(ml *MoveList) {
	b.generate(ml, false)
}

// GenerateCaptures fills ml with captures and en passant captures only.
func (b *Board) GenerateCaptures(ml *MoveList) {
	b.generate(ml, true)
}

func (b *Board) generate(ml *MoveList, capturesOnly bool) {
	ml.Reset()
	side := b.turn

	pawn := NewPiece(PieceTypePawn, side)
	for i := uint8(0); i < b.pieceCount[pawn]; i++ {
		b.genPawnMoves(ml, b.pieceList[pawn][i], side, capturesOnly)
	}
	if !capturesOnly {
		b.genCastles(ml, side)
	}
	for t := PieceTypeKnight; t <= PieceTypeKing; t++ {
		p := NewPiece(t, side)
		for i := uint8(0); i < b.pieceCount[p]; i++ {
			b.genPieceMoves(ml, p, b.pieceList[p][i], capturesOnly)
		}
	}
}

func (b *Board) genPawnMoves(ml *MoveList, from position.Pos, side Side, capturesOnly bool) {
	fwd := from + pawnForward[side]
	if !capturesOnly && b.squares[fwd] == PieceNone {
		b.addPawnMove(ml, from, fwd, PieceNone, side)
		fwd2 := fwd + pawnForward[side]
		if from.Y() == pawnStartRank[side] && b.squares[fwd2] == PieceNone {
			b.addQuietMove(ml, NewMove(from, fwd2, PieceNone, PieceNone, moveFlagPawnStart))
		}
	}
	for _, d := range pawnCaptures[side] {
		to := from + d
		if p := b.squares[to]; p.IsPiece() && p.Side() != side {
			b.addPawnMove(ml, from, to, p, side)
		}
		if b.enPassant != position.NoSquare && to == b.enPassant {
			ml.Add(NewMove(from, to, PieceNone, PieceNone, moveFlagEnPassant), mvvLva(WhitePawn, WhitePawn)+ScoreCapturesFirst)
		}
	}
}

// addPawnMove expands a move onto the last rank into the four promotions.
func (b *Board) addPawnMove(ml *MoveList, from, to position.Pos, captured Piece, side Side) {
	add := b.addQuietMove
	if captured != PieceNone {
		add = b.addCaptureMove
	}
	if to.Y() != pawnPromoteRank[side] {
		add(ml, NewMove(from, to, captured, PieceNone, 0))
		return
	}
	for i := len(PawnPromoteCandidates) - 1; i >= 0; i-- {
		add(ml, NewMove(from, to, captured, NewPiece(PawnPromoteCandidates[i], side), 0))
	}
}

func (b *Board) genCastles(ml *MoveList, side Side) {
	if side == SideWhite {
		if b.castleRights.IsAllowed(CastleDirectionWhiteRight) &&
			b.squares[position.F1] == PieceNone && b.squares[position.G1] == PieceNone &&
			!b.IsSquareAttacked(position.E1, SideBlack) && !b.IsSquareAttacked(position.F1, SideBlack) {
			b.addQuietMove(ml, NewMove(position.E1, position.G1, PieceNone, PieceNone, moveFlagCastle))
		}
		if b.castleRights.IsAllowed(CastleDirectionWhiteLeft) &&
			b.squares[position.D1] == PieceNone && b.squares[position.C1] == PieceNone && b.squares[position.B1] == PieceNone &&
			!b.IsSquareAttacked(position.E1, SideBlack) && !b.IsSquareAttacked(position.D1, SideBlack) {
			b.addQuietMove(ml, NewMove(position.E1, position.C1, PieceNone, PieceNone, moveFlagCastle))
		}
		return
	}
	if b.castleRights.IsAllowed(CastleDirectionBlackRight) &&
		b.squares[position.F8] == PieceNone && b.squares[position.G8] == PieceNone &&
		!b.IsSquareAttacked(position.E8, SideWhite) && !b.IsSquareAttacked(position.F8, SideWhite) {
		b.addQuietMove(ml, NewMove(position.E8, position.G8, PieceNone, PieceNone, moveFlagCastle))
	}
	if b.castleRights.IsAllowed(CastleDirectionBlackLeft) &&
		b.squares[position.D8] == PieceNone && b.squares[position.C8] == PieceNone && b.squares[position.B8] == PieceNone &&
		!b.IsSquareAttacked(position.E8, SideWhite) && !b.IsSquareAttacked(position.D8, SideWhite) {
		b.addQuietMove(ml, NewMove(position.E8, position.C8, PieceNone, PieceNone, moveFlagCastle))
	}
}

func (b *Board) genPieceMoves(ml *MoveList, p Piece, from position.Pos, capturesOnly bool) {
	side := p.Side()
	slider := p.IsSlider()
	for _, d := range pieceDirs[p.Type()] {
		for to := from + d; ; to += d {
			q := b.squares[to]
			if q == PieceOffboard {
				break
			}
			if q != PieceNone {
				if q.Side() != side {
					b.addCaptureMove(ml, NewMove(from, to, q, PieceNone, 0))
				}
				break
			}
			if !capturesOnly {
				b.addQuietMove(ml, NewMove(from, to, PieceNone, PieceNone, 0))
			}
			if !slider {
				break
			}
		}
	}
}

func (b *Board) addQuietMove(ml *MoveList, mv Move) {
	var score int32
	k0, k1 := b.Killers()
	switch mv {
	case k0:
		score = ScoreKillerFirst
	case k1:
		score = ScoreKillerSecond
	default:
		score = b.searchHistory[b.squares[mv.From()]][mv.To()]
	}
	ml.Add(mv, score)
}

func (b *Board) addCaptureMove(ml *MoveList, mv Move) {
	ml.Add(mv, mvvLva(mv.Captured(), b.squares[mv.From()])+ScoreCapturesFirst)
}

// mvvLva ranks captures by victim first, then by the cheapest attacker.
func mvvLva(victim, attacker Piece) int32 {
	return int32(victim.Type())*100 + 6 - int32(attacker.Type())
}

// MoveExists reports whether mv is a legal move in the current position.
func (b *Board) MoveExists(mv Move) bool {
	var ml MoveList
	b.GenerateMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).Move != mv {
			continue
		}
		if !b.MakeMove(mv) {
			return false
		}
		b.UnmakeMove()
		return true
	}
	return false
}

// LegalMoves returns the moves MakeMove accepts, in generation order.
func (b *Board) LegalMoves() []Move {
	var ml MoveList
	b.GenerateMoves(&ml)
	mvs := make([]Move, 0, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		mv := ml.At(i).Move
		if b.MakeMove(mv) {
			b.UnmakeMove()
			mvs = append(mvs, mv)
		}
	}
	return mvs
}

// ParseMove resolves a long algebraic move such as e7e8q against the generated moves. The result
// may still be illegal; MakeMove decides.
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return MoveNone, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return MoveNone, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return MoveNone, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	promote := PieceTypeUnknown
	if len(s) == 5 {
		promote = NewPieceFromFEN(rune(strings.ToUpper(s[4:])[0])).Type()
		if promote == PieceTypeUnknown || promote == PieceTypePawn || promote == PieceTypeKing {
			return MoveNone, fmt.Errorf("%w: bad promotion %q", ErrInvalidMove, s)
		}
	}

	var ml MoveList
	b.GenerateMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		mv := ml.At(i).Move
		if mv.From() != from || mv.To() != to {
			continue
		}
		if mv.Promoted().Type() == promote {
			return mv, nil
		}
	}
	return MoveNone, fmt.Errorf("%w: %q not generated", ErrInvalidMove, s)
}
