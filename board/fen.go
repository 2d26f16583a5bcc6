package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/knight/position"
)

// UnmarshalFEN loads fen into b. The halfmove and fullmove fields may be omitted. On error b is not
// modified.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrInvalidFEN)
	}
	segments := strings.Fields(fen)
	if len(segments) != 4 && len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	var cells [position.Size64]Piece
	var count [PieceKinds]int
	rows := strings.Split(segments[0], "/")
	if len(rows) != int(position.MaxComponentScalar) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for i, row := range rows {
		y := position.MaxComponentScalar - 1 - position.Pos(i)
		x := position.Pos(0)
		for _, cell := range row {
			if cell != '0' && unicode.IsDigit(cell) {
				x += position.Pos(cell - '0')
				if x > position.MaxComponentScalar {
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				continue
			}
			p := NewPieceFromFEN(cell)
			if p == PieceNone {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if x >= position.MaxComponentScalar {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
			}
			if p.Type() == PieceTypePawn && (y == 0 || y == position.MaxComponentScalar-1) {
				return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			count[p]++
			if count[p] > maxPieceSlots {
				return fmt.Errorf("%w: too many %s", ErrInvalidFEN, p)
			}
			cells[int(y*position.MaxComponentScalar+x)] = p
			x++
		}
		if x != position.MaxComponentScalar {
			return fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}
	if count[WhiteKing] != 1 || count[BlackKing] != 1 {
		return fmt.Errorf("%w: king missing", ErrInvalidFEN)
	}
	// every pawn may still promote into any piece list
	for _, s := range []Side{SideWhite, SideBlack} {
		pawns := count[NewPiece(PieceTypePawn, s)]
		for _, t := range PawnPromoteCandidates {
			if p := NewPiece(t, s); count[p]+pawns > maxPieceSlots {
				return fmt.Errorf("%w: too many %s with %d pawns left to promote", ErrInvalidFEN, p, pawns)
			}
		}
	}

	var turn Side
	switch segments[1] {
	case "w":
		turn = SideWhite
	case "b":
		turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	var castleRights CastleRights
	if len(segments[2]) > 4 {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		switch e {
		case 'K':
			castleRights.Set(CastleDirectionWhiteRight, true)
		case 'Q':
			castleRights.Set(CastleDirectionWhiteLeft, true)
		case 'k':
			castleRights.Set(CastleDirectionBlackRight, true)
		case 'q':
			castleRights.Set(CastleDirectionBlackLeft, true)
		default:
			if i == 0 && e == '-' {
				break crLoop
			}
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}
	castleRights = sanitizeCastleRights(castleRights, cells)

	enPassant := position.NoSquare
	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if (turn == SideWhite && pos.Y() != 5) || (turn == SideBlack && pos.Y() != 2) {
			return fmt.Errorf("%w: invalid enpassant position %s", ErrInvalidFEN, pos)
		}
		enPassant = pos
	}

	halfMoveClock, fullMoveClock := uint64(0), uint64(1)
	if len(segments) == 6 {
		var err error
		halfMoveClock, err = strconv.ParseUint(segments[4], 10, 16)
		if err != nil {
			return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
		}
		fullMoveClock, err = strconv.ParseUint(segments[5], 10, 16)
		if err != nil {
			return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
		}
	}

	if b.t == nil {
		b.t = DefaultTables
	}
	b.Reset()
	for i, p := range cells {
		if p != PieceNone {
			b.addPiece(p, b.t.Sq120(i))
		}
	}
	b.turn = turn
	b.castleRights = castleRights
	b.enPassant = enPassant
	b.halfMoveClock = int(halfMoveClock)
	b.fullMoveClock = int(fullMoveClock)
	b.hash = b.ComputeHash()
	return nil
}

// sanitizeCastleRights drops rights whose king or rook is not on its home square.
func sanitizeCastleRights(c CastleRights, cells [position.Size64]Piece) CastleRights {
	at := func(sq position.Pos) Piece {
		return cells[sq.Index64()]
	}
	for _, r := range []struct {
		d          CastleDirection
		king, rook position.Pos
		side       Side
	}{
		{CastleDirectionWhiteRight, position.E1, position.H1, SideWhite},
		{CastleDirectionWhiteLeft, position.E1, position.A1, SideWhite},
		{CastleDirectionBlackRight, position.E8, position.H8, SideBlack},
		{CastleDirectionBlackLeft, position.E8, position.A8, SideBlack},
	} {
		if at(r.king) != NewPiece(PieceTypeKing, r.side) || at(r.rook) != NewPiece(PieceTypeRook, r.side) {
			c.Set(r.d, false)
		}
	}
	return c
}

func MarshalFEN(b *Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("%w: nil board", ErrInvalidFEN)
	}
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		skip := 0
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			p := b.squares[position.NewPos(x, y)]
			if p == PieceNone {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(p.SymbolFEN())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}
	_, _ = builder.WriteString(fmt.Sprintf(" %s %s %s %d %d",
		b.turn.FEN(), b.castleRights, b.enPassant, b.halfMoveClock, b.fullMoveClock))
	return builder.String(), nil
}

// FEN returns the FEN record of the current position.
func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}
