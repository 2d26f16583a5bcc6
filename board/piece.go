package board

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	PieceTypeUnknown PieceType = iota
	PieceTypePawn
	PieceTypeKnight
	PieceTypeBishop
	PieceTypeRook
	PieceTypeQueen
	PieceTypeKing
)

// PawnPromoteCandidates represents the candidates for pawn promotion.
var PawnPromoteCandidates = []PieceType{PieceTypeKnight, PieceTypeBishop, PieceTypeRook, PieceTypeQueen}

func (t PieceType) String() string {
	switch t {
	case PieceTypePawn:
		return "Pawn"
	case PieceTypeKnight:
		return "Knight"
	case PieceTypeBishop:
		return "Bishop"
	case PieceTypeRook:
		return "Rook"
	case PieceTypeQueen:
		return "Queen"
	case PieceTypeKing:
		return "King"
	default:
		return ""
	}
}

// Piece is a colored piece, or one of the square markers PieceNone and PieceOffboard.
type Piece uint8

const (
	PieceNone Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	PieceOffboard
)

// PieceKinds is the number of entries of piece indexed tables, PieceNone included.
const PieceKinds = int(BlackKing) + 1

func NewPiece(t PieceType, s Side) Piece {
	if t == PieceTypeUnknown || s == SideBoth {
		return PieceNone
	}
	return Piece(uint8(t) + uint8(s)*uint8(PieceTypeKing))
}

// IsPiece reports whether p is an actual piece rather than an empty or wall marker.
func (p Piece) IsPiece() bool {
	return p >= WhitePawn && p <= BlackKing
}

func (p Piece) Type() PieceType {
	if !p.IsPiece() {
		return PieceTypeUnknown
	}
	return PieceType((uint8(p)-1)%uint8(PieceTypeKing) + 1)
}

func (p Piece) Side() Side {
	switch {
	case p >= WhitePawn && p <= WhiteKing:
		return SideWhite
	case p >= BlackPawn && p <= BlackKing:
		return SideBlack
	default:
		return SideBoth
	}
}

// IsBig reports pieces that are neither pawns nor kings.
func (p Piece) IsBig() bool {
	return p.IsMajor() || p.IsMinor()
}

func (p Piece) IsMajor() bool {
	t := p.Type()
	return t == PieceTypeRook || t == PieceTypeQueen
}

func (p Piece) IsMinor() bool {
	t := p.Type()
	return t == PieceTypeKnight || t == PieceTypeBishop
}

func (p Piece) IsSlider() bool {
	t := p.Type()
	return t == PieceTypeBishop || t == PieceTypeRook || t == PieceTypeQueen
}

func (p Piece) Value() int32 {
	return pieceValue[p.Type()]
}

func (p Piece) String() string {
	if !p.IsPiece() {
		return ""
	}
	return p.Side().String() + " " + p.Type().String()
}

func (p Piece) SymbolFEN() string {
	var sym rune
	switch p.Type() {
	case PieceTypePawn:
		sym = 'P'
	case PieceTypeKnight:
		sym = 'N'
	case PieceTypeBishop:
		sym = 'B'
	case PieceTypeRook:
		sym = 'R'
	case PieceTypeQueen:
		sym = 'Q'
	case PieceTypeKing:
		sym = 'K'
	default:
		return ""
	}
	if p.Side() == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

// NewPieceFromFEN parses a single FEN piece letter.
func NewPieceFromFEN(r rune) Piece {
	s := SideWhite
	if r >= 'a' && r <= 'z' {
		s = SideBlack
		r &^= 0x20
	}
	switch r {
	case 'P':
		return NewPiece(PieceTypePawn, s)
	case 'N':
		return NewPiece(PieceTypeKnight, s)
	case 'B':
		return NewPiece(PieceTypeBishop, s)
	case 'R':
		return NewPiece(PieceTypeRook, s)
	case 'Q':
		return NewPiece(PieceTypeQueen, s)
	case 'K':
		return NewPiece(PieceTypeKing, s)
	default:
		return PieceNone
	}
}

func (p Piece) SymbolUnicode(invert bool) string {
	s := p.Side()
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p.Type() {
		case PieceTypePawn:
			return "♙"
		case PieceTypeKnight:
			return "♘"
		case PieceTypeBishop:
			return "♗"
		case PieceTypeRook:
			return "♖"
		case PieceTypeQueen:
			return "♕"
		case PieceTypeKing:
			return "♔"
		}
	case SideBlack:
		switch p.Type() {
		case PieceTypePawn:
			return "♟"
		case PieceTypeKnight:
			return "♞"
		case PieceTypeBishop:
			return "♝"
		case PieceTypeRook:
			return "♜"
		case PieceTypeQueen:
			return "♛"
		case PieceTypeKing:
			return "♚"
		}
	}
	return ""
}
