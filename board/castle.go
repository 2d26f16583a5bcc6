package board

import "github.com/daystram/knight/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// CastleRights is the 4-bit castling availability set: K=1, Q=2, k=4, q=8.
type CastleRights uint8

const (
	CastleRightsNone CastleRights = 0
	CastleRightsAll  CastleRights = 0b1111
)

var maskCastleRights = [5]CastleRights{
	CastleDirectionWhiteRight: 0b0001,
	CastleDirectionWhiteLeft:  0b0010,
	CastleDirectionBlackRight: 0b0100,
	CastleDirectionBlackLeft:  0b1000,
}

// castleRook returns the rook relocation for a castle landing the king on kingTo.
func castleRook(kingTo position.Pos) (from, to position.Pos) {
	switch kingTo {
	case position.G1:
		return position.H1, position.F1
	case position.C1:
		return position.A1, position.D1
	case position.G8:
		return position.H8, position.F8
	case position.C8:
		return position.A8, position.D8
	default:
		return position.NoSquare, position.NoSquare
	}
}

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// String returns the FEN castling field.
func (c CastleRights) String() string {
	if c == CastleRightsNone {
		return "-"
	}
	var out []byte
	for _, e := range []struct {
		d   CastleDirection
		sym byte
	}{
		{CastleDirectionWhiteRight, 'K'},
		{CastleDirectionWhiteLeft, 'Q'},
		{CastleDirectionBlackRight, 'k'},
		{CastleDirectionBlackLeft, 'q'},
	} {
		if c.IsAllowed(e.d) {
			out = append(out, e.sym)
		}
	}
	return string(out)
}
