package board

type Side uint8

const (
	SideWhite Side = iota
	SideBlack
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	case SideBoth:
		return "Both"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideBoth
	}
}

// FEN returns the side-to-move field of a FEN record.
func (s Side) FEN() string {
	if s == SideBlack {
		return "b"
	}
	return "w"
}
