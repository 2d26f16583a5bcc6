package position

import (
	"errors"
	"fmt"
)

const (
	// MaxComponentScalar is the number of files and ranks on the playable board.
	MaxComponentScalar Pos = 8

	// Width is the row stride of the padded board, including the two wall columns.
	Width Pos = 10

	// Size is the number of squares of the padded board.
	Size = 120

	// Size64 is the number of playable squares.
	Size64 = 64
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square index on the padded 10x12 board. A1 is 21 and H8 is 98; every square outside the
// playable 8x8 area is a wall.
type Pos int8

const (
	A1 Pos = 21 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Pos = 31 + iota
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Pos = 41 + iota
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Pos = 51 + iota
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Pos = 61 + iota
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Pos = 71 + iota
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Pos = 81 + iota
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Pos = 91 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NoSquare marks an absent square, e.g. no en passant target.
const NoSquare Pos = 99

// NewPos returns the padded square for zero-based file x and rank y.
func NewPos(x, y Pos) Pos {
	return A1 + x + y*Width
}

// NewPosFrom64 maps a 0-63 square index (a1=0, h8=63) to the padded board.
func NewPosFrom64(i int) Pos {
	return NewPos(Pos(i%8), Pos(i/8))
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return NoSquare, fmt.Errorf("%w: %q", err, n)
	}
	return NewPos(x, y), nil
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.IsValid() {
		return ""
	}
	return p.X().NotationComponentX() + p.Y().NotationComponentY()
}

// IsValid reports whether p is a playable square.
func (p Pos) IsValid() bool {
	if p < A1 || p > H8 {
		return false
	}
	f := p % Width
	return f >= 1 && f <= 8
}

// Index64 returns the 0-63 index of p, or -1 for walls.
func (p Pos) Index64() int {
	if !p.IsValid() {
		return -1
	}
	return int(p.Y()*MaxComponentScalar + p.X())
}

// X returns the zero-based file.
func (p Pos) X() Pos {
	return p%Width - 1
}

// Y returns the zero-based rank.
func (p Pos) Y() Pos {
	return p/Width - 2
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	if x < 'a' || x > 'h' {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToY(y byte) (Pos, error) {
	if y < '1' || y > '8' {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('1' + p))
}
