package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/knight/position"
)

var (
	colorLight = color.New(color.FgBlack, color.BgHiWhite)
	colorDark  = color.New(color.FgBlack, color.BgGreen)
	colorLabel = color.New(color.Bold)
)

// Dump renders the board in plain ASCII.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			sym := b.squares[position.NewPos(x, y)].SymbolFEN()
			if sym == "" {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

// Draw renders the board with colored squares and unicode pieces.
func (b *Board) Draw() string {
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			sym := b.squares[position.NewPos(x, y)].SymbolUnicode(false)
			if sym == "" {
				sym = " "
			}
			c := colorDark
			if (x+y)%2 == 1 {
				c = colorLight
			}
			_, _ = builder.WriteString(c.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("fen:  %s\nkey:  %016x\ncast: %s\nenp:  %s\nhalf: %4d\nfull: %4d\nply:  %4d\nstat: %s\npawns:\n%s",
		b.FEN(), b.hash, b.castleRights, b.enPassant, b.halfMoveClock, b.fullMoveClock, b.totalPly, b.State(), b.pawns[SideBoth].Dump())
}
