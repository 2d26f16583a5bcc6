package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/knight/position"
)

// bitmap is a 64-square occupancy mask indexed by the 0-63 square numbering.
type bitmap uint64

func (bm *bitmap) Set(i int) {
	*bm |= 1 << uint(i)
}

func (bm *bitmap) Unset(i int) {
	*bm &^= 1 << uint(i)
}

func (bm bitmap) IsSet(i int) bool {
	return bm&(1<<uint(i)) != 0
}

func (bm bitmap) LS1B() int {
	return bits.TrailingZeros64(uint64(bm))
}

func (bm bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

func (bm bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			if bm.IsSet(int(y*position.MaxComponentScalar + x)) {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
