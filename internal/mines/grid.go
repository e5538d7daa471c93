package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the square is open and has a surrounding mine count.
	 *
	 * 64 and above are only shown once the game is over: 64 is a
	 * correctly flagged mine, 65 is the mine the player stepped on, 66
	 * is a flag placed on a safe square and 67 is a mine nobody
	 * flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "-"
	case s == Flagged || s == CorrectlyFlagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "f"
	case s == UnflaggedMine:
		return "*"
	case s == 0:
		return "."
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	if width <= 0 {
		return ""
	}
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, g[i].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
