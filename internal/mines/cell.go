package mines

import "fmt"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point implements [fmt.Stringer]
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell is one square of the board. Cells live in the board's arena and
// refer to their neighbors by arena index.
type Cell struct {
	mine     bool
	position Point

	flag     bool
	opened   bool
	disabled bool

	adjacent      int
	adjacentKnown bool

	neighbors []int
}

func newCell(mine bool, p Point) Cell {
	return Cell{mine: mine, position: p}
}

func (c Cell) IsMine() bool    { return c.mine }
func (c Cell) Position() Point { return c.position }
func (c Cell) HasFlag() bool   { return c.flag }
func (c Cell) IsOpened() bool  { return c.opened }
func (c Cell) Disabled() bool  { return c.disabled }

// AdjacentMines reports the number of mined neighbors. ok is false until
// the cell has been opened as a non-mine.
func (c Cell) AdjacentMines() (n int, ok bool) {
	return c.adjacent, c.adjacentKnown
}

// Neighbors returns the arena indices of the cells around c. The slice
// must not be modified.
func (c Cell) Neighbors() []int {
	return c.neighbors
}

// panics [AssertionError]
func (c *Cell) assignNeighbors(idx []int) {
	if c.neighbors != nil {
		panic(AssertionError{"neighbors assigned twice for cell " + c.position.String()})
	}
	c.neighbors = idx
}

func (c *Cell) toggleFlag() (kind EventKind, changed bool) {
	if c.opened || c.disabled {
		return 0, false
	}
	c.flag = !c.flag
	if c.flag {
		return FlagAdded, true
	}
	return FlagRemoved, true
}

func (c *Cell) reveal(arena []Cell) bool {
	if c.flag || c.opened || c.disabled {
		return false
	}
	c.opened = true
	if c.mine {
		return true
	}
	if !c.adjacentKnown {
		n := 0
		for _, j := range c.neighbors {
			if arena[j].mine {
				n++
			}
		}
		c.adjacent, c.adjacentKnown = n, true
	}
	return true
}

func (c *Cell) disable() {
	c.disabled = true
}

// State is what a player is allowed to see of the cell while the game is
// running.
func (c Cell) State() CellState {
	switch {
	case c.opened && c.mine:
		return ExplodedMine
	case c.opened:
		return CellState(c.adjacent)
	case c.flag:
		return Flagged
	default:
		return Unknown
	}
}
