package mines

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// MineRate is the share of cells that hold a mine.
const MineRate = 0.16

// MineCountFor returns floor(MineRate * tiles).
func MineCountFor(tiles int) int {
	return tiles * 16 / 100
}

type Outcome uint8

const (
	Playing Outcome = iota
	Failed
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Failed:
		return "failed"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Board owns every cell of one game. It is not safe for concurrent use.
type Board struct {
	width, height int
	mineCount     int
	openedCount   int
	flagCount     int
	outcome       Outcome

	cells     []Cell
	listeners []Listener
	rnd       *rand.Rand
}

func New(r *rand.Rand) *Board {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Board{rnd: r}
}

// Subscribe registers l for every event the board publishes. Listeners
// survive resets.
func (b *Board) Subscribe(l Listener) {
	b.listeners = append(b.listeners, l)
}

func (b *Board) publish(e Event) {
	for _, l := range b.listeners {
		l(e)
	}
}

// Reset discards the current cells and lays out a fresh width x height
// board with MineCountFor(width*height) mines placed uniformly at random.
func (b *Board) Reset(width, height int) (mineCount int, err error) {
	if err := validateSize(width, height); err != nil {
		return 0, err
	}
	tiles := width * height
	mineCount = MineCountFor(tiles)

	mines := make([]bool, tiles)
	for i := range mineCount {
		mines[i] = true
	}
	b.rnd.Shuffle(tiles, func(i, j int) {
		mines[i], mines[j] = mines[j], mines[i]
	})

	return b.build(width, height, mines, mineCount)
}

// ResetWithMines is like [Board.Reset] but uses the given row-major mine
// layout instead of a random one.
func (b *Board) ResetWithMines(width, height int, mines []bool) (mineCount int, err error) {
	if err := validateSize(width, height); err != nil {
		return 0, err
	}
	if len(mines) != width*height {
		return 0, fmt.Errorf(
			"%w: layout has %d cells, want %d", ErrInvalidConfiguration, len(mines), width*height,
		)
	}
	for _, m := range mines {
		if m {
			mineCount++
		}
	}
	layout := make([]bool, len(mines))
	copy(layout, mines)
	return b.build(width, height, layout, mineCount)
}

// maxTiles keeps width*height and MineCountFor's arithmetic within int.
const maxTiles = math.MaxInt / 100

func validateSize(width, height int) error {
	if width < 1 || height < 1 || width > maxTiles/height {
		return fmt.Errorf("%w: %dx%d board", ErrInvalidConfiguration, width, height)
	}
	return nil
}

func (b *Board) build(width, height int, mines []bool, mineCount int) (int, error) {
	tiles := width * height
	if mineCount >= tiles {
		return 0, fmt.Errorf(
			"%w: %d mines leave no safe cell on a %dx%d board",
			ErrInvalidConfiguration, mineCount, width, height,
		)
	}

	cells := make([]Cell, 0, tiles)
	for y := range height {
		for x := range width {
			cells = append(cells, newCell(mines[y*width+x], Point{x, y}))
		}
	}
	for i := range cells {
		cells[i].assignNeighbors(neighborsOf(i, width, height))
	}

	b.cells = cells
	b.width, b.height = width, height
	b.mineCount = mineCount
	b.openedCount = 0
	b.flagCount = 0
	b.outcome = Playing

	Log.WithFields(logrus.Fields{
		"width": width, "height": height, "mines": mineCount,
	}).Debug("board reset")

	return mineCount, nil
}

func neighborsOf(i, width, height int) []int {
	x, y := i%width, i/width
	idx := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if (dx != 0 || dy != 0) &&
				0 <= xx && xx < width &&
				0 <= yy && yy < height {
				idx = append(idx, yy*width+xx)
			}
		}
	}
	return idx
}

func (b *Board) valid(i int) bool {
	return 0 <= i && i < len(b.cells)
}

// RequestReveal opens cell i and, while opened cells have no mined
// neighbors, everything reachable from it. Requests that change nothing
// are ignored.
func (b *Board) RequestReveal(i int) {
	if !b.valid(i) {
		return
	}

	safe := len(b.cells) - b.mineCount
	todo := []int{i}
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		c := &b.cells[j]
		if !c.reveal(b.cells) {
			continue
		}
		b.publish(Event{CellOpened, j})

		if c.mine {
			b.finish(Failed, j)
			return
		}

		b.openedCount++
		if b.openedCount == 1 {
			b.publish(Event{GameStarted, -1})
		}
		if b.openedCount == safe {
			b.finish(Completed, j)
			return
		}

		if c.adjacent == 0 {
			todo = append(todo, c.neighbors...)
		}
	}
}

func (b *Board) finish(outcome Outcome, last int) {
	b.outcome = outcome
	Log.WithFields(logrus.Fields{
		"outcome": outcome, "cell": b.cells[last].position, "opened": b.openedCount,
	}).Debug("game over")

	kind := GameCompleted
	if outcome == Failed {
		kind = GameFailed
	}
	b.publish(Event{kind, -1})

	for j := range b.cells {
		b.cells[j].disable()
	}
}

// RequestFlagToggle flips the flag on cell i unless it is opened.
func (b *Board) RequestFlagToggle(i int) {
	if !b.valid(i) {
		return
	}
	kind, ok := b.cells[i].toggleFlag()
	if !ok {
		return
	}
	if kind == FlagAdded {
		b.flagCount++
	} else {
		b.flagCount--
	}
	b.publish(Event{kind, i})
}

// RequestChord opens every unflagged neighbor of the opened cell i once
// the number of flags around it matches its mine count.
func (b *Board) RequestChord(i int) {
	if !b.valid(i) {
		return
	}
	c := b.cells[i]
	if !c.opened || c.mine || c.disabled {
		return
	}

	flags := 0
	todo := make([]int, 0, len(c.neighbors))
	for _, j := range c.neighbors {
		n := b.cells[j]
		if n.flag {
			flags++
		} else if !n.opened {
			todo = append(todo, j)
		}
	}
	if flags != c.adjacent {
		return
	}

	for _, j := range todo {
		b.RequestReveal(j)
		if b.outcome != Playing {
			return
		}
	}
}

func (b *Board) Width() int        { return b.width }
func (b *Board) Height() int       { return b.height }
func (b *Board) MineCount() int    { return b.mineCount }
func (b *Board) OpenedCount() int  { return b.openedCount }
func (b *Board) FlagCount() int    { return b.flagCount }
func (b *Board) Outcome() Outcome  { return b.outcome }
func (b *Board) Len() int          { return len(b.cells) }
func (b *Board) Cell(i int) Cell   { return b.cells[i] }
func (b *Board) Point(i int) Point { return b.cells[i].position }

// Index maps a grid coordinate to an arena index.
func (b *Board) Index(x, y int) (int, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1, false
	}
	return y*b.width + x, true
}

// View returns what the player sees. Once the game is over the mines and
// misplaced flags are exposed as well.
func (b *Board) View() Grid {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		grid[i] = c.State()
		if b.outcome == Playing {
			continue
		}
		switch {
		case c.flag && c.mine:
			grid[i] = CorrectlyFlagged
		case c.flag:
			grid[i] = FalselyFlagged
		case c.mine && !c.opened:
			grid[i] = UnflaggedMine
		}
	}
	return grid
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return b.View().ToString(b.width)
}
