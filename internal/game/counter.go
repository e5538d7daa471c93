package game

// MineCounter shows how many mines are left to flag. It goes negative
// when the player places more flags than there are mines.
type MineCounter struct {
	remaining int
}

func (c *MineCounter) Reset(mineCount int) { c.remaining = mineCount }
func (c *MineCounter) FlagAdded()          { c.remaining-- }
func (c *MineCounter) FlagRemoved()        { c.remaining++ }
func (c *MineCounter) Remaining() int      { return c.remaining }
