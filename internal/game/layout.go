package game

import (
	"fmt"

	"github.com/vancomm/minesweeper-panel/internal/mines"
)

// DefaultTileSize is the edge of one cell on screen, in pixels.
const DefaultTileSize = 40

// MaxSide bounds both dimensions of a session's board.
const MaxSide = 500

var ErrBoardTooLarge = fmt.Errorf(
	"%w: board sides must not exceed %d cells", mines.ErrInvalidConfiguration, MaxSide,
)

// Layout returns how many whole cells fit on a panel of the given size.
func Layout(panelWidth, panelHeight, tileSize int) (width, height int) {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return panelWidth / tileSize, panelHeight / tileSize
}

// ValidateSize reports whether a width x height board may be played.
func ValidateSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d board", mines.ErrInvalidConfiguration, width, height)
	}
	if width > MaxSide || height > MaxSide {
		return ErrBoardTooLarge
	}
	return nil
}
