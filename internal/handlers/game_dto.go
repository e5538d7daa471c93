package handlers

import (
	"errors"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-panel/internal/game"
	"github.com/vancomm/minesweeper-panel/internal/mines"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// NewGameDTO asks either for an explicit size in cells or for a panel size
// in pixels that is divided into tiles. Missing values fall back to the
// configured panel.
type NewGameDTO struct {
	Width       int `schema:"width"`
	Height      int `schema:"height"`
	PanelWidth  int `schema:"panel_width"`
	PanelHeight int `schema:"panel_height"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Size resolves the board dimensions for dto.
func (dto NewGameDTO) Size(defaultPanelWidth, defaultPanelHeight, tileSize int) (w, h int, err error) {
	switch {
	case dto.Width != 0 || dto.Height != 0:
		w, h = dto.Width, dto.Height
	case dto.PanelWidth != 0 || dto.PanelHeight != 0:
		w, h = game.Layout(dto.PanelWidth, dto.PanelHeight, tileSize)
	default:
		w, h = game.Layout(defaultPanelWidth, defaultPanelHeight, tileSize)
	}
	if err := game.ValidateSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

var ErrBadMove = errors.New("move must be one of 'open', 'flag', 'chord'")

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto MoveDTO) Command() (game.Command, error) {
	cmd := game.Command{X: dto.X, Y: dto.Y}
	switch strings.ToLower(dto.Move) {
	case "open":
		cmd.Op = game.OpOpen
	case "flag":
		cmd.Op = game.OpFlag
	case "chord":
		cmd.Op = game.OpChord
	default:
		return cmd, ErrBadMove
	}
	return cmd, nil
}

// SessionDTO is the reply to every game request: the session state and
// the events the last request produced.
type SessionDTO struct {
	game.Snapshot
	Events []mines.Event `json:"events"`
}

func NewSessionDTO(s *game.Session) SessionDTO {
	snap, events := s.Report()
	return SessionDTO{Snapshot: snap, Events: events}
}
