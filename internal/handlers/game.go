package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-panel/internal/config"
	"github.com/vancomm/minesweeper-panel/internal/game"
	"github.com/vancomm/minesweeper-panel/internal/mines"
)

var errSessionNotFound = errors.New("game session not found")

type GameHandler struct {
	log      logrus.FieldLogger
	registry *game.Registry
	panel    config.PanelConfig
	upgrader *websocket.Upgrader
}

func NewGameHandler(
	log logrus.FieldLogger,
	registry *game.Registry,
	panel config.PanelConfig,
	ws config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		registry: registry,
		panel:    panel,
		upgrader: ws.Upgrader(),
	}
}

func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return nil, false
	}
	s, ok := g.registry.Get(id)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, errSessionNotFound)
		return nil, false
	}
	return s, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	width, height, err := dto.Size(g.panel.Width, g.panel.Height, g.panel.TileSize)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, err := g.registry.Create(width, height)
	if errors.Is(err, mines.ErrInvalidConfiguration) {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		g.log.WithError(err).Error("unable to create a new game")
		sendErrorOrLog(w, g.log, http.StatusInternalServerError, err)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusCreated, NewSessionDTO(s))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, http.StatusOK, NewSessionDTO(s))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	cmd, err := dto.Command()
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, ok := g.session(w, r)
	if !ok {
		return
	}

	if err := s.Execute(cmd); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	g.log.WithFields(logrus.Fields{
		"session": s.ID, "command": cmd.String(),
	}).Debug("move")

	sendJSONOrLog(w, g.log, http.StatusOK, NewSessionDTO(s))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	if err := s.Execute(game.Command{Op: game.OpNew}); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	sendJSONOrLog(w, g.log, http.StatusOK, NewSessionDTO(s))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.registry.Delete(s.ID)
	w.WriteHeader(http.StatusNoContent)
}
