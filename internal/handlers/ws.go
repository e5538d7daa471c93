package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-panel/internal/game"
)

// wsReply carries the state after a frame was executed; Error is set
// when one of the frame's commands was rejected.
type wsReply struct {
	SessionDTO
	Error string `json:"error,omitempty"`
}

// runGameLoop reads frames of newline separated commands and answers each
// frame with the resulting state. A rejected command skips the rest of
// its frame but keeps the connection open.
func runGameLoop(log logrus.FieldLogger, conn *websocket.Conn, s *game.Session) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		var reply wsReply
		message := strings.TrimSpace(string(buf))
	LINES:
		for _, line := range strings.Split(message, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			cmd, err := game.ParseCommand(line)
			if err == nil {
				err = s.Execute(cmd)
			}
			if err != nil {
				log.WithFields(logrus.Fields{
					"line": line, "error": err,
				}).Debug("rejected command")
				reply.Error = fmt.Sprintf("%s: %s", line, err)
				break LINES
			}
		}

		reply.SessionDTO = NewSessionDTO(s)
		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := g.log.WithField("session", s.ID)
	log.Debug("established WS connection")

	if err := runGameLoop(log, conn, s); err != nil &&
		!websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.WithError(err).Warn("error in ws loop")
	}
}
