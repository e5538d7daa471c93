package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	ReadBufferSize  int `json:"read_buffer_size" yaml:"read_buffer_size"`
	WriteBufferSize int `json:"write_buffer_size" yaml:"write_buffer_size"`
}

func (ws WebSocket) Upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  ws.ReadBufferSize,
		WriteBufferSize: ws.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}
