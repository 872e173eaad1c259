package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yanun0323/logs"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongMessage  = `{"type":"pong"}`
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The served frontend connects from the same host; origin checks
	// add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and streams refresh events
// to it until either side goes away.
func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logs.Errorf("websocket upgrade: %+v", err)
		return
	}

	sub := s.hub.Subscribe()
	defer s.hub.Unsubscribe(sub)
	defer conn.Close()

	// Serializes writes between the pong responder and the event loop.
	var writeMu sync.Mutex
	write := func(fn func() error) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return fn()
	}

	// Clients only ever send keepalives; answer with a pong and use
	// the read loop to detect disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			err := write(func() error {
				return conn.WriteMessage(websocket.TextMessage, []byte(wsPongMessage))
			})
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			err := write(func() error { return conn.WriteJSON(event) })
			if err != nil {
				logs.Infof("websocket write failed, closing subscriber %s", sub.ID)
				return
			}
		}
	}
}
