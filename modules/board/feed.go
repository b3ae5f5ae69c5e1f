package board

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/surface"
)

const feedWriteWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
}

// feed streams surface frames as JSON over a WebSocket for clients that are
// not browsers running the board page.
func (s *Service) feed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.DebugContext(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The feed is write-only. Reading drains control frames and notices the
	// peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := surface.Feed(ctx, s.hub, frameConn{conn}); err != nil {
		s.logger.DebugContext(ctx, "websocket feed ended", logger.Error(err))
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(feedWriteWait),
	)
}

type frameConn struct {
	conn *websocket.Conn
}

func (c frameConn) WriteJSON(v any) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}
