package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nfl-broadcast-service/internal/broadcast"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Upgrader upgrades stream requests. Origin checks are left to the deployment's proxy.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream writes backlog and then live messages from sub to conn as JSON, in ID order,
// until the client disconnects, the subscription closes or ctx is done. It closes both conn and sub.
func Stream(ctx context.Context, conn *websocket.Conn, sub *Subscription, backlog []broadcast.Message) error {
	defer conn.Close()
	defer sub.Close()

	last := 0
	for _, msg := range backlog {
		if err := writeMessage(conn, msg); err != nil {
			return err
		}
		last = msg.ID
	}

	gone := make(chan struct{})
	go readPump(conn, gone)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			writeClose(conn, websocket.CloseGoingAway)
			return nil
		case <-gone:
			return nil
		case msg, ok := <-sub.C:
			if !ok {
				writeClose(conn, websocket.CloseNormalClosure)
				return nil
			}
			if msg.ID <= last {
				continue
			}
			if err := writeMessage(conn, msg); err != nil {
				return err
			}
			last = msg.ID
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// readPump discards client frames so control messages are processed, and signals when the peer leaves.
func readPump(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeMessage(conn *websocket.Conn, msg broadcast.Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func writeClose(conn *websocket.Conn, code int) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
}
