package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

type Conn struct {
	ws  *websocket.Conn
	out chan ServerEvent
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps a websocket connection with a buffered outbound queue
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws, out: make(chan ServerEvent, 256)}
}

// Send queues an event without blocking; false means the buffer was full
// and the event was dropped for this connection only
func (c *Conn) Send(ev ServerEvent) bool {
	select {
	case c.out <- ev:
		return true
	default:
		return false
	}
}

// Read blocks until it decodes one client event
// Returns false if the connection is closed; malformed frames are skipped
func (c *Conn) Read(ctx context.Context) (ClientEvent, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return ClientEvent{}, false
		}
		if typ != websocket.MessageText {
			continue
		}
		var ev ClientEvent
		if err := json.Unmarshal(data, &ev); err != nil || ev.Type == "" {
			continue
		}
		return ev, true
	}
}

// WriteLoop sends outbound events + periodic pings
// Exits when ctx is cancelled
func (c *Conn) WriteLoop(ctx context.Context) {
	p := 20 * time.Second
	t := time.NewTicker(p)
	defer t.Stop()

	for {
		select {
		case ev := <-c.out:
			b, _ := json.Marshal(ev)
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the websocket normally
func (c *Conn) Close() error { return c.ws.Close(websocket.StatusNormalClosure, "bye") }
