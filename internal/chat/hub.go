package chat

import (
	"context"
	"net/http"
	"strings"

	"log/slog"

	"skillswap/pkg/auth"
)

// Hub ties the websocket endpoint to the relay and the redis bus.
type Hub struct {
	log   *slog.Logger
	relay *Relay
	bus   *RedisBus
	jwt   *auth.JWT
}

// NewHub sets up the hub with relay + redis bus + token verifier
func NewHub(logger *slog.Logger, relay *Relay, bus *RedisBus, jwt *auth.JWT) *Hub {
	return &Hub{log: logger, relay: relay, bus: bus, jwt: jwt}
}

// Run forwards bus messages from other instances to local room occupants
func (h *Hub) Run(ctx context.Context) {
	go h.bus.Subscribe(ctx, func(bm BusMessage) {
		h.relay.Deliver(bm.RoomID, bm.Event)
	})
	<-ctx.Done()
}

// ServeWS handles a new /ws connection. The caller must present a valid
// token before any room operation is allowed; browsers cannot set headers
// on websocket dials, so a token query param is accepted too.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if tok == "" {
		tok = r.URL.Query().Get("token")
	}
	uid, err := h.jwt.Verify(tok)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(ws)
	id := h.relay.Connect(c)
	h.log.Info("ws.connected", "conn", id, "user", uid)

	// Outbound writer
	go c.WriteLoop(ctx)

	// Inbound events, one at a time until the client goes away
	for {
		ev, ok := c.Read(ctx)
		if !ok {
			break
		}
		switch ev.Type {
		case EvJoinRoom:
			if ev.RoomID != "" {
				h.relay.Join(id, ev.RoomID)
			}
		case EvLeaveRoom:
			if ev.RoomID != "" {
				h.relay.Leave(id, ev.RoomID)
			}
		case EvSendMessage:
			if ev.RoomID == "" {
				continue
			}
			msg := h.relay.Message(ev.RoomID, ev.Message, ev.Sender)
			// Cross-instance fan-out; local delivery already happened
			if err := h.bus.Publish(ctx, ev.RoomID, msg); err != nil {
				h.log.Warn("bus.publish", "room", ev.RoomID, "err", err)
			}
		}
	}

	h.relay.Disconnect(id)
	h.log.Info("ws.disconnected", "conn", id, "user", uid)
	_ = c.Close()
}
