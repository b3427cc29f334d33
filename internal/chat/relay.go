package chat

import (
	"log/slog"
	"sync"
	"time"
)

// Relay applies connection events against the room directory and fans the
// resulting notifications out to occupants. All mutation runs under one
// mutex, so per-room event order is the order events were accepted, and
// occupant snapshots used for fan-out always reflect the latest completed
// mutation. Delivery to each recipient is an independent non-blocking send;
// a slow peer misses the event, nothing else stalls.
type Relay struct {
	mu  sync.Mutex
	log *slog.Logger
	reg *Registry
	dir *Directory
	now func() time.Time
}

func NewRelay(log *slog.Logger) *Relay {
	reg := NewRegistry()
	return &Relay{
		log: log,
		reg: reg,
		dir: NewDirectory(reg),
		now: time.Now,
	}
}

// Connect registers a new connection and returns its id
func (r *Relay) Connect(sink Sink) ConnID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.reg.Register(sink)
	r.log.Debug("relay.connect", "conn", id)
	return id
}

// Join adds the connection to the room and tells the existing occupants.
// The joiner itself is not notified. Re-joins are silent no-ops.
func (r *Relay) Join(id ConnID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.dir.Join(roomID, id) {
		return
	}
	r.log.Debug("relay.join", "conn", id, "room", roomID)
	ev := ServerEvent{Type: EvParticipantJoined, RoomID: roomID, ConnectionID: string(id)}
	r.fanOut(roomID, ev, id)
}

// Leave removes the connection from the room and tells the remaining
// occupants. Leaving a room one never joined is a no-op, no notification.
func (r *Relay) Leave(id ConnID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.dir.Leave(roomID, id) {
		return
	}
	r.log.Debug("relay.leave", "conn", id, "room", roomID)
	ev := ServerEvent{Type: EvParticipantLeft, RoomID: roomID, ConnectionID: string(id)}
	r.fanOut(roomID, ev, "")
}

// Message stamps the body with server time and broadcasts to every current
// occupant of the room, the sender included. The sender name is whatever the
// client asserted; clients tell their own messages apart by comparing it.
// Returns the stamped event for cross-instance publication.
func (r *Relay) Message(roomID, body, sender string) ServerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev := ServerEvent{
		Type:      EvChatMessage,
		RoomID:    roomID,
		Message:   body,
		Sender:    sender,
		Timestamp: r.now().UTC().Format(time.RFC3339),
	}
	r.fanOut(roomID, ev, "")
	return ev
}

// Disconnect evicts the connection from every room it occupied, notifying
// the remaining occupants of each, then drops its registry entry.
// Idempotent: a second disconnect finds nothing to clean up.
func (r *Relay) Disconnect(id ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, roomID := range r.reg.RoomsOf(id) {
		if r.dir.Leave(roomID, id) {
			ev := ServerEvent{Type: EvParticipantLeft, RoomID: roomID, ConnectionID: string(id)}
			r.fanOut(roomID, ev, "")
		}
	}
	r.reg.Unregister(id)
	r.log.Debug("relay.disconnect", "conn", id)
}

// Deliver fans an externally produced event out to the room's current local
// occupants. Used by the redis bus for messages originating on another
// instance.
func (r *Relay) Deliver(roomID string, ev ServerEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fanOut(roomID, ev, "")
}

// Occupants returns a snapshot of the room's occupant set
func (r *Relay) Occupants(roomID string) []ConnID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dir.OccupantsOf(roomID)
}

// Rooms returns a snapshot of the connection's memberships
func (r *Relay) Rooms(id ConnID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reg.RoomsOf(id)
}

// fanOut sends ev to every occupant of roomID except skip. Caller holds mu.
func (r *Relay) fanOut(roomID string, ev ServerEvent, skip ConnID) {
	for _, id := range r.dir.OccupantsOf(roomID) {
		if id == skip {
			continue
		}
		sink := r.reg.SinkOf(id)
		if sink == nil {
			continue
		}
		if !sink.Send(ev) {
			r.log.Warn("relay.drop", "conn", id, "room", roomID, "type", ev.Type)
		}
	}
}
