package chat

import "github.com/google/uuid"

// ConnID identifies one live connection for its lifetime
type ConnID string

// Sink receives server events bound for one connection. Send must not block;
// it reports whether the event was accepted.
type Sink interface {
	Send(ev ServerEvent) bool
}

type connEntry struct {
	sink  Sink
	rooms map[string]struct{} // room ids this connection currently occupies
}

// Registry tracks live connections and their room memberships.
// It is not safe for concurrent use; the Relay serializes all access.
type Registry struct {
	conns map[ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: map[ConnID]*connEntry{}}
}

// Register adds a new connection and returns its id
func (g *Registry) Register(sink Sink) ConnID {
	id := ConnID(uuid.New().String())
	g.conns[id] = &connEntry{sink: sink, rooms: map[string]struct{}{}}
	return id
}

// Unregister drops the connection entry. No-op for unknown ids.
func (g *Registry) Unregister(id ConnID) {
	delete(g.conns, id)
}

// RoomsOf returns the rooms the connection occupies, empty for unknown ids
func (g *Registry) RoomsOf(id ConnID) []string {
	e := g.conns[id]
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.rooms))
	for r := range e.rooms {
		out = append(out, r)
	}
	return out
}

// SinkOf returns the connection's sink, nil for unknown ids
func (g *Registry) SinkOf(id ConnID) Sink {
	e := g.conns[id]
	if e == nil {
		return nil
	}
	return e.sink
}

func (g *Registry) addRoom(id ConnID, roomID string) {
	if e := g.conns[id]; e != nil {
		e.rooms[roomID] = struct{}{}
	}
}

func (g *Registry) removeRoom(id ConnID, roomID string) {
	if e := g.conns[id]; e != nil {
		delete(e.rooms, roomID)
	}
}

func (g *Registry) known(id ConnID) bool {
	return g.conns[id] != nil
}
