package chat

// Directory maps room ids to occupant sets. Rooms come into being on first
// join and are pruned once empty; an absent room reads as an empty set.
// Not safe for concurrent use; the Relay serializes all access.
type Directory struct {
	rooms map[string]map[ConnID]struct{}
	reg   *Registry
}

func NewDirectory(reg *Registry) *Directory {
	return &Directory{rooms: map[string]map[ConnID]struct{}{}, reg: reg}
}

// Join adds the connection to the room, creating the room if needed, and
// records the membership on the registry side. Re-joining is idempotent.
// Reports whether the connection was newly added.
func (d *Directory) Join(roomID string, id ConnID) bool {
	if !d.reg.known(id) {
		return false
	}
	occ := d.rooms[roomID]
	if occ == nil {
		occ = map[ConnID]struct{}{}
		d.rooms[roomID] = occ
	}
	if _, ok := occ[id]; ok {
		return false
	}
	occ[id] = struct{}{}
	d.reg.addRoom(id, roomID)
	return true
}

// Leave removes the connection from the room if present; reports whether it
// was an occupant. Empty rooms are pruned.
func (d *Directory) Leave(roomID string, id ConnID) bool {
	occ := d.rooms[roomID]
	if occ == nil {
		return false
	}
	if _, ok := occ[id]; !ok {
		return false
	}
	delete(occ, id)
	d.reg.removeRoom(id, roomID)
	if len(occ) == 0 {
		delete(d.rooms, roomID)
	}
	return true
}

// OccupantsOf returns the current occupant set, empty for unknown rooms
func (d *Directory) OccupantsOf(roomID string) []ConnID {
	occ := d.rooms[roomID]
	out := make([]ConnID, 0, len(occ))
	for id := range occ {
		out = append(out, id)
	}
	return out
}

// LeaveAll evicts the connection from every room it occupies and returns the
// rooms it left
func (d *Directory) LeaveAll(id ConnID) []string {
	rooms := d.reg.RoomsOf(id)
	for _, roomID := range rooms {
		d.Leave(roomID, id)
	}
	return rooms
}
