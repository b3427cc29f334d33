package chat

import "testing"

type nullSink struct{}

func (nullSink) Send(ServerEvent) bool { return true }

func TestDirectoryJoinLeave(t *testing.T) {
	reg := NewRegistry()
	dir := NewDirectory(reg)
	id := reg.Register(nullSink{})

	if !dir.Join("r1", id) {
		t.Fatal("first join not recorded")
	}
	if dir.Join("r1", id) {
		t.Error("rejoin reported as new")
	}
	if got := dir.OccupantsOf("r1"); len(got) != 1 || got[0] != id {
		t.Errorf("occupants = %v", got)
	}
	if got := reg.RoomsOf(id); len(got) != 1 || got[0] != "r1" {
		t.Errorf("registry rooms = %v", got)
	}

	if !dir.Leave("r1", id) {
		t.Fatal("leave of occupant not recorded")
	}
	if dir.Leave("r1", id) {
		t.Error("second leave reported as removal")
	}
	if got := dir.OccupantsOf("r1"); len(got) != 0 {
		t.Errorf("occupants after leave = %v", got)
	}
	if got := reg.RoomsOf(id); len(got) != 0 {
		t.Errorf("registry rooms after leave = %v", got)
	}
}

func TestDirectoryPrunesEmptyRooms(t *testing.T) {
	reg := NewRegistry()
	dir := NewDirectory(reg)
	id := reg.Register(nullSink{})

	dir.Join("r1", id)
	dir.Leave("r1", id)
	if _, ok := dir.rooms["r1"]; ok {
		t.Error("empty room not pruned")
	}
	// pruned room still reads as an empty set
	if got := dir.OccupantsOf("r1"); len(got) != 0 {
		t.Errorf("occupants = %v", got)
	}
}

func TestDirectoryUnknownIDsAreNoOps(t *testing.T) {
	reg := NewRegistry()
	dir := NewDirectory(reg)

	if dir.Join("r1", "ghost") {
		t.Error("unregistered conn joined a room")
	}
	if dir.Leave("r1", "ghost") {
		t.Error("unknown leave reported as removal")
	}
	if got := dir.LeaveAll("ghost"); len(got) != 0 {
		t.Errorf("leaveAll on unknown id = %v", got)
	}
}

func TestDirectoryLeaveAll(t *testing.T) {
	reg := NewRegistry()
	dir := NewDirectory(reg)
	id := reg.Register(nullSink{})
	other := reg.Register(nullSink{})

	dir.Join("r1", id)
	dir.Join("r2", id)
	dir.Join("r1", other)

	left := dir.LeaveAll(id)
	if len(left) != 2 {
		t.Fatalf("left rooms = %v", left)
	}
	if got := reg.RoomsOf(id); len(got) != 0 {
		t.Errorf("memberships after leaveAll = %v", got)
	}
	if got := dir.OccupantsOf("r1"); len(got) != 1 || got[0] != other {
		t.Errorf("r1 occupants = %v", got)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register(nullSink{})

	if reg.SinkOf(id) == nil {
		t.Fatal("no sink for registered conn")
	}
	if reg.SinkOf("ghost") != nil {
		t.Error("sink for unknown id")
	}

	reg.Unregister(id)
	if reg.SinkOf(id) != nil {
		t.Error("sink survives unregister")
	}
	if got := reg.RoomsOf(id); len(got) != 0 {
		t.Errorf("rooms after unregister = %v", got)
	}
	// idempotent
	reg.Unregister(id)
}
