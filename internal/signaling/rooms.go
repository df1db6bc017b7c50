package signaling

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errors.New("room does not exist")
	ErrTargetNotInRoom = errors.New("target is not a member of the room")
)

// Departure records one room a connection was removed from and who is left
// to hear about it.
type Departure struct {
	Room      string
	Remaining []string
}

// RoomManager is the sole owner of the room id -> member set mapping. One
// mutex covers every operation so that RemoveFromAll mutates a stable view;
// a room present in the map always has at least one member.
type RoomManager struct {
	mu    sync.Mutex
	rooms map[string]map[string]struct{}
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]map[string]struct{})}
}

// Create registers a fresh empty room and returns its id. The creator is not
// a member until it joins explicitly.
func (m *RoomManager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.rooms[id] = make(map[string]struct{})
	m.mu.Unlock()
	return id
}

// Join adds connID to the room. It returns the members that were already
// present so the caller can announce the arrival, and reports whether connID
// was newly added (re-joining is a no-op and must not be re-announced).
func (m *RoomManager) Join(roomID, connID string) (others []string, joined bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.rooms[roomID]
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	if _, present := members[connID]; present {
		return nil, false, nil
	}
	others = make([]string, 0, len(members))
	for id := range members {
		others = append(others, id)
	}
	members[connID] = struct{}{}
	return others, true, nil
}

// Leave removes connID from the room if both exist, deleting the room the
// moment it empties. It returns the members left behind and reports whether
// anything was removed; a missing room or member is a silent no-op, so
// duplicate or late leave notifications are harmless.
func (m *RoomManager) Leave(roomID, connID string) (remaining []string, removed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.rooms[roomID]
	if !ok {
		return nil, false
	}
	if _, present := members[connID]; !present {
		return nil, false
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(m.rooms, roomID)
		return nil, true
	}
	for id := range members {
		remaining = append(remaining, id)
	}
	return remaining, true
}

// RemoveFromAll strips connID out of every room that contains it, deleting
// rooms left empty. It scans the whole registry; rooms are ephemeral and few,
// so the linear cost is fine. The returned departures carry the remaining
// members per affected room for one notification each.
func (m *RoomManager) RemoveFromAll(connID string) []Departure {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Departure
	for roomID, members := range m.rooms {
		if _, present := members[connID]; !present {
			continue
		}
		delete(members, connID)
		d := Departure{Room: roomID}
		for id := range members {
			d.Remaining = append(d.Remaining, id)
		}
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
		out = append(out, d)
	}
	return out
}

// Check reports whether connID can be addressed through roomID, using the
// same error the router surfaces.
func (m *RoomManager) Check(roomID, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if _, present := members[connID]; !present {
		return ErrTargetNotInRoom
	}
	return nil
}

// IsMember reports whether connID currently belongs to roomID.
func (m *RoomManager) IsMember(roomID, connID string) bool {
	return m.Check(roomID, connID) == nil
}

// Count returns the number of active rooms.
func (m *RoomManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// Members returns a snapshot of a room's member ids, nil if the room does
// not exist.
func (m *RoomManager) Members(roomID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	return out
}
