package signaling

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureSender records every event instead of writing to a socket.
type captureSender struct {
	events []Event
}

func (s *captureSender) Send(e Event) { s.events = append(s.events, e) }

func (s *captureSender) last() Event { return s.events[len(s.events)-1] }

func (s *captureSender) ofType(k Kind) []Event {
	var out []Event
	for _, e := range s.events {
		if e.Type == k {
			out = append(out, e)
		}
	}
	return out
}

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func connect(h *Hub, id string) *captureSender {
	s := &captureSender{}
	h.Connect(id, s)
	return s
}

func TestHub_Connect_AnnouncesAssignedID(t *testing.T) {
	req := require.New(t)
	h := newTestHub()

	a := connect(h, "conn-a")

	req.Len(a.events, 1)
	req.Equal(EventConnected, a.events[0].Type)
	req.Equal("conn-a", a.events[0].Peer)
}

func TestHub_CreateRoom_RepliesToCreatorOnly(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})

	created := a.ofType(EventRoomCreated)
	req.Len(created, 1)
	req.NotEmpty(created[0].Room)
	req.Empty(b.ofType(EventRoomCreated))

	// The creator is not a member until it joins.
	req.False(h.rooms.IsMember(created[0].Room, "a"))
}

func TestHub_JoinRoom_UnknownRoom(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")

	h.Dispatch("a", Request{Type: KindJoinRoom, Room: "no-such-room"})

	errs := a.ofType(EventError)
	req.Len(errs, 1)
	req.Equal("Room does not exist", errs[0].Reason)
	req.Equal(0, h.rooms.Count())
}

func TestHub_JoinRoom_AnnouncesToOthersOnly(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room

	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})
	// Sole member: nobody to announce to, and never to the joiner itself.
	req.Empty(a.ofType(EventUserJoined))

	h.Dispatch("b", Request{Type: KindJoinRoom, Room: roomID})
	joined := a.ofType(EventUserJoined)
	req.Len(joined, 1)
	req.Equal("b", joined[0].Peer)
	req.Empty(b.ofType(EventUserJoined))
}

func TestHub_JoinRoom_DuplicateJoinNotReannounced(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	_ = connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room
	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})
	h.Dispatch("b", Request{Type: KindJoinRoom, Room: roomID})
	h.Dispatch("b", Request{Type: KindJoinRoom, Room: roomID})

	req.Len(a.ofType(EventUserJoined), 1)
	req.Len(h.rooms.Members(roomID), 2)
}

func TestHub_Signal_ErrorsAreUndifferentiated(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room
	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})

	// Unknown room and non-member target read identically to the client.
	h.Dispatch("a", Request{Type: KindSignal, Room: "no-such-room", To: "b"})
	h.Dispatch("a", Request{Type: KindSignal, Room: roomID, To: "b"})

	errs := a.ofType(EventError)
	req.Len(errs, 2)
	req.Equal(errs[0].Reason, errs[1].Reason)
	req.Empty(b.ofType(EventSignal))
}

func TestHub_LeaveRoom_NotifiesRemaining(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room
	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})
	h.Dispatch("b", Request{Type: KindJoinRoom, Room: roomID})

	h.Dispatch("b", Request{Type: KindLeaveRoom, Room: roomID})

	left := a.ofType(EventUserLeft)
	req.Len(left, 1)
	req.Equal("b", left[0].Peer)
	req.Empty(b.ofType(EventUserLeft))
	req.False(h.rooms.IsMember(roomID, "b"))
}

func TestHub_LeaveRoom_SilentWhenNotAMember(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room
	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})

	h.Dispatch("b", Request{Type: KindLeaveRoom, Room: roomID})
	h.Dispatch("b", Request{Type: KindLeaveRoom, Room: "no-such-room"})

	req.Empty(a.ofType(EventUserLeft))
	req.Empty(b.ofType(EventError))
}

func TestHub_Disconnect_ReconcilesAllRooms(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")
	c := connect(h, "c")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	r1 := a.last().Room
	h.Dispatch("a", Request{Type: KindCreateRoom})
	r2 := a.last().Room

	h.Dispatch("a", Request{Type: KindJoinRoom, Room: r1})
	h.Dispatch("b", Request{Type: KindJoinRoom, Room: r1})
	h.Dispatch("b", Request{Type: KindJoinRoom, Room: r2})
	h.Dispatch("c", Request{Type: KindJoinRoom, Room: r2})

	h.Disconnect("b")

	req.False(h.rooms.IsMember(r1, "b"))
	req.False(h.rooms.IsMember(r2, "b"))

	// Exactly one userLeft per affected room's remaining members.
	aLeft := a.ofType(EventUserLeft)
	req.Len(aLeft, 1)
	req.Equal("b", aLeft[0].Peer)
	req.Equal(r1, aLeft[0].Room)

	cLeft := c.ofType(EventUserLeft)
	req.Len(cLeft, 1)
	req.Equal("b", cLeft[0].Peer)
	req.Equal(r2, cLeft[0].Room)

	req.Empty(b.ofType(EventUserLeft))
}

func TestHub_Disconnect_DeletesEmptiedRooms(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room
	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})

	h.Disconnect("a")

	conns, rooms := h.Stats()
	req.Equal(0, conns)
	req.Equal(0, rooms)
}

func TestHub_UnknownRequestType(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")

	h.Dispatch("a", Request{Type: "subscribe"})

	errs := a.ofType(EventError)
	req.Len(errs, 1)
	req.Equal("unknown message type", errs[0].Reason)
}

// The full rendezvous walk: create, join one by one, exchange a signal, lose
// a peer abruptly.
func TestHub_SignalingScenario(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	a := connect(h, "a")
	b := connect(h, "b")

	h.Dispatch("a", Request{Type: KindCreateRoom})
	roomID := a.last().Room
	req.False(h.rooms.IsMember(roomID, "a"))

	h.Dispatch("a", Request{Type: KindJoinRoom, Room: roomID})
	req.Empty(a.ofType(EventUserJoined))

	h.Dispatch("b", Request{Type: KindJoinRoom, Room: roomID})
	joined := a.ofType(EventUserJoined)
	req.Len(joined, 1)
	req.Equal("b", joined[0].Peer)

	payload := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	h.Dispatch("a", Request{Type: KindSignal, Room: roomID, To: "b", Signal: payload})
	signals := b.ofType(EventSignal)
	req.Len(signals, 1)
	req.Equal("a", signals[0].From)
	req.JSONEq(string(payload), string(signals[0].Signal))
	req.Empty(a.ofType(EventSignal))

	h.Disconnect("b")
	left := a.ofType(EventUserLeft)
	req.Len(left, 1)
	req.Equal("b", left[0].Peer)

	// a is still alone in the room; it is not deleted.
	req.True(h.rooms.IsMember(roomID, "a"))
	_, rooms := h.Stats()
	req.Equal(1, rooms)
}
