package signaling

import "encoding/json"

// Kind names one message on the wire. The inbound set is closed; anything
// else is answered with EventError.
type Kind string

// Inbound request kinds.
const (
	KindCreateRoom Kind = "createRoom"
	KindJoinRoom   Kind = "joinRoom"
	KindSignal     Kind = "signal"
	KindLeaveRoom  Kind = "leaveRoom"
)

// Outbound event kinds.
const (
	EventConnected   Kind = "connected"
	EventRoomCreated Kind = "roomCreated"
	EventUserJoined  Kind = "userJoined"
	EventUserLeft    Kind = "userLeft"
	EventSignal      Kind = "signal"
	EventError       Kind = "error"
)

// Request is one inbound frame from a peer. Signal payloads are relayed as-is
// and never inspected.
type Request struct {
	Type   Kind            `json:"type"`
	Room   string          `json:"room,omitempty"`
	To     string          `json:"to,omitempty"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

// Event is one outbound frame to a peer.
type Event struct {
	Type   Kind            `json:"type"`
	Room   string          `json:"room,omitempty"`
	Peer   string          `json:"peer,omitempty"`
	From   string          `json:"from,omitempty"`
	Signal json.RawMessage `json:"signal,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// Sender delivers events to one connected peer. Implementations must not
// block; the hub calls Send while fanning out to many peers.
type Sender interface {
	Send(e Event)
}
