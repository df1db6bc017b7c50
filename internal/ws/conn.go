package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/Pvbhat123/signaling-Server/internal/signaling"
)

const (
	// Outbound buffer per connection; a peer that stops draining gets frames
	// dropped rather than stalling the hub.
	outBufferSize = 256

	pingPeriod = 20 * time.Second

	// 64 KB is plenty for an SDP offer plus ICE candidates.
	maxMessageSize = 64 * 1024
)

// Conn wraps one websocket connection for the signaling hub. It satisfies
// signaling.Sender with a non-blocking buffered send.
type Conn struct {
	id  string
	ws  *websocket.Conn
	out chan signaling.Event
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps an accepted socket under the given connection id.
func NewConn(id string, ws *websocket.Conn) *Conn {
	ws.SetReadLimit(maxMessageSize)
	return &Conn{
		id: id, ws: ws,
		out: make(chan signaling.Event, outBufferSize),
	}
}

// ID returns the server-assigned connection id.
func (c *Conn) ID() string { return c.id }

// Send queues an outbound event without blocking; full buffers drop.
func (c *Conn) Send(e signaling.Event) {
	select {
	case c.out <- e:
	default:
	}
}

// Read blocks until the next text/binary frame arrives.
// Returns false once the connection is closed.
func (c *Conn) Read(ctx context.Context) ([]byte, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return nil, false
		}
		if typ == websocket.MessageText || typ == websocket.MessageBinary {
			return data, true
		}
	}
}

// WriteLoop drains queued events to the socket and pings periodically.
// Exits when ctx is cancelled.
func (c *Conn) WriteLoop(ctx context.Context) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()

	for {
		select {
		case e := <-c.out:
			b, err := json.Marshal(e)
			if err != nil {
				continue
			}
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the WS connection normally
func (c *Conn) Close() error { return c.ws.Close(websocket.StatusNormalClosure, "bye") }
