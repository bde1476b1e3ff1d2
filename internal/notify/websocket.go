package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Default WebSocket delivery bounds.
const (
	DefaultWSHandshakeTimeout = 10 * time.Second
	DefaultWSWriteTimeout     = 10 * time.Second
)

// WSNotifier pushes messages as single JSON frames to a WebSocket endpoint,
// typically a live ops channel. Each Send dials, writes one frame, and
// closes; a batch job emits at most one notification per run so there is
// nothing to keep alive between runs.
type WSNotifier struct {
	endpoint     string
	dialer       *websocket.Dialer
	writeTimeout time.Duration
}

// NewWSNotifier creates a WebSocket notifier targeting endpoint.
func NewWSNotifier(endpoint string) *WSNotifier {
	return &WSNotifier{
		endpoint: endpoint,
		dialer: &websocket.Dialer{
			HandshakeTimeout: DefaultWSHandshakeTimeout,
		},
		writeTimeout: DefaultWSWriteTimeout,
	}
}

// Compile-time interface check.
var _ Notifier = (*WSNotifier)(nil)

// Send dials the endpoint and writes the message as one text frame.
func (n *WSNotifier) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	conn, _, err := n.dialer.DialContext(ctx, n.endpoint, nil)
	if err != nil {
		return fmt.Errorf("dial notification endpoint: %w", err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(n.writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		return fmt.Errorf("write notification frame: %w", err)
	}

	// Polite close so the peer sees a clean shutdown rather than a drop.
	deadline := time.Now().Add(n.writeTimeout)
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	return nil
}
