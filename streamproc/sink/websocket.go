package sink

import (
	"context"
	"encoding/json"

	"github.com/coder/websocket"

	"github.com/errajibadr/langgraph-agent-repo/streamproc"
)

// wsWriter is the subset of *websocket.Conn a WebSocketSink needs, kept
// narrow so tests can substitute a fake.
type wsWriter interface {
	Write(ctx context.Context, msgType websocket.MessageType, data []byte) error
}

// WebSocketSink forwards every published event to a browser or CLI client
// as one JSON object per text frame. Register it on a Bus to expose a
// streaming session over a websocket connection.
type WebSocketSink struct {
	conn wsWriter
}

// NewWebSocketSink wraps an already-accepted websocket connection.
func NewWebSocketSink(conn *websocket.Conn) *WebSocketSink {
	return &WebSocketSink{conn: conn}
}

// HandleEvent implements Subscriber.
func (s *WebSocketSink) HandleEvent(ctx context.Context, event streamproc.Event) error {
	payload, err := json.Marshal(wireEvent{
		Type: string(event.Type()),
		Scope: event.Scope(),
		Node:  event.NodeName(),
		Event: event,
	})
	if err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageText, payload)
}

// wireEvent is the JSON envelope a WebSocketSink writes per event: the
// tag fields every Event carries, plus the concrete event struct inline.
type wireEvent struct {
	Type  string           `json:"type"`
	Scope string           `json:"scope"`
	Node  string           `json:"node"`
	Event streamproc.Event `json:"payload"`
}
