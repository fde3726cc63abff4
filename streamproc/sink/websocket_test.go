package sink

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"
)

type fakeWSWriter struct {
	msgType websocket.MessageType
	data    []byte
}

func (w *fakeWSWriter) Write(ctx context.Context, msgType websocket.MessageType, data []byte) error {
	w.msgType = msgType
	w.data = data
	return nil
}

func TestWebSocketSinkHandleEventWritesTextFrame(t *testing.T) {
	writer := &fakeWSWriter{}
	sink := &WebSocketSink{conn: writer}

	require.NoError(t, sink.HandleEvent(context.Background(), newTestEvent()))
	require.Equal(t, websocket.MessageText, writer.msgType)

	var envelope struct {
		Type  string `json:"type"`
		Scope string `json:"scope"`
		Node  string `json:"node"`
	}
	require.NoError(t, json.Unmarshal(writer.data, &envelope))
	require.Equal(t, "token_stream", envelope.Type)
	require.Equal(t, "main", envelope.Scope)
}
