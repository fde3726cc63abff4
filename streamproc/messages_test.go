package streamproc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"
)

func TestMessageHandlerHandleValuesEmitsNewMessage(t *testing.T) {
	tracker := NewToolCallTracker(false, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)

	delta := []any{map[string]any{"id": "m1", "content": "hello"}}
	events, anyNew := handler.HandleValues(Scope{}, delta)
	require.True(t, anyNew)
	require.Len(t, events, 1)
	rcv := events[0].(MessageReceived)
	require.Equal(t, "m1", rcv.MessageID)
}

func TestMessageHandlerDedupesRepeatedMessage(t *testing.T) {
	tracker := NewToolCallTracker(false, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)

	delta := []any{map[string]any{"id": "m1", "content": "hello"}}
	handler.HandleValues(Scope{}, delta)

	events, anyNew := handler.HandleValues(Scope{}, delta)
	require.False(t, anyNew)
	require.Empty(t, events)
}

func TestMessageHandlerMarkStreamedPreventsReEmission(t *testing.T) {
	tracker := NewToolCallTracker(false, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)
	handler.MarkStreamed("m1")

	delta := []any{map[string]any{"id": "m1", "content": "hello"}}
	events, anyNew := handler.HandleValues(Scope{}, delta)
	require.False(t, anyNew)
	require.Empty(t, events)
}

func TestMessageHandlerForwardsToolResultToTracker(t *testing.T) {
	tracker := NewToolCallTracker(true, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)

	delta := []any{map[string]any{"id": "m2", "tool_call_id": "call_1", "content": "result text"}}
	events, anyNew := handler.HandleValues(Scope{}, delta)
	require.True(t, anyNew)

	var sawResult, sawReceived bool
	for _, ev := range events {
		switch ev.Type() {
		case EventToolCall:
			sawResult = true
			require.Equal(t, ToolCallResultSuccess, ev.(ToolCall).Status)
		case EventMessageReceived:
			sawReceived = true
		}
	}
	require.True(t, sawResult)
	require.True(t, sawReceived)
}

func TestMessageHandlerForwardsFinalizedToolCallsToTracker(t *testing.T) {
	tracker := NewToolCallTracker(true, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)

	delta := []any{&Message{
		ID: "m1",
		ToolCalls: []ToolCallSpec{
			{ID: "call_1", Name: "search", Args: map[string]any{"query": "golang"}},
		},
	}}
	events, anyNew := handler.HandleValues(Scope{}, delta)
	require.True(t, anyNew)

	var sawReady bool
	for _, ev := range events {
		if tc, ok := ev.(ToolCall); ok && tc.Status == ToolCallArgsReady {
			sawReady = true
			require.Equal(t, "call_1", tc.ToolCallID)
			require.Equal(t, map[string]any{"query": "golang"}, tc.ParsedArgs)
		}
	}
	require.True(t, sawReady)

	result := tracker.HandleResult(Scope{}, "call_1", true, "42 results")
	require.Len(t, result, 1)
	require.Equal(t, ToolCallResultSuccess, result[0].(ToolCall).Status)
}

func TestMessageHandlerResetDropsSeen(t *testing.T) {
	tracker := NewToolCallTracker(false, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)
	delta := []any{map[string]any{"id": "m1", "content": "hello"}}
	handler.HandleValues(Scope{}, delta)
	handler.Reset()

	_, anyNew := handler.HandleValues(Scope{}, delta)
	require.True(t, anyNew)
}
