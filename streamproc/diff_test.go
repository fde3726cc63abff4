package streamproc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"
)

func newTestDiffEngine(channels []ChannelConfig) *diffEngine {
	tracker := NewToolCallTracker(false, telemetry.NewNoopLogger())
	handler := NewMessageHandler(tracker)
	return newDiffEngine(channels, handler, telemetry.NewNoopLogger())
}

func TestDiffEngineGenericChannelFirstAndSecondObservation(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "ui", DeliveryMode: FullValue, Kind: ChannelGeneric},
	})
	ctx := context.Background()
	scope := Scope{}

	events := engine.ProcessFullValue(ctx, scope, map[string]any{"ui": map[string]any{"a": 1}})
	require.Len(t, events, 1)
	cv := events[0].(ChannelValue)
	require.Nil(t, cv.Delta)

	events = engine.ProcessFullValue(ctx, scope, map[string]any{"ui": map[string]any{"a": 1, "b": 2}})
	require.Len(t, events, 1)
	cv = events[0].(ChannelValue)
	require.Equal(t, map[string]any{"b": 2}, cv.Delta)
}

func TestDiffEngineChannelFilterRejectsValue(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "ui", DeliveryMode: FullValue, Kind: ChannelGeneric, Filter: func(v any) bool { return false }},
	})
	events := engine.ProcessFullValue(context.Background(), Scope{}, map[string]any{"ui": map[string]any{"a": 1}})
	require.Empty(t, events)
}

func TestDiffEngineMessageChannelEmitsReceivedOnNewTail(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "messages", DeliveryMode: FullValue, Kind: ChannelMessage},
	})
	ctx := context.Background()
	scope := Scope{}

	events := engine.ProcessFullValue(ctx, scope, map[string]any{
		"messages": []any{map[string]any{"id": "m1", "content": "hi"}},
	})
	require.Len(t, events, 1)
	require.Equal(t, EventMessageReceived, events[0].Type())

	events = engine.ProcessFullValue(ctx, scope, map[string]any{
		"messages": []any{
			map[string]any{"id": "m1", "content": "hi"},
			map[string]any{"id": "m2", "content": "there"},
		},
	})
	require.Len(t, events, 1)
	rcv := events[0].(MessageReceived)
	require.Equal(t, "m2", rcv.MessageID)
}

func TestDiffEngineMessageChannelFallsBackToChannelValueWhenNothingNew(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "messages", DeliveryMode: FullValue, Kind: ChannelMessage},
	})
	ctx := context.Background()
	scope := Scope{}

	val := map[string]any{"messages": []any{map[string]any{"id": "m1", "content": "hi"}}}
	engine.ProcessFullValue(ctx, scope, val)
	events := engine.ProcessFullValue(ctx, scope, val)
	require.Len(t, events, 1)
	require.Equal(t, EventChannelValue, events[0].Type())
}

func TestDiffEngineArtifactSkipsFalsyValue(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "doc", DeliveryMode: FullValue, Kind: ChannelArtifact, ArtifactType: "markdown"},
	})
	events := engine.ProcessFullValue(context.Background(), Scope{}, map[string]any{"doc": ""})
	require.Empty(t, events)
}

func TestDiffEngineArtifactEmitsNonFalsyValue(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "doc", DeliveryMode: FullValue, Kind: ChannelArtifact, ArtifactType: "markdown"},
	})
	events := engine.ProcessFullValue(context.Background(), Scope{}, map[string]any{"doc": "# Title"})
	require.Len(t, events, 1)
	art := events[0].(Artifact)
	require.Equal(t, "markdown", art.ArtifactType)
	require.Equal(t, "# Title", art.Payload)
}

func TestDiffEngineProcessDeltaOnlyGeneric(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "counter", DeliveryMode: DeltaOnly, Kind: ChannelGeneric},
	})
	events := engine.ProcessDeltaOnly(context.Background(), Scope{}, map[string]any{
		"node_a": map[string]any{"counter": 5},
	})
	require.Len(t, events, 1)
	upd := events[0].(ChannelUpdate)
	require.Equal(t, 5, upd.Delta)
}

func TestDiffEngineProcessDeltaOnlyArtifact(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "doc", DeliveryMode: DeltaOnly, Kind: ChannelArtifact, ArtifactType: "markdown"},
	})
	events := engine.ProcessDeltaOnly(context.Background(), Scope{}, map[string]any{
		"node_a": map[string]any{"doc": "more text"},
	})
	require.Len(t, events, 1)
	require.Equal(t, EventArtifact, events[0].Type())
}

func TestDiffEngineProcessDeltaOnlyArtifactSkipsFalsyDelta(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "doc", DeliveryMode: DeltaOnly, Kind: ChannelArtifact, ArtifactType: "markdown"},
	})
	events := engine.ProcessDeltaOnly(context.Background(), Scope{}, map[string]any{
		"node_a": map[string]any{"doc": ""},
	})
	require.Empty(t, events)
}

func TestDiffEngineResetDropsPreviousTable(t *testing.T) {
	engine := newTestDiffEngine([]ChannelConfig{
		{Key: "ui", DeliveryMode: FullValue, Kind: ChannelGeneric},
	})
	ctx := context.Background()
	engine.ProcessFullValue(ctx, Scope{}, map[string]any{"ui": map[string]any{"a": 1}})
	engine.Reset()

	events := engine.ProcessFullValue(ctx, Scope{}, map[string]any{"ui": map[string]any{"a": 1}})
	cv := events[0].(ChannelValue)
	require.Nil(t, cv.Delta)
}
