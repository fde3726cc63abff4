package streamproc

import (
	"context"
	"strings"
)

// TokenStreamer filters LLM token chunks by namespace pattern and message
// tag, accumulates streamed text per scope, and hands tool-call chunks to
// the tracker.
type TokenStreamer struct {
	cfg     TokenStreamingConfig
	tracker *ToolCallTracker
	handler *MessageHandler

	// accumulators is the per-key text buffer, keyed by
	// "{scope}:{task_id or 'default'}:{message_id}" so that distinct
	// message ids on the same scope never share a buffer.
	accumulators map[string]*strings.Builder
}

// NewTokenStreamer constructs a streamer sharing the tracker and message
// handler the orchestrator also wires into the diff engine, since tool-call
// chunk forwarding and cross-mode dedup both flow through those shared
// instances.
func NewTokenStreamer(cfg TokenStreamingConfig, tracker *ToolCallTracker, handler *MessageHandler) *TokenStreamer {
	return &TokenStreamer{
		cfg:          cfg,
		tracker:      tracker,
		handler:      handler,
		accumulators: make(map[string]*strings.Builder),
	}
}

func (t *TokenStreamer) Reset() {
	t.accumulators = make(map[string]*strings.Builder)
}

// HandleChunk processes one TOKEN-mode (message, metadata) chunk.
func (t *TokenStreamer) HandleChunk(ctx context.Context, scope Scope, message *Message) []Event {
	pattern := scope.Pattern()
	if !t.cfg.eligible(pattern) {
		return nil
	}
	if !t.cfg.matchesTags(message.Tags) {
		return nil
	}

	var events []Event
	for _, chunk := range message.ToolCallChunks {
		events = append(events, t.tracker.HandleChunk(ctx, scope, message.ID, chunk.Index, chunk.ID, chunk.Name, chunk.Args)...)
	}

	if message.Content != "" {
		t.handler.MarkStreamed(message.ID)
		key := scope.DisplayName() + ":" + scope.TaskIDOrDefault() + ":" + message.ID
		buf := t.accumulators[key]
		if buf == nil {
			buf = &strings.Builder{}
			t.accumulators[key] = buf
		}
		buf.WriteString(message.Content)
		events = append(events, newTokenStreamEvent(scope, message.ID, message.Content, buf.String(), firstTag(message.Tags)))
	}
	return events
}

func firstTag(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
