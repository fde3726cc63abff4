package streamproc

// MessageHandler is the specialized channel handler for ChannelMessage
// channels: it identifies new messages by identifier, deduplicates across
// the session, and forwards finalized tool-call and tool-result messages to
// the tracker.
type MessageHandler struct {
	seen    map[string]struct{}
	tracker *ToolCallTracker
}

// NewMessageHandler constructs a handler sharing the given tool-call
// tracker, since result linkage and message finalization use the same
// tracker instance the token streamer feeds.
func NewMessageHandler(tracker *ToolCallTracker) *MessageHandler {
	return &MessageHandler{seen: make(map[string]struct{}), tracker: tracker}
}

// Reset drops the seen-message set.
func (h *MessageHandler) Reset() {
	h.seen = make(map[string]struct{})
}

// MarkStreamed records that message_id has already been delivered via
// TOKEN mode, so a later finalized copy observed through a MESSAGE channel
// is not re-emitted as MessageReceived (cross-mode dedup).
func (h *MessageHandler) MarkStreamed(messageID string) {
	h.seen[messageID] = struct{}{}
}

// HandleValues processes the newly appended tail of a MESSAGE channel's
// value (the list-tail delta already computed by the diff engine). It
// returns the events to emit and whether any message in delta was new; the
// caller falls back to a plain ChannelValue event when nothing was new.
func (h *MessageHandler) HandleValues(scope Scope, delta []any) (events []Event, anyNew bool) {
	for _, raw := range delta {
		msg, ok := asMessage(raw)
		if !ok || msg.ID == "" {
			continue
		}
		if msg.IsToolResult() {
			events = append(events, h.tracker.HandleResult(scope, msg.ToolCallID, !msg.IsError, msg.ResultPayload())...)
		}
		if len(msg.ToolCalls) > 0 {
			events = append(events, h.tracker.HandleFinalized(scope, msg.ID, msg.ToolCalls)...)
		}
		if _, already := h.seen[msg.ID]; already {
			continue
		}
		h.seen[msg.ID] = struct{}{}
		anyNew = true
		events = append(events, newMessageReceivedEvent(scope, msg))
		events = append(events, h.tracker.Finalize(msg.ID)...)
	}
	return events, anyNew
}
