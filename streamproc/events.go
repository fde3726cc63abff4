package streamproc

// EventType tags the variant of an Event.
type EventType string

const (
	EventTokenStream     EventType = "token_stream"
	EventChannelValue    EventType = "channel_value"
	EventChannelUpdate   EventType = "channel_update"
	EventArtifact        EventType = "artifact"
	EventMessageReceived EventType = "message_received"
	EventToolCall        EventType = "tool_call"
	// EventError is the terminal event emitted just before the sequence
	// ends on an unrecoverable fault.
	EventError EventType = "error"
)

// Event is the tagged union produced by the stream processor. Every
// variant carries the originating scope's display name and node name.
type Event interface {
	Type() EventType
	Scope() string
	NodeName() string
}

// base is embedded by every concrete event to supply the common scope
// fields without repeating accessor boilerplate.
type base struct {
	t     EventType
	scope string
	node  string
}

func newBase(t EventType, scope Scope) base {
	return base{t: t, scope: scope.DisplayName(), node: scope.NodeName()}
}

func (b base) Type() EventType  { return b.t }
func (b base) Scope() string    { return b.scope }
func (b base) NodeName() string { return b.node }

// TokenStream carries one content delta for a streaming LLM message.
type TokenStream struct {
	base
	MessageID          string
	ContentDelta       string
	AccumulatedContent string
	Tag                string
}

func newTokenStreamEvent(scope Scope, messageID, delta, accumulated, tag string) TokenStream {
	return TokenStream{
		base:               newBase(EventTokenStream, scope),
		MessageID:          messageID,
		ContentDelta:       delta,
		AccumulatedContent: accumulated,
		Tag:                tag,
	}
}

// ChannelValue carries a GENERIC or MESSAGE channel's current value,
// optionally paired with the value-level delta from the prior observation.
type ChannelValue struct {
	base
	Key   string
	Value any
	Delta any
	Kind  ChannelKind
}

func newChannelValueEvent(scope Scope, key string, value, delta any, kind ChannelKind) ChannelValue {
	return ChannelValue{base: newBase(EventChannelValue, scope), Key: key, Value: value, Delta: delta, Kind: kind}
}

// ChannelUpdate carries a runtime-delivered DELTA_ONLY update for a GENERIC
// channel.
type ChannelUpdate struct {
	base
	Key   string
	Delta any
}

func newChannelUpdateEvent(scope Scope, key string, delta any) ChannelUpdate {
	return ChannelUpdate{base: newBase(EventChannelUpdate, scope), Key: key, Delta: delta}
}

// Artifact carries a presentation-oriented payload tagged with its
// configured artifact type.
type Artifact struct {
	base
	Key          string
	ArtifactType string
	Payload      any
	Delta        any
}

func newArtifactEvent(scope Scope, key, artifactType string, payload, delta any) Artifact {
	return Artifact{base: newBase(EventArtifact, scope), Key: key, ArtifactType: artifactType, Payload: payload, Delta: delta}
}

// MessageReceived carries a newly observed, fully-assembled message,
// deduplicated by message identifier within the session.
type MessageReceived struct {
	base
	MessageID string
	Message   *Message
}

func newMessageReceivedEvent(scope Scope, message *Message) MessageReceived {
	return MessageReceived{base: newBase(EventMessageReceived, scope), MessageID: message.ID, Message: message}
}

// ToolCallStatus is the event-facing vocabulary of tool-call lifecycle
// transitions, distinct from the tracker's internal lifecycle states: this
// is the vocabulary a consumer sees on emitted events, not the bookkeeping
// states the tracker cycles through internally.
type ToolCallStatus string

const (
	ToolCallArgsStarted   ToolCallStatus = "args_started"
	ToolCallArgsStreaming ToolCallStatus = "args_streaming"
	ToolCallArgsReady     ToolCallStatus = "args_ready"
	ToolCallResultSuccess ToolCallStatus = "result_success"
	ToolCallResultError   ToolCallStatus = "result_error"
)

// ToolCall carries one lifecycle transition of a reconstructed tool call.
type ToolCall struct {
	base
	ToolCallID      string
	ToolName        string
	Status          ToolCallStatus
	AccumulatedArgs string
	ParsedArgs      any
	Result          any
	Description     string
}

func newToolCallEvent(scope Scope, toolCallID, toolName string, status ToolCallStatus) ToolCall {
	return ToolCall{
		base:       newBase(EventToolCall, scope),
		ToolCallID: toolCallID,
		ToolName:   toolName,
		Status:     status,
	}
}

// ErrorEvent is the terminal fault event ending an event sequence.
type ErrorEvent struct {
	base
	Kind        string
	Description string
}

func newErrorEvent(scope Scope, kind, description string) ErrorEvent {
	return ErrorEvent{base: newBase(EventError, scope), Kind: kind, Description: description}
}
