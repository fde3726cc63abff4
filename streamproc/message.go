package streamproc

// ToolCallChunk is a partial piece of a tool-call invocation as it streams
// in TOKEN mode. ID and Name are non-nil only on the first chunk of a given
// (message_id, index) sequence.
type ToolCallChunk struct {
	Index int
	ID    *string
	Name  *string
	Args  string
	Type  string
}

// ToolCallSpec is a finalized tool call carried on a fully-assembled
// message, as opposed to the chunks that streamed it.
type ToolCallSpec struct {
	ID   string
	Name string
	Args map[string]any
	Type string
}

// Message is the minimal message-shaped object consumed from the runtime.
// A tool result message sets ToolCallID and leaves ToolCalls empty.
type Message struct {
	ID             string
	Content        string
	Tags           []string
	ToolCallChunks []ToolCallChunk
	ToolCalls      []ToolCallSpec
	Type           string
	ToolCallID     string
	IsError        bool
	Result         any
}

// IsToolResult reports whether this message is a tool-result message
// referencing a tool_call_id.
func (m *Message) IsToolResult() bool {
	return m != nil && m.ToolCallID != ""
}

// ResultPayload returns the result value a tool-result message carries,
// preferring an explicit Result over Content.
func (m *Message) ResultPayload() any {
	if m.Result != nil {
		return m.Result
	}
	return m.Content
}

// Metadata accompanies a TOKEN-mode (message, metadata) pair: the scope the
// chunk originated from and any message tags.
type Metadata struct {
	Scope []string
	Tags  []string
}

// asMessage coerces a raw value into a *Message. Real runtime adapters may
// hand the parser either a *Message directly or a loosely-typed
// map[string]any (e.g. decoded from JSON); both are accepted since the
// runtime boundary is not statically typed.
func asMessage(v any) (*Message, bool) {
	switch m := v.(type) {
	case *Message:
		return m, m != nil
	case Message:
		return &m, true
	case map[string]any:
		id, ok := m["id"].(string)
		if !ok || id == "" {
			return nil, false
		}
		msg := &Message{ID: id}
		if c, ok := m["content"].(string); ok {
			msg.Content = c
		}
		if t, ok := m["type"].(string); ok {
			msg.Type = t
		}
		if tc, ok := m["tool_call_id"].(string); ok {
			msg.ToolCallID = tc
		}
		if ie, ok := m["is_error"].(bool); ok {
			msg.IsError = ie
		}
		if r, ok := m["result"]; ok {
			msg.Result = r
		}
		if tags, ok := m["tags"].([]string); ok {
			msg.Tags = tags
		}
		if chunks, ok := m["tool_call_chunks"].([]ToolCallChunk); ok {
			msg.ToolCallChunks = chunks
		}
		if calls, ok := m["tool_calls"].([]ToolCallSpec); ok {
			msg.ToolCalls = calls
		}
		return msg, true
	default:
		return nil, false
	}
}

// asMetadata coerces a raw value into a Metadata.
func asMetadata(v any) (Metadata, bool) {
	switch md := v.(type) {
	case Metadata:
		return md, true
	case *Metadata:
		if md == nil {
			return Metadata{}, false
		}
		return *md, true
	case map[string]any:
		out := Metadata{}
		if scope, ok := md["scope"].([]string); ok {
			out.Scope = scope
		}
		if tags, ok := md["tags"].([]string); ok {
			out.Tags = tags
		}
		return out, true
	default:
		return Metadata{}, false
	}
}
