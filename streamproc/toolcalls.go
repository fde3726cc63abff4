package streamproc

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"
)

// toolCallLifecycle is the tracker's internal lifecycle state machine. It
// is distinct from ToolCallStatus, the event-facing vocabulary a consumer
// sees on emitted events.
type toolCallLifecycle int

const (
	lifecycleInitializing toolCallLifecycle = iota
	lifecycleStreaming
	lifecycleCompleted
	lifecycleError
	lifecycleResultSuccess
	lifecycleResultError
)

type toolCallKey struct {
	MessageID string
	Index     int
}

// toolCallState is one entry of the tracker, keyed by (message_id,
// chunk_index). It accumulates the argument buffer with an incremental
// brace/bracket balance so strict JSON parsing can be attempted as soon as
// the buffer is structurally complete, without reparsing from scratch on
// every fragment's string content (only the balance bookkeeping is
// incremental; json.Unmarshal itself still runs on the full buffer).
type toolCallState struct {
	key        toolCallKey
	toolCallID string
	toolName   string
	scope      Scope
	lifecycle  toolCallLifecycle
	buffer     strings.Builder
	parsedArgs any
	result     any

	depth           int
	inString        bool
	escaped         bool
	lastParseFailed bool
}

func (s *toolCallState) addFragment(frag string) {
	s.buffer.WriteString(frag)
	for _, r := range frag {
		if s.inString {
			if s.escaped {
				s.escaped = false
				continue
			}
			switch r {
			case '\\':
				s.escaped = true
			case '"':
				s.inString = false
			}
			continue
		}
		switch r {
		case '"':
			s.inString = true
		case '{', '[':
			s.depth++
		case '}', ']':
			s.depth--
		}
	}
}

func (s *toolCallState) balanced() bool { return s.depth == 0 && !s.inString }

// looksCompleteButInvalid reports whether this call's buffer should be
// declared terminally invalid at the end of its enclosing message: it has
// content, it never reached a terminal lifecycle state, and either its
// last balanced-buffer parse attempt failed or it never became balanced at
// all (a truncated stream).
func (s *toolCallState) looksCompleteButInvalid() bool {
	if s.lifecycle != lifecycleStreaming {
		return false
	}
	return s.buffer.Len() > 0
}

// ToolCallTracker reconstructs complete tool calls from TOKEN-mode chunks
// and links runtime-observed results back to them.
type ToolCallTracker struct {
	includeToolCalls bool
	logger           telemetry.Logger

	states       map[toolCallKey]*toolCallState
	byToolCallID map[string]*toolCallState
}

// NewToolCallTracker constructs a tracker. includeToolCalls gates the
// argument-lifecycle ToolCall events (args_started, args_streaming,
// args_ready, and the result_error for invalid arguments); result events
// from HandleResult are emitted regardless. Result linkage and buffer
// accounting happen regardless, since a later-enabled consumer may still
// need a consistent buffer.
func NewToolCallTracker(includeToolCalls bool, logger telemetry.Logger) *ToolCallTracker {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &ToolCallTracker{
		includeToolCalls: includeToolCalls,
		logger:           logger,
		states:           make(map[toolCallKey]*toolCallState),
		byToolCallID:     make(map[string]*toolCallState),
	}
}

// Reset drops all tracker entries.
func (t *ToolCallTracker) Reset() {
	t.states = make(map[toolCallKey]*toolCallState)
	t.byToolCallID = make(map[string]*toolCallState)
}

// HandleChunk processes one tool-call argument fragment.
func (t *ToolCallTracker) HandleChunk(ctx context.Context, scope Scope, messageID string, index int, id, name *string, argsFragment string) []Event {
	key := toolCallKey{MessageID: messageID, Index: index}
	state, exists := t.states[key]
	if !exists {
		if id == nil || name == nil {
			t.logger.Warn(ctx, "tool call arg fragment arrived without prior initialization",
				"message_id", messageID, "index", index)
			return nil
		}
		state = &toolCallState{key: key, toolCallID: *id, toolName: *name, scope: scope, lifecycle: lifecycleInitializing}
		t.states[key] = state
		t.byToolCallID[*id] = state
	}

	var events []Event
	switch state.lifecycle {
	case lifecycleInitializing:
		state.addFragment(argsFragment)
		state.lifecycle = lifecycleStreaming
		if t.includeToolCalls {
			ev := newToolCallEvent(state.scope, state.toolCallID, state.toolName, ToolCallArgsStarted)
			ev.AccumulatedArgs = state.buffer.String()
			events = append(events, ev)
		}
		events = append(events, t.tryComplete(state)...)
	case lifecycleStreaming:
		state.addFragment(argsFragment)
		if t.includeToolCalls {
			ev := newToolCallEvent(state.scope, state.toolCallID, state.toolName, ToolCallArgsStreaming)
			ev.AccumulatedArgs = state.buffer.String()
			events = append(events, ev)
		}
		events = append(events, t.tryComplete(state)...)
	default:
		// Further fragments after a terminal lifecycle state are not
		// specified; ignore rather than reopen a finished call.
	}
	return events
}

// tryComplete attempts a strict-JSON parse of state's buffer once it is
// balanced, promoting to lifecycleCompleted on success. It runs after every
// fragment regardless of which lifecycle state added it, since a call's
// entire argument JSON can arrive in its first fragment.
func (t *ToolCallTracker) tryComplete(state *toolCallState) []Event {
	if !state.balanced() || state.buffer.Len() == 0 {
		return nil
	}
	var parsedVal any
	if err := json.Unmarshal([]byte(state.buffer.String()), &parsedVal); err != nil {
		state.lastParseFailed = true
		return nil
	}
	state.parsedArgs = parsedVal
	state.lifecycle = lifecycleCompleted
	if !t.includeToolCalls {
		return nil
	}
	ev := newToolCallEvent(state.scope, state.toolCallID, state.toolName, ToolCallArgsReady)
	ev.ParsedArgs = parsedVal
	return []Event{ev}
}

// Finalize is called when the enclosing message is observed as fully
// assembled. Any call for this message still STREAMING with a non-empty
// buffer is declared invalid.
func (t *ToolCallTracker) Finalize(messageID string) []Event {
	var events []Event
	for key, state := range t.states {
		if key.MessageID != messageID {
			continue
		}
		if state.looksCompleteButInvalid() {
			state.lifecycle = lifecycleError
			if !t.includeToolCalls {
				continue
			}
			ev := newToolCallEvent(state.scope, state.toolCallID, state.toolName, ToolCallResultError)
			ev.Description = "tool call argument buffer is non-empty and invalid at end of message"
			events = append(events, ev)
		}
	}
	return events
}

// HandleFinalized processes tool calls carried whole on an already-assembled
// message (as opposed to the chunks that would otherwise stream them),
// skipping the streaming lifecycle and registering each call directly at
// ArgsReady (or a terminal error, if a call arrived with no parsed
// arguments). A call whose id was already finalized or declared invalid is
// skipped rather than re-emitted.
func (t *ToolCallTracker) HandleFinalized(scope Scope, messageID string, calls []ToolCallSpec) []Event {
	var events []Event
	for index, call := range calls {
		if call.ID == "" || call.Name == "" {
			continue
		}
		if existing, ok := t.byToolCallID[call.ID]; ok &&
			(existing.lifecycle == lifecycleCompleted || existing.lifecycle == lifecycleError) {
			continue
		}
		key := toolCallKey{MessageID: messageID, Index: index}
		status := ToolCallArgsReady
		state := &toolCallState{key: key, toolCallID: call.ID, toolName: call.Name, scope: scope}
		if call.Args != nil {
			state.parsedArgs = call.Args
			state.lifecycle = lifecycleCompleted
		} else {
			state.lifecycle = lifecycleError
			status = ToolCallResultError
		}
		t.states[key] = state
		t.byToolCallID[call.ID] = state
		if !t.includeToolCalls {
			continue
		}
		ev := newToolCallEvent(scope, call.ID, call.Name, status)
		if call.Args != nil {
			ev.ParsedArgs = call.Args
		} else {
			ev.Description = "finalized tool call carries no arguments"
		}
		events = append(events, ev)
	}
	return events
}

// HandleResult links a runtime-observed tool result back to its call.
// When the call's initialization was never observed (e.g. streaming was
// disabled for that scope), the result event still fires, carrying
// tool_call_id, scope and payload but no tool_name.
func (t *ToolCallTracker) HandleResult(scope Scope, toolCallID string, success bool, payload any) []Event {
	status := ToolCallResultSuccess
	if !success {
		status = ToolCallResultError
	}
	state, ok := t.byToolCallID[toolCallID]
	if !ok {
		ev := newToolCallEvent(scope, toolCallID, "", status)
		ev.Result = payload
		return []Event{ev}
	}
	if state.lifecycle == lifecycleResultSuccess || state.lifecycle == lifecycleResultError || state.lifecycle == lifecycleError {
		// At most one terminal result event per tool call: Finalize may
		// have already declared this call invalid.
		return nil
	}
	if success {
		state.lifecycle = lifecycleResultSuccess
	} else {
		state.lifecycle = lifecycleResultError
	}
	state.result = payload
	ev := newToolCallEvent(state.scope, state.toolCallID, state.toolName, status)
	ev.ParsedArgs = state.parsedArgs
	ev.Result = payload
	return []Event{ev}
}
