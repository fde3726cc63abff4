package streamproc

import (
	"context"

	"github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"
)

// diffEngine is the channel diff engine: per configured channel key, it
// holds the last observed value per scope and emits full-value, delta, or
// typed artifact events.
type diffEngine struct {
	channels []ChannelConfig
	handler  *MessageHandler
	logger   telemetry.Logger

	// table is the previous-state table: scope display name -> channel
	// key -> last full value.
	table map[string]map[string]any
}

func newDiffEngine(channels []ChannelConfig, handler *MessageHandler, logger telemetry.Logger) *diffEngine {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &diffEngine{
		channels: channels,
		handler:  handler,
		logger:   logger,
		table:    make(map[string]map[string]any),
	}
}

func (e *diffEngine) Reset() {
	e.table = make(map[string]map[string]any)
}

// ProcessFullValue handles a FULL_VALUE chunk: a mapping from channel key
// to current value.
func (e *diffEngine) ProcessFullValue(ctx context.Context, scope Scope, chunk map[string]any) []Event {
	var events []Event
	scopeKey := scope.DisplayName()
	for _, ch := range e.channels {
		if ch.DeliveryMode != FullValue {
			continue
		}
		value, present := chunk[ch.Key]
		if !present {
			continue
		}
		if ch.Filter != nil && !ch.Filter(value) {
			e.logger.Warn(ctx, "channel filter rejected value", "channel", ch.Key, "scope", scopeKey)
			continue
		}
		prevByKey := e.table[scopeKey]
		var delta any
		var hadPrev bool
		if prevByKey != nil {
			if prev, ok := prevByKey[ch.Key]; ok {
				delta = calculateDelta(prev, value)
				hadPrev = true
			}
		}
		e.setPrevious(scopeKey, ch.Key, value)

		switch ch.Kind {
		case ChannelMessage:
			events = append(events, e.processMessageChannel(scope, ch, value, delta, hadPrev)...)
		case ChannelArtifact:
			if ev, ok := newArtifactFullValueEvent(scope, ch, value, delta); ok {
				events = append(events, ev)
			}
		default:
			events = append(events, newChannelValueEvent(scope, ch.Key, value, delta, ch.Kind))
		}
	}
	return events
}

func (e *diffEngine) setPrevious(scopeKey, channelKey string, value any) {
	if e.table[scopeKey] == nil {
		e.table[scopeKey] = make(map[string]any)
	}
	e.table[scopeKey][channelKey] = value
}

// processMessageChannel handles a MESSAGE-kind channel's observation: emit
// MessageReceived for new fully-assembled messages in the delta, or fall
// back to a plain ChannelValue when the delta contains nothing new.
func (e *diffEngine) processMessageChannel(scope Scope, ch ChannelConfig, value, delta any, hadPrev bool) []Event {
	if !hadPrev {
		// First observation: the whole value is "new" content, but with no
		// prior length to diff against the diff engine cannot compute a
		// tail; treat the full list as the initial delta.
		if list, ok := value.([]any); ok {
			delta = list
		}
	}
	tail, _ := delta.([]any)
	events, anyNew := e.handler.HandleValues(scope, tail)
	if !anyNew {
		return []Event{newChannelValueEvent(scope, ch.Key, value, delta, ch.Kind)}
	}
	return events
}

// ProcessDeltaOnly handles a DELTA_ONLY chunk: {node_name: {channel_key:
// delta_value}}, applied without reading or writing previous-state.
func (e *diffEngine) ProcessDeltaOnly(ctx context.Context, scope Scope, chunk map[string]any) []Event {
	var events []Event
	for _, nodeDeltas := range chunk {
		deltas, ok := nodeDeltas.(map[string]any)
		if !ok {
			continue
		}
		for _, ch := range e.channels {
			if ch.DeliveryMode != DeltaOnly {
				continue
			}
			delta, present := deltas[ch.Key]
			if !present {
				continue
			}
			if ch.Filter != nil && !ch.Filter(delta) {
				e.logger.Warn(ctx, "channel filter rejected delta", "channel", ch.Key, "scope", scope.DisplayName())
				continue
			}
			if ch.Kind == ChannelArtifact {
				if isFalsy(delta) {
					continue
				}
				events = append(events, newArtifactEvent(scope, ch.Key, ch.ArtifactType, nil, delta))
				continue
			}
			events = append(events, newChannelUpdateEvent(scope, ch.Key, delta))
		}
	}
	return events
}

// newArtifactFullValueEvent handles an ARTIFACT-kind channel's observation.
// It skips a falsy current value (no artifact observed yet).
func newArtifactFullValueEvent(scope Scope, ch ChannelConfig, value, delta any) (Event, bool) {
	if isFalsy(value) {
		return nil, false
	}
	return newArtifactEvent(scope, ch.Key, ch.ArtifactType, value, delta), true
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case bool:
		return !t
	default:
		return false
	}
}
