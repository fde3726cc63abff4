package streamproc

import "github.com/errajibadr/langgraph-agent-repo/streamproc/streamerr"

// Pair and Triple are the wrapper shapes a runtime source uses to deliver
// raw tuple-shaped elements. A Source that cannot express structural tuples
// natively wraps them explicitly in these types; a bare, unwrapped value is
// always case 1.
type Pair struct{ A, B any }
type Triple struct{ A, B, C any }

// parsed is the uniform (scope, mode, chunk) triple the parser normalizes
// every accepted raw shape into. For ModeToken, Message and Metadata are
// populated instead of Chunk.
type parsed struct {
	Scope    Scope
	Mode     Mode
	Chunk    any
	Message  *Message
	Metadata Metadata
}

// parseRaw normalizes one raw runtime element into a parsed triple, trying
// each accepted shape in order. defaultMode supplies the mode for shapes
// that carry no explicit mode marker (cases 1 and 3), which the runtime
// only produces when a single mode was requested. Case 5 is always TOKEN.
func parseRaw(raw any, defaultMode Mode) (parsed, error) {
	switch v := raw.(type) {
	case Triple:
		return parseTriple(v)
	case Pair:
		return parsePair(v, defaultMode)
	default:
		// Case 1: bare chunk, no scope, no explicit mode.
		return parsed{Scope: Scope{}, Mode: defaultMode, Chunk: raw}, nil
	}
}

func parseTriple(v Triple) (parsed, error) {
	// Case 4: (scope_tuple, mode, chunk).
	comps, ok := v.A.([]string)
	if !ok {
		return parsed{}, streamerr.New(streamerr.RawShapeUnknown,
			"triple's first element is not a scope tuple ([]string)")
	}
	modeName, ok := v.B.(string)
	if !ok {
		return parsed{}, streamerr.New(streamerr.RawShapeUnknown,
			"triple's second element is not a mode name")
	}
	mode, ok := parseMode(modeName)
	if !ok {
		return parsed{}, streamerr.Newf(streamerr.RawShapeUnknown, "unknown mode %q", modeName)
	}
	scope := NewScope(comps)
	if mode == ModeToken {
		return splitTokenChunk(scope, v.C)
	}
	return parsed{Scope: scope, Mode: mode, Chunk: v.C}, nil
}

func parsePair(v Pair, defaultMode Mode) (parsed, error) {
	// Case 3: (scope_tuple, chunk) - single mode with subgraphs. When the
	// single active mode is TOKEN, chunk is itself a (message, metadata)
	// pair rather than a map, so the map check only applies to the other
	// modes.
	if comps, ok := v.A.([]string); ok {
		scope := NewScope(comps)
		if defaultMode == ModeToken {
			return splitTokenChunk(scope, v.B)
		}
		if _, isMap := v.B.(map[string]any); isMap {
			return parsed{Scope: scope, Mode: defaultMode, Chunk: v.B}, nil
		}
	}
	// Case 2: (mode, chunk).
	if modeName, ok := v.A.(string); ok {
		if mode, known := parseMode(modeName); known {
			if mode == ModeToken {
				return splitTokenChunk(Scope{}, v.B)
			}
			return parsed{Scope: Scope{}, Mode: mode, Chunk: v.B}, nil
		}
	}
	// Case 5: (message, metadata) - TOKEN mode, single mode, no subgraphs.
	if msg, ok := asMessage(v.A); ok {
		md, _ := asMetadata(v.B)
		return parsed{Scope: NewScope(md.Scope), Mode: ModeToken, Message: msg, Metadata: md}, nil
	}
	return parsed{}, streamerr.New(streamerr.RawShapeUnknown, "pair matches no known (mode, chunk) shape")
}

// splitTokenChunk destructures a TOKEN-mode chunk, which is itself a
// (message, metadata) pair, regardless of which outer shape carried it.
func splitTokenChunk(outerScope Scope, chunk any) (parsed, error) {
	p, ok := chunk.(Pair)
	if !ok {
		return parsed{}, streamerr.New(streamerr.RawShapeUnknown, "TOKEN mode chunk is not a (message, metadata) pair")
	}
	msg, ok := asMessage(p.A)
	if !ok {
		return parsed{}, streamerr.New(streamerr.RawShapeUnknown, "TOKEN mode chunk's first element is not message-shaped")
	}
	md, _ := asMetadata(p.B)
	scope := outerScope
	if len(md.Scope) > 0 {
		scope = NewScope(md.Scope)
	}
	return parsed{Scope: scope, Mode: ModeToken, Message: msg, Metadata: md}, nil
}
