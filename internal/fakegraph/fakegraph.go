// Package fakegraph provides an in-memory streamproc.Runtime and Source
// for tests and the demo CLI, standing in for a real graph-execution
// runtime.
package fakegraph

import (
	"context"

	"github.com/google/uuid"

	"github.com/errajibadr/langgraph-agent-repo/streamproc"
)

// Runtime replays a fixed, pre-scripted sequence of raw elements
// regardless of input/config, which is all a fake needs to exercise the
// processor deterministically.
type Runtime struct {
	Elements []any
}

// Invoke implements streamproc.Runtime.
func (r *Runtime) Invoke(ctx context.Context, input, config any, modes []streamproc.Mode) (streamproc.Source, error) {
	return &source{elements: r.Elements}, nil
}

type source struct {
	elements []any
	pos      int
}

// Next implements streamproc.Source.
func (s *source) Next(ctx context.Context) (any, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.pos >= len(s.elements) {
		return nil, streamproc.ErrSourceExhausted
	}
	el := s.elements[s.pos]
	s.pos++
	if f, ok := el.(failure); ok {
		return nil, f.err
	}
	return el, nil
}

// NewMessageID generates a stable message identifier for scripted fake
// runtime elements.
func NewMessageID() string { return "msg_" + uuid.NewString() }

// Builder accumulates a scripted sequence of raw elements using the four
// accepted raw shapes plus the TOKEN-mode (message, metadata) pair, so
// tests can compose a fake run without hand-assembling streamproc.Pair/
// Triple literals.
type Builder struct {
	elements []any
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Bare appends a case-1 bare chunk (no scope, no explicit mode).
func (b *Builder) Bare(chunk any) *Builder {
	b.elements = append(b.elements, chunk)
	return b
}

// ModePair appends a case-2 (mode, chunk) pair.
func (b *Builder) ModePair(mode streamproc.Mode, chunk any) *Builder {
	b.elements = append(b.elements, streamproc.Pair{A: string(mode), B: chunk})
	return b
}

// ScopedChunk appends a case-3 (scope_tuple, chunk) pair.
func (b *Builder) ScopedChunk(scope []string, chunk any) *Builder {
	b.elements = append(b.elements, streamproc.Pair{A: scope, B: chunk})
	return b
}

// ScopedModeChunk appends a case-4 (scope_tuple, mode, chunk) triple.
func (b *Builder) ScopedModeChunk(scope []string, mode streamproc.Mode, chunk any) *Builder {
	b.elements = append(b.elements, streamproc.Triple{A: scope, B: string(mode), C: chunk})
	return b
}

// Token appends a case-5 (message, metadata) pair, the TOKEN-mode shape
// used when only TOKEN mode is active and the graph has no subgraphs.
func (b *Builder) Token(message *streamproc.Message, metadata streamproc.Metadata) *Builder {
	b.elements = append(b.elements, streamproc.Pair{A: message, B: metadata})
	return b
}

// ScopedToken appends a case-4 triple whose chunk is itself a TOKEN-mode
// (message, metadata) pair, the shape used for subgraphs with multiple
// active modes.
func (b *Builder) ScopedToken(scope []string, message *streamproc.Message, metadata streamproc.Metadata) *Builder {
	return b.ScopedModeChunk(scope, streamproc.ModeToken, streamproc.Pair{A: message, B: metadata})
}

// Malformed appends a raw element that matches no accepted shape (the
// RawShapeUnknown boundary case): a triple whose first element is a
// mapping rather than a scope tuple.
func (b *Builder) Malformed() *Builder {
	b.elements = append(b.elements, streamproc.Triple{A: map[string]any{"not": "a scope"}, B: "values", C: map[string]any{}})
	return b
}

// Fail appends a sentinel the fake Source's Next translates into a
// RuntimeFailure by returning a non-exhaustion error.
func (b *Builder) Fail(err error) *Builder {
	b.elements = append(b.elements, failure{err: err})
	return b
}

type failure struct{ err error }

// Build returns a Runtime that replays the scripted elements.
func (b *Builder) Build() *Runtime {
	return &Runtime{Elements: b.elements}
}
