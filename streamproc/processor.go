package streamproc

import (
	"context"
	"errors"

	"github.com/errajibadr/langgraph-agent-repo/streamproc/streamerr"
	"github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"
)

// ErrSourceExhausted is returned by Source.Next to signal clean
// termination of the underlying runtime iterator.
var ErrSourceExhausted = errors.New("streamproc: source exhausted")

// Source is the lazy async sequence of raw runtime elements the processor
// consumes. Next blocks until the next element is available, the context
// is cancelled, or the source is exhausted (ErrSourceExhausted). Any other
// error is treated as a RuntimeFailure.
type Source interface {
	Next(ctx context.Context) (any, error)
}

// Runtime is the handle to the external graph-execution runtime. Invoke
// starts one streaming session
// for the given input and runtime configuration, requesting the given
// modes, and returns the Source the processor will pull from.
type Runtime interface {
	Invoke(ctx context.Context, input any, config any, modes []Mode) (Source, error)
}

// Processor owns exactly one streaming session's worth of mutable state:
// the previous-state table, the tool-call tracker, the message
// accumulators, and the seen-message set. A Processor is not safe for
// concurrent sessions; construct one Processor per concurrent session.
type Processor struct {
	cfg Config

	logger  telemetry.Logger
	metrics telemetry.Metrics
	tracer  telemetry.Tracer

	tracker *ToolCallTracker
	handler *MessageHandler
	diff    *diffEngine
	tokens  *TokenStreamer
}

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithLogger overrides the processor's logger (default: NoopLogger).
func WithLogger(logger telemetry.Logger) Option { return func(p *Processor) { p.logger = logger } }

// WithMetrics overrides the processor's metrics recorder (default: NoopMetrics).
func WithMetrics(metrics telemetry.Metrics) Option { return func(p *Processor) { p.metrics = metrics } }

// WithTracer overrides the processor's tracer (default: NoopTracer).
func WithTracer(tracer telemetry.Tracer) Option { return func(p *Processor) { p.tracer = tracer } }

// NewProcessor validates cfg and constructs a Processor. Validation
// failures (duplicate channel keys, malformed namespace patterns, an
// artifact type set on a non-artifact channel) are returned here, before
// any session begins, before any iteration starts.
func NewProcessor(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p := &Processor{
		cfg:     cfg,
		logger:  telemetry.NewNoopLogger(),
		metrics: telemetry.NewNoopMetrics(),
		tracer:  telemetry.NewNoopTracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.build()
	return p, nil
}

func (p *Processor) build() {
	p.tracker = NewToolCallTracker(p.cfg.TokenStreaming.IncludeToolCalls, p.logger)
	p.handler = NewMessageHandler(p.tracker)
	p.diff = newDiffEngine(p.cfg.Channels, p.handler, p.logger)
	p.tokens = NewTokenStreamer(p.cfg.TokenStreaming, p.tracker, p.handler)
}

// Reset drops all session state. Stream calls this both before a session
// starts and after it ends, so a long-lived Processor can be reused across
// sequential (not concurrent) sessions.
func (p *Processor) Reset() {
	p.tracker.Reset()
	p.handler.Reset()
	p.diff.Reset()
	p.tokens.Reset()
}

// Stream invokes rt and returns a lazy, finite event sequence. The
// returned EventStream must be fully drained or explicitly Closed;
// cancelling ctx (or calling EventStream.Close) propagates cancellation to
// the runtime iterator and releases all processor state.
func (p *Processor) Stream(ctx context.Context, rt Runtime, input, config any) (*EventStream, error) {
	p.Reset()

	modes := p.cfg.modes()
	modeList := make([]Mode, 0, len(modes))
	for m := range modes {
		modeList = append(modeList, m)
	}
	defaultMode := p.cfg.defaultMode()

	runCtx, span := p.tracer.Start(ctx, "streamproc.Stream")
	src, err := rt.Invoke(runCtx, input, config, modeList)
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, streamerr.Wrap(streamerr.RuntimeFailure, "runtime invocation failed", err)
	}

	pumpCtx, cancel := context.WithCancel(runCtx)
	stream := &EventStream{
		events: make(chan Event),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go p.pump(pumpCtx, stream, src, defaultMode, span)
	return stream, nil
}

func (p *Processor) pump(ctx context.Context, stream *EventStream, src Source, defaultMode Mode, span telemetry.Span) {
	defer close(stream.done)
	defer close(stream.events)
	defer span.End()
	defer p.Reset()

	for {
		raw, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceExhausted) || errors.Is(err, context.Canceled) {
				return
			}
			fault := streamerr.Wrap(streamerr.RuntimeFailure, "runtime iterator raised", err)
			p.logger.Error(ctx, "runtime iterator failed", "error", fault)
			p.emit(ctx, stream, newErrorEvent(Scope{}, string(streamerr.RuntimeFailure), fault.Error()))
			return
		}

		events, fatal := p.processRaw(ctx, raw, defaultMode)
		for _, ev := range events {
			if !p.emit(ctx, stream, ev) {
				return
			}
		}
		if fatal {
			return
		}
	}
}

// emit sends ev on the stream, respecting cancellation. It returns false
// if the consumer stopped pulling (ctx cancelled).
func (p *Processor) emit(ctx context.Context, stream *EventStream, ev Event) bool {
	p.metrics.IncCounter("streamproc.events", 1, "type", string(ev.Type()))
	select {
	case stream.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// processRaw parses one raw element and routes it to the appropriate
// stage. The bool return reports whether the raw shape was unrecognized —
// a fatal fault — in which case the returned events (a single terminal
// ErrorEvent) are the last ones the caller should send before ending the
// sequence.
func (p *Processor) processRaw(ctx context.Context, raw any, defaultMode Mode) ([]Event, bool) {
	parsedChunk, err := parseRaw(raw, defaultMode)
	if err != nil {
		p.logger.Error(ctx, "raw output shape unrecognized", "error", err)
		return []Event{newErrorEvent(Scope{}, string(streamerr.RawShapeUnknown), err.Error())}, true
	}
	p.logger.Debug(ctx, "routing chunk", "scope", parsedChunk.Scope.DisplayName(), "mode", string(parsedChunk.Mode))

	switch parsedChunk.Mode {
	case ModeToken:
		return p.tokens.HandleChunk(ctx, parsedChunk.Scope, parsedChunk.Message), false
	case ModeFullValue:
		chunk, ok := parsedChunk.Chunk.(map[string]any)
		if !ok {
			return nil, false
		}
		return p.diff.ProcessFullValue(ctx, parsedChunk.Scope, chunk), false
	case ModeDeltaOnly:
		chunk, ok := parsedChunk.Chunk.(map[string]any)
		if !ok {
			return nil, false
		}
		return p.diff.ProcessDeltaOnly(ctx, parsedChunk.Scope, chunk), false
	default:
		return nil, false
	}
}

// EventStream is the lazy, cancellable event sequence produced by
// Processor.Stream.
type EventStream struct {
	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
}

// Events returns the channel of produced events. It closes when the
// session ends, normally or by fault.
func (s *EventStream) Events() <-chan Event { return s.events }

// Close cancels the session and blocks until the pump goroutine has
// released all processor state. Safe to call more than once and safe to
// call after the stream has already ended on its own.
func (s *EventStream) Close() {
	s.cancel()
	<-s.done
}
