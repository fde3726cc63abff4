package streamproc

import "github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"

// The factory presets below are pure constructors: each call builds a
// fresh, independently-configured Processor with no shared mutable state
// between presets.

// defaultChannels returns the channel set NewDefault, NewMultiAgent and
// NewDebug start from: a MESSAGE channel named "messages" and a GENERIC
// channel named "ui", both FULL_VALUE.
func defaultChannels() []ChannelConfig {
	return []ChannelConfig{
		{Key: "messages", DeliveryMode: FullValue, Kind: ChannelMessage},
		{Key: "ui", DeliveryMode: FullValue, Kind: ChannelGeneric},
	}
}

// NewSimple builds a processor with no channels configured and token
// streaming enabled for every namespace — the minimal preset for a
// caller that only wants raw token output.
func NewSimple(opts ...Option) (*Processor, error) {
	return NewProcessor(Config{
		TokenStreaming: TokenStreamingConfig{EnabledNamespaces: []string{SentinelAll}},
	}, opts...)
}

// NewDefault builds a processor with the default channel set and token
// streaming enabled for every namespace, including tool-call
// reconstruction.
func NewDefault(opts ...Option) (*Processor, error) {
	return NewProcessor(Config{
		Channels: defaultChannels(),
		TokenStreaming: TokenStreamingConfig{
			EnabledNamespaces: []string{SentinelAll},
			IncludeToolCalls:  true,
		},
	}, opts...)
}

// NewMessageOnly builds a processor that monitors only the "messages"
// channel, with no token streaming.
func NewMessageOnly(opts ...Option) (*Processor, error) {
	return NewProcessor(Config{
		Channels: []ChannelConfig{
			{Key: "messages", DeliveryMode: FullValue, Kind: ChannelMessage},
		},
	}, opts...)
}

// NewArtifactOnly builds a processor that monitors a single artifact
// channel of the given key and type, with no token streaming.
func NewArtifactOnly(channelKey, artifactType string, opts ...Option) (*Processor, error) {
	return NewProcessor(Config{
		Channels: []ChannelConfig{
			{Key: channelKey, DeliveryMode: FullValue, Kind: ChannelArtifact, ArtifactType: artifactType},
		},
	}, opts...)
}

// NewMultiAgent builds a processor tuned for a graph with named subagent
// scopes: token streaming is restricted to the given enabled patterns
// (typically one "<agent>:*" pattern per subagent) plus tool-call
// reconstruction, with the default channel set.
func NewMultiAgent(enabledNamespaces []string, opts ...Option) (*Processor, error) {
	return NewProcessor(Config{
		Channels: defaultChannels(),
		TokenStreaming: TokenStreamingConfig{
			EnabledNamespaces: enabledNamespaces,
			IncludeToolCalls:  true,
		},
	}, opts...)
}

// NewPerformanceOptimized builds a processor that monitors every given
// channel key as a GENERIC channel with DELTA_ONLY delivery, trading the
// ability to compute value-level deltas against a
// previous FULL_VALUE observation for lower per-step payload size. Token
// streaming is enabled for every namespace, without tool-call
// reconstruction (the common case for a pure chat UI that does not render
// tool activity).
func NewPerformanceOptimized(channelKeys []string, opts ...Option) (*Processor, error) {
	channels := make([]ChannelConfig, 0, len(channelKeys))
	for _, key := range channelKeys {
		channels = append(channels, ChannelConfig{Key: key, DeliveryMode: DeltaOnly, Kind: ChannelGeneric})
	}
	return NewProcessor(Config{
		Channels: channels,
		TokenStreaming: TokenStreamingConfig{
			EnabledNamespaces: []string{SentinelAll},
		},
	}, opts...)
}

// NewDebug builds a processor with the default channel set, tool-call
// reconstruction enabled, and the given logger attached (its level is
// whatever the caller configured) — the preset to reach for when
// diagnosing a misbehaving graph.
func NewDebug(logger telemetry.Logger, opts ...Option) (*Processor, error) {
	opts = append([]Option{WithLogger(logger)}, opts...)
	return NewProcessor(Config{
		Channels: defaultChannels(),
		TokenStreaming: TokenStreamingConfig{
			EnabledNamespaces: []string{SentinelAll},
			IncludeToolCalls:  true,
		},
	}, opts...)
}
