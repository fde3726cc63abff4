package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/errajibadr/langgraph-agent-repo/streamproc"
)

// fileConfig is the YAML shape loaded from --config: a plain mirror of
// streamproc.Config that only carries the fields meaningful to read from
// a file (value filters are a runtime-only concept and have no YAML
// representation).
type fileConfig struct {
	Channels []struct {
		Key          string `yaml:"key"`
		DeliveryMode string `yaml:"delivery_mode"`
		Kind         string `yaml:"kind"`
		ArtifactType string `yaml:"artifact_type,omitempty"`
	} `yaml:"channels"`
	TokenStreaming struct {
		EnabledNamespaces  []string `yaml:"enabled_namespaces"`
		ExcludedNamespaces []string `yaml:"excluded_namespaces"`
		MessageTags        []string `yaml:"message_tags"`
		IncludeToolCalls   bool     `yaml:"include_tool_calls"`
	} `yaml:"token_streaming"`
}

func loadConfig(path string) (streamproc.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return streamproc.Config{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return streamproc.Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := streamproc.Config{
		TokenStreaming: streamproc.TokenStreamingConfig{
			EnabledNamespaces:  fc.TokenStreaming.EnabledNamespaces,
			ExcludedNamespaces: fc.TokenStreaming.ExcludedNamespaces,
			MessageTags:        fc.TokenStreaming.MessageTags,
			IncludeToolCalls:   fc.TokenStreaming.IncludeToolCalls,
		},
	}
	for _, ch := range fc.Channels {
		delivery := streamproc.FullValue
		if ch.DeliveryMode == "delta_only" {
			delivery = streamproc.DeltaOnly
		}
		kind := streamproc.ChannelGeneric
		switch ch.Kind {
		case "message":
			kind = streamproc.ChannelMessage
		case "artifact":
			kind = streamproc.ChannelArtifact
		}
		cfg.Channels = append(cfg.Channels, streamproc.ChannelConfig{
			Key:          ch.Key,
			DeliveryMode: delivery,
			Kind:         kind,
			ArtifactType: ch.ArtifactType,
		})
	}
	return cfg, nil
}
