// Command streamproc-demo drives the stream processor against a scripted
// fake runtime and prints the resulting event sequence, exercising the
// channel and token-streaming configuration surface from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/errajibadr/langgraph-agent-repo/internal/fakegraph"
	"github.com/errajibadr/langgraph-agent-repo/streamproc"
	"github.com/errajibadr/langgraph-agent-repo/streamproc/schema"
	"github.com/errajibadr/langgraph-agent-repo/streamproc/sink"
	"github.com/errajibadr/langgraph-agent-repo/streamproc/telemetry"
)

// searchToolSchema is the argument schema the demo registers for its
// scripted "search" tool call, so the bus subscriber can validate
// args_ready payloads before printing them.
const searchToolSchema = `{
	"type": "object",
	"properties": {"query": {"type": "string"}},
	"required": ["query"]
}`

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	var preset string
	var debug bool

	cmd := &cobra.Command{
		Use:   "streamproc-demo",
		Short: "Replay a scripted graph run through the stream processor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.Context(cmd.Context(), log.WithFormat(log.FormatTerminal))
			if debug {
				ctx = log.Context(ctx, log.WithDebug())
			}
			return run(ctx, configPath, preset)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a channel/token-streaming config YAML file")
	cmd.Flags().StringVar(&preset, "preset", "default", "factory preset to use when --config is not set (simple|default|message-only|debug)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newPresetsCommand())
	return cmd
}

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available factory presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"simple", "default", "message-only", "debug"} {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func run(ctx context.Context, configPath, preset string) error {
	processor, err := buildProcessor(configPath, preset)
	if err != nil {
		return err
	}

	toolCallID := "call_1"
	toolName := "search"
	rt := fakegraph.NewBuilder().
		Token(&streamproc.Message{ID: "m1", Content: "Hello "}, streamproc.Metadata{}).
		Token(&streamproc.Message{ID: "m1", Content: "world"}, streamproc.Metadata{}).
		Token(&streamproc.Message{ID: "m1", Content: "!"}, streamproc.Metadata{}).
		Token(&streamproc.Message{ID: "m2", ToolCallChunks: []streamproc.ToolCallChunk{
			{Index: 0, ID: &toolCallID, Name: &toolName, Args: `{"query": "golang streams"}`},
		}}, streamproc.Metadata{}).
		ModePair(streamproc.ModeFullValue, map[string]any{
			"messages": []any{map[string]any{"id": "m1", "content": "Hello world!"}},
		}).
		Build()

	stream, err := processor.Stream(ctx, rt, nil, nil)
	if err != nil {
		return err
	}
	defer stream.Close()

	validator := schema.NewValidator()
	if err := validator.Register(toolName, []byte(searchToolSchema)); err != nil {
		return err
	}

	bus := sink.NewBus()
	if _, err := bus.Register(sink.SubscriberFunc(func(ctx context.Context, event streamproc.Event) error {
		fmt.Printf("%-18s scope=%-10s node=%-8s %+v\n", event.Type(), event.Scope(), event.NodeName(), event)
		if tc, ok := event.(streamproc.ToolCall); ok && tc.Status == streamproc.ToolCallArgsReady {
			if err := validator.Validate(tc.ToolName, tc.ParsedArgs); err != nil {
				fmt.Printf("%-18s tool=%-10s schema validation failed: %v\n", "schema_error", tc.ToolName, err)
			}
		}
		return nil
	})); err != nil {
		return err
	}

	return sink.Drain(ctx, bus, stream.Events())
}

func buildProcessor(configPath, preset string) (*streamproc.Processor, error) {
	logger := telemetry.NewClueLogger()
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}
		return streamproc.NewProcessor(cfg, streamproc.WithLogger(logger))
	}
	switch preset {
	case "simple":
		return streamproc.NewSimple(streamproc.WithLogger(logger))
	case "message-only":
		return streamproc.NewMessageOnly(streamproc.WithLogger(logger))
	case "debug":
		return streamproc.NewDebug(logger)
	default:
		return streamproc.NewDefault(streamproc.WithLogger(logger))
	}
}
