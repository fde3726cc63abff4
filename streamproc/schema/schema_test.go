package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const searchToolSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string"}
	},
	"required": ["query"]
}`

func TestValidatorUnregisteredToolIsNoOp(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Validate("unknown_tool", map[string]any{"anything": 1}))
}

func TestValidatorAcceptsMatchingArgs(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Register("search", []byte(searchToolSchema)))
	require.NoError(t, v.Validate("search", map[string]any{"query": "golang"}))
}

func TestValidatorRejectsMissingRequiredField(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Register("search", []byte(searchToolSchema)))
	require.Error(t, v.Validate("search", map[string]any{}))
}

func TestValidatorRegisterRejectsMalformedSchema(t *testing.T) {
	v := NewValidator()
	require.Error(t, v.Register("broken", []byte("not json")))
}
