package streamproc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/errajibadr/langgraph-agent-repo/streamproc/streamerr"
)

func TestParseRawBareChunk(t *testing.T) {
	p, err := parseRaw(map[string]any{"foo": "bar"}, ModeFullValue)
	require.NoError(t, err)
	require.Equal(t, ModeFullValue, p.Mode)
	require.Equal(t, Scope{}, p.Scope)
}

func TestParseRawModePair(t *testing.T) {
	p, err := parseRaw(Pair{A: string(ModeDeltaOnly), B: map[string]any{"n": map[string]any{}}}, ModeFullValue)
	require.NoError(t, err)
	require.Equal(t, ModeDeltaOnly, p.Mode)
}

func TestParseRawScopedChunk(t *testing.T) {
	p, err := parseRaw(Pair{A: []string{"agent", "t1"}, B: map[string]any{"messages": []any{}}}, ModeFullValue)
	require.NoError(t, err)
	require.Equal(t, ModeFullValue, p.Mode)
	require.Equal(t, "agent:t1", p.Scope.DisplayName())
}

func TestParseRawScopedChunkTokenMode(t *testing.T) {
	msg := &Message{ID: "m1", Content: "hi"}
	p, err := parseRaw(Pair{A: []string{"agent", "t1"}, B: Pair{A: msg, B: Metadata{}}}, ModeToken)
	require.NoError(t, err)
	require.Equal(t, ModeToken, p.Mode)
	require.Equal(t, "m1", p.Message.ID)
	require.Equal(t, "agent:t1", p.Scope.DisplayName())
}

func TestParseRawScopedModeChunk(t *testing.T) {
	p, err := parseRaw(Triple{A: []string{"agent", "t1"}, B: string(ModeDeltaOnly), C: map[string]any{}}, ModeFullValue)
	require.NoError(t, err)
	require.Equal(t, ModeDeltaOnly, p.Mode)
	require.Equal(t, "agent:t1", p.Scope.DisplayName())
}

func TestParseRawTokenPair(t *testing.T) {
	msg := &Message{ID: "m1", Content: "hi"}
	p, err := parseRaw(Pair{A: msg, B: Metadata{Scope: []string{"agent", "t1"}}}, ModeToken)
	require.NoError(t, err)
	require.Equal(t, ModeToken, p.Mode)
	require.Equal(t, "m1", p.Message.ID)
	require.Equal(t, "agent:t1", p.Scope.DisplayName())
}

func TestParseRawScopedToken(t *testing.T) {
	msg := &Message{ID: "m1", Content: "hi"}
	raw := Triple{A: []string{"agent", "t1"}, B: string(ModeToken), C: Pair{A: msg, B: Metadata{}}}
	p, err := parseRaw(raw, ModeFullValue)
	require.NoError(t, err)
	require.Equal(t, ModeToken, p.Mode)
	require.Equal(t, "m1", p.Message.ID)
	require.Equal(t, "agent:t1", p.Scope.DisplayName())
}

func TestParseRawMalformedTripleIsRawShapeUnknown(t *testing.T) {
	raw := Triple{A: map[string]any{"not": "a scope"}, B: "values", C: map[string]any{}}
	_, err := parseRaw(raw, ModeFullValue)
	require.Error(t, err)
	require.True(t, streamerr.Is(err, streamerr.RawShapeUnknown))
}

func TestParseRawUnknownModeNameIsRawShapeUnknown(t *testing.T) {
	raw := Triple{A: []string{"agent", "t1"}, B: "bogus_mode", C: map[string]any{}}
	_, err := parseRaw(raw, ModeFullValue)
	require.Error(t, err)
	require.True(t, streamerr.Is(err, streamerr.RawShapeUnknown))
}

func TestParseRawPairMatchesNoShapeIsRawShapeUnknown(t *testing.T) {
	raw := Pair{A: 42, B: "nonsense"}
	_, err := parseRaw(raw, ModeFullValue)
	require.Error(t, err)
	require.True(t, streamerr.Is(err, streamerr.RawShapeUnknown))
}

func TestParseRawTokenChunkNotPairIsRawShapeUnknown(t *testing.T) {
	raw := Triple{A: []string{"agent", "t1"}, B: string(ModeToken), C: map[string]any{"not": "a pair"}}
	_, err := parseRaw(raw, ModeFullValue)
	require.Error(t, err)
	require.True(t, streamerr.Is(err, streamerr.RawShapeUnknown))
}
