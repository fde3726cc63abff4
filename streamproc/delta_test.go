package streamproc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateDeltaScalarEqual(t *testing.T) {
	require.Nil(t, calculateDelta("a", "a"))
}

func TestCalculateDeltaScalarChanged(t *testing.T) {
	require.Equal(t, "b", calculateDelta("a", "b"))
}

func TestCalculateDeltaMapAddedAndChangedKeys(t *testing.T) {
	old := map[string]any{"a": 1, "b": 2}
	nv := map[string]any{"a": 1, "b": 3, "c": 4}
	got := calculateDelta(old, nv)
	require.Equal(t, map[string]any{"b": 3, "c": 4}, got)
}

func TestCalculateDeltaMapNoChange(t *testing.T) {
	old := map[string]any{"a": 1}
	nv := map[string]any{"a": 1}
	require.Nil(t, calculateDelta(old, nv))
}

func TestCalculateDeltaListTail(t *testing.T) {
	old := []any{"a", "b"}
	nv := []any{"a", "b", "c", "d"}
	got := calculateDelta(old, nv)
	require.Equal(t, []any{"c", "d"}, got)
}

func TestCalculateDeltaListNoGrowth(t *testing.T) {
	old := []any{"a", "b"}
	nv := []any{"a", "b"}
	require.Nil(t, calculateDelta(old, nv))
}

func TestListTailDeltaShrunkReturnsNil(t *testing.T) {
	old := []any{"a", "b", "c"}
	nv := []any{"a"}
	require.Nil(t, listTailDelta(old, nv))
}
