package diag

import (
	"encoding/json"
	"testing"

	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIssueJSONRoundTrips(t *testing.T) {
	id := location.MustFileIDFromPath("/ws/main.R")
	issue := NewIssue(Error, E_CYCLE_DETECTED, "cycle detected").
		WithSpan(location.PointWithByte(id, 0, 0, 0)).
		WithDetail(DetailKeyCycle, `["a.R","b.R"]`).
		Build()

	raw := NewRenderer().FormatIssueJSON(issue)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "E_CYCLE_DETECTED", decoded["code"])
	assert.Equal(t, "error", decoded["severity"])

	span, ok := decoded["span"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/ws/main.R", span["path"])
}

func TestFormatResultJSONEmptyIsEmptyArray(t *testing.T) {
	raw := NewRenderer().FormatResultJSON(OK())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	issues, ok := decoded["issues"].([]any)
	require.True(t, ok)
	assert.Empty(t, issues)
}

func TestPositionWireOmitsUnknownByte(t *testing.T) {
	pos := location.Position{Line: 0, Column: 0, Byte: -1}
	wire := toPositionWire(pos)
	assert.Nil(t, wire.Byte)
}

func TestPositionWireIncludesKnownByte(t *testing.T) {
	pos := location.Position{Line: 0, Column: 0, Byte: 0}
	wire := toPositionWire(pos)
	require.NotNil(t, wire.Byte)
	assert.Equal(t, 0, *wire.Byte)
}
