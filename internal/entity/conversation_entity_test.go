package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentBlockRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"text block", `{"type":"text","text":"hello"}`},
		{"thinking block", `{"type":"thinking","thinking":"hmm"}`},
		{"code block", `{"type":"pre","text":"x := 1","language":"go"}`},
		{"unknown tag keeps payload", `{"type":"tool_result","tool_use_id":"t1","output":{"ok":true}}`},
		{"known key names with foreign shapes", `{"type":"tool_use","text":{"nested":1},"id":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var block ContentBlock
			require.NoError(t, json.Unmarshal([]byte(tt.in), &block))

			out, err := json.Marshal(block)
			require.NoError(t, err)

			var want, got map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(tt.in), &want))
			require.NoError(t, json.Unmarshal(out, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestContentBlockNonStringKnownKeysLandInExtra(t *testing.T) {
	var block ContentBlock
	require.NoError(t, json.Unmarshal([]byte(`{"type":"tool_use","text":{"nested":1},"id":42}`), &block))

	assert.Equal(t, "tool_use", block.Type)
	assert.Empty(t, block.Text)
	assert.Empty(t, block.Id)
	assert.Equal(t, map[string]interface{}{"nested": float64(1)}, block.Extra["text"])
	assert.Equal(t, float64(42), block.Extra["id"])
}

func TestContentBlockUnknownKeysLandInExtra(t *testing.T) {
	var block ContentBlock
	require.NoError(t, json.Unmarshal([]byte(`{"type":"image","mime_type":"image/png","source":"inline","data":"abc"}`), &block))

	assert.Equal(t, "image", block.Type)
	assert.Equal(t, "image/png", block.MimeType)
	assert.Equal(t, "abc", block.Data)
	assert.Equal(t, "inline", block.Extra["source"])
	_, known := block.Extra["mime_type"]
	assert.False(t, known)
}
