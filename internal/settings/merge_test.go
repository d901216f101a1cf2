package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMerge_Scenarios covers the merge rules on small documents.
func TestMerge_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		base  map[string]any
		patch map[string]any
		want  map[string]any
	}{
		{
			name:  "nested leaf replaced, siblings kept",
			base:  map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": true},
			patch: map[string]any{"a": map[string]any{"x": 9}},
			want:  map[string]any{"a": map[string]any{"x": 9, "y": 2}, "b": true},
		},
		{
			name:  "false overrides true",
			base:  map[string]any{"p": map[string]any{"show": true}},
			patch: map[string]any{"p": map[string]any{"show": false}},
			want:  map[string]any{"p": map[string]any{"show": false}},
		},
		{
			name:  "nil ignored",
			base:  map[string]any{"lang": "en"},
			patch: map[string]any{"lang": nil},
			want:  map[string]any{"lang": "en"},
		},
		{
			name:  "scalar replaces object",
			base:  map[string]any{"a": map[string]any{"x": 1}},
			patch: map[string]any{"a": "flat"},
			want:  map[string]any{"a": "flat"},
		},
		{
			name:  "new key added",
			base:  map[string]any{"a": 1},
			patch: map[string]any{"b": 2},
			want:  map[string]any{"a": 1, "b": 2},
		},
		{
			name:  "empty patch",
			base:  map[string]any{"a": 1},
			patch: nil,
			want:  map[string]any{"a": 1},
		},
		{
			name:  "nil base",
			base:  nil,
			patch: map[string]any{"a": map[string]any{"b": 1}},
			want:  map[string]any{"a": map[string]any{"b": 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.base, tt.patch))
		})
	}
}

// TestMerge_DoesNotMutateInputs verifies that neither argument changes and
// the result shares no nested maps with them.
func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1}}
	patch := map[string]any{"a": map[string]any{"y": 2}, "list": []any{"q"}}

	out := Merge(base, patch)

	assert.Equal(t, map[string]any{"a": map[string]any{"x": 1}}, base)
	assert.Equal(t, map[string]any{"a": map[string]any{"y": 2}, "list": []any{"q"}}, patch)

	out["a"].(map[string]any)["x"] = 100
	out["list"].([]any)[0] = "changed"
	assert.Equal(t, 1, base["a"].(map[string]any)["x"])
	assert.Equal(t, "q", patch["list"].([]any)[0])
}
