package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSubset(t *testing.T) {
	t.Run("missing keys are not a change", func(t *testing.T) {
		desired := map[string]any{"name": "ws"}
		current := map[string]any{"name": "ws", "auto-apply": true}
		assert.True(t, IsSubset(desired, current))
	})

	t.Run("differing value needs a write", func(t *testing.T) {
		desired := map[string]any{"auto-apply": true}
		current := map[string]any{"auto-apply": false}
		assert.False(t, IsSubset(desired, current))
	})

	t.Run("key absent from current needs a write", func(t *testing.T) {
		desired := map[string]any{"description": "x"}
		current := map[string]any{}
		assert.False(t, IsSubset(desired, current))
	})

	t.Run("nested maps compare recursively", func(t *testing.T) {
		desired := map[string]any{"vcs-repo": map[string]any{"branch": "main"}}
		current := map[string]any{"vcs-repo": map[string]any{"branch": "main", "identifier": "org/repo"}}
		assert.True(t, IsSubset(desired, current))
	})

	t.Run("sequence match is existential not positional", func(t *testing.T) {
		assert.True(t, IsSubset([]any{"b"}, []any{"a", "b", "c"}))
		assert.True(t, IsSubset([]any{"c", "a"}, []any{"a", "b", "c"}))
		assert.False(t, IsSubset([]any{"d"}, []any{"a", "b", "c"}))
	})

	t.Run("string slices are sequences too", func(t *testing.T) {
		assert.True(t, IsSubset([]string{"b"}, []string{"a", "b"}))
	})

	t.Run("no type coercion", func(t *testing.T) {
		assert.False(t, IsSubset("true", true))
		assert.False(t, IsSubset(1, "1"))
		assert.False(t, IsSubset(map[string]any{"n": 1}, map[string]any{"n": "1"}))
	})

	t.Run("scalars compare by equality", func(t *testing.T) {
		assert.True(t, IsSubset("a", "a"))
		assert.False(t, IsSubset("a", "b"))
		assert.True(t, IsSubset(nil, nil))
	})

	t.Run("map against non-map fails", func(t *testing.T) {
		assert.False(t, IsSubset(map[string]any{"a": 1}, "a"))
	})
}
