package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	t.Run("absent with existing deletes", func(t *testing.T) {
		assert.Equal(t, ActionDelete, Decide(StateAbsent, "ws-1", nil, nil))
	})

	t.Run("absent without existing is a no-op", func(t *testing.T) {
		assert.Equal(t, ActionNone, Decide(StateAbsent, "", nil, nil))
	})

	t.Run("present without existing creates", func(t *testing.T) {
		assert.Equal(t, ActionCreate, Decide(StatePresent, "", map[string]any{"name": "x"}, nil))
	})

	t.Run("present with satisfied attributes is a no-op", func(t *testing.T) {
		desired := map[string]any{"name": "x"}
		current := map[string]any{"name": "x", "auto-apply": true}
		assert.Equal(t, ActionNone, Decide(StatePresent, "ws-1", desired, current))
	})

	t.Run("present with unsatisfied attributes updates", func(t *testing.T) {
		desired := map[string]any{"auto-apply": false}
		current := map[string]any{"auto-apply": true}
		assert.Equal(t, ActionUpdate, Decide(StatePresent, "ws-1", desired, current))
	})

	t.Run("present with no desired attributes is a no-op", func(t *testing.T) {
		assert.Equal(t, ActionNone, Decide(StatePresent, "ws-1", nil, map[string]any{"a": 1}))
	})
}

func TestResult(t *testing.T) {
	t.Run("steps fold into the changed flag", func(t *testing.T) {
		r := NewResult(map[string]any{"workspace": "bar"})
		r.AddStep("attributes", false, nil)
		assert.False(t, r.Changed)
		r.AddStep("lock", true, nil)
		assert.True(t, r.Changed)
	})

	t.Run("step errors are recorded without masking other steps", func(t *testing.T) {
		r := NewResult(nil)
		r.AddStep("attributes", true, nil)
		r.AddStep("ssh-key", false, errors.New("boom"))
		assert.Len(t, r.Steps, 2)
		assert.Equal(t, "boom", r.Steps[1].Error)
		assert.True(t, r.Changed)
	})

	t.Run("render flattens params and defaults json", func(t *testing.T) {
		r := NewResult(map[string]any{"organization": "foo"})
		out := r.Render()
		assert.Equal(t, "foo", out["organization"])
		assert.Equal(t, false, out["changed"])
		assert.Equal(t, map[string]any{}, out["json"])
		_, hasSteps := out["steps"]
		assert.False(t, hasSteps)
	})

	t.Run("render carries output and steps", func(t *testing.T) {
		r := NewResult(nil)
		r.MarkChanged()
		r.AddStep("lock", true, nil)
		r.Output = map[string]any{"data": []any{}}
		out := r.Render()
		assert.Equal(t, true, out["changed"])
		assert.Equal(t, []Step{{Name: "lock", Changed: true}}, out["steps"])
		assert.Equal(t, map[string]any{"data": []any{}}, out["json"])
	})
}
