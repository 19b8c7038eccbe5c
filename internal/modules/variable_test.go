package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

func TestApplyVariable(t *testing.T) {
	t.Run("a missing workspace is fatal even for absent", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		_, err := ApplyVariable(context.Background(), fake.client(t), VariableOptions{
			Organization: "foo",
			Workspace:    "missing",
			Variable:     "region",
			State:        reconcile.StateAbsent,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `the supplied workspace "missing" does not exist in "foo" organization`)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("absent deletes the variable by key", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.collection("/api/v2/workspaces/ws-1/vars",
			&tfe.Resource{ID: "var-1", Type: "vars", Attributes: map[string]any{"key": "region"}})
		fake.accept("DELETE", "/api/v2/workspaces/ws-1/vars/var-1", nil)

		result, err := ApplyVariable(context.Background(), fake.client(t), VariableOptions{
			Organization: "foo",
			Workspace:    "bar",
			Variable:     "region",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"DELETE /api/v2/workspaces/ws-1/vars/var-1"}, fake.mutationLog())
	})

	t.Run("absent with a missing variable is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.collection("/api/v2/workspaces/ws-1/vars")

		result, err := ApplyVariable(context.Background(), fake.client(t), VariableOptions{
			Organization: "foo",
			Workspace:    "bar",
			Variable:     "region",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("present creates when the key is new", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.collection("/api/v2/workspaces/ws-1/vars")
		fake.accept("POST", "/api/v2/workspaces/ws-1/vars",
			&tfe.Document{Data: &tfe.Resource{ID: "var-1", Type: "vars"}})

		result, err := ApplyVariable(context.Background(), fake.client(t), VariableOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"key": "region", "value": "eu-north-1", "category": "terraform"},
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"POST /api/v2/workspaces/ws-1/vars"}, fake.mutationLog())
	})

	t.Run("sensitive values are not echoed in params", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.collection("/api/v2/workspaces/ws-1/vars")
		fake.accept("POST", "/api/v2/workspaces/ws-1/vars",
			&tfe.Document{Data: &tfe.Resource{ID: "var-1", Type: "vars"}})

		result, err := ApplyVariable(context.Background(), fake.client(t), VariableOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes: map[string]any{
				"key":       "token",
				"value":     "s3cr3t",
				"sensitive": true,
			},
		})
		require.NoError(t, err)

		echoed, ok := result.Params["attributes"].(map[string]any)
		require.True(t, ok)
		_, hasValue := echoed["value"]
		assert.False(t, hasValue)
		assert.Equal(t, "token", echoed["key"])
	})
}
