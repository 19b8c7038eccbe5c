package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
)

func TestApplyOrganization(t *testing.T) {
	t.Run("absent and missing is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		fake.collection("/api/v2/organizations", orgFoo())

		result, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			Organization: "nonexistent",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("absent resolves the external-id to the name", func(t *testing.T) {
		fake := newFakeTFE(t)
		fake.collection("/api/v2/organizations", orgFoo())
		fake.accept("DELETE", "/api/v2/organizations/foo", nil)

		result, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			Organization: "org-AbCd1234",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"DELETE /api/v2/organizations/foo"}, fake.mutationLog())
	})

	t.Run("present with satisfied attributes is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		fake.collection("/api/v2/organizations", orgFoo())

		result, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			State:      reconcile.StatePresent,
			Attributes: map[string]any{"name": "foo", "email": "ops@example.com"},
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("present with drifted attributes updates", func(t *testing.T) {
		fake := newFakeTFE(t)
		fake.collection("/api/v2/organizations", orgFoo())
		fake.accept("PATCH", "/api/v2/organizations/foo", nil)

		result, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			State:      reconcile.StatePresent,
			Attributes: map[string]any{"name": "foo", "email": "new@example.com"},
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"PATCH /api/v2/organizations/foo"}, fake.mutationLog())
	})

	t.Run("present and missing creates", func(t *testing.T) {
		fake := newFakeTFE(t)
		fake.collection("/api/v2/organizations", orgFoo())
		fake.accept("POST", "/api/v2/organizations", nil)

		result, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			State:      reconcile.StatePresent,
			Attributes: map[string]any{"name": "new-org", "email": "new@example.com"},
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"POST /api/v2/organizations"}, fake.mutationLog())
	})

	t.Run("dry-run reports the change without mutating", func(t *testing.T) {
		fake := newFakeTFE(t)
		fake.collection("/api/v2/organizations", orgFoo())

		result, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			Organization: "foo",
			State:        reconcile.StateAbsent,
			DryRun:       true,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("validation happens before any remote call", func(t *testing.T) {
		fake := newFakeTFE(t)

		_, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			State: reconcile.StateAbsent,
		})
		assert.Error(t, err)
	})

	t.Run("organization token and attributes are mutually exclusive", func(t *testing.T) {
		fake := newFakeTFE(t)

		_, err := ApplyOrganization(context.Background(), fake.client(t), OrganizationOptions{
			Organization: "foo",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"name": "bar"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
		assert.Empty(t, fake.mutationLog())
	})
}
