package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

func workspaceFixture(fake *fakeTFE, workspaces ...*tfe.Resource) {
	fake.collection("/api/v2/organizations", orgFoo())
	fake.collection("/api/v2/organizations/foo/workspaces", workspaces...)
}

func TestApplyWorkspace(t *testing.T) {
	t.Run("rerunning a satisfied request is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"auto_apply": false},
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
		require.Len(t, result.Steps, 1)
		assert.Equal(t, "attributes", result.Steps[0].Name)
		assert.False(t, result.Steps[0].Changed)
	})

	t.Run("present with an explicit missing workspace is fatal", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		_, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "missing",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"auto-apply": true},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `the supplied workspace "missing" does not exist in "foo" organization`)
	})

	t.Run("absent and missing is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "missing",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("absent deletes an existing workspace", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.accept("DELETE", "/api/v2/workspaces/ws-1", nil)

		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"DELETE /api/v2/workspaces/ws-1"}, fake.mutationLog())
	})

	t.Run("dry-run reports drift without mutating", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"auto-apply": true},
			DryRun:       true,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("locking is an independent step", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.accept("POST", "/api/v2/workspaces/ws-1/actions/lock",
			&tfe.Document{Data: &tfe.Resource{ID: "ws-1", Type: "workspaces"}})

		locked := true
		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Locked:       &locked,
			LockReason:   "maintenance",
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"POST /api/v2/workspaces/ws-1/actions/lock"}, fake.mutationLog())
		require.Len(t, result.Steps, 1)
		assert.Equal(t, "lock", result.Steps[0].Name)
		assert.True(t, result.Steps[0].Changed)
	})

	t.Run("already unlocked does not call unlock", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		locked := false
		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Locked:       &locked,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("ssh key is resolved by name before assigning", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())
		fake.collection("/api/v2/organizations/foo/ssh-keys",
			&tfe.Resource{ID: "sshkey-1", Type: "ssh-keys", Attributes: map[string]any{"name": "deploy"}})
		fake.accept("PATCH", "/api/v2/workspaces/ws-1/relationships/ssh-key",
			&tfe.Document{Data: &tfe.Resource{ID: "ws-1", Type: "workspaces"}})

		key := "deploy"
		result, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			SSHKey:       &key,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"PATCH /api/v2/workspaces/ws-1/relationships/ssh-key"}, fake.mutationLog())
	})

	t.Run("creating requires a name attribute", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		_, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"auto-apply": true},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"name" is required`)
	})

	t.Run("vcs-repo needs oauth-token-id and identifier", func(t *testing.T) {
		fake := newFakeTFE(t)
		workspaceFixture(fake, workspaceBar())

		_, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			State:        reconcile.StatePresent,
			Attributes: map[string]any{
				"name":     "new-ws",
				"vcs_repo": map[string]any{"identifier": "org/repo"},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oauth-token-id")
	})

	t.Run("lock_reason without locked is a validation error", func(t *testing.T) {
		fake := newFakeTFE(t)

		_, err := ApplyWorkspace(context.Background(), fake.client(t), WorkspaceOptions{
			Organization: "foo",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"auto-apply": true},
			LockReason:   "maintenance",
		})
		assert.Error(t, err)
	})
}
