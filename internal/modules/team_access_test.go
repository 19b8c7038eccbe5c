package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

func teamAccessFixture(fake *fakeTFE, grants ...*tfe.Resource) {
	fake.collection("/api/v2/organizations", orgFoo())
	fake.collection("/api/v2/organizations/foo/teams",
		&tfe.Resource{ID: "team-1", Type: "teams", Attributes: map[string]any{"name": "developers"}})
	fake.collection("/api/v2/organizations/foo/workspaces", workspaceBar())
	fake.collection("/api/v2/team-workspaces", grants...)
}

func writeGrant() *tfe.Resource {
	return &tfe.Resource{
		ID:         "tws-1",
		Type:       "team-workspaces",
		Attributes: map[string]any{"access": "write"},
		Relationships: map[string]*tfe.Relationship{
			"team":      {Data: []*tfe.ResourceRef{{ID: "team-1", Type: "teams"}}},
			"workspace": {Data: []*tfe.ResourceRef{{ID: "ws-1", Type: "workspaces"}}},
		},
	}
}

func TestApplyTeamAccess(t *testing.T) {
	t.Run("a satisfied grant is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake, writeGrant())

		result, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Team:         "developers",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"access": "write"},
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("a drifted grant is updated", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake, writeGrant())
		fake.accept("PATCH", "/api/v2/team-workspaces/tws-1", nil)

		result, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Team:         "developers",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"access": "admin"},
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"PATCH /api/v2/team-workspaces/tws-1"}, fake.mutationLog())
	})

	t.Run("a missing grant is added", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake)
		fake.accept("POST", "/api/v2/team-workspaces", nil)

		result, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Team:         "team-1",
			Workspace:    "ws-1",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"access": "read"},
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"POST /api/v2/team-workspaces"}, fake.mutationLog())
	})

	t.Run("absent removes the grant by relationship ID", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake, writeGrant())
		fake.accept("DELETE", "/api/v2/team-workspaces/tws-1", nil)

		result, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Relationship: "tws-1",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"DELETE /api/v2/team-workspaces/tws-1"}, fake.mutationLog())
	})

	t.Run("an unknown relationship is fatal", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake, writeGrant())

		_, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Relationship: "tws-404",
			State:        reconcile.StateAbsent,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `the supplied relationship "tws-404" does not exist`)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("absent with no matching grant is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake)

		result, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Team:         "developers",
			Workspace:    "bar",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("relationship and team are mutually exclusive", func(t *testing.T) {
		fake := newFakeTFE(t)

		_, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Relationship: "tws-1",
			Team:         "developers",
			Workspace:    "bar",
			State:        reconcile.StateAbsent,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("an unknown team is fatal", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamAccessFixture(fake)

		_, err := ApplyTeamAccess(context.Background(), fake.client(t), TeamAccessOptions{
			Organization: "foo",
			Team:         "ghosts",
			Workspace:    "bar",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"access": "read"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `the supplied team "ghosts" does not exist in "foo" organization`)
		assert.Empty(t, fake.mutationLog())
	})
}
