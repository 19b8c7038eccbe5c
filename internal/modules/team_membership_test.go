package modules

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

func teamMembershipFixture(fake *fakeTFE) {
	fake.collection("/api/v2/organizations", orgFoo())
	fake.collection("/api/v2/organizations/foo/teams",
		&tfe.Resource{ID: "team-1", Type: "teams", Attributes: map[string]any{"name": "developers"}})
	fake.document("/api/v2/teams/team-1", &tfe.Document{
		Data: &tfe.Resource{ID: "team-1", Type: "teams", Attributes: map[string]any{"name": "developers"}},
		Included: []*tfe.Resource{
			{ID: "user-1", Type: "users", Attributes: map[string]any{"username": "ann"}},
		},
	})
}

func TestApplyTeamMembership(t *testing.T) {
	t.Run("present with existing members is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamMembershipFixture(fake)

		result, err := ApplyTeamMembership(context.Background(), fake.client(t), TeamMembershipOptions{
			Organization: "foo",
			Team:         "developers",
			Users:        []string{"ann"},
			State:        reconcile.StatePresent,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("present adds only the missing users", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamMembershipFixture(fake)

		var payload tfe.RefsPayload
		fake.mux.HandleFunc("POST /api/v2/teams/team-1/relationships/users", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.WriteHeader(http.StatusNoContent)
		})

		result, err := ApplyTeamMembership(context.Background(), fake.client(t), TeamMembershipOptions{
			Organization: "foo",
			Team:         "developers",
			Users:        []string{"ann", "bob,carol"},
			State:        reconcile.StatePresent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		require.Len(t, payload.Data, 2)
		assert.Equal(t, "bob", payload.Data[0].ID)
		assert.Equal(t, "carol", payload.Data[1].ID)
	})

	t.Run("absent removes by username even when addressed by ID", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamMembershipFixture(fake)

		var payload tfe.RefsPayload
		fake.mux.HandleFunc("DELETE /api/v2/teams/team-1/relationships/users", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.WriteHeader(http.StatusNoContent)
		})

		result, err := ApplyTeamMembership(context.Background(), fake.client(t), TeamMembershipOptions{
			Organization: "foo",
			Team:         "team-1",
			Users:        []string{"user-1"},
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		require.Len(t, payload.Data, 1)
		assert.Equal(t, "ann", payload.Data[0].ID)
	})

	t.Run("absent with unknown users is a no-op", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamMembershipFixture(fake)

		result, err := ApplyTeamMembership(context.Background(), fake.client(t), TeamMembershipOptions{
			Organization: "foo",
			Team:         "developers",
			Users:        []string{"nobody"},
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("dry-run reports the change without mutating", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamMembershipFixture(fake)

		result, err := ApplyTeamMembership(context.Background(), fake.client(t), TeamMembershipOptions{
			Organization: "foo",
			Team:         "developers",
			Users:        []string{"bob"},
			State:        reconcile.StatePresent,
			DryRun:       true,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})

	t.Run("an unknown team is fatal", func(t *testing.T) {
		fake := newFakeTFE(t)
		teamMembershipFixture(fake)

		_, err := ApplyTeamMembership(context.Background(), fake.client(t), TeamMembershipOptions{
			Organization: "foo",
			Team:         "ghosts",
			Users:        []string{"ann"},
			State:        reconcile.StatePresent,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `the supplied team "ghosts" does not exist in "foo" organization`)
		assert.Empty(t, fake.mutationLog())
	})
}
