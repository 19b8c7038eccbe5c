package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

func vcsTokenFixture(fake *fakeTFE) {
	fake.collection("/api/v2/organizations", orgFoo())
	fake.collection("/api/v2/organizations/foo/oauth-clients",
		&tfe.Resource{ID: "oc-1", Type: "oauth-clients", Attributes: map[string]any{"name": "bitbucket"}})
	fake.collection("/api/v2/oauth-clients/oc-1/oauth-tokens",
		&tfe.Resource{ID: "ot-1", Type: "oauth-tokens", Attributes: map[string]any{"has-ssh-key": false}})
}

func TestApplyVCSToken(t *testing.T) {
	t.Run("present updates the token", func(t *testing.T) {
		fake := newFakeTFE(t)
		vcsTokenFixture(fake)
		fake.accept("PATCH", "/api/v2/oauth-tokens/ot-1", nil)

		result, err := ApplyVCSToken(context.Background(), fake.client(t), VCSTokenOptions{
			Organization: "foo",
			Token:        "ot-1",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"ssh-key": "private key material"},
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"PATCH /api/v2/oauth-tokens/ot-1"}, fake.mutationLog())
	})

	t.Run("key material never reaches the result", func(t *testing.T) {
		fake := newFakeTFE(t)
		vcsTokenFixture(fake)
		fake.accept("PATCH", "/api/v2/oauth-tokens/ot-1", nil)

		result, err := ApplyVCSToken(context.Background(), fake.client(t), VCSTokenOptions{
			Organization: "foo",
			Token:        "ot-1",
			State:        reconcile.StatePresent,
			Attributes:   map[string]any{"ssh-key": "private key material"},
		})
		require.NoError(t, err)
		assert.NotContains(t, result.Params, "attributes")
	})

	t.Run("absent destroys the token", func(t *testing.T) {
		fake := newFakeTFE(t)
		vcsTokenFixture(fake)
		fake.accept("DELETE", "/api/v2/oauth-tokens/ot-1", nil)

		result, err := ApplyVCSToken(context.Background(), fake.client(t), VCSTokenOptions{
			Organization: "foo",
			Token:        "ot-1",
			State:        reconcile.StateAbsent,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, []string{"DELETE /api/v2/oauth-tokens/ot-1"}, fake.mutationLog())
	})

	t.Run("a missing token is a no-op for either state", func(t *testing.T) {
		for _, state := range []reconcile.State{reconcile.StatePresent, reconcile.StateAbsent} {
			fake := newFakeTFE(t)
			vcsTokenFixture(fake)

			result, err := ApplyVCSToken(context.Background(), fake.client(t), VCSTokenOptions{
				Organization: "foo",
				Token:        "ot-404",
				State:        state,
				Attributes:   map[string]any{"ssh-key": "irrelevant"},
			})
			require.NoError(t, err)
			assert.False(t, result.Changed)
			assert.Empty(t, fake.mutationLog())
		}
	})

	t.Run("dry-run reports the change without mutating", func(t *testing.T) {
		fake := newFakeTFE(t)
		vcsTokenFixture(fake)

		result, err := ApplyVCSToken(context.Background(), fake.client(t), VCSTokenOptions{
			Organization: "foo",
			Token:        "ot-1",
			State:        reconcile.StateAbsent,
			DryRun:       true,
		})
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Empty(t, fake.mutationLog())
	})
}
