package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// TeamMembershipOptions configures the team membership module. Users may
// be usernames, user IDs or comma-separated groups of either.
type TeamMembershipOptions struct {
	Organization string
	Team         string
	Users        []string
	State        reconcile.State
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o TeamMembershipOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.Team, validation.Required),
		validation.Field(&o.Users, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
	)
}

// ApplyTeamMembership reconciles a set of users onto a team's member list.
// Users already on the team are skipped on add; users not on the team are
// skipped on remove, so re-runs are no-ops.
func ApplyTeamMembership(ctx context.Context, client *tfe.Client, opts TeamMembershipOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	users := reconcile.ExpandCommaSeparated(opts.Users)

	params := map[string]any{
		"state":        opts.State,
		"organization": opts.Organization,
		"team":         opts.Team,
		"users":        users,
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	teamID, err := resolveTeamID(ctx, client, opts.Team, organization)
	if err != nil {
		return result, err
	}

	team, err := client.Teams.Show(ctx, teamID, []string{"users"})
	if err != nil {
		return result, fmt.Errorf("unable to retrieve details on a team in %q organization: %w", organization, err)
	}
	members := team.Included

	find := func(token string) *tfe.Resource {
		for _, m := range members {
			if m.StringAttr("username") == token || m.ID == token {
				return m
			}
		}
		return nil
	}

	refs := []*tfe.ResourceRef{}
	if opts.State == reconcile.StatePresent {
		for _, user := range users {
			if find(user) == nil {
				refs = append(refs, &tfe.ResourceRef{ID: user, Type: "users"})
			}
		}
	} else {
		for _, user := range users {
			if m := find(user); m != nil {
				refs = append(refs, &tfe.ResourceRef{ID: m.StringAttr("username"), Type: "users"})
			}
		}
	}
	if len(refs) == 0 {
		return result, nil
	}

	payload := &tfe.RefsPayload{Data: refs}
	if !opts.DryRun {
		if opts.State == reconcile.StatePresent {
			if err := client.Teams.AddMembers(ctx, teamID, payload); err != nil {
				return result, fmt.Errorf("unable to add users to %q team in %q organization: %w", opts.Team, organization, err)
			}
		} else {
			if err := client.Teams.RemoveMembers(ctx, teamID, payload); err != nil {
				return result, fmt.Errorf("unable to remove users from %q team in %q organization: %w", opts.Team, organization, err)
			}
		}
	}
	result.MarkChanged()
	return result, nil
}
