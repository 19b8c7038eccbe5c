package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// MembershipOptions configures the organization membership module. An
// existing member may be referred to by membership ID, email, user ID or
// username. Inviting a new member requires an email and at least one team.
type MembershipOptions struct {
	Organization string
	User         string
	State        reconcile.State
	Email        string
	Teams        []string
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o MembershipOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.User,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("user is required when state is absent"),
		),
		validation.Field(&o.Email,
			validation.Required.When(o.State == reconcile.StatePresent && o.User == "").
				Error("email is required when inviting a new member"),
			is.EmailFormat,
		),
		validation.Field(&o.Teams,
			validation.Required.When(o.State == reconcile.StatePresent && o.User == "").
				Error("at least one team is required when inviting a new member"),
		),
	)
}

// ApplyMembership reconciles one user's membership in the organization.
func ApplyMembership(ctx context.Context, client *tfe.Client, opts MembershipOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := map[string]any{
		"state":        opts.State,
		"organization": opts.Organization,
	}
	if opts.User != "" {
		params["user"] = opts.User
	}
	if opts.Email != "" {
		params["email"] = opts.Email
	}
	if len(opts.Teams) > 0 {
		params["teams"] = opts.Teams
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	memberships, err := client.Memberships.List(ctx, organization, []string{"user"})
	if err != nil {
		return result, fmt.Errorf("unable to list memberships in %q organization: %w", organization, err)
	}

	token := opts.User
	if token == "" {
		token = opts.Email
	}
	membership := findMembership(memberships, token)

	if opts.State == reconcile.StateAbsent {
		if membership == nil {
			return result, nil
		}
		if !opts.DryRun {
			if err := client.Memberships.Remove(ctx, membership.ID); err != nil {
				return result, fmt.Errorf("unable to remove user %q from %q organization: %w", opts.User, organization, err)
			}
		}
		result.MarkChanged()
		return result, nil
	}

	if opts.User != "" && membership == nil {
		return result, fmt.Errorf("the supplied user %q is not a member of %q organization", opts.User, organization)
	}
	if membership != nil {
		result.Output = &tfe.Document{Data: membership}
		return result, nil
	}

	teamRefs, err := resolveTeamRefs(ctx, client, organization, opts.Teams)
	if err != nil {
		return result, err
	}
	payload := &tfe.Payload{Data: &tfe.PayloadData{
		Type:       "organization-memberships",
		Attributes: map[string]any{"email": opts.Email},
		Relationships: map[string]any{
			"teams": map[string]any{"data": teamRefs},
		},
	}}
	if !opts.DryRun {
		doc, err := client.Memberships.Invite(ctx, organization, payload)
		if err != nil {
			return result, fmt.Errorf("unable to invite %q to %q organization: %w", opts.Email, organization, err)
		}
		result.Output = doc
	}
	result.MarkChanged()
	return result, nil
}

// findMembership matches a membership by its ID, the member's email, the
// related user's ID, or the included user's username, in that order.
func findMembership(memberships *tfe.Collection, token string) *tfe.Resource {
	if token == "" {
		return nil
	}
	usernames := make(map[string]string, len(memberships.Included))
	for _, user := range memberships.Included {
		if user.Type == "users" {
			usernames[user.ID] = user.StringAttr("username")
		}
	}
	match := func(m *tfe.Resource) bool {
		if m.ID == token || m.StringAttr("email") == token {
			return true
		}
		userID := m.RelatedID("user")
		return userID != "" && (userID == token || usernames[userID] == token)
	}
	for _, m := range memberships.Data {
		if match(m) {
			return m
		}
	}
	return nil
}

// resolveTeamRefs maps team names or IDs to team references.
func resolveTeamRefs(ctx context.Context, client *tfe.Client, organization string, tokens []string) ([]*tfe.ResourceRef, error) {
	teams, err := client.Teams.List(ctx, organization, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to list teams in %q organization: %w", organization, err)
	}
	refs := make([]*tfe.ResourceRef, 0, len(tokens))
	for _, token := range reconcile.ExpandCommaSeparated(tokens) {
		id, err := reconcile.Resolve("team", token, teams.Data,
			reconcile.ByAttribute("name"),
			reconcile.ByID(),
		)
		if err != nil {
			return nil, fmt.Errorf("the supplied team %q does not exist in %q organization", token, organization)
		}
		refs = append(refs, &tfe.ResourceRef{ID: id, Type: "teams"})
	}
	return refs, nil
}
