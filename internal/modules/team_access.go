package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// TeamAccessOptions configures the team access module. A grant is
// addressed either by its relationship ID or by the team/workspace pair;
// both teams and workspaces may be referred to by name or ID.
type TeamAccessOptions struct {
	Organization string
	Team         string
	Workspace    string
	Relationship string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made. The
// relationship ID and the team/workspace pair are mutually exclusive, and
// team and workspace are only meaningful together.
func (o TeamAccessOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Relationship,
			validation.Empty.When(o.Team != "" || o.Workspace != "").
				Error("relationship and team/workspace are mutually exclusive"),
		),
		validation.Field(&o.Team,
			validation.Required.When(o.Relationship == "").
				Error("either relationship or team is required"),
			validation.Required.When(o.Workspace != "").
				Error("team and workspace are required together"),
		),
		validation.Field(&o.Workspace,
			validation.Required.When(o.Team != "").
				Error("team and workspace are required together"),
		),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent).
				Error("attributes are required when state is present"),
		),
	)
}

// ApplyTeamAccess reconciles one team's permissions on one workspace.
func ApplyTeamAccess(ctx context.Context, client *tfe.Client, opts TeamAccessOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{
		"state":        opts.State,
		"organization": opts.Organization,
	}
	if opts.Team != "" {
		params["team"] = opts.Team
	}
	if opts.Workspace != "" {
		params["workspace"] = opts.Workspace
	}
	if opts.Relationship != "" {
		params["relationship"] = opts.Relationship
	}
	if attributes != nil {
		params["attributes"] = attributes
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	var teamID string
	if opts.Team != "" {
		teamID, err = resolveTeamID(ctx, client, opts.Team, organization)
		if err != nil {
			return result, err
		}
	}

	workspaces, err := fetchWorkspaces(ctx, client, organization)
	if err != nil {
		return result, err
	}

	var workspaceID string
	if opts.Workspace != "" {
		workspaceID, err = resolveWorkspaceID(opts.Workspace, organization, workspaces)
		if err != nil {
			return result, err
		}
	}

	// Access grants can only be listed per workspace, so the whole
	// organization is swept to locate the grant.
	grants := []*tfe.Resource{}
	for _, ws := range workspaces.Data {
		page, err := client.TeamAccess.List(ctx, ws.ID)
		if err != nil {
			return result, fmt.Errorf("unable to retrieve team access in %q organization: %w", organization, err)
		}
		grants = append(grants, page.Data...)
	}

	var grant *tfe.Resource
	if opts.Relationship != "" {
		for _, g := range grants {
			if g.ID == opts.Relationship {
				grant = g
				break
			}
		}
		if grant == nil {
			return result, fmt.Errorf("the supplied relationship %q does not exist in %q organization", opts.Relationship, organization)
		}
	} else {
		for _, g := range grants {
			if g.RelatedID("team") == teamID && g.RelatedID("workspace") == workspaceID {
				grant = g
				break
			}
		}
	}

	if opts.State == reconcile.StateAbsent {
		if grant == nil {
			return result, nil
		}
		if !opts.DryRun {
			if err := client.TeamAccess.Remove(ctx, grant.ID); err != nil {
				return result, fmt.Errorf("unable to remove %q team access in %q organization: %w", grant.ID, organization, err)
			}
		}
		result.MarkChanged()
		return result, nil
	}

	if grant != nil {
		if reconcile.IsSubset(attributes, grant.Attributes) {
			return result, nil
		}
		payload := &tfe.Payload{Data: &tfe.PayloadData{
			Type:       "team-workspaces",
			Attributes: attributes,
		}}
		if !opts.DryRun {
			doc, err := client.TeamAccess.Update(ctx, grant.ID, payload)
			if err != nil {
				return result, fmt.Errorf("unable to update %q team access in %q organization: %w", grant.ID, organization, err)
			}
			result.Output = doc
		}
		result.MarkChanged()
		return result, nil
	}

	payload := &tfe.Payload{Data: &tfe.PayloadData{
		Type:       "team-workspaces",
		Attributes: attributes,
		Relationships: map[string]any{
			"workspace": tfe.SingleRelationship("workspaces", workspaceID),
			"team":      tfe.SingleRelationship("teams", teamID),
		},
	}}
	if !opts.DryRun {
		doc, err := client.TeamAccess.Add(ctx, payload)
		if err != nil {
			return result, fmt.Errorf("unable to add team access in %q organization: %w", organization, err)
		}
		result.Output = doc
	}
	result.MarkChanged()
	return result, nil
}
