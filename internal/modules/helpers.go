// Package modules implements the per-resource configuration modules. Each
// module reconciles one Terraform Enterprise resource type: it resolves
// human-supplied identifiers against a freshly fetched collection, decides
// whether a write is needed by subset comparison, performs at most one
// mutating call per step, and returns a normalized result with a changed
// flag. A dry-run flag reports the decision without mutating anything.
package modules

import (
	"context"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// resolveOrganization maps an organization token (name or external-id) to
// the canonical organization name. The external-id is checked before the
// name. When the organization listing itself fails (API tokens are not
// always entitled to list organizations) the supplied value is taken at
// face value. The second return reports whether the organization exists.
func resolveOrganization(ctx context.Context, client *tfe.Client, organization string) (string, bool) {
	orgs, err := client.Organizations.List(ctx)
	if err != nil {
		return organization, true
	}
	name, err := reconcile.Resolve("organization", organization, orgs.Data,
		reconcile.ByAttribute("external-id"),
		reconcile.ByID(),
	)
	if err != nil {
		return "", false
	}
	return name, true
}

// requireOrganization is resolveOrganization for modules that cannot
// proceed without the organization.
func requireOrganization(ctx context.Context, client *tfe.Client, organization string) (string, error) {
	name, found := resolveOrganization(ctx, client, organization)
	if !found {
		return "", fmt.Errorf("the supplied organization %q does not exist", organization)
	}
	return name, nil
}

// resolveWorkspaceID maps a workspace token (name or ID) to its canonical
// ID within an already fetched workspace collection. Missing workspaces
// are fatal for every module that scopes work to a workspace.
func resolveWorkspaceID(workspace, organization string, workspaces *tfe.Collection) (string, error) {
	id, err := reconcile.Resolve("workspace", workspace, workspaces.Data,
		reconcile.ByAttribute("name"),
		reconcile.ByID(),
	)
	if err != nil {
		return "", fmt.Errorf("the supplied workspace %q does not exist in %q organization", workspace, organization)
	}
	return id, nil
}

// resolveTeamID maps a team token (name or ID) to its canonical ID.
// Missing teams are fatal.
func resolveTeamID(ctx context.Context, client *tfe.Client, team, organization string) (string, error) {
	teams, err := client.Teams.List(ctx, organization, nil)
	if err != nil {
		return "", fmt.Errorf("unable to list teams in %q organization: %w", organization, err)
	}
	id, err := reconcile.Resolve("team", team, teams.Data,
		reconcile.ByAttribute("name"),
		reconcile.ByID(),
	)
	if err != nil {
		return "", fmt.Errorf("the supplied team %q does not exist in %q organization", team, organization)
	}
	return id, nil
}

// fetchWorkspaces lists the organization's workspaces with the standard
// error context.
func fetchWorkspaces(ctx context.Context, client *tfe.Client, organization string) (*tfe.Collection, error) {
	workspaces, err := client.Workspaces.List(ctx, organization, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to list workspaces in %q organization: %w", organization, err)
	}
	return workspaces, nil
}

// dedupeByID removes later occurrences of resources sharing an ID while
// preserving first-seen order.
func dedupeByID(resources []*tfe.Resource) []*tfe.Resource {
	seen := make(map[string]bool, len(resources))
	out := make([]*tfe.Resource, 0, len(resources))
	for _, r := range resources {
		if r == nil || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
