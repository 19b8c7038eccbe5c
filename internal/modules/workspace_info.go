package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// WorkspaceInfoOptions configures the read-only workspace listing module.
// Workspaces may be names, IDs or comma-separated groups of either; an
// empty list defaults to "*", meaning every workspace in the organization.
type WorkspaceInfoOptions struct {
	Organization string
	Workspaces   []string
	Include      []string
}

// Validate checks the options before any remote call is made.
func (o WorkspaceInfoOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
	)
}

// WorkspaceInfo retrieves details on the requested workspaces. It never
// mutates remote state.
func WorkspaceInfo(ctx context.Context, client *tfe.Client, opts WorkspaceInfoOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tokens := reconcile.OrWildcard(reconcile.ExpandCommaSeparated(opts.Workspaces))

	params := map[string]any{
		"organization": opts.Organization,
		"workspaces":   tokens,
	}
	if len(opts.Include) > 0 {
		params["include"] = opts.Include
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	if reconcile.HasWildcard(tokens) {
		all, err := client.Workspaces.List(ctx, organization, opts.Include)
		if err != nil {
			return result, fmt.Errorf("unable to list workspaces in %q organization: %w", organization, err)
		}
		all.Data = dedupeByID(all.Data)
		all.Included = dedupeByID(all.Included)
		result.Output = all
		return result, nil
	}

	// A name lookup needs the full collection; IDs are shown directly.
	workspaces, err := fetchWorkspaces(ctx, client, organization)
	if err != nil {
		return result, err
	}

	out := &tfe.Collection{Data: []*tfe.Resource{}, Included: []*tfe.Resource{}}
	for _, token := range tokens {
		var doc *tfe.Document
		if _, nameErr := reconcile.Resolve("workspace", token, workspaces.Data, reconcile.ByAttribute("name")); nameErr == nil {
			doc, err = client.Workspaces.ShowByName(ctx, organization, token, opts.Include)
		} else {
			doc, err = client.Workspaces.Show(ctx, token, opts.Include)
		}
		if err != nil {
			return result, fmt.Errorf("unable to retrieve details on workspace %q in %q organization: %w", token, organization, err)
		}
		out.Data = append(out.Data, doc.Data)
		out.Included = append(out.Included, doc.Included...)
	}
	out.Data = dedupeByID(out.Data)
	out.Included = dedupeByID(out.Included)
	result.Output = out
	return result, nil
}
