package modules

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// runInfoIncludes is the full include set, needed whenever results are
// filtered on nested resources.
var runInfoIncludes = []string{
	"plan", "apply", "created_by", "cost_estimate",
	"configuration_version", "configuration_version.ingress_attributes",
}

// RunInfoOptions configures the read-only run listing module. A run token
// matches runs by their custom message first; a token matching no message
// is treated as a run ID. Filter restricts results to runs related to
// included resources with the given attribute values, keyed by resource
// type, then attribute name (or "id").
type RunInfoOptions struct {
	Organization string
	Workspace    string
	Runs         []string
	Include      []string
	Filter       map[string]map[string][]string
	CreatedAfter string
}

// Validate checks the options before any remote call is made.
func (o RunInfoOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.Workspace, validation.Required),
		validation.Field(&o.CreatedAfter, validation.By(func(any) error {
			if o.CreatedAfter == "" {
				return nil
			}
			_, err := dateparse.ParseAny(o.CreatedAfter)
			return err
		})),
	)
}

// RunInfo retrieves details on the requested runs in a workspace. It never
// mutates remote state.
func RunInfo(ctx context.Context, client *tfe.Client, opts RunInfoOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tokens := reconcile.OrWildcard(reconcile.ExpandCommaSeparated(opts.Runs))

	params := map[string]any{
		"organization": opts.Organization,
		"workspace":    opts.Workspace,
		"runs":         tokens,
	}
	if len(opts.Include) > 0 {
		params["include"] = opts.Include
	}
	if opts.Filter != nil {
		params["filter"] = opts.Filter
	}
	if opts.CreatedAfter != "" {
		params["created_after"] = opts.CreatedAfter
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	workspaces, err := fetchWorkspaces(ctx, client, organization)
	if err != nil {
		return result, err
	}
	workspaceID, err := resolveWorkspaceID(opts.Workspace, organization, workspaces)
	if err != nil {
		return result, err
	}

	include := opts.Include
	if opts.Filter != nil {
		// Filtering walks relationships of nested resources, so the full
		// include set must be fetched regardless of what was asked for.
		include = runInfoIncludes
	}

	var out *tfe.Collection
	if reconcile.HasWildcard(tokens) {
		out, err = client.Runs.List(ctx, workspaceID, include)
		if err != nil {
			return result, fmt.Errorf("unable to list runs in %q workspace: %w", opts.Workspace, err)
		}
	} else {
		out, err = collectRuns(ctx, client, workspaceID, opts.Workspace, tokens, include)
		if err != nil {
			return result, err
		}
	}

	if opts.Filter != nil {
		out = restrictRuns(opts.Filter, out)
	}
	if opts.CreatedAfter != "" {
		threshold, _ := dateparse.ParseAny(opts.CreatedAfter)
		out.Data = runsCreatedAfter(out.Data, threshold)
	}
	out.Data = dedupeByID(out.Data)
	out.Included = dedupeByID(out.Included)
	result.Output = out
	return result, nil
}

// collectRuns shows each requested run. A token matching one or more run
// messages selects all of them; otherwise the token is shown as a run ID.
func collectRuns(ctx context.Context, client *tfe.Client, workspaceID, workspace string, tokens, include []string) (*tfe.Collection, error) {
	all, err := client.Runs.List(ctx, workspaceID, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to list runs in %q workspace: %w", workspace, err)
	}

	out := &tfe.Collection{Data: []*tfe.Resource{}, Included: []*tfe.Resource{}}
	for _, token := range tokens {
		ids := []string{}
		for _, run := range all.Data {
			if run.StringAttr("message") == token {
				ids = append(ids, run.ID)
			}
		}
		if len(ids) == 0 {
			ids = []string{token}
		}
		for _, id := range ids {
			doc, err := client.Runs.Show(ctx, id, include)
			if err != nil {
				return nil, fmt.Errorf("unable to retrieve details on a run in %q workspace: %w", workspace, err)
			}
			out.Data = append(out.Data, doc.Data)
			out.Included = append(out.Included, doc.Included...)
		}
	}
	return out, nil
}

// restrictRuns keeps only the runs related to included resources matching
// the filter. Matching starts from included resources with the requested
// attribute (or ID) values, expands to every included resource related to
// an already matched one, and finally keeps the runs referencing any
// matched resource.
func restrictRuns(filter map[string]map[string][]string, in *tfe.Collection) *tfe.Collection {
	matched := map[string]*tfe.Resource{}
	order := []*tfe.Resource{}
	add := func(r *tfe.Resource) {
		if _, ok := matched[r.ID]; !ok {
			matched[r.ID] = r
			order = append(order, r)
		}
	}

	for resourceType, attributes := range filter {
		for _, item := range in.Included {
			if item.Type != resourceType {
				continue
			}
			for name, values := range attributes {
				for _, value := range values {
					if name == "id" && item.ID == value {
						add(item)
					}
					if name != "id" && item.StringAttr(name) == value {
						add(item)
					}
				}
			}
		}
	}

	// Pull in resources related to already matched ones until the closure
	// is stable.
	for grew := true; grew; {
		grew = false
		for _, item := range in.Included {
			if _, ok := matched[item.ID]; ok {
				continue
			}
			for _, rel := range item.Relationships {
				for _, ref := range rel.Data {
					if ref != nil {
						if _, ok := matched[ref.ID]; ok {
							add(item)
							grew = true
						}
					}
				}
			}
		}
	}

	out := &tfe.Collection{Data: []*tfe.Resource{}, Included: order}
	for _, run := range in.Data {
		for _, rel := range run.Relationships {
			for _, ref := range rel.Data {
				if ref != nil {
					if _, ok := matched[ref.ID]; ok {
						out.Data = append(out.Data, run)
					}
				}
			}
		}
	}
	return out
}

// runsCreatedAfter keeps runs whose created-at attribute parses to a time
// after the threshold. Runs without a parseable created-at are dropped.
func runsCreatedAfter(runs []*tfe.Resource, threshold time.Time) []*tfe.Resource {
	out := []*tfe.Resource{}
	for _, run := range runs {
		createdAt, err := dateparse.ParseAny(run.StringAttr("created-at"))
		if err == nil && createdAt.After(threshold) {
			out = append(out, run)
		}
	}
	return out
}
