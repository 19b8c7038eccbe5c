package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// Remote-state-consumer actions.
const (
	ConsumersActionAdd     = "add"
	ConsumersActionReplace = "replace"
	ConsumersActionDelete  = "delete"
)

func consumersActions() []any {
	return []any{ConsumersActionAdd, ConsumersActionReplace, ConsumersActionDelete}
}

// ConsumersOptions configures the remote-state-consumers module. Consumers
// may be workspace names or IDs, including comma-separated groups; "*"
// expands to every workspace in the organization except the source
// workspace itself.
type ConsumersOptions struct {
	Organization string
	Workspace    string
	Action       string
	Consumers    []string
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o ConsumersOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.Workspace, validation.Required),
		validation.Field(&o.Action, validation.Required, validation.In(consumersActions()...)),
		validation.Field(&o.Consumers, validation.Required),
	)
}

// ApplyRemoteStateConsumers reconciles the set of workspaces allowed to read
// the source workspace's state. The add and delete actions are gated on the
// current consumer set so re-running the same request reports no change;
// replace is gated on exact equality of the consumer ID sequence.
func ApplyRemoteStateConsumers(ctx context.Context, client *tfe.Client, opts ConsumersOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := map[string]any{
		"organization": opts.Organization,
		"workspace":    opts.Workspace,
		"action":       opts.Action,
		"consumers":    opts.Consumers,
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

	desired, err := resolveConsumerIDs(opts.Consumers, workspaceID, organization, workspaces)
	if err != nil {
		return result, err
	}

	current, err := client.Workspaces.ListRemoteStateConsumers(ctx, workspaceID)
	if err != nil {
		return result, fmt.Errorf("unable to list remote state consumers of %q workspace: %w", opts.Workspace, err)
	}
	currentIDs := make([]string, 0, len(current.Data))
	for _, c := range current.Data {
		currentIDs = append(currentIDs, c.ID)
	}

	changed := false
	switch opts.Action {
	case ConsumersActionAdd:
		changed = !idsSubset(desired, currentIDs)
		if changed && !opts.DryRun {
			err = client.Workspaces.AddRemoteStateConsumers(ctx, workspaceID, workspaceRefs(desired))
		}
	case ConsumersActionReplace:
		changed = !idsEqual(desired, currentIDs)
		if changed && !opts.DryRun {
			err = client.Workspaces.ReplaceRemoteStateConsumers(ctx, workspaceID, workspaceRefs(desired))
		}
	case ConsumersActionDelete:
		changed = idsIntersect(desired, currentIDs)
		if changed && !opts.DryRun {
			err = client.Workspaces.DeleteRemoteStateConsumers(ctx, workspaceID, workspaceRefs(desired))
		}
	}
	if err != nil {
		return result, fmt.Errorf("unable to %s remote state consumers of %q workspace: %w", opts.Action, opts.Workspace, err)
	}
	if changed {
		result.MarkChanged()
	}

	refreshed, err := client.Workspaces.ListRemoteStateConsumers(ctx, workspaceID)
	if err != nil {
		return result, fmt.Errorf("unable to list remote state consumers of %q workspace: %w", opts.Workspace, err)
	}
	result.Output = refreshed
	return result, nil
}

// resolveConsumerIDs expands and resolves consumer tokens to workspace IDs.
// Tokens are matched by name first, then by ID; "*" expands to every
// workspace except the source.
func resolveConsumerIDs(tokens []string, sourceID, organization string, workspaces *tfe.Collection) ([]string, error) {
	expanded := reconcile.ExpandCommaSeparated(tokens)
	ids := make([]string, 0, len(expanded))
	for _, token := range expanded {
		if token == reconcile.Wildcard {
			for _, ws := range workspaces.Data {
				if ws.ID != sourceID {
					ids = append(ids, ws.ID)
				}
			}
			continue
		}
		id, err := reconcile.Resolve("workspace", token, workspaces.Data,
			reconcile.ByAttribute("name"),
			reconcile.ByID(),
		)
		if err != nil {
			return nil, fmt.Errorf("the supplied workspace %q does not exist in %q organization", token, organization)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func workspaceRefs(ids []string) []*tfe.ResourceRef {
	refs := make([]*tfe.ResourceRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, &tfe.ResourceRef{ID: id, Type: "workspaces"})
	}
	return refs
}

func idsSubset(want, have []string) bool {
	set := make(map[string]bool, len(have))
	for _, id := range have {
		set[id] = true
	}
	for _, id := range want {
		if !set[id] {
			return false
		}
	}
	return true
}

func idsEqual(want, have []string) bool {
	if len(want) != len(have) {
		return false
	}
	for i := range want {
		if want[i] != have[i] {
			return false
		}
	}
	return true
}

func idsIntersect(want, have []string) bool {
	set := make(map[string]bool, len(have))
	for _, id := range have {
		set[id] = true
	}
	for _, id := range want {
		if set[id] {
			return true
		}
	}
	return false
}
