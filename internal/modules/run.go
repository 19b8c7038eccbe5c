package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// defaultRunMessage annotates runs queued without an explicit message.
const defaultRunMessage = "Queued manually via the Terraform Enterprise API"

// Run lifecycle actions.
const (
	RunActionCreate       = "create"
	RunActionApply        = "apply"
	RunActionDiscard      = "discard"
	RunActionCancel       = "cancel"
	RunActionForceCancel  = "force-cancel"
	RunActionForceExecute = "force-execute"
)

func runActions() []any {
	return []any{
		RunActionCreate, RunActionApply, RunActionDiscard,
		RunActionCancel, RunActionForceCancel, RunActionForceExecute,
	}
}

// RunOptions configures the run module. Create queues a new run in the
// workspace; every other action addresses an existing run by ID.
type RunOptions struct {
	Organization string
	Workspace    string
	Action       string
	Run          string
	Attributes   map[string]any
	Comment      string
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o RunOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.Workspace, validation.Required),
		validation.Field(&o.Action, validation.Required, validation.In(runActions()...)),
		validation.Field(&o.Run,
			validation.Required.When(o.Action != RunActionCreate).
				Error("run is required for every action except create"),
			validation.Empty.When(o.Action == RunActionCreate).
				Error("run cannot be supplied when creating a run"),
		),
	)
}

// ApplyRun queues a new run or drives an existing run through one lifecycle
// action. Run actions are not idempotent: the module always reports a change
// unless dry-run suppressed the call.
func ApplyRun(ctx context.Context, client *tfe.Client, opts RunOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := map[string]any{
		"organization": opts.Organization,
		"workspace":    opts.Workspace,
		"action":       opts.Action,
	}
	if opts.Run != "" {
		params["run"] = opts.Run
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

	if opts.Action == RunActionCreate {
		return createRun(ctx, client, result, workspaceID, opts)
	}

	runs, err := client.Runs.List(ctx, workspaceID, nil)
	if err != nil {
		return result, fmt.Errorf("unable to list runs in %q workspace: %w", opts.Workspace, err)
	}
	if runs.Find(opts.Run) == nil {
		return result, fmt.Errorf("the supplied run %q does not exist in %q workspace", opts.Run, opts.Workspace)
	}

	if !opts.DryRun {
		var actErr error
		switch opts.Action {
		case RunActionApply:
			actErr = client.Runs.Apply(ctx, opts.Run, opts.Comment)
		case RunActionDiscard:
			actErr = client.Runs.Discard(ctx, opts.Run, opts.Comment)
		case RunActionCancel:
			actErr = client.Runs.Cancel(ctx, opts.Run, opts.Comment)
		case RunActionForceCancel:
			actErr = client.Runs.ForceCancel(ctx, opts.Run, opts.Comment)
		case RunActionForceExecute:
			actErr = client.Runs.ForceExecute(ctx, opts.Run)
		}
		if actErr != nil {
			return result, fmt.Errorf("unable to %s run %q in %q workspace: %w", opts.Action, opts.Run, opts.Workspace, actErr)
		}
		doc, err := client.Runs.Show(ctx, opts.Run, []string{"plan", "apply"})
		if err != nil {
			return result, fmt.Errorf("unable to retrieve details on run %q in %q workspace: %w", opts.Run, opts.Workspace, err)
		}
		result.Output = doc
	}
	result.MarkChanged()
	return result, nil
}

func createRun(ctx context.Context, client *tfe.Client, result *reconcile.Result, workspaceID string, opts RunOptions) (*reconcile.Result, error) {
	attributes := reconcile.CanonicalKeys(opts.Attributes)
	if attributes == nil {
		attributes = map[string]any{}
	}
	if _, ok := attributes["message"]; !ok {
		attributes["message"] = defaultRunMessage
	}
	result.Params["attributes"] = attributes

	payload := &tfe.Payload{Data: &tfe.PayloadData{
		Type:       "runs",
		Attributes: attributes,
		Relationships: map[string]any{
			"workspace": tfe.SingleRelationship("workspaces", workspaceID),
		},
	}}
	if !opts.DryRun {
		doc, err := client.Runs.Create(ctx, payload)
		if err != nil {
			return result, fmt.Errorf("unable to create run in %q workspace: %w", opts.Workspace, err)
		}
		result.Output = doc
	}
	result.MarkChanged()
	return result, nil
}
