package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// VariableOptions configures the workspace variable module. The variable
// may be referred to by its key or its canonical ID. The enclosing
// workspace must exist regardless of the requested state.
type VariableOptions struct {
	Organization string
	Workspace    string
	Variable     string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o VariableOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.Workspace, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Variable,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("variable is required when state is absent"),
		),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent && o.Variable == "").
				Error("attributes with a key are required when creating a variable"),
		),
	)
}

// ApplyVariable reconciles a workspace variable onto the requested state.
// Values of variables marked sensitive are never echoed back in the result
// parameters.
func ApplyVariable(ctx context.Context, client *tfe.Client, opts VariableOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{
		"state":        opts.State,
		"organization": opts.Organization,
		"workspace":    opts.Workspace,
	}
	if opts.Variable != "" {
		params["variable"] = opts.Variable
	}
	if attributes != nil {
		echo := make(map[string]any, len(attributes))
		for k, v := range attributes {
			echo[k] = v
		}
		if sensitive, _ := echo["sensitive"].(bool); sensitive {
			delete(echo, "value")
		}
		params["attributes"] = echo
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

	variables := namedResource{
		kind:          "variable",
		payloadType:   "vars",
		nameAttribute: "key",
		list: func(ctx context.Context) (*tfe.Collection, error) {
			return client.Variables.List(ctx, workspaceID)
		},
		create: func(ctx context.Context, payload *tfe.Payload) (*tfe.Document, error) {
			return client.Variables.Create(ctx, workspaceID, payload)
		},
		update: func(ctx context.Context, id string, payload *tfe.Payload) (*tfe.Document, error) {
			return client.Variables.Update(ctx, workspaceID, id, payload)
		},
		destroy: func(ctx context.Context, id string) error {
			return client.Variables.Destroy(ctx, workspaceID, id)
		},
	}
	scope := fmt.Sprintf("%q workspace", opts.Workspace)
	return variables.applyNamed(ctx, result, opts.Variable, scope, opts.State, attributes, opts.DryRun)
}
