package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// OrganizationOptions configures the organization module. The organization
// may be referred to by its name or by its external-id.
type OrganizationOptions struct {
	Organization string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made. The
// organization token and the attributes block are mutually exclusive:
// absent work is addressed by token, present work by attributes.
func (o OrganizationOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent).
				Error("attributes with a name are required when state is present"),
			validation.Empty.When(o.Organization != "").
				Error("organization and attributes are mutually exclusive"),
		),
		validation.Field(&o.Organization,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("organization is required when state is absent"),
		),
	)
}

// ApplyOrganization reconciles an organization onto the requested state.
func ApplyOrganization(ctx context.Context, client *tfe.Client, opts OrganizationOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{"state": opts.State}
	if opts.Organization != "" {
		params["organization"] = opts.Organization
	}
	if attributes != nil {
		params["attributes"] = attributes
	}
	result := reconcile.NewResult(params)

	if opts.State == reconcile.StateAbsent {
		name, found := resolveOrganization(ctx, client, opts.Organization)
		if !found {
			return result, nil
		}
		if !opts.DryRun {
			if err := client.Organizations.Destroy(ctx, name); err != nil {
				return result, fmt.Errorf("unable to delete organization %q: %w", name, err)
			}
		}
		result.MarkChanged()
		return result, nil
	}

	name, _ := attributes["name"].(string)
	if name == "" {
		return result, fmt.Errorf(`"name" is required when state is present`)
	}

	payload := &tfe.Payload{Data: &tfe.PayloadData{
		Type:       "organizations",
		Attributes: attributes,
	}}

	existing, found := resolveOrganization(ctx, client, name)
	if !found {
		if !opts.DryRun {
			doc, err := client.Organizations.Create(ctx, payload)
			if err != nil {
				return result, fmt.Errorf("unable to create organization %q: %w", name, err)
			}
			result.Output = doc
		}
		result.MarkChanged()
		return result, nil
	}

	orgs, err := client.Organizations.List(ctx)
	if err != nil {
		return result, fmt.Errorf("unable to list organizations: %w", err)
	}
	current := map[string]any{}
	if res := orgs.Find(existing); res != nil {
		current = res.Attributes
	}
	if !reconcile.IsSubset(attributes, current) {
		if !opts.DryRun {
			doc, err := client.Organizations.Update(ctx, existing, payload)
			if err != nil {
				return result, fmt.Errorf("unable to update organization %q: %w", existing, err)
			}
			result.Output = doc
		}
		result.MarkChanged()
	}
	return result, nil
}
