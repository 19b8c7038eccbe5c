package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// SSHKeyOptions configures the SSH key module. The key may be referred to
// by its name or its canonical ID. Key material is write-only on the API
// side, so the subset check only ever sees the name.
type SSHKeyOptions struct {
	Organization string
	SSHKey       string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o SSHKeyOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.SSHKey,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("ssh_key is required when state is absent"),
		),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent && o.SSHKey == "").
				Error("attributes with a name are required when creating an SSH key"),
		),
	)
}

// ApplySSHKey reconciles an organization SSH key onto the requested state.
func ApplySSHKey(ctx context.Context, client *tfe.Client, opts SSHKeyOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{"state": opts.State, "organization": opts.Organization}
	if opts.SSHKey != "" {
		params["ssh_key"] = opts.SSHKey
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	keys := namedResource{
		kind:        "SSH key",
		payloadType: "ssh-keys",
		list: func(ctx context.Context) (*tfe.Collection, error) {
			return client.SSHKeys.List(ctx, organization)
		},
		create: func(ctx context.Context, payload *tfe.Payload) (*tfe.Document, error) {
			return client.SSHKeys.Create(ctx, organization, payload)
		},
		update:  client.SSHKeys.Update,
		destroy: client.SSHKeys.Destroy,
	}
	scope := fmt.Sprintf("%q organization", organization)
	return keys.applyNamed(ctx, result, opts.SSHKey, scope, opts.State, attributes, opts.DryRun)
}
