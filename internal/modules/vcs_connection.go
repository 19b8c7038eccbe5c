package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// VCSConnectionOptions configures the VCS connection (OAuth client)
// module. The client may be referred to by its canonical ID or its display
// name; name collisions are common across VCS providers, so a name that
// matches more than one client is a distinct fatal error rather than a
// silent first match.
type VCSConnectionOptions struct {
	Organization string
	Client       string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o VCSConnectionOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Client,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("client is required when state is absent"),
		),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent && o.Client == "").
				Error("attributes with a name are required when creating a VCS connection"),
		),
	)
}

// ApplyVCSConnection reconciles an OAuth client onto the requested state.
func ApplyVCSConnection(ctx context.Context, client *tfe.Client, opts VCSConnectionOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{"state": opts.State, "organization": opts.Organization}
	if opts.Client != "" {
		params["client"] = opts.Client
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

	clients := namedResource{
		kind:        "OAuth client",
		payloadType: "oauth-clients",
		list: func(ctx context.Context) (*tfe.Collection, error) {
			return client.OAuthClients.List(ctx, organization)
		},
		create: func(ctx context.Context, payload *tfe.Payload) (*tfe.Document, error) {
			return client.OAuthClients.Create(ctx, organization, payload)
		},
		update:  client.OAuthClients.Update,
		destroy: client.OAuthClients.Destroy,
		show:    client.OAuthClients.Show,
		// ID match first, then a name match that must be unique.
		resolve: func(token string, collection []*tfe.Resource) (string, error) {
			return reconcile.ResolveUnique("OAuth client", token, collection,
				reconcile.ByID(),
				reconcile.ByAttribute("name"),
			)
		},
	}
	scope := fmt.Sprintf("%q organization", organization)
	return clients.applyNamed(ctx, result, opts.Client, scope, opts.State, attributes, opts.DryRun)
}
