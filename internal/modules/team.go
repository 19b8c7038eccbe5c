package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// TeamOptions configures the team module. The team may be referred to by
// its name or its canonical ID.
type TeamOptions struct {
	Organization string
	Team         string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o TeamOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Team,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("team is required when state is absent"),
		),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent && o.Team == "").
				Error("attributes with a name are required when creating a team"),
		),
	)
}

// ApplyTeam reconciles a team onto the requested state.
func ApplyTeam(ctx context.Context, client *tfe.Client, opts TeamOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{"state": opts.State, "organization": opts.Organization}
	if opts.Team != "" {
		params["team"] = opts.Team
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

	teams := namedResource{
		kind:        "team",
		payloadType: "teams",
		list: func(ctx context.Context) (*tfe.Collection, error) {
			return client.Teams.List(ctx, organization, nil)
		},
		create: func(ctx context.Context, payload *tfe.Payload) (*tfe.Document, error) {
			return client.Teams.Create(ctx, organization, payload)
		},
		update:  client.Teams.Update,
		destroy: client.Teams.Destroy,
	}
	scope := fmt.Sprintf("%q organization", organization)
	return teams.applyNamed(ctx, result, opts.Team, scope, opts.State, attributes, opts.DryRun)
}
