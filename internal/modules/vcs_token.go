package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// VCSTokenOptions configures the OAuth token module. The token is
// addressed by its ID; attributes typically carry a replacement SSH key
// and are never echoed back.
type VCSTokenOptions struct {
	Organization string
	Token        string
	State        reconcile.State
	Attributes   map[string]any
	DryRun       bool
}

// Validate checks the options before any remote call is made.
func (o VCSTokenOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.Token, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Attributes,
			validation.Required.When(o.State == reconcile.StatePresent).
				Error("attributes are required when state is present"),
		),
	)
}

// ApplyVCSToken updates or removes an OAuth token. A token that does not
// exist is a no-op for either state; tokens are minted by the VCS provider
// handshake, never here.
func ApplyVCSToken(ctx context.Context, client *tfe.Client, opts VCSTokenOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Attributes hold private key material and stay out of the result.
	params := map[string]any{
		"state":        opts.State,
		"organization": opts.Organization,
		"oauth_token":  opts.Token,
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	clients, err := client.OAuthClients.List(ctx, organization)
	if err != nil {
		return result, fmt.Errorf("unable to list OAuth clients in %q organization: %w", organization, err)
	}

	found := false
	for _, oc := range clients.Data {
		tokens, err := client.OAuthClients.ListTokens(ctx, oc.ID)
		if err != nil {
			return result, fmt.Errorf("unable to list OAuth tokens for %q OAuth client: %w", oc.ID, err)
		}
		if tokens.Find(opts.Token) != nil {
			found = true
			break
		}
	}
	if !found {
		return result, nil
	}

	if opts.State == reconcile.StateAbsent {
		if !opts.DryRun {
			if err := client.OAuthClients.DestroyToken(ctx, opts.Token); err != nil {
				return result, fmt.Errorf("unable to destroy OAuth token %q: %w", opts.Token, err)
			}
		}
		result.MarkChanged()
		return result, nil
	}

	payload := &tfe.Payload{Data: &tfe.PayloadData{
		ID:         opts.Token,
		Type:       "oauth-tokens",
		Attributes: reconcile.CanonicalKeys(opts.Attributes),
	}}
	if !opts.DryRun {
		doc, err := client.OAuthClients.UpdateToken(ctx, opts.Token, payload)
		if err != nil {
			return result, fmt.Errorf("unable to update OAuth token %q: %w", opts.Token, err)
		}
		result.Output = doc
	}
	result.MarkChanged()
	return result, nil
}
