package modules

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// VCSTokenInfoOptions configures the read-only OAuth token listing module.
// Tokens may be IDs or comma-separated groups of IDs; an empty list
// defaults to "*". With the wildcard, an optional client narrows the
// listing to one OAuth client, referred to by name or ID.
type VCSTokenInfoOptions struct {
	Organization string
	Client       string
	Tokens       []string
}

// Validate checks the options before any remote call is made.
func (o VCSTokenInfoOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
	)
}

// VCSTokenInfo retrieves details on the requested OAuth tokens. It never
// mutates remote state.
func VCSTokenInfo(ctx context.Context, client *tfe.Client, opts VCSTokenInfoOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tokens := reconcile.OrWildcard(reconcile.ExpandCommaSeparated(opts.Tokens))

	params := map[string]any{
		"organization": opts.Organization,
		"oauth_tokens": tokens,
	}
	if opts.Client != "" {
		params["oauth_client"] = opts.Client
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	out := &tfe.Collection{Data: []*tfe.Resource{}}

	if !reconcile.HasWildcard(tokens) {
		for _, token := range tokens {
			doc, err := client.OAuthClients.ShowToken(ctx, token)
			if err != nil {
				return result, fmt.Errorf("unable to retrieve details on OAuth token %q: %w", token, err)
			}
			out.Data = append(out.Data, doc.Data)
		}
		out.Data = dedupeByID(out.Data)
		result.Output = out
		return result, nil
	}

	clients, err := client.OAuthClients.List(ctx, organization)
	if err != nil {
		return result, fmt.Errorf("unable to list OAuth clients in %q organization: %w", organization, err)
	}

	if opts.Client != "" {
		clientID := opts.Client
		if id, err := reconcile.ResolveUnique("OAuth client", opts.Client, clients.Data, reconcile.ByAttribute("name")); err == nil {
			clientID = id
		}
		if clients.Find(clientID) == nil {
			return result, fmt.Errorf("unable to find the supplied OAuth client %q in %q organization", opts.Client, organization)
		}
		listed, err := client.OAuthClients.ListTokens(ctx, clientID)
		if err != nil {
			return result, fmt.Errorf("unable to list OAuth tokens for %q OAuth client: %w", opts.Client, err)
		}
		result.Output = listed
		return result, nil
	}

	for _, oc := range clients.Data {
		listed, err := client.OAuthClients.ListTokens(ctx, oc.ID)
		if err != nil {
			return result, fmt.Errorf("unable to list OAuth tokens for %q OAuth client: %w", oc.ID, err)
		}
		out.Data = append(out.Data, listed.Data...)
	}
	out.Data = dedupeByID(out.Data)
	result.Output = out
	return result, nil
}
