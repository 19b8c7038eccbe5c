package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// OAuthClients drives the /oauth-clients endpoints. An OAuth client is a
// VCS connection: the pairing of an organization with a VCS provider.
type OAuthClients struct {
	client *Client
}

// List returns every OAuth client in the organization.
func (s *OAuthClients) List(ctx context.Context, organization string) (*Collection, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/oauth-clients"
	return s.client.listAll(ctx, path, nil)
}

// Show returns an OAuth client by ID.
func (s *OAuthClients) Show(ctx context.Context, clientID string) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodGet, apiBasePath+"/oauth-clients/"+url.PathEscape(clientID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create connects a new VCS provider to the organization.
func (s *OAuthClients) Create(ctx context.Context, organization string, payload *Payload) (*Document, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/oauth-clients"
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches an OAuth client.
func (s *OAuthClients) Update(ctx context.Context, clientID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, apiBasePath+"/oauth-clients/"+url.PathEscape(clientID), nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Destroy removes the VCS connection.
func (s *OAuthClients) Destroy(ctx context.Context, clientID string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/oauth-clients/"+url.PathEscape(clientID), nil, nil, nil)
}

// ListTokens returns the OAuth tokens held by the client.
func (s *OAuthClients) ListTokens(ctx context.Context, clientID string) (*Collection, error) {
	return s.client.listAll(ctx, apiBasePath+"/oauth-clients/"+url.PathEscape(clientID)+"/oauth-tokens", nil)
}

// ShowToken returns an OAuth token by its ID.
func (s *OAuthClients) ShowToken(ctx context.Context, tokenID string) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodGet, apiBasePath+"/oauth-tokens/"+url.PathEscape(tokenID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateToken patches an OAuth token, typically to rotate its SSH key.
func (s *OAuthClients) UpdateToken(ctx context.Context, tokenID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, apiBasePath+"/oauth-tokens/"+url.PathEscape(tokenID), nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DestroyToken deletes an OAuth token.
func (s *OAuthClients) DestroyToken(ctx context.Context, tokenID string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/oauth-tokens/"+url.PathEscape(tokenID), nil, nil, nil)
}
