package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// Organizations drives the /organizations endpoints. Organization names
// double as their canonical IDs; the external-id attribute is a secondary
// identifier callers may also pass in.
type Organizations struct {
	client *Client
}

// List returns every organization visible to the token.
func (s *Organizations) List(ctx context.Context) (*Collection, error) {
	return s.client.listAll(ctx, apiBasePath+"/organizations", nil)
}

// Show returns a single organization by name.
func (s *Organizations) Show(ctx context.Context, name string) (*Document, error) {
	var doc Document
	err := s.client.do(ctx, http.MethodGet, apiBasePath+"/organizations/"+url.PathEscape(name), nil, nil, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create creates an organization.
func (s *Organizations) Create(ctx context.Context, payload *Payload) (*Document, error) {
	var doc Document
	err := s.client.do(ctx, http.MethodPost, apiBasePath+"/organizations", nil, payload, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches an organization's attributes.
func (s *Organizations) Update(ctx context.Context, name string, payload *Payload) (*Document, error) {
	var doc Document
	err := s.client.do(ctx, http.MethodPatch, apiBasePath+"/organizations/"+url.PathEscape(name), nil, payload, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Destroy deletes an organization and everything in it.
func (s *Organizations) Destroy(ctx context.Context, name string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/organizations/"+url.PathEscape(name), nil, nil, nil)
}
