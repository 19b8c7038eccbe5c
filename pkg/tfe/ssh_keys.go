package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// SSHKeys drives the organization /ssh-keys endpoints.
type SSHKeys struct {
	client *Client
}

// List returns every SSH key registered in the organization.
func (s *SSHKeys) List(ctx context.Context, organization string) (*Collection, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/ssh-keys"
	return s.client.listAll(ctx, path, nil)
}

// Show returns an SSH key by ID.
func (s *SSHKeys) Show(ctx context.Context, sshKeyID string) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodGet, apiBasePath+"/ssh-keys/"+url.PathEscape(sshKeyID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create registers an SSH key in the organization.
func (s *SSHKeys) Create(ctx context.Context, organization string, payload *Payload) (*Document, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/ssh-keys"
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches an SSH key. Only the name and value may change.
func (s *SSHKeys) Update(ctx context.Context, sshKeyID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, apiBasePath+"/ssh-keys/"+url.PathEscape(sshKeyID), nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Destroy deletes an SSH key.
func (s *SSHKeys) Destroy(ctx context.Context, sshKeyID string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/ssh-keys/"+url.PathEscape(sshKeyID), nil, nil, nil)
}
