package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// Variables drives the workspace /vars endpoints.
type Variables struct {
	client *Client
}

// List returns every variable defined on the workspace.
func (s *Variables) List(ctx context.Context, workspaceID string) (*Collection, error) {
	return s.client.listAll(ctx, workspacePath(workspaceID)+"/vars", nil)
}

// Create adds a variable to the workspace.
func (s *Variables) Create(ctx context.Context, workspaceID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, workspacePath(workspaceID)+"/vars", nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches a variable.
func (s *Variables) Update(ctx context.Context, workspaceID, variableID string, payload *Payload) (*Document, error) {
	path := workspacePath(workspaceID) + "/vars/" + url.PathEscape(variableID)
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Destroy removes a variable from the workspace.
func (s *Variables) Destroy(ctx context.Context, workspaceID, variableID string) error {
	path := workspacePath(workspaceID) + "/vars/" + url.PathEscape(variableID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
