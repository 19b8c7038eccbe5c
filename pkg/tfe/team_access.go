package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// TeamAccess drives the /team-workspaces endpoints. A team-workspace
// resource grants one team a set of permissions on one workspace.
type TeamAccess struct {
	client *Client
}

// List returns the team access grants for a workspace.
func (s *TeamAccess) List(ctx context.Context, workspaceID string) (*Collection, error) {
	q := url.Values{}
	q.Set("filter[workspace][id]", workspaceID)
	return s.client.listAll(ctx, apiBasePath+"/team-workspaces", q)
}

// Add grants a team access to a workspace.
func (s *TeamAccess) Add(ctx context.Context, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, apiBasePath+"/team-workspaces", nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches an existing access grant.
func (s *TeamAccess) Update(ctx context.Context, accessID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, apiBasePath+"/team-workspaces/"+url.PathEscape(accessID), nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Remove revokes an access grant.
func (s *TeamAccess) Remove(ctx context.Context, accessID string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/team-workspaces/"+url.PathEscape(accessID), nil, nil, nil)
}
