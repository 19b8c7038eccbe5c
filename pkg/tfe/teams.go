package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// Teams drives the /teams endpoints.
type Teams struct {
	client *Client
}

// List returns every team in the organization.
func (s *Teams) List(ctx context.Context, organization string, include []string) (*Collection, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/teams"
	return s.client.listAll(ctx, path, includeQuery(include))
}

// Show returns a team by ID, optionally with nested resources included.
func (s *Teams) Show(ctx context.Context, teamID string, include []string) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodGet, apiBasePath+"/teams/"+url.PathEscape(teamID), includeQuery(include), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// AddMembers adds the referenced users to the team.
func (s *Teams) AddMembers(ctx context.Context, teamID string, payload *RefsPayload) error {
	path := apiBasePath + "/teams/" + url.PathEscape(teamID) + "/relationships/users"
	return s.client.do(ctx, http.MethodPost, path, nil, payload, nil)
}

// RemoveMembers removes the referenced users from the team.
func (s *Teams) RemoveMembers(ctx context.Context, teamID string, payload *RefsPayload) error {
	path := apiBasePath + "/teams/" + url.PathEscape(teamID) + "/relationships/users"
	return s.client.do(ctx, http.MethodDelete, path, nil, payload, nil)
}

// Create creates a team in the organization.
func (s *Teams) Create(ctx context.Context, organization string, payload *Payload) (*Document, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/teams"
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches a team's attributes.
func (s *Teams) Update(ctx context.Context, teamID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, apiBasePath+"/teams/"+url.PathEscape(teamID), nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Destroy deletes a team.
func (s *Teams) Destroy(ctx context.Context, teamID string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/teams/"+url.PathEscape(teamID), nil, nil, nil)
}
