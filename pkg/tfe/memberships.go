package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// OrganizationMemberships drives the /organization-memberships endpoints.
type OrganizationMemberships struct {
	client *Client
}

// List returns every membership in the organization. Passing "user" in
// include also returns the member user records in Included.
func (s *OrganizationMemberships) List(ctx context.Context, organization string, include []string) (*Collection, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/organization-memberships"
	return s.client.listAll(ctx, path, includeQuery(include))
}

// Invite adds a user to the organization by email.
func (s *OrganizationMemberships) Invite(ctx context.Context, organization string, payload *Payload) (*Document, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/organization-memberships"
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Remove deletes a membership, removing the user from the organization.
func (s *OrganizationMemberships) Remove(ctx context.Context, membershipID string) error {
	return s.client.do(ctx, http.MethodDelete, apiBasePath+"/organization-memberships/"+url.PathEscape(membershipID), nil, nil, nil)
}
