package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// Workspaces drives the /workspaces endpoints, including the lock, SSH-key
// and remote-state-consumer sub-resources.
type Workspaces struct {
	client *Client
}

func workspacePath(workspaceID string) string {
	return apiBasePath + "/workspaces/" + url.PathEscape(workspaceID)
}

// List returns every workspace in the organization.
func (s *Workspaces) List(ctx context.Context, organization string, include []string) (*Collection, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/workspaces"
	return s.client.listAll(ctx, path, includeQuery(include))
}

// Show returns a workspace by its canonical ID.
func (s *Workspaces) Show(ctx context.Context, workspaceID string, include []string) (*Document, error) {
	var doc Document
	err := s.client.do(ctx, http.MethodGet, workspacePath(workspaceID), includeQuery(include), nil, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ShowByName returns a workspace by organization and name.
func (s *Workspaces) ShowByName(ctx context.Context, organization, name string, include []string) (*Document, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/workspaces/" + url.PathEscape(name)
	var doc Document
	err := s.client.do(ctx, http.MethodGet, path, includeQuery(include), nil, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create creates a workspace in the organization.
func (s *Workspaces) Create(ctx context.Context, organization string, payload *Payload) (*Document, error) {
	path := apiBasePath + "/organizations/" + url.PathEscape(organization) + "/workspaces"
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, path, nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update patches a workspace's attributes.
func (s *Workspaces) Update(ctx context.Context, workspaceID string, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, workspacePath(workspaceID), nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Destroy deletes a workspace.
func (s *Workspaces) Destroy(ctx context.Context, workspaceID string) error {
	return s.client.do(ctx, http.MethodDelete, workspacePath(workspaceID), nil, nil, nil)
}

// Lock locks a workspace with an optional reason.
func (s *Workspaces) Lock(ctx context.Context, workspaceID, reason string) (*Document, error) {
	var doc Document
	body := map[string]string{"reason": reason}
	if err := s.client.do(ctx, http.MethodPost, workspacePath(workspaceID)+"/actions/lock", nil, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Unlock unlocks a workspace.
func (s *Workspaces) Unlock(ctx context.Context, workspaceID string) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, workspacePath(workspaceID)+"/actions/unlock", nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// AssignSSHKey assigns the SSH key to the workspace. A nil sshKeyID
// unassigns the currently assigned key.
func (s *Workspaces) AssignSSHKey(ctx context.Context, workspaceID string, sshKeyID *string) (*Document, error) {
	payload := &Payload{Data: &PayloadData{
		Type:       "workspaces",
		Attributes: map[string]any{"id": sshKeyID},
	}}
	var doc Document
	if err := s.client.do(ctx, http.MethodPatch, workspacePath(workspaceID)+"/relationships/ssh-key", nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListRemoteStateConsumers returns the workspaces allowed to read this
// workspace's state.
func (s *Workspaces) ListRemoteStateConsumers(ctx context.Context, workspaceID string) (*Collection, error) {
	return s.client.listAll(ctx, workspacePath(workspaceID)+"/relationships/remote-state-consumers", nil)
}

// AddRemoteStateConsumers adds the referenced workspaces as consumers.
func (s *Workspaces) AddRemoteStateConsumers(ctx context.Context, workspaceID string, refs []*ResourceRef) error {
	return s.client.do(ctx, http.MethodPost, workspacePath(workspaceID)+"/relationships/remote-state-consumers", nil, &RefsPayload{Data: refs}, nil)
}

// ReplaceRemoteStateConsumers replaces the full consumer set.
func (s *Workspaces) ReplaceRemoteStateConsumers(ctx context.Context, workspaceID string, refs []*ResourceRef) error {
	return s.client.do(ctx, http.MethodPatch, workspacePath(workspaceID)+"/relationships/remote-state-consumers", nil, &RefsPayload{Data: refs}, nil)
}

// DeleteRemoteStateConsumers removes the referenced consumers.
func (s *Workspaces) DeleteRemoteStateConsumers(ctx context.Context, workspaceID string, refs []*ResourceRef) error {
	return s.client.do(ctx, http.MethodDelete, workspacePath(workspaceID)+"/relationships/remote-state-consumers", nil, &RefsPayload{Data: refs}, nil)
}
