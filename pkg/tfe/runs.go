package tfe

import (
	"context"
	"net/http"
	"net/url"
)

// Runs drives the /runs endpoints and their lifecycle actions.
type Runs struct {
	client *Client
}

func runPath(runID string) string {
	return apiBasePath + "/runs/" + url.PathEscape(runID)
}

// List returns every run in the workspace.
func (s *Runs) List(ctx context.Context, workspaceID string, include []string) (*Collection, error) {
	return s.client.listAll(ctx, workspacePath(workspaceID)+"/runs", includeQuery(include))
}

// Show returns a run by ID.
func (s *Runs) Show(ctx context.Context, runID string, include []string) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodGet, runPath(runID), includeQuery(include), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create queues a new run. The workspace relationship must be set in the
// payload.
func (s *Runs) Create(ctx context.Context, payload *Payload) (*Document, error) {
	var doc Document
	if err := s.client.do(ctx, http.MethodPost, apiBasePath+"/runs", nil, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Runs) action(ctx context.Context, runID, action string, comment string) error {
	var body any
	if comment != "" {
		body = map[string]string{"comment": comment}
	}
	return s.client.do(ctx, http.MethodPost, runPath(runID)+"/actions/"+action, nil, body, nil)
}

// Apply confirms and applies a planned run.
func (s *Runs) Apply(ctx context.Context, runID, comment string) error {
	return s.action(ctx, runID, "apply", comment)
}

// Discard skips a planned run.
func (s *Runs) Discard(ctx context.Context, runID, comment string) error {
	return s.action(ctx, runID, "discard", comment)
}

// Cancel interrupts a run that is currently planning or applying.
func (s *Runs) Cancel(ctx context.Context, runID, comment string) error {
	return s.action(ctx, runID, "cancel", comment)
}

// ForceCancel ends a run immediately once the cancel cool-off has passed.
func (s *Runs) ForceCancel(ctx context.Context, runID, comment string) error {
	return s.action(ctx, runID, "force-cancel", comment)
}

// ForceExecute promotes the run to the front of the workspace queue.
func (s *Runs) ForceExecute(ctx context.Context, runID string) error {
	return s.action(ctx, runID, "force-execute", "")
}
