package modules

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// fakeTFE is a minimal in-memory Terraform Enterprise API for module tests.
// Collections are served from canned resources; every mutating request is
// recorded so tests can assert exactly which writes happened.
type fakeTFE struct {
	t   *testing.T
	mux *http.ServeMux

	mu        sync.Mutex
	mutations []string
}

func newFakeTFE(t *testing.T) *fakeTFE {
	return &fakeTFE{t: t, mux: http.NewServeMux()}
}

func (f *fakeTFE) client(t *testing.T) *tfe.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			f.mu.Lock()
			f.mutations = append(f.mutations, r.Method+" "+r.URL.Path)
			f.mu.Unlock()
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := tfe.NewClient(tfe.ClientConfig{
		Address: srv.URL,
		Token:   "test-token",
		Retry:   tfe.RetryPolicy{Retries: 1},
	})
	require.NoError(t, err)
	return client
}

func (f *fakeTFE) mutationLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mutations...)
}

// collection registers a GET handler serving the resources as a one-page
// collection.
func (f *fakeTFE) collection(path string, resources ...*tfe.Resource) {
	f.mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(f.t, w, &tfe.Collection{Data: resources})
	})
}

// document registers a GET handler serving one resource.
func (f *fakeTFE) document(path string, doc *tfe.Document) {
	f.mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(f.t, w, doc)
	})
}

// accept registers a mutating handler answering with the given document.
func (f *fakeTFE) accept(method, path string, doc *tfe.Document) {
	f.mux.HandleFunc(method+" "+path, func(w http.ResponseWriter, r *http.Request) {
		if doc == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(f.t, w, doc)
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/vnd.api+json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// Canned fixtures shared by the module tests.

func orgFoo() *tfe.Resource {
	return &tfe.Resource{
		ID:   "foo",
		Type: "organizations",
		Attributes: map[string]any{
			"name":        "foo",
			"external-id": "org-AbCd1234",
			"email":       "ops@example.com",
		},
	}
}

func workspaceBar() *tfe.Resource {
	return &tfe.Resource{
		ID:   "ws-1",
		Type: "workspaces",
		Attributes: map[string]any{
			"name":       "bar",
			"auto-apply": false,
			"locked":     false,
		},
	}
}
