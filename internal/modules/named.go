package modules

import (
	"context"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// namedResource adapts one name-addressable resource type to the shared
// Resolve → Fetch → Decide → Act driver. Scope parameters (organization,
// workspace ID) are closed over by the endpoint functions.
type namedResource struct {
	// kind names the resource in error messages, e.g. "team".
	kind string

	// payloadType is the JSON:API type for write payloads, e.g. "teams".
	payloadType string

	// nameAttribute is the attribute identifying resources of this kind by
	// name; defaults to "name" ("key" for variables).
	nameAttribute string

	list    func(ctx context.Context) (*tfe.Collection, error)
	create  func(ctx context.Context, payload *tfe.Payload) (*tfe.Document, error)
	update  func(ctx context.Context, id string, payload *tfe.Payload) (*tfe.Document, error)
	destroy func(ctx context.Context, id string) error

	// resolve overrides the default name-then-ID first-match resolution.
	// VCS connections use this to fail on ambiguous name matches.
	resolve func(token string, collection []*tfe.Resource) (string, error)

	// show, when set, refreshes the result payload after the present-path
	// reconciliation of an existing resource.
	show func(ctx context.Context, id string) (*tfe.Document, error)
}

// applyNamed reconciles one named resource onto the requested state. The
// token may be the resource name or its canonical ID; when empty, the
// resource is addressed by its name attribute inside attributes, which is
// the creation path. Exactly one of create, update or destroy runs per
// invocation, and none of them under dry-run.
func (r namedResource) applyNamed(
	ctx context.Context,
	result *reconcile.Result,
	token string,
	scope string,
	state reconcile.State,
	attributes map[string]any,
	dryRun bool,
) (*reconcile.Result, error) {
	nameAttr := r.nameAttribute
	if nameAttr == "" {
		nameAttr = "name"
	}

	collection, err := r.list(ctx)
	if err != nil {
		return result, fmt.Errorf("unable to list %ss in %s: %w", r.kind, scope, err)
	}

	resolve := r.resolve
	if resolve == nil {
		resolve = func(token string, coll []*tfe.Resource) (string, error) {
			return reconcile.Resolve(r.kind, token, coll,
				reconcile.ByAttribute(nameAttr),
				reconcile.ByID(),
			)
		}
	}

	var existingID string
	if token != "" {
		id, err := resolve(token, collection.Data)
		switch {
		case err == nil:
			existingID = id
		case reconcile.IsNotFound(err) && state == reconcile.StateAbsent:
			// Nothing to delete.
		case reconcile.IsNotFound(err):
			return result, fmt.Errorf("the supplied %s %q does not exist in %s", r.kind, token, scope)
		default:
			return result, fmt.Errorf("unable to resolve %s %q in %s: %w", r.kind, token, scope, err)
		}
	} else {
		name, _ := attributes[nameAttr].(string)
		if name == "" {
			return result, fmt.Errorf("%q is required when creating a new %s", nameAttr, r.kind)
		}
		// The "new" resource may already exist under the requested name.
		if id, err := reconcile.Resolve(r.kind, name, collection.Data, reconcile.ByAttribute(nameAttr)); err == nil {
			existingID = id
		}
	}

	current := map[string]any{}
	if res := collection.Find(existingID); res != nil {
		current = res.Attributes
	}

	switch reconcile.Decide(state, existingID, attributes, current) {
	case reconcile.ActionDelete:
		if !dryRun {
			if err := r.destroy(ctx, existingID); err != nil {
				return result, fmt.Errorf("unable to delete %s %q in %s: %w", r.kind, token, scope, err)
			}
		}
		result.MarkChanged()

	case reconcile.ActionUpdate:
		payload := &tfe.Payload{Data: &tfe.PayloadData{
			ID:         existingID,
			Type:       r.payloadType,
			Attributes: attributes,
		}}
		if !dryRun {
			doc, err := r.update(ctx, existingID, payload)
			if err != nil {
				return result, fmt.Errorf("unable to update %s %q in %s: %w", r.kind, token, scope, err)
			}
			result.Output = doc
		}
		result.MarkChanged()

	case reconcile.ActionCreate:
		payload := &tfe.Payload{Data: &tfe.PayloadData{
			Type:       r.payloadType,
			Attributes: attributes,
		}}
		if !dryRun {
			doc, err := r.create(ctx, payload)
			if err != nil {
				return result, fmt.Errorf("unable to create %s in %s: %w", r.kind, scope, err)
			}
			result.Output = doc
		}
		result.MarkChanged()
	}

	// Present reconciliation of an existing resource reports its current
	// details even when nothing changed.
	if r.show != nil && state == reconcile.StatePresent && existingID != "" {
		doc, err := r.show(ctx, existingID)
		if err != nil {
			return result, fmt.Errorf("unable to retrieve details on %s %q in %s: %w", r.kind, token, scope, err)
		}
		result.Output = doc
	}

	return result, nil
}
