package modules

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"

	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// WorkspaceOptions configures the workspace module. The workspace may be
// referred to by its name or its canonical ID. With state present, at
// least one of Attributes, Locked or SSHKey must be supplied.
type WorkspaceOptions struct {
	Organization string
	Workspace    string
	State        reconcile.State
	Attributes   map[string]any

	// Locked requests the workspace lock state; nil leaves it untouched.
	Locked     *bool
	LockReason string

	// SSHKey assigns the named SSH key (by name or ID); a pointer to the
	// empty string unassigns the current key; nil leaves it untouched.
	SSHKey *string

	DryRun bool
}

// Validate checks the options before any remote call is made.
func (o WorkspaceOptions) Validate() error {
	if err := validation.ValidateStruct(&o,
		validation.Field(&o.Organization, validation.Required),
		validation.Field(&o.State, validation.Required, validation.In(reconcile.States()...)),
		validation.Field(&o.Workspace,
			validation.Required.When(o.State == reconcile.StateAbsent).
				Error("workspace is required when state is absent"),
		),
	); err != nil {
		return err
	}
	if o.State == reconcile.StatePresent && o.Attributes == nil && o.Locked == nil && o.SSHKey == nil {
		return errors.New("state present requires at least one of attributes, locked or ssh_key")
	}
	if o.LockReason != "" && (o.Locked == nil || !*o.Locked) {
		return errors.New("lock_reason can only be supplied together with locked=true")
	}
	return nil
}

// vcsRepoSettings is the typed form of the vcs-repo attribute block; it is
// decoded only to validate the keys required when attaching a repository.
type vcsRepoSettings struct {
	OAuthTokenID      string `mapstructure:"oauth-token-id"`
	Identifier        string `mapstructure:"identifier"`
	Branch            string `mapstructure:"branch"`
	IngressSubmodules bool   `mapstructure:"ingress-submodules"`
}

func validateVCSRepo(attributes map[string]any) error {
	raw, ok := attributes["vcs-repo"]
	if !ok {
		return nil
	}
	var repo vcsRepoSettings
	if err := mapstructure.Decode(raw, &repo); err != nil {
		return fmt.Errorf("invalid vcs-repo settings: %w", err)
	}
	if repo.OAuthTokenID == "" || repo.Identifier == "" {
		return errors.New(`vcs-repo requires both "oauth-token-id" and "identifier"`)
	}
	return nil
}

// ApplyWorkspace reconciles a workspace onto the requested state. With
// state present, up to three independent steps run in order (attributes,
// lock state, SSH key assignment) and each step's status is
// reported separately so one failure does not mask the others.
func ApplyWorkspace(ctx context.Context, client *tfe.Client, opts WorkspaceOptions) (*reconcile.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	attributes := reconcile.CanonicalKeys(opts.Attributes)

	params := map[string]any{"state": opts.State, "organization": opts.Organization}
	if opts.Workspace != "" {
		params["workspace"] = opts.Workspace
	}
	if attributes != nil {
		params["attributes"] = attributes
	}
	result := reconcile.NewResult(params)

	organization, err := requireOrganization(ctx, client, opts.Organization)
	if err != nil {
		return result, err
	}
	params["organization"] = organization

	workspaces, err := fetchWorkspaces(ctx, client, organization)
	if err != nil {
		return result, err
	}

	// Resolve the workspace by name first, then by ID. A missing workspace
	// is fatal for present (with an explicit workspace param) and a no-op
	// for absent.
	var workspaceID string
	if opts.Workspace != "" {
		id, err := reconcile.Resolve("workspace", opts.Workspace, workspaces.Data,
			reconcile.ByAttribute("name"), reconcile.ByID())
		switch {
		case err == nil:
			workspaceID = id
		case opts.State == reconcile.StatePresent:
			return result, fmt.Errorf("the supplied workspace %q does not exist in %q organization", opts.Workspace, organization)
		}
	} else {
		name, _ := attributes["name"].(string)
		if name == "" {
			return result, errors.New(`"name" is required when creating a new workspace`)
		}
		if id, err := reconcile.Resolve("workspace", name, workspaces.Data, reconcile.ByAttribute("name")); err == nil {
			workspaceID = id
		}
	}

	if opts.State == reconcile.StateAbsent {
		if workspaceID == "" {
			return result, nil
		}
		if !opts.DryRun {
			if err := client.Workspaces.Destroy(ctx, workspaceID); err != nil {
				return result, fmt.Errorf("unable to delete workspace %q in %q organization: %w", opts.Workspace, organization, err)
			}
		}
		result.MarkChanged()
		return result, nil
	}

	// Create path: one mutating call, no steps.
	if workspaceID == "" {
		if err := validateVCSRepo(attributes); err != nil {
			return result, err
		}
		payload := &tfe.Payload{Data: &tfe.PayloadData{Type: "workspaces", Attributes: attributes}}
		if !opts.DryRun {
			doc, err := client.Workspaces.Create(ctx, organization, payload)
			if err != nil {
				return result, fmt.Errorf("unable to create workspace in %q organization: %w", organization, err)
			}
			result.Output = doc
		}
		result.MarkChanged()
		return result, nil
	}

	current := workspaces.Find(workspaceID)

	var errs *multierror.Error

	// Step 1: attributes, gated by the subset check.
	if attributes != nil {
		if !reconcile.IsSubset(attributes, current.Attributes) {
			stepErr := error(nil)
			if !opts.DryRun {
				payload := &tfe.Payload{Data: &tfe.PayloadData{Type: "workspaces", Attributes: attributes}}
				doc, err := client.Workspaces.Update(ctx, workspaceID, payload)
				if err != nil {
					stepErr = fmt.Errorf("unable to update workspace %q in %q organization: %w", opts.Workspace, organization, err)
				} else {
					result.Output = doc
				}
			}
			result.AddStep("attributes", stepErr == nil, stepErr)
			errs = multierror.Append(errs, stepErr)
		} else {
			result.AddStep("attributes", false, nil)
		}
	}

	// Step 2: lock state.
	if opts.Locked != nil {
		locked := current.BoolAttr("locked")
		switch {
		case *opts.Locked && !locked:
			stepErr := error(nil)
			if !opts.DryRun {
				doc, err := client.Workspaces.Lock(ctx, workspaceID, opts.LockReason)
				if err != nil {
					stepErr = fmt.Errorf("unable to lock workspace %q in %q organization: %w", opts.Workspace, organization, err)
				} else {
					result.Output = doc
				}
			}
			result.AddStep("lock", stepErr == nil, stepErr)
			errs = multierror.Append(errs, stepErr)
		case !*opts.Locked && locked:
			stepErr := error(nil)
			if !opts.DryRun {
				doc, err := client.Workspaces.Unlock(ctx, workspaceID)
				if err != nil {
					stepErr = fmt.Errorf("unable to unlock workspace %q in %q organization: %w", opts.Workspace, organization, err)
				} else {
					result.Output = doc
				}
			}
			result.AddStep("unlock", stepErr == nil, stepErr)
			errs = multierror.Append(errs, stepErr)
		default:
			result.AddStep("lock", false, nil)
		}
	}

	// Step 3: SSH key assignment.
	if opts.SSHKey != nil {
		if stepErr := reconcileSSHKeyStep(ctx, client, result, organization, opts, workspaceID, current); stepErr != nil {
			errs = multierror.Append(errs, stepErr)
		}
	}

	return result, errs.ErrorOrNil()
}

// reconcileSSHKeyStep converges the workspace's assigned SSH key. The key
// may be referred to by name or ID; the empty string unassigns.
func reconcileSSHKeyStep(
	ctx context.Context,
	client *tfe.Client,
	result *reconcile.Result,
	organization string,
	opts WorkspaceOptions,
	workspaceID string,
	current *tfe.Resource,
) error {
	var sshKeyID string
	if *opts.SSHKey != "" {
		keys, err := client.SSHKeys.List(ctx, organization)
		if err != nil {
			err = fmt.Errorf("unable to list SSH keys in %q organization: %w", organization, err)
			result.AddStep("ssh-key", false, err)
			return err
		}
		sshKeyID, err = reconcile.Resolve("SSH key", *opts.SSHKey, keys.Data,
			reconcile.ByAttribute("name"), reconcile.ByID())
		if err != nil {
			err = fmt.Errorf("the supplied SSH key %q does not exist in %q organization", *opts.SSHKey, organization)
			result.AddStep("ssh-key", false, err)
			return err
		}
	}

	assigned := current.RelatedID("ssh-key")

	switch {
	case sshKeyID != "" && sshKeyID != assigned:
		stepErr := error(nil)
		if !opts.DryRun {
			doc, err := client.Workspaces.AssignSSHKey(ctx, workspaceID, &sshKeyID)
			if err != nil {
				stepErr = fmt.Errorf("unable to assign SSH key %q to workspace %q: %w", *opts.SSHKey, opts.Workspace, err)
			} else {
				result.Output = doc
			}
		}
		result.AddStep("ssh-key", stepErr == nil, stepErr)
		return stepErr

	case sshKeyID == "" && assigned != "":
		stepErr := error(nil)
		if !opts.DryRun {
			doc, err := client.Workspaces.AssignSSHKey(ctx, workspaceID, nil)
			if err != nil {
				stepErr = fmt.Errorf("unable to unassign SSH key from workspace %q: %w", opts.Workspace, err)
			} else {
				result.Output = doc
			}
		}
		result.AddStep("ssh-key", stepErr == nil, stepErr)
		return stepErr
	}

	result.AddStep("ssh-key", false, nil)
	return nil
}
