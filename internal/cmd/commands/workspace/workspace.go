package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
)

type Command struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagWorkspace    string
	flagState        string
	flagAttributes   map[string]any
	flagLocked       *bool
	flagLockReason   string
	flagSSHKey       *string
}

func (c *Command) Synopsis() string {
	return "Create, update, lock or delete a workspace"
}

func (c *Command) Help() string {
	return `Usage: esp-terraform workspace [options]

  Reconciles one workspace onto the requested state: attributes, the lock
  state and the assigned SSH key are reconciled as independent steps, each
  reported separately. The workspace may be referred to by name or ID.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("workspace", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagWorkspace, "workspace", "",
		"Workspace name or ID.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")
	f.JSONMapVar(&c.flagAttributes, "attributes",
		"JSON object with workspace attributes, e.g. '{\"name\":\"bar\"}'.")
	f.OptionalBoolVar(&c.flagLocked, "locked",
		"Lock or unlock the workspace. Unset leaves the lock untouched.")
	f.StringVar(&c.flagLockReason, "lock-reason", "",
		"Reason recorded when locking the workspace.")
	f.OptionalStringVar(&c.flagSSHKey, "ssh-key",
		"SSH key name or ID to assign. An empty value unassigns the current key.")

	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.ApplyWorkspace(context.Background(), client, modules.WorkspaceOptions{
		Organization: c.flagOrganization,
		Workspace:    c.flagWorkspace,
		State:        reconcile.State(c.flagState),
		Attributes:   c.flagAttributes,
		Locked:       c.flagLocked,
		LockReason:   c.flagLockReason,
		SSHKey:       c.flagSSHKey,
		DryRun:       c.flags.DryRun,
	})
	if err != nil {
		// Per-step failures still carry partial step results worth showing.
		if result != nil && len(result.Steps) > 0 {
			_ = c.flags.Output(c.Command, result)
		}
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.flags.Output(c.Command, result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
