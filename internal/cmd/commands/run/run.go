package run

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
)

type Command struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagWorkspace    string
	flagAction       string
	flagRun          string
	flagAttributes   map[string]any
	flagComment      string
}

func (c *Command) Synopsis() string {
	return "Queue a run or drive it through its lifecycle"
}

func (c *Command) Help() string {
	return `Usage: esp-terraform run [options]

  Queues a new run (-action=create) or applies a lifecycle action to an
  existing one. Run actions always report a change.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("run", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagWorkspace, "workspace", "",
		"Workspace name or ID.")
	f.StringVar(&c.flagAction, "action", "create",
		"One of create, apply, discard, cancel, force-cancel or force-execute.")
	f.StringVar(&c.flagRun, "run", "",
		"Run ID, required for every action except create.")
	f.JSONMapVar(&c.flagAttributes, "attributes",
		"JSON object with run attributes for create, e.g. '{\"is-destroy\":true}'.")
	f.StringVar(&c.flagComment, "comment", "",
		"Comment recorded with apply, discard, cancel and force-cancel.")

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

	result, err := modules.ApplyRun(context.Background(), client, modules.RunOptions{
		Organization: c.flagOrganization,
		Workspace:    c.flagWorkspace,
		Action:       c.flagAction,
		Run:          c.flagRun,
		Attributes:   c.flagAttributes,
		Comment:      c.flagComment,
		DryRun:       c.flags.DryRun,
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.flags.Output(c.Command, result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
