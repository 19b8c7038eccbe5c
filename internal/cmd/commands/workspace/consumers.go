package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
)

type ConsumersCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagWorkspace    string
	flagAction       string
	flagConsumers    []string
}

func (c *ConsumersCommand) Synopsis() string {
	return "Manage remote state consumers of a workspace"
}

func (c *ConsumersCommand) Help() string {
	return `Usage: esp-terraform workspace remote-state-consumers [options]

  Adds, replaces or removes the workspaces allowed to read the source
  workspace's state. Consumers may be names or IDs; "*" expands to every
  other workspace in the organization. Requests already satisfied by the
  current consumer set produce no change.` +
		c.Flags().Help()
}

func (c *ConsumersCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("workspace remote-state-consumers", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagWorkspace, "workspace", "",
		"Source workspace name or ID.")
	f.StringVar(&c.flagAction, "action", "",
		"One of add, replace or delete.")
	f.StringSliceVar(&c.flagConsumers, "consumer",
		"Consumer workspace name or ID, or \"*\". May be repeated or comma-separated.")

	return f
}

func (c *ConsumersCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.ApplyRemoteStateConsumers(context.Background(), client, modules.ConsumersOptions{
		Organization: c.flagOrganization,
		Workspace:    c.flagWorkspace,
		Action:       c.flagAction,
		Consumers:    c.flagConsumers,
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
