package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
)

type InfoCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagWorkspaces   []string
	flagInclude      []string
}

func (c *InfoCommand) Synopsis() string {
	return "List workspaces in an organization"
}

func (c *InfoCommand) Help() string {
	return `Usage: esp-terraform workspace info [options]

  Retrieves details on the requested workspaces. Workspaces may be names
  or IDs; "*" (the default) lists every workspace in the organization.` +
		c.Flags().Help()
}

func (c *InfoCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("workspace info", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringSliceVar(&c.flagWorkspaces, "workspace",
		"Workspace name or ID, or \"*\" for all. May be repeated or comma-separated.")
	f.StringSliceVar(&c.flagInclude, "include",
		"Nested resources to include, e.g. current_run or organization.")

	return f
}

func (c *InfoCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.WorkspaceInfo(context.Background(), client, modules.WorkspaceInfoOptions{
		Organization: c.flagOrganization,
		Workspaces:   c.flagWorkspaces,
		Include:      c.flagInclude,
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
