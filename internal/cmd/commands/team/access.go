package team

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
)

type AccessCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagTeam         string
	flagWorkspace    string
	flagRelationship string
	flagState        string
	flagAttributes   map[string]any
}

func (c *AccessCommand) Synopsis() string {
	return "Grant, update or revoke a team's access to a workspace"
}

func (c *AccessCommand) Help() string {
	return `Usage: esp-terraform team access [options]

  Reconciles one team's permissions on one workspace. The grant is
  addressed either by its relationship ID or by a team/workspace pair;
  teams and workspaces may be referred to by name or ID.` +
		c.Flags().Help()
}

func (c *AccessCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("team access", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagTeam, "team", "",
		"Team name or ID. Requires -workspace.")
	f.StringVar(&c.flagWorkspace, "workspace", "",
		"Workspace name or ID. Requires -team.")
	f.StringVar(&c.flagRelationship, "relationship", "",
		"Team/workspace relationship ID, as an alternative to -team and -workspace.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")
	f.JSONMapVar(&c.flagAttributes, "attributes",
		"JSON object with access properties, e.g. '{\"access\":\"write\"}'.")

	return f
}

func (c *AccessCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.ApplyTeamAccess(context.Background(), client, modules.TeamAccessOptions{
		Organization: c.flagOrganization,
		Team:         c.flagTeam,
		Workspace:    c.flagWorkspace,
		Relationship: c.flagRelationship,
		State:        reconcile.State(c.flagState),
		Attributes:   c.flagAttributes,
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
