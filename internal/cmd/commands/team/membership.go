package team

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
)

type MembershipCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagTeam         string
	flagUsers        []string
	flagState        string
}

func (c *MembershipCommand) Synopsis() string {
	return "Add users to or remove users from a team"
}

func (c *MembershipCommand) Help() string {
	return `Usage: esp-terraform team membership [options]

  Reconciles a set of users onto a team's member list. Users already on
  the team are skipped on add; users not on the team are skipped on
  remove.` +
		c.Flags().Help()
}

func (c *MembershipCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("team membership", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagTeam, "team", "",
		"Team name or ID.")
	f.StringSliceVar(&c.flagUsers, "user",
		"Username or user ID. May be repeated or comma-separated.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")

	return f
}

func (c *MembershipCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.ApplyTeamMembership(context.Background(), client, modules.TeamMembershipOptions{
		Organization: c.flagOrganization,
		Team:         c.flagTeam,
		Users:        c.flagUsers,
		State:        reconcile.State(c.flagState),
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
