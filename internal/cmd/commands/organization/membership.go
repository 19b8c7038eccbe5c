package organization

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
	flagUser         string
	flagState        string
	flagEmail        string
	flagTeams        []string
}

func (c *MembershipCommand) Synopsis() string {
	return "Add or remove a user in an organization"
}

func (c *MembershipCommand) Help() string {
	return `Usage: esp-terraform organization membership [options]

  Reconciles one user's organization membership. An existing member may be
  referred to by membership ID, email, user ID or username. Inviting a new
  member requires an email and at least one team.` +
		c.Flags().Help()
}

func (c *MembershipCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("organization membership", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagUser, "user", "",
		"Membership ID, email, user ID or username of an existing member.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")
	f.StringVar(&c.flagEmail, "email", "",
		"Email address used when inviting a new member.")
	f.StringSliceVar(&c.flagTeams, "team",
		"Team name or ID the invited member joins. May be repeated or comma-separated.")

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

	result, err := modules.ApplyMembership(context.Background(), client, modules.MembershipOptions{
		Organization: c.flagOrganization,
		User:         c.flagUser,
		State:        reconcile.State(c.flagState),
		Email:        c.flagEmail,
		Teams:        c.flagTeams,
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
