package vcs

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
)

type TokenCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagToken        string
	flagState        string
	flagAttributes   map[string]any
}

func (c *TokenCommand) Synopsis() string {
	return "Update or delete an OAuth token"
}

func (c *TokenCommand) Help() string {
	return `Usage: esp-terraform vcs-token [options]

  Updates or removes one OAuth token, addressed by its ID. Tokens are
  minted by the VCS provider handshake; a token that does not exist is
  left alone for either state.` +
		c.Flags().Help()
}

func (c *TokenCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("vcs-token", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagToken, "oauth-token", "",
		"OAuth token ID.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")
	f.JSONMapVar(&c.flagAttributes, "attributes",
		"JSON object with token attributes, e.g. '{\"ssh-key\":\"...\"}'.")

	return f
}

func (c *TokenCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.ApplyVCSToken(context.Background(), client, modules.VCSTokenOptions{
		Organization: c.flagOrganization,
		Token:        c.flagToken,
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
