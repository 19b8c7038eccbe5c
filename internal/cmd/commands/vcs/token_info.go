package vcs

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
)

type TokenInfoCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagClient       string
	flagTokens       []string
}

func (c *TokenInfoCommand) Synopsis() string {
	return "Retrieve details on OAuth tokens"
}

func (c *TokenInfoCommand) Help() string {
	return `Usage: esp-terraform vcs-token info [options]

  Lists OAuth tokens. With "*" (the default) every token in the
  organization is listed, optionally narrowed to one OAuth client;
  explicit token IDs are shown individually.` +
		c.Flags().Help()
}

func (c *TokenInfoCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("vcs-token info", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagClient, "client", "",
		"OAuth client name or ID narrowing the wildcard listing.")
	f.StringSliceVar(&c.flagTokens, "oauth-token",
		"OAuth token ID, or \"*\" for all. May be repeated or comma-separated.")

	return f
}

func (c *TokenInfoCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.VCSTokenInfo(context.Background(), client, modules.VCSTokenInfoOptions{
		Organization: c.flagOrganization,
		Client:       c.flagClient,
		Tokens:       c.flagTokens,
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
