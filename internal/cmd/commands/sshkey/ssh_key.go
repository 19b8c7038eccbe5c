package sshkey

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
	flagSSHKey       string
	flagState        string
	flagAttributes   map[string]any
}

func (c *Command) Synopsis() string {
	return "Create, update or delete an organization SSH key"
}

func (c *Command) Help() string {
	return `Usage: esp-terraform ssh-key [options]

  Reconciles one SSH key onto the requested state. The key may be referred
  to by name or ID. The private key material is write-only on the API and
  never echoed back.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("ssh-key", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagSSHKey, "ssh-key", "",
		"SSH key name or ID.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")
	f.JSONMapVar(&c.flagAttributes, "attributes",
		"JSON object with SSH key attributes, e.g. '{\"name\":\"deploy\",\"value\":\"-----BEGIN ...\"}'.")

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

	result, err := modules.ApplySSHKey(context.Background(), client, modules.SSHKeyOptions{
		Organization: c.flagOrganization,
		SSHKey:       c.flagSSHKey,
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
