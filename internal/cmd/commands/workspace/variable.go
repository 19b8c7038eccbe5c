package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
)

type VariableCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagWorkspace    string
	flagVariable     string
	flagState        string
	flagAttributes   map[string]any
}

func (c *VariableCommand) Synopsis() string {
	return "Create, update or delete a workspace variable"
}

func (c *VariableCommand) Help() string {
	return `Usage: esp-terraform workspace variable [options]

  Reconciles one workspace variable onto the requested state. The variable
  may be referred to by its key or its ID. Values of sensitive variables
  are never echoed back.` +
		c.Flags().Help()
}

func (c *VariableCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("workspace variable", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagWorkspace, "workspace", "",
		"Workspace name or ID.")
	f.StringVar(&c.flagVariable, "variable", "",
		"Variable key or ID.")
	f.StringVar(&c.flagState, "state", "present",
		"Requested state, present or absent.")
	f.JSONMapVar(&c.flagAttributes, "attributes",
		"JSON object with variable attributes, e.g. '{\"key\":\"foo\",\"value\":\"bar\",\"category\":\"terraform\"}'.")

	return f
}

func (c *VariableCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.ApplyVariable(context.Background(), client, modules.VariableOptions{
		Organization: c.flagOrganization,
		Workspace:    c.flagWorkspace,
		Variable:     c.flagVariable,
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
