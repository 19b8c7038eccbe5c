package run

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/modules"
)

type InfoCommand struct {
	*base.Command

	flags base.ClientFlags

	flagOrganization string
	flagWorkspace    string
	flagRuns         []string
	flagInclude      []string
	flagFilter       string
	flagCreatedAfter string
}

func (c *InfoCommand) Synopsis() string {
	return "List runs in a workspace"
}

func (c *InfoCommand) Help() string {
	return `Usage: esp-terraform run info [options]

  Retrieves details on the requested runs. A run token matches runs by
  their custom message first; otherwise it is treated as a run ID. "*"
  (the default) lists every run in the workspace. Results may be
  restricted to runs related to nested resources matching -filter, or to
  runs created after a point in time.` +
		c.Flags().Help()
}

func (c *InfoCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("run info", flag.ExitOnError))

	c.flags.Register(f)
	f.StringVar(&c.flagOrganization, "organization", "",
		"Organization name or external ID.")
	f.StringVar(&c.flagWorkspace, "workspace", "",
		"Workspace name or ID.")
	f.StringSliceVar(&c.flagRuns, "run",
		"Run ID or custom message, or \"*\" for all. May be repeated or comma-separated.")
	f.StringSliceVar(&c.flagInclude, "include",
		"Nested resources to include, e.g. plan, apply or configuration_version.")
	f.StringVar(&c.flagFilter, "filter", "",
		"JSON object restricting results by nested resource attributes, e.g. '{\"ingress-attributes\":{\"commit-sha\":[\"42e4f31\"]}}'.")
	f.StringVar(&c.flagCreatedAfter, "created-after", "",
		"Keep only runs created after this point in time, in any common date format.")

	return f
}

func (c *InfoCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	var filter map[string]map[string][]string
	if c.flagFilter != "" {
		if err := json.Unmarshal([]byte(c.flagFilter), &filter); err != nil {
			c.UI.Error(fmt.Sprintf("error parsing filter: %v", err))
			return 1
		}
	}

	client, err := c.flags.Client(c.Command)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := modules.RunInfo(context.Background(), client, modules.RunInfoOptions{
		Organization: c.flagOrganization,
		Workspace:    c.flagWorkspace,
		Runs:         c.flagRuns,
		Include:      c.flagInclude,
		Filter:       filter,
		CreatedAfter: c.flagCreatedAfter,
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
