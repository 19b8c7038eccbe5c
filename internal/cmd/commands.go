package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/NordeaOSS/esp.terraform/internal/cmd/base"
	"github.com/NordeaOSS/esp.terraform/internal/cmd/commands/organization"
	"github.com/NordeaOSS/esp.terraform/internal/cmd/commands/run"
	"github.com/NordeaOSS/esp.terraform/internal/cmd/commands/sshkey"
	"github.com/NordeaOSS/esp.terraform/internal/cmd/commands/team"
	"github.com/NordeaOSS/esp.terraform/internal/cmd/commands/vcs"
	versioncmd "github.com/NordeaOSS/esp.terraform/internal/cmd/commands/version"
	"github.com/NordeaOSS/esp.terraform/internal/cmd/commands/workspace"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := func(name string) *base.Command {
		return &base.Command{
			Log: log.Named(name),
			UI:  ui,
		}
	}

	Commands = map[string]cli.CommandFactory{
		"organization": func() (cli.Command, error) {
			return &organization.Command{Command: baseCommand("organization")}, nil
		},
		"organization membership": func() (cli.Command, error) {
			return &organization.MembershipCommand{Command: baseCommand("membership")}, nil
		},
		"workspace": func() (cli.Command, error) {
			return &workspace.Command{Command: baseCommand("workspace")}, nil
		},
		"workspace info": func() (cli.Command, error) {
			return &workspace.InfoCommand{Command: baseCommand("workspace-info")}, nil
		},
		"workspace variable": func() (cli.Command, error) {
			return &workspace.VariableCommand{Command: baseCommand("variable")}, nil
		},
		"workspace remote-state-consumers": func() (cli.Command, error) {
			return &workspace.ConsumersCommand{Command: baseCommand("remote-state-consumers")}, nil
		},
		"team": func() (cli.Command, error) {
			return &team.Command{Command: baseCommand("team")}, nil
		},
		"team access": func() (cli.Command, error) {
			return &team.AccessCommand{Command: baseCommand("team-access")}, nil
		},
		"team membership": func() (cli.Command, error) {
			return &team.MembershipCommand{Command: baseCommand("team-membership")}, nil
		},
		"ssh-key": func() (cli.Command, error) {
			return &sshkey.Command{Command: baseCommand("ssh-key")}, nil
		},
		"vcs-connection": func() (cli.Command, error) {
			return &vcs.Command{Command: baseCommand("vcs-connection")}, nil
		},
		"vcs-token": func() (cli.Command, error) {
			return &vcs.TokenCommand{Command: baseCommand("vcs-token")}, nil
		},
		"vcs-token info": func() (cli.Command, error) {
			return &vcs.TokenInfoCommand{Command: baseCommand("vcs-token-info")}, nil
		},
		"run": func() (cli.Command, error) {
			return &run.Command{Command: baseCommand("run")}, nil
		},
		"run info": func() (cli.Command, error) {
			return &run.InfoCommand{Command: baseCommand("run-info")}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: baseCommand("version")}, nil
		},
	}
}
