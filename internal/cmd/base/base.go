// Package base holds the pieces shared by every CLI command: the logger
// and UI handles, flag-set helpers and the result renderer.
package base

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded in all commands to provide the common fields.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet creates a new flag set.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	// Help output comes from the command's Help method, not the flag
	// package.
	f.Usage = func() {}
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted flag usage block for appending to a command's
// Help output.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s\n      %s", fl.Name, fl.Usage)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, " Default: %s.", fl.DefValue)
		}
	})
	b.WriteString("\n")
	return b.String()
}
