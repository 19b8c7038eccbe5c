package base

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/NordeaOSS/esp.terraform/internal/config"
	"github.com/NordeaOSS/esp.terraform/internal/reconcile"
	"github.com/NordeaOSS/esp.terraform/pkg/tfe"
)

// ClientFlags are the connection and output flags shared by every command
// that talks to Terraform Enterprise. Unset flags defer to the config file
// and environment.
type ClientFlags struct {
	Config     string
	Address    string
	Token      string
	SkipVerify *bool
	UseProxy   *bool
	Retries    int
	Sleep      int
	DryRun     bool
	Format     string
	LogLevel   string
}

// Register adds the shared flags to the flag set.
func (c *ClientFlags) Register(f *FlagSet) {
	f.StringVar(&c.Config, "config", "",
		"Path to an HCL config file with connection settings.")
	f.StringVar(&c.Address, "address", "",
		"Terraform Enterprise URL. Overrides the config file and TFE_URL.")
	f.StringVar(&c.Token, "token", "",
		"Bearer token. Overrides the config file and TFE_TOKEN.")
	f.OptionalBoolVar(&c.SkipVerify, "skip-verify",
		"Disable TLS certificate validation.")
	f.OptionalBoolVar(&c.UseProxy, "use-proxy",
		"Honor proxy settings from the environment.")
	f.IntVar(&c.Retries, "retries", 0,
		"Number of attempts per API call before failure.")
	f.IntVar(&c.Sleep, "sleep", 0,
		"Seconds to sleep between API retries.")
	f.BoolVar(&c.DryRun, "dry-run", false,
		"Report what would change without mutating anything.")
	f.StringVar(&c.Format, "format", "json",
		"Output format, json or yaml.")
	f.StringVar(&c.LogLevel, "log-level", "",
		"Log level. Overrides ESP_TERRAFORM_LOG.")
}

// Client resolves the effective configuration and builds the API client.
func (c *ClientFlags) Client(cmd *Command) (*tfe.Client, error) {
	if c.LogLevel != "" {
		cmd.Log.SetLevel(hclog.LevelFromString(c.LogLevel))
	}
	cfg, err := config.Load(afero.NewOsFs(), c.Config)
	if err != nil {
		return nil, err
	}
	if c.Address != "" {
		cfg.Address = c.Address
	}
	if c.Token != "" {
		cfg.Token = c.Token
	}
	if c.SkipVerify != nil {
		cfg.SkipVerify = *c.SkipVerify
	}
	if c.UseProxy != nil {
		cfg.UseProxy = *c.UseProxy
	}
	if c.Retries != 0 {
		cfg.Retries = c.Retries
	}
	if c.Sleep != 0 {
		cfg.Sleep = c.Sleep
	}

	return tfe.NewClient(tfe.ClientConfig{
		Address:    cfg.Address,
		Token:      cfg.Token,
		SkipVerify: cfg.SkipVerify,
		UseProxy:   cfg.UseProxy,
		Retry: tfe.RetryPolicy{
			Retries: cfg.Retries,
			Sleep:   time.Duration(cfg.Sleep) * time.Second,
		},
		Logger: cmd.Log,
	})
}

// Output renders a reconciliation result to the UI in the requested format.
func (c *ClientFlags) Output(cmd *Command, result *reconcile.Result) error {
	rendered := result.Render()
	var out []byte
	var err error
	switch c.Format {
	case "", "json":
		out, err = json.MarshalIndent(rendered, "", "  ")
	case "yaml":
		out, err = yaml.Marshal(rendered)
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	cmd.UI.Output(string(out))
	return nil
}
