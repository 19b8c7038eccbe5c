// Package config loads the esp-terraform connection configuration.
// Precedence, lowest to highest: built-in defaults, environment variables
// (TFE_URL, TFE_TOKEN, SSL_VERIFY), the HCL config file, command-line
// flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
)

// Defaults.
const (
	DefaultAddress = "https://terraform.example.com"
	DefaultRetries = 3
	DefaultSleep   = 5
)

// Config holds the Terraform Enterprise connection settings.
type Config struct {
	// Address is the Terraform Enterprise base URL.
	Address string `hcl:"address,optional"`

	// Token authenticates every API request.
	Token string `hcl:"token,optional"`

	// SkipVerify disables TLS certificate validation.
	SkipVerify bool `hcl:"skip_verify,optional"`

	// UseProxy honors proxy settings from the environment.
	UseProxy bool `hcl:"use_proxy,optional"`

	// Retries is the total number of attempts per API call.
	Retries int `hcl:"retries,optional"`

	// Sleep is the number of seconds between retries.
	Sleep int `hcl:"sleep,optional"`
}

// Default returns a config with the built-in defaults applied.
func Default() *Config {
	return &Config{
		Address:  DefaultAddress,
		UseProxy: true,
		Retries:  DefaultRetries,
		Sleep:    DefaultSleep,
	}
}

// Load builds a config from defaults, environment variables and, when path
// is non-empty, the HCL file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()
	cfg.applyEnv()

	if path == "" {
		return cfg, nil
	}
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}
	var file Config
	if err := hclsimple.Decode(path, src, nil, &file); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	cfg.merge(&file)
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TFE_URL"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("TFE_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("SSL_VERIFY"); v != "" {
		if verify, err := strconv.ParseBool(v); err == nil {
			c.SkipVerify = !verify
		}
	}
}

// merge overlays non-zero file values onto the config. SkipVerify and
// UseProxy are only taken from the file when set to their non-default
// value, since HCL cannot distinguish false from absent.
func (c *Config) merge(file *Config) {
	if file.Address != "" {
		c.Address = file.Address
	}
	if file.Token != "" {
		c.Token = file.Token
	}
	if file.SkipVerify {
		c.SkipVerify = true
	}
	if file.UseProxy {
		c.UseProxy = true
	}
	if file.Retries != 0 {
		c.Retries = file.Retries
	}
	if file.Sleep != 0 {
		c.Sleep = file.Sleep
	}
}
