package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultAddress, cfg.Address)
	assert.Equal(t, DefaultRetries, cfg.Retries)
	assert.Equal(t, DefaultSleep, cfg.Sleep)
	assert.True(t, cfg.UseProxy)
	assert.False(t, cfg.SkipVerify)
}

func TestLoad(t *testing.T) {
	t.Run("without a file the env wins over defaults", func(t *testing.T) {
		t.Setenv("TFE_URL", "https://tfe.internal.example.com")
		t.Setenv("TFE_TOKEN", "env-token")
		t.Setenv("SSL_VERIFY", "false")

		cfg, err := Load(afero.NewMemMapFs(), "")
		require.NoError(t, err)
		assert.Equal(t, "https://tfe.internal.example.com", cfg.Address)
		assert.Equal(t, "env-token", cfg.Token)
		assert.True(t, cfg.SkipVerify)
	})

	t.Run("file values win over the env", func(t *testing.T) {
		t.Setenv("TFE_URL", "https://env.example.com")
		t.Setenv("TFE_TOKEN", "env-token")

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/etc/esp-terraform.hcl", []byte(`
address = "https://file.example.com"
retries = 7
sleep   = 1
`), 0o644))

		cfg, err := Load(fs, "/etc/esp-terraform.hcl")
		require.NoError(t, err)
		assert.Equal(t, "https://file.example.com", cfg.Address)
		// Token absent from the file keeps the env fallback.
		assert.Equal(t, "env-token", cfg.Token)
		assert.Equal(t, 7, cfg.Retries)
		assert.Equal(t, 1, cfg.Sleep)
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "/nope.hcl")
		assert.Error(t, err)
	})

	t.Run("a malformed file is an error", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bad.hcl", []byte(`address = `), 0o644))

		_, err := Load(fs, "/bad.hcl")
		assert.Error(t, err)
	})

	t.Run("an unparseable SSL_VERIFY is ignored", func(t *testing.T) {
		t.Setenv("SSL_VERIFY", "maybe")

		cfg, err := Load(afero.NewMemMapFs(), "")
		require.NoError(t, err)
		assert.False(t, cfg.SkipVerify)
	})
}
