package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utmo/cmdletdi/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cmdletdi.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
env: prod
log_level: debug
values:
  greeting.prefix: Hello
`))
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, map[string]string{"greeting.prefix": "Hello"}, cfg.Values)
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("colour: blue\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: decode")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{name: "default is valid", cfg: config.Default()},
		{name: "empty env", cfg: config.Config{LogLevel: "info"}, wantErr: "env must not be empty"},
		{name: "bad level", cfg: config.Config{Env: "local", LogLevel: "loud"}, wantErr: "log_level"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// Load reads the process environment, so these tests do not run in parallel.
func TestLoad_FileAndEnvOverride(t *testing.T) {
	p := writeConfig(t, "env: staging\nlog_level: warn\n")

	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv("CMDLETDI_ENV", "prod")
	t.Setenv("CMDLETDI_LOG_LEVEL", "error")

	cfg, err = config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")

	t.Setenv("CMDLETDI_LOG_LEVEL", "loud")
	_, err = config.Load("")
	require.Error(t, err)
}
