// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SHEENTERM_RESOURCE", "SHEENTERM_HOST_URL", "SHEENTERM_LISTEN",
		"SHEENTERM_TYPING", "SHEENTERM_LOG_LEVEL", "SHEENTERM_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2*time.Second, cfg.Intro.Matrix())
	assert.Equal(t, 2500*time.Millisecond, cfg.Intro.WelcomeDelay())
	assert.Equal(t, 30*time.Millisecond, cfg.Intro.CharInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.UI.ExitDelay())
	assert.False(t, cfg.Intro.TypingAnimation)
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[host]
resource_name = "my-resource"

[intro]
typing_animation = true

[ui]
exit_delay_ms = 250
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-resource", cfg.Host.ResourceName)
	assert.True(t, cfg.Intro.TypingAnimation)
	assert.Equal(t, 250, cfg.UI.ExitDelayMS)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 2000, cfg.Intro.MatrixMS)
	assert.Equal(t, "127.0.0.1:30125", cfg.Server.ListenAddr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[host]\nresorce_name = \"typo\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host.resorce_name")
}

func TestLoad_MalformedTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[host\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEENTERM_RESOURCE", "from-env")
	t.Setenv("SHEENTERM_TYPING", "true")
	t.Setenv("SHEENTERM_LOG_LEVEL", "debug")
	path := writeFile(t, "[host]\nresource_name = \"from-file\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Host.ResourceName)
	assert.True(t, cfg.Intro.TypingAnimation)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFillDefaults_RepairsZeroValues(t *testing.T) {
	cfg := &Config{}
	fillDefaults(cfg)

	assert.Equal(t, 10000, cfg.Host.TimeoutMS)
	assert.Equal(t, 30, cfg.Intro.CharIntervalMS)
	assert.Equal(t, 90, cfg.UI.Width)
	assert.Equal(t, "info", cfg.Log.Level)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"no resource or url", func(c *Config) { c.Host.ResourceName = "" }, "host.resource_name"},
		{"resource with slash", func(c *Config) { c.Host.ResourceName = "a/b" }, "host.resource_name"},
		{"bad base url", func(c *Config) { c.Host.BaseURL = "ftp://x" }, "host.base_url"},
		{"bad listen addr", func(c *Config) { c.Server.ListenAddr = "nope" }, "server.listen_addr"},
		{"welcome before matrix", func(c *Config) { c.Intro.WelcomeDelayMS = 100 }, "intro.welcome_delay_ms"},
		{"negative exit delay", func(c *Config) { c.UI.ExitDelayMS = -1 }, "ui.exit_delay_ms"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.edit(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			found := false
			for _, v := range verrs {
				if v.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "expected error on %s, got %v", tc.field, err)
		})
	}
}

func TestValidate_ServerDisabledSkipsAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Enabled = false
	cfg.Server.ListenAddr = "nope"
	assert.NoError(t, cfg.Validate())
}

// =============================================================================
// SAVE / WATCH
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Host.ResourceName = "saved"
	cfg.Intro.TypingAnimation = true
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[log]\nlevel = \"info\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *Config, 1)
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(ready)
		done <- Watch(ctx, path, func(c *Config) {
			select {
			case changed <- c:
			default:
			}
		}, nil)
	}()
	<-ready

	// The watcher registers asynchronously; rewrite until it notices.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changed:
			assert.Equal(t, "debug", cfg.Log.Level)
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0600))
		case <-deadline:
			t.Fatal("watcher never reported a change")
		}
	}
}
