package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// managedEnv lists every variable the tests touch so a developer's shell
// cannot leak into them
var managedEnv = []string{
	"WORKORDER_APP_NAME",
	"WORKORDER_APP_ENV",
	"WORKORDER_APP_PORT",
	"WORKORDER_LOG_LEVEL",
	"WORKORDER_HTTP_MAX_BODY_SIZE",
	"WORKORDER_HTTP_CORS_ALLOW_ORIGINS",
	"WORKORDER_RENDER_MARGIN_MM",
	"WORKORDER_RENDER_TIMEZONE",
	"WORKORDER_RENDER_LOGO_SOURCE",
	"WORKORDER_RENDER_LOGO_PATH",
	"WORKORDER_STORAGE_BUCKET",
	"WORKORDER_STORAGE_LOGO_KEY",
	"WORKORDER_METRICS_ENABLED",
	"WORKORDER_TELEMETRY_SAMPLING_RATIO",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "workorder-service", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodySize)
		assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.HTTP.CORSAllowMethods)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.Equal(t, "A4", cfg.Render.PaperSize)
		assert.Equal(t, 18.0, cfg.Render.MarginMM)
		assert.Equal(t, LogoSourceNone, cfg.Render.LogoSource)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.True(t, cfg.Storage.UsePathStyle)
		assert.Equal(t, 5*time.Minute, cfg.Storage.LogoRefresh)
		assert.Equal(t, "workorder-service", cfg.Telemetry.ServiceName)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables with WORKORDER prefix", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("WORKORDER_APP_NAME", "wo-test")
		t.Setenv("WORKORDER_APP_PORT", "9000")
		t.Setenv("WORKORDER_LOG_LEVEL", "debug")
		t.Setenv("WORKORDER_RENDER_MARGIN_MM", "12.5")
		t.Setenv("WORKORDER_RENDER_LOGO_PATH", "/srv/logo.png")
		t.Setenv("WORKORDER_METRICS_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "wo-test", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 12.5, cfg.Render.MarginMM)
		assert.Equal(t, LogoSourceFile, cfg.Render.LogoSource)
		assert.Equal(t, "/srv/logo.png", cfg.Render.LogoPath)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("reads config.toml from the working directory", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[app]
name = "from-file"

[render]
paper_size = "LETTER"
timezone = "UTC"

[http]
cors_allow_origins = ["http://localhost:5173"]
`), 0o600))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.App.Name)
		assert.Equal(t, "LETTER", cfg.Render.PaperSize)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[app]\nname = \"from-file\"\n"), 0o600))
		t.Setenv("WORKORDER_APP_NAME", "from-env")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.App.Name)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		errPart string
	}{
		{
			name:    "margin out of range",
			env:     map[string]string{"WORKORDER_RENDER_MARGIN_MM": "80"},
			errPart: "render.margin_mm",
		},
		{
			name:    "unknown time zone",
			env:     map[string]string{"WORKORDER_RENDER_TIMEZONE": "Mars/Olympus"},
			errPart: "render.timezone",
		},
		{
			name:    "unknown logo source",
			env:     map[string]string{"WORKORDER_RENDER_LOGO_SOURCE": "ftp"},
			errPart: "render.logo_source",
		},
		{
			name:    "file logo without path",
			env:     map[string]string{"WORKORDER_RENDER_LOGO_SOURCE": "file"},
			errPart: "render.logo_path",
		},
		{
			name:    "s3 logo without bucket",
			env:     map[string]string{"WORKORDER_RENDER_LOGO_SOURCE": "s3"},
			errPart: "storage.bucket",
		},
		{
			name:    "sampling ratio above one",
			env:     map[string]string{"WORKORDER_TELEMETRY_SAMPLING_RATIO": "1.5"},
			errPart: "sampling_ratio",
		},
		{
			name: "wildcard CORS in production",
			env: map[string]string{
				"WORKORDER_APP_ENV":                 "production",
				"WORKORDER_HTTP_CORS_ALLOW_ORIGINS": "*",
			},
			errPart: "cors_allow_origins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestRenderConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, RenderConfig{Timezone: "UTC"}.Location())
	assert.Equal(t, time.UTC, RenderConfig{Timezone: "Nowhere/Invalid"}.Location())
}
