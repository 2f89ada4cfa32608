package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dnd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, cfg.Schema)
	assert.Equal(t, 20.0, cfg.Drag.Distance)
	assert.Equal(t, 0.4, cfg.Drag.PreviewOpacity)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
schema: "1.2.0"
drag:
  distance: 8
  transparent: true
logger:
  format: json
`)
	t.Setenv("DND_DRAG_PREVIEW_OPACITY", "0.75")

	cfg, err := Load(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", cfg.Schema)
	assert.Equal(t, 8.0, cfg.Drag.Distance)
	assert.Equal(t, 0.75, cfg.Drag.PreviewOpacity)
	assert.True(t, cfg.Drag.Transparent)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_MissingNamedFile(t *testing.T) {
	_, err := Load(NewViper(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Schema: "v1.0.0",
			Drag:   DragConfig{Distance: 20, PreviewOpacity: 0.4},
			Logger: LoggerConfig{Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bare version", func(c *Config) { c.Schema = "1.4.2" }, ""},
		{"garbage schema", func(c *Config) { c.Schema = "one" }, "invalid schema version"},
		{"future major", func(c *Config) { c.Schema = "v2.0.0" }, "unsupported schema version"},
		{"negative distance", func(c *Config) { c.Drag.Distance = -1 }, "drag.distance"},
		{"zero distance", func(c *Config) { c.Drag.Distance = 0 }, "drag.distance must be positive"},
		{"opacity above one", func(c *Config) { c.Drag.PreviewOpacity = 1.5 }, "drag.preview_opacity"},
		{"zero opacity", func(c *Config) { c.Drag.PreviewOpacity = 0 }, "drag.preview_opacity"},
		{"opaque preview", func(c *Config) { c.Drag.PreviewOpacity = 1 }, ""},
		{"unknown format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
