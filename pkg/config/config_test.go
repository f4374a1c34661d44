package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/intergeo/pkg/errors"
	"github.com/matzehuels/intergeo/pkg/render/canvas"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[style.dependent]
stroke = "green"

[canvas]
unit = 50.0

[cache]
backend = "redis"
ttl = "90m"
redis_url = "redis://localhost:6379/1"

[server]
addr = "127.0.0.1:9000"
`))
	require.NoError(t, err)

	assert.Equal(t, "green", cfg.Style.Dependent.StrokeColor)
	assert.Equal(t, "blue", cfg.Style.Dependent.FillColor, "unset keys keep defaults")
	assert.Equal(t, 50.0, cfg.Canvas.Unit)
	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, canvas.DefaultOptions(), cfg.Canvas)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		subject string
	}{
		{"malformed", `[cache`, ""},
		{"unknown key", "[canvas]\nzoom = 2", "canvas.zoom"},
		{"bad backend", "[cache]\nbackend = \"memcached\"", "cache.backend"},
		{"redis without url", "[cache]\nbackend = \"redis\"", "cache.redis_url"},
		{"bad ttl", "[cache]\nttl = \"soon\"", ""},
		{"negative ttl", "[cache]\nttl = \"-1h\"", "cache.ttl"},
		{"negative width", "[canvas]\nwidth = -1", "canvas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
			if tt.subject != "" {
				assert.Equal(t, tt.subject, errors.GetSubject(err))
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":9999\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "intergeo", FileName), DefaultPath())

	cfg, err := Load("")
	require.NoError(t, err, "missing default file is not an error")
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "intergeo"), 0o755))
	require.NoError(t, os.WriteFile(DefaultPath(), []byte("[cache]\nbackend = \"none\"\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendNone, cfg.Cache.Backend)
}
