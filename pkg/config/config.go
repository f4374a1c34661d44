// Package config loads the intergeo configuration file.
//
// The file is TOML and every section is optional:
//
//	[style.dependent]
//	stroke = "blue"
//	fill   = "blue"
//
//	[canvas]
//	width    = 800
//	height   = 600
//	unit     = 30
//	origin_x = 400
//	origin_y = 300
//
//	[cache]
//	backend   = "file"   # file, redis or none
//	dir       = ""       # file backend directory
//	ttl       = "24h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
// Values missing from the file keep their defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/intergeo/pkg/errors"
	"github.com/matzehuels/intergeo/pkg/intergeo"
	"github.com/matzehuels/intergeo/pkg/render/canvas"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// FileName is the name of the configuration file inside the config
// directory.
const FileName = "config.toml"

// Config is the complete configuration.
type Config struct {
	Style  StyleConfig    `toml:"style"`
	Canvas canvas.Options `toml:"canvas"`
	Cache  CacheConfig    `toml:"cache"`
	Server ServerConfig   `toml:"server"`
}

// StyleConfig holds element styles.
type StyleConfig struct {
	Dependent intergeo.Style `toml:"dependent"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`

	// Dir is the file backend's directory. Empty means cache.DefaultDir().
	Dir string `toml:"dir"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("24h", "90m") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Style:  StyleConfig{Dependent: intergeo.DefaultDependentStyle},
		Canvas: canvas.DefaultOptions(),
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{24 * time.Hour},
			Prefix:  "intergeo:",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String()).
			About(undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend).About("cache.backend")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend").About("cache.redis_url")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "negative cache ttl %s", c.Cache.TTL).About("cache.ttl")
	}
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 || c.Canvas.Unit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas dimensions must not be negative").About("canvas")
	}
	return nil
}

// Load reads the configuration. An explicit path must exist; otherwise the
// default location is tried and a missing file yields Default().
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Default(), errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path).About(path)
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config").About(path)
	}
	return Parse(data)
}

// DefaultPath returns $XDG_CONFIG_HOME/intergeo/config.toml, falling back to
// the platform config directory. It returns "" if neither is known.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "intergeo", FileName)
}
