// Package config loads hanoitower settings from a TOML file.
//
// Every field has a default, so a missing file is not an error. A minimal
// file looks like:
//
//	disks = 6
//
//	[animation]
//	base_duration = "300ms"
//	speed = 2.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
// Command-line flags override whatever the file sets.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Duration is a time.Duration written as a string ("500ms", "1.5s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the whole settings file.
type Config struct {
	Disks     int          `toml:"disks"`
	Scene     scene.Config `toml:"scene"`
	Animation Animation    `toml:"animation"`
	Cache     Cache        `toml:"cache"`
	Server    Server       `toml:"server"`
}

// Animation controls playback timing.
type Animation struct {
	BaseDuration Duration `toml:"base_duration"`
	Speed        float64  `toml:"speed"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Server configures hanoitower serve.
type Server struct {
	Addr           string   `toml:"addr"`
	MaxDisks       int      `toml:"max_disks"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Disks: 4,
		Scene: scene.DefaultConfig(),
		Animation: Animation{
			BaseDuration: Duration{500 * time.Millisecond},
			Speed:        1,
		},
		Cache: Cache{
			Backend: BackendFile,
			Prefix:  "hanoitower:",
		},
		Server: Server{
			Addr:           ":8080",
			MaxDisks:       12,
			RequestTimeout: Duration{30 * time.Second},
		},
	}
}

// Load reads path on top of the defaults. An empty path means [DefaultPath];
// a missing default file yields the defaults, but a missing explicit path is
// an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfiguration, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Disks < 0 || c.Disks > solver.MaxDisks {
		return errors.New(errors.ErrCodeInvalidConfiguration, "disks must be between 0 and %d, got %d", solver.MaxDisks, c.Disks)
	}
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	if c.Animation.BaseDuration.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "animation.base_duration must be > 0, got %s", c.Animation.BaseDuration)
	}
	if c.Animation.Speed <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "animation.speed must be > 0, got %g", c.Animation.Speed)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfiguration, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	if c.Server.MaxDisks < 0 || c.Server.MaxDisks > solver.MaxDisks {
		return errors.New(errors.ErrCodeInvalidConfiguration, "server.max_disks must be between 0 and %d, got %d", solver.MaxDisks, c.Server.MaxDisks)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/hanoitower/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "hanoitower", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hanoitower", FileName), nil
}
