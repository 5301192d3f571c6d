// Package cli implements the hanoitower command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hanoitower/pkg/cache"
	"github.com/matzehuels/hanoitower/pkg/config"
	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/pipeline"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hanoitower"

	// keyScope is prepended to every cache key. Bump it when a cached
	// encoding changes.
	keyScope = "v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the default location.
	configPath string
	// cfg is loaded before any subcommand runs.
	cfg config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the settings file named by --config.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, keyScope), c.Logger)
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

// newCache opens the backend selected in the config. A file cache that
// cannot find a home directory degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL, c.cfg.Cache.Prefix)
	}
	dir := c.cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// baseOptions fills pipeline options from the config for n disks.
func (c *CLI) baseOptions(n int) pipeline.Options {
	return pipeline.Options{
		Disks:        n,
		BaseDuration: c.cfg.Animation.BaseDuration.Duration,
		Speed:        c.cfg.Animation.Speed,
		Scene:        c.cfg.Scene,
		Logger:       c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hanoitower/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Argument Helpers
// =============================================================================

// disksArg parses the optional [disks] argument, falling back to the
// configured disk count.
func (c *CLI) disksArg(args []string) (int, error) {
	if len(args) == 0 {
		return c.cfg.Disks, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "disks must be a number, got %q", args[0])
	}
	if n < 0 || n > solver.MaxDisks {
		return 0, errors.New(errors.ErrCodeInvalidInput, "disks must be between 0 and %d, got %d", solver.MaxDisks, n)
	}
	return n, nil
}
