// Package cli implements the matteray command-line interface.
//
// The commands load matrices from JSON or TOML documents, run pipeline
// operations on them, and render, browse or serve the results.
//
// # Commands
//
//   - show: print a matrix as a table
//   - apply: run an operation on one or two matrix files
//   - render: write a matrix as a Graphviz DOT or SVG table
//   - view: browse and transform a matrix interactively
//   - serve: run the HTTP API
//   - convert: translate documents between JSON and TOML
//   - cache: inspect or clear the result cache
//   - version: print build information
//
// # Configuration
//
// Settings come from a TOML file (see package config), selected with
// --config. Global --verbose switches to debug logging and --no-cache
// disables the result cache for one invocation.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/viktori/matteray/pkg/buildinfo"
	"github.com/viktori/matteray/pkg/cache"
	"github.com/viktori/matteray/pkg/config"
	"github.com/viktori/matteray/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "matteray"

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
	Config config.Config

	configPath string
	verbose    bool
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Matteray works with immutable arrays and matrices",
		Long:              `Matteray loads matrices from JSON or TOML files, transforms them with safe, immutable operations and renders, browses or serves the results.`,
		Version:           buildinfo.Version(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/matteray/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies the log level. --verbose
// wins over the configured level.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned func closes
// the cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, func()) {
	cc := c.openCache(ctx)
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.TTL = time.Duration(c.Config.Cache.TTL)
	return runner, func() { _ = cc.Close() }
}

// openCache opens the configured backend. A backend that cannot be reached
// is logged and replaced by a NullCache so commands still work offline.
func (c *CLI) openCache(ctx context.Context) cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	opts := c.Config.CacheOptions()
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		if dir, err := c.cacheDir(); err == nil {
			opts.Dir = dir
		}
	}
	cc, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", opts.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the
// per-user cache directory.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
