// Package cli implements the tokens command-line interface.
//
// # Commands
//
//   - validate: check token documents, exit 1 when errors are found
//   - migrate: rewrite legacy documents into canonical structured form
//   - resolve: print resolved values, optionally with reference trails
//   - project: flatten tokens into namespaced custom properties
//   - graph: render the reference graph as DOT or SVG
//   - serve: run the HTTP API over a directory or the CMS database
//   - cache: manage the resolution cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is created once and also carried through context.Context.
//
// # Configuration
//
// Settings are read from a config file, TOKENS_* environment variables and
// flags (see package config).
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/internal/config"
	"github.com/darianrosebrook/portfolio-sub007/pkg/buildinfo"
	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
	"github.com/darianrosebrook/portfolio-sub007/pkg/observability"
	"github.com/darianrosebrook/portfolio-sub007/pkg/pipeline"
)

const appName = "tokens"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configFile string
	verbose    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tokens resolves, validates and projects design tokens",
		Long: `tokens works on design token documents: it validates them, migrates legacy
values into canonical structured form, resolves references and projects the
result into namespaced custom properties for components.`,
		Version:           buildinfo.Short(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default .tokens.{toml,yaml,json}, or TOKENS_CONFIG_FILE)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, binds the running command's flags and
// configures logging. It runs before every command.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	v, err := config.New(c.configFile)
	if err != nil {
		return usageError(err)
	}
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return usageError(err)
	}
	c.Config = cfg

	level := parseLevel(cfg.Log.Level)
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if level == LogDebug {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetStoreHooks(hooks)
	}
	observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"server.addr":           "addr",
	"project.namespace":     "namespace",
	"project.root":          "root",
	"validate.strict_units": "strict-units",
	"validate.jobs":         "jobs",
}

// settings returns the loaded configuration, or defaults when a command runs
// without the root's pre-run (as in tests).
func (c *CLI) settings() *config.Config {
	if c.Config == nil {
		v, err := config.New("")
		if err == nil {
			c.Config, err = config.Load(v)
		}
		if err != nil {
			c.Config = &config.Config{}
		}
	}
	return c.Config
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	if ttl := c.settings().Cache.TTL; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.settings().Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// cacheDir returns the file cache directory: cache.dir when configured,
// else the per-user cache directory.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return LogInfo
	}
	return level
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
