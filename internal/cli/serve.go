package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
	"github.com/darianrosebrook/portfolio-sub007/pkg/server"
	"github.com/darianrosebrook/portfolio-sub007/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		useMongo bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve the token HTTP API",
		Long: `Serve resolution, validation and projections over HTTP for the token files
under path, or for the documents in the CMS database with --mongo.

  GET  /healthz
  GET  /v1/tokens
  GET  /v1/projection/{namespace}?root=&format=json|css
  POST /v1/validate
  POST /v1/resolve

The server stops gracefully on interrupt.`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) > 1:
				return usageError(errors.New("serve takes at most one path"))
			case len(args) == 0 && !useMongo:
				return usageError(errors.New("a path is required unless --mongo is set"))
			case len(args) == 1 && useMongo:
				return usageError(errors.New("a path cannot be combined with --mongo"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()

			var (
				st    store.Store
				scope string
			)
			if useMongo {
				ms, err := store.NewMongoStore(ctx, store.MongoConfig{
					URI:        cfg.Store.Mongo.URI,
					Database:   cfg.Store.Mongo.Database,
					Collection: cfg.Store.Mongo.Collection,
					Timeout:    cfg.Store.Mongo.Timeout,
				})
				if err != nil {
					return err
				}
				defer closeMongo(ms)
				st = ms
				scope = "mongo:" + cfg.Store.Mongo.Database + "/" + cfg.Store.Mongo.Collection + ":"
			} else {
				ds := store.NewDirStore(args[0])
				ds.Jobs = cfg.Validate.Jobs
				st = ds
				scope = "dir:" + ds.Root + ":"
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			// Servers sharing a Redis cache keep their entries apart.
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, scope)

			srv := server.New(st, runner, c.Logger)
			srv.StrictUnits = cfg.Validate.StrictUnits
			printInfo(cmd.ErrOrStderr(), "Serving on %s", cfg.Server.Addr)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&useMongo, "mongo", false, "serve documents from the configured MongoDB collection")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the resolution cache")
	cmd.Flags().Bool("strict-units", false, "only allow px and rem dimension units")
	cmd.Flags().Int("jobs", 0, "parallel file reads (default GOMAXPROCS)")
	return cmd
}

func closeMongo(ms *store.MongoStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = ms.Close(ctx)
}
