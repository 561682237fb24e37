package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/store"
)

// loadSources reads the token files at path (a file or a directory tree)
// in merge order. Unreadable or unparsable input is a usage error.
func (c *CLI) loadSources(ctx context.Context, path string) ([]loader.Source, error) {
	s := store.NewDirStore(path)
	s.Jobs = c.settings().Validate.Jobs
	sources, err := s.Documents(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, usageError(err)
	}
	return sources, nil
}

// loadDocument reads and merges every token file at path.
func (c *CLI) loadDocument(ctx context.Context, path string) (map[string]any, error) {
	sources, err := c.loadSources(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Merge(sources...)
	if err != nil {
		return nil, usageError(err)
	}
	return doc, nil
}

func (c *CLI) loadIndex(ctx context.Context, path string) (*index.Index, error) {
	doc, err := c.loadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	return index.Build(doc), nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
