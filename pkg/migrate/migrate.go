// Package migrate rewrites legacy token documents into canonical form.
//
// Legacy documents carry hex and rgb() color strings, dimension strings,
// CSS shadow strings and legacy $type aliases. Migration replaces each with
// its structured form (see [coerce.Tree]) and writes the file back in its
// own format. Unrelated keys are preserved.
//
// Files are migrated independently: a file that cannot be read, parsed or
// written is recorded as failed and the batch carries on.
//
// [coerce.Tree]: github.com/darianrosebrook/portfolio-sub007/pkg/coerce.Tree
package migrate

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/darianrosebrook/portfolio-sub007/pkg/coerce"
	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	tokio "github.com/darianrosebrook/portfolio-sub007/pkg/io"
)

// Options controls a migration batch.
type Options struct {
	// DryRun reports what would change without writing.
	DryRun bool
	// Jobs bounds parallel files; zero means GOMAXPROCS.
	Jobs   int
	Logger *log.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path  string
	Stats coerce.Stats
	// Written is false for unchanged files and dry runs.
	Written bool
	Err     error
}

// OK reports whether the file migrated (or needed no migration).
func (r FileResult) OK() bool { return r.Err == nil }

// Report summarizes a batch. Files are sorted by path.
type Report struct {
	Files     []FileResult
	Succeeded int
	Failed    int
	Changed   int
}

// OK reports whether every file succeeded.
func (r *Report) OK() bool { return r.Failed == 0 }

// Failures returns the failed files.
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f)
		}
	}
	return out
}

// Run migrates every path. Directories are expanded to the token files
// they contain. Run never stops early on a file failure; it only returns
// early when ctx is cancelled, marking unprocessed files as failed.
func Run(ctx context.Context, paths []string, opts Options) *Report {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	files, failed := expand(paths)
	results := make([]FileResult, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			res := FileResult{Path: path}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Stats, res.Written, res.Err = migrateFile(path, opts.DryRun)
			}
			if res.Err != nil {
				logger.Error("migration failed", "path", path, "err", res.Err)
			} else if res.Stats.Changed() {
				logger.Info("migrated", "path", path, "values", res.Stats.Values, "types", res.Stats.Types, "dry_run", opts.DryRun)
			} else {
				logger.Debug("already canonical", "path", path)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	rep := &Report{Files: append(failed, results...)}
	slices.SortFunc(rep.Files, func(a, b FileResult) int { return cmp.Compare(a.Path, b.Path) })
	for _, f := range rep.Files {
		switch {
		case !f.OK():
			rep.Failed++
		case f.Stats.Changed():
			rep.Succeeded++
			rep.Changed++
		default:
			rep.Succeeded++
		}
	}
	return rep
}

// File migrates a single file in place.
func File(path string, dryRun bool) (coerce.Stats, error) {
	st, _, err := migrateFile(path, dryRun)
	return st, err
}

func migrateFile(path string, dryRun bool) (st coerce.Stats, written bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.CodeInternal, "", "migrate %s: %v", path, r)
		}
	}()

	doc, err := tokio.ReadFile(path)
	if err != nil {
		return st, false, err
	}
	out, st := coerce.Tree(doc)
	if !st.Changed() || dryRun {
		return st, false, nil
	}
	if err := tokio.WriteFile(path, out); err != nil {
		return st, false, err
	}
	return st, true, nil
}

// expand resolves directories into their token files and removes
// duplicates. Paths that cannot be listed become failed results.
func expand(paths []string) (files []string, failed []FileResult) {
	seen := make(map[string]bool)
	for _, p := range paths {
		found, err := tokio.Discover(p)
		if err != nil {
			failed = append(failed, FileResult{Path: p, Err: fmt.Errorf("discover: %w", err)})
			continue
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, failed
}
