package cli

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	tokio "github.com/darianrosebrook/portfolio-sub007/pkg/io"
)

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watch runs fn once, then again after every change to a token file under
// root, until ctx is cancelled. Failures of fn are reported by fn itself
// and do not stop the watch.
func (c *CLI) watch(ctx context.Context, root string, status io.Writer, fn func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	fi, err := os.Stat(root)
	if err != nil {
		return usageError(err)
	}
	relevant := func(path string) bool { return tokio.IsTokenFile(filepath.Base(path)) }
	if fi.IsDir() {
		if err := addTree(w, root); err != nil {
			return err
		}
	} else {
		target := filepath.Clean(root)
		relevant = func(path string) bool { return filepath.Clean(path) == target }
		if err := w.Add(filepath.Dir(target)); err != nil {
			return err
		}
	}

	c.runWatched(ctx, fn)
	printInfo(status, "Watching %s for changes", root)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && fi.IsDir() {
				if sub, err := os.Stat(ev.Name); err == nil && sub.IsDir() {
					_ = addTree(w, ev.Name)
				}
			}
			if relevant(ev.Name) && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)) {
				c.Logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-timer.C:
			printInfo(status, "Change detected, re-validating")
			c.runWatched(ctx, fn)
		}
	}
}

func (c *CLI) runWatched(ctx context.Context, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		c.Logger.Debug("watched run failed", "err", err)
	}
}

// addTree watches root and every directory below it, skipping hidden
// directories and node_modules.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
