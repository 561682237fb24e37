package store

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	tokio "github.com/darianrosebrook/portfolio-sub007/pkg/io"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/observability"
)

// DirStore reads every token file under Root. Files are parsed in
// parallel and returned sorted by path, each named by its path relative
// to Root.
type DirStore struct {
	Root string
	// Jobs bounds parallel reads; zero means GOMAXPROCS.
	Jobs int
}

// NewDirStore returns a store over root.
func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

// Documents discovers and reads the token files. The first read or parse
// failure cancels the remaining reads and is returned.
func (s *DirStore) Documents(ctx context.Context) (sources []loader.Source, err error) {
	start := time.Now()
	defer func() {
		observability.Store().OnDocumentsLoaded(ctx, "dir", len(sources), time.Since(start), err)
	}()

	files, err := tokio.Discover(s.Root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "", "no token files found under %s", s.Root)
	}

	jobs := s.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	sources = make([]loader.Source, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := tokio.ReadFile(path)
			if err != nil {
				return err
			}
			sources[i] = loader.JSON(s.name(path), doc)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func (s *DirStore) name(path string) string {
	rel, err := filepath.Rel(s.Root, path)
	if err != nil || rel == "." {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

var _ Store = (*DirStore)(nil)
