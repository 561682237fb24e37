// Package store provides the token documents a server or command works on.
//
// [DirStore] reads token files from a directory tree; [MongoStore] reads
// documents from a MongoDB collection. Both return sources in a stable
// order, ready for [loader.Merge], with later sources taking precedence.
//
// [loader.Merge]: github.com/darianrosebrook/portfolio-sub007/pkg/loader.Merge
package store

import (
	"context"

	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
)

// Store lists token documents in merge order.
type Store interface {
	Documents(ctx context.Context) ([]loader.Source, error)
}
