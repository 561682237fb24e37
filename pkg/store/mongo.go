package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	tokio "github.com/darianrosebrook/portfolio-sub007/pkg/io"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/observability"
)

// MongoConfig locates the token collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connecting and each query. Zero means 10s.
	Timeout time.Duration
	// Attempts is how often a query failing with a network error or timeout
	// is tried. Zero means 3.
	Attempts int
}

const retryDelay = 200 * time.Millisecond

// record is one stored document. Lower priorities merge first.
type record struct {
	Name     string   `bson:"name"`
	Priority int      `bson:"priority"`
	Document bson.Raw `bson:"document"`
}

// MongoStore reads token documents from a collection of
// {name, priority, document} records, ordered by priority then name.
type MongoStore struct {
	client   *mongo.Client
	coll     *mongo.Collection
	timeout  time.Duration
	attempts int
}

// NewMongoStore connects and pings the server.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, errors.New(errors.CodeInvalidInput, "", "mongo database and collection are required")
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(cctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, err, "connect mongo")
	}
	ping := func() error { return markTransient(client.Ping(cctx, nil)) }
	if err := cache.RetryWithBackoff(cctx, attempts, retryDelay, ping); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.CodeIO, err, "ping mongo")
	}
	return &MongoStore{
		client:   client,
		coll:     client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:  timeout,
		attempts: attempts,
	}, nil
}

// Documents loads every record in merge order. Network errors and
// timeouts are retried with backoff.
func (s *MongoStore) Documents(ctx context.Context) ([]loader.Source, error) {
	start := time.Now()
	var sources []loader.Source
	err := cache.RetryWithBackoff(ctx, s.attempts, retryDelay, func() error {
		var err error
		sources, err = s.find(ctx)
		return err
	})
	if err != nil && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.CodeIO, err, "load tokens")
	}
	if err != nil {
		sources = nil
	}
	observability.Store().OnDocumentsLoaded(ctx, "mongo", len(sources), time.Since(start), err)
	return sources, err
}

func (s *MongoStore) find(ctx context.Context) ([]loader.Source, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}, {Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, markTransient(err)
	}
	defer cur.Close(ctx)

	var sources []loader.Source
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.CodeIO, err, "decode record")
		}
		doc, err := decodeDocument(rec.Document)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInvalidInput, err, "record %q", rec.Name)
		}
		sources = append(sources, loader.JSON(rec.Name, doc))
	}
	if err := cur.Err(); err != nil {
		return nil, markTransient(err)
	}
	return sources, nil
}

// decodeDocument goes through relaxed extended JSON so stored documents
// get the same shape as files: plain maps, slices and float64 numbers.
func decodeDocument(raw bson.Raw) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "", "record has no document")
	}
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, err
	}
	return tokio.Decode(data, tokio.FormatJSON)
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
