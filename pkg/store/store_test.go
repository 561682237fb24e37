package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/observability"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"tokens.json":                  `{"a": {"$value": 1}}`,
		"components/button.tokens.yml": "b:\n  $value: 2\n",
		"themes/dark.tokens.toml":      "[c]\n\"$value\" = 3\n",
		"notes.json":                   `not even json`,
	})

	s := NewDirStore(dir)
	s.Jobs = 2
	sources, err := s.Documents(context.Background())
	require.NoError(t, err)

	require.Len(t, sources, 3)
	assert.Equal(t, "components/button.tokens.yml", sources[0].Name)
	assert.Equal(t, "themes/dark.tokens.toml", sources[1].Name)
	assert.Equal(t, "tokens.json", sources[2].Name)
	for _, src := range sources {
		assert.Equal(t, loader.KindJSON, src.Kind)
	}
	assert.Equal(t, map[string]any{"$value": 3.0}, sources[1].Data["c"])
}

func TestDirStoreSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"brand.json": `{"x": {"$value": "#fff"}}`})

	sources, err := NewDirStore(filepath.Join(dir, "brand.json")).Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "brand.json", sources[0].Name)
}

func TestDirStoreErrors(t *testing.T) {
	empty := t.TempDir()
	_, err := NewDirStore(empty).Documents(context.Background())
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))

	broken := t.TempDir()
	writeFiles(t, broken, map[string]string{
		"a.tokens.json": `{"ok": {"$value": 1}}`,
		"b.tokens.json": `{"broken": `,
	})
	_, err = NewDirStore(broken).Documents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.tokens.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewDirStore(broken).Documents(ctx)
	assert.Error(t, err)
}

func TestDecodeDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"space": bson.M{
			"$type": "dimension",
			"sm":    bson.M{"$value": "4px"},
		},
		"count": bson.M{"$value": int32(3)},
		"big":   bson.M{"$value": int64(1) << 40},
		"ease":  bson.M{"$value": bson.A{0.25, 0.1, 0.25, 1.0}},
	})
	require.NoError(t, err)

	doc, err := decodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"space": map[string]any{
			"$type": "dimension",
			"sm":    map[string]any{"$value": "4px"},
		},
		"count": map[string]any{"$value": 3.0},
		"big":   map[string]any{"$value": float64(int64(1) << 40)},
		"ease":  map[string]any{"$value": []any{0.25, 0.1, 0.25, 1.0}},
	}, doc)

	_, err = decodeDocument(nil)
	assert.Error(t, err)
}

func TestMongoStoreRequiresCollection(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{URI: "mongodb://localhost:27017"})
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}

type loadEvent struct {
	store string
	docs  int
	err   error
}

type recordingHooks struct {
	observability.NoopStoreHooks
	mu     sync.Mutex
	events []loadEvent
}

func (h *recordingHooks) OnDocumentsLoaded(_ context.Context, store string, docs int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, loadEvent{store, docs, err})
}

func TestDirStoreHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"tokens.json": `{"a": {"$value": 1}}`})
	_, err := NewDirStore(dir).Documents(context.Background())
	require.NoError(t, err)
	_, err = NewDirStore(filepath.Join(dir, "missing")).Documents(context.Background())
	require.Error(t, err)

	require.Len(t, hooks.events, 2)
	assert.Equal(t, loadEvent{"dir", 1, nil}, hooks.events[0])
	assert.Equal(t, "dir", hooks.events[1].store)
	assert.Zero(t, hooks.events[1].docs)
	assert.Error(t, hooks.events[1].err)
}
