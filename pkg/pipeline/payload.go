package pipeline

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
)

// payload is the cached form of a [Result]. Version guards against
// decoding entries written by an incompatible build.
type payload struct {
	Version int     `json:"version"`
	Result  *Result `json:"result"`
}

// encodeResult serializes with msgpack, reusing the json struct tags.
func encodeResult(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(payload{Version: cache.SchemaVersion, Result: res}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeResult(data []byte) (*Result, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if p.Version != cache.SchemaVersion {
		return nil, fmt.Errorf("payload version %d, want %d", p.Version, cache.SchemaVersion)
	}
	if p.Result == nil {
		return nil, fmt.Errorf("empty payload")
	}
	return p.Result, nil
}
