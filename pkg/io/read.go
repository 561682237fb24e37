package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
)

// Read decodes a document from r. The top level must be an object.
func Read(r io.Reader, f Format) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, err, "read")
	}
	return Decode(data, f)
}

// Decode parses data in format f and normalizes it.
func Decode(data []byte, f Format) (map[string]any, error) {
	var raw any
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidInput, err, "decode json")
		}
		if dec.More() {
			return nil, errors.New(errors.CodeInvalidInput, "", "decode json: trailing data after document")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidInput, err, "decode yaml")
		}
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidInput, err, "decode toml")
		}
		raw = m
	default:
		return nil, errors.New(errors.CodeInvalidInput, "", "unknown format %q", f)
	}

	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, errors.New(errors.CodeInvalidInput, "", "token document must be an object, got %T", raw)
	}
	return doc, nil
}

// ReadFile reads a document, choosing the format from the extension.
func ReadFile(path string) (map[string]any, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, err, "read %s", path)
	}
	doc, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// normalize converts the decoder-specific shapes into the document shape:
// YAML's map[any]any and TOML's []map[string]any become plain maps and
// slices, and integers become float64.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	}
	return v
}
