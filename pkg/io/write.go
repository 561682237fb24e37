package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Encode serializes doc. Typed composites are written in their plain
// object form and object keys are sorted, so output is deterministic.
func Encode(doc map[string]any, f Format) ([]byte, error) {
	plain := token.Plain(doc)
	var buf bytes.Buffer
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(plain); err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "encode json")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(plain); err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "encode yaml")
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(plain); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidInput, err, "encode toml")
		}
	default:
		return nil, errors.New(errors.CodeInvalidInput, "", "unknown format %q", f)
	}
	return buf.Bytes(), nil
}

// Write encodes doc to w.
func Write(w io.Writer, doc map[string]any, f Format) error {
	data, err := Encode(doc, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.CodeIO, err, "write")
	}
	return nil
}

// WriteFile replaces path atomically: the document is written to a
// temporary file in the same directory and renamed over the target. The
// original file mode is kept when the target exists.
func WriteFile(path string, doc map[string]any) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, f)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.CodeIO, err, "create temp for %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.CodeIO, err, "write %s", path)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return errors.Wrap(errors.CodeIO, err, "chmod %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.CodeIO, err, "close %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.CodeIO, err, "replace %s", path)
	}
	return nil
}
