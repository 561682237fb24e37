package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
)

var tokenExts = []string{".json", ".yaml", ".yml", ".toml"}

// IsTokenFile reports whether a file name follows the token file naming
// conventions: tokens.<ext>, design-tokens.<ext> or *.tokens.<ext>.
func IsTokenFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(tokenExts, ext) {
		return false
	}
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return stem == "tokens" || stem == "design-tokens" || strings.HasSuffix(stem, ".tokens")
}

// Discover returns the token files under root, sorted. Hidden directories
// and node_modules are skipped. A root that is itself a file is returned
// as is, whatever its name.
func Discover(root string) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, err, "stat %s", root)
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsTokenFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeIO, err, "walk %s", root)
	}
	slices.Sort(files)
	return files, nil
}
