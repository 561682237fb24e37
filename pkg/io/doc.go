// Package io reads and writes token documents as JSON, YAML or TOML.
//
// The format follows the file extension (see [FormatOf]). Decoded documents
// are normalized so that the rest of the engine sees one shape regardless
// of the source format: objects are map[string]any, arrays are []any and
// every number is a float64.
//
//	doc, err := io.ReadFile("tokens.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.WriteFile("tokens.json", doc)
//
// [Discover] finds token files under a directory.
package io
