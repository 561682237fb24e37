// Package project flattens resolved tokens into namespaced keys for styling
// code.
//
// A projection starts from the caller's fallback map, lays the resolved
// tokens over it, then the tokens of each selected enum variant, and
// finally the caller's escape-hatch overrides:
//
//	fallbacks < tokens < enum variants < overrides
//
// Source precedence among token documents (shared defaults, per-component
// config, inline overrides) is settled earlier, when documents are merged
// by [loader.Merge]; by the time values reach this package every path has
// exactly one value.
//
// Keys are the token path relative to [Options.Root], with dots replaced by
// dashes and prefixed by [Options.Namespace]:
//
//	button.size.small.padding  ->  button-size-small-padding
//
// [loader.Merge]: github.com/darianrosebrook/portfolio-sub007/pkg/loader.Merge
package project
