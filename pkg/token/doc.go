// Package token defines the design token data model shared by every stage
// of the engine.
//
// # Documents
//
// A token document is a JSON-shaped tree (map[string]any, []any, string,
// float64, bool). A node carrying a "$value" key is a token; any other object
// is a group. Keys starting with '$' are reserved and never form part of a
// path:
//
//	{
//	  "color": {
//	    "$type": "color",
//	    "primary": {"$value": "#3366cc"},
//	    "accent":  {"$value": "{color.primary}"}
//	  }
//	}
//
// # Values
//
// A "$value" is a literal, a reference of the exact form "{path}", or a
// composite. Raw composite strings ("#3366cc", "10px", "0 2px 4px black")
// are converted into [Color], [Dimension] and [Shadow] by the coerce
// package. [Classify] decides once which of these a value is.
//
// # Types
//
// [Type.Canonical] folds legacy aliases onto canonical types, so a token
// declared "opacity" is handled as "number" everywhere downstream.
package token
