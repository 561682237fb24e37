package token

import "strings"

// Reserved keys. Every key starting with '$' is reserved; these are the ones
// the engine interprets.
const (
	KeyValue       = "$value"
	KeyType        = "$type"
	KeyExtensions  = "$extensions"
	KeyDescription = "$description"
	KeyDeprecated  = "$deprecated"
	KeySchema      = "$schema"
)

// IsReserved reports whether key is a '$'-prefixed property rather than a
// child node.
func IsReserved(key string) bool {
	return strings.HasPrefix(key, "$")
}

// KnownProperty reports whether a reserved key is one the engine understands.
func KnownProperty(key string) bool {
	switch key {
	case KeyValue, KeyType, KeyExtensions, KeyDescription, KeyDeprecated, KeySchema:
		return true
	}
	return false
}

// Type is a declared or inherited "$type".
type Type string

// Canonical token types.
const (
	TypeColor       Type = "color"
	TypeDimension   Type = "dimension"
	TypeNumber      Type = "number"
	TypeShadow      Type = "shadow"
	TypeFontFamily  Type = "fontFamily"
	TypeFontWeight  Type = "fontWeight"
	TypeDuration    Type = "duration"
	TypeCubicBezier Type = "cubicBezier"
	TypeString      Type = "string"
	TypeBoolean     Type = "boolean"
	TypeTypography  Type = "typography"
	TypeBorder      Type = "border"
	TypeTransition  Type = "transition"
	TypeGradient    Type = "gradient"
	TypeStrokeStyle Type = "strokeStyle"
)

var known = map[Type]bool{
	TypeColor: true, TypeDimension: true, TypeNumber: true, TypeShadow: true,
	TypeFontFamily: true, TypeFontWeight: true, TypeDuration: true,
	TypeCubicBezier: true, TypeString: true, TypeBoolean: true,
	TypeTypography: true, TypeBorder: true, TypeTransition: true,
	TypeGradient: true, TypeStrokeStyle: true,
}

// aliases maps legacy type names onto canonical ones.
var aliases = map[Type]Type{
	"opacity":      TypeNumber,
	"spacing":      TypeDimension,
	"radius":       TypeDimension,
	"borderRadius": TypeDimension,
	"elevation":    TypeShadow,
}

// Canonical returns the canonical type for t. Aliases are remapped; every
// other value, known or not, is returned unchanged.
func (t Type) Canonical() Type {
	if c, ok := aliases[t]; ok {
		return c
	}
	return t
}

// IsAlias reports whether t is a legacy alias.
func (t Type) IsAlias() bool {
	_, ok := aliases[t]
	return ok
}

// Known reports whether the canonical form of t is a recognized type.
func (t Type) Known() bool {
	return known[t.Canonical()]
}

// Composite reports whether values of this type may be written as raw
// strings that coercion turns into structured values.
func (t Type) Composite() bool {
	switch t.Canonical() {
	case TypeColor, TypeDimension, TypeShadow:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }
