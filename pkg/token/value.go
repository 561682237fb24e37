package token

import (
	"encoding/json"

	"github.com/darianrosebrook/portfolio-sub007/pkg/color"
)

// Color is a structured color value.
//
// Components are in the native range of ColorSpace; for srgb they are in
// [0,1]. Alpha is nil when the source carried no alpha.
type Color struct {
	ColorSpace string     `json:"colorSpace" yaml:"colorSpace" toml:"colorSpace" msgpack:"colorSpace"`
	Components [3]float64 `json:"components" yaml:"components" toml:"components" msgpack:"components"`
	Alpha      *float64   `json:"alpha,omitempty" yaml:"alpha,omitempty" toml:"alpha,omitempty" msgpack:"alpha,omitempty"`
}

// SRGB builds an srgb Color from a [color.RGB]. A nil alpha is preserved.
func SRGB(c color.RGB, alpha *float64) Color {
	return Color{ColorSpace: color.SpaceSRGB, Components: c.Unit(), Alpha: alpha}
}

// RGB converts the color to sRGB. It reports false when the color space has
// no conversion.
func (c Color) RGB() (color.RGB, bool) {
	return color.ToSRGB(c.ColorSpace, c.Components)
}

// AlphaValue returns the alpha, or 1 when none was given.
func (c Color) AlphaValue() float64 {
	if c.Alpha == nil {
		return 1
	}
	return *c.Alpha
}

// Float returns a pointer to v, for optional fields.
func Float(v float64) *float64 { return &v }

// StrictUnits are the units accepted in strict contexts.
var StrictUnits = []string{"px", "rem"}

// LegacyUnits are the units accepted by legacy dimension strings.
var LegacyUnits = []string{"px", "rem", "em", "%", "vh", "vw", "vmin", "vmax"}

// Dimension is a number with a CSS length unit.
type Dimension struct {
	Value float64 `json:"value" yaml:"value" toml:"value" msgpack:"value"`
	Unit  string  `json:"unit" yaml:"unit" toml:"unit" msgpack:"unit"`
}

// Shadow is a single box shadow layer.
type Shadow struct {
	OffsetX Dimension  `json:"offsetX" yaml:"offsetX" toml:"offsetX" msgpack:"offsetX"`
	OffsetY Dimension  `json:"offsetY" yaml:"offsetY" toml:"offsetY" msgpack:"offsetY"`
	Blur    Dimension  `json:"blur" yaml:"blur" toml:"blur" msgpack:"blur"`
	Spread  *Dimension `json:"spread,omitempty" yaml:"spread,omitempty" toml:"spread,omitempty" msgpack:"spread,omitempty"`
	Color   Color      `json:"color" yaml:"color" toml:"color" msgpack:"color"`
	Inset   bool       `json:"inset,omitempty" yaml:"inset,omitempty" toml:"inset,omitempty" msgpack:"inset,omitempty"`
}

// Number extracts a float from any numeric JSON, YAML or TOML scalar.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Plain converts typed composites back into the plain map form used in
// documents, recursively. Other values are returned unchanged.
func Plain(v any) any {
	switch t := v.(type) {
	case Color:
		m := map[string]any{
			"colorSpace": t.ColorSpace,
			"components": []any{t.Components[0], t.Components[1], t.Components[2]},
		}
		if t.Alpha != nil {
			m["alpha"] = *t.Alpha
		}
		return m
	case Dimension:
		return map[string]any{"value": t.Value, "unit": t.Unit}
	case Shadow:
		m := map[string]any{
			"offsetX": Plain(t.OffsetX),
			"offsetY": Plain(t.OffsetY),
			"blur":    Plain(t.Blur),
			"color":   Plain(t.Color),
		}
		if t.Spread != nil {
			m["spread"] = Plain(*t.Spread)
		}
		if t.Inset {
			m["inset"] = true
		}
		return m
	case []Shadow:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = Plain(s)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Plain(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	}
	return v
}

// Clone deep-copies a document value. Typed composites are values and are
// copied as such; Color alpha pointers are duplicated.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case Color:
		if t.Alpha != nil {
			t.Alpha = Float(*t.Alpha)
		}
		return t
	case Shadow:
		if t.Spread != nil {
			s := *t.Spread
			t.Spread = &s
		}
		t.Color = Clone(t.Color).(Color)
		return t
	case []Shadow:
		out := make([]Shadow, len(t))
		for i, s := range t {
			out[i] = Clone(s).(Shadow)
		}
		return out
	}
	return v
}
