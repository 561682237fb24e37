package project

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/color"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Format renders a resolved value as a CSS string. Objects other than
// borders cannot be rendered as a single string and report false; see
// [Flatten].
func Format(v any, t token.Type) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case token.Color:
		return FormatColor(x), true
	case token.Dimension:
		return FormatDimension(x), true
	case token.Shadow:
		return formatShadow(x), true
	case []token.Shadow:
		layers := make([]string, len(x))
		for i, s := range x {
			layers[i] = formatShadow(s)
		}
		return strings.Join(layers, ", "), true
	case []any:
		return formatList(x, t.Canonical())
	case map[string]any:
		if t.Canonical() == token.TypeBorder {
			return formatBorder(x)
		}
		return "", false
	case nil:
		return "", false
	}
	if f, ok := token.Number(v); ok {
		return FormatNumber(f), true
	}
	return fmt.Sprint(v), true
}

// FormatNumber writes f in its shortest exact decimal form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDimension writes "10px", "1.5rem".
func FormatDimension(d token.Dimension) string {
	return FormatNumber(d.Value) + d.Unit
}

// FormatColor writes srgb colors as hex, with an alpha byte only when alpha
// is below 1, and other spaces in CSS Color 4 syntax.
func FormatColor(c token.Color) string {
	if c.ColorSpace == color.SpaceSRGB {
		rgb := color.FromUnit(c.Components)
		if a := c.AlphaValue(); a < 1 {
			return rgb.HexAlpha(a)
		}
		return rgb.Hex()
	}

	comps := make([]string, 3)
	for i, v := range c.Components {
		comps[i] = FormatNumber(round(v, 5))
	}
	var b strings.Builder
	switch c.ColorSpace {
	case color.SpaceLab, color.SpaceLCh, color.SpaceOKLab, color.SpaceOKLCh:
		b.WriteString(c.ColorSpace)
		b.WriteByte('(')
	default:
		b.WriteString("color(")
		b.WriteString(c.ColorSpace)
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(comps, " "))
	if c.Alpha != nil && *c.Alpha < 1 {
		b.WriteString(" / ")
		b.WriteString(FormatNumber(round(*c.Alpha, 5)))
	}
	b.WriteByte(')')
	return b.String()
}

func formatShadow(s token.Shadow) string {
	parts := make([]string, 0, 6)
	if s.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts, FormatDimension(s.OffsetX), FormatDimension(s.OffsetY), FormatDimension(s.Blur))
	if s.Spread != nil {
		parts = append(parts, FormatDimension(*s.Spread))
	}
	parts = append(parts, FormatColor(s.Color))
	return strings.Join(parts, " ")
}

func formatList(list []any, t token.Type) (string, bool) {
	switch t {
	case token.TypeCubicBezier:
		if len(list) != 4 {
			return "", false
		}
		nums := make([]string, 4)
		for i, e := range list {
			f, ok := token.Number(e)
			if !ok {
				return "", false
			}
			nums[i] = FormatNumber(f)
		}
		return "cubic-bezier(" + strings.Join(nums, ", ") + ")", true
	case token.TypeFontFamily:
		names := make([]string, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok {
				return "", false
			}
			names[i] = quoteFamily(s)
		}
		return strings.Join(names, ", "), true
	}
	parts := make([]string, len(list))
	for i, e := range list {
		s, ok := Format(e, "")
		if !ok {
			return "", false
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), true
}

var genericFamilies = []string{
	"serif", "sans-serif", "monospace", "cursive", "fantasy",
	"system-ui", "ui-serif", "ui-sans-serif", "ui-monospace", "ui-rounded",
}

// quoteFamily quotes family names with spaces unless already quoted.
// Generic families are never quoted.
func quoteFamily(name string) string {
	if slices.Contains(genericFamilies, name) || !strings.ContainsAny(name, " \t") ||
		strings.HasPrefix(name, `"`) || strings.HasPrefix(name, "'") {
		return name
	}
	return strconv.Quote(name)
}

// formatBorder writes the "width style color" shorthand.
func formatBorder(m map[string]any) (string, bool) {
	var parts []string
	for _, k := range []string{"width", "style", "color"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		s, ok := Format(v, "")
		if !ok {
			return "", false
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// Flatten renders v under key. Values [Format] cannot render as a single
// string, such as typography objects, are expanded into one entry per
// field, "key-field". Fields that cannot be rendered are skipped.
func Flatten(key string, v any, t token.Type, emit func(key, value string)) {
	if s, ok := Format(v, t); ok {
		emit(key, s)
		return
	}
	m, ok := v.(map[string]any)
	if !ok {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		Flatten(key+"-"+k, m[k], fieldType(t, k), emit)
	}
}

// fieldType names the type of the composite fields that need one to be
// formatted.
func fieldType(parent token.Type, field string) token.Type {
	switch {
	case parent.Canonical() == token.TypeTypography && field == "fontFamily":
		return token.TypeFontFamily
	case parent.Canonical() == token.TypeTransition && field == "timingFunction":
		return token.TypeCubicBezier
	}
	return ""
}

func round(v float64, places int) float64 {
	p, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return p
}
