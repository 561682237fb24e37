package coerce

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/color"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

var (
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*([^()]*?)\s*\)$`)
)

// named covers the keywords that show up in legacy shadow strings.
var named = map[string]token.Color{
	"black":       {ColorSpace: color.SpaceSRGB, Components: [3]float64{0, 0, 0}},
	"white":       {ColorSpace: color.SpaceSRGB, Components: [3]float64{1, 1, 1}},
	"transparent": {ColorSpace: color.SpaceSRGB, Components: [3]float64{0, 0, 0}, Alpha: token.Float(0)},
}

// Color converts a hex string, an rgb()/rgba() string, a structured color
// object or an already typed [token.Color]. It reports false when raw is
// none of these.
func Color(raw any) (token.Color, bool) {
	switch v := raw.(type) {
	case token.Color:
		return v, true
	case string:
		return parseColorString(strings.TrimSpace(v))
	case map[string]any:
		return colorObject(v)
	}
	return token.Color{}, false
}

func parseColorString(s string) (token.Color, bool) {
	if hexPattern.MatchString(s) {
		rgb, alpha, err := color.ParseHex(s)
		if err != nil {
			return token.Color{}, false
		}
		var a *float64
		if n := len(s) - 1; n == 4 || n == 8 {
			a = token.Float(alpha)
		}
		return token.SRGB(rgb, a), true
	}
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		return parseRGBArgs(m[1])
	}
	if c, ok := named[strings.ToLower(s)]; ok {
		return token.Clone(c).(token.Color), true
	}
	return token.Color{}, false
}

// parseRGBArgs handles "r, g, b", "r, g, b, a", "r g b" and "r g b / a".
// Channels are 0-255 numbers or percentages; alpha is a fraction or a
// percentage.
func parseRGBArgs(args string) (token.Color, bool) {
	var alphaPart string
	if i := strings.IndexByte(args, '/'); i >= 0 {
		alphaPart = strings.TrimSpace(args[i+1:])
		args = args[:i]
	}
	fields := strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	switch {
	case len(fields) == 4 && alphaPart == "":
		alphaPart = fields[3]
		fields = fields[:3]
	case len(fields) != 3:
		return token.Color{}, false
	}

	var ch [3]float64
	for i, f := range fields {
		v, ok := parseChannel(f, 255)
		if !ok {
			return token.Color{}, false
		}
		ch[i] = v / 255
	}

	var alpha *float64
	if alphaPart != "" {
		a, ok := parseChannel(alphaPart, 1)
		if !ok || a < 0 || a > 1 {
			return token.Color{}, false
		}
		alpha = token.Float(a)
	}
	return token.Color{ColorSpace: color.SpaceSRGB, Components: ch, Alpha: alpha}, true
}

// parseChannel reads a number or a percentage of scale.
func parseChannel(s string, scale float64) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v = v / 100 * scale
	}
	return v, true
}

func colorObject(m map[string]any) (token.Color, bool) {
	space, ok := m["colorSpace"].(string)
	if !ok {
		return token.Color{}, false
	}
	var comps [3]float64
	switch list := m["components"].(type) {
	case []any:
		if len(list) != 3 {
			return token.Color{}, false
		}
		for i, e := range list {
			f, ok := token.Number(e)
			if !ok {
				return token.Color{}, false
			}
			comps[i] = f
		}
	case []float64:
		if len(list) != 3 {
			return token.Color{}, false
		}
		copy(comps[:], list)
	default:
		return token.Color{}, false
	}
	c := token.Color{ColorSpace: space, Components: comps}
	if a, present := m["alpha"]; present {
		f, ok := token.Number(a)
		if !ok {
			return token.Color{}, false
		}
		c.Alpha = token.Float(f)
	}
	return c, true
}
