package coerce

import (
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/color"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// opaqueBlack is used when a shadow string names no parsable color.
var opaqueBlack = token.Color{ColorSpace: color.SpaceSRGB, Components: [3]float64{0, 0, 0}}

// Shadow converts a CSS shadow string, a shadow object, an array of either,
// or a typed shadow. A comma-separated string or an array yields
// []token.Shadow; anything else yields a single token.Shadow.
func Shadow(raw any) (any, bool) {
	switch v := raw.(type) {
	case token.Shadow, []token.Shadow:
		return v, true
	case string:
		segments := splitTopLevel(strings.TrimSpace(v), ',')
		if len(segments) == 0 {
			return nil, false
		}
		out := make([]token.Shadow, 0, len(segments))
		for _, seg := range segments {
			s, ok := parseShadow(seg)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		if len(out) == 1 {
			return out[0], true
		}
		return out, true
	case map[string]any:
		return shadowObject(v)
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		out := make([]token.Shadow, 0, len(v))
		for _, e := range v {
			s, ok := Shadow(e)
			if !ok {
				return nil, false
			}
			switch s := s.(type) {
			case token.Shadow:
				out = append(out, s)
			case []token.Shadow:
				out = append(out, s...)
			}
		}
		return out, true
	}
	return nil, false
}

// parseShadow parses one layer: [inset] <x> <y> [<blur> [<spread>]] [<color>] [inset].
// The color may also lead.
func parseShadow(s string) (token.Shadow, bool) {
	fields := splitTopLevel(strings.TrimSpace(s), ' ')
	var sh token.Shadow

	if len(fields) > 0 && strings.EqualFold(fields[0], "inset") {
		sh.Inset = true
		fields = fields[1:]
	}
	if n := len(fields); n > 0 && strings.EqualFold(fields[n-1], "inset") {
		sh.Inset = true
		fields = fields[:n-1]
	}

	var lead *token.Color
	if len(fields) > 0 {
		if _, isDim := parseDimension(fields[0]); !isDim {
			c, ok := parseColorString(fields[0])
			if !ok {
				return token.Shadow{}, false
			}
			lead = &c
			fields = fields[1:]
		}
	}

	var dims []token.Dimension
	for len(fields) > 0 && len(dims) < 4 {
		d, ok := parseDimension(fields[0])
		if !ok {
			break
		}
		dims = append(dims, d)
		fields = fields[1:]
	}
	if len(dims) < 2 {
		return token.Shadow{}, false
	}
	if len(fields) > 0 {
		if _, extra := parseDimension(fields[0]); extra {
			return token.Shadow{}, false
		}
	}
	sh.OffsetX, sh.OffsetY = dims[0], dims[1]
	sh.Blur = token.Dimension{Value: 0, Unit: "px"}
	if len(dims) > 2 {
		sh.Blur = dims[2]
	}
	if len(dims) > 3 {
		sh.Spread = &dims[3]
	}

	rest := strings.Join(fields, " ")
	switch {
	case lead != nil && rest != "":
		return token.Shadow{}, false
	case lead != nil:
		sh.Color = *lead
	default:
		sh.Color = opaqueBlack
		if c, ok := parseColorString(rest); ok {
			sh.Color = c
		}
	}
	return sh, true
}

func shadowObject(m map[string]any) (any, bool) {
	var sh token.Shadow
	var ok bool
	if sh.OffsetX, ok = shadowDimension(m["offsetX"]); !ok {
		return nil, false
	}
	if sh.OffsetY, ok = shadowDimension(m["offsetY"]); !ok {
		return nil, false
	}
	if sh.Blur, ok = shadowDimension(m["blur"]); !ok {
		return nil, false
	}
	if raw, present := m["spread"]; present {
		d, ok := shadowDimension(raw)
		if !ok {
			return nil, false
		}
		sh.Spread = &d
	}
	if sh.Color, ok = Color(m["color"]); !ok {
		return nil, false
	}
	if raw, present := m["inset"]; present {
		b, isBool := raw.(bool)
		if !isBool {
			return nil, false
		}
		sh.Inset = b
	}
	return sh, true
}

// shadowDimension accepts the bare number 0 besides the usual forms.
func shadowDimension(raw any) (token.Dimension, bool) {
	if f, ok := token.Number(raw); ok && f == 0 {
		return token.Dimension{Value: 0, Unit: "px"}, true
	}
	return Dimension(raw)
}

// splitTopLevel splits s on sep outside parentheses, dropping empty parts.
// A space separator also splits on tabs and newlines.
func splitTopLevel(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	isSep := func(r rune) bool {
		if sep == ' ' {
			return r == ' ' || r == '\t' || r == '\n' || r == '\r'
		}
		return r == sep
	}
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isSep(r):
			if p := strings.TrimSpace(s[start:i]); p != "" {
				parts = append(parts, p)
			}
			start = i + len(string(r))
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}
