package coerce

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

var dimensionPattern = regexp.MustCompile(`^(-?[\d.]+)(px|rem|em|%|vh|vw|vmin|vmax)$`)

// Dimension converts a dimension string ("10px", "-2rem", "0"), a
// {value, unit} object or a typed [token.Dimension].
func Dimension(raw any) (token.Dimension, bool) {
	switch v := raw.(type) {
	case token.Dimension:
		return v, true
	case string:
		return parseDimension(strings.TrimSpace(v))
	case map[string]any:
		value, ok := token.Number(v["value"])
		if !ok {
			return token.Dimension{}, false
		}
		unit, ok := v["unit"].(string)
		if !ok || unit == "" {
			return token.Dimension{}, false
		}
		return token.Dimension{Value: value, Unit: unit}, true
	}
	return token.Dimension{}, false
}

func parseDimension(s string) (token.Dimension, bool) {
	if s == "0" {
		return token.Dimension{Value: 0, Unit: "px"}, true
	}
	m := dimensionPattern.FindStringSubmatch(s)
	if m == nil {
		return token.Dimension{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return token.Dimension{}, false
	}
	return token.Dimension{Value: v, Unit: m[2]}, true
}
