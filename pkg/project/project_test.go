package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/resolve"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

func parse(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func resolved(t *testing.T, sources ...loader.Source) []*resolve.Result {
	t.Helper()
	doc, err := loader.Merge(sources...)
	require.NoError(t, err)
	return resolve.New(index.Build(doc)).ResolveAll()
}

const shared = `{
  "button": {
    "size": {
      "$type": "dimension",
      "small": {"padding": {"$value": "4px"}},
      "large": {"padding": {"$value": "12px"}}
    },
    "color": {
      "$type": "color",
      "bg": {"$value": "#3366cc"},
      "text": {"$value": "{button.color.bg}"}
    },
    "radius": {"$type": "radius", "$value": "2px"}
  }
}`

func TestKey(t *testing.T) {
	o := Options{Namespace: "button", Root: "button"}
	assert.Equal(t, "button-size-small-padding", o.Key("button.size.small.padding"))
	assert.Equal(t, "button", o.Key("button"))
	assert.Equal(t, "size-small", Options{}.Key("size.small"))
	assert.Equal(t, "button-other-x", Options{Namespace: "button", Root: "button"}.Key("other.x"))
}

func TestProjectPrecedence(t *testing.T) {
	results := resolved(t,
		loader.JSON("shared.json", parse(t, shared)),
		loader.JSON("component.json", parse(t, `{"button": {"radius": {"$value": "4px"}}}`)),
		loader.Inline("inline", map[string]any{"button.color.bg": "#ff0000"}),
	)

	p, err := Project(results, Options{
		Namespace: "button",
		Root:      "button",
		Fallbacks: map[string]any{
			"button-radius":        "0",
			"button-focus-outline": "2px solid blue",
		},
		Overrides: map[string]any{"button-size-large-padding": "16px"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"button-size-small-padding": "4px",
		"button-size-large-padding": "16px",
		"button-color-bg":           "#ff0000",
		"button-color-text":         "#ff0000",
		"button-radius":             "4px",
		"button-focus-outline":      "2px solid blue",
	}, p.Values)
	assert.Equal(t, OriginFallback, p.Origins["button-focus-outline"])
	assert.Equal(t, OriginToken, p.Origins["button-radius"])
	assert.Equal(t, OriginOverride, p.Origins["button-size-large-padding"])
	assert.Empty(t, p.Skipped)
}

func TestProjectEnums(t *testing.T) {
	results := resolved(t, loader.JSON("shared.json", parse(t, shared)))
	size := Enum{Name: "size", Allowed: []string{"small", "large"}, Default: "small"}

	tests := []struct {
		input string
		want  string
	}{
		{"large", "12px"},
		{"small", "4px"},
		{"huge", "4px"},
		{"", "4px"},
	}
	for _, tt := range tests {
		p, err := Project(results, Options{
			Namespace: "button",
			Root:      "button",
			Enums:     []Enum{size},
			Select:    map[string]string{"size": tt.input},
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Values["button-padding"], "input %q", tt.input)
		assert.Equal(t, OriginVariant, p.Origins["button-padding"])
		assert.Contains(t, size.Allowed, p.Enums["size"])
	}
}

func TestOptionsValidate(t *testing.T) {
	bad := []Options{
		{Namespace: "has space"},
		{Root: "a..b"},
		{Enums: []Enum{{Name: "size", Allowed: []string{"s"}, Default: "m"}}},
		{Enums: []Enum{{Name: "size"}}},
		{Enums: []Enum{{Name: "a.b", Allowed: []string{"x"}, Default: "x"}}},
		{Enums: []Enum{
			{Name: "size", Allowed: []string{"s"}, Default: "s"},
			{Name: "size", Allowed: []string{"s"}, Default: "s"},
		}},
	}
	for _, o := range bad {
		err := o.Validate()
		require.Error(t, err, "%+v", o)
		assert.True(t, errors.Is(err, errors.CodeInvalidInput))

		_, err = Project(nil, o)
		assert.Error(t, err)
	}
}

func TestProjectSkipsFailures(t *testing.T) {
	results := resolved(t, loader.Inline("inline", map[string]any{
		"a.ok":     "1px",
		"a.broken": "{nowhere}",
		"b.other":  "x",
	}))
	p, err := Project(results, Options{
		Root:      "a",
		Fallbacks: map[string]any{"broken": "fallback"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.broken"}, p.Skipped)
	assert.Equal(t, "fallback", p.Values["broken"])
	assert.Equal(t, "1px", p.Values["ok"])
	assert.NotContains(t, p.Values, "b-other")
}

func TestFormat(t *testing.T) {
	half := token.Float(0.5)
	tests := []struct {
		v    any
		t    token.Type
		want string
	}{
		{token.Color{ColorSpace: "srgb", Components: [3]float64{0.2, 0.4, 0.8}}, token.TypeColor, "#3366cc"},
		{token.Color{ColorSpace: "srgb", Components: [3]float64{0, 0, 0}, Alpha: half}, token.TypeColor, "#00000080"},
		{token.Color{ColorSpace: "srgb", Components: [3]float64{1, 1, 1}, Alpha: token.Float(1)}, token.TypeColor, "#ffffff"},
		{token.Color{ColorSpace: "oklch", Components: [3]float64{0.7, 0.1, 200}}, token.TypeColor, "oklch(0.7 0.1 200)"},
		{token.Color{ColorSpace: "display-p3", Components: [3]float64{1, 0, 0}, Alpha: half}, token.TypeColor, "color(display-p3 1 0 0 / 0.5)"},
		{token.Dimension{Value: 1.5, Unit: "rem"}, token.TypeDimension, "1.5rem"},
		{0.5, token.TypeNumber, "0.5"},
		{400.0, token.TypeFontWeight, "400"},
		{true, token.TypeBoolean, "true"},
		{"200ms", token.TypeDuration, "200ms"},
		{[]any{0.4, 0.0, 0.2, 1.0}, token.TypeCubicBezier, "cubic-bezier(0.4, 0, 0.2, 1)"},
		{[]any{"Helvetica Neue", "Inter", "sans-serif"}, token.TypeFontFamily, `"Helvetica Neue", Inter, sans-serif`},
		{
			token.Shadow{
				OffsetX: token.Dimension{Unit: "px"},
				OffsetY: token.Dimension{Value: 2, Unit: "px"},
				Blur:    token.Dimension{Value: 4, Unit: "px"},
				Color:   token.Color{ColorSpace: "srgb", Alpha: half},
				Inset:   true,
			},
			token.TypeShadow, "inset 0px 2px 4px #00000080",
		},
		{
			map[string]any{"color": token.Color{ColorSpace: "srgb", Components: [3]float64{1, 1, 1}}, "width": token.Dimension{Value: 1, Unit: "px"}, "style": "solid"},
			token.TypeBorder, "1px solid #ffffff",
		},
	}
	for _, tt := range tests {
		got, ok := Format(tt.v, tt.t)
		require.True(t, ok, "%v", tt.v)
		assert.Equal(t, tt.want, got)
	}

	_, ok := Format(map[string]any{"fontSize": "1rem"}, token.TypeTypography)
	assert.False(t, ok)
}

func TestFlattenTypography(t *testing.T) {
	got := map[string]string{}
	Flatten("body", map[string]any{
		"fontFamily": []any{"Inter", "sans-serif"},
		"fontSize":   token.Dimension{Value: 16, Unit: "px"},
		"lineHeight": 1.5,
	}, token.TypeTypography, func(k, v string) { got[k] = v })

	assert.Equal(t, map[string]string{
		"body-fontFamily": "Inter, sans-serif",
		"body-fontSize":   "16px",
		"body-lineHeight": "1.5",
	}, got)
}

func TestCSS(t *testing.T) {
	p := &Projection{Values: map[string]string{"b-x": "2px", "a-y": "#ffffff"}}
	assert.Equal(t, ":root {\n  --a-y: #ffffff;\n  --b-x: 2px;\n}\n", p.CSS(""))
	assert.Equal(t, ".btn {\n  --a-y: #ffffff;\n  --b-x: 2px;\n}\n", p.CSS(".btn"))
}
