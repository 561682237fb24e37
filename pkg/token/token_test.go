package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darianrosebrook/portfolio-sub007/pkg/color"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want Type
	}{
		{"opacity", TypeNumber},
		{"spacing", TypeDimension},
		{"radius", TypeDimension},
		{"borderRadius", TypeDimension},
		{"elevation", TypeShadow},
		{TypeColor, TypeColor},
		{"mystery", "mystery"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Canonical(), tt.in)
	}
	assert.True(t, Type("opacity").IsAlias())
	assert.True(t, Type("opacity").Known())
	assert.False(t, Type("mystery").Known())
	assert.True(t, Type("elevation").Composite())
	assert.False(t, TypeFontFamily.Composite())
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		in   string
		path string
		ok   bool
	}{
		{"{a.b}", "a.b", true},
		{"  {color.primary}\n", "color.primary", true},
		{"{ a.b }", "a.b", true},
		{"{\tcolor.primary\n}", "color.primary", true},
		{"{a.b} extra", "", false},
		{"x{a.b}", "", false},
		{"{}", "", false},
		{"{ }", "", false},
		{"{a{b}}", "", false},
		{"{a}{b}", "", false},
		{"a.b", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, ok := ParseReference(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestHasInterpolation(t *testing.T) {
	assert.True(t, HasInterpolation("{a.b} extra"))
	assert.True(t, HasInterpolation("calc({space.md} * 2)"))
	assert.False(t, HasInterpolation("{a.b}"))
	assert.False(t, HasInterpolation("plain"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    any
		typ  Type
		want Class
	}{
		{"number", 1.5, TypeNumber, Literal},
		{"bool", true, TypeBoolean, Literal},
		{"font", "Inter", TypeFontFamily, Literal},
		{"reference", "{a.b}", TypeColor, Reference},
		{"interpolated", "{a.b} extra", TypeColor, Interpolated},
		{"hex", "#fff", TypeColor, RawComposite},
		{"alias dimension", "4px", "spacing", RawComposite},
		{"object", map[string]any{"value": 1.0}, TypeDimension, RawComposite},
		{"array", []any{"a"}, TypeFontFamily, RawComposite},
		{"color", Color{ColorSpace: "srgb"}, TypeColor, Composite},
		{"shadows", []Shadow{{}}, TypeShadow, Composite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.v, tt.typ))
		})
	}
}

func TestReferences(t *testing.T) {
	v := map[string]any{
		"b": "{color.b}",
		"a": []any{"{color.a}", "text", map[string]any{"x": "{deep.ref}"}},
		"c": "{mixed} text",
		"d": "{ spaced.ref }",
	}
	assert.Equal(t, []string{"color.a", "deep.ref", "color.b", "spaced.ref"}, References(v))
	assert.Equal(t, []string{"{mixed} text"}, Interpolations(v))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "a.b.c", Join("a", "", "b", "c"))
	assert.Equal(t, []string{"a", "b"}, Split("a.b"))
	assert.Nil(t, Split(""))
	assert.Equal(t, "size-small-padding", Dashed("size.small.padding"))
	assert.Equal(t, "a.b", Parent("a.b.c"))
	assert.Equal(t, "", Parent("a"))
	assert.True(t, Within("button.size", "button"))
	assert.False(t, Within("buttons.size", "button"))
	assert.Equal(t, "size.small", Trim("button.size.small", "button"))
	assert.Equal(t, "other.x", Trim("other.x", "button"))
}

func TestColor(t *testing.T) {
	c := SRGB(color.RGB{R: 51, G: 102, B: 204}, nil)
	assert.Equal(t, "srgb", c.ColorSpace)
	assert.InDelta(t, 0.4, c.Components[1], 1e-12)
	assert.Equal(t, 1.0, c.AlphaValue())

	rgb, ok := c.RGB()
	require.True(t, ok)
	assert.Equal(t, "#3366cc", rgb.Hex())

	_, ok = Color{ColorSpace: "display-p3"}.RGB()
	assert.False(t, ok)
}

func TestPlainAndClone(t *testing.T) {
	s := Shadow{
		OffsetX: Dimension{0, "px"},
		OffsetY: Dimension{2, "px"},
		Blur:    Dimension{4, "px"},
		Color:   Color{ColorSpace: "srgb", Alpha: Float(0.1)},
	}
	plain := Plain([]Shadow{s}).([]any)
	require.Len(t, plain, 1)
	m := plain[0].(map[string]any)
	assert.Equal(t, map[string]any{"value": 2.0, "unit": "px"}, m["offsetY"])
	assert.Equal(t, 0.1, m["color"].(map[string]any)["alpha"])
	assert.NotContains(t, m, "spread")

	c := Clone(s).(Shadow)
	*c.Color.Alpha = 0.9
	assert.Equal(t, 0.1, *s.Color.Alpha)

	doc := map[string]any{"a": map[string]any{"$value": "x"}}
	cp := Clone(doc).(map[string]any)
	cp["a"].(map[string]any)["$value"] = "y"
	assert.Equal(t, "x", doc["a"].(map[string]any)["$value"])
}

func TestNumber(t *testing.T) {
	for _, v := range []any{1.5, float32(1.5), 2, int64(2), uint64(2)} {
		_, ok := Number(v)
		assert.True(t, ok, "%T", v)
	}
	_, ok := Number("1")
	assert.False(t, ok)
}
