package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

func sample() map[string]any {
	return map[string]any{
		"$schema": "https://example.com/tokens.schema.json",
		"color": map[string]any{
			"$type": "color",
			"primary": map[string]any{
				"$value":       "#3366cc",
				"$description": "brand",
				"$extensions":  map[string]any{"com.example": map[string]any{"alias": "{color.accent}"}},
			},
			"accent": map[string]any{"$value": "{color.primary}", "$deprecated": "use primary"},
		},
		"opacity": map[string]any{
			"half": map[string]any{"$type": "opacity", "$value": 0.5},
		},
		"font": map[string]any{
			"body": map[string]any{"$value": "Inter"},
		},
		"broken": "not an object",
	}
}

func TestBuild(t *testing.T) {
	ix := Build(sample())

	paths := make([]string, 0)
	for _, n := range ix.Tokens() {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"color.accent", "color.primary", "font.body", "opacity.half"}, paths)
	assert.Equal(t, 4, ix.Len())
	assert.Len(t, ix.Nodes(), 7)

	group, ok := ix.Lookup("color")
	require.True(t, ok)
	assert.Equal(t, KindGroup, group.Kind)
	assert.Equal(t, token.TypeColor, group.Type)
	assert.Nil(t, group.Value)

	primary, ok := ix.Lookup("color.primary")
	require.True(t, ok)
	assert.True(t, primary.IsToken())
	assert.Equal(t, token.TypeColor, primary.Type)
	assert.True(t, primary.Inherited)
	assert.Equal(t, "brand", primary.Description)
	assert.NotNil(t, primary.Extensions)

	accent, _ := ix.Lookup("color.accent")
	assert.Equal(t, "use primary", accent.Deprecated)

	half, _ := ix.Lookup("opacity.half")
	assert.Equal(t, token.TypeNumber, half.Type)
	assert.Equal(t, token.Type("opacity"), half.Declared)
	assert.False(t, half.Inherited)

	body, _ := ix.Lookup("font.body")
	assert.Equal(t, token.Type(""), body.Type)

	_, ok = ix.Lookup("$schema")
	assert.False(t, ok)
	_, ok = ix.Lookup("color.primary.$value")
	assert.False(t, ok)

	require.Len(t, ix.Malformed(), 1)
	assert.Equal(t, "broken", ix.Malformed()[0].Path)
}

func TestChildren(t *testing.T) {
	ix := Build(sample())
	var names []string
	for _, n := range ix.Children("color") {
		names = append(names, n.Path)
	}
	assert.Equal(t, []string{"color.accent", "color.primary"}, names)
	assert.Len(t, ix.Children(""), 3)
}

func TestRootType(t *testing.T) {
	ix := Build(map[string]any{
		"$type": "spacing",
		"sm":    map[string]any{"$value": "4px"},
	})
	sm, ok := ix.Lookup("sm")
	require.True(t, ok)
	assert.Equal(t, token.TypeDimension, sm.Type)
	assert.True(t, sm.Inherited)
}
