package color

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in    string
		want  RGB
		alpha float64
	}{
		{"#3366CC", RGB{51, 102, 204}, 1},
		{"#36c", RGB{51, 102, 204}, 1},
		{"#3366cc80", RGB{51, 102, 204}, 128.0 / 255},
		{"#0008", RGB{0, 0, 0}, 136.0 / 255},
		{"#FFFFFF", RGB{255, 255, 255}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, alpha, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.alpha, alpha, 1e-9)
		})
	}
}

func TestParseHexRejects(t *testing.T) {
	for _, in := range []string{"", "336699", "#12", "#12345", "#1234567", "#ggg", "#12 456"} {
		_, _, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#3366cc", RGB{51, 102, 204}.Hex())
	assert.Equal(t, "#000000", RGB{-4, 0.2, 0.49}.Hex())
	assert.Equal(t, "#ffffff", RGB{300, 254.6, 255}.Hex())
	assert.Equal(t, "#00000080", RGB{}.HexAlpha(0.5))
}

func TestUnit(t *testing.T) {
	c, _, err := ParseHex("#3366CC")
	require.NoError(t, err)
	u := c.Unit()
	assert.InDelta(t, 0.2, u[0], 1e-12)
	assert.InDelta(t, 0.4, u[1], 1e-12)
	assert.InDelta(t, 0.8, u[2], 1e-12)
}

func TestTransferCurve(t *testing.T) {
	assert.InDelta(t, 0.0, SRGBToLinear(0), 1e-12)
	assert.InDelta(t, 1.0, SRGBToLinear(1), 1e-12)
	assert.InDelta(t, 0.21404, SRGBToLinear(0.5), 1e-5)
	assert.InDelta(t, 0.0031308*12.92, LinearToSRGB(0.0031308), 1e-9)
	assert.InDelta(t, -0.21404, SRGBToLinear(-0.5), 1e-5)
}

func TestHSLKnownValues(t *testing.T) {
	red := RGB{255, 0, 0}.HSL()
	assert.InDelta(t, 0, red.H, 1e-9)
	assert.InDelta(t, 1, red.S, 1e-9)
	assert.InDelta(t, 0.5, red.L, 1e-9)

	gray := RGB{128, 128, 128}.HSL()
	assert.Zero(t, gray.H)
	assert.Zero(t, gray.S)

	assert.Equal(t, "#00ff00", HSL{H: 120, S: 1, L: 0.5}.RGB().Hex())
	assert.Equal(t, "#0000ff", HSL{H: 240, S: 1, L: 0.5}.RGB().Hex())
}

func TestHSVKnownValues(t *testing.T) {
	green := RGB{0, 255, 0}.HSV()
	assert.InDelta(t, 120, green.H, 1e-9)
	assert.InDelta(t, 1, green.S, 1e-9)
	assert.InDelta(t, 1, green.V, 1e-9)

	assert.Equal(t, HSV{}, RGB{}.HSV())
	assert.Equal(t, "#ff00ff", HSV{H: 300, S: 1, V: 1}.RGB().Hex())
}

func TestLabKnownValues(t *testing.T) {
	white := RGB{255, 255, 255}.Lab()
	assert.InDelta(t, 100, white.L, 1e-3)
	assert.InDelta(t, 0, white.A, 1e-3)
	assert.InDelta(t, 0, white.B, 1e-3)

	black := RGB{}.Lab()
	assert.InDelta(t, 0, black.L, 1e-9)

	red := RGB{255, 0, 0}.Lab()
	assert.InDelta(t, 53.24, red.L, 0.01)
	assert.InDelta(t, 80.09, red.A, 0.01)
	assert.InDelta(t, 67.20, red.B, 0.01)
}

func TestXYZWhite(t *testing.T) {
	w := RGB{255, 255, 255}.XYZ()
	assert.InDelta(t, D65.X, w.X, 1e-3)
	assert.InDelta(t, D65.Y, w.Y, 1e-3)
	assert.InDelta(t, D65.Z, w.Z, 1e-3)
}

func TestOKLabKnownValues(t *testing.T) {
	white := RGB{255, 255, 255}.OKLab()
	assert.InDelta(t, 1, white.L, 1e-4)
	assert.InDelta(t, 0, white.A, 1e-4)
	assert.InDelta(t, 0, white.B, 1e-4)

	red := RGB{255, 0, 0}.OKLCh()
	assert.InDelta(t, 0.62796, red.L, 1e-3)
	assert.InDelta(t, 0.25768, red.C, 1e-3)
	assert.InDelta(t, 29.23, red.H, 0.05)
}

func TestCAM02KnownValues(t *testing.T) {
	white := RGB{255, 255, 255}.CAM02()
	assert.InDelta(t, 100, white.J, 0.01)
	assert.Less(t, white.C, 5.0)

	black := RGB{}.CAM02()
	assert.Zero(t, black.J)
	assert.Equal(t, "#000000", black.RGB().Hex())

	red := RGB{255, 0, 0}.CAM02()
	assert.Greater(t, red.C, 50.0)
	assert.InDelta(t, math.Pow(DefaultViewingConditions.fl, 0.25), red.M/red.C, 1e-9)
	assert.InDelta(t, red.S, 100*math.Sqrt(red.M/red.Q), 1e-9)
}

func TestViewingConditionsSurround(t *testing.T) {
	dark := NewViewingConditions(D65, 64/math.Pi/5, 20, SurroundDark)
	c := RGB{200, 120, 40}.XYZ()
	back := dark.Inverse(dark.Forward(c))
	assert.InDelta(t, c.X, back.X, 1e-6)
	assert.InDelta(t, c.Y, back.Y, 1e-6)
	assert.InDelta(t, c.Z, back.Z, 1e-6)
}

func TestSpaces(t *testing.T) {
	c := RGB{51, 102, 204}
	for _, space := range []string{SpaceSRGB, SpaceSRGBLinear, SpaceXYZD65, SpaceLab, SpaceLCh, SpaceOKLab, SpaceOKLCh} {
		t.Run(space, func(t *testing.T) {
			comps, ok := FromSRGB(space, c)
			require.True(t, ok)
			back, ok := ToSRGB(space, comps)
			require.True(t, ok)
			assert.Equal(t, c.Hex(), back.Hex())
		})
	}

	_, ok := ToSRGB(SpaceDisplayP3, [3]float64{1, 0, 0})
	assert.False(t, ok)
	_, ok = FromSRGB("cmyk", c)
	assert.False(t, ok)

	assert.True(t, KnownSpace("rec2020"))
	assert.False(t, KnownSpace("cmyk"))
}

func TestMatrixInverse(t *testing.T) {
	id := mSRGBToXYZ.times(mXYZToSRGB)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, id[i][j], 1e-12)
		}
	}
}
