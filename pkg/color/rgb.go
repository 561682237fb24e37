package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// RGB is a gamma-encoded sRGB color with channels on the 0-255 scale.
// Channels are floats so that conversions round-trip without quantization.
type RGB struct {
	R, G, B float64
}

// LinearRGB is a linear-light sRGB color with channels on the 0-1 scale.
type LinearRGB struct {
	R, G, B float64
}

// ParseHex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" (the leading '#'
// is required, digits are case-insensitive). The returned alpha is in [0,1]
// and is 1 when the string carries no alpha digits.
func ParseHex(s string) (RGB, float64, error) {
	if !strings.HasPrefix(s, "#") {
		return RGB{}, 0, fmt.Errorf("hex color %q: missing '#'", s)
	}
	digits := s[1:]

	switch len(digits) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range digits {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		digits = expanded.String()
	case 6, 8:
	default:
		return RGB{}, 0, fmt.Errorf("hex color %q: want 3, 4, 6 or 8 digits", s)
	}

	var ch [4]float64
	ch[3] = 255
	for i := 0; i < len(digits)/2; i++ {
		v, err := strconv.ParseUint(digits[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGB{}, 0, fmt.Errorf("hex color %q: %w", s, err)
		}
		ch[i] = float64(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, ch[3] / 255, nil
}

// Hex encodes the color as "#rrggbb", clamping channels to 0-255 and
// rounding to the nearest integer.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

// HexAlpha encodes the color as "#rrggbbaa" with alpha in [0,1].
func (c RGB) HexAlpha(alpha float64) string {
	return c.Hex() + fmt.Sprintf("%02x", channelByte(alpha*255))
}

func channelByte(v float64) uint8 {
	b, err := safecast.Round[uint8](clamp(v, 0, 255))
	if err != nil {
		return 0
	}
	return b
}

// Unit returns the channels scaled to [0,1] without clamping.
func (c RGB) Unit() [3]float64 {
	return [3]float64{c.R / 255, c.G / 255, c.B / 255}
}

// FromUnit builds an RGB from channels on the 0-1 scale.
func FromUnit(v [3]float64) RGB {
	return RGB{R: v[0] * 255, G: v[1] * 255, B: v[2] * 255}
}

// Linear decodes the sRGB transfer curve.
func (c RGB) Linear() LinearRGB {
	u := c.Unit()
	return LinearRGB{R: SRGBToLinear(u[0]), G: SRGBToLinear(u[1]), B: SRGBToLinear(u[2])}
}

// RGB applies the sRGB transfer curve.
func (c LinearRGB) RGB() RGB {
	return FromUnit([3]float64{LinearToSRGB(c.R), LinearToSRGB(c.G), LinearToSRGB(c.B)})
}

// SRGBToLinear converts one gamma-encoded channel in [0,1] to linear light.
// Negative inputs are mirrored so extended-range values survive a round trip.
func SRGBToLinear(c float64) float64 {
	a := math.Abs(c)
	if a <= 0.04045 {
		return c / 12.92
	}
	return math.Copysign(math.Pow((a+0.055)/1.055, 2.4), c)
}

// LinearToSRGB converts one linear-light channel to gamma-encoded [0,1].
func LinearToSRGB(c float64) float64 {
	a := math.Abs(c)
	if a <= 0.0031308 {
		return c * 12.92
	}
	return math.Copysign(1.055*math.Pow(a, 1/2.4)-0.055, c)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// normalizeHue maps an angle in degrees onto [0,360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func radians(deg float64) float64 { return deg * math.Pi / 180 }
