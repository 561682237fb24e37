package color

// Space names as they appear in a token's colorSpace field.
const (
	SpaceSRGB        = "srgb"
	SpaceSRGBLinear  = "srgb-linear"
	SpaceDisplayP3   = "display-p3"
	SpaceA98RGB      = "a98-rgb"
	SpaceProPhotoRGB = "prophoto-rgb"
	SpaceRec2020     = "rec2020"
	SpaceXYZD50      = "xyz-d50"
	SpaceXYZD65      = "xyz-d65"
	SpaceOKLab       = "oklab"
	SpaceOKLCh       = "oklch"
	SpaceLab         = "lab"
	SpaceLCh         = "lch"
)

// Spaces lists every color space a token may declare, in a stable order.
var Spaces = []string{
	SpaceSRGB, SpaceSRGBLinear, SpaceDisplayP3, SpaceA98RGB, SpaceProPhotoRGB,
	SpaceRec2020, SpaceXYZD50, SpaceXYZD65, SpaceOKLab, SpaceOKLCh, SpaceLab, SpaceLCh,
}

// KnownSpace reports whether name is a declarable color space.
func KnownSpace(name string) bool {
	for _, s := range Spaces {
		if s == name {
			return true
		}
	}
	return false
}

// ToSRGB converts components expressed in the named space to sRGB. The
// second result is false for spaces this package cannot convert.
//
// Component ranges are those of the space: srgb and srgb-linear use [0,1],
// xyz-d65 uses Y in [0,1], lab/lch use L in [0,100], oklab/oklch use L in
// [0,1], and hues are in degrees.
func ToSRGB(space string, c [3]float64) (RGB, bool) {
	switch space {
	case SpaceSRGB:
		return FromUnit(c), true
	case SpaceSRGBLinear:
		return LinearRGB{R: c[0], G: c[1], B: c[2]}.RGB(), true
	case SpaceXYZD65:
		return XYZ{X: c[0] * 100, Y: c[1] * 100, Z: c[2] * 100}.RGB(), true
	case SpaceLab:
		return Lab{L: c[0], A: c[1], B: c[2]}.RGB(), true
	case SpaceLCh:
		return LCh{L: c[0], C: c[1], H: c[2]}.RGB(), true
	case SpaceOKLab:
		return OKLab{L: c[0], A: c[1], B: c[2]}.RGB(), true
	case SpaceOKLCh:
		return OKLCh{L: c[0], C: c[1], H: c[2]}.RGB(), true
	}
	return RGB{}, false
}

// FromSRGB is the inverse of [ToSRGB].
func FromSRGB(space string, c RGB) ([3]float64, bool) {
	switch space {
	case SpaceSRGB:
		return c.Unit(), true
	case SpaceSRGBLinear:
		l := c.Linear()
		return [3]float64{l.R, l.G, l.B}, true
	case SpaceXYZD65:
		x := c.XYZ()
		return [3]float64{x.X / 100, x.Y / 100, x.Z / 100}, true
	case SpaceLab:
		l := c.Lab()
		return [3]float64{l.L, l.A, l.B}, true
	case SpaceLCh:
		l := c.LCh()
		return [3]float64{l.L, l.C, l.H}, true
	case SpaceOKLab:
		l := c.OKLab()
		return [3]float64{l.L, l.A, l.B}, true
	case SpaceOKLCh:
		l := c.OKLCh()
		return [3]float64{l.L, l.C, l.H}, true
	}
	return [3]float64{}, false
}
