package color

import "math"

// XYZ is a CIE 1931 XYZ color relative to D65, with Y scaled to 0-100.
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIELAB color relative to D65. L is 0-100; a and b are unbounded.
type Lab struct {
	L, A, B float64
}

// LCh is the cylindrical form of [Lab]. H is in degrees, [0,360).
type LCh struct {
	L, C, H float64
}

// D65 is the reference white used by every XYZ conversion in this package.
var D65 = XYZ{X: 95.047, Y: 100.0, Z: 108.883}

var (
	// linear sRGB -> XYZ (D65), unit scale.
	mSRGBToXYZ = mat3{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}
	mXYZToSRGB = mSRGBToXYZ.inverse()
)

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// XYZ converts to CIE XYZ through linear sRGB.
func (c RGB) XYZ() XYZ {
	return c.Linear().XYZ()
}

// XYZ converts linear sRGB to CIE XYZ.
func (c LinearRGB) XYZ() XYZ {
	v := mSRGBToXYZ.mul([3]float64{c.R, c.G, c.B})
	return XYZ{X: v[0] * 100, Y: v[1] * 100, Z: v[2] * 100}
}

// Linear converts to linear sRGB.
func (c XYZ) Linear() LinearRGB {
	v := mXYZToSRGB.mul([3]float64{c.X / 100, c.Y / 100, c.Z / 100})
	return LinearRGB{R: v[0], G: v[1], B: v[2]}
}

// RGB converts to gamma-encoded sRGB.
func (c XYZ) RGB() RGB {
	return c.Linear().RGB()
}

// Lab converts to CIELAB using the D65 white.
func (c XYZ) Lab() Lab {
	fx := labF(c.X / D65.X)
	fy := labF(c.Y / D65.Y)
	fz := labF(c.Z / D65.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(f float64) float64 {
	if f3 := f * f * f; f3 > labEpsilon {
		return f3
	}
	return (116*f - 16) / labKappa
}

// XYZ converts back to CIE XYZ.
func (c Lab) XYZ() XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200
	return XYZ{
		X: labFInv(fx) * D65.X,
		Y: labFInv(fy) * D65.Y,
		Z: labFInv(fz) * D65.Z,
	}
}

// LCh converts to the cylindrical form.
func (c Lab) LCh() LCh {
	return LCh{
		L: c.L,
		C: math.Hypot(c.A, c.B),
		H: normalizeHue(degrees(math.Atan2(c.B, c.A))),
	}
}

// Lab converts back to rectangular form.
func (c LCh) Lab() Lab {
	sin, cos := math.Sincos(radians(c.H))
	return Lab{L: c.L, A: c.C * cos, B: c.C * sin}
}

// Lab converts sRGB to CIELAB.
func (c RGB) Lab() Lab { return c.XYZ().Lab() }

// LCh converts sRGB to CIE LCh.
func (c RGB) LCh() LCh { return c.Lab().LCh() }

// RGB converts CIELAB to sRGB.
func (c Lab) RGB() RGB { return c.XYZ().RGB() }

// RGB converts CIE LCh to sRGB.
func (c LCh) RGB() RGB { return c.Lab().RGB() }
