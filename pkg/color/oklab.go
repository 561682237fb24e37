package color

import "math"

// OKLab is Björn Ottosson's perceptual Lab space. L is 0-1.
type OKLab struct {
	L, A, B float64
}

// OKLCh is the cylindrical form of [OKLab]. H is in degrees, [0,360).
type OKLCh struct {
	L, C, H float64
}

var (
	// linear sRGB -> LMS
	mOKLabM1 = mat3{
		{0.4122214708, 0.5363325363, 0.0514459929},
		{0.2119034982, 0.6806995451, 0.1073969566},
		{0.0883024619, 0.2817188376, 0.6299787005},
	}
	// cube-rooted LMS -> OKLab
	mOKLabM2 = mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
	mOKLabM1Inv = mOKLabM1.inverse()
	mOKLabM2Inv = mOKLabM2.inverse()
)

// OKLab converts linear sRGB to OKLab.
func (c LinearRGB) OKLab() OKLab {
	lms := mOKLabM1.mul([3]float64{c.R, c.G, c.B})
	for i := range lms {
		lms[i] = math.Cbrt(lms[i])
	}
	v := mOKLabM2.mul(lms)
	return OKLab{L: v[0], A: v[1], B: v[2]}
}

// Linear converts OKLab to linear sRGB.
func (c OKLab) Linear() LinearRGB {
	lms := mOKLabM2Inv.mul([3]float64{c.L, c.A, c.B})
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}
	v := mOKLabM1Inv.mul(lms)
	return LinearRGB{R: v[0], G: v[1], B: v[2]}
}

// OKLCh converts to the cylindrical form.
func (c OKLab) OKLCh() OKLCh {
	return OKLCh{
		L: c.L,
		C: math.Hypot(c.A, c.B),
		H: normalizeHue(degrees(math.Atan2(c.B, c.A))),
	}
}

// OKLab converts back to rectangular form.
func (c OKLCh) OKLab() OKLab {
	sin, cos := math.Sincos(radians(c.H))
	return OKLab{L: c.L, A: c.C * cos, B: c.C * sin}
}

// OKLab converts sRGB to OKLab.
func (c RGB) OKLab() OKLab { return c.Linear().OKLab() }

// OKLCh converts sRGB to OKLCh.
func (c RGB) OKLCh() OKLCh { return c.OKLab().OKLCh() }

// RGB converts OKLab to sRGB.
func (c OKLab) RGB() RGB { return c.Linear().RGB() }

// RGB converts OKLCh to sRGB.
func (c OKLCh) RGB() RGB { return c.OKLab().RGB() }
