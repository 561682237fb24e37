package color

import "math"

// CAM02 holds CIECAM02 appearance correlates.
type CAM02 struct {
	J float64 // lightness
	C float64 // chroma
	H float64 // hue angle in degrees, [0,360)
	Q float64 // brightness
	M float64 // colorfulness
	S float64 // saturation
}

// Surround describes the viewing surround.
type Surround struct {
	F  float64 // degree of adaptation factor
	C  float64 // impact of surround
	Nc float64 // chromatic induction factor
}

// Standard CIECAM02 surrounds.
var (
	SurroundAverage = Surround{F: 1.0, C: 0.69, Nc: 1.0}
	SurroundDim     = Surround{F: 0.9, C: 0.59, Nc: 0.9}
	SurroundDark    = Surround{F: 0.8, C: 0.525, Nc: 0.8}
)

// ViewingConditions holds the inputs of the appearance model together with
// the values derived from them. Build one with [NewViewingConditions]; the
// zero value is not usable.
type ViewingConditions struct {
	White               XYZ
	AdaptingLuminance   float64 // L_A in cd/m²
	BackgroundLuminance float64 // Y_b
	Surround            Surround

	dRGB [3]float64
	fl   float64
	n    float64
	nbb  float64
	ncb  float64
	z    float64
	aw   float64
}

var (
	mCAT02 = mat3{
		{0.7328, 0.4296, -0.1624},
		{-0.7036, 1.6975, 0.0061},
		{0.0030, 0.0136, 0.9834},
	}
	mHPE = mat3{
		{0.38971, 0.68898, -0.07868},
		{-0.22981, 1.18340, 0.04641},
		{0, 0, 1},
	}
	mCAT02Inv     = mCAT02.inverse()
	mHPEFromCAT02 = mHPE.times(mCAT02Inv)
	mCAT02FromHPE = mHPEFromCAT02.inverse()
)

// DefaultViewingConditions is D65 white, L_A = 64/π/5, Y_b = 20 and an
// average surround.
var DefaultViewingConditions = NewViewingConditions(D65, 64/math.Pi/5, 20, SurroundAverage)

// NewViewingConditions derives the model constants for the given inputs.
func NewViewingConditions(white XYZ, la, yb float64, s Surround) ViewingConditions {
	vc := ViewingConditions{
		White:               white,
		AdaptingLuminance:   la,
		BackgroundLuminance: yb,
		Surround:            s,
	}

	rgbW := mCAT02.mul([3]float64{white.X, white.Y, white.Z})
	d := clamp(s.F*(1-(1/3.6)*math.Exp((-la-42)/92)), 0, 1)
	for i := range rgbW {
		vc.dRGB[i] = d*white.Y/rgbW[i] + 1 - d
	}

	k := 1 / (5*la + 1)
	k4 := k * k * k * k
	vc.fl = 0.2*k4*(5*la) + 0.1*(1-k4)*(1-k4)*math.Cbrt(5*la)
	vc.n = yb / white.Y
	vc.nbb = 0.725 * math.Pow(1/vc.n, 0.2)
	vc.ncb = vc.nbb
	vc.z = 1.48 + math.Sqrt(vc.n)

	var adapted [3]float64
	for i := range rgbW {
		adapted[i] = vc.dRGB[i] * rgbW[i]
	}
	p := mHPEFromCAT02.mul(adapted)
	vc.aw = (2*vc.compress(p[0]) + vc.compress(p[1]) + vc.compress(p[2])/20 - 0.305) * vc.nbb
	return vc
}

// compress is the post-adaptation non-linear response compression.
func (vc ViewingConditions) compress(x float64) float64 {
	t := math.Pow(vc.fl*math.Abs(x)/100, 0.42)
	return math.Copysign(400*t/(27.13+t), x) + 0.1
}

// expand inverts compress.
func (vc ViewingConditions) expand(x float64) float64 {
	y := x - 0.1
	a := math.Abs(y)
	return math.Copysign(100/vc.fl*math.Pow(27.13*a/(400-a), 1/0.42), y)
}

func (vc ViewingConditions) chromaScale() float64 {
	return math.Pow(1.64-math.Pow(0.29, vc.n), 0.73)
}

// Forward computes the appearance correlates of an XYZ color.
func (vc ViewingConditions) Forward(c XYZ) CAM02 {
	rgb := mCAT02.mul([3]float64{c.X, c.Y, c.Z})
	for i := range rgb {
		rgb[i] *= vc.dRGB[i]
	}
	p := mHPEFromCAT02.mul(rgb)
	ra, ga, ba := vc.compress(p[0]), vc.compress(p[1]), vc.compress(p[2])

	a := ra - 12*ga/11 + ba/11
	b := (ra + ga - 2*ba) / 9
	h := normalizeHue(degrees(math.Atan2(b, a)))

	achromatic := (2*ra + ga + ba/20 - 0.305) * vc.nbb
	if achromatic <= 1e-12 {
		return CAM02{H: h}
	}

	j := 100 * math.Pow(achromatic/vc.aw, vc.Surround.C*vc.z)
	q := (4 / vc.Surround.C) * math.Sqrt(j/100) * (vc.aw + 4) * math.Pow(vc.fl, 0.25)

	et := 0.25 * (math.Cos(radians(h)+2) + 3.8)
	t := (50000.0 / 13 * vc.Surround.Nc * vc.ncb * et * math.Hypot(a, b)) / (ra + ga + 21.0/20*ba)
	chroma := math.Pow(t, 0.9) * math.Sqrt(j/100) * vc.chromaScale()
	m := chroma * math.Pow(vc.fl, 0.25)

	var s float64
	if q > 0 {
		s = 100 * math.Sqrt(m/q)
	}
	return CAM02{J: j, C: chroma, H: h, Q: q, M: m, S: s}
}

// Inverse reconstructs XYZ from lightness J, chroma C and hue H. The other
// correlates are ignored.
func (vc ViewingConditions) Inverse(c CAM02) XYZ {
	if c.J <= 0 {
		return XYZ{}
	}
	hr := radians(c.H)
	t := math.Pow(c.C/(math.Sqrt(c.J/100)*vc.chromaScale()), 1/0.9)
	et := 0.25 * (math.Cos(hr+2) + 3.8)
	achromatic := vc.aw * math.Pow(c.J/100, 1/(vc.Surround.C*vc.z))

	p2 := achromatic/vc.nbb + 0.305
	const p3 = 21.0 / 20

	var a, b float64
	if t != 0 {
		p1 := 50000.0 / 13 * vc.Surround.Nc * vc.ncb * et / t
		sin, cos := math.Sincos(hr)
		if math.Abs(sin) >= math.Abs(cos) {
			p4 := p1 / sin
			b = p2 * (2 + p3) * (460.0 / 1403) /
				(p4 + (2+p3)*(220.0/1403)*(cos/sin) - 27.0/1403 + p3*(6300.0/1403))
			a = b * cos / sin
		} else {
			p5 := p1 / cos
			a = p2 * (2 + p3) * (460.0 / 1403) /
				(p5 + (2+p3)*(220.0/1403) - (27.0/1403-p3*(6300.0/1403))*(sin/cos))
			b = a * sin / cos
		}
	}

	ra := 460.0/1403*p2 + 451.0/1403*a + 288.0/1403*b
	ga := 460.0/1403*p2 - 891.0/1403*a - 261.0/1403*b
	ba := 460.0/1403*p2 - 220.0/1403*a - 6300.0/1403*b

	rgb := mCAT02FromHPE.mul([3]float64{vc.expand(ra), vc.expand(ga), vc.expand(ba)})
	for i := range rgb {
		rgb[i] /= vc.dRGB[i]
	}
	v := mCAT02Inv.mul(rgb)
	return XYZ{X: v[0], Y: v[1], Z: v[2]}
}

// CAM02 computes appearance correlates under [DefaultViewingConditions].
func (c RGB) CAM02() CAM02 { return DefaultViewingConditions.Forward(c.XYZ()) }

// RGB converts appearance correlates back to sRGB under [DefaultViewingConditions].
func (c CAM02) RGB() RGB { return DefaultViewingConditions.Inverse(c).RGB() }
