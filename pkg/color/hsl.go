package color

import "math"

// HSL is hue (degrees, [0,360)), saturation and lightness (both [0,1]).
type HSL struct {
	H, S, L float64
}

// HSV is hue (degrees, [0,360)), saturation and value (both [0,1]).
type HSV struct {
	H, S, V float64
}

// hueOf returns the hexcone hue shared by HSL and HSV, plus max, min and chroma.
func hueOf(c RGB) (h, max, min, d float64) {
	u := c.Unit()
	r, g, b := u[0], u[1], u[2]
	max = math.Max(r, math.Max(g, b))
	min = math.Min(r, math.Min(g, b))
	d = max - min
	if d == 0 {
		return 0, max, min, 0
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return normalizeHue(h * 60), max, min, d
}

// HSL converts to hue/saturation/lightness. Achromatic colors get hue 0.
func (c RGB) HSL() HSL {
	h, max, min, d := hueOf(c)
	l := (max + min) / 2
	if d == 0 {
		return HSL{H: 0, S: 0, L: l}
	}
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	return HSL{H: h, S: s, L: l}
}

// RGB converts back to sRGB.
func (c HSL) RGB() RGB {
	if c.S == 0 {
		return FromUnit([3]float64{c.L, c.L, c.L})
	}
	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q
	h := normalizeHue(c.H) / 360
	return FromUnit([3]float64{
		hueToChannel(p, q, h+1.0/3),
		hueToChannel(p, q, h),
		hueToChannel(p, q, h-1.0/3),
	})
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HSV converts to hue/saturation/value. Achromatic colors get hue 0.
func (c RGB) HSV() HSV {
	h, max, _, d := hueOf(c)
	if max == 0 {
		return HSV{H: 0, S: 0, V: 0}
	}
	return HSV{H: h, S: d / max, V: max}
}

// RGB converts back to sRGB.
func (c HSV) RGB() RGB {
	h := normalizeHue(c.H) / 60
	chroma := c.V * c.S
	x := chroma * (1 - math.Abs(math.Mod(h, 2)-1))
	m := c.V - chroma

	var r, g, b float64
	switch int(h) {
	case 0:
		r, g, b = chroma, x, 0
	case 1:
		r, g, b = x, chroma, 0
	case 2:
		r, g, b = 0, chroma, x
	case 3:
		r, g, b = 0, x, chroma
	case 4:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return FromUnit([3]float64{r + m, g + m, b + m})
}
