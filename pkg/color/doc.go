// Package color converts colors between the color spaces used by design
// tokens.
//
// # Overview
//
// Every conversion is a pure function from one typed record to another. The
// hub is [RGB], a gamma-encoded sRGB color with channels on the 0-255 scale.
// Each supported space converts to and from RGB:
//
//	RGB ⇄ hex string
//	RGB ⇄ HSL, RGB ⇄ HSV
//	RGB ⇄ XYZ ⇄ Lab ⇄ LCh
//	RGB ⇄ OKLab ⇄ OKLCh
//	XYZ ⇄ CAM02 (CIECAM02 appearance model)
//
// Conversions do not clamp: an out-of-gamut intermediate value is carried
// through so that X → Y → X reproduces X within floating-point tolerance.
// Only [RGB.Hex] clamps, because a hex string cannot express anything else.
//
// # Reference White and Linearization
//
// XYZ uses the D65 reference white with Y scaled to 0-100. sRGB
// linearization uses the conventional piecewise curve: linear below the
// 0.0031308 breakpoint with scale 12.92, a 2.4 power above it.
//
// # Token Color Spaces
//
// [ToSRGB] and [FromSRGB] map the component triples stored in token values
// (colorSpace "srgb", "srgb-linear", "xyz-d65", "lab", "lch", "oklab",
// "oklch") to and from RGB. Spaces outside that set report ok == false.
//
// This package has no knowledge of tokens, paths or documents.
package color
