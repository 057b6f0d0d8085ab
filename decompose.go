package gprint

import "math"

// awSnap is how close to 1 the average-width scale must be to count as
// uniform.
const awSnap = 0.001

// Decomposition splits a user-to-device transform F into a software
// shape transform and an axis-aligned scale (SX, SY) that the device
// applies itself.
//
// Two factorizations are available:
//
//	F = Shape * Scale(SX, SY)   scale in source space, then shape
//	F = Scale(SX, SY) * Buffer  shape into a buffer, device scales it
//
// Shape maps the unit vectors to unit vectors. Buffer is the transform
// used to render into an intermediate raster that the device then scales
// by (SX, SY).
type Decomposition struct {
	Shape  Matrix
	Buffer Matrix
	SX, SY float64

	// AWScale is SX / SY, snapped to 1 within 0.1%. Devices take it as
	// the single anisotropic hint for font width.
	AWScale float64
}

// Decompose splits f. It reports false when f collapses an axis, in which
// case nothing should be drawn.
//
// When clamp is true the scale factors are kept at 1 or above, which
// keeps an intermediate raster no finer than device resolution. The two
// factorizations still reproduce f exactly.
func Decompose(f Matrix, clamp bool) (Decomposition, bool) {
	sx, sy := f.Columns()
	if sx == 0 || sy == 0 || math.IsNaN(sx) || math.IsNaN(sy) {
		return Decomposition{}, false
	}
	if clamp && !f.AxisAligned() {
		sx, sy = math.Max(sx, 1), math.Max(sy, 1)
	}
	return Decomposition{
		Shape:   f.Multiply(Scale(1/sx, 1/sy)),
		Buffer:  Scale(1/sx, 1/sy).Multiply(f),
		SX:      sx,
		SY:      sy,
		AWScale: averageWidthScale(sx, sy),
	}, true
}

// Recompose returns Scale(SX, SY) * Buffer, which equals the decomposed
// transform.
func (d Decomposition) Recompose() Matrix {
	return Scale(d.SX, d.SY).Multiply(d.Buffer)
}

func averageWidthScale(sx, sy float64) float64 {
	aw := sx / sy
	if math.Abs(aw-1) <= awSnap {
		return 1
	}
	return aw
}
