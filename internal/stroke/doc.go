// Package stroke converts stroked paths into filled outlines.
//
// Stroke expansion builds two offset polylines at ±width/2 along the path
// (the forward and backward sides), joins consecutive segments with the
// configured Join, and closes open subpaths with the configured Cap:
//
//  1. Forward side goes forward
//  2. End cap connects forward to backward
//  3. Backward side is reversed
//  4. Start cap closes the outline
//
// Closed subpaths produce two contours, outer and inner, which must be
// filled with the nonzero winding rule.
//
// Dash splits a path into dashes before expansion. Dashing and expansion
// both flatten curves with the same tolerance.
//
//	p := new(stroke.Path)
//	p.MoveTo(stroke.Point{X: 0, Y: 0})
//	p.LineTo(stroke.Point{X: 100, Y: 0})
//
//	dashed := stroke.Dash(p, []float64{6, 3}, 0, 0.1)
//	outline := stroke.NewExpander(stroke.Style{Width: 2, Cap: stroke.CapRound}).Expand(dashed)
//
// The expansion follows tiny-skia (path/src/stroker.rs) and kurbo
// (src/stroke.rs).
package stroke
