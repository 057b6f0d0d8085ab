package gprint

import (
	"math"

	"github.com/gogpu/gprint/device"
)

// PathEmitter streams paths into device path-building calls.
//
// Coordinates are multiplied by the precision factor and rounded, and the
// device world transform is scaled by the reciprocal for the duration of
// the path, so devices with integer coordinates keep sub-unit precision.
// Quadratic segments are raised to cubics.
type PathEmitter struct {
	dev       device.Device
	precision float64
}

// NewPathEmitter returns an emitter for dev. Precision values below 1
// mean no scaling.
func NewPathEmitter(dev device.Device, precision float64) *PathEmitter {
	if precision < 1 {
		precision = 1
	}
	return &PathEmitter{dev: dev, precision: precision}
}

// Precision returns the fixed-point factor.
func (e *PathEmitter) Precision() float64 {
	return e.precision
}

// Emit makes p, in device units, the current device path. The fill mode is
// set before the path begins. The device world transform is restored
// before Emit returns; the path stays current for FillPath, StrokePath or
// SelectClipPath.
func (e *PathEmitter) Emit(p *Path, rule FillRule) {
	dev := e.dev
	dev.SetFillMode(rule.device())

	saved := dev.WorldTransform()
	dev.ScaleWorldTransform(1/e.precision, 1/e.precision)
	defer dev.SetWorldTransform(saved)

	dev.BeginPath()
	var start, cur Point
	open := false
	ensure := func(q Point) {
		if !open {
			dev.MoveTo(e.fixed(q.X), e.fixed(q.Y))
			start, cur, open = q, q, true
		}
	}
	for _, elem := range p.Elements() {
		switch s := elem.(type) {
		case MoveTo:
			dev.MoveTo(e.fixed(s.Point.X), e.fixed(s.Point.Y))
			start, cur, open = s.Point, s.Point, true
		case LineTo:
			ensure(cur)
			dev.LineTo(e.fixed(s.Point.X), e.fixed(s.Point.Y))
			cur = s.Point
		case QuadTo:
			ensure(cur)
			c1, c2 := quadToCubic(cur, s.Control, s.Point)
			e.bezier(c1, c2, s.Point)
			cur = s.Point
		case CubicTo:
			ensure(cur)
			e.bezier(s.Control1, s.Control2, s.Point)
			cur = s.Point
		case Close:
			if open {
				dev.CloseFigure()
				cur = start
			}
		}
	}
	dev.EndPath()
}

func (e *PathEmitter) bezier(c1, c2, p Point) {
	e.dev.BezierTo(e.fixed(c1.X), e.fixed(c1.Y), e.fixed(c2.X), e.fixed(c2.Y), e.fixed(p.X), e.fixed(p.Y))
}

func (e *PathEmitter) fixed(v float64) float64 {
	return math.Round(v * e.precision)
}

// quadToCubic returns the cubic control points of the quadratic curve
// p0, q, p1.
func quadToCubic(p0, q, p1 Point) (Point, Point) {
	return p0.Lerp(q, 2.0/3), p1.Lerp(q, 2.0/3)
}
