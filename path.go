package gprint

import (
	"math"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/internal/stroke"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// FillRule selects how the interior of a path is determined.
type FillRule uint8

const (
	// FillRuleNonZero fills regions with a nonzero winding number.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills regions crossed an odd number of times.
	FillRuleEvenOdd
)

func (r FillRule) device() device.FillMode {
	if r == FillRuleEvenOdd {
		return device.FillModeAlternate
	}
	return device.FillModeWinding
}

func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

// Path is an ordered sequence of path elements in user space.
// A Path may be reused after Clear; drawing calls never retain it.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start, p.current = pt, pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadTo draws a quadratic Bezier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start, p.current = Point{}, Point{}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool {
	return p == nil || len(p.elements) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			q := m.TransformPoint(e.Point)
			out.MoveTo(q.X, q.Y)
		case LineTo:
			q := m.TransformPoint(e.Point)
			out.LineTo(q.X, q.Y)
		case QuadTo:
			c, q := m.TransformPoint(e.Control), m.TransformPoint(e.Point)
			out.QuadTo(c.X, c.Y, q.X, q.Y)
		case CubicTo:
			c1, c2 := m.TransformPoint(e.Control1), m.TransformPoint(e.Control2)
			q := m.TransformPoint(e.Point)
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// Bounds returns the bounding box of the path's points, control points
// included.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(q Point) {
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Rectangle adds a closed rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Ellipse adds a closed ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	// 4/3 * (sqrt(2) - 1)
	const k = 0.5522847498307936
	ox, oy := rx*k, ry*k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Circle adds a closed circle to the path.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		elements: append([]PathElement(nil), p.elements...),
		start:    p.start,
		current:  p.current,
	}
}

// strokePath converts p to the stroker's representation.
func (p *Path) strokePath() *stroke.Path {
	sp := &stroke.Path{}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			sp.MoveTo(stroke.Point(e.Point))
		case LineTo:
			sp.LineTo(stroke.Point(e.Point))
		case QuadTo:
			sp.QuadTo(stroke.Point(e.Control), stroke.Point(e.Point))
		case CubicTo:
			sp.CubicTo(stroke.Point(e.Control1), stroke.Point(e.Control2), stroke.Point(e.Point))
		case Close:
			sp.Close()
		}
	}
	return sp
}

// pathFromStroke converts a stroker path back to a Path.
func pathFromStroke(sp *stroke.Path) *Path {
	p := NewPath()
	sp.Walk(func(v stroke.Verb, pts []stroke.Point) {
		switch v {
		case stroke.MoveTo:
			p.MoveTo(pts[0].X, pts[0].Y)
		case stroke.LineTo:
			p.LineTo(pts[0].X, pts[0].Y)
		case stroke.QuadTo:
			p.QuadTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		case stroke.CubicTo:
			p.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case stroke.Close:
			p.Close()
		}
	})
	return p
}
