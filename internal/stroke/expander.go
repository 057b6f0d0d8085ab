package stroke

import "math"

// Cap is the shape of open subpath ends.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape of corners between segments.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style configures stroke expansion.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// DefaultTolerance is the flattening tolerance used unless SetTolerance
// overrides it, in path units.
const DefaultTolerance = 0.25

// Expander converts stroked paths to fill outlines.
// An Expander is not safe for concurrent use.
type Expander struct {
	style     Style
	tolerance float64

	forward  Path
	backward Path
	out      *Path

	startPt   Point
	startNorm Vec2
	startTan  Vec2
	lastPt    Point
	lastTan   Vec2
	lastNorm  Vec2

	joinThresh float64
	flat       []Point
}

// NewExpander returns an expander for style.
func NewExpander(style Style) *Expander {
	if style.MiterLimit <= 0 {
		style.MiterLimit = 10
	}
	return &Expander{style: style, tolerance: DefaultTolerance}
}

// SetTolerance sets the curve flattening tolerance.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the fill outline of src stroked with the expander style.
// The result must be filled with the nonzero winding rule.
func (e *Expander) Expand(src *Path) *Path {
	e.out = new(Path)
	e.forward.reset()
	e.backward.reset()
	e.joinThresh = 2 * e.tolerance / e.style.Width
	if e.style.Width <= 0 {
		return e.out
	}

	src.Walk(func(v Verb, pts []Point) {
		switch v {
		case MoveTo:
			e.finish()
			e.startPt = pts[0]
			e.lastPt = pts[0]
		case LineTo:
			e.lineTo(pts[0])
		case QuadTo:
			e.flat = flattenQuad(e.flat[:0], e.lastPt, pts[0], pts[1], e.tolerance)
			e.polyline(e.flat)
		case CubicTo:
			e.flat = flattenCubic(e.flat[:0], e.lastPt, pts[0], pts[1], pts[2], e.tolerance)
			e.polyline(e.flat)
		case Close:
			e.lineTo(e.startPt)
			e.finishClosed()
			e.lastPt = e.startPt
		}
	})
	e.finish()
	return e.out
}

func (e *Expander) polyline(pts []Point) {
	for _, p := range pts {
		e.lineTo(p)
	}
}

func (e *Expander) lineTo(p Point) {
	tangent := p.Sub(e.lastPt)
	if tangent.Dot(tangent) <= 1e-20 {
		return
	}
	e.join(tangent)
	e.lastTan = tangent

	norm := e.normal(tangent)
	e.forward.LineTo(p.Add(norm.Neg()))
	e.backward.LineTo(p.Add(norm))
	e.lastPt = p
	e.lastNorm = norm
}

// normal returns the half-width normal of tangent.
func (e *Expander) normal(tangent Vec2) Vec2 {
	return tangent.Perp().Scale(0.5 * e.style.Width / tangent.Length())
}

func (e *Expander) join(tan0 Vec2) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if e.forward.Empty() {
		e.forward.MoveTo(p0.Add(norm.Neg()))
		e.backward.MoveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly collinear: connect the sides without a join.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.LineTo(p0.Add(norm.Neg()))
		e.backward.LineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinMiter:
		if 2*hypot < (hypot+dot)*e.style.MiterLimit*e.style.MiterLimit {
			e.miter(p0, norm, ab, cd, cross)
		}
	case JoinRound:
		lastNorm := e.normal(ab)
		angle := math.Atan2(cross, dot)
		if angle > 0 {
			e.backward.LineTo(p0.Add(norm))
			arc(&e.forward, p0, lastNorm.Neg(), angle)
		} else {
			e.forward.LineTo(p0.Add(norm.Neg()))
			arc(&e.backward, p0, lastNorm, angle)
		}
	}
	e.forward.LineTo(p0.Add(norm.Neg()))
	e.backward.LineTo(p0.Add(norm))
}

// miter adds the miter point on the outer side of the corner at p0.
func (e *Expander) miter(p0 Point, norm, ab, cd Vec2, cross float64) {
	lastNorm := e.normal(ab)
	outer, inner := &e.forward, &e.backward
	if cross > 0 {
		lastNorm, norm = lastNorm.Neg(), norm.Neg()
	} else {
		outer, inner = inner, outer
	}
	from := p0.Add(lastNorm)
	to := p0.Add(norm)
	h := ab.Cross(to.Sub(from)) / cross
	outer.LineTo(to.Add(cd.Scale(-h)))
	inner.LineTo(p0)
}

// finish caps and emits an open subpath.
func (e *Expander) finish() {
	if e.forward.Empty() {
		return
	}
	e.out.Append(&e.forward)
	e.cap(e.lastPt, e.lastNorm.Neg(), false)
	e.appendReversed(&e.backward)
	e.cap(e.startPt, e.startNorm, true)

	e.forward.reset()
	e.backward.reset()
}

// finishClosed emits the outer and inner contours of a closed subpath.
func (e *Expander) finishClosed() {
	if e.forward.Empty() {
		return
	}
	e.join(e.startTan)

	e.out.Append(&e.forward)
	e.out.Close()

	e.out.MoveTo(e.backward.Last())
	e.appendReversed(&e.backward)
	e.out.Close()

	e.forward.reset()
	e.backward.reset()
}

// cap emits the cap at center. norm points from the side being drawn
// toward the path. When closing is set the contour is closed afterwards.
func (e *Expander) cap(center Point, norm Vec2, closing bool) {
	switch e.style.Cap {
	case CapRound:
		arc(e.out, center, norm, math.Pi)
	case CapSquare:
		e.out.LineTo(squarePoint(center, norm, 1, 1))
		e.out.LineTo(squarePoint(center, norm, -1, 1))
		if !closing {
			e.out.LineTo(squarePoint(center, norm, -1, 0))
		}
	default:
		if !closing {
			e.out.LineTo(center.Add(norm.Neg()))
		}
	}
	if closing {
		e.out.Close()
	}
}

// squarePoint maps (x, y) through the frame [norm, perp(norm)] at center.
func squarePoint(center Point, norm Vec2, x, y float64) Point {
	return Point{
		X: norm.X*x - norm.Y*y + center.X,
		Y: norm.Y*x + norm.X*y + center.Y,
	}
}

// appendReversed appends src minus its MoveTo, traversed backwards.
func (e *Expander) appendReversed(src *Path) {
	offs := make([]int, len(src.Verbs)+1)
	for i, v := range src.Verbs {
		offs[i+1] = offs[i] + v.NumPoints()
	}
	for i := len(src.Verbs) - 1; i >= 1; i-- {
		prev := src.Points[offs[i]-1]
		pts := src.Points[offs[i]:offs[i+1]]
		switch src.Verbs[i] {
		case LineTo:
			e.out.LineTo(prev)
		case QuadTo:
			e.out.QuadTo(pts[0], prev)
		case CubicTo:
			e.out.CubicTo(pts[1], pts[0], prev)
		}
	}
}

// arc sweeps angle radians around center starting at center+norm, using
// one cubic per quarter turn. Negative angles sweep clockwise.
func arc(out *Path, center Point, norm Vec2, angle float64) {
	n := max(int(math.Ceil(math.Abs(angle)/(math.Pi/2))), 1)
	step := angle / float64(n)
	a := norm.Angle()
	r := norm.Length()
	k := 4.0 / 3.0 * math.Tan(step/4)
	for range n {
		cos0, sin0 := math.Cos(a), math.Sin(a)
		cos1, sin1 := math.Cos(a+step), math.Sin(a+step)
		p0 := Point{X: center.X + r*cos0, Y: center.Y + r*sin0}
		p1 := Point{X: center.X + r*cos1, Y: center.Y + r*sin1}
		c1 := Point{X: p0.X - k*r*sin0, Y: p0.Y + k*r*cos0}
		c2 := Point{X: p1.X + k*r*sin1, Y: p1.Y - k*r*cos1}
		out.CubicTo(c1, c2, p1)
		a += step
	}
}
