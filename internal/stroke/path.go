package stroke

import "math"

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Add returns p translated by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Neg() Vec2            { return Vec2{X: -v.X, Y: -v.Y} }
func (v Vec2) Dot(w Vec2) float64   { return v.X*w.X + v.Y*w.Y }
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Verb is a path command.
type Verb uint8

// Path verbs.
const (
	MoveTo Verb = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// NumPoints returns how many points the verb consumes.
func (v Verb) NumPoints() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

// Path is a sequence of verbs and their points.
// The zero value is an empty path ready to use.
type Path struct {
	Verbs  []Verb
	Points []Point
}

func (p *Path) MoveTo(pt Point) {
	p.Verbs = append(p.Verbs, MoveTo)
	p.Points = append(p.Points, pt)
}

func (p *Path) LineTo(pt Point) {
	p.Verbs = append(p.Verbs, LineTo)
	p.Points = append(p.Points, pt)
}

func (p *Path) QuadTo(c, pt Point) {
	p.Verbs = append(p.Verbs, QuadTo)
	p.Points = append(p.Points, c, pt)
}

func (p *Path) CubicTo(c1, c2, pt Point) {
	p.Verbs = append(p.Verbs, CubicTo)
	p.Points = append(p.Points, c1, c2, pt)
}

func (p *Path) Close() {
	p.Verbs = append(p.Verbs, Close)
}

// Empty reports whether the path has no verbs.
func (p *Path) Empty() bool {
	return len(p.Verbs) == 0
}

// Last returns the last point of the path.
func (p *Path) Last() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	return p.Points[len(p.Points)-1]
}

// Append adds all of o to p.
func (p *Path) Append(o *Path) {
	p.Verbs = append(p.Verbs, o.Verbs...)
	p.Points = append(p.Points, o.Points...)
}

// Walk calls fn for each verb with its points.
func (p *Path) Walk(fn func(v Verb, pts []Point)) {
	i := 0
	for _, v := range p.Verbs {
		n := v.NumPoints()
		fn(v, p.Points[i:i+n])
		i += n
	}
}

func (p *Path) reset() {
	p.Verbs = p.Verbs[:0]
	p.Points = p.Points[:0]
}

// flattenQuad appends the flattened quadratic p0-p1-p2 to dst, excluding p0.
func flattenQuad(dst []Point, p0, p1, p2 Point, tolerance float64) []Point {
	if distanceToLine(p1, p0, p2) < tolerance {
		return append(dst, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	dst = flattenQuad(dst, p0, q0, q2, tolerance)
	return flattenQuad(dst, q2, q1, p2, tolerance)
}

// flattenCubic appends the flattened cubic p0..p3 to dst, excluding p0.
func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	if max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < tolerance {
		return append(dst, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	dst = flattenCubic(dst, p0, q0, r0, s, tolerance)
	return flattenCubic(dst, s, r1, q2, p3, tolerance)
}

// distanceToLine returns the distance from p to segment ab.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Scale(t)))
}
