package stroke

import "math"

// Dash splits src into the "on" intervals of pattern, starting offset
// units into the pattern. Curves are flattened with tolerance. Odd-length
// patterns repeat twice to form a full on/off cycle. Zero-length dashes
// produce zero-length subpaths, which round and square caps turn into dots.
//
// A pattern with no positive total length returns src unchanged.
func Dash(src *Path, pattern []float64, offset, tolerance float64) *Path {
	total := 0.0
	for _, d := range pattern {
		total += max(d, 0)
	}
	if len(pattern)%2 == 1 {
		total *= 2
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	if total <= 0 {
		return src
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	phase := math.Mod(offset, total)
	if phase < 0 {
		phase += total
	}

	out := new(Path)
	for _, sp := range flattenSubpaths(src, tolerance) {
		d := newDashState(pattern, phase)
		dashPolyline(out, sp.pts, sp.closed, &d)
	}
	return out
}

type subpath struct {
	pts    []Point
	closed bool
}

// flattenSubpaths converts src to polylines. Closed subpaths end with
// their first point.
func flattenSubpaths(src *Path, tolerance float64) []subpath {
	var subs []subpath
	var cur []Point
	flush := func(closed bool) {
		if len(cur) > 1 || (len(cur) == 1 && closed) {
			if closed && cur[len(cur)-1] != cur[0] {
				cur = append(cur, cur[0])
			}
			subs = append(subs, subpath{pts: cur, closed: closed})
		}
		cur = nil
	}
	src.Walk(func(v Verb, pts []Point) {
		switch v {
		case MoveTo:
			flush(false)
			cur = []Point{pts[0]}
		case LineTo:
			cur = append(cur, pts[0])
		case QuadTo:
			cur = flattenQuad(cur, last(cur), pts[0], pts[1], tolerance)
		case CubicTo:
			cur = flattenCubic(cur, last(cur), pts[0], pts[1], pts[2], tolerance)
		case Close:
			start := Point{}
			if len(cur) > 0 {
				start = cur[0]
			}
			flush(true)
			cur = []Point{start}
		}
	})
	flush(false)
	return subs
}

func last(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	return pts[len(pts)-1]
}

type dashState struct {
	pattern   []float64
	idx       int
	remaining float64
	on        bool
}

func newDashState(pattern []float64, phase float64) dashState {
	d := dashState{pattern: pattern, on: true}
	for phase >= max(pattern[d.idx], 0) && pattern[d.idx] > 0 {
		phase -= pattern[d.idx]
		d.advance()
	}
	d.remaining = max(pattern[d.idx], 0) - phase
	return d
}

func (d *dashState) advance() {
	d.idx = (d.idx + 1) % len(d.pattern)
	d.remaining = max(d.pattern[d.idx], 0)
	d.on = !d.on
}

// dashPolyline appends the dashes of pts to out.
func dashPolyline(out *Path, pts []Point, closed bool, d *dashState) {
	var dashes [][]Point
	var cur []Point
	startedOn := d.on
	toggles := 0
	if d.on {
		cur = []Point{pts[0]}
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > d.remaining || (d.remaining == 0 && d.on) {
			pos += d.remaining
			p := a
			if segLen > 0 {
				p = a.Lerp(b, pos/segLen)
			}
			if d.on {
				cur = append(cur, p)
				dashes = append(dashes, cur)
				cur = nil
			} else {
				cur = []Point{p}
			}
			d.advance()
			toggles++
		}
		d.remaining -= segLen - pos
		if d.on {
			cur = append(cur, b)
		}
	}
	if d.on && len(cur) > 1 {
		dashes = append(dashes, cur)
	}

	if closed && toggles == 0 && startedOn {
		out.MoveTo(pts[0])
		for _, p := range pts[1 : len(pts)-1] {
			out.LineTo(p)
		}
		out.Close()
		return
	}
	// A closed outline that starts and ends inside a dash continues the
	// last dash into the first.
	if closed && startedOn && d.on && len(dashes) > 1 {
		n := len(dashes) - 1
		dashes[n] = append(dashes[n], dashes[0][1:]...)
		dashes = dashes[1:]
	}
	for _, dash := range dashes {
		out.MoveTo(dash[0])
		for _, p := range dash[1:] {
			out.LineTo(p)
		}
	}
}
