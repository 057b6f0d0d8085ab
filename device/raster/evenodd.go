package raster

import (
	"image"
	"math"
	"slices"
)

// subRows is the number of sample rows per pixel row for even-odd fills.
const subRows = 4

// edge is a non-horizontal line segment with y0 < y1.
type edge struct {
	x0, y0, x1, y1 float64
}

// flatten appends the edges of figs, relative to origin, closing every
// figure. Curves are split into lines no longer than about two pixels.
func flatten(figs []figure, origin image.Point) []edge {
	ox, oy := float64(origin.X), float64(origin.Y)
	var edges []edge
	add := func(a, b point) {
		if a.y == b.y {
			return
		}
		e := edge{a.x - ox, a.y - oy, b.x - ox, b.y - oy}
		if e.y0 > e.y1 {
			e = edge{e.x1, e.y1, e.x0, e.y0}
		}
		edges = append(edges, e)
	}
	for _, f := range figs {
		if len(f.segs) == 0 {
			continue
		}
		cur := f.start
		for _, s := range f.segs {
			switch s.op {
			case segLine:
				add(cur, s.pts[0])
				cur = s.pts[0]
			case segQuad:
				p0, p1, p2 := cur, s.pts[0], s.pts[1]
				n := steps(dist(p0, p1) + dist(p1, p2))
				for i := 1; i <= n; i++ {
					t := float64(i) / float64(n)
					u := 1 - t
					q := point{
						u*u*p0.x + 2*u*t*p1.x + t*t*p2.x,
						u*u*p0.y + 2*u*t*p1.y + t*t*p2.y,
					}
					add(cur, q)
					cur = q
				}
			case segCubic:
				p0, p1, p2, p3 := cur, s.pts[0], s.pts[1], s.pts[2]
				n := steps(dist(p0, p1) + dist(p1, p2) + dist(p2, p3))
				for i := 1; i <= n; i++ {
					t := float64(i) / float64(n)
					u := 1 - t
					a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
					q := point{
						a*p0.x + b*p1.x + c*p2.x + d*p3.x,
						a*p0.y + b*p1.y + c*p2.y + d*p3.y,
					}
					add(cur, q)
					cur = q
				}
			}
		}
		add(cur, f.start)
	}
	return edges
}

func dist(a, b point) float64 { return math.Hypot(b.x-a.x, b.y-a.y) }

func steps(length float64) int {
	return min(max(int(math.Ceil(length/2)), 1), 256)
}

// evenOddMask returns the even-odd coverage of figs within r. Every
// pixel row is sampled on subRows scanlines; spans between alternate
// crossings add their exact horizontal coverage.
func evenOddMask(figs []figure, r image.Rectangle) *image.Alpha {
	w, h := r.Dx(), r.Dy()
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	edges := flatten(figs, r.Min)
	if len(edges) == 0 {
		return m
	}
	cov := make([]float64, w)
	var xs []float64
	for y := range h {
		clear(cov)
		hit := false
		for sub := range subRows {
			sy := float64(y) + (float64(sub)+0.5)/subRows
			xs = xs[:0]
			for _, e := range edges {
				if e.y0 <= sy && sy < e.y1 {
					xs = append(xs, e.x0+(sy-e.y0)*(e.x1-e.x0)/(e.y1-e.y0))
				}
			}
			slices.Sort(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				addSpan(cov, xs[i], xs[i+1], 1.0/subRows)
				hit = true
			}
		}
		if !hit {
			continue
		}
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		for x, c := range cov {
			row[x] = uint8(math.Round(math.Min(c, 1) * 255))
		}
	}
	return m
}

// addSpan adds weight times the covered fraction of each pixel in [a, b).
func addSpan(cov []float64, a, b, weight float64) {
	a = math.Max(a, 0)
	b = math.Min(b, float64(len(cov)))
	if b <= a {
		return
	}
	ia, ib := int(a), int(b)
	if ia == ib {
		cov[ia] += (b - a) * weight
		return
	}
	cov[ia] += (float64(ia+1) - a) * weight
	for x := ia + 1; x < ib; x++ {
		cov[x] += weight
	}
	if ib < len(cov) {
		cov[ib] += (b - float64(ib)) * weight
	}
}
