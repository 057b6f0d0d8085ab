package stroke

import (
	"math"
	"testing"
)

func line(x0, y0, x1, y1 float64) *Path {
	p := new(Path)
	p.MoveTo(Point{X: x0, Y: y0})
	p.LineTo(Point{X: x1, Y: y1})
	return p
}

func bounds(p *Path) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		minX, minY = min(minX, pt.X), min(minY, pt.Y)
		maxX, maxY = max(maxX, pt.X), max(maxY, pt.Y)
	}
	return
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestExpandLineCaps(t *testing.T) {
	tests := []struct {
		name       string
		cap        Cap
		minX, maxX float64
	}{
		{"butt", CapButt, 0, 100},
		{"square", CapSquare, -5, 105},
		{"round", CapRound, -5, 105},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewExpander(Style{Width: 10, Cap: tt.cap}).Expand(line(0, 0, 100, 0))
			if out.Empty() {
				t.Fatal("empty outline")
			}
			if out.Verbs[0] != MoveTo || out.Verbs[len(out.Verbs)-1] != Close {
				t.Errorf("outline must be one closed contour, verbs %v", out.Verbs)
			}
			minX, minY, maxX, maxY := bounds(out)
			if !near(minY, -5) || !near(maxY, 5) {
				t.Errorf("y extent [%f, %f], want [-5, 5]", minY, maxY)
			}
			// Round caps are cubics; their control points lie on the hull.
			if !near(minX, tt.minX) || !near(maxX, tt.maxX) {
				t.Errorf("x extent [%f, %f], want [%f, %f]", minX, maxX, tt.minX, tt.maxX)
			}
		})
	}
}

func TestExpandClosedRectangle(t *testing.T) {
	p := new(Path)
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{100, 0})
	p.LineTo(Point{100, 50})
	p.LineTo(Point{0, 50})
	p.Close()

	out := NewExpander(Style{Width: 4, Join: JoinMiter, MiterLimit: 10}).Expand(p)

	closes := 0
	for _, v := range out.Verbs {
		if v == Close {
			closes++
		}
	}
	if closes != 2 {
		t.Errorf("closed subpath produced %d contours, want 2", closes)
	}
	minX, minY, maxX, maxY := bounds(out)
	if !near(minX, -2) || !near(minY, -2) || !near(maxX, 102) || !near(maxY, 52) {
		t.Errorf("bounds (%f,%f)-(%f,%f), want (-2,-2)-(102,52)", minX, minY, maxX, maxY)
	}
}

func TestExpandMiterLimit(t *testing.T) {
	// A sharp spike: the miter would extend far beyond the corner.
	p := new(Path)
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{100, 2})
	p.LineTo(Point{0, 4})

	_, _, miterMax, _ := bounds(NewExpander(Style{Width: 2, Join: JoinMiter, MiterLimit: 1000}).Expand(p))
	_, _, limited, _ := bounds(NewExpander(Style{Width: 2, Join: JoinMiter, MiterLimit: 2}).Expand(p))
	_, _, bevel, _ := bounds(NewExpander(Style{Width: 2, Join: JoinBevel}).Expand(p))

	if miterMax <= limited {
		t.Errorf("unlimited miter reaches %f, limited %f; want unlimited further", miterMax, limited)
	}
	if !near(limited, bevel) {
		t.Errorf("miter over limit reaches %f, want bevel %f", limited, bevel)
	}
}

func TestExpandZeroWidth(t *testing.T) {
	if out := NewExpander(Style{Width: 0}).Expand(line(0, 0, 10, 10)); !out.Empty() {
		t.Errorf("zero width produced %d verbs", len(out.Verbs))
	}
}

func TestExpandCurveStaysWithinOffset(t *testing.T) {
	p := new(Path)
	p.MoveTo(Point{0, 0})
	p.CubicTo(Point{0, 50}, Point{100, 50}, Point{100, 0})

	out := NewExpander(Style{Width: 6, Join: JoinRound, Cap: CapButt}).Expand(p)
	_, minY, _, maxY := bounds(out)
	// The curve peaks at y=37.5; the outline reaches about 37.5+3.
	if maxY < 40 || maxY > 41 || minY < -0.5 {
		t.Errorf("y extent [%f, %f], want about [0, 40.5]", minY, maxY)
	}
}
