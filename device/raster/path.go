package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/gprint/device"
)

type segOp uint8

const (
	segLine segOp = iota
	segQuad
	segCubic
)

type point struct{ x, y float64 }

type segment struct {
	op  segOp
	pts [3]point
}

type figure struct {
	start  point
	segs   []segment
	closed bool
}

// pathBuilder accumulates a path in page pixels.
type pathBuilder struct {
	figs      []figure
	recording bool
}

func (p *pathBuilder) reset() {
	p.figs = p.figs[:0]
	p.recording = false
}

func (p *pathBuilder) current() *figure {
	if len(p.figs) == 0 {
		p.figs = append(p.figs, figure{})
	}
	return &p.figs[len(p.figs)-1]
}

func (p *pathBuilder) moveTo(pt point) {
	if n := len(p.figs); n > 0 && len(p.figs[n-1].segs) == 0 && !p.figs[n-1].closed {
		p.figs[n-1].start = pt
		return
	}
	p.figs = append(p.figs, figure{start: pt})
}

func (p *pathBuilder) add(s segment) {
	f := p.current()
	if f.closed {
		last := f.start
		p.figs = append(p.figs, figure{start: last})
		f = p.current()
	}
	f.segs = append(f.segs, s)
}

func (p *pathBuilder) close() {
	if n := len(p.figs); n > 0 {
		p.figs[n-1].closed = true
	}
}

// bounds returns the control point bounds of figs, grown by pad.
func bounds(figs []figure, pad float64) image.Rectangle {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	grow := func(q point) {
		x0, y0 = math.Min(x0, q.x), math.Min(y0, q.y)
		x1, y1 = math.Max(x1, q.x), math.Max(y1, q.y)
	}
	for _, f := range figs {
		grow(f.start)
		for _, s := range f.segs {
			n := 1
			switch s.op {
			case segQuad:
				n = 2
			case segCubic:
				n = 3
			}
			for _, q := range s.pts[:n] {
				grow(q)
			}
		}
	}
	if x0 > x1 || y0 > y1 {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(x0-pad)), int(math.Floor(y0-pad)),
		int(math.Ceil(x1+pad))+1, int(math.Ceil(y1+pad))+1,
	)
}

// feed adds figs to a rasterx adder, offset so that origin maps to the
// adder's (0, 0).
func feed(a rasterx.Adder, figs []figure, origin image.Point, closeAll bool) {
	ox, oy := float64(origin.X), float64(origin.Y)
	fp := func(q point) fixed.Point26_6 {
		return rasterx.ToFixedP(q.x-ox, q.y-oy)
	}
	for _, f := range figs {
		if len(f.segs) == 0 {
			continue
		}
		a.Start(fp(f.start))
		for _, s := range f.segs {
			switch s.op {
			case segLine:
				a.Line(fp(s.pts[0]))
			case segQuad:
				a.QuadBezier(fp(s.pts[0]), fp(s.pts[1]))
			case segCubic:
				a.CubeBezier(fp(s.pts[0]), fp(s.pts[1]), fp(s.pts[2]))
			}
		}
		a.Stop(f.closed || closeAll)
	}
}

func newScanner(r image.Rectangle) (*image.Alpha, *rasterx.ScannerGV) {
	m := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	sc := rasterx.NewScannerGV(r.Dx(), r.Dy(), m, m.Bounds())
	sc.SetColor(color.Alpha{A: 255})
	return m, sc
}

// fillMask returns the coverage of figs within r under mode.
func fillMask(figs []figure, r image.Rectangle, mode device.FillMode) *image.Alpha {
	if mode == device.FillModeAlternate {
		return evenOddMask(figs, r)
	}
	m, sc := newScanner(r)
	f := rasterx.NewFiller(r.Dx(), r.Dy(), sc)
	feed(f, figs, r.Min, true)
	f.Draw()
	return m
}

// glyphMask returns the nonzero coverage of glyph outlines within r.
func glyphMask(figs []figure, r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	xy := func(q point) (float32, float32) {
		return float32(q.x - ox), float32(q.y - oy)
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	for _, f := range figs {
		if len(f.segs) == 0 {
			continue
		}
		z.MoveTo(xy(f.start))
		for _, s := range f.segs {
			switch s.op {
			case segLine:
				z.LineTo(xy(s.pts[0]))
			case segQuad:
				bx, by := xy(s.pts[0])
				cx, cy := xy(s.pts[1])
				z.QuadTo(bx, by, cx, cy)
			case segCubic:
				bx, by := xy(s.pts[0])
				cx, cy := xy(s.pts[1])
				dx, dy := xy(s.pts[2])
				z.CubeTo(bx, by, cx, cy, dx, dy)
			}
		}
		z.ClosePath()
	}
	z.Draw(m, m.Bounds(), image.Opaque, image.Point{})
	return m
}

// strokeMask returns the coverage of figs stroked with pn at width w
// pixels within r.
func strokeMask(figs []figure, r image.Rectangle, pn pen, w float64) *image.Alpha {
	m, sc := newScanner(r)
	ds := rasterx.NewDasher(r.Dx(), r.Dy(), sc)
	capFn := rasterx.ButtCap
	switch pn.cap {
	case device.LineCapRound:
		capFn = rasterx.RoundCap
	case device.LineCapSquare:
		capFn = rasterx.SquareCap
	}
	join, gap := rasterx.MiterClip, rasterx.FlatGap
	switch pn.join {
	case device.LineJoinRound:
		join, gap = rasterx.Round, rasterx.RoundGap
	case device.LineJoinBevel:
		join = rasterx.Bevel
	}
	limit := pn.miterLimit
	if limit < 1 {
		limit = 10
	}
	ds.SetStroke(fixed.Int26_6(w*64), fixed.Int26_6(limit*64), capFn, nil, gap, join, nil, 0)
	feed(ds, figs, r.Min, false)
	ds.Draw()
	return m
}

// clipMask is the clip region: coverage inside r, nothing outside.
type clipMask struct {
	r image.Rectangle
	m *image.Alpha
}

// apply multiplies mask, which covers r, by the clip.
func (c *clipMask) apply(mask *image.Alpha, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := mask.Pix[(y-r.Min.Y)*mask.Stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			i := x - r.Min.X
			if !(image.Point{X: x, Y: y}).In(c.r) {
				row[i] = 0
				continue
			}
			cv := c.m.Pix[(y-c.r.Min.Y)*c.m.Stride+(x-c.r.Min.X)]
			row[i] = uint8(int(row[i]) * int(cv) / 255)
		}
	}
}

// area returns the page area a draw may touch.
func (d *Device) area(r image.Rectangle) image.Rectangle {
	r = r.Intersect(d.img.Bounds())
	if d.clip != nil {
		r = r.Intersect(d.clip.r)
	}
	return r
}

func (d *Device) paint(mask *image.Alpha, r image.Rectangle, c color.RGBA) {
	if d.clip != nil {
		d.clip.apply(mask, r)
	}
	draw.DrawMask(d.img, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func (d *Device) fillFigures(figs []figure, mode device.FillMode, c color.RGBA) {
	r := d.area(bounds(figs, 1))
	if r.Empty() {
		return
	}
	d.paint(fillMask(figs, r, mode), r, c)
}

func (d *Device) fillGlyphs(figs []figure, c color.RGBA) {
	r := d.area(bounds(figs, 1))
	if r.Empty() {
		return
	}
	d.paint(glyphMask(figs, r), r, c)
}

func (d *Device) strokeFigures(figs []figure) {
	w := d.pen.width * math.Sqrt(math.Abs(d.world.A*d.world.E-d.world.B*d.world.D))
	if w <= 0 {
		return
	}
	pad := w/2*math.Max(d.pen.miterLimit, 2) + 1
	r := d.area(bounds(figs, pad))
	if r.Empty() {
		return
	}
	d.paint(strokeMask(figs, r, d.pen, w), r, d.pen.color)
}

func (d *Device) mapPoint(x, y float64) point {
	px, py := d.world.TransformPoint(x, y)
	return point{px, py}
}

// consume returns the current path for a consuming operation.
func (d *Device) consume() []figure {
	figs := d.path.figs
	d.path.figs = nil
	d.path.recording = false
	return figs
}

// BeginPath implements device.Device.
func (d *Device) BeginPath() {
	if d.ready() {
		d.path.reset()
		d.path.recording = true
	}
}

// MoveTo implements device.Device.
func (d *Device) MoveTo(x, y float64) {
	if d.ready() && d.path.recording {
		d.path.moveTo(d.mapPoint(x, y))
	}
}

// LineTo implements device.Device.
func (d *Device) LineTo(x, y float64) {
	if d.ready() && d.path.recording {
		d.path.add(segment{op: segLine, pts: [3]point{d.mapPoint(x, y)}})
	}
}

// BezierTo implements device.Device.
func (d *Device) BezierTo(c1x, c1y, c2x, c2y, x, y float64) {
	if d.ready() && d.path.recording {
		d.path.add(segment{op: segCubic, pts: [3]point{
			d.mapPoint(c1x, c1y), d.mapPoint(c2x, c2y), d.mapPoint(x, y),
		}})
	}
}

// CloseFigure implements device.Device.
func (d *Device) CloseFigure() {
	if d.ready() && d.path.recording {
		d.path.close()
	}
}

// EndPath implements device.Device.
func (d *Device) EndPath() {
	if d.ready() {
		d.path.recording = false
	}
}

// FillPath implements device.Device.
func (d *Device) FillPath() {
	if d.ready() {
		d.fillFigures(d.consume(), d.fill, d.brush)
	}
}

// StrokePath implements device.Device.
func (d *Device) StrokePath() {
	if d.ready() {
		d.strokeFigures(d.consume())
	}
}

// SelectClipPath implements device.Device.
func (d *Device) SelectClipPath() {
	if !d.ready() {
		return
	}
	figs := d.consume()
	r := d.area(bounds(figs, 1))
	m := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	if !r.Empty() {
		m = fillMask(figs, r, d.fill)
		if d.clip != nil {
			d.clip.apply(m, r)
		}
	}
	d.clip = &clipMask{r: r, m: m}
}

// ResetClip implements device.Device.
func (d *Device) ResetClip() {
	if d.ready() {
		d.clip = nil
	}
}

func (d *Device) rectFigure(r device.Rect) []figure {
	p0 := d.mapPoint(r.X, r.Y)
	return []figure{{
		start: p0,
		segs: []segment{
			{op: segLine, pts: [3]point{d.mapPoint(r.MaxX(), r.Y)}},
			{op: segLine, pts: [3]point{d.mapPoint(r.MaxX(), r.MaxY())}},
			{op: segLine, pts: [3]point{d.mapPoint(r.X, r.MaxY())}},
			{op: segLine, pts: [3]point{p0}},
		},
		closed: true,
	}}
}

// FrameRect implements device.Device.
func (d *Device) FrameRect(r device.Rect) {
	if d.ready() && !r.Empty() {
		d.strokeFigures(d.rectFigure(r))
	}
}

// FillRect implements device.Device.
func (d *Device) FillRect(r device.Rect) {
	if d.ready() && !r.Empty() {
		d.fillFigures(d.rectFigure(r), device.FillModeWinding, d.brush)
	}
}
