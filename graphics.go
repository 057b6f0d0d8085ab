package gprint

import (
	"context"
	"math"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/text"
)

// PageFunc paints one page. It is called synchronously on the goroutine
// that called Job.RenderPage, and again for region redraw when enabled.
type PageFunc func(g *Graphics) error

// CompositeMode is the blend mode applied to images.
type CompositeMode uint8

const (
	// CompositeSourceOver draws the source over the destination.
	CompositeSourceOver CompositeMode = iota
	// CompositeCopy replaces the destination.
	CompositeCopy
	// CompositeMultiply multiplies source and destination.
	CompositeMultiply
)

var compositeNames = [...]string{"SourceOver", "Copy", "Multiply"}

func (m CompositeMode) String() string {
	if int(m) < len(compositeNames) {
		return compositeNames[m]
	}
	return "Unknown"
}

// RedrawRegion describes the part of a page being repainted for an
// image the device could not composite.
type RedrawRegion struct {
	// Bounds is the region in device units of the page.
	Bounds device.Rect

	// ScaleX and ScaleY are offscreen pixels per device unit.
	ScaleX, ScaleY float64

	// Clip holds the device-space clip paths active when the image was
	// drawn; the visible area is their intersection.
	Clip []*Path

	// Transform is the user transform active when the image was drawn.
	Transform Matrix
}

type clipPath struct {
	path *Path
	rule FillRule
}

type gstate struct {
	transform Matrix
	clip      []clipPath
	stroke    Stroke
	color     RGBA
	font      text.FontRef
	composite CompositeMode
}

// Graphics is the drawing surface of one page.
//
// User space has 72 units per inch with the origin at the top-left of the
// printable area and y pointing down. The device transform is
// Scale(dpiX/72, dpiY/72) * user transform.
//
// Every draw operation checks the page context before touching the
// device and the device error afterwards. After the first failure every
// operation returns the same error. A Graphics is not safe for concurrent
// use.
type Graphics struct {
	ctx    context.Context
	job    *Job
	dev    device.Device
	caps   device.Capabilities
	page   int
	base   Matrix
	region *RedrawRegion

	emitter *PathEmitter
	policy  StrokePolicy
	text    *textRenderer
	images  *imageBlitter

	state gstate
	stack []gstate
	err   error
}

func newGraphics(ctx context.Context, job *Job, dev device.Device, page int, base Matrix, region *RedrawRegion) *Graphics {
	caps := dev.Capabilities()
	minWidth := caps.MinLineWidth
	if minWidth <= 0 {
		minWidth = DefaultMinLineWidth
	}
	g := &Graphics{
		ctx:     ctx,
		job:     job,
		dev:     dev,
		caps:    caps,
		page:    page,
		base:    base,
		region:  region,
		emitter: NewPathEmitter(dev, job.opts.precision),
		policy:  StrokePolicy{MinWidth: minWidth},
		state: gstate{
			transform: Identity(),
			stroke:    DefaultStroke(),
			color:     Black,
		},
	}
	g.text = &textRenderer{g: g}
	g.images = &imageBlitter{g: g}
	return g
}

// Page returns the 1-based page number.
func (g *Graphics) Page() int { return g.page }

// Context returns the page context.
func (g *Graphics) Context() context.Context { return g.ctx }

// Capabilities returns the capabilities of the device being drawn on.
func (g *Graphics) Capabilities() device.Capabilities { return g.caps }

// Redraw reports the region being repainted when the page function is
// called for region redraw.
func (g *Graphics) Redraw() (RedrawRegion, bool) {
	if g.region == nil {
		return RedrawRegion{}, false
	}
	return *g.region, true
}

// Err returns the first error recorded on this page.
func (g *Graphics) Err() error { return g.err }

// SetTransform replaces the user transform.
func (g *Graphics) SetTransform(m Matrix) { g.state.transform = m }

// Transform concatenates m to the user transform; m applies first.
func (g *Graphics) Transform(m Matrix) {
	g.state.transform = g.state.transform.Multiply(m)
}

// Translate concatenates a translation.
func (g *Graphics) Translate(x, y float64) { g.Transform(Translate(x, y)) }

// Scale concatenates a scale.
func (g *Graphics) Scale(x, y float64) { g.Transform(Scale(x, y)) }

// Rotate concatenates a rotation (radians, clockwise on the page).
func (g *Graphics) Rotate(angle float64) { g.Transform(Rotate(angle)) }

// CurrentTransform returns the user transform.
func (g *Graphics) CurrentTransform() Matrix { return g.state.transform }

// DeviceTransform returns the full user to device transform.
func (g *Graphics) DeviceTransform() Matrix {
	return g.base.Multiply(g.state.transform)
}

// SetColor sets the fill, stroke and text color.
func (g *Graphics) SetColor(c RGBA) { g.state.color = c }

// SetStroke sets the stroke used by Stroke, StrokeRect and DrawLine.
func (g *Graphics) SetStroke(s Stroke) { g.state.stroke = s }

// SetLineWidth sets the width of the current stroke.
func (g *Graphics) SetLineWidth(w float64) { g.state.stroke.Width = w }

// SetFont sets the font used by DrawString and DrawGlyphs.
func (g *Graphics) SetFont(f text.FontRef) { g.state.font = f }

// SetComposite sets the blend mode for images.
func (g *Graphics) SetComposite(m CompositeMode) { g.state.composite = m }

// Push saves the graphics state.
func (g *Graphics) Push() {
	g.stack = append(g.stack, g.state)
}

// Pop restores the graphics state saved by the matching Push. The device
// clip is re-emitted when it differs.
func (g *Graphics) Pop() error {
	n := len(g.stack)
	if n == 0 {
		return ErrStackEmpty
	}
	prev := g.state
	g.state = g.stack[n-1]
	g.stack = g.stack[:n-1]
	if sameClip(prev.clip, g.state.clip) {
		return nil
	}
	if err := g.begin(); err != nil {
		return err
	}
	g.applyClip()
	return g.end("Pop")
}

// SetClip replaces the clip with p. A nil path removes the clip.
func (g *Graphics) SetClip(p *Path, rule FillRule) error {
	if p == nil {
		return g.ResetClip()
	}
	if err := g.begin(); err != nil {
		return err
	}
	g.state.clip = []clipPath{{path: p.Transform(g.DeviceTransform()), rule: rule}}
	g.applyClip()
	return g.end("SetClip")
}

// ClipRect intersects the clip with a rectangle.
func (g *Graphics) ClipRect(x, y, w, h float64) error {
	if err := g.begin(); err != nil {
		return err
	}
	p := NewPath()
	p.Rectangle(x, y, w, h)
	cp := clipPath{path: p.Transform(g.DeviceTransform()), rule: FillRuleNonZero}
	g.state.clip = append(g.state.clip[:len(g.state.clip):len(g.state.clip)], cp)
	g.emitter.Emit(cp.path, cp.rule)
	g.dev.SelectClipPath()
	return g.end("ClipRect")
}

// ResetClip removes the clip.
func (g *Graphics) ResetClip() error {
	if err := g.begin(); err != nil {
		return err
	}
	g.state.clip = nil
	g.dev.ResetClip()
	return g.end("ResetClip")
}

func (g *Graphics) applyClip() {
	g.dev.ResetClip()
	for _, c := range g.state.clip {
		g.emitter.Emit(c.path, c.rule)
		g.dev.SelectClipPath()
	}
}

func sameClip(a, b []clipPath) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Fill fills p with the current color.
func (g *Graphics) Fill(p *Path, rule FillRule) error {
	if err := g.begin(); err != nil {
		return err
	}
	if p.Empty() || g.state.color.A <= 0 {
		return nil
	}
	g.fill(p.Transform(g.DeviceTransform()), rule)
	return g.end("Fill")
}

// FillRect fills a rectangle with the current color.
func (g *Graphics) FillRect(x, y, w, h float64) error {
	if err := g.begin(); err != nil {
		return err
	}
	if g.state.color.A <= 0 {
		return nil
	}
	m := g.DeviceTransform()
	if m.AxisAligned() {
		g.dev.SelectSolidBrush(g.state.color.device())
		g.dev.FillRect(Rect{X: x, Y: y, W: w, H: h}.Transform(m).device())
	} else {
		p := NewPath()
		p.Rectangle(x, y, w, h)
		g.fill(p.Transform(m), FillRuleNonZero)
	}
	return g.end("FillRect")
}

// Stroke strokes p with the current stroke and color.
func (g *Graphics) Stroke(p *Path) error {
	if err := g.begin(); err != nil {
		return err
	}
	if p.Empty() || g.state.color.A <= 0 {
		return nil
	}
	m := g.DeviceTransform()
	st := g.adjustStroke(m)
	if g.selectPen(st, m, true) {
		g.emitter.Emit(p.Transform(m), FillRuleNonZero)
		g.dev.StrokePath()
	} else {
		g.fillStroke(p, st, m)
	}
	return g.end("Stroke")
}

// StrokeRect strokes the outline of a rectangle.
func (g *Graphics) StrokeRect(x, y, w, h float64) error {
	if err := g.begin(); err != nil {
		return err
	}
	if g.state.color.A <= 0 {
		return nil
	}
	m := g.DeviceTransform()
	st := g.adjustStroke(m)
	p := NewPath()
	p.Rectangle(x, y, w, h)
	switch {
	case !g.selectPen(st, m, true):
		g.fillStroke(p, st, m)
	case m.AxisAligned():
		g.dev.FrameRect(Rect{X: x, Y: y, W: w, H: h}.Transform(m).device())
	default:
		g.emitter.Emit(p.Transform(m), FillRuleNonZero)
		g.dev.StrokePath()
	}
	return g.end("StrokeRect")
}

// DrawLine strokes a straight line.
func (g *Graphics) DrawLine(x1, y1, x2, y2 float64) error {
	if err := g.begin(); err != nil {
		return err
	}
	if g.state.color.A <= 0 {
		return nil
	}
	m := g.DeviceTransform()
	st := g.adjustStroke(m)
	p := NewPath()
	p.MoveTo(x1, y1)
	p.LineTo(x2, y2)
	if g.selectPen(st, m, false) {
		g.emitter.Emit(p.Transform(m), FillRuleNonZero)
		g.dev.StrokePath()
	} else {
		g.fillStroke(p, st, m)
	}
	return g.end("DrawLine")
}

// DrawString draws s with its baseline origin at (x, y).
func (g *Graphics) DrawString(s string, x, y float64) error {
	return g.DrawGlyphs(GlyphRun{Text: s}, x, y)
}

// DrawGlyphs draws a glyph run with its baseline origin at (x, y).
func (g *Graphics) DrawGlyphs(run GlyphRun, x, y float64) error {
	if err := g.begin(); err != nil {
		return err
	}
	if g.state.font == nil {
		return ErrNoFont
	}
	if run.empty() || g.state.color.A <= 0 {
		return nil
	}
	if err := g.text.draw(run, Pt(x, y)); err != nil {
		return g.fail(err)
	}
	return g.end("DrawGlyphs")
}

// DrawImage draws an image. When bg is not nil, transparent pixels show
// bg instead of what is beneath.
func (g *Graphics) DrawImage(src ImageSource, bg *RGBA) error {
	if err := g.begin(); err != nil {
		return err
	}
	if src.Image == nil {
		return nil
	}
	if err := g.images.draw(src, bg); err != nil {
		return g.fail(err)
	}
	return g.end("DrawImage")
}

func (g *Graphics) begin() error {
	if g.err != nil {
		return g.err
	}
	if g.ctx.Err() != nil {
		g.err = ErrAborted
	}
	return g.err
}

func (g *Graphics) end(op string) error {
	if err := g.dev.Err(); err != nil && g.err == nil {
		g.err = &PageError{Page: g.page, Op: op, Err: err}
	}
	return g.err
}

func (g *Graphics) fail(err error) error {
	if g.err == nil {
		g.err = err
	}
	return g.err
}

// canceled reports cancellation between batches inside one draw call.
func (g *Graphics) canceled() error {
	if g.ctx.Err() != nil {
		return ErrAborted
	}
	return nil
}

func (g *Graphics) fill(dp *Path, rule FillRule) {
	g.dev.SelectSolidBrush(g.state.color.device())
	g.emitter.Emit(dp, rule)
	g.dev.FillPath()
}

func (g *Graphics) adjustStroke(m Matrix) Stroke {
	st, corrected := g.policy.Adjust(g.state.stroke, m)
	if corrected {
		Logger().Debug("gprint: stroke widened",
			"page", g.page, "from", g.state.stroke.Width, "to", st.Width)
	}
	return st
}

// selectPen selects a device pen for st under m. It tries a styled pen,
// then a plain pen when cap and join match the device defaults. It
// reports false when the stroke has to be filled as an outline instead.
func (g *Graphics) selectPen(st Stroke, m Matrix, joins bool) bool {
	if st.IsDashed() || st.Width <= 0 || !m.Orthogonal() {
		return false
	}
	sx, sy := m.Columns()
	if math.Abs(sx-sy) > 1e-9*math.Max(sx, sy) {
		return false
	}
	w, c := st.Width*sx, g.state.color.device()
	if g.caps.StyledPen && g.dev.SelectStyledPen(st.Cap.device(), st.Join.device(), st.MiterLimit, w, c) {
		return true
	}
	if st.Cap.device() == g.caps.DefaultCap && (!joins || st.Join.device() == g.caps.DefaultJoin) {
		g.dev.SelectPen(w, c)
		return true
	}
	Logger().Debug("gprint: no pen for stroke, filling outline",
		"page", g.page, "cap", st.Cap, "join", st.Join)
	return false
}

// fillStroke expands st along p in user space and fills the outline.
func (g *Graphics) fillStroke(p *Path, st Stroke, m Matrix) {
	if st.Width <= 0 {
		return
	}
	sx, sy := m.Columns()
	tol := g.job.opts.flatness / math.Max(math.Max(sx, sy), 1e-9)
	outline := st.outline(p, tol)
	if outline.Empty() {
		return
	}
	g.fill(outline.Transform(m), FillRuleNonZero)
}
