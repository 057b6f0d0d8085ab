package gprint

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/text"
)

// GlyphRun is text or glyphs drawn with the current font.
type GlyphRun struct {
	// Text is drawn when Glyphs is nil.
	Text string

	// Glyphs are glyph codes of the current font. Composite fonts carry
	// the slot in the high byte of each code.
	Glyphs []text.GlyphCode

	// Positions holds one pen position per glyph (per rune for Text)
	// relative to the run origin, in user units. Nil means font advances.
	Positions []Point

	// Transforms holds optional per-glyph transforms applied about each
	// glyph origin. Any transform forces outline rendering.
	Transforms []Matrix
}

func (r GlyphRun) empty() bool {
	return len(r.Glyphs) == 0 && r.Text == ""
}

// textRoute is the rendering route chosen for a run.
type textRoute uint8

const (
	routeNative textRoute = iota
	routeLaidOut
	routeOutline
)

var routeNames = [...]string{"native", "laid-out", "outline"}

func (r textRoute) String() string { return routeNames[r] }

type textRenderer struct {
	g *Graphics
}

// route picks how run is drawn through m.
func (t *textRenderer) route(run GlyphRun, m Matrix) textRoute {
	caps := t.g.caps
	if !caps.NativeText || len(run.Transforms) > 0 {
		return routeOutline
	}
	// Device fonts rotate and scale per axis but cannot shear or mirror.
	if !m.Orthogonal() || m.Determinant() <= 0 {
		return routeOutline
	}
	if run.Glyphs == nil {
		if cls := text.Classify(run.Text); cls.Complex() && !caps.Shapes(cls.Script) {
			return routeLaidOut
		}
	}
	return routeNative
}

func (t *textRenderer) draw(run GlyphRun, origin Point) error {
	g := t.g
	m := g.DeviceTransform()
	route := t.route(run, m)
	Logger().Debug("gprint: text route", "page", g.page, "route", route.String(),
		"glyphs", len(run.Glyphs), "runes", utf8.RuneCountInString(run.Text))

	switch route {
	case routeOutline:
		codes, pos := t.hostLayout(run, origin)
		return t.outline(codes, pos, run.Transforms, m)
	case routeLaidOut:
		codes, pos := t.shape(run, origin)
		return t.glyphs(codes, pos, m)
	}
	if run.Glyphs != nil {
		_, pos := t.hostLayout(run, origin)
		return t.glyphs(run.Glyphs, pos, m)
	}
	return t.native(run, origin, m)
}

// hostLayout returns glyph codes and absolute user positions (x, y pairs)
// computed from the font's own advances or from run.Positions.
func (t *textRenderer) hostLayout(run GlyphRun, origin Point) ([]text.GlyphCode, []float64) {
	font := t.g.state.font
	codes := run.Glyphs
	if codes == nil {
		for _, r := range font.Runs(run.Text) {
			codes = append(codes, r.Codes...)
		}
	}
	pos := make([]float64, 0, 2*len(codes))
	pen := origin
	for i, c := range codes {
		p := pen
		if i < len(run.Positions) {
			p = origin.Add(run.Positions[i])
		}
		pos = append(pos, p.X, p.Y)
		pen = p.Add(Pt(glyphAdvance(font, c), 0))
	}
	return codes, pos
}

// shape lays out run with the shaper, slot run by slot run. When
// run.Positions holds a position for a glyph's cluster, the glyph is
// placed there, keeping its shaped offset from the first glyph of the
// cluster; other glyphs follow the shaped pen.
func (t *textRenderer) shape(run GlyphRun, origin Point) ([]text.GlyphCode, []float64) {
	g := t.g
	font := g.state.font
	placed := func(i int) (Point, bool) {
		if i < len(run.Positions) {
			return origin.Add(run.Positions[i]), true
		}
		return Point{}, false
	}

	var codes []text.GlyphCode
	var pos []float64
	pen := origin
	next := 0
	for _, r := range font.Runs(run.Text) {
		first := next
		next += len(r.Codes)
		if p, ok := placed(first); ok {
			pen = p
		}

		face := font.Slot(r.Slot)
		shaped, err := g.job.opts.shaper.Shape(r.Text, face)
		if err != nil {
			Logger().Warn("gprint: shaping failed, using font advances", "err", err)
			for i, c := range r.Codes {
				if p, ok := placed(first + i); ok {
					pen = p
				}
				codes = append(codes, c)
				pos = append(pos, pen.X, pen.Y)
				pen.X += glyphAdvance(font, c)
			}
			continue
		}

		lead := make(map[int]float64, len(shaped.Glyphs))
		for _, sg := range shaped.Glyphs {
			if _, ok := lead[sg.Cluster]; !ok {
				lead[sg.Cluster] = sg.X
			}
		}
		for _, sg := range shaped.Glyphs {
			code := text.MakeGlyphCode(r.Slot, text.GlyphID(sg.GID.Glyph()))
			if sg.GID.Invisible() {
				code = text.MakeGlyphCode(r.Slot, text.GlyphID(text.InvisibleGlyph))
			}
			codes = append(codes, code)
			p := Pt(pen.X+sg.X, pen.Y+sg.Y)
			if q, ok := placed(first + sg.Cluster); ok {
				p = Pt(q.X+sg.X-lead[sg.Cluster], q.Y+sg.Y)
			}
			pos = append(pos, p.X, p.Y)
		}
		pen.X += shaped.Advance
	}
	return codes, pos
}

// native draws text with device fonts, one TextOut per slot run.
func (t *textRenderer) native(run GlyphRun, origin Point, m Matrix) error {
	g := t.g
	font := g.state.font
	sx, _ := m.Columns()
	phi := m.Angle()
	dir := Pt(1, 0).Rotate(phi)
	pen := m.TransformPoint(origin)

	runeIndex := 0
	for _, r := range font.Runs(run.Text) {
		if err := g.canceled(); err != nil {
			return err
		}
		first := runeIndex
		runeIndex += len(r.Codes)
		if run.Positions != nil && first < len(run.Positions) {
			pen = m.TransformPoint(origin.Add(run.Positions[first]))
		}

		face := font.Slot(r.Slot)
		host := face.Advance(r.Text) * sx
		if !t.encodable(font, r) || !t.selectFont(face, t.family(font, r.Slot), m) {
			user, err := m.Invert()
			if err != nil {
				Logger().Debug("gprint: text transform not invertible, run skipped",
					"page", g.page, "runes", len(r.Codes))
				pen = pen.Add(dir.Mul(host))
				continue
			}
			if err := t.outlineRun(r, user.TransformPoint(pen), m); err != nil {
				return err
			}
			pen = pen.Add(dir.Mul(host))
			continue
		}

		var adv []float64
		measured := float64(g.dev.MeasureString(r.Text))
		switch {
		case run.Positions != nil:
			adv = positionAdvances(r, run.Positions[min(first, len(run.Positions)):], font, m)
		case !metricsAgree(measured, host):
			Logger().Debug("gprint: device metrics disagree, sending advances",
				"device", measured, "host", host)
			adv = hostAdvances(r, font, m)
		}
		g.dev.TextOut(r.Text, pen.X, pen.Y, adv)

		step := measured
		if adv != nil {
			step = sumAdvance(adv)
		}
		pen = pen.Add(dir.Mul(step))
	}
	return nil
}

// glyphs draws positioned glyphs with device fonts, one GlyphsOut per
// slot run. pos holds absolute user positions.
func (t *textRenderer) glyphs(codes []text.GlyphCode, pos []float64, m Matrix) error {
	g := t.g
	font := g.state.font
	codes, pos = filterInvisible(codes, pos)
	phi := m.Angle()

	for start := 0; start < len(codes); {
		if err := g.canceled(); err != nil {
			return err
		}
		slot := codes[start].Slot()
		end := start + 1
		for end < len(codes) && codes[end].Slot() == slot {
			end++
		}
		if slot >= font.NumSlots() {
			slot = 0
		}
		face := font.Slot(slot)
		runCodes, runPos := codes[start:end], pos[2*start:2*end]
		start = end

		if !t.selectFont(face, t.family(font, slot), m) {
			if err := t.outline(runCodes, runPos, nil, m); err != nil {
				return err
			}
			continue
		}

		ids := make([]uint16, len(runCodes))
		dev := make([]Point, len(runCodes))
		for i, c := range runCodes {
			ids[i] = uint16(c.Glyph())
			dev[i] = m.TransformPoint(Pt(runPos[2*i], runPos[2*i+1]))
		}
		adv := make([]float64, 0, 2*len(ids))
		for i := range dev {
			var v Point
			if i+1 < len(dev) {
				v = dev[i+1].Sub(dev[i])
			} else {
				v = m.TransformVector(Pt(face.GlyphAdvance(text.GlyphID(ids[i])), 0))
			}
			v = v.Rotate(-phi)
			adv = append(adv, v.X, v.Y)
		}
		g.dev.GlyphsOut(ids, dev[0].X, dev[0].Y, adv)
	}
	return nil
}

// outline fills glyph outlines. pos holds absolute user positions; xf,
// when not nil, holds a transform per glyph applied about its origin.
func (t *textRenderer) outline(codes []text.GlyphCode, pos []float64, xf []Matrix, m Matrix) error {
	g := t.g
	font := g.state.font
	codes, pos = filterInvisible(codes, pos)
	p := NewPath()
	for i, c := range codes {
		slot := c.Slot()
		if slot >= font.NumSlots() {
			slot = 0
		}
		o, err := font.Slot(slot).Outline(text.GlyphID(c.Glyph()))
		if err != nil {
			var fe *text.FontError
			if !errors.As(err, &fe) {
				return err
			}
			Logger().Warn("gprint: glyph outline unavailable", "err", err)
			continue
		}
		gm := Translate(pos[2*i], pos[2*i+1])
		if i < len(xf) {
			gm = gm.Multiply(xf[i])
		}
		appendOutline(p, o, gm)
	}
	if p.Empty() {
		return nil
	}
	g.fill(p.Transform(m), FillRuleNonZero)
	return nil
}

// outlineRun draws one slot run as outlines starting at the user point
// origin.
func (t *textRenderer) outlineRun(r text.Run, origin Point, m Matrix) error {
	font := t.g.state.font
	pos := make([]float64, 0, 2*len(r.Codes))
	pen := origin
	for _, c := range r.Codes {
		pos = append(pos, pen.X, pen.Y)
		pen.X += glyphAdvance(font, c)
	}
	Logger().Debug("gprint: slot run drawn as outlines", "slot", r.Slot, "text", r.Text)
	return t.outline(r.Codes, pos, nil, m)
}

// encodable reports whether the device can take the text of r. Devices
// without Unicode text accept only text that encodes in the slot charset;
// a Unicode slot falls back to the Western code page.
func (t *textRenderer) encodable(font text.FontRef, r text.Run) bool {
	if t.g.caps.UnicodeText {
		return true
	}
	cs := font.SlotCharset(r.Slot)
	if cs == text.CharsetUnicode {
		cs = text.CharsetWestern
	}
	return cs.CanEncode(r.Text)
}

func (t *textRenderer) family(font text.FontRef, slot int) string {
	if font.NumSlots() == 1 {
		return font.Family()
	}
	return font.Slot(slot).Source().Name()
}

func (t *textRenderer) selectFont(face *text.Face, family string, m Matrix) bool {
	g := t.g
	spec := g.job.fontSpec(face, family, m)
	if !g.dev.SelectFont(spec) {
		Logger().Warn("gprint: device refused font, drawing outlines",
			"family", spec.Family, "size", spec.Size, "angle", spec.Angle)
		return false
	}
	g.dev.SelectSolidBrush(g.state.color.device())
	return true
}

// newFontSpec returns the device font for face drawn through m: the size
// scales with the transformed y axis, the escapement follows the
// transformed x axis.
func newFontSpec(face *text.Face, family string, m Matrix) device.FontSpec {
	sx, sy := m.Columns()
	style := face.Style()
	return device.FontSpec{
		Family:        family,
		Size:          face.Size() * sy,
		Bold:          style.Bold(),
		Italic:        style.Italic(),
		Angle:         escapement(m),
		AvgWidthScale: averageWidthScale(sx, sy),
	}
}

// escapement returns the device angle of m's x axis in tenths of a degree
// counter-clockwise. Transforms measure angles clockwise because y points
// down on the page.
func escapement(m Matrix) int {
	deg := m.Angle() * 180 / math.Pi
	if deg == 0 {
		return 0
	}
	a := math.Mod(360-deg, 360)
	if a < 0 {
		a += 360
	}
	return int(math.Round(a*10)) % 3600
}

// metricsAgree reports whether a device advance is close enough to the
// host advance to let the device place glyphs itself: within one device
// unit, or within 1%.
func metricsAgree(device, host float64) bool {
	d := math.Abs(device - host)
	if d <= 1 {
		return true
	}
	return host != 0 && d/math.Abs(host) < 0.01
}

// filterInvisible removes invisible glyph codes and their positions.
// pos holds one x, y pair per code.
func filterInvisible(codes []text.GlyphCode, pos []float64) ([]text.GlyphCode, []float64) {
	n := 0
	for _, c := range codes {
		if c.Invisible() {
			n++
		}
	}
	if n == 0 {
		return codes, pos
	}
	outCodes := make([]text.GlyphCode, 0, len(codes)-n)
	outPos := make([]float64, 0, len(pos)-2*n)
	for i, c := range codes {
		if c.Invisible() {
			continue
		}
		outCodes = append(outCodes, c)
		if 2*i+1 < len(pos) {
			outPos = append(outPos, pos[2*i], pos[2*i+1])
		}
	}
	return outCodes, outPos
}

// hostAdvances returns per-rune device advances of r from the font's own
// metrics, pre-rotated so that the device's escapement restores them.
func hostAdvances(r text.Run, font text.FontRef, m Matrix) []float64 {
	phi := m.Angle()
	adv := make([]float64, 0, 2*len(r.Codes))
	for _, c := range r.Codes {
		v := m.TransformVector(Pt(glyphAdvance(font, c), 0)).Rotate(-phi)
		adv = append(adv, v.X, v.Y)
	}
	return adv
}

// positionAdvances returns per-rune device advances of r from explicit
// user positions.
func positionAdvances(r text.Run, positions []Point, font text.FontRef, m Matrix) []float64 {
	phi := m.Angle()
	adv := make([]float64, 0, 2*len(r.Codes))
	for i, c := range r.Codes {
		var d Point
		if i+1 < len(positions) && i+1 < len(r.Codes) {
			d = positions[i+1].Sub(positions[i])
		} else {
			d = Pt(glyphAdvance(font, c), 0)
		}
		v := m.TransformVector(d).Rotate(-phi)
		adv = append(adv, v.X, v.Y)
	}
	return adv
}

// sumAdvance returns the length of the summed advance vectors.
func sumAdvance(adv []float64) float64 {
	var x, y float64
	for i := 0; i+1 < len(adv); i += 2 {
		x += adv[i]
		y += adv[i+1]
	}
	return math.Hypot(x, y)
}

func glyphAdvance(font text.FontRef, c text.GlyphCode) float64 {
	if c.Invisible() {
		return 0
	}
	slot := c.Slot()
	if slot >= font.NumSlots() {
		slot = 0
	}
	return font.Slot(slot).GlyphAdvance(text.GlyphID(c.Glyph()))
}

func appendOutline(p *Path, o *text.GlyphOutline, m Matrix) {
	pt := func(q text.OutlinePoint) Point { return m.TransformPoint(Pt(q.X, q.Y)) }
	open := false
	for _, s := range o.Segments {
		switch s.Op {
		case text.OutlineOpMoveTo:
			if open {
				p.Close()
			}
			q := pt(s.Points[0])
			p.MoveTo(q.X, q.Y)
			open = true
		case text.OutlineOpLineTo:
			q := pt(s.Points[0])
			p.LineTo(q.X, q.Y)
		case text.OutlineOpQuadTo:
			c, q := pt(s.Points[0]), pt(s.Points[1])
			p.QuadTo(c.X, c.Y, q.X, q.Y)
		case text.OutlineOpCubicTo:
			c1, c2, q := pt(s.Points[0]), pt(s.Points[1]), pt(s.Points[2])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
		}
	}
	if open {
		p.Close()
	}
}
