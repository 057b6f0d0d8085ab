package raster

import (
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/text"
)

// builtin maps family names to the Go fonts in regular, bold, italic and
// bold italic order.
var builtin = map[string][4][]byte{
	"go":      {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	"go mono": {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
}

// fontTable resolves font requests to sources. Built-in sources are
// parsed on first use.
type fontTable struct {
	mu     sync.Mutex
	extra  map[string]*text.FontSource
	parsed map[string]*text.FontSource
}

func newFontTable(extra []*text.FontSource) *fontTable {
	t := &fontTable{
		extra:  make(map[string]*text.FontSource, len(extra)),
		parsed: make(map[string]*text.FontSource),
	}
	for _, src := range extra {
		if src != nil {
			t.extra[strings.ToLower(src.Name())] = src
		}
	}
	return t
}

// lookup returns the source for family in the requested style, or nil.
func (t *fontTable) lookup(family string, bold, italic bool) (*text.FontSource, error) {
	key := strings.ToLower(strings.TrimSpace(family))
	if src, ok := t.extra[key]; ok {
		return src, nil
	}
	faces, ok := builtin[key]
	if !ok {
		return nil, nil
	}
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	id := key + "/" + string(rune('0'+i))

	t.mu.Lock()
	defer t.mu.Unlock()
	if src, ok := t.parsed[id]; ok {
		return src, nil
	}
	src, err := text.NewFontSource(faces[i])
	if err != nil {
		return nil, err
	}
	t.parsed[id] = src
	return src, nil
}

// escapementMatrix returns the rotation of a font with the given
// escapement, in tenths of a degree counter-clockwise on the page, with
// glyph widths scaled by aw.
func escapementMatrix(angle int, aw float64) device.Matrix {
	theta := -float64(angle) / 10 * math.Pi / 180
	sin, cos := math.Sincos(theta)
	if aw <= 0 {
		aw = 1
	}
	return device.Matrix{A: cos * aw, B: -sin, D: sin * aw, E: cos}
}

// SelectFont implements device.Device.
func (d *Device) SelectFont(spec device.FontSpec) bool {
	if !d.ready() || spec.Size <= 0 {
		return false
	}
	src, err := d.fonts.lookup(spec.Family, spec.Bold, spec.Italic)
	if err != nil {
		d.log.Warn("raster: font parse failed", "family", spec.Family, "err", err)
		return false
	}
	if src == nil {
		d.log.Debug("raster: no such font", "family", spec.Family)
		return false
	}
	var style text.Style
	if spec.Bold {
		style |= text.StyleBold
	}
	if spec.Italic {
		style |= text.StyleItalic
	}
	d.font = &selectedFont{
		spec: spec,
		face: text.NewFace(src, spec.Size, style),
		rot:  escapementMatrix(spec.Angle, spec.AvgWidthScale),
	}
	return true
}

// advance returns the unrotated advance of gid along the baseline.
func (f *selectedFont) advance(gid text.GlyphID) float64 {
	aw := f.spec.AvgWidthScale
	if aw <= 0 {
		aw = 1
	}
	return f.face.GlyphAdvance(gid) * aw
}

// MeasureString implements device.Device.
func (d *Device) MeasureString(s string) int {
	if !d.ready() || d.font == nil {
		return 0
	}
	src := d.font.face.Source()
	var w float64
	for _, r := range s {
		w += d.font.advance(src.GlyphIndex(r))
	}
	return int(math.Round(w))
}

// TextOut implements device.Device.
func (d *Device) TextOut(s string, x, y float64, advances []float64) {
	if !d.ready() || d.font == nil {
		return
	}
	src := d.font.face.Source()
	gids := make([]text.GlyphID, 0, len(s))
	for _, r := range s {
		gids = append(gids, src.GlyphIndex(r))
	}
	d.drawGlyphs(gids, x, y, advances)
}

// GlyphsOut implements device.Device.
func (d *Device) GlyphsOut(glyphs []uint16, x, y float64, advances []float64) {
	if !d.ready() || d.font == nil {
		return
	}
	gids := make([]text.GlyphID, len(glyphs))
	for i, g := range glyphs {
		gids[i] = text.GlyphID(g)
	}
	d.drawGlyphs(gids, x, y, advances)
}

// drawGlyphs fills the outlines of gids with the brush. The pen starts at
// (x, y) and moves by advances, or by the font advances, rotated to the
// escapement.
func (d *Device) drawGlyphs(gids []text.GlyphID, x, y float64, advances []float64) {
	f := d.font
	rot := f.rot
	unrotated := device.Matrix{A: rot.A, B: rot.B, D: rot.D, E: rot.E}
	if aw := f.spec.AvgWidthScale; aw > 0 {
		unrotated.A, unrotated.D = rot.A/aw, rot.D/aw
	}

	var figs []figure
	penX, penY := x, y
	for i, gid := range gids {
		o, err := f.face.Outline(gid)
		if err != nil {
			d.log.Debug("raster: glyph outline failed", "glyph", gid, "err", err)
		} else if !o.IsEmpty() {
			at := rot
			at.C, at.F = penX, penY
			figs = append(figs, d.outlineFigures(o, at)...)
		}

		var dx, dy float64
		if 2*i+1 < len(advances) {
			dx, dy = unrotated.TransformVector(advances[2*i], advances[2*i+1])
		} else {
			dx, dy = unrotated.TransformVector(f.advance(gid), 0)
		}
		penX += dx
		penY += dy
	}
	if len(figs) > 0 {
		d.fillGlyphs(figs, d.brush)
	}
}

// outlineFigures maps a glyph outline through at and the world transform.
func (d *Device) outlineFigures(o *text.GlyphOutline, at device.Matrix) []figure {
	m := d.world.Multiply(at)
	mp := func(q text.OutlinePoint) point {
		x, y := m.TransformPoint(q.X, q.Y)
		return point{x, y}
	}
	var figs []figure
	for _, seg := range o.Segments {
		switch seg.Op {
		case text.OutlineOpMoveTo:
			figs = append(figs, figure{start: mp(seg.Points[0]), closed: true})
		case text.OutlineOpLineTo:
			if len(figs) > 0 {
				f := &figs[len(figs)-1]
				f.segs = append(f.segs, segment{op: segLine, pts: [3]point{mp(seg.Points[0])}})
			}
		case text.OutlineOpQuadTo:
			if len(figs) > 0 {
				f := &figs[len(figs)-1]
				f.segs = append(f.segs, segment{op: segQuad, pts: [3]point{mp(seg.Points[0]), mp(seg.Points[1])}})
			}
		case text.OutlineOpCubicTo:
			if len(figs) > 0 {
				f := &figs[len(figs)-1]
				f.segs = append(f.segs, segment{op: segCubic, pts: [3]point{
					mp(seg.Points[0]), mp(seg.Points[1]), mp(seg.Points[2]),
				}})
			}
		}
	}
	return figs
}
