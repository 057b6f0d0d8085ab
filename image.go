package gprint

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/gprint/device"
	imgpkg "github.com/gogpu/gprint/internal/image"
)

// Transparency classifies the alpha content of an image.
type Transparency uint8

const (
	// TransparencyOpaque means every pixel is fully opaque.
	TransparencyOpaque Transparency = iota
	// TransparencyBitmask means pixels are either fully transparent or
	// fully opaque, in an indexed color model.
	TransparencyBitmask
	// TransparencyAlpha means continuous alpha.
	TransparencyAlpha
)

var transparencyNames = [...]string{"Opaque", "Bitmask", "Alpha"}

func (t Transparency) String() string {
	if int(t) < len(transparencyNames) {
		return transparencyNames[t]
	}
	return "Unknown"
}

// ImageSource is an image to draw.
type ImageSource struct {
	Image image.Image

	// Rect is the region of Image to draw. The zero rectangle means the
	// whole image.
	Rect image.Rectangle

	// Transform maps image pixel coordinates to user space. The zero
	// matrix means identity.
	Transform Matrix
}

func (s ImageSource) transform() Matrix {
	if s.Transform == (Matrix{}) {
		return Identity()
	}
	return s.Transform
}

func (s ImageSource) bounds() image.Rectangle {
	if s.Rect.Empty() {
		return s.Image.Bounds()
	}
	return s.Rect.Intersect(s.Image.Bounds())
}

// Transparency classifies the drawn region of the image.
func (s ImageSource) Transparency() Transparency {
	if p, ok := s.Image.(*image.Paletted); ok {
		return paletteTransparency(p)
	}
	if imgpkg.Opaque(s.Image, s.bounds()) {
		return TransparencyOpaque
	}
	return TransparencyAlpha
}

func paletteTransparency(p *image.Paletted) Transparency {
	t := TransparencyOpaque
	for _, c := range p.Palette {
		switch _, _, _, a := c.RGBA(); a {
		case 0xFFFF:
		case 0:
			t = TransparencyBitmask
		default:
			return TransparencyAlpha
		}
	}
	return t
}

// BlitStrategy is how ImageBlitter draws an image.
type BlitStrategy uint8

const (
	// BlitSkip draws nothing: the image or its transform is degenerate.
	BlitSkip BlitStrategy = iota
	// BlitOpaque composites the image over an opaque substrate into an
	// intermediate buffer and blits that.
	BlitOpaque
	// BlitMasked blits the indexed image with its transparent index.
	BlitMasked
	// BlitAlpha blits a 32-bit image the device composites itself.
	BlitAlpha
	// BlitRedraw repaints the affected page region offscreen.
	BlitRedraw
)

var blitNames = [...]string{"Skip", "Opaque", "Masked", "Alpha", "Redraw"}

func (b BlitStrategy) String() string {
	if int(b) < len(blitNames) {
		return blitNames[b]
	}
	return "Unknown"
}

// BlitRequest carries the facts SelectBlitStrategy decides on.
type BlitRequest struct {
	Transparency Transparency

	// Background reports that the caller supplied a background color.
	Background bool

	// Composite is the active blend mode.
	Composite CompositeMode

	// CanRedraw reports that the page can be repainted on demand.
	CanRedraw bool

	// AxisAligned reports that the image maps to the device without
	// rotation, shear or mirroring.
	AxisAligned bool

	// Empty reports a zero-area source or a degenerate transform.
	Empty bool
}

// SelectBlitStrategy chooses how to draw an image on a device with caps.
//
// Images with continuous alpha are composited onto white when the device
// cannot blend and the page cannot be redrawn, so transparency is lost.
func SelectBlitStrategy(caps device.Capabilities, req BlitRequest) BlitStrategy {
	switch {
	case req.Empty:
		return BlitSkip
	case req.Transparency == TransparencyOpaque || req.Background:
		return BlitOpaque
	case req.Composite != CompositeSourceOver:
		return BlitOpaque
	case req.Transparency == TransparencyBitmask && caps.BitmaskTransparency &&
		caps.ScaledBlit && req.AxisAligned:
		return BlitMasked
	case caps.AlphaBlit:
		return BlitAlpha
	case req.CanRedraw:
		return BlitRedraw
	default:
		return BlitOpaque
	}
}

type imageBlitter struct {
	g *Graphics
}

func (b *imageBlitter) draw(src ImageSource, bg *RGBA) error {
	g := b.g
	sr := src.bounds()
	f := g.DeviceTransform().Multiply(src.transform())
	req := BlitRequest{
		Transparency: src.Transparency(),
		Background:   bg != nil,
		Composite:    g.state.composite,
		CanRedraw:    g.job.opts.redraw != nil && g.region == nil,
		AxisAligned:  f.AxisAligned() && f.A > 0 && f.E > 0,
		Empty:        sr.Empty() || math.Abs(f.Determinant()) < 1e-12,
	}
	strategy := SelectBlitStrategy(g.caps, req)
	Logger().Debug("gprint: image strategy", "page", g.page,
		"strategy", strategy.String(), "transparency", req.Transparency.String(),
		"size", sr.Size())

	switch strategy {
	case BlitSkip:
		return nil
	case BlitMasked:
		if p, ok := src.Image.(*image.Paletted); ok {
			b.masked(p, sr, f)
			return nil
		}
	case BlitAlpha:
		return b.raster(src.Image, sr, f, nil)
	case BlitRedraw:
		region := rectOf(sr).Transform(f)
		return g.redraw(region)
	}

	if req.Transparency == TransparencyAlpha && !req.Background && req.Composite == CompositeSourceOver {
		Logger().Warn("gprint: translucent image drawn opaque", "page", g.page, "size", sr.Size())
	}
	substrate := White
	if bg != nil {
		substrate = bg.Over(White)
	}
	if p, ok := src.Image.(*image.Paletted); ok && req.AxisAligned && g.caps.ScaledBlit {
		if b.indexed(p, sr, f, substrate) {
			return nil
		}
	}
	return b.raster(src.Image, sr, f, &substrate)
}

// masked blits an indexed image with its transparent index.
func (b *imageBlitter) masked(src *image.Paletted, sr image.Rectangle, f Matrix) {
	p, ok := imgpkg.PackIndexed(src, sr)
	if !ok {
		return
	}
	dst := rectOf(sr).Transform(f)
	b.g.dev.DrawPackedImage(p, dst.device(), image.Rect(0, 0, p.Width, p.Height))
}

// indexed blits an axis-aligned paletted image in indexed form, with
// translucent palette entries flattened onto substrate.
func (b *imageBlitter) indexed(src *image.Paletted, sr image.Rectangle, f Matrix, substrate RGBA) bool {
	p, ok := imgpkg.PackIndexed(src, sr)
	if !ok {
		return false
	}
	for i, c := range src.Palette {
		p.Palette[i] = FromColor(c).Over(substrate).device()
	}
	p.TransparentIndex = -1
	dst := rectOf(sr).Transform(f)
	b.g.dev.DrawPackedImage(p, dst.device(), image.Rect(0, 0, p.Width, p.Height))
	return true
}

// raster renders the image into intermediate buffers through the buffer
// transform and lets the device scale them to the destination. With a
// substrate the buffers are opaque 24-bit; without one they keep alpha.
// Buffers larger than the budget are produced in horizontal bands.
func (b *imageBlitter) raster(src image.Image, sr image.Rectangle, f Matrix, substrate *RGBA) error {
	g := b.g
	if g.job.opts.devXform && g.caps.AdvancedGraphics && g.caps.ScaledBlit && !f.AxisAligned() {
		return b.transformed(src, sr, f, substrate)
	}
	d, ok := g.job.decompose(f, g.job.opts.clampScale)
	if !ok {
		return nil
	}
	if !g.caps.ScaledBlit {
		d = Decomposition{Shape: f, Buffer: f, SX: 1, SY: 1, AWScale: 1}
	}

	bb := rectOf(sr).Transform(d.Buffer)
	x0, y0 := int(math.Floor(bb.X)), int(math.Floor(bb.Y))
	x1, y1 := int(math.Ceil(bb.X+bb.W)), int(math.Ceil(bb.Y+bb.H))
	bw, bh := x1-x0, y1-y0
	if bw <= 0 || bh <= 0 {
		return nil
	}

	// Rotated or sheared images cover only part of their buffer; keep the
	// substrate outside the image off the page.
	clipped := substrate != nil && !d.Buffer.AxisAligned()
	if clipped {
		outline := NewPath()
		c := rectOf(sr).Corners()
		outline.MoveTo(c[0].X, c[0].Y)
		for _, q := range c[1:] {
			outline.LineTo(q.X, q.Y)
		}
		outline.Close()
		g.emitter.Emit(outline.Transform(f), FillRuleNonZero)
		g.dev.SelectClipPath()
		defer g.applyClip()
	}

	budget := g.job.opts.budget
	rows := bandRows(bw, budget)
	for by := 0; by < bh; by += rows {
		if err := g.canceled(); err != nil {
			return err
		}
		h := min(rows, bh-by)
		buf := g.job.pool.Get(bw, h)
		if substrate != nil {
			imgpkg.Fill(buf, substrate.Color())
		}
		s2d := Translate(-float64(x0), -float64(y0+by)).Multiply(d.Buffer)
		imgpkg.Transform(buf, aff3(s2d), src, sr, true)

		var p *device.PackedImage
		if substrate != nil {
			p = imgpkg.PackBGR(buf, buf.Bounds(), substrate.Color())
		} else {
			p = imgpkg.PackBGRA(buf, buf.Bounds())
		}
		g.job.pool.Put(buf)

		dst := device.Rect{
			X: float64(x0) * d.SX,
			Y: float64(y0+by) * d.SY,
			W: float64(bw) * d.SX,
			H: float64(h) * d.SY,
		}
		g.dev.DrawPackedImage(p, dst, image.Rect(0, 0, bw, h))
		if g.dev.Err() != nil {
			return nil
		}
	}
	if rows < bh {
		Logger().Debug("gprint: image banded", "page", g.page,
			"width", bw, "height", bh, "rows", rows)
	}
	return nil
}

// transformed blits the source pixels of sr unresampled, in bands, and
// lets the device map them through f in advanced graphics mode.
func (b *imageBlitter) transformed(src image.Image, sr image.Rectangle, f Matrix, substrate *RGBA) error {
	g := b.g
	dev := g.dev
	saved := dev.WorldTransform()
	dev.SetGraphicsMode(device.GraphicsModeAdvanced)
	dev.SetWorldTransform(saved.Multiply(f.device()))
	defer func() {
		dev.SetWorldTransform(saved)
		dev.SetGraphicsMode(device.GraphicsModeCompatible)
	}()

	w, h := sr.Dx(), sr.Dy()
	rows := bandRows(w, g.job.opts.budget)
	for y := 0; y < h; y += rows {
		if err := g.canceled(); err != nil {
			return err
		}
		n := min(rows, h-y)
		band := image.Rect(sr.Min.X, sr.Min.Y+y, sr.Max.X, sr.Min.Y+y+n)
		var p *device.PackedImage
		if substrate != nil {
			p = imgpkg.PackBGR(src, band, substrate.Color())
		} else {
			p = imgpkg.PackBGRA(src, band)
		}
		dev.DrawPackedImage(p, rectOf(band).device(), image.Rect(0, 0, w, n))
		if dev.Err() != nil {
			return nil
		}
	}
	Logger().Debug("gprint: image drawn through world transform", "page", g.page,
		"size", sr.Size(), "rows", rows)
	return nil
}

// bandRows returns the number of buffer rows of width w that fit the
// budget, at least one.
func bandRows(w int, budget RenderBudget) int {
	row := int64(w) * int64(budget.BytesPerPixel)
	if row <= 0 {
		return 1
	}
	return int(max(budget.Ceiling/row, 1))
}

func rectOf(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

func aff3(m Matrix) f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
