package recording

import (
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gprint/device"
)

func init() {
	device.Register("recording", func(cfg device.Config) (device.Device, error) {
		opts := []Option{WithLogger(cfg.Logger)}
		if cfg.Capabilities.DPIX > 0 {
			opts = append(opts, WithCapabilities(cfg.Capabilities))
		}
		return New(opts...), nil
	})
}

// Option configures a recording Device.
type Option func(*Device)

// WithCapabilities sets the capabilities the device reports.
func WithCapabilities(caps device.Capabilities) Option {
	return func(d *Device) { d.caps = caps }
}

// WithFonts sets the answer to SelectFont. The default accepts every
// request.
func WithFonts(accept func(device.FontSpec) bool) Option {
	return func(d *Device) { d.acceptFont = accept }
}

// WithStyledPens sets the answer to SelectStyledPen when the capabilities
// report StyledPen. The default accepts every request.
func WithStyledPens(accept func(device.LineCap, device.LineJoin) bool) Option {
	return func(d *Device) { d.acceptPen = accept }
}

// WithMeasure sets the answer to MeasureString for the selected font.
// The default measures half an em per rune.
func WithMeasure(measure func(spec device.FontSpec, s string) int) Option {
	return func(d *Device) { d.measure = measure }
}

// WithFailure makes the device fail with err on the operation following
// the first n. The failure is sticky like any device error.
func WithFailure(n int, err error) Option {
	return func(d *Device) {
		d.failAt = n
		d.failErr = err
	}
}

// WithLogger sets the logger for device diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

// Device is a device.Device that records every call it receives.
//
// It keeps the state a real device would (page, world transform, pen,
// brush, font and fill mode) so recorded commands carry the values that
// were in effect, and it enforces the page protocol: drawing outside a
// page records device.ErrNoPage.
type Device struct {
	caps device.Capabilities
	log  *slog.Logger

	acceptFont func(device.FontSpec) bool
	acceptPen  func(device.LineCap, device.LineJoin) bool
	measure    func(device.FontSpec, string) int

	failAt  int
	failErr error
	ops     int

	cmds   []Command
	pages  int
	inPage bool
	closed bool
	err    error

	world device.Matrix
	mode  device.GraphicsMode
	fill  device.FillMode
	brush device.Color
	pen   Pen
	font  device.FontSpec
}

var _ device.Device = (*Device)(nil)

// New returns an empty recording device with default capabilities.
func New(opts ...Option) *Device {
	d := &Device{
		caps:    device.DefaultCapabilities(),
		log:     slog.New(slog.DiscardHandler),
		failAt:  -1,
		world:   device.Identity(),
		measure: halfEm,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.resetState()
	return d
}

func halfEm(spec device.FontSpec, s string) int {
	n := 0
	for range s {
		n++
	}
	return int(math.Round(float64(n) * spec.Size / 2))
}

// Commands returns the recorded commands in call order.
func (d *Device) Commands() []Command {
	return d.cmds
}

// Count returns the number of recorded commands of type t.
func (d *Device) Count(t CommandType) int {
	n := 0
	for _, c := range d.cmds {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset discards the recorded commands. Device state is kept.
func (d *Device) Reset() {
	d.cmds = d.cmds[:0]
}

// Pages returns the number of completed pages.
func (d *Device) Pages() int {
	if d.inPage {
		return d.pages - 1
	}
	return d.pages
}

// Filter returns the recorded commands of concrete type T.
func Filter[T Command](cmds []Command) []T {
	var out []T
	for _, c := range cmds {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func (d *Device) resetState() {
	d.world = device.Identity()
	d.mode = device.GraphicsModeCompatible
	d.fill = device.FillModeAlternate
	d.brush = device.White
	d.pen = Pen{
		Width: 1,
		Color: device.Black,
		Cap:   d.caps.DefaultCap,
		Join:  d.caps.DefaultJoin,
	}
	d.font = device.FontSpec{}
}

// fail records err as the device error if none is recorded yet.
func (d *Device) fail(err error) {
	if d.err == nil {
		d.err = err
		d.log.Warn("recording: device failed", "err", err, "op", d.ops)
	}
}

// op gates one drawing operation. It reports false when the operation
// must be ignored.
func (d *Device) op(needPage bool) bool {
	switch {
	case d.err != nil:
		return false
	case d.closed:
		d.fail(device.ErrClosed)
		return false
	case needPage && !d.inPage:
		d.fail(device.ErrNoPage)
		return false
	}
	if d.failAt >= 0 && d.ops >= d.failAt {
		d.fail(d.failErr)
		return false
	}
	d.ops++
	return true
}

func (d *Device) record(c Command) {
	d.cmds = append(d.cmds, c)
}

func (d *Device) page(x, y float64) [2]float64 {
	px, py := d.world.TransformPoint(x, y)
	return [2]float64{px, py}
}

// Capabilities implements device.Device.
func (d *Device) Capabilities() device.Capabilities { return d.caps }

// StartPage implements device.Device.
func (d *Device) StartPage() error {
	if d.inPage && d.err == nil && !d.closed {
		return device.ErrPageInProgress
	}
	if !d.op(false) {
		return d.err
	}
	d.pages++
	d.inPage = true
	d.resetState()
	d.record(StartPageCommand{Page: d.pages})
	return nil
}

// EndPage implements device.Device.
func (d *Device) EndPage() error {
	if !d.op(true) {
		return d.err
	}
	d.inPage = false
	d.record(EndPageCommand{Page: d.pages})
	return nil
}

// AbortPage implements device.Device. The discarded page is recorded but
// not counted, so the next page reuses its number.
func (d *Device) AbortPage() error {
	if !d.op(true) {
		return d.err
	}
	d.record(AbortPageCommand{Page: d.pages})
	d.pages--
	d.inPage = false
	return nil
}

// BeginPath implements device.Device.
func (d *Device) BeginPath() {
	if d.op(true) {
		d.record(BeginPathCommand{})
	}
}

// MoveTo implements device.Device.
func (d *Device) MoveTo(x, y float64) {
	if d.op(true) {
		d.record(MoveToCommand{X: x, Y: y, Page: d.page(x, y)})
	}
}

// LineTo implements device.Device.
func (d *Device) LineTo(x, y float64) {
	if d.op(true) {
		d.record(LineToCommand{X: x, Y: y, Page: d.page(x, y)})
	}
}

// BezierTo implements device.Device.
func (d *Device) BezierTo(c1x, c1y, c2x, c2y, x, y float64) {
	if d.op(true) {
		d.record(BezierToCommand{C1X: c1x, C1Y: c1y, C2X: c2x, C2Y: c2y, X: x, Y: y, Page: d.page(x, y)})
	}
}

// CloseFigure implements device.Device.
func (d *Device) CloseFigure() {
	if d.op(true) {
		d.record(CloseFigureCommand{})
	}
}

// EndPath implements device.Device.
func (d *Device) EndPath() {
	if d.op(true) {
		d.record(EndPathCommand{})
	}
}

// SetFillMode implements device.Device.
func (d *Device) SetFillMode(mode device.FillMode) {
	if d.op(true) {
		d.fill = mode
		d.record(SetFillModeCommand{Mode: mode})
	}
}

// FillPath implements device.Device.
func (d *Device) FillPath() {
	if d.op(true) {
		d.record(FillPathCommand{Mode: d.fill, Color: d.brush})
	}
}

// StrokePath implements device.Device.
func (d *Device) StrokePath() {
	if d.op(true) {
		d.record(StrokePathCommand{Pen: d.pen, World: d.world})
	}
}

// SelectClipPath implements device.Device.
func (d *Device) SelectClipPath() {
	if d.op(true) {
		d.record(SelectClipPathCommand{Mode: d.fill})
	}
}

// ResetClip implements device.Device.
func (d *Device) ResetClip() {
	if d.op(true) {
		d.record(ResetClipCommand{})
	}
}

// SelectSolidBrush implements device.Device.
func (d *Device) SelectSolidBrush(c device.Color) {
	if d.op(true) {
		d.brush = c
		d.record(SelectSolidBrushCommand{Color: c})
	}
}

// SelectPen implements device.Device.
func (d *Device) SelectPen(width float64, c device.Color) {
	if d.op(true) {
		d.pen = Pen{Width: width, Color: c, Cap: d.caps.DefaultCap, Join: d.caps.DefaultJoin}
		d.record(SelectPenCommand{Width: width, Color: c})
	}
}

// SelectStyledPen implements device.Device.
func (d *Device) SelectStyledPen(lineCap device.LineCap, join device.LineJoin, miterLimit, width float64, c device.Color) bool {
	if !d.op(true) {
		return false
	}
	pen := Pen{
		Width:      width,
		Color:      c,
		Cap:        lineCap,
		Join:       join,
		MiterLimit: miterLimit,
		Styled:     true,
	}
	ok := d.caps.StyledPen && (d.acceptPen == nil || d.acceptPen(lineCap, join))
	if ok {
		d.pen = pen
	}
	d.record(SelectStyledPenCommand{Pen: pen, OK: ok})
	return ok
}

// FrameRect implements device.Device.
func (d *Device) FrameRect(r device.Rect) {
	if d.op(true) {
		d.record(FrameRectCommand{Rect: r, Pen: d.pen})
	}
}

// FillRect implements device.Device.
func (d *Device) FillRect(r device.Rect) {
	if d.op(true) {
		d.record(FillRectCommand{Rect: r, Color: d.brush})
	}
}

// SelectFont implements device.Device.
func (d *Device) SelectFont(spec device.FontSpec) bool {
	if !d.op(true) {
		return false
	}
	ok := d.caps.NativeText && (d.acceptFont == nil || d.acceptFont(spec))
	if ok {
		d.font = spec
	}
	d.record(SelectFontCommand{Spec: spec, OK: ok})
	return ok
}

// TextOut implements device.Device.
func (d *Device) TextOut(s string, x, y float64, advances []float64) {
	if d.op(true) {
		d.record(TextOutCommand{
			Text:     s,
			X:        x,
			Y:        y,
			Advances: append([]float64(nil), advances...),
			Font:     d.font,
			Color:    d.brush,
		})
	}
}

// GlyphsOut implements device.Device.
func (d *Device) GlyphsOut(glyphs []uint16, x, y float64, advances []float64) {
	if d.op(true) {
		d.record(GlyphsOutCommand{
			Glyphs:   append([]uint16(nil), glyphs...),
			X:        x,
			Y:        y,
			Advances: append([]float64(nil), advances...),
			Font:     d.font,
			Color:    d.brush,
		})
	}
}

// MeasureString implements device.Device.
func (d *Device) MeasureString(s string) int {
	if !d.op(true) {
		return 0
	}
	w := d.measure(d.font, s)
	d.record(MeasureStringCommand{Text: s, Width: w})
	return w
}

// WorldTransform implements device.Device.
func (d *Device) WorldTransform() device.Matrix { return d.world }

// SetWorldTransform implements device.Device.
func (d *Device) SetWorldTransform(m device.Matrix) {
	if !d.op(true) {
		return
	}
	if d.mode == device.GraphicsModeCompatible {
		m.B, m.D = 0, 0
	}
	d.world = m
	d.record(SetWorldTransformCommand{Matrix: m})
}

// ScaleWorldTransform implements device.Device.
func (d *Device) ScaleWorldTransform(sx, sy float64) {
	if d.op(true) {
		d.world = d.world.Multiply(device.Matrix{A: sx, E: sy})
		d.record(ScaleWorldTransformCommand{SX: sx, SY: sy})
	}
}

// SetGraphicsMode implements device.Device.
func (d *Device) SetGraphicsMode(mode device.GraphicsMode) {
	if !d.op(true) {
		return
	}
	if mode == device.GraphicsModeAdvanced && !d.caps.AdvancedGraphics {
		d.log.Debug("recording: advanced graphics mode not supported")
		mode = device.GraphicsModeCompatible
	}
	d.mode = mode
	d.record(SetGraphicsModeCommand{Mode: mode})
}

// DrawPackedImage implements device.Device.
func (d *Device) DrawPackedImage(img *device.PackedImage, dst device.Rect, src image.Rectangle) {
	if d.op(true) {
		d.record(DrawPackedImageCommand{Image: img, Dst: dst, Src: src})
	}
}

// Err implements device.Device.
func (d *Device) Err() error { return d.err }

// Close implements device.Device. Closing ends any page in progress
// without recording it.
func (d *Device) Close() error {
	d.closed = true
	d.inPage = false
	return nil
}
