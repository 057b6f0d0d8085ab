package device

import "image"

// Device is an output device for one page at a time.
//
// Coordinates passed to path, rectangle, text and image operations are in
// device units and are mapped through the device world transform, which is
// the identity after StartPage. Implementations are not safe for concurrent
// use; a Device belongs to the goroutine rendering the current page.
type Device interface {
	// Capabilities returns the capability descriptor of the device.
	// The value does not change during the lifetime of the device.
	Capabilities() Capabilities

	// StartPage begins a new page. Device state (pen, brush, font, clip,
	// world transform) is reset to defaults.
	StartPage() error

	// EndPage finishes the current page.
	EndPage() error

	// AbortPage discards the current page. Nothing drawn since StartPage
	// is output and the page is not counted.
	AbortPage() error

	// BeginPath discards any current path and starts recording a new one.
	// Path coordinates are mapped through the world transform in effect
	// when they are added; pen widths through the one in effect when the
	// path is stroked.
	BeginPath()
	// MoveTo starts a new figure at (x, y).
	MoveTo(x, y float64)
	// LineTo adds a straight segment to (x, y).
	LineTo(x, y float64)
	// BezierTo adds a cubic Bézier segment.
	BezierTo(c1x, c1y, c2x, c2y, x, y float64)
	// CloseFigure closes the current figure.
	CloseFigure()
	// EndPath ends path recording. The path stays current until it is
	// consumed by FillPath, StrokePath or SelectClipPath.
	EndPath()
	// SetFillMode sets the polygon fill mode used by FillPath and
	// SelectClipPath.
	SetFillMode(mode FillMode)
	// FillPath fills the current path with the selected brush and
	// consumes it.
	FillPath()
	// StrokePath strokes the current path with the selected pen and
	// consumes it.
	StrokePath()
	// SelectClipPath intersects the clip region with the current path and
	// consumes it.
	SelectClipPath()
	// ResetClip removes the clip region.
	ResetClip()

	// SelectSolidBrush selects a solid brush used by FillPath and FillRect.
	SelectSolidBrush(c Color)
	// SelectPen selects a plain pen. Plain pens use the device default cap
	// and join (see Capabilities.DefaultCap and DefaultJoin).
	SelectPen(width float64, c Color)
	// SelectStyledPen selects a geometric pen with explicit cap and join.
	// It reports false when the device cannot produce such a pen, in which
	// case the previously selected pen stays selected.
	SelectStyledPen(lineCap LineCap, join LineJoin, miterLimit, width float64, c Color) bool
	// FrameRect strokes the outline of a rectangle with the selected pen.
	FrameRect(r Rect)
	// FillRect fills a rectangle with the selected brush.
	FillRect(r Rect)

	// SelectFont selects a font for TextOut, GlyphsOut and MeasureString.
	// It reports false when the device has no matching face.
	SelectFont(spec FontSpec) bool
	// TextOut draws text with the selected font and the selected brush
	// color. The origin (x, y) is on the baseline. When advances is not nil
	// it holds one (dx, dy) pair per character, expressed in the unrotated
	// font coordinate system.
	TextOut(s string, x, y float64, advances []float64)
	// GlyphsOut draws glyphs of the selected font by glyph index.
	// advances holds one (dx, dy) pair per glyph, as for TextOut.
	GlyphsOut(glyphs []uint16, x, y float64, advances []float64)
	// MeasureString returns the advance of s with the selected font along
	// the unrotated baseline, in whole device units.
	MeasureString(s string) int

	// WorldTransform returns the current world transform.
	WorldTransform() Matrix
	// SetWorldTransform replaces the world transform. Devices in
	// GraphicsModeCompatible only honour scale and translation.
	SetWorldTransform(m Matrix)
	// ScaleWorldTransform post-multiplies the world transform by a scale.
	ScaleWorldTransform(sx, sy float64)
	// SetGraphicsMode switches between compatible and advanced modes.
	SetGraphicsMode(mode GraphicsMode)

	// DrawPackedImage copies the src rectangle of img, in image pixels, to
	// the dst rectangle, in device units, scaling as needed.
	DrawPackedImage(img *PackedImage, dst Rect, src image.Rectangle)

	// Err returns the first failure recorded by the device, if any.
	Err() error

	// Close releases all native resources held by the device. Close is
	// idempotent.
	Close() error
}
