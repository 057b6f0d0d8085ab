package device

import (
	"fmt"
	"math"
)

// Matrix is a 2D affine transform in device units.
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Multiply returns m * other, which applies other first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies m to the point (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// TransformVector applies the linear part of m to (x, y).
func (m Matrix) TransformVector(x, y float64) (float64, float64) {
	return m.A*x + m.B*y, m.D*x + m.E*y
}

// Invert returns the inverse of m. The second result is false when m is
// singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// Rect is an axis-aligned rectangle in device units.
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Color is an opaque 8-bit sRGB color. Devices have no notion of alpha.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FillMode is the polygon fill mode of a device.
type FillMode uint8

const (
	// FillModeWinding fills using the nonzero winding rule.
	FillModeWinding FillMode = iota
	// FillModeAlternate fills using the even-odd rule.
	FillModeAlternate
)

func (m FillMode) String() string {
	switch m {
	case FillModeWinding:
		return "Winding"
	case FillModeAlternate:
		return "Alternate"
	default:
		return "Unknown"
	}
}

// GraphicsMode selects how a device interprets its world transform.
type GraphicsMode uint8

const (
	// GraphicsModeCompatible honours only scale and translation.
	GraphicsModeCompatible GraphicsMode = iota
	// GraphicsModeAdvanced honours arbitrary affine world transforms.
	GraphicsModeAdvanced
)

func (m GraphicsMode) String() string {
	if m == GraphicsModeAdvanced {
		return "Advanced"
	}
	return "Compatible"
}

// LineCap is the end style of a styled pen.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

var lineCapNames = [...]string{"Butt", "Round", "Square"}

func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return "Unknown"
}

// LineJoin is the join style of a styled pen.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

var lineJoinNames = [...]string{"Miter", "Round", "Bevel"}

func (j LineJoin) String() string {
	if int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return "Unknown"
}

// FontSpec describes a font selection request.
type FontSpec struct {
	// Family is the face name, for example "Go" or "Noto Sans CJK SC".
	Family string

	// Size is the em height in device units.
	Size float64

	Bold   bool
	Italic bool

	// Angle is the escapement in tenths of a degree, counter-clockwise
	// from the device x axis as seen on the page.
	Angle int

	// AvgWidthScale scales glyph widths relative to their heights.
	// 1 means no anisotropic scaling.
	AvgWidthScale float64
}

// PackedImage is a device-independent bitmap.
//
// Pixels are stored top-down. Rows are padded to a multiple of four bytes.
// For BitsPerPixel of 1, 2, 4 and 8 the samples index Palette. 24-bit
// pixels are stored as B, G, R; 32-bit pixels as B, G, R, A.
type PackedImage struct {
	Width, Height int
	BitsPerPixel  int
	Stride        int
	Pix           []byte
	Palette       []Color

	// TransparentIndex is the palette index drawn as fully transparent,
	// or -1. It is honoured only by devices reporting
	// Capabilities.BitmaskTransparency.
	TransparentIndex int
}

// Stride returns the padded row length in bytes for the given width and
// bit depth.
func Stride(width, bitsPerPixel int) int {
	return ((width*bitsPerPixel + 31) / 32) * 4
}

// ByteSize returns the size of the pixel buffer.
func (p *PackedImage) ByteSize() int {
	return p.Stride * p.Height
}
