package device

import (
	"slices"

	"github.com/gogpu/gprint/text"
)

// Capabilities describes what a device can do. It is built once when the
// device is created and is immutable afterwards.
type Capabilities struct {
	// DPIX and DPIY are the device resolution in device units per inch.
	DPIX, DPIY float64

	// PageWidth and PageHeight are the printable page size in device units.
	PageWidth, PageHeight float64

	// MinLineWidth is the narrowest line, in device units, that the device
	// renders visibly.
	MinLineWidth float64

	// DefaultCap and DefaultJoin are the cap and join of plain pens.
	DefaultCap  LineCap
	DefaultJoin LineJoin

	// StyledPen reports whether SelectStyledPen can succeed at all.
	StyledPen bool

	// AdvancedGraphics reports support for GraphicsModeAdvanced.
	AdvancedGraphics bool

	// ScaledBlit reports that DrawPackedImage scales the source rectangle
	// to the destination rectangle in hardware.
	ScaledBlit bool

	// BitmaskTransparency reports that DrawPackedImage honours
	// PackedImage.TransparentIndex.
	BitmaskTransparency bool

	// AlphaBlit reports that DrawPackedImage composites 32-bit images
	// using their alpha channel.
	AlphaBlit bool

	// NativeText reports that SelectFont/TextOut are usable at all.
	NativeText bool

	// UnicodeText reports that TextOut accepts any Unicode text. Devices
	// without it only accept text encodable in the charset of the selected
	// face.
	UnicodeText bool

	// ShapedScripts lists the complex scripts the device shapes identically
	// to the host shaper.
	ShapedScripts []text.Script
}

// DefaultCapabilities returns the capabilities of a typical 600 DPI
// printer on US Letter paper.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		DPIX:                600,
		DPIY:                600,
		PageWidth:           8.5 * 600,
		PageHeight:          11 * 600,
		MinLineWidth:        1.2,
		DefaultCap:          LineCapRound,
		DefaultJoin:         LineJoinRound,
		StyledPen:           true,
		AdvancedGraphics:    true,
		ScaledBlit:          true,
		BitmaskTransparency: true,
		NativeText:          true,
		UnicodeText:         true,
	}
}

// Shapes reports whether the device shapes script s like the host shaper.
func (c Capabilities) Shapes(s text.Script) bool {
	return slices.Contains(c.ShapedScripts, s)
}

// ResolutionScale returns the device units per 1/72 inch along x and y.
func (c Capabilities) ResolutionScale() (float64, float64) {
	return c.DPIX / 72, c.DPIY / 72
}
