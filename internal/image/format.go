package image

import "github.com/gogpu/gprint/device"

// Format is a packed pixel layout.
type Format uint8

const (
	FormatIndexed1 Format = iota
	FormatIndexed2
	FormatIndexed4
	FormatIndexed8
	// FormatBGR24 stores B, G, R bytes per pixel.
	FormatBGR24
)

var formatBits = [...]int{
	FormatIndexed1: 1,
	FormatIndexed2: 2,
	FormatIndexed4: 4,
	FormatIndexed8: 8,
	FormatBGR24:    24,
}

// BitsPerPixel returns the bit depth of the format.
func (f Format) BitsPerPixel() int {
	if int(f) < len(formatBits) {
		return formatBits[f]
	}
	return 0
}

// Indexed reports whether pixels index a palette.
func (f Format) Indexed() bool {
	return f <= FormatIndexed8
}

// Stride returns the padded row size for width pixels.
func (f Format) Stride(width int) int {
	return device.Stride(width, f.BitsPerPixel())
}

// IndexedFormat returns the smallest indexed format that can address
// paletteLen entries, and false if none can.
func IndexedFormat(paletteLen int) (Format, bool) {
	switch {
	case paletteLen <= 2:
		return FormatIndexed1, true
	case paletteLen <= 4:
		return FormatIndexed2, true
	case paletteLen <= 16:
		return FormatIndexed4, true
	case paletteLen <= 256:
		return FormatIndexed8, true
	}
	return 0, false
}
