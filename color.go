package gprint

import (
	"image/color"
	"math"
	"strconv"

	"github.com/gogpu/gprint/device"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// Hex parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional). Malformed input yields opaque black.
func Hex(s string) RGBA {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 8 {
		return Black
	}
	return RGBA{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Opaque reports whether the color has full alpha.
func (c RGBA) Opaque() bool {
	return c.A >= 1
}

// Over composites c onto the opaque color bg and returns the result.
func (c RGBA) Over(bg RGBA) RGBA {
	a := math.Max(0, math.Min(1, c.A))
	return RGBA{
		R: c.R*a + bg.R*(1-a),
		G: c.G*a + bg.G*(1-a),
		B: c.B*a + bg.B*(1-a),
		A: 1,
	}
}

// device returns the device color. Devices have no alpha channel, so
// translucent colors are flattened onto white paper.
func (c RGBA) device() device.Color {
	if !c.Opaque() {
		c = c.Over(White)
	}
	return device.Color{R: to8(c.R), G: to8(c.G), B: to8(c.B)}
}

func to8(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)
