package gprint

import (
	"errors"
	"math"
)

// DefaultMinLineWidth is the narrowest visible line, in device units, for
// devices that do not report one.
const DefaultMinLineWidth = 1.2

// StrokePolicy keeps strokes visible after transformation to device
// space.
type StrokePolicy struct {
	// MinWidth is the narrowest visible line in device units.
	MinWidth float64
}

// DeviceWidth returns the device width of a line of user width w drawn
// through m: w times the shorter of the transformed unit vectors.
func DeviceWidth(w float64, m Matrix) float64 {
	sx, sy := m.Columns()
	return w * math.Min(sx, sy)
}

// Adjust returns the stroke to draw through m. When the device width of s
// is below MinWidth, the returned copy has the user width that maps to
// exactly MinWidth and the second result is true. Dashed strokes and
// strokes under singular transforms are returned unchanged.
func (p StrokePolicy) Adjust(s Stroke, m Matrix) (Stroke, bool) {
	if s.IsDashed() || p.MinWidth <= 0 {
		return s, false
	}
	if DeviceWidth(s.Width, m) >= p.MinWidth {
		return s, false
	}
	if _, err := m.Invert(); errors.Is(err, ErrDegenerateTransform) {
		return s, false
	}
	sx, sy := m.Columns()
	s.Width = p.MinWidth / math.Min(sx, sy)
	return s, true
}
