package text

// Shaper converts text to positioned glyphs in visual order.
//
// Implementations must be safe for concurrent use.
type Shaper interface {
	Shape(s string, face *Face) (ShapedRun, error)
}
