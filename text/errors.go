package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoSlots is returned when a composite font has no slots.
	ErrNoSlots = errors.New("text: composite font needs at least one slot")

	// ErrTooManySlots is returned when a composite font has more slots
	// than the glyph code slot byte can address.
	ErrTooManySlots = errors.New("text: composite font has more than 255 slots")

	// ErrNilSource is returned when a slot or face has no FontSource.
	ErrNilSource = errors.New("text: nil font source")
)

// FontError reports a failure to read glyph data from a font.
type FontError struct {
	Font  string
	Glyph GlyphID
	Err   error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("text: %s: glyph %d: %v", e.Font, e.Glyph, e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}
