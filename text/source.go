package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontSource represents a loaded font file.
// One FontSource backs any number of faces at different sizes.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	addr *FontSource

	data []byte
	font *opentype.Font
	name string

	// bufs holds sfnt.Buffer values; sfnt.Font methods are only safe for
	// concurrent use when each caller brings its own buffer.
	bufs sync.Pool
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	s := &FontSource{
		data: dataCopy,
		font: f,
	}
	s.addr = s
	s.bufs.New = func() any { return new(sfnt.Buffer) }
	s.name = s.lookupName()
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Data returns the raw font bytes. The caller must not modify them.
func (s *FontSource) Data() []byte {
	s.copyCheck()
	return s.data
}

// UnitsPerEm returns the font's design units per em.
func (s *FontSource) UnitsPerEm() int {
	s.copyCheck()
	return int(s.font.UnitsPerEm())
}

// NumGlyphs returns the number of glyphs in the font.
func (s *FontSource) NumGlyphs() int {
	s.copyCheck()
	return s.font.NumGlyphs()
}

// GlyphIndex returns the glyph for r, or 0 when the font has none.
func (s *FontSource) GlyphIndex(r rune) GlyphID {
	s.copyCheck()
	buf := s.buffer()
	defer s.bufs.Put(buf)

	idx, err := s.font.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// HasGlyph reports whether the font maps r to a real glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	return s.GlyphIndex(r) != 0
}

// GlyphAdvance returns the unhinted advance of gid at size points.
func (s *FontSource) GlyphAdvance(gid GlyphID, size float64) float64 {
	s.copyCheck()
	buf := s.buffer()
	defer s.bufs.Put(buf)

	adv, err := s.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), s.unitsPPEM(), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(adv) * s.scale(size)
}

// Metrics returns the font metrics at size points.
func (s *FontSource) Metrics(size float64) Metrics {
	s.copyCheck()
	buf := s.buffer()
	defer s.bufs.Put(buf)

	m, err := s.font.Metrics(buf, s.unitsPPEM(), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	k := s.scale(size)
	ascent := fixedToFloat64(m.Ascent) * k
	descent := fixedToFloat64(m.Descent) * k
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: max(fixedToFloat64(m.Height)*k-ascent-descent, 0),
	}
}

// Outline returns the outline of gid scaled to size points, in a y-down
// coordinate system with the origin on the baseline.
func (s *FontSource) Outline(gid GlyphID, size float64) (*GlyphOutline, error) {
	s.copyCheck()
	buf := s.buffer()
	defer s.bufs.Put(buf)

	segs, err := s.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), s.unitsPPEM(), nil)
	if err != nil {
		return nil, &FontError{Font: s.name, Glyph: gid, Err: err}
	}
	return newGlyphOutline(gid, segs, s.scale(size)), nil
}

// unitsPPEM is the ppem at which sfnt reports values in design units, so
// sizes are applied in float64 without 26.6 rounding.
func (s *FontSource) unitsPPEM() fixed.Int26_6 {
	return fixed.Int26_6(s.font.UnitsPerEm()) << 6
}

// scale converts design units to points at size.
func (s *FontSource) scale(size float64) float64 {
	return size / float64(s.font.UnitsPerEm())
}

func (s *FontSource) buffer() *sfnt.Buffer {
	return s.bufs.Get().(*sfnt.Buffer)
}

func (s *FontSource) lookupName() string {
	buf := s.buffer()
	defer s.bufs.Put(buf)

	if name, err := s.font.Name(buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := s.font.Name(buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
