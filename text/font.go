package text

import (
	"fmt"
	"unicode/utf8"
)

// GlyphID is a face-local glyph index.
type GlyphID uint16

// Style is a font style selection.
type Style uint8

// Style flags.
const (
	StyleRegular Style = 0
	StyleBold    Style = 1
	StyleItalic  Style = 2
)

// Bold reports whether the bold flag is set.
func (s Style) Bold() bool { return s&StyleBold != 0 }

// Italic reports whether the italic flag is set.
func (s Style) Italic() bool { return s&StyleItalic != 0 }

func (s Style) String() string {
	switch s {
	case StyleRegular:
		return "Regular"
	case StyleBold:
		return "Bold"
	case StyleItalic:
		return "Italic"
	case StyleBold | StyleItalic:
		return "BoldItalic"
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// Face is a FontSource at a particular size and style.
// Face is immutable and safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64
	style  Style
}

// NewFace returns a face of src at size points.
// Panics if src is nil.
func NewFace(src *FontSource, size float64, style Style) *Face {
	if src == nil {
		panic("text: nil FontSource passed to NewFace")
	}
	return &Face{source: src, size: size, style: style}
}

// Source returns the underlying font file.
func (f *Face) Source() *FontSource { return f.source }

// Size returns the face size in points.
func (f *Face) Size() float64 { return f.size }

// Style returns the face style.
func (f *Face) Style() Style { return f.style }

// Metrics returns the font metrics at the face size.
func (f *Face) Metrics() Metrics { return f.source.Metrics(f.size) }

// GlyphAdvance returns the advance of gid at the face size.
func (f *Face) GlyphAdvance(gid GlyphID) float64 {
	return f.source.GlyphAdvance(gid, f.size)
}

// Advance returns the summed unshaped advance of s.
func (f *Face) Advance(s string) float64 {
	var total float64
	for _, r := range s {
		total += f.GlyphAdvance(f.source.GlyphIndex(r))
	}
	return total
}

// Outline returns the outline of gid at the face size.
func (f *Face) Outline(gid GlyphID) (*GlyphOutline, error) {
	return f.source.Outline(gid, f.size)
}

// Run is a maximal span of text drawn from a single slot.
type Run struct {
	Slot  int
	Text  string
	Codes []GlyphCode
}

// FontRef is the font a drawing call refers to: either a *SimpleFont or
// a *CompositeFont.
type FontRef interface {
	// Family is the family name handed to devices.
	Family() string
	// Size is the nominal size in points.
	Size() float64
	// Style is the nominal style.
	Style() Style
	// NumSlots returns the number of component faces; 1 for simple fonts.
	NumSlots() int
	// Slot returns the face of slot i.
	Slot(i int) *Face
	// SlotCharset returns the native charset of slot i.
	SlotCharset(i int) Charset
	// Runs splits s into slot runs with their glyph codes.
	Runs(s string) []Run

	fontRef()
}

// SimpleFont is a FontRef backed by a single face.
type SimpleFont struct {
	face    *Face
	family  string
	charset Charset
}

// NewSimpleFont returns a single-face font. An empty family defaults to
// the name recorded in the font file.
func NewSimpleFont(family string, face *Face) *SimpleFont {
	if family == "" {
		family = face.Source().Name()
	}
	return &SimpleFont{face: face, family: family}
}

// WithCharset returns a copy of f whose native charset is cs.
func (f *SimpleFont) WithCharset(cs Charset) *SimpleFont {
	c := *f
	c.charset = cs
	return &c
}

func (f *SimpleFont) Family() string          { return f.family }
func (f *SimpleFont) Size() float64           { return f.face.Size() }
func (f *SimpleFont) Style() Style            { return f.face.Style() }
func (f *SimpleFont) NumSlots() int           { return 1 }
func (f *SimpleFont) Slot(int) *Face          { return f.face }
func (f *SimpleFont) SlotCharset(int) Charset { return f.charset }
func (f *SimpleFont) fontRef()                {}

// Face returns the only face of the font.
func (f *SimpleFont) Face() *Face { return f.face }

// Runs implements FontRef.
func (f *SimpleFont) Runs(s string) []Run {
	if s == "" {
		return nil
	}
	codes := make([]GlyphCode, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		codes = append(codes, MakeGlyphCode(0, f.face.source.GlyphIndex(r)))
	}
	return []Run{{Slot: 0, Text: s, Codes: codes}}
}

// Slot describes one component of a composite font.
type Slot struct {
	Source *FontSource
	// Ranges restricts the slot to these code points. Empty means all.
	Ranges []UnicodeRange
	// Charset is the slot's native encoding on non-Unicode devices.
	Charset Charset
}

// CompositeFont is a FontRef made of ordered slots. Each code point is
// drawn from the first slot whose ranges contain it and whose font has a
// glyph for it.
type CompositeFont struct {
	family string
	size   float64
	style  Style
	slots  []Slot
	faces  []*Face
}

// NewCompositeFont builds a composite font from slots.
func NewCompositeFont(family string, size float64, style Style, slots ...Slot) (*CompositeFont, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	if len(slots) > maxSlots {
		return nil, ErrTooManySlots
	}
	c := &CompositeFont{
		family: family,
		size:   size,
		style:  style,
		slots:  make([]Slot, len(slots)),
		faces:  make([]*Face, len(slots)),
	}
	for i, s := range slots {
		if s.Source == nil {
			return nil, fmt.Errorf("slot %d: %w", i, ErrNilSource)
		}
		c.slots[i] = Slot{Source: s.Source, Ranges: append([]UnicodeRange(nil), s.Ranges...), Charset: s.Charset}
		c.faces[i] = NewFace(s.Source, size, style)
	}
	return c, nil
}

func (c *CompositeFont) Family() string            { return c.family }
func (c *CompositeFont) Size() float64             { return c.size }
func (c *CompositeFont) Style() Style              { return c.style }
func (c *CompositeFont) NumSlots() int             { return len(c.slots) }
func (c *CompositeFont) Slot(i int) *Face          { return c.faces[i] }
func (c *CompositeFont) SlotCharset(i int) Charset { return c.slots[i].Charset }
func (c *CompositeFont) fontRef()                  {}

// SlotFor returns the slot that draws r. When no slot has a glyph for r,
// the first slot whose ranges contain r is used, then slot 0.
func (c *CompositeFont) SlotFor(r rune) int {
	fallback := -1
	for i, s := range c.slots {
		if !inRanges(s.Ranges, r) {
			continue
		}
		if s.Source.HasGlyph(r) {
			return i
		}
		if fallback < 0 {
			fallback = i
		}
	}
	if fallback < 0 {
		return 0
	}
	return fallback
}

// Runs implements FontRef.
func (c *CompositeFont) Runs(s string) []Run {
	var runs []Run
	start := 0
	for i, r := range s {
		slot := c.SlotFor(r)
		code := MakeGlyphCode(slot, c.slots[slot].Source.GlyphIndex(r))
		if n := len(runs); n > 0 && runs[n-1].Slot == slot {
			runs[n-1].Codes = append(runs[n-1].Codes, code)
			continue
		}
		if n := len(runs); n > 0 {
			runs[n-1].Text = s[start:i]
		}
		start = i
		runs = append(runs, Run{Slot: slot, Codes: []GlyphCode{code}})
	}
	if n := len(runs); n > 0 {
		runs[n-1].Text = s[start:]
	}
	return runs
}

// GlyphCode is a glyph reference that carries its composite slot.
type GlyphCode uint32

const (
	glyphBits = 24
	glyphMask = 1<<glyphBits - 1
	maxSlots  = 255

	// InvisibleGlyphs is the lowest glyph value that marks a glyph shaping
	// removed. Such codes occupy a position but are never drawn.
	InvisibleGlyphs = 0xFFFE
)

// InvisibleGlyph is the code shapers emit for removed glyphs.
const InvisibleGlyph GlyphCode = 0xFFFF

// MakeGlyphCode combines a slot and a glyph index.
func MakeGlyphCode(slot int, gid GlyphID) GlyphCode {
	return GlyphCode(uint32(slot)<<glyphBits | uint32(gid))
}

// Slot returns the composite slot, 0 for simple fonts.
func (c GlyphCode) Slot() int { return int(c >> glyphBits) }

// Glyph returns the face-local glyph value.
func (c GlyphCode) Glyph() uint32 { return uint32(c) & glyphMask }

// Invisible reports whether the code must be skipped when drawing.
func (c GlyphCode) Invisible() bool { return c.Glyph() >= InvisibleGlyphs }
