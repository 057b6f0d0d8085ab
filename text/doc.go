// Package text provides the font model used by the gprint pipeline.
//
// The package separates four concerns:
//
//   - FontSource: a parsed OpenType/TrueType file (golang.org/x/image).
//   - Face: a FontSource at a size and style.
//   - FontRef: what a drawing call refers to, either a *SimpleFont (one
//     face) or a *CompositeFont (ordered slots of faces, each covering
//     Unicode ranges).
//   - Shaper: the layout collaborator used for complex scripts, backed by
//     go-text/typesetting's HarfBuzz port.
//
// # Composite glyph codes
//
// Glyph codes of a composite font carry the owning slot in the high byte
// and the face-local glyph index in the low three bytes:
//
//	code := text.MakeGlyphCode(slot, gid)
//	code.Slot()  // slot
//	code.Glyph() // gid
//
// Codes whose low bytes are at or above InvisibleGlyphs mark glyphs that
// shaping has merged or elided; they must not be drawn.
//
// # Example
//
//	latin, _ := text.NewFontSource(goregular.TTF)
//	cjk, _ := text.NewFontSourceFromFile("NotoSansSC-Regular.otf")
//	f, err := text.NewCompositeFont("Dialog", 12, text.StyleRegular,
//	    text.Slot{Source: latin, Ranges: []text.UnicodeRange{text.RangeBasicLatin}},
//	    text.Slot{Source: cjk, Ranges: []text.UnicodeRange{text.RangeCJKUnified}, Charset: text.CharsetGBK},
//	)
package text
