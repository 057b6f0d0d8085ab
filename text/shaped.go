package text

// ShapedGlyph is a glyph positioned by a Shaper.
type ShapedGlyph struct {
	// GID is the glyph index in the face, or InvisibleGlyph when shaping
	// removed the glyph.
	GID GlyphCode

	// Cluster is the rune index in the shaped text this glyph came from.
	Cluster int

	// X is the pen position relative to the run origin.
	X float64

	// Y is the offset from the baseline, positive downward.
	Y float64

	// XAdvance is the horizontal advance to the next glyph.
	XAdvance float64
}

// ShapedRun is the output of shaping a string in one face.
type ShapedRun struct {
	Glyphs    []ShapedGlyph
	Direction Direction
	// Advance is the total horizontal advance of the run.
	Advance float64
}
