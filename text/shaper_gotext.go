package text

import (
	"bytes"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// GoTextShaper shapes text with the HarfBuzz port in go-text/typesetting.
// It handles ligatures, kerning, cursive joining, mark positioning and
// right-to-left runs.
//
// GoTextShaper is safe for concurrent use. Parsed font.Font values are
// cached per FontSource and shared; font.Face and HarfbuzzShaper are not
// safe for concurrent use, so a face is created per call and shapers are
// pooled.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*FontSource]*font.Font
}

// NewGoTextShaper creates a GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[*FontSource]*font.Font),
	}
}

// Shape implements Shaper.
func (s *GoTextShaper) Shape(str string, face *Face) (ShapedRun, error) {
	if str == "" {
		return ShapedRun{}, nil
	}
	if face == nil {
		return ShapedRun{}, ErrNilSource
	}

	f, err := s.getOrCreateFont(face.Source())
	if err != nil {
		return ShapedRun{}, err
	}

	runes := []rune(str)
	cls := Classify(str)
	dir := DirectionLTR
	if cls.RTL {
		dir = DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      font.NewFace(f),
		Size:      floatToFixed(face.Size()),
		Script:    cls.Script.Tag(),
		Language:  language.DefaultLanguage(),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)

	glyphs, advance := convertGlyphs(out.Glyphs, runes)
	return ShapedRun{Glyphs: glyphs, Direction: dir, Advance: advance}, nil
}

func (s *GoTextShaper) getOrCreateFont(source *FontSource) (*font.Font, error) {
	s.mu.RLock()
	if f, ok := s.fontCache[source]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fontCache[source]; ok {
		return f, nil
	}

	parsed, err := font.ParseTTF(bytes.NewReader(source.Data()))
	if err != nil {
		return nil, fmt.Errorf("text: shaping %s: %w", source.Name(), err)
	}
	s.fontCache[source] = parsed.Font
	return parsed.Font, nil
}

func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// convertGlyphs positions glyphs along the run. Zero-width glyphs produced
// for format characters (joiners, bidi marks) become InvisibleGlyph.
func convertGlyphs(glyphs []shaping.Glyph, runes []rune) ([]ShapedGlyph, float64) {
	if len(glyphs) == 0 {
		return nil, 0
	}

	result := make([]ShapedGlyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		adv := fixedToFloat64(g.Advance)
		code := GlyphCode(g.GlyphID)
		if adv == 0 && g.RuneCount == 1 {
			if idx := g.TextIndex(); idx >= 0 && idx < len(runes) && unicode.Is(unicode.Cf, runes[idx]) {
				code = InvisibleGlyph
			}
		}
		result[i] = ShapedGlyph{
			GID:      code,
			Cluster:  g.TextIndex(),
			X:        x + fixedToFloat64(g.XOffset),
			Y:        -fixedToFloat64(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result, x
}
