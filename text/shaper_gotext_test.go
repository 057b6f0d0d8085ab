package text

import (
	"sync"
	"testing"

	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func goTextTestFace(t *testing.T) *Face {
	t.Helper()
	return NewFace(testSource(t, goregular.TTF), 16, StyleRegular)
}

func TestGoTextShaperBasicLatin(t *testing.T) {
	face := goTextTestFace(t)
	shaper := NewGoTextShaper()

	run, err := shaper.Shape("Hello", face)
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if len(run.Glyphs) != 5 {
		t.Fatalf("Shape(\"Hello\"): got %d glyphs, want 5", len(run.Glyphs))
	}
	if run.Direction != DirectionLTR {
		t.Errorf("Direction = %v, want LTR", run.Direction)
	}

	var prevX, sum float64
	for i, g := range run.Glyphs {
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d: XAdvance=%f, want > 0", i, g.XAdvance)
		}
		if i > 0 && g.X <= prevX {
			t.Errorf("glyph %d: X=%f should be > previous X=%f", i, g.X, prevX)
		}
		if g.Cluster != i {
			t.Errorf("glyph %d: Cluster=%d", i, g.Cluster)
		}
		prevX = g.X
		sum += g.XAdvance
	}
	if d := sum - run.Advance; d > 1e-9 || d < -1e-9 {
		t.Errorf("Advance = %f, want sum of glyph advances %f", run.Advance, sum)
	}
}

func TestGoTextShaperEmpty(t *testing.T) {
	run, err := NewGoTextShaper().Shape("", goTextTestFace(t))
	if err != nil || len(run.Glyphs) != 0 {
		t.Errorf("Shape(\"\") = %+v, %v", run, err)
	}
	if _, err := NewGoTextShaper().Shape("x", nil); err == nil {
		t.Error("Shape with nil face succeeded")
	}
}

func TestGoTextShaperRTL(t *testing.T) {
	run, err := NewGoTextShaper().Shape("שלום", goTextTestFace(t))
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if run.Direction != DirectionRTL {
		t.Errorf("Direction = %v, want RTL", run.Direction)
	}
	if len(run.Glyphs) != 4 {
		t.Fatalf("got %d glyphs, want 4", len(run.Glyphs))
	}
	// Visual order: the first glyph drawn is the last logical rune.
	if run.Glyphs[0].Cluster != 3 {
		t.Errorf("first glyph cluster = %d, want 3", run.Glyphs[0].Cluster)
	}
}

func TestGoTextShaperConcurrent(t *testing.T) {
	face := goTextTestFace(t)
	shaper := NewGoTextShaper()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				run, err := shaper.Shape("Concurrent", face)
				if err != nil || len(run.Glyphs) != 10 {
					t.Errorf("Shape = %d glyphs, %v", len(run.Glyphs), err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestConvertGlyphsInvisible(t *testing.T) {
	glyphs := []shaping.Glyph{
		{Advance: fixed.I(10), GlyphID: 5, ClusterIndex: 0, RuneCount: 1},
		{Advance: 0, GlyphID: 3, ClusterIndex: 1, RuneCount: 1},
		{Advance: fixed.I(7), GlyphID: 6, ClusterIndex: 2, RuneCount: 1, YOffset: fixed.I(2)},
	}
	got, adv := convertGlyphs(glyphs, []rune{'a', '\u200d', 'b'})

	if adv != 17 {
		t.Errorf("advance = %f, want 17", adv)
	}
	if got[0].GID != 5 || got[1].GID != InvisibleGlyph || got[2].GID != 6 {
		t.Errorf("GIDs = %d %d %d", got[0].GID, got[1].GID, got[2].GID)
	}
	if !got[1].GID.Invisible() {
		t.Error("joiner glyph not invisible")
	}
	if got[2].X != 10 || got[2].Y != -2 {
		t.Errorf("glyph 2 at (%f, %f), want (10, -2)", got[2].X, got[2].Y)
	}
}
