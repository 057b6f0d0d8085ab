package gprint

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/device/recording"
	"github.com/gogpu/gprint/text"
)

func fontSource(t *testing.T, data []byte) *text.FontSource {
	t.Helper()
	src, err := text.NewFontSource(data)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	return src
}

func simpleFont(t *testing.T, size float64) *text.SimpleFont {
	t.Helper()
	return text.NewSimpleFont("Go", text.NewFace(fontSource(t, goregular.TTF), size, text.StyleRegular))
}

// measureWith returns a device measure function that agrees with the
// host metrics of srcs, chosen by family name.
func measureWith(srcs ...*text.FontSource) func(device.FontSpec, string) int {
	return func(spec device.FontSpec, s string) int {
		src := srcs[0]
		for _, cand := range srcs {
			if cand.Name() == spec.Family {
				src = cand
			}
		}
		return int(math.Round(text.NewFace(src, spec.Size, text.StyleRegular).Advance(s)))
	}
}

func TestCompositeTextRuns(t *testing.T) {
	regular := fontSource(t, goregular.TTF)
	mono := fontSource(t, gomono.TTF)
	font, err := text.NewCompositeFont("Dialog", 12, text.StyleRegular,
		text.Slot{Source: regular, Ranges: []text.UnicodeRange{text.RangeBasicLatin}},
		text.Slot{Source: mono, Ranges: []text.UnicodeRange{text.RangeCJKUnified}},
	)
	if err != nil {
		t.Fatalf("NewCompositeFont() error = %v", err)
	}

	dev := newRecorder(testCaps(), recording.WithMeasure(measureWith(regular, mono)))
	renderOne(t, dev, func(g *Graphics) error {
		g.SetFont(font)
		return g.DrawString("Hi 中!", 72, 100)
	})

	outs := recording.Filter[recording.TextOutCommand](dev.Commands())
	widths := recording.Filter[recording.MeasureStringCommand](dev.Commands())
	wantText := []string{"Hi ", "中", "!"}
	if len(outs) != len(wantText) || len(widths) != len(wantText) {
		t.Fatalf("TextOut calls = %d, MeasureString calls = %d, want %d each", len(outs), len(widths), len(wantText))
	}
	for i, want := range wantText {
		o := outs[i]
		if o.Text != want {
			t.Errorf("run %d text = %q, want %q", i, o.Text, want)
		}
		if o.Advances != nil {
			t.Errorf("run %d advances = %v, want none when metrics agree", i, o.Advances)
		}
		if o.Y != 100 {
			t.Errorf("run %d y = %v, want 100", i, o.Y)
		}
		if o.Font.Size != 12 {
			t.Errorf("run %d font size = %v, want 12", i, o.Font.Size)
		}
		if i > 0 {
			want := outs[i-1].X + float64(widths[i-1].Width)
			if !near(o.X, want, 1e-9) {
				t.Errorf("run %d x = %v, want %v", i, o.X, want)
			}
		}
	}
	if outs[0].X != 72 {
		t.Errorf("first run x = %v, want 72", outs[0].X)
	}
	if outs[1].Font.Family != mono.Name() || outs[0].Font.Family != regular.Name() {
		t.Errorf("run families = %q, %q, want %q, %q",
			outs[0].Font.Family, outs[1].Font.Family, regular.Name(), mono.Name())
	}
}

func TestTextSendsAdvancesWhenMetricsDisagree(t *testing.T) {
	wide := recording.WithMeasure(func(spec device.FontSpec, s string) int { return 1000 })
	dev := newRecorder(testCaps(), wide)
	renderOne(t, dev, func(g *Graphics) error {
		g.SetFont(simpleFont(t, 10))
		return g.DrawString("abc", 0, 50)
	})
	outs := recording.Filter[recording.TextOutCommand](dev.Commands())
	if len(outs) != 1 {
		t.Fatalf("TextOut calls = %d, want 1", len(outs))
	}
	if got := len(outs[0].Advances); got != 6 {
		t.Fatalf("advances = %d values, want 6", got)
	}
	for i := 1; i < 6; i += 2 {
		if outs[0].Advances[i] != 0 {
			t.Errorf("advance y[%d] = %v, want 0 for horizontal text", i/2, outs[0].Advances[i])
		}
	}
}

func TestTextRotated(t *testing.T) {
	dev := newRecorder(testCaps())
	renderOne(t, dev, func(g *Graphics) error {
		g.SetFont(simpleFont(t, 12))
		g.Translate(300, 300)
		g.Rotate(-math.Pi / 2)
		return g.DrawString("up", 100, 200)
	})
	fonts := recording.Filter[recording.SelectFontCommand](dev.Commands())
	if len(fonts) != 1 || fonts[0].Spec.Angle != 900 {
		t.Fatalf("SelectFont = %+v, want one at 900", fonts)
	}
	outs := recording.Filter[recording.TextOutCommand](dev.Commands())
	if len(outs) != 1 {
		t.Fatalf("TextOut calls = %d, want 1", len(outs))
	}
	if !near(outs[0].X, 500, 1e-9) || !near(outs[0].Y, 200, 1e-9) {
		t.Errorf("TextOut at (%v, %v), want (500, 200)", outs[0].X, outs[0].Y)
	}
}

func TestTextOutlineFallback(t *testing.T) {
	tests := []struct {
		name      string
		opts      []recording.Option
		transform Matrix
	}{
		{"font refused", []recording.Option{recording.WithFonts(func(device.FontSpec) bool { return false })}, Identity()},
		{"sheared", nil, Shear(0.3, 0)},
		{"mirrored", nil, Scale(-1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newRecorder(testCaps(), tt.opts...)
			renderOne(t, dev, func(g *Graphics) error {
				g.SetFont(simpleFont(t, 24))
				g.Translate(200, 200)
				g.Transform(tt.transform)
				return g.DrawString("Wg", 0, 0)
			})
			if n := dev.Count(recording.CmdTextOut); n != 0 {
				t.Errorf("TextOut calls = %d, want 0", n)
			}
			fills := recording.Filter[recording.FillPathCommand](dev.Commands())
			if len(fills) != 1 {
				t.Fatalf("FillPath calls = %d, want 1", len(fills))
			}
			if fills[0].Mode != device.FillModeWinding {
				t.Errorf("outline fill mode = %v, want Winding", fills[0].Mode)
			}
		})
	}
}

func TestTextComplexScriptLaidOut(t *testing.T) {
	dev := newRecorder(testCaps())
	renderOne(t, dev, func(g *Graphics) error {
		g.SetFont(simpleFont(t, 12))
		return g.DrawString("مرحبا", 300, 100)
	})
	if n := dev.Count(recording.CmdTextOut); n != 0 {
		t.Errorf("TextOut calls = %d, want 0", n)
	}
	outs := recording.Filter[recording.GlyphsOutCommand](dev.Commands())
	if len(outs) != 1 {
		t.Fatalf("GlyphsOut calls = %d, want 1", len(outs))
	}
	if got, want := len(outs[0].Advances), 2*len(outs[0].Glyphs); got != want {
		t.Errorf("advances = %d values, want %d", got, want)
	}
}

// clusterShaper returns a fixed two-cluster layout: a base glyph with a
// mark at +3, then a raised glyph at +10.
type clusterShaper struct{}

func (clusterShaper) Shape(string, *text.Face) (text.ShapedRun, error) {
	return text.ShapedRun{
		Glyphs: []text.ShapedGlyph{
			{GID: 5, Cluster: 0, X: 0, XAdvance: 3},
			{GID: 6, Cluster: 0, X: 3, XAdvance: 7},
			{GID: 7, Cluster: 1, X: 10, Y: -2, XAdvance: 10},
		},
		Advance: 20,
	}, nil
}

func TestTextLaidOutPositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []Point
		want      []float64 // GlyphsOut advances between the three glyphs
	}{
		{"shaped pen", nil, []float64{3, 0, 7, -2}},
		{"caller positions", []Point{{X: 0, Y: 0}, {X: 50, Y: 5}}, []float64{3, 0, 47, 3}},
		{"first cluster only", []Point{{X: 4, Y: 0}}, []float64{3, 0, 7, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newRecorder(testCaps())
			renderOne(t, dev, func(g *Graphics) error {
				g.SetFont(simpleFont(t, 12))
				return g.DrawGlyphs(GlyphRun{Text: "مر", Positions: tt.positions}, 100, 100)
			}, WithShaper(clusterShaper{}))

			outs := recording.Filter[recording.GlyphsOutCommand](dev.Commands())
			if len(outs) != 1 {
				t.Fatalf("GlyphsOut calls = %d, want 1", len(outs))
			}
			o := outs[0]
			wantX := 100.0
			if len(tt.positions) > 0 {
				wantX += tt.positions[0].X
			}
			if !near(o.X, wantX, 1e-9) || !near(o.Y, 100, 1e-9) {
				t.Errorf("origin = (%v, %v), want (%v, 100)", o.X, o.Y, wantX)
			}
			if len(o.Advances) != 6 {
				t.Fatalf("advances = %v, want 3 pairs", o.Advances)
			}
			for i, want := range tt.want {
				if !near(o.Advances[i], want, 1e-9) {
					t.Errorf("advances[%d] = %v, want %v", i, o.Advances[i], want)
				}
			}
		})
	}
}

func TestTextSkipsNonInvertibleTransform(t *testing.T) {
	refuse := recording.WithFonts(func(device.FontSpec) bool { return false })
	dev := newRecorder(testCaps(), refuse)
	renderOne(t, dev, func(g *Graphics) error {
		g.SetFont(simpleFont(t, 24))
		g.Translate(200, 200)
		g.Scale(1e-7, 1e-7)
		if err := g.DrawString("Wg", 0, 0); err != nil {
			t.Errorf("DrawString() error = %v", err)
		}
		return nil
	})
	if n := dev.Count(recording.CmdFillPath); n != 0 {
		t.Errorf("FillPath calls = %d, want the run skipped", n)
	}
	if n := dev.Count(recording.CmdTextOut); n != 0 {
		t.Errorf("TextOut calls = %d, want 0", n)
	}
}

func TestDrawGlyphs(t *testing.T) {
	font := simpleFont(t, 20)
	src := font.Face().Source()
	codes := []text.GlyphCode{
		text.MakeGlyphCode(0, src.GlyphIndex('A')),
		text.InvisibleGlyph,
		text.MakeGlyphCode(0, src.GlyphIndex('B')),
	}
	dev := newRecorder(testCaps())
	renderOne(t, dev, func(g *Graphics) error {
		g.SetFont(font)
		return g.DrawGlyphs(GlyphRun{Glyphs: codes}, 10, 40)
	})
	outs := recording.Filter[recording.GlyphsOutCommand](dev.Commands())
	if len(outs) != 1 {
		t.Fatalf("GlyphsOut calls = %d, want 1", len(outs))
	}
	o := outs[0]
	if len(o.Glyphs) != 2 {
		t.Fatalf("glyphs = %v, want the two visible ones", o.Glyphs)
	}
	if o.X != 10 || o.Y != 40 {
		t.Errorf("origin = (%v, %v), want (10, 40)", o.X, o.Y)
	}
	wantA := font.Face().GlyphAdvance(src.GlyphIndex('A'))
	if !near(o.Advances[0], wantA, 1e-9) || o.Advances[1] != 0 {
		t.Errorf("first advance = (%v, %v), want (%v, 0)", o.Advances[0], o.Advances[1], wantA)
	}
}

func TestDrawStringWithoutFont(t *testing.T) {
	dev := newRecorder(testCaps())
	renderOne(t, dev, func(g *Graphics) error {
		if err := g.DrawString("x", 0, 0); !errors.Is(err, ErrNoFont) {
			t.Errorf("DrawString() error = %v, want ErrNoFont", err)
		}
		return nil
	})
}

func TestTextRoute(t *testing.T) {
	plain := testCaps()
	noText := testCaps()
	noText.NativeText = false
	arabic := testCaps()
	arabic.ShapedScripts = []text.Script{text.ScriptArabic}

	tests := []struct {
		name string
		caps device.Capabilities
		run  GlyphRun
		m    Matrix
		want textRoute
	}{
		{"plain", plain, GlyphRun{Text: "hello"}, Identity(), routeNative},
		{"rotated scaled", plain, GlyphRun{Text: "hello"}, Rotate(1).Multiply(Scale(2, 3)), routeNative},
		{"sheared", plain, GlyphRun{Text: "hello"}, Shear(0.2, 0), routeOutline},
		{"mirrored", plain, GlyphRun{Text: "hello"}, Scale(1, -1), routeOutline},
		{"no device text", noText, GlyphRun{Text: "hello"}, Identity(), routeOutline},
		{"per glyph transforms", plain, GlyphRun{Text: "hi", Transforms: []Matrix{Rotate(0.1)}}, Identity(), routeOutline},
		{"complex script", plain, GlyphRun{Text: "مرحبا"}, Identity(), routeLaidOut},
		{"complex script shaped by device", arabic, GlyphRun{Text: "مرحبا"}, Identity(), routeNative},
		{"glyphs skip shaping", plain, GlyphRun{Glyphs: []text.GlyphCode{1}}, Identity(), routeNative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGraphics(t, newRecorder(tt.caps))
			if got := g.text.route(tt.run, tt.m); got != tt.want {
				t.Errorf("route() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEscapement(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want int
	}{
		{"identity", Identity(), 0},
		{"scaled", Scale(2, 5), 0},
		{"counter-clockwise quarter", Rotate(-math.Pi / 2), 900},
		{"clockwise quarter", Rotate(math.Pi / 2), 2700},
		{"half turn", Rotate(math.Pi), 1800},
		{"small clockwise", Rotate(math.Pi / 180), 3590},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapement(tt.m); got != tt.want {
				t.Errorf("escapement() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMetricsAgree(t *testing.T) {
	tests := []struct {
		device, host float64
		want         bool
	}{
		{100, 100, true},
		{100, 100.9, true},
		{100, 101, true},
		{200, 201.5, true},
		{100, 102, false},
		{0, 0, true},
		{5, 0, false},
		{990, 1000, false},
	}
	for _, tt := range tests {
		if got := metricsAgree(tt.device, tt.host); got != tt.want {
			t.Errorf("metricsAgree(%v, %v) = %v, want %v", tt.device, tt.host, got, tt.want)
		}
	}
}

func TestFilterInvisible(t *testing.T) {
	codes := []text.GlyphCode{
		text.MakeGlyphCode(0, 5),
		text.InvisibleGlyph,
		text.MakeGlyphCode(1, 7),
		text.MakeGlyphCode(1, text.InvisibleGlyphs),
	}
	pos := []float64{0, 0, 1, 1, 2, 2, 3, 3}

	gotCodes, gotPos := filterInvisible(codes, pos)
	if len(gotCodes) != 2 || gotCodes[0] != codes[0] || gotCodes[1] != codes[2] {
		t.Errorf("codes = %v, want [%v %v]", gotCodes, codes[0], codes[2])
	}
	wantPos := []float64{0, 0, 2, 2}
	if len(gotPos) != len(wantPos) {
		t.Fatalf("positions = %v, want %v", gotPos, wantPos)
	}
	for i := range wantPos {
		if gotPos[i] != wantPos[i] {
			t.Errorf("positions = %v, want %v", gotPos, wantPos)
			break
		}
	}

	visible := codes[:1]
	if c, _ := filterInvisible(visible, pos[:2]); &c[0] != &visible[0] {
		t.Error("filterInvisible copied a slice with nothing to remove")
	}
}
