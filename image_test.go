package gprint

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/device/recording"
)

func TestSelectBlitStrategy(t *testing.T) {
	plain := testCaps()
	alpha := testCaps()
	alpha.AlphaBlit = true
	noMask := testCaps()
	noMask.BitmaskTransparency = false

	tests := []struct {
		name string
		caps device.Capabilities
		req  BlitRequest
		want BlitStrategy
	}{
		{"empty", plain, BlitRequest{Empty: true, Transparency: TransparencyAlpha}, BlitSkip},
		{"opaque", plain, BlitRequest{Transparency: TransparencyOpaque, AxisAligned: true}, BlitOpaque},
		{"background", alpha, BlitRequest{Transparency: TransparencyAlpha, Background: true}, BlitOpaque},
		{"non source-over", alpha, BlitRequest{Transparency: TransparencyAlpha, Composite: CompositeMultiply}, BlitOpaque},
		{"bitmask axis aligned", plain, BlitRequest{Transparency: TransparencyBitmask, AxisAligned: true}, BlitMasked},
		{"bitmask rotated", plain, BlitRequest{Transparency: TransparencyBitmask, CanRedraw: true}, BlitRedraw},
		{"bitmask unsupported", noMask, BlitRequest{Transparency: TransparencyBitmask, AxisAligned: true}, BlitOpaque},
		{"alpha device blends", alpha, BlitRequest{Transparency: TransparencyAlpha, CanRedraw: true}, BlitAlpha},
		{"alpha redraw", plain, BlitRequest{Transparency: TransparencyAlpha, CanRedraw: true}, BlitRedraw},
		{"alpha forced opaque", plain, BlitRequest{Transparency: TransparencyAlpha}, BlitOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectBlitStrategy(tt.caps, tt.req); got != tt.want {
				t.Errorf("SelectBlitStrategy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransparency(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fillNRGBA(opaque, color.NRGBA{R: 10, A: 255})
	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fillNRGBA(translucent, color.NRGBA{R: 10, A: 255})
	translucent.SetNRGBA(1, 1, color.NRGBA{A: 40})

	tests := []struct {
		name string
		src  ImageSource
		want Transparency
	}{
		{"opaque", ImageSource{Image: opaque}, TransparencyOpaque},
		{"alpha", ImageSource{Image: translucent}, TransparencyAlpha},
		{"opaque sub-rectangle", ImageSource{Image: translucent, Rect: image.Rect(0, 0, 1, 2)}, TransparencyOpaque},
		{"palette bitmask", ImageSource{Image: paletted(color.Transparent, color.Black)}, TransparencyBitmask},
		{"palette opaque", ImageSource{Image: paletted(color.White, color.Black)}, TransparencyOpaque},
		{"palette alpha", ImageSource{Image: paletted(color.NRGBA{A: 128}, color.Black)}, TransparencyAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.src.Transparency(); got != tt.want {
				t.Errorf("Transparency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func fillNRGBA(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// paletted returns a 4x4 image using both palette entries.
func paletted(c0, c1 color.Color) *image.Paletted {
	p := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{c0, c1})
	for i := range p.Pix {
		p.Pix[i] = uint8(i % 2)
	}
	return p
}

func drawImage(t *testing.T, caps device.Capabilities, src ImageSource, bg *RGBA, opts ...Option) *recording.Device {
	t.Helper()
	dev := newRecorder(caps)
	renderOne(t, dev, func(g *Graphics) error {
		return g.DrawImage(src, bg)
	}, opts...)
	return dev
}

func TestDrawImageOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fillNRGBA(img, color.NRGBA{R: 255, A: 255})
	dev := drawImage(t, testCaps(), ImageSource{Image: img, Transform: Translate(10, 20)}, nil)

	blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
	if len(blits) != 1 {
		t.Fatalf("DrawPackedImage calls = %d, want 1", len(blits))
	}
	b := blits[0]
	if b.Image.BitsPerPixel != 24 {
		t.Errorf("bits per pixel = %d, want 24", b.Image.BitsPerPixel)
	}
	if want := (device.Rect{X: 10, Y: 20, W: 4, H: 4}); b.Dst != want {
		t.Errorf("dst = %+v, want %+v", b.Dst, want)
	}
	if got := b.Image.Pix[:3]; got[0] != 0 || got[1] != 0 || got[2] != 255 {
		t.Errorf("first pixel BGR = %v, want [0 0 255]", got)
	}
}

func TestDrawImageFlattensAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fillNRGBA(img, color.NRGBA{B: 255, A: 128})
	red := Red

	tests := []struct {
		name    string
		bg      *RGBA
		wantBGR [3]uint8
	}{
		{"over white", nil, [3]uint8{255, 127, 127}},
		{"over background", &red, [3]uint8{128, 0, 127}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := drawImage(t, testCaps(), ImageSource{Image: img}, tt.bg)
			blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
			if len(blits) != 1 {
				t.Fatalf("DrawPackedImage calls = %d, want 1", len(blits))
			}
			p := blits[0].Image
			if p.BitsPerPixel != 24 {
				t.Fatalf("bits per pixel = %d, want 24", p.BitsPerPixel)
			}
			for i, want := range tt.wantBGR {
				if d := int(p.Pix[i]) - int(want); d < -2 || d > 2 {
					t.Errorf("BGR = %v, want about %v", p.Pix[:3], tt.wantBGR)
					break
				}
			}
		})
	}
}

func TestDrawImageAlphaBlit(t *testing.T) {
	caps := testCaps()
	caps.AlphaBlit = true
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fillNRGBA(img, color.NRGBA{G: 255, A: 100})
	dev := drawImage(t, caps, ImageSource{Image: img}, nil)

	blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
	if len(blits) != 1 || blits[0].Image.BitsPerPixel != 32 {
		t.Fatalf("blits = %+v, want one 32-bit image", blits)
	}
	if a := blits[0].Image.Pix[3]; a < 98 || a > 102 {
		t.Errorf("alpha = %d, want about 100", a)
	}
}

func TestDrawImageIndexed(t *testing.T) {
	tests := []struct {
		name             string
		src              *image.Paletted
		wantTransparent  bool
		wantFirstPalette device.Color
	}{
		{"bitmask keeps transparent index", paletted(color.Transparent, color.Black), true, device.Color{}},
		{"translucent palette flattened", paletted(color.NRGBA{R: 255, A: 128}, color.Black), false, device.Color{R: 255, G: 127, B: 127}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := drawImage(t, testCaps(), ImageSource{Image: tt.src, Transform: Scale(2, 2)}, nil)
			blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
			if len(blits) != 1 {
				t.Fatalf("DrawPackedImage calls = %d, want 1", len(blits))
			}
			p := blits[0].Image
			if p.BitsPerPixel > 8 {
				t.Errorf("bits per pixel = %d, want indexed", p.BitsPerPixel)
			}
			if got := p.TransparentIndex >= 0; got != tt.wantTransparent {
				t.Errorf("TransparentIndex = %d, want transparent %v", p.TransparentIndex, tt.wantTransparent)
			}
			if want := (device.Rect{W: 8, H: 8}); blits[0].Dst != want {
				t.Errorf("dst = %+v, want %+v", blits[0].Dst, want)
			}
			if !tt.wantTransparent {
				c := p.Palette[0]
				if c.R != 255 || int(c.G)-127 > 1 || int(c.G)-127 < -1 {
					t.Errorf("palette[0] = %v, want about %v", c, tt.wantFirstPalette)
				}
			}
		})
	}
}

func TestDrawImageBanded(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fillNRGBA(img, color.NRGBA{R: 255, A: 255})
	dev := drawImage(t, testCaps(), ImageSource{Image: img}, nil, WithBudget(RenderBudget{Ceiling: 32}))

	blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
	if len(blits) != 2 {
		t.Fatalf("DrawPackedImage calls = %d, want 2 bands", len(blits))
	}
	for i, b := range blits {
		want := device.Rect{X: 0, Y: float64(2 * i), W: 4, H: 2}
		if b.Dst != want {
			t.Errorf("band %d dst = %+v, want %+v", i, b.Dst, want)
		}
	}
}

func TestDrawImageRotatedClipsSubstrate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fillNRGBA(img, color.NRGBA{R: 255, A: 255})
	dev := drawImage(t, testCaps(), ImageSource{Image: img, Transform: Translate(50, 50).Multiply(Rotate(math.Pi / 6))}, nil)

	if n := dev.Count(recording.CmdSelectClipPath); n != 1 {
		t.Errorf("SelectClipPath calls = %d, want 1", n)
	}
	if n := dev.Count(recording.CmdResetClip); n != 1 {
		t.Errorf("ResetClip calls = %d, want 1 to restore the clip", n)
	}
	if n := dev.Count(recording.CmdDrawPackedImage); n != 1 {
		t.Errorf("DrawPackedImage calls = %d, want 1", n)
	}
}

func TestDrawImageDeviceTransform(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	fillNRGBA(img, color.NRGBA{R: 255, A: 255})
	f := Translate(50, 50).Multiply(Rotate(math.Pi / 6))
	src := ImageSource{Image: img, Transform: f}

	t.Run("advanced device", func(t *testing.T) {
		dev := drawImage(t, testCaps(), src, nil, WithDeviceImageTransforms(true))

		modes := recording.Filter[recording.SetGraphicsModeCommand](dev.Commands())
		if len(modes) != 2 || modes[0].Mode != device.GraphicsModeAdvanced ||
			modes[1].Mode != device.GraphicsModeCompatible {
			t.Fatalf("graphics modes = %+v, want advanced then compatible", modes)
		}
		xforms := recording.Filter[recording.SetWorldTransformCommand](dev.Commands())
		if len(xforms) < 2 {
			t.Fatalf("SetWorldTransform calls = %d, want at least 2", len(xforms))
		}
		if got, want := xforms[0].Matrix, f.device(); !near(got.B, want.B, 1e-9) || !near(got.D, want.D, 1e-9) ||
			!near(got.C, want.C, 1e-9) || !near(got.F, want.F, 1e-9) {
			t.Errorf("world transform = %+v, want %+v", got, want)
		}
		if last := xforms[len(xforms)-1].Matrix; last != device.Identity() {
			t.Errorf("restored world transform = %+v, want identity", last)
		}
		if n := dev.Count(recording.CmdSelectClipPath); n != 0 {
			t.Errorf("SelectClipPath calls = %d, want 0", n)
		}
		blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
		if len(blits) != 1 {
			t.Fatalf("DrawPackedImage calls = %d, want 1", len(blits))
		}
		if want := (device.Rect{W: 8, H: 6}); blits[0].Dst != want {
			t.Errorf("dst = %+v, want the source rectangle %+v", blits[0].Dst, want)
		}
		if b := blits[0].Image; b.Width != 8 || b.Height != 6 || b.BitsPerPixel != 24 {
			t.Errorf("packed %dx%d at %d bpp, want 8x6 at 24", b.Width, b.Height, b.BitsPerPixel)
		}
	})

	t.Run("compatible device", func(t *testing.T) {
		caps := testCaps()
		caps.AdvancedGraphics = false
		dev := drawImage(t, caps, src, nil, WithDeviceImageTransforms(true))
		if n := dev.Count(recording.CmdSetGraphicsMode); n != 0 {
			t.Errorf("SetGraphicsMode calls = %d, want 0", n)
		}
		if n := dev.Count(recording.CmdSelectClipPath); n != 1 {
			t.Errorf("SelectClipPath calls = %d, want the buffered path", n)
		}
	})

	t.Run("banded", func(t *testing.T) {
		budget := WithBudget(RenderBudget{Ceiling: 8 * 4 * 2, BytesPerPixel: 4})
		dev := drawImage(t, testCaps(), src, nil, WithDeviceImageTransforms(true), budget)
		blits := recording.Filter[recording.DrawPackedImageCommand](dev.Commands())
		if len(blits) != 3 {
			t.Fatalf("DrawPackedImage calls = %d, want 3 bands", len(blits))
		}
		for i, b := range blits {
			if want := (device.Rect{Y: float64(2 * i), W: 8, H: 2}); b.Dst != want {
				t.Errorf("band %d dst = %+v, want %+v", i, b.Dst, want)
			}
		}
	})
}

func TestDrawImageDegenerate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tests := []struct {
		name string
		src  ImageSource
	}{
		{"collapsed transform", ImageSource{Image: img, Transform: Scale(0, 1)}},
		{"empty source rect", ImageSource{Image: img, Rect: image.Rect(5, 5, 6, 6), Transform: Identity()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := drawImage(t, testCaps(), tt.src, nil)
			if n := dev.Count(recording.CmdDrawPackedImage); n != 0 {
				t.Errorf("DrawPackedImage calls = %d, want 0", n)
			}
		})
	}
}

func TestBandRows(t *testing.T) {
	tests := []struct {
		w      int
		budget RenderBudget
		want   int
	}{
		{100, RenderBudget{Ceiling: 4000, BytesPerPixel: 4}, 10},
		{100, RenderBudget{Ceiling: 10, BytesPerPixel: 4}, 1},
		{0, RenderBudget{Ceiling: 10, BytesPerPixel: 4}, 1},
	}
	for _, tt := range tests {
		if got := bandRows(tt.w, tt.budget); got != tt.want {
			t.Errorf("bandRows(%d, %+v) = %d, want %d", tt.w, tt.budget, got, tt.want)
		}
	}
}
