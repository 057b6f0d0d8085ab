package image

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gprint/device"
)

// PackBGR packs the r region of src into a 24-bit image. Translucent
// pixels are composited over bg.
func PackBGR(src image.Image, r image.Rectangle, bg color.Color) *device.PackedImage {
	r = r.Intersect(src.Bounds())
	w, h := r.Dx(), r.Dy()
	stride := FormatBGR24.Stride(w)
	p := &device.PackedImage{
		Width:            w,
		Height:           h,
		BitsPerPixel:     24,
		Stride:           stride,
		Pix:              make([]byte, stride*h),
		TransparentIndex: -1,
	}

	rgba := asOpaqueRGBA(src, r, bg)
	for y := range h {
		row := p.Pix[y*stride:]
		in := rgba.Pix[y*rgba.Stride:]
		for x := range w {
			row[3*x+0] = in[4*x+2]
			row[3*x+1] = in[4*x+1]
			row[3*x+2] = in[4*x+0]
		}
	}
	return p
}

// PackBGRA packs the r region of src into a 32-bit image with straight
// (non-premultiplied) alpha.
func PackBGRA(src image.Image, r image.Rectangle) *device.PackedImage {
	r = r.Intersect(src.Bounds())
	w, h := r.Dx(), r.Dy()
	stride := w * 4
	p := &device.PackedImage{
		Width:            w,
		Height:           h,
		BitsPerPixel:     32,
		Stride:           stride,
		Pix:              make([]byte, stride*h),
		TransparentIndex: -1,
	}
	for y := range h {
		row := p.Pix[y*stride:]
		for x := range w {
			c := color.NRGBAModel.Convert(src.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			row[4*x+0] = c.B
			row[4*x+1] = c.G
			row[4*x+2] = c.R
			row[4*x+3] = c.A
		}
	}
	return p
}

// asOpaqueRGBA returns r of src flattened over bg, origin at (0, 0).
func asOpaqueRGBA(src image.Image, r image.Rectangle, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Over)
	return dst
}

// PackIndexed packs the r region of src at the smallest depth that holds
// its palette. The first fully transparent palette entry becomes the
// transparent index. It returns false when the palette has more than 256
// entries.
func PackIndexed(src *image.Paletted, r image.Rectangle) (*device.PackedImage, bool) {
	f, ok := IndexedFormat(len(src.Palette))
	if !ok {
		return nil, false
	}
	r = r.Intersect(src.Bounds())
	w, h := r.Dx(), r.Dy()
	bpp := f.BitsPerPixel()
	stride := f.Stride(w)
	p := &device.PackedImage{
		Width:            w,
		Height:           h,
		BitsPerPixel:     bpp,
		Stride:           stride,
		Pix:              make([]byte, stride*h),
		Palette:          make([]device.Color, len(src.Palette)),
		TransparentIndex: -1,
	}
	for i, c := range src.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		p.Palette[i] = device.Color{R: n.R, G: n.G, B: n.B}
		if n.A == 0 && p.TransparentIndex < 0 {
			p.TransparentIndex = i
		}
	}

	perByte := 8 / bpp
	for y := range h {
		row := p.Pix[y*stride:]
		in := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := range w {
			shift := uint(8 - bpp*(x%perByte+1))
			row[x/perByte] |= in[x] << shift
		}
	}
	return p, true
}

// Unpack converts a packed image back to NRGBA. Pixels at the transparent
// index are left fully transparent.
func Unpack(p *device.PackedImage) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := range p.Height {
		row := p.Pix[y*p.Stride:]
		for x := range p.Width {
			var c color.NRGBA
			switch p.BitsPerPixel {
			case 24:
				c = color.NRGBA{R: row[3*x+2], G: row[3*x+1], B: row[3*x], A: 0xFF}
			case 32:
				c = color.NRGBA{R: row[4*x+2], G: row[4*x+1], B: row[4*x], A: row[4*x+3]}
			case 1, 2, 4, 8:
				idx := sample(row, x, p.BitsPerPixel)
				if idx == p.TransparentIndex || idx >= len(p.Palette) {
					continue
				}
				pc := p.Palette[idx]
				c = color.NRGBA{R: pc.R, G: pc.G, B: pc.B, A: 0xFF}
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

func sample(row []byte, x, bpp int) int {
	perByte := 8 / bpp
	shift := uint(8 - bpp*(x%perByte+1))
	return int(row[x/perByte]>>shift) & (1<<bpp - 1)
}
