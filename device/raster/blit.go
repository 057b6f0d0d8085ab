package raster

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/gprint/device"
	imgpkg "github.com/gogpu/gprint/internal/image"
)

// DrawPackedImage implements device.Device. The source is composited over
// the page using its alpha; pixels at the transparent index are skipped.
// Indexed images are sampled nearest-neighbour, others bilinearly.
func (d *Device) DrawPackedImage(img *device.PackedImage, dst device.Rect, src image.Rectangle) {
	if !d.ready() || img == nil || dst.Empty() {
		return
	}
	if len(img.Pix) < img.ByteSize() {
		d.log.Debug("raster: short packed image", "have", len(img.Pix), "want", img.ByteSize())
		return
	}
	sr := src.Intersect(image.Rect(0, 0, img.Width, img.Height))
	if sr.Empty() {
		return
	}

	// Map the source rectangle onto dst, then through the world transform.
	kx := dst.W / float64(sr.Dx())
	ky := dst.H / float64(sr.Dy())
	place := device.Matrix{
		A: kx,
		C: dst.X - float64(sr.Min.X)*kx,
		E: ky,
		F: dst.Y - float64(sr.Min.Y)*ky,
	}
	m := d.world.Multiply(place)

	corners := d.rectFigure(dst)
	r := d.area(bounds(corners, 1))
	if r.Empty() {
		return
	}

	var interp draw.Transformer = draw.BiLinear
	if img.BitsPerPixel <= 8 {
		interp = draw.NearestNeighbor
	}
	var opts *draw.Options
	if d.clip != nil {
		opts = &draw.Options{DstMask: d.clip.m, DstMaskP: d.clip.r.Min.Mul(-1)}
	}
	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	target, ok := d.img.SubImage(r).(*image.RGBA)
	if !ok {
		return
	}
	interp.Transform(target, s2d, imgpkg.Unpack(img), sr, draw.Over, opts)
}
