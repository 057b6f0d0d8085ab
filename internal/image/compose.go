package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Fill sets every pixel of dst to c.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Transform composites the sr region of src onto dst through s2d, which
// maps source pixel space to dst pixel space. Smooth selects bilinear
// sampling; otherwise nearest neighbour is used, which keeps palette
// colours exact.
func Transform(dst draw.Image, s2d f64.Aff3, src image.Image, sr image.Rectangle, smooth bool) {
	var interp draw.Transformer = draw.NearestNeighbor
	if smooth {
		interp = draw.BiLinear
	}
	interp.Transform(dst, s2d, src, sr, draw.Over, nil)
}

// Opaque reports whether every pixel of r in img is fully opaque.
func Opaque(img image.Image, r image.Rectangle) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok && img.Bounds().Eq(r) {
		return o.Opaque()
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				return false
			}
		}
	}
	return true
}
