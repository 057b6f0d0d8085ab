package gprint

import (
	"errors"
	"image"
	"math"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/device/raster"
	imgpkg "github.com/gogpu/gprint/internal/image"
)

// RedrawPlan is the offscreen rendering plan for a page region.
type RedrawPlan struct {
	// Bounds is the region in device units, aligned to whole units.
	Bounds device.Rect

	// Resolution is the offscreen resolution in DPI.
	Resolution float64

	// HalvingFactor is how many times the device resolution was divided
	// by two, as a power of two: 1, 2, 4 and so on.
	HalvingFactor int

	// Width and Height are the full offscreen size in pixels.
	Width, Height int

	// BytesPerPixel is the offscreen pixel size used in estimates.
	BytesPerPixel int

	// Bands tile the offscreen raster. Each band is rendered and blitted
	// on its own and fits the budget.
	Bands []RedrawBand
}

// RedrawBand is one piece of a redraw plan.
type RedrawBand struct {
	// Src is the band in offscreen pixels.
	Src image.Rectangle
	// Dst is the band in device units of the page.
	Dst device.Rect
}

// Bytes returns the buffer size estimate of the band.
func (b RedrawBand) Bytes(bpp int) int64 {
	return int64(b.Src.Dx()) * int64(b.Src.Dy()) * int64(bpp)
}

// ScaleX returns offscreen pixels per device unit along x.
func (p RedrawPlan) ScaleX() float64 { return float64(p.Width) / p.Bounds.W }

// ScaleY returns offscreen pixels per device unit along y.
func (p RedrawPlan) ScaleY() float64 { return float64(p.Height) / p.Bounds.H }

// PlanRedraw plans the offscreen repaint of bounds, in device units of a
// device with resolution dpi.
//
// The resolution starts at dpi and is halved while the buffer exceeds the
// budget ceiling and half the resolution is still at or above the floor.
// A buffer still too large is then scaled once by a fractional factor,
// not going below the floor, and whatever remains over the ceiling is
// split into bands. It reports false for an empty region.
func PlanRedraw(bounds device.Rect, dpi float64, budget RenderBudget) (RedrawPlan, bool) {
	budget = budget.normalize()
	x0, y0 := math.Floor(bounds.X), math.Floor(bounds.Y)
	x1, y1 := math.Ceil(bounds.X+bounds.W), math.Ceil(bounds.Y+bounds.H)
	if x1 <= x0 || y1 <= y0 || dpi <= 0 {
		return RedrawPlan{}, false
	}
	b := device.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	bpp := int64(budget.BytesPerPixel)
	floor := math.Min(budget.FloorDPI, dpi)

	size := func(res float64) (int, int, int64) {
		w := max(int(math.Ceil(b.W*res/dpi)), 1)
		h := max(int(math.Ceil(b.H*res/dpi)), 1)
		return w, h, int64(w) * int64(h) * bpp
	}

	res, factor := dpi, 1
	_, _, bytes := size(res)
	for bytes > budget.Ceiling && res/2 >= floor {
		res /= 2
		factor *= 2
		_, _, bytes = size(res)
	}
	if bytes > budget.Ceiling {
		res = math.Max(res*math.Sqrt(float64(budget.Ceiling)/float64(bytes)), floor)
	}
	w, h, _ := size(res)

	plan := RedrawPlan{
		Bounds:        b,
		Resolution:    res,
		HalvingFactor: factor,
		Width:         w,
		Height:        h,
		BytesPerPixel: budget.BytesPerPixel,
	}
	plan.Bands = planBands(b, w, h, budget)
	return plan, true
}

// planBands tiles a w x h raster into bands under the ceiling. Bands are
// full rows where a row fits, and narrower columns otherwise.
func planBands(b device.Rect, w, h int, budget RenderBudget) []RedrawBand {
	bpp := int64(budget.BytesPerPixel)
	cols := int(min(int64(w), max(budget.Ceiling/bpp, 1)))
	rows := int(max(budget.Ceiling/(int64(cols)*bpp), 1))
	kx, ky := b.W/float64(w), b.H/float64(h)

	var bands []RedrawBand
	for y := 0; y < h; y += rows {
		for x := 0; x < w; x += cols {
			src := image.Rect(x, y, min(x+cols, w), min(y+rows, h))
			bands = append(bands, RedrawBand{
				Src: src,
				Dst: device.Rect{
					X: b.X + float64(src.Min.X)*kx,
					Y: b.Y + float64(src.Min.Y)*ky,
					W: float64(src.Dx()) * kx,
					H: float64(src.Dy()) * ky,
				},
			})
		}
	}
	return bands
}

// redraw repaints region, in device units, offscreen through the job's
// redraw function and blits the result in its place. The active clip
// stays selected on the device, so the blit is clipped like the image.
func (g *Graphics) redraw(region Rect) error {
	page := Rect{W: g.caps.PageWidth, H: g.caps.PageHeight}
	if !page.Empty() {
		region = region.Intersect(page)
	}
	dpi := math.Max(g.caps.DPIX, g.caps.DPIY)
	plan, ok := PlanRedraw(region.device(), dpi, g.job.opts.budget)
	if !ok {
		return nil
	}
	Logger().Debug("gprint: region redraw", "page", g.page,
		"bounds", plan.Bounds, "resolution", plan.Resolution,
		"halving", plan.HalvingFactor, "bands", len(plan.Bands))

	clip := make([]*Path, len(g.state.clip))
	for i, c := range g.state.clip {
		clip[i] = c.path
	}
	kx, ky := plan.ScaleX(), plan.ScaleY()
	rr := &RedrawRegion{
		Bounds:    plan.Bounds,
		ScaleX:    kx,
		ScaleY:    ky,
		Clip:      clip,
		Transform: g.state.transform,
	}
	toBuffer := Scale(kx, ky).Multiply(Translate(-plan.Bounds.X, -plan.Bounds.Y))

	for _, band := range plan.Bands {
		if err := g.canceled(); err != nil {
			return err
		}
		base := Translate(-float64(band.Src.Min.X), -float64(band.Src.Min.Y)).
			Multiply(toBuffer).Multiply(g.base)
		img, err := g.redrawBand(band, plan.Resolution, base, rr)
		if err != nil {
			return err
		}
		p := imgpkg.PackBGR(img, img.Bounds(), White.Color())
		g.dev.DrawPackedImage(p, band.Dst, image.Rect(0, 0, p.Width, p.Height))
		if g.dev.Err() != nil {
			return nil
		}
	}
	return nil
}

// redrawBand runs the redraw function on a fresh raster device for one
// band and returns its pixels.
func (g *Graphics) redrawBand(band RedrawBand, res float64, base Matrix, region *RedrawRegion) (*image.RGBA, error) {
	w, h := band.Src.Dx(), band.Src.Dy()
	caps := raster.Capabilities(res, w, h)
	caps.MinLineWidth = g.caps.MinLineWidth * region.ScaleX
	rd, err := raster.New(device.Config{
		Capabilities: caps,
		Width:        w,
		Height:       h,
		Logger:       Logger(),
	})
	if err != nil {
		return nil, &PageError{Page: g.page, Op: "Redraw", Err: err}
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil {
			Logger().Warn("gprint: offscreen close failed", "err", cerr)
		}
	}()

	if err := rd.StartPage(); err != nil {
		return nil, &PageError{Page: g.page, Op: "Redraw", Err: err}
	}
	sub := newGraphics(g.ctx, g.job, rd, g.page, base, region)
	err = g.job.opts.redraw(sub)
	if err == nil {
		err = sub.err
	}
	if err != nil {
		_ = rd.AbortPage()
	} else if eerr := rd.EndPage(); eerr != nil {
		err = eerr
	}
	switch {
	case errors.Is(err, ErrAborted):
		return nil, ErrAborted
	case err != nil:
		return nil, &PageError{Page: g.page, Op: "Redraw", Err: err}
	case rd.Err() != nil:
		return nil, &PageError{Page: g.page, Op: "Redraw", Err: rd.Err()}
	}
	return rd.Image(), nil
}
