package gprint

import "github.com/gogpu/gprint/text"

// RenderBudget bounds the memory of intermediate rasters built by the
// image path and by region redraw.
type RenderBudget struct {
	// Ceiling is the largest intermediate buffer, in bytes.
	Ceiling int64

	// FloorDPI is the lowest resolution region redraw may fall back to.
	FloorDPI float64

	// BytesPerPixel is the size of one buffer pixel used in estimates.
	BytesPerPixel int
}

// DefaultBudget returns the default budget: 8 MiB buffers, never below
// 72 DPI, 4 bytes per pixel.
func DefaultBudget() RenderBudget {
	return RenderBudget{
		Ceiling:       8 << 20,
		FloorDPI:      72,
		BytesPerPixel: 4,
	}
}

// normalize fills zero fields from the defaults and keeps the ceiling
// large enough to hold at least one pixel.
func (b RenderBudget) normalize() RenderBudget {
	def := DefaultBudget()
	if b.BytesPerPixel <= 0 {
		b.BytesPerPixel = def.BytesPerPixel
	}
	if b.Ceiling <= 0 {
		b.Ceiling = def.Ceiling
	}
	if b.Ceiling < int64(b.BytesPerPixel) {
		b.Ceiling = int64(b.BytesPerPixel)
	}
	if b.FloorDPI <= 0 {
		b.FloorDPI = def.FloorDPI
	}
	return b
}

// DefaultPrecision is the fixed-point factor PathEmitter applies to
// device coordinates.
const DefaultPrecision = 1000

// DefaultFlatness is the curve flattening tolerance, in device units,
// used when strokes are expanded in software.
const DefaultFlatness = 0.25

// Option configures a Job during creation.
//
// Example:
//
//	job, err := gprint.NewJob(dev,
//	    gprint.WithBudget(gprint.RenderBudget{Ceiling: 4 << 20}),
//	    gprint.WithRedraw(paint),
//	)
type Option func(*options)

type options struct {
	budget     RenderBudget
	precision  float64
	redraw     PageFunc
	shaper     text.Shaper
	flatness   float64
	clampScale bool
	devXform   bool
}

func defaultOptions() options {
	return options{
		budget:     DefaultBudget(),
		precision:  DefaultPrecision,
		flatness:   DefaultFlatness,
		clampScale: true,
	}
}

// WithBudget sets the memory budget for intermediate rasters. Zero fields
// keep their defaults.
func WithBudget(b RenderBudget) Option {
	return func(o *options) {
		o.budget = b.normalize()
	}
}

// WithPrecision sets the fixed-point factor PathEmitter multiplies device
// coordinates by. Values below 1 are ignored.
func WithPrecision(p float64) Option {
	return func(o *options) {
		if p >= 1 {
			o.precision = p
		}
	}
}

// WithRedraw enables region redraw. When an image with continuous alpha
// cannot be composited by the device, fn is called again, synchronously,
// to repaint the affected region of the current page into an offscreen
// raster. fn must paint the same content every time it is called for a
// page; Graphics.Redraw reports the region being repainted.
func WithRedraw(fn PageFunc) Option {
	return func(o *options) {
		o.redraw = fn
	}
}

// WithShaper sets the shaper used for complex text the device cannot
// shape itself. The default is a HarfBuzz shaper.
func WithShaper(s text.Shaper) Option {
	return func(o *options) {
		o.shaper = s
	}
}

// WithFlatness sets the curve flattening tolerance, in device units, for
// strokes expanded in software.
func WithFlatness(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.flatness = f
		}
	}
}

// WithClampImageScale controls whether image intermediates are kept no
// finer than device resolution. It is on by default.
func WithClampImageScale(clamp bool) Option {
	return func(o *options) {
		o.clampScale = clamp
	}
}

// WithDeviceImageTransforms lets rotated and sheared images be blitted at
// source resolution through the device world transform, on devices that
// report AdvancedGraphics and ScaledBlit. Otherwise such images are
// resampled into an axis-aligned buffer. It is off by default.
func WithDeviceImageTransforms(on bool) Option {
	return func(o *options) {
		o.devXform = on
	}
}
