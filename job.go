package gprint

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/internal/cache"
	imgpkg "github.com/gogpu/gprint/internal/image"
	"github.com/gogpu/gprint/text"
)

// Job renders pages onto one device.
//
// Pages are rendered one at a time; RenderPage must not be called
// concurrently on the same Job. The per-job caches are safe for
// concurrent readers.
type Job struct {
	dev  device.Device
	caps device.Capabilities
	opts options
	pool *imgpkg.Pool

	specs   *cache.Cache[specKey, device.FontSpec]
	decomps *cache.Cache[decompKey, decompResult]

	pages  int
	err    error
	closed bool
}

type specKey struct {
	face   *text.Face
	family string
	linear [4]float64
}

type decompKey struct {
	m     Matrix
	clamp bool
}

type decompResult struct {
	d  Decomposition
	ok bool
}

// cacheLimit bounds each per-job cache.
const cacheLimit = 512

// NewJob creates a job drawing on dev. The job owns dev and closes it in
// Close.
//
// Example:
//
//	dev, _ := device.Open("raster", device.Config{})
//	job, _ := gprint.NewJob(dev)
//	defer job.Close()
//	err := job.RenderPage(ctx, func(g *gprint.Graphics) error {
//	    g.SetColor(gprint.Black)
//	    return g.DrawLine(72, 72, 144, 144)
//	})
func NewJob(dev device.Device, opts ...Option) (*Job, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.shaper == nil {
		o.shaper = text.NewGoTextShaper()
	}
	return &Job{
		dev:     dev,
		caps:    dev.Capabilities(),
		opts:    o,
		pool:    imgpkg.NewPool(2),
		specs:   cache.New[specKey, device.FontSpec](cacheLimit),
		decomps: cache.New[decompKey, decompResult](cacheLimit),
	}, nil
}

// Device returns the device of the job.
func (j *Job) Device() device.Device { return j.dev }

// Pages returns the number of pages completed.
func (j *Job) Pages() int { return j.pages }

// RenderPage starts a page, calls paint and ends the page.
//
// When ctx is canceled before or during painting, or paint returns an
// error, the page is discarded with AbortPage: ErrAborted or the wrapped
// paint error is returned and the page number is reused. A device failure
// is returned as a *PageError and is fatal to the job: the device is
// closed and every later RenderPage returns the same error.
func (j *Job) RenderPage(ctx context.Context, paint PageFunc) error {
	if j.closed {
		return ErrJobClosed
	}
	if j.err != nil {
		return j.err
	}
	if ctx.Err() != nil {
		return ErrAborted
	}
	page := j.pages + 1
	log := Logger()

	if err := j.dev.StartPage(); err != nil {
		return j.fatal(&PageError{Page: page, Op: "StartPage", Err: err})
	}
	log.Info("gprint: page started", "page", page)

	g := newGraphics(ctx, j, j.dev, page, j.baseTransform(), nil)
	paintErr := paint(g)
	if paintErr == nil {
		paintErr = g.err
	}

	if devErr := j.dev.Err(); devErr != nil {
		var pe *PageError
		if errors.As(paintErr, &pe) {
			return j.fatal(pe)
		}
		return j.fatal(&PageError{Page: page, Op: "Paint", Err: devErr})
	}

	aborted := errors.Is(paintErr, ErrAborted) || ctx.Err() != nil
	if aborted || paintErr != nil {
		if err := j.dev.AbortPage(); err != nil {
			return j.fatal(&PageError{Page: page, Op: "AbortPage", Err: err})
		}
		if aborted {
			log.Info("gprint: page aborted", "page", page)
			return ErrAborted
		}
		log.Info("gprint: page discarded", "page", page, "err", paintErr)
		return fmt.Errorf("gprint: page %d: %w", page, paintErr)
	}

	if err := j.dev.EndPage(); err != nil {
		return j.fatal(&PageError{Page: page, Op: "EndPage", Err: err})
	}
	j.pages = page
	log.Info("gprint: page finished", "page", page)
	return nil
}

// Close releases the device. Close is idempotent.
func (j *Job) Close() error {
	if j.closed {
		return nil
	}
	j.closed = true
	var errs []error
	if err := j.dev.Close(); err != nil {
		Logger().Warn("gprint: device close failed", "err", err)
		errs = append(errs, fmt.Errorf("close device: %w", err))
	}
	return errors.Join(errs...)
}

// fatal records a job-level failure and releases the device right away.
func (j *Job) fatal(err error) error {
	j.err = err
	Logger().Warn("gprint: job failed", "err", err)
	if cerr := j.dev.Close(); cerr != nil {
		Logger().Warn("gprint: device close failed", "err", cerr)
	}
	return err
}

// baseTransform maps user space (72 units per inch) to device units.
func (j *Job) baseTransform() Matrix {
	sx, sy := j.caps.ResolutionScale()
	return Scale(sx, sy)
}

func (j *Job) decompose(m Matrix, clamp bool) (Decomposition, bool) {
	r := j.decomps.GetOrCreate(decompKey{m: m, clamp: clamp}, func() decompResult {
		d, ok := Decompose(m, clamp)
		return decompResult{d: d, ok: ok}
	})
	return r.d, r.ok
}

func (j *Job) fontSpec(face *text.Face, family string, m Matrix) device.FontSpec {
	key := specKey{face: face, family: family, linear: [4]float64{m.A, m.B, m.D, m.E}}
	return j.specs.GetOrCreate(key, func() device.FontSpec {
		return newFontSpec(face, family, m)
	})
}
