package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/gogpu/gprint/device"
	imgpkg "github.com/gogpu/gprint/internal/image"
	"github.com/gogpu/gprint/text"
)

func init() {
	device.Register("raster", func(cfg device.Config) (device.Device, error) {
		return New(cfg)
	})
}

// MaxPixels is the largest page New accepts.
const MaxPixels = 1 << 28

// ErrPageSize is returned by New for empty or oversized pages.
var ErrPageSize = errors.New("raster: invalid page size")

// Capabilities returns the capabilities of a raster page of w x h pixels
// at dpi.
func Capabilities(dpi float64, w, h int) device.Capabilities {
	return device.Capabilities{
		DPIX:                dpi,
		DPIY:                dpi,
		PageWidth:           float64(w),
		PageHeight:          float64(h),
		MinLineWidth:        1,
		DefaultCap:          device.LineCapRound,
		DefaultJoin:         device.LineJoinRound,
		StyledPen:           true,
		AdvancedGraphics:    true,
		ScaledBlit:          true,
		BitmaskTransparency: true,
		AlphaBlit:           true,
		NativeText:          true,
		UnicodeText:         true,
	}
}

// Device renders pages into an RGBA image.
//
// Paths are rasterized with anti-aliasing. Each page starts white and is
// kept until the next StartPage; Image returns it.
type Device struct {
	caps  device.Capabilities
	log   *slog.Logger
	img   *image.RGBA
	fonts *fontTable

	inPage bool
	closed bool
	err    error

	world device.Matrix
	mode  device.GraphicsMode
	fill  device.FillMode
	brush color.RGBA
	pen   pen
	font  *selectedFont
	path  pathBuilder
	clip  *clipMask
}

var _ device.Device = (*Device)(nil)

type pen struct {
	width      float64
	color      color.RGBA
	cap        device.LineCap
	join       device.LineJoin
	miterLimit float64
}

// New returns a raster device. The page size is taken from cfg.Width and
// cfg.Height, or from the capability page size when they are zero.
func New(cfg device.Config) (*Device, error) {
	caps := cfg.Capabilities
	w, h := cfg.Width, cfg.Height
	if caps.DPIX <= 0 || caps.DPIY <= 0 {
		dpi := 150.0
		if w == 0 || h == 0 {
			w, h = int(8.5*dpi), int(11*dpi)
		}
		caps = Capabilities(dpi, w, h)
	}
	if w == 0 || h == 0 {
		w, h = int(math.Ceil(caps.PageWidth)), int(math.Ceil(caps.PageHeight))
	}
	if w <= 0 || h <= 0 || int64(w)*int64(h) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrPageSize, w, h)
	}
	caps.PageWidth, caps.PageHeight = float64(w), float64(h)

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Device{
		caps:  caps,
		log:   log,
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		fonts: newFontTable(cfg.Fonts),
	}
	d.resetState()
	return d, nil
}

// Image returns the page raster. It stays valid after EndPage and is
// cleared by the next StartPage.
func (d *Device) Image() *image.RGBA { return d.img }

func (d *Device) resetState() {
	d.world = device.Identity()
	d.mode = device.GraphicsModeCompatible
	d.fill = device.FillModeAlternate
	d.brush = color.RGBA{255, 255, 255, 255}
	d.pen = pen{
		width: 1,
		color: color.RGBA{0, 0, 0, 255},
		cap:   d.caps.DefaultCap,
		join:  d.caps.DefaultJoin,
	}
	d.font = nil
	d.path.reset()
	d.clip = nil
}

func (d *Device) fail(err error) {
	if d.err == nil {
		d.err = err
		d.log.Warn("raster: device failed", "err", err)
	}
}

// ready reports whether a drawing operation may proceed.
func (d *Device) ready() bool {
	switch {
	case d.err != nil:
		return false
	case d.closed:
		d.fail(device.ErrClosed)
		return false
	case !d.inPage:
		d.fail(device.ErrNoPage)
		return false
	}
	return true
}

// Capabilities implements device.Device.
func (d *Device) Capabilities() device.Capabilities { return d.caps }

// StartPage implements device.Device.
func (d *Device) StartPage() error {
	switch {
	case d.err != nil:
		return d.err
	case d.closed:
		d.fail(device.ErrClosed)
		return d.err
	case d.inPage:
		return device.ErrPageInProgress
	}
	imgpkg.Fill(d.img, color.White)
	d.resetState()
	d.inPage = true
	return nil
}

// EndPage implements device.Device.
func (d *Device) EndPage() error {
	if !d.ready() {
		return d.err
	}
	d.inPage = false
	return nil
}

// AbortPage implements device.Device. The page is cleared to white.
func (d *Device) AbortPage() error {
	if !d.ready() {
		return d.err
	}
	imgpkg.Fill(d.img, color.White)
	d.resetState()
	d.inPage = false
	return nil
}

// SetFillMode implements device.Device.
func (d *Device) SetFillMode(mode device.FillMode) {
	if d.ready() {
		d.fill = mode
	}
}

// SelectSolidBrush implements device.Device.
func (d *Device) SelectSolidBrush(c device.Color) {
	if d.ready() {
		d.brush = rgba(c)
	}
}

// SelectPen implements device.Device.
func (d *Device) SelectPen(width float64, c device.Color) {
	if d.ready() {
		d.pen = pen{width: width, color: rgba(c), cap: d.caps.DefaultCap, join: d.caps.DefaultJoin, miterLimit: 10}
	}
}

// SelectStyledPen implements device.Device.
func (d *Device) SelectStyledPen(lineCap device.LineCap, join device.LineJoin, miterLimit, width float64, c device.Color) bool {
	if !d.ready() {
		return false
	}
	d.pen = pen{width: width, color: rgba(c), cap: lineCap, join: join, miterLimit: miterLimit}
	return true
}

// WorldTransform implements device.Device.
func (d *Device) WorldTransform() device.Matrix { return d.world }

// SetWorldTransform implements device.Device.
func (d *Device) SetWorldTransform(m device.Matrix) {
	if !d.ready() {
		return
	}
	if d.mode == device.GraphicsModeCompatible {
		m.B, m.D = 0, 0
	}
	d.world = m
}

// ScaleWorldTransform implements device.Device.
func (d *Device) ScaleWorldTransform(sx, sy float64) {
	if d.ready() {
		d.world = d.world.Multiply(device.Matrix{A: sx, E: sy})
	}
}

// SetGraphicsMode implements device.Device.
func (d *Device) SetGraphicsMode(mode device.GraphicsMode) {
	if d.ready() {
		d.mode = mode
	}
}

// Err implements device.Device.
func (d *Device) Err() error { return d.err }

// Close implements device.Device.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.inPage = false
	d.clip = nil
	d.path.reset()
	return nil
}

func rgba(c device.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// selectedFont is the face chosen by SelectFont with its placement.
type selectedFont struct {
	spec device.FontSpec
	face *text.Face
	// rot maps unrotated font coordinates to device coordinates.
	rot device.Matrix
}
