// Command gprintdemo renders a demo page through the gprint pipeline.
//
// By default the page is rasterized and saved as PNG. With -trace the
// device calls are printed instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gprint"
	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/device/raster"
	"github.com/gogpu/gprint/device/recording"
	"github.com/gogpu/gprint/text"
)

func main() {
	var (
		output  = flag.String("out", "page.png", "output file")
		dpi     = flag.Float64("dpi", 150, "device resolution")
		trace   = flag.Bool("trace", false, "print device calls instead of rendering")
		budget  = flag.Int64("budget", 0, "intermediate raster ceiling in bytes (0 = default)")
		noAlpha = flag.Bool("noalpha", false, "disable device alpha blending to exercise region redraw")
		xform   = flag.Bool("xform", false, "blit rotated images through the device world transform")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		gprint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	w, h := int(math.Ceil(8.5**dpi)), int(math.Ceil(11**dpi))
	caps := raster.Capabilities(*dpi, w, h)
	if *noAlpha {
		caps.AlphaBlit = false
	}

	demo, err := newDemo()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	var (
		dev device.Device
		rd  *raster.Device
		rec *recording.Device
	)
	if *trace {
		rec = recording.New(recording.WithCapabilities(caps))
		dev = rec
	} else {
		rd, err = raster.New(device.Config{Capabilities: caps, Logger: gprint.Logger()})
		if err != nil {
			log.Fatalf("Failed to create device: %v", err)
		}
		dev = rd
	}

	job, err := gprint.NewJob(dev,
		gprint.WithBudget(gprint.RenderBudget{Ceiling: *budget}),
		gprint.WithRedraw(demo.paint),
		gprint.WithDeviceImageTransforms(*xform),
	)
	if err != nil {
		log.Fatalf("Failed to create job: %v", err)
	}
	defer job.Close()

	if err := job.RenderPage(context.Background(), demo.paint); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if rec != nil {
		for i, c := range rec.Commands() {
			fmt.Printf("%4d %-20s %+v\n", i, c.Type(), c)
		}
		return
	}
	if err := savePNG(*output, rd.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Page saved to %s (%dx%d)\n", *output, w, h)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type demo struct {
	body  *text.SimpleFont
	mixed *text.CompositeFont
	photo *image.NRGBA
}

func newDemo() (*demo, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, err
	}
	mono, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, err
	}
	mixed, err := text.NewCompositeFont("Dialog", 14, text.StyleRegular,
		text.Slot{Source: regular, Ranges: []text.UnicodeRange{text.RangeBasicLatin}},
		text.Slot{Source: mono},
	)
	if err != nil {
		return nil, err
	}
	return &demo{
		body:  text.NewSimpleFont("Go", text.NewFace(regular, 18, text.StyleRegular)),
		mixed: mixed,
		photo: gradientImage(64, 64),
	}, nil
}

// gradientImage returns an image fading from opaque blue to transparent.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * y / h),
				G: 64,
				B: 255,
				A: uint8(255 - 255*x/w),
			})
		}
	}
	return img
}

func (d *demo) paint(g *gprint.Graphics) error {
	steps := []func(*gprint.Graphics) error{
		d.drawBackground,
		d.drawRotatedStrokes,
		d.drawHairlines,
		d.drawText,
		d.drawImage,
	}
	for _, step := range steps {
		g.Push()
		err := step(g)
		if perr := g.Pop(); err == nil {
			err = perr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *demo) drawBackground(g *gprint.Graphics) error {
	g.SetColor(gprint.Hex("#f4f1e8"))
	return g.FillRect(36, 36, 540, 720)
}

func (d *demo) drawRotatedStrokes(g *gprint.Graphics) error {
	g.Translate(160, 160)
	star := gprint.NewPath()
	for i := 0; i < 10; i++ {
		r := 80.0
		if i%2 == 1 {
			r = 35
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		if i == 0 {
			star.MoveTo(r*math.Cos(a), r*math.Sin(a))
		} else {
			star.LineTo(r*math.Cos(a), r*math.Sin(a))
		}
	}
	star.Close()

	g.SetColor(gprint.Hex("#d9822b"))
	if err := g.Fill(star, gprint.FillRuleNonZero); err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		g.Rotate(math.Pi / 12)
		g.SetStroke(gprint.DefaultStroke().WithWidth(2).WithJoin(gprint.LineJoinRound))
		g.SetColor(gprint.RGB(0.1, 0.2+float64(i)*0.1, 0.5))
		if err := g.Stroke(star); err != nil {
			return err
		}
	}

	// Anisotropic scale: the stroke is expanded to an outline.
	g.SetTransform(gprint.Translate(380, 160).Multiply(gprint.Scale(3, 1)))
	g.SetStroke(gprint.DefaultStroke().WithWidth(3).WithDash(gprint.NewDash(6, 3)))
	g.SetColor(gprint.Black)
	circle := gprint.NewPath()
	circle.Circle(0, 0, 40)
	return g.Stroke(circle)
}

func (d *demo) drawHairlines(g *gprint.Graphics) error {
	g.SetColor(gprint.Black)
	g.Translate(72, 300)
	for i := 0; i < 12; i++ {
		g.SetLineWidth(0.05 * float64(i))
		x := float64(i) * 20
		if err := g.DrawLine(x, 0, x+40, 80); err != nil {
			return err
		}
	}
	g.Rotate(math.Pi / 7)
	g.SetLineWidth(0.1)
	return g.StrokeRect(300, -40, 100, 60)
}

func (d *demo) drawText(g *gprint.Graphics) error {
	g.SetColor(gprint.Black)
	g.SetFont(d.body)
	if err := g.DrawString("Rendered by gprint", 72, 450); err != nil {
		return err
	}
	g.SetFont(d.mixed)
	lh := d.body.Face().Metrics().LineHeight()
	if err := g.DrawString("Composite: abc ±µ§ 123", 72, 450+lh); err != nil {
		return err
	}

	g.Push()
	g.Translate(520, 620)
	g.Rotate(-math.Pi / 2)
	g.SetFont(d.body)
	g.SetColor(gprint.Hex("#8a1c1c"))
	err := g.DrawString("Rotated 90°", 0, 0)
	if perr := g.Pop(); err == nil {
		err = perr
	}
	if err != nil {
		return err
	}

	g.Translate(300, 560)
	g.Rotate(0.3)
	g.Scale(1, 0.6)
	return g.DrawString("Skewed", 0, 0)
}

func (d *demo) drawImage(g *gprint.Graphics) error {
	g.SetColor(gprint.Red)
	if err := g.FillRect(100, 560, 80, 80); err != nil {
		return err
	}
	src := gprint.ImageSource{
		Image:     d.photo,
		Transform: gprint.Translate(120, 580).Multiply(gprint.Scale(2, 2)),
	}
	if err := g.DrawImage(src, nil); err != nil {
		return err
	}
	src.Transform = gprint.Translate(300, 640).Multiply(gprint.Rotate(-0.4))
	return g.DrawImage(src, nil)
}
