// Package gprint draws device-independent vector graphics on page
// devices with a restricted native operation set.
//
// # Overview
//
// Page devices (printers, spoolers, metafile recorders) typically accept
// paths in integer coordinates, scale but not shear, render fonts at a
// single rotation angle and blit opaque bitmaps. gprint accepts paths,
// strokes, text and images under arbitrary affine transforms and reduces
// them to what a device.Device can do, preserving line visibility, glyph
// placement and, where possible, transparency, while keeping
// intermediate rasters under a memory budget.
//
// # Quick Start
//
//	dev, err := device.Open("raster", device.Config{})
//	if err != nil {
//	    return err
//	}
//	job, err := gprint.NewJob(dev)
//	if err != nil {
//	    return err
//	}
//	defer job.Close()
//
//	err = job.RenderPage(ctx, func(g *gprint.Graphics) error {
//	    g.Rotate(math.Pi / 6)
//	    g.SetStroke(gprint.DefaultStroke().WithWidth(0.1))
//	    return g.DrawLine(72, 72, 288, 72)
//	})
//
// # Pipeline
//
// Each draw call passes through these stages:
//
//   - Decompose splits the user to device transform into a software
//     shape transform and an axis-aligned scale the device applies.
//   - PathEmitter streams paths into device path calls at fixed-point
//     precision, raising quadratic curves to cubics.
//   - StrokePolicy widens strokes that would fall below the device's
//     minimum visible width. Strokes use a device pen (styled, then
//     plain) when the transform scales uniformly; otherwise they are
//     expanded to outlines in software and filled.
//   - Text uses device fonts when the transform has no shear or mirror,
//     splitting composite fonts at slot boundaries and checking device
//     advances against font metrics. Complex scripts the device cannot
//     shape are laid out by a text.Shaper; everything else falls back
//     to filled glyph outlines.
//   - SelectBlitStrategy picks how each image is drawn: opaque
//     intermediate rasters (banded to the budget), masked indexed blits,
//     device alpha blits, or region redraw.
//
// # Region redraw
//
// A device that cannot blend alpha would force translucent images onto a
// white substrate. With WithRedraw, the page region under such an image
// is instead repainted offscreen by calling the page function again, at
// a resolution PlanRedraw keeps under the RenderBudget, and the result is
// blitted in place. Page functions must be idempotent.
//
// # Errors
//
// Device failures surface as *PageError and end the job. A canceled
// context ends the page with ErrAborted. Capability refusals never fail a
// call; they select the next fallback.
//
// # Logging
//
// gprint logs through log/slog and is silent by default; see SetLogger.
package gprint
