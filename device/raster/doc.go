// Package raster provides an anti-aliased in-memory page device.
//
// Paths are filled and stroked with rasterx, text is drawn from the Go
// fonts (families "Go" and "Go Mono") or from font files passed in
// device.Config.Fonts, and packed images are composited with their alpha.
// The device draws into an *image.RGBA that Image returns.
//
// gprint uses raster devices offscreen for region redraw; gprintdemo uses
// one to render pages to PNG. Importing the package registers the device
// as "raster".
package raster
