// Package image converts between Go images and the packed bitmaps that
// page devices accept, and composites transformed images into scratch
// buffers.
package image
