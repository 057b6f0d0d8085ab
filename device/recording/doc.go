// Package recording provides a device that records the calls it receives.
//
// The recording device behaves like a well-formed page device (it tracks
// the world transform, pen, brush and font, and enforces the page
// protocol) but draws nothing. Its answers to SelectFont, SelectStyledPen
// and MeasureString can be scripted, and it can be told to fail after a
// number of operations, which makes it the device of choice for testing
// fallback paths.
//
//	dev := recording.New(recording.WithFonts(func(s device.FontSpec) bool {
//	    return s.Family == "Go"
//	}))
//	// render through gprint ...
//	for _, c := range recording.Filter[recording.TextOutCommand](dev.Commands()) {
//	    fmt.Println(c.Text, c.X, c.Y)
//	}
//
// Importing the package registers the device as "recording".
package recording
