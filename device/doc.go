// Package device defines the contract between the gprint pipeline and a
// page-oriented output device.
//
// A device exposes a deliberately small, GDI-like operation set: path
// building in device units, solid brushes and pens, font selection at a
// single escapement angle, text output with optional explicit advances,
// world-transform manipulation and packed-image blits. Everything the
// pipeline draws is expressed in these operations.
//
// # Error model
//
// Device operations do not return errors individually. A device that fails
// (lost context, I/O failure, allocation failure) records the first error
// and turns every later operation into a no-op; the pipeline checks Err
// after each draw call and aborts the page. This mirrors bufio.Writer.
//
// # Capabilities
//
// Each device reports a Capabilities value built once when the device is
// created. The pipeline selects strategies (pen style, text route, blit
// strategy) from this descriptor only; it never probes device types.
//
// # Registry
//
// Implementations register a factory under a name, following the
// database/sql driver pattern:
//
//	func init() {
//	    device.Register("raster", func(cfg device.Config) (device.Device, error) {
//	        return New(cfg)
//	    })
//	}
package device
