package gprint

import (
	"context"
	"math"
	"testing"

	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/device/recording"
)

const epsilon = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func matrixNear(a, b Matrix, tol float64) bool {
	return near(a.A, b.A, tol) && near(a.B, b.B, tol) && near(a.C, b.C, tol) &&
		near(a.D, b.D, tol) && near(a.E, b.E, tol) && near(a.F, b.F, tol)
}

// testCaps returns capabilities with one device unit per point, so user
// and device coordinates coincide.
func testCaps() device.Capabilities {
	caps := device.DefaultCapabilities()
	caps.DPIX, caps.DPIY = 72, 72
	caps.PageWidth, caps.PageHeight = 612, 792
	return caps
}

func newRecorder(caps device.Capabilities, opts ...recording.Option) *recording.Device {
	return recording.New(append([]recording.Option{recording.WithCapabilities(caps)}, opts...)...)
}

// renderOne renders a single page on dev and returns the job.
func renderOne(t *testing.T, dev device.Device, paint PageFunc, opts ...Option) *Job {
	t.Helper()
	job, err := NewJob(dev, opts...)
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}
	if err := job.RenderPage(context.Background(), paint); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	return job
}

// testGraphics returns a Graphics on dev outside of any page.
func testGraphics(t *testing.T, dev device.Device, opts ...Option) *Graphics {
	t.Helper()
	job, err := NewJob(dev, opts...)
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}
	return newGraphics(context.Background(), job, dev, 1, job.baseTransform(), nil)
}
