package gprint

import (
	"errors"
	"fmt"
)

var (
	// ErrAborted is returned when the page context is canceled. It is the
	// distinct outcome of a canceled page, never wrapped in a PageError.
	ErrAborted = errors.New("gprint: page aborted")

	// ErrDegenerateTransform is returned by Matrix.Invert for singular
	// matrices. Drawing operations branch on it and never return it.
	ErrDegenerateTransform = errors.New("gprint: degenerate transform")

	// ErrNilDevice is returned by NewJob without a device.
	ErrNilDevice = errors.New("gprint: nil device")

	// ErrJobClosed is returned when a closed job is used.
	ErrJobClosed = errors.New("gprint: job closed")

	// ErrNoFont is returned by text drawing before SetFont.
	ErrNoFont = errors.New("gprint: no font selected")

	// ErrStackEmpty is returned by Pop without a matching Push.
	ErrStackEmpty = errors.New("gprint: graphics state stack is empty")
)

// PageError reports a device failure while rendering a page. It unwraps
// to the device error.
type PageError struct {
	Page int
	Op   string
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("gprint: page %d: %s: %v", e.Page, e.Op, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
