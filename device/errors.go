package device

import "errors"

// Sentinel errors reported through Device.Err.
var (
	// ErrNoPage is recorded when a drawing operation is issued outside
	// StartPage/EndPage.
	ErrNoPage = errors.New("device: no page started")

	// ErrClosed is recorded when a closed device is used.
	ErrClosed = errors.New("device: device is closed")

	// ErrPageInProgress is returned by StartPage when the previous page
	// was not ended.
	ErrPageInProgress = errors.New("device: page already started")
)
