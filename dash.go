package gprint

import "math"

// Dash defines a dash pattern for stroking.
// Array alternates dash and gap lengths in user units; an odd-length
// array is repeated to form a full cycle, so [5] means [5, 5].
type Dash struct {
	Array []float64

	// Offset is how far into the pattern the stroke begins.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are taken as absolute values. It returns nil when no
// length is positive.
func NewDash(lengths ...float64) *Dash {
	arr := make([]float64, len(lengths))
	positive := false
	for i, l := range lengths {
		arr[i] = math.Abs(l)
		positive = positive || arr[i] > 0
	}
	if !positive {
		return nil
	}
	return &Dash{Array: arr}
}

// WithOffset returns a copy of d starting offset units into the pattern.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the length of one full cycle.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether d describes a dashed rather than solid line.
func (d *Dash) IsDashed() bool {
	return d.PatternLength() > 0
}

// Scale returns a copy of d with every length multiplied by factor.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	arr := make([]float64, len(d.Array))
	for i, l := range d.Array {
		arr[i] = l * factor
	}
	return &Dash{Array: arr, Offset: d.Offset * factor}
}
