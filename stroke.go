package gprint

import (
	"github.com/gogpu/gprint/device"
	"github.com/gogpu/gprint/internal/stroke"
)

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

var (
	capNames  = [...]string{"Butt", "Round", "Square"}
	joinNames = [...]string{"Miter", "Round", "Bevel"}
)

func (c LineCap) String() string {
	if int(c) < len(capNames) {
		return capNames[c]
	}
	return "Unknown"
}

func (j LineJoin) String() string {
	if int(j) < len(joinNames) {
		return joinNames[j]
	}
	return "Unknown"
}

// Stroke defines the style for stroking paths.
// It is a value; StrokePolicy substitutes a corrected copy for the
// duration of one draw call and never modifies the caller's stroke.
type Stroke struct {
	// Width is the line width in user units.
	Width float64

	// Cap is the shape of line endpoints.
	Cap LineCap

	// Join is the shape of line joins.
	Join LineJoin

	// MiterLimit is the limit for miter joins before they become bevels.
	MiterLimit float64

	// Dash is the dash pattern, nil for a solid line.
	Dash *Dash
}

// DefaultStroke returns a solid 1-unit line with butt caps and miter
// joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// WithWidth returns a copy of s with the given width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of s with the given cap.
func (s Stroke) WithCap(c LineCap) Stroke {
	s.Cap = c
	return s
}

// WithJoin returns a copy of s with the given join.
func (s Stroke) WithJoin(j LineJoin) Stroke {
	s.Join = j
	return s
}

// WithDash returns a copy of s with the given dash pattern.
func (s Stroke) WithDash(d *Dash) Stroke {
	s.Dash = d
	return s
}

// IsDashed reports whether the stroke has a dash pattern.
func (s Stroke) IsDashed() bool {
	return s.Dash.IsDashed()
}

func (c LineCap) device() device.LineCap {
	switch c {
	case LineCapRound:
		return device.LineCapRound
	case LineCapSquare:
		return device.LineCapSquare
	default:
		return device.LineCapButt
	}
}

func (j LineJoin) device() device.LineJoin {
	switch j {
	case LineJoinRound:
		return device.LineJoinRound
	case LineJoinBevel:
		return device.LineJoinBevel
	default:
		return device.LineJoinMiter
	}
}

func (s Stroke) style() stroke.Style {
	st := stroke.Style{Width: s.Width, MiterLimit: s.MiterLimit}
	switch s.Cap {
	case LineCapRound:
		st.Cap = stroke.CapRound
	case LineCapSquare:
		st.Cap = stroke.CapSquare
	}
	switch s.Join {
	case LineJoinRound:
		st.Join = stroke.JoinRound
	case LineJoinBevel:
		st.Join = stroke.JoinBevel
	}
	return st
}

// outline returns the fill outline of p stroked with s, in the same space
// as p. Tolerance is the curve flattening tolerance in that space.
func (s Stroke) outline(p *Path, tolerance float64) *Path {
	sp := p.strokePath()
	if s.IsDashed() {
		sp = stroke.Dash(sp, s.Dash.Array, s.Dash.Offset, tolerance)
	}
	e := stroke.NewExpander(s.style())
	e.SetTolerance(tolerance)
	return pathFromStroke(e.Expand(sp))
}
