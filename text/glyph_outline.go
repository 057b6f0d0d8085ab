package text

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OutlinePoint is a point of a glyph outline in points, y down, relative
// to the glyph origin on the baseline.
type OutlinePoint struct {
	X, Y float64
}

// OutlineOp is the kind of an outline segment.
type OutlineOp uint8

// Outline segment kinds, in sfnt order.
const (
	OutlineOpMoveTo OutlineOp = iota
	OutlineOpLineTo
	OutlineOpQuadTo
	OutlineOpCubicTo
)

var outlineOpNames = [...]string{"MoveTo", "LineTo", "QuadTo", "CubicTo"}

func (op OutlineOp) String() string {
	if int(op) < len(outlineOpNames) {
		return outlineOpNames[op]
	}
	return "Unknown"
}

// points returns how many of Points the op uses.
func (op OutlineOp) points() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	}
	return 1
}

// OutlineSegment is one segment of a glyph outline. The last used point
// is the end point; any before it are control points.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// GlyphOutline is the vector outline of a glyph. Every MoveTo starts a
// contour; contours are closed implicitly.
type GlyphOutline struct {
	GID      GlyphID
	Segments []OutlineSegment
}

// IsEmpty reports whether the outline draws nothing, as for a space.
func (o *GlyphOutline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// sfntOps maps sfnt segment ops to outline ops.
var sfntOps = map[sfnt.SegmentOp]OutlineOp{
	sfnt.SegmentOpMoveTo: OutlineOpMoveTo,
	sfnt.SegmentOpLineTo: OutlineOpLineTo,
	sfnt.SegmentOpQuadTo: OutlineOpQuadTo,
	sfnt.SegmentOpCubeTo: OutlineOpCubicTo,
}

// newGlyphOutline converts segs, scaling every point by k.
func newGlyphOutline(gid GlyphID, segs sfnt.Segments, k float64) *GlyphOutline {
	o := &GlyphOutline{GID: gid, Segments: make([]OutlineSegment, len(segs))}
	for i, s := range segs {
		seg := &o.Segments[i]
		seg.Op = sfntOps[s.Op]
		for j := range seg.Op.points() {
			seg.Points[j] = fixedPoint(s.Args[j], k)
		}
	}
	return o
}

func fixedPoint(p fixed.Point26_6, k float64) OutlinePoint {
	return OutlinePoint{X: fixedToFloat64(p.X) * k, Y: fixedToFloat64(p.Y) * k}
}
