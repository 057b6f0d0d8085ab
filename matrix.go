package gprint

import (
	"math"

	"github.com/gogpu/gprint/device"
)

// Matrix represents a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// which maps (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians). With the y axis
// pointing down, positive angles turn clockwise on the page.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{A: 1, B: x, D: y, E: 1}
}

// Multiply returns m * other, which applies other first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix, or ErrDegenerateTransform when m
// collapses the plane onto a line or a point.
func (m Matrix) Invert() (Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Matrix{}, ErrDegenerateTransform
	}
	inv := 1.0 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, nil
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// AxisAligned reports whether m only scales and translates.
func (m Matrix) AxisAligned() bool {
	return m.B == 0 && m.D == 0
}

// Columns returns the lengths of the images of the unit vectors (1, 0)
// and (0, 1).
func (m Matrix) Columns() (float64, float64) {
	return math.Hypot(m.A, m.D), math.Hypot(m.B, m.E)
}

// Orthogonal reports whether m maps the coordinate axes onto
// perpendicular directions, that is, it has no shear. Rotations and
// per-axis scales qualify.
func (m Matrix) Orthogonal() bool {
	sx, sy := m.Columns()
	dot := m.A*m.B + m.D*m.E
	return math.Abs(dot) <= 1e-9*sx*sy
}

// Angle returns the direction of the transformed x axis in radians,
// measured clockwise on a y-down page.
func (m Matrix) Angle() float64 {
	return math.Atan2(m.D, m.A)
}

func (m Matrix) device() device.Matrix {
	return device.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

func matrixFromDevice(d device.Matrix) Matrix {
	return Matrix{A: d.A, B: d.B, C: d.C, D: d.D, E: d.E, F: d.F}
}
