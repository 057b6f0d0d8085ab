package gprint

import (
	"errors"
	"math"
	"testing"
)

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate after scale: the point is scaled first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if !near(got.X, 12, epsilon) || !near(got.Y, 2, epsilon) {
		t.Errorf("TransformPoint = %v, want (12, 2)", got)
	}
	if v := m.TransformVector(Pt(1, 1)); !near(v.X, 2, epsilon) || !near(v.Y, 2, epsilon) {
		t.Errorf("TransformVector = %v, want (2, 2)", v)
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name    string
		m       Matrix
		wantErr bool
	}{
		{"identity", Identity(), false},
		{"affine", Translate(3, -4).Multiply(Rotate(0.7)).Multiply(Scale(2, 5)), false},
		{"shear", Shear(0.5, 0.25), false},
		{"singular", Scale(0, 1), true},
		{"rank one", Matrix{A: 1, B: 2, D: 2, E: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Invert()
			if tt.wantErr {
				if !errors.Is(err, ErrDegenerateTransform) {
					t.Errorf("Invert() error = %v, want ErrDegenerateTransform", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Invert() error = %v", err)
			}
			if got := tt.m.Multiply(inv); !matrixNear(got, Identity(), 1e-9) {
				t.Errorf("m * inv = %+v, want identity", got)
			}
		})
	}
}

func TestMatrixClassification(t *testing.T) {
	tests := []struct {
		name        string
		m           Matrix
		axisAligned bool
		orthogonal  bool
		sx, sy      float64
	}{
		{"identity", Identity(), true, true, 1, 1},
		{"scale", Scale(3, 0.5), true, true, 3, 0.5},
		{"mirror", Scale(-2, 1), true, true, 2, 1},
		{"rotate", Rotate(math.Pi / 4), false, true, 1, 1},
		{"rotate scale", Rotate(math.Pi / 3).Multiply(Scale(2, 4)), false, true, 2, 4},
		{"shear", Shear(1, 0), false, false, 1, math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.AxisAligned(); got != tt.axisAligned {
				t.Errorf("AxisAligned() = %v, want %v", got, tt.axisAligned)
			}
			if got := tt.m.Orthogonal(); got != tt.orthogonal {
				t.Errorf("Orthogonal() = %v, want %v", got, tt.orthogonal)
			}
			sx, sy := tt.m.Columns()
			if !near(sx, tt.sx, 1e-9) || !near(sy, tt.sy, 1e-9) {
				t.Errorf("Columns() = (%v, %v), want (%v, %v)", sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestMatrixAngle(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 0},
		{"quarter turn", Rotate(math.Pi / 2), math.Pi / 2},
		{"back quarter turn", Rotate(-math.Pi / 2), -math.Pi / 2},
		{"scaled", Rotate(0.3).Multiply(Scale(5, 2)), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Angle(); !near(got, tt.want, 1e-12) {
				t.Errorf("Angle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectTransform(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 2, H: 1}
	got := r.Transform(Rotate(math.Pi / 2))
	want := Rect{X: -1, Y: 0, W: 1, H: 2}
	if !near(got.X, want.X, 1e-12) || !near(got.Y, want.Y, 1e-12) ||
		!near(got.W, want.W, 1e-12) || !near(got.H, want.H, 1e-12) {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}
	if got := r.Intersect(Rect{X: 5, Y: 5, W: 1, H: 1}); !got.Empty() {
		t.Errorf("Intersect of disjoint rects = %+v, want empty", got)
	}
}
