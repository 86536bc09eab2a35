package math3d

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestVec3AddMinusRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
	}{
		{"columns", V3(1, 2, 3), V3(-4, 5.5, 0.25)},
		{"rows", V3(1e6, -2, 3).Transpose(), V3(7, 8, -9).Transpose()},
		{"zero", Zero3(), V3(1, 1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			back, err := sum.Sub(tc.b)
			if err != nil {
				t.Fatalf("Sub: %v", err)
			}
			if !back.ApproxEqual(tc.a, eps) {
				t.Errorf("got %v, want %v", back, tc.a)
			}
			if back.Transposed != tc.a.Transposed {
				t.Errorf("orientation changed: got %v", back.Transposed)
			}
		})
	}
}

func TestVec4AddMinusRoundTrip(t *testing.T) {
	a, b := V4(1, 2, 3, 1), V4(0.5, -3, 9, 0)
	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	back, err := sum.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	if !back.ApproxEqual(a, eps) {
		t.Errorf("got %v, want %v", back, a)
	}
}

func TestVecDimensionMismatch(t *testing.T) {
	col := V3(1, 2, 3)
	row := V3(1, 2, 3).Transpose()

	_, err := col.Add(row)
	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("Add: got %v, want *DimensionMismatchError", err)
	}
	if dm.Expected != [2]int{3, 1} || dm.Got != [2]int{1, 3} {
		t.Errorf("shapes = %v / %v, want [3 1] / [1 3]", dm.Expected, dm.Got)
	}

	_, err = V4(1, 2, 3, 4).Transpose().Sub(V4(1, 2, 3, 4))
	if !errors.As(err, &dm) {
		t.Fatalf("Sub: got %v, want *DimensionMismatchError", err)
	}
	if dm.Expected != [2]int{1, 4} || dm.Got != [2]int{4, 1} {
		t.Errorf("shapes = %v / %v, want [1 4] / [4 1]", dm.Expected, dm.Got)
	}
}

func TestVecGetSet(t *testing.T) {
	v := V3(1, 2, 3)
	for i, want := range []float64{1, 2, 3} {
		got, err := v.Get(i)
		if err != nil || got != want {
			t.Errorf("Get(%d) = %v, %v; want %v", i, got, err, want)
		}
	}

	for _, i := range []int{-1, 3, 10} {
		_, err := v.Get(i)
		var ob *OutOfBoundError
		if !errors.As(err, &ob) {
			t.Errorf("Get(%d): got %v, want *OutOfBoundError", i, err)
			continue
		}
		if ob.Got[0] != i || ob.Range[0] != 2 {
			t.Errorf("Get(%d): error %+v", i, ob)
		}
	}

	w, err := v.Set(1, 9)
	if err != nil {
		t.Fatal(err)
	}
	if w.Y != 9 || v.Y != 2 {
		t.Errorf("Set must copy: got w.Y=%v v.Y=%v", w.Y, v.Y)
	}

	if _, err := V4(0, 0, 0, 0).Set(4, 1); err == nil {
		t.Error("Vec4.Set(4) should fail")
	}
	if got, _ := V4(1, 2, 3, 4).Get(3); got != 4 {
		t.Errorf("Vec4.Get(3) = %v, want 4", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x, y, z := V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)

	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", x, y, z},
		{"x cross z", x, z, y.Negate()},
		{"y cross z", y, z, x},
		{"y cross x", y, x, z.Negate()},
		{"parallel", x, x.Scale(3), Zero3()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Cross(tc.b)
			if !got.ApproxEqual(tc.want, eps) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	if math.Abs(n.Len()-1) > eps {
		t.Errorf("len = %v, want 1", n.Len())
	}
	if !n.ApproxEqual(V3(0.6, 0, 0.8), eps) {
		t.Errorf("got %v", n)
	}

	zero := Zero3().Normalize()
	if !zero.IsZero() {
		t.Errorf("zero normalize = %v, want zero", zero)
	}
	if math.IsNaN(zero.X) {
		t.Error("zero normalize produced NaN")
	}
}

func TestVec3Reflect(t *testing.T) {
	// Light coming straight down onto a floor bounces straight up.
	got := V3(0, -1, 0).Reflect(V3(0, 1, 0))
	if !got.ApproxEqual(V3(0, 1, 0), eps) {
		t.Errorf("got %v, want (0, 1, 0)", got)
	}

	got = V3(1, -1, 0).Reflect(V3(0, 1, 0))
	if !got.ApproxEqual(V3(1, 1, 0), eps) {
		t.Errorf("got %v, want (1, 1, 0)", got)
	}
}

func TestVec3Helpers(t *testing.T) {
	a, b := V3(1, 5, -2), V3(3, 2, 0)

	if got := a.Dot(b); got != 13 {
		t.Errorf("Dot = %v, want 13", got)
	}
	if got := a.Mul(b); !got.ApproxEqual(V3(3, 10, 0), eps) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Min(b); !got.ApproxEqual(V3(1, 2, -2), eps) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); !got.ApproxEqual(V3(3, 5, 0), eps) {
		t.Errorf("Max = %v", got)
	}
	if got := a.Lerp(b, 0.5); !got.ApproxEqual(V3(2, 3.5, -1), eps) {
		t.Errorf("Lerp = %v", got)
	}
	if got := V3(0, 0, 0).Distance(V3(2, 3, 6)); math.Abs(got-7) > eps {
		t.Errorf("Distance = %v, want 7", got)
	}
	if got := a.Shape(); got != [2]int{3, 1} {
		t.Errorf("Shape = %v", got)
	}
	if got := a.Transpose().Shape(); got != [2]int{1, 3} {
		t.Errorf("transposed Shape = %v", got)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	got := V4(2, 4, -6, 2).PerspectiveDivide()
	if !got.ApproxEqual(V4(1, 2, -3, 1), eps) {
		t.Errorf("got %v", got)
	}

	dir := V4(1, 2, 3, 0)
	if got := dir.PerspectiveDivide(); got != dir {
		t.Errorf("w=0 should be unchanged, got %v", got)
	}
}

func TestVec4Lerp(t *testing.T) {
	a, b := V4(0, 2, -4, 1), V4(10, 4, 4, 0)
	tests := []struct {
		t    float64
		want Vec4
	}{
		{0, a},
		{1, b},
		{0.25, V4(2.5, 2.5, -2, 0.75)},
		{2, V4(20, 6, 12, -1)},
	}
	for _, tc := range tests {
		if got := a.Lerp(b, tc.t); !got.ApproxEqual(tc.want, 1e-12) {
			t.Errorf("Lerp(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
	if !a.Transpose().Lerp(b, 0.5).Transposed {
		t.Error("Lerp dropped the orientation of the receiver")
	}
}

func TestVec2Cross(t *testing.T) {
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
	if got := V2(3, 4).Sub(V2(1, 1)); got != V2(2, 3) {
		t.Errorf("Sub = %v", got)
	}
}
