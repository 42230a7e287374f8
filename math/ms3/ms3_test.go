package ms3

import "testing"

func TestAddSub(t *testing.T) {
	a := Vec{X: 1, Y: 2, Z: 3}
	b := Vec{X: -1, Y: 0, Z: 1}
	got := Add(a, b)
	want := Vec{X: 0, Y: 2, Z: 4}
	if got != want {
		t.Errorf("Add(%v,%v)=%v, want %v", a, b, got, want)
	}
	if got := Sub(got, b); got != a {
		t.Errorf("Sub(Add(a,b),b)=%v, want %v", got, a)
	}
}

func TestCross(t *testing.T) {
	x := Vec{X: 1}
	y := Vec{Y: 1}
	got := Cross(x, y)
	want := Vec{Z: 1}
	if !EqualElem(got, want, 1e-6) {
		t.Errorf("Cross(x,y)=%v, want %v", got, want)
	}
}

func TestUnit(t *testing.T) {
	v := Vec{X: 0, Y: 3, Z: 4}
	u := Unit(v)
	if n := Norm(u); n < 0.999 || n > 1.001 {
		t.Errorf("|Unit(v)|=%.6f, want 1", n)
	}
}

func TestClampElem(t *testing.T) {
	v := Vec{X: -1, Y: 5, Z: 0.5}
	got := ClampElem(v, Vec{}, Vec{X: 1, Y: 1, Z: 1})
	want := Vec{X: 0, Y: 1, Z: 0.5}
	if got != want {
		t.Errorf("ClampElem(%v)=%v, want %v", v, got, want)
	}
}
