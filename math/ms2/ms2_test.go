package ms2

import "testing"

func TestAddSub(t *testing.T) {
	a := Vec{X: 1, Y: 2}
	b := Vec{X: 3, Y: -1}
	got := Add(a, b)
	want := Vec{X: 4, Y: 1}
	if got != want {
		t.Errorf("Add(%v,%v)=%v, want %v", a, b, got, want)
	}
	if got := Sub(got, b); got != a {
		t.Errorf("Sub(Add(a,b),b)=%v, want %v", got, a)
	}
}

func TestUnit(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	u := Unit(v)
	if !EqualElem(u, Vec{X: 0.6, Y: 0.8}, 1e-6) {
		t.Errorf("Unit(%v)=%v", v, u)
	}
	if n := Norm(u); n < 0.999 || n > 1.001 {
		t.Errorf("|Unit(v)|=%.6f, want 1", n)
	}
}

func TestDotCross(t *testing.T) {
	a := Vec{X: 1, Y: 0}
	b := Vec{X: 0, Y: 1}
	if got := Dot(a, b); got != 0 {
		t.Errorf("Dot(a,b)=%v, want 0", got)
	}
	if got := Cross(a, b); got != 1 {
		t.Errorf("Cross(a,b)=%v, want 1", got)
	}
}

func TestClampElem(t *testing.T) {
	v := Vec{X: -1, Y: 5}
	got := ClampElem(v, Vec{X: 0, Y: 0}, Vec{X: 1, Y: 1})
	want := Vec{X: 0, Y: 1}
	if got != want {
		t.Errorf("ClampElem(%v)=%v, want %v", v, got, want)
	}
}
