package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{3, 4, 5}
	got := a.Add(b)
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Lift(t *testing.T) {
	got := Vec3{1, 0.25, -2}.Lift(1.5)
	want := Vec3{1, 1.75, -2}
	if got != want {
		t.Errorf("Vec3.Lift() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	z := Vec3{0, 0, -1}
	got := x.Cross(z)
	if got != Up {
		t.Errorf("Vec3.Cross() = %v, want %v", got, Up)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero", zero)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 0}
	if got, want := a.Min(b), (Vec3{-1, -2, 0}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{1, 2, 3}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}

func TestVec3ApproxEqual(t *testing.T) {
	a := Vec3{0.1, 0.2, 0.3}
	if !a.ApproxEqual(Vec3{0.1000001, 0.2, 0.2999999}, 1e-5) {
		t.Error("expected nearly equal vectors to compare equal")
	}
	if a.ApproxEqual(Vec3{0.1, 0.25, 0.3}, 1e-5) {
		t.Error("expected distinct vectors to compare unequal")
	}
}
