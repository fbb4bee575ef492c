package value

import "testing"

func TestInternerDedupesEqualStrings(t *testing.T) {
	in := NewInterner()
	a := in.Intern("hello")
	b := in.Intern("hello")
	if a != b {
		t.Errorf("Intern(\"hello\") twice produced different symbols: %v != %v", a, b)
	}
	c := in.Intern("world")
	if a == c {
		t.Errorf("Intern(\"hello\") and Intern(\"world\") produced the same symbol")
	}
	if got := in.Resolve(a); got != "hello" {
		t.Errorf("Resolve(a) = %q, want %q", got, "hello")
	}
}

func TestEqualityIsVariantSensitive(t *testing.T) {
	in := NewInterner()
	num := Number(0)
	boolean := Bool(false)
	if num.Equal(boolean) {
		t.Error("Number(0).Equal(Bool(false)) should be false: different variants")
	}
	if !Nil.Equal(Nil) {
		t.Error("Nil should equal Nil")
	}
	s1 := String(in.Intern("x"))
	s2 := String(in.Intern("x"))
	if !s1.Equal(s2) {
		t.Error("interned strings with equal content should be equal")
	}
}

func TestIsFalsey(t *testing.T) {
	in := NewInterner()
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil, true},
		{"false", Bool(false), true},
		{"true", Bool(true), false},
		{"zero number", Number(0), false},
		{"empty string", String(in.Intern("")), true},
		{"non-empty string", String(in.Intern("x")), false},
	}
	for _, c := range cases {
		if got := c.v.IsFalsey(in); got != c.want {
			t.Errorf("%s: IsFalsey() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestValueStringRendersHumanForm(t *testing.T) {
	in := NewInterner()
	if got := Number(5).String(in); got != "5" {
		t.Errorf("Number(5).String() = %q, want %q", got, "5")
	}
	if got := Bool(true).String(in); got != "true" {
		t.Errorf("Bool(true).String() = %q, want %q", got, "true")
	}
	if got := Nil.String(in); got != "nil" {
		t.Errorf("Nil.String() = %q, want %q", got, "nil")
	}
	sym := in.Intern("hi")
	if got := String(sym).String(in); got != "hi" {
		t.Errorf("String(sym).String() = %q, want %q", got, "hi")
	}
}
