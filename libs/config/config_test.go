package config

import "testing"

func TestString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := String("TEST_STRING", "fallback"); got != "value" {
		t.Fatalf("String = %q", got)
	}
	if got := String("TEST_STRING_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("String fallback = %q", got)
	}
}

func TestRequiredString(t *testing.T) {
	if _, err := RequiredString("TEST_REQUIRED_UNSET"); err == nil {
		t.Fatal("expected error for unset var")
	}
	t.Setenv("TEST_REQUIRED", "x")
	v, err := RequiredString("TEST_REQUIRED")
	if err != nil || v != "x" {
		t.Fatalf("RequiredString = %q, %v", v, err)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := Int("TEST_INT", 7); got != 42 {
		t.Fatalf("Int = %d", got)
	}
	t.Setenv("TEST_INT", "not a number")
	if got := Int("TEST_INT", 7); got != 7 {
		t.Fatalf("Int fallback = %d", got)
	}
}

func TestBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "On"} {
		t.Setenv("TEST_BOOL", v)
		if !Bool("TEST_BOOL", false) {
			t.Fatalf("Bool(%q) = false", v)
		}
	}
	t.Setenv("TEST_BOOL", "0")
	if Bool("TEST_BOOL", true) {
		t.Fatal("Bool(0) = true")
	}
}

func TestPort(t *testing.T) {
	t.Setenv("TEST_PORT", "8091")
	p, err := Port("TEST_PORT", "8080")
	if err != nil || p != "8091" {
		t.Fatalf("Port = %q, %v", p, err)
	}
	t.Setenv("TEST_PORT", "99999")
	if _, err := Port("TEST_PORT", "8080"); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestList(t *testing.T) {
	t.Setenv("TEST_LIST", "a, b ,,c")
	got := List("TEST_LIST", "")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("List = %v", got)
	}
	if got := List("TEST_LIST_UNSET", "x,y"); len(got) != 2 {
		t.Fatalf("List fallback = %v", got)
	}
}
