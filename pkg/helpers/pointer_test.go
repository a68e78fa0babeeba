package helpers

import "testing"

func TestNonZero(t *testing.T) {
	if NonZero("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if got := NonZero("food"); got == nil || *got != "food" {
		t.Fatalf("NonZero(food) = %v", got)
	}
	if NonZero(0) != nil {
		t.Fatalf("expected nil for zero int")
	}
}

func TestValue(t *testing.T) {
	if Value[string](nil) != "" {
		t.Fatalf("expected zero value for nil")
	}
	if Value(Ptr(3)) != 3 {
		t.Fatalf("expected dereferenced value")
	}
}
