package mat

import (
	"testing"
)

func TestFract(t *testing.T) {
	testCases := []struct {
		in, expected float32
	}{
		{0, 0},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-3, 0},
	}
	for _, tt := range testCases {
		if v := Fract(tt.in); v != tt.expected {
			t.Errorf("Fract(%f) expected to be %f, got %f", tt.in, tt.expected, v)
		}
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp01(-0.5); v != 0 {
		t.Errorf("Expected 0, got %f", v)
	}
	if v := Clamp01(1.5); v != 1 {
		t.Errorf("Expected 1, got %f", v)
	}
	if v := Clamp(3, 1, 5); v != 3 {
		t.Errorf("Expected 3, got %f", v)
	}
}
