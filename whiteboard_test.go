package whiteboard

import (
	"image/color"
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestRGBA(t *testing.T) {
	c := RGBA(29, 78, 216, 0.3)
	if !approxEqual(c.R, 29.0/255, epsilon) || !approxEqual(c.B, 216.0/255, epsilon) {
		t.Errorf("RGBA channels = %v, want 29/255, 78/255, 216/255", c)
	}
	if c.A != 0.3 {
		t.Errorf("A = %v, want 0.3", c.A)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want color.RGBA
	}{
		{"opaque black", ColorBlack, color.RGBA{0, 0, 0, 255}},
		{"opaque white", ColorWhite, color.RGBA{255, 255, 255, 255}},
		{"transparent", ColorTransparent, color.RGBA{}},
		{"half white", Color{1, 1, 1, 0.5}, color.RGBA{128, 128, 128, 128}},
		{"clamped", Color{2, -1, 0, 1}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.toRGBA(); got != tt.want {
				t.Errorf("toRGBA(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyModifiersHas(t *testing.T) {
	m := ModShift | ModMeta
	if !m.Has(ModShift) || !m.Has(ModMeta) {
		t.Error("Has should report held modifiers")
	}
	if m.Has(ModCtrl) {
		t.Error("Has(ModCtrl) = true, want false")
	}
	if m.Has(ModShift | ModCtrl) {
		t.Error("Has(ModShift|ModCtrl) = true, want false")
	}
}
