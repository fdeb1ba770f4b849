package render

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff3", color.NRGBA{255, 255, 51, 255}},
		{"#aa0609", color.NRGBA{0xaa, 0x06, 0x09, 255}},
		{"#000003", color.NRGBA{0, 0, 3, 255}},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}},
		{"rgba(255,0,0,0.5)", color.NRGBA{255, 0, 0, 128}},
		{"hsl(0, 100%, 50%)", color.NRGBA{255, 0, 0, 255}},
		{"hsla(120, 100%, 50%, 0)", color.NRGBA{0, 255, 0, 0}},
		{"HSL(240,100%,50%)", color.NRGBA{0, 0, 255, 255}},
		{"transparent", color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			got := color.NRGBAModel.Convert(c).(color.NRGBA)
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "hsl(1,2)", "cmyk(1,2,3,4)", "#zzzzzz", "rgb(a,b,c)"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

// TestHSLWrapsHue 色相超出 360 时取模
func TestHSLWrapsHue(t *testing.T) {
	if HSL(480, 100, 50) != HSL(120, 100, 50) {
		t.Error("hue 480 should equal hue 120")
	}
	if HSL(-240, 100, 50) != HSL(120, 100, 50) {
		t.Error("hue -240 should equal hue 120")
	}
}

func TestGradientColorAt(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0, Color: color.NRGBA{255, 255, 255, 255}},
		{Offset: 0.5, Color: color.NRGBA{0, 0, 0, 255}},
		{Offset: 1, Color: color.NRGBA{0, 0, 0, 0}},
	}
	r, _, _, a := GradientColorAt(stops, 0.25)
	if r < 0.49 || r > 0.51 || a != 1 {
		t.Errorf("midpoint of first span = (r=%v, a=%v), want (0.5, 1)", r, a)
	}
	_, _, _, a = GradientColorAt(stops, 1)
	if a != 0 {
		t.Errorf("edge alpha = %v, want 0", a)
	}
	if _, _, _, a := GradientColorAt(nil, 0.5); a != 0 {
		t.Error("empty stops should be transparent")
	}
}
