package particle

import (
	"math/rand/v2"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestParseRange_FixedValue tests parsing of fixed value format
func TestParseRange_FixedValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"Integer", "1500", 1500},
		{"Float", "3.14", 3.14},
		{"Negative", "-10.5", -10.5},
		{"Zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if r.Min != tt.want || r.Max != tt.want || !r.IsFixed() {
				t.Errorf("ParseRange(%q) = %v, want fixed %v", tt.input, r, tt.want)
			}
		})
	}
}

// TestParseRange_Range tests parsing of range format
func TestParseRange_Range(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Float range", "[0.7 0.9]", 0.7, 0.9},
		{"Integer range", "[100 200]", 100, 200},
		{"Negative range", "[-5 -2]", -5, -2},
		{"Extra spaces", "  [ 20   200 ] ", 20, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if r.Min != tt.wantMin || r.Max != tt.wantMax {
				t.Errorf("ParseRange(%q) = %v, want [%v %v]", tt.input, r, tt.wantMin, tt.wantMax)
			}
		})
	}
}

// TestParseRange_Errors tests malformed inputs
func TestParseRange_Errors(t *testing.T) {
	for _, in := range []string{"", "[1 2", "[1]", "[1 2 3]", "[a 2]", "[2 1]", "abc"} {
		if _, err := ParseRange(in); err == nil {
			t.Errorf("ParseRange(%q) expected error", in)
		}
	}
}

func TestRangeSample(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	r := Between(30, 60)
	for i := 0; i < 1000; i++ {
		v := r.Sample(rnd)
		if v < 30 || v >= 60 {
			t.Fatalf("Sample = %v, out of [30, 60)", v)
		}
	}
	if Fixed(4).Sample(rnd) != 4 {
		t.Error("fixed range should always sample its value")
	}
	if n := Between(100, 101).SampleInt(rnd); n != 100 {
		t.Errorf("SampleInt = %d, want 100", n)
	}
}

func TestRangeYAML(t *testing.T) {
	var doc struct {
		A Range `yaml:"a"`
		B Range `yaml:"b"`
		C Range `yaml:"c"`
	}
	src := "a: \"[100 200]\"\nb: 0.5\nc: [1, 4]\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if doc.A != Between(100, 200) || doc.B != Fixed(0.5) || doc.C != Between(1, 4) {
		t.Errorf("decoded = %+v", doc)
	}

	type wrapper struct {
		A Range `yaml:"a"`
	}
	out, err := yaml.Marshal(wrapper{Between(20, 200)})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var back wrapper
	if err := yaml.Unmarshal(out, &back); err != nil || back.A != Between(20, 200) {
		t.Errorf("round trip of %q = %v, %v", out, back.A, err)
	}

	if err := yaml.Unmarshal([]byte("a: \"[2 1]\"\n"), &doc); err == nil {
		t.Error("inverted range should fail to decode")
	}
}
