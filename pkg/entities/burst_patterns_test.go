package entities

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/fireworks/pkg/utils"
)

// fixedRand 始终返回同一个值的随机源
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func testBurstParams(n int) BurstParams {
	return BurstParams{
		FireNumber:  n,
		Range:       100,
		PlanetColor: color.NRGBA{0xaa, 0x06, 0x09, 0xff},
		RingColor:   color.NRGBA{0xff, 0xff, 0x99, 0xff},
	}
}

func TestBurstPatternCounts(t *testing.T) {
	origin := utils.Vec(400, 300)

	tests := []struct {
		name     string
		generate BurstPattern
		multiple int
	}{
		{"单圈 5N", MakeCircleBurst, 5},
		{"双圈 6N", MakeDoubleCircleBurst, 6},
		{"星球 9N", MakePlanetBurst, 9},
		{"双层实心 9N", MakeDoubleFullCircleBurst, 9},
		{"心形 5N", MakeHeartBurst, 5},
		{"随机 5N", MakeRandomBurst, 5},
	}

	for _, tt := range tests {
		for _, n := range []int{1, 3, 10} {
			for seed := uint64(1); seed <= 5; seed++ {
				got := tt.generate(origin, testBurstParams(n), utils.NewRand(seed))
				if len(got.Particles) != tt.multiple*n {
					t.Errorf("%s: N=%d seed=%d got %d particles, want %d",
						tt.name, n, seed, len(got.Particles), tt.multiple*n)
				}
			}
		}
	}
}

func TestFullCircleBurstCount(t *testing.T) {
	// 3N 外圈 + N×round(rand·4+4) 内部
	tests := []struct {
		name string
		r    float64
		want int
	}{
		{"最少", 0, 10 * (3 + 4)},
		{"中间", 0.5, 10 * (3 + 6)},
		{"接近最大", 0.99, 10 * (3 + 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeFullCircleBurst(utils.Vec(0, 0), testBurstParams(10), fixedRand(tt.r))
			if len(got.Particles) != tt.want {
				t.Errorf("got %d particles, want %d", len(got.Particles), tt.want)
			}
		})
	}

	for seed := uint64(1); seed <= 20; seed++ {
		n := len(MakeFullCircleBurst(utils.Vec(0, 0), testBurstParams(10), utils.NewRand(seed)).Particles)
		if n%10 != 0 || n < 70 || n > 110 {
			t.Errorf("seed %d: count %d not a multiple of N in [7N, 11N]", seed, n)
		}
	}
}

func TestBurstParticlesStartAtOrigin(t *testing.T) {
	origin := utils.Vec(123, 456)
	for _, p := range BurstPatterns {
		res := p.Generate(origin, testBurstParams(4), utils.NewRand(9))
		if res.Color == nil {
			t.Errorf("%s: nil light color", p.Name)
		}
		for i, b := range res.Particles {
			if b.X != origin.X || b.Y != origin.Y {
				t.Fatalf("%s[%d]: start (%v, %v), want origin", p.Name, i, b.X, b.Y)
			}
			if b.Alpha != 1 || b.Life <= 0 || b.Life != b.BaseLife || b.Size != b.BaseSize {
				t.Fatalf("%s[%d]: bad initial decay state %+v", p.Name, i, b.DecayBody)
			}
			if b.Size < 1.5 || b.Size >= 2.5 {
				t.Fatalf("%s[%d]: size %v out of [1.5, 2.5)", p.Name, i, b.Size)
			}
		}
	}
}

func TestPlanetBurstColors(t *testing.T) {
	params := testBurstParams(2)
	res := MakePlanetBurst(utils.Vec(0, 0), params, utils.NewRand(3))
	if res.Color != params.PlanetColor {
		t.Errorf("light color = %v, want planet color", res.Color)
	}
	// 前 6N 为星球本体，后 3N 为光环
	for i, b := range res.Particles {
		want := params.PlanetColor
		if i >= 12 {
			want = params.RingColor
		}
		if b.Fill != want {
			t.Fatalf("particle %d fill = %v, want %v", i, b.Fill, want)
		}
	}
}

func TestCircleBurstLife(t *testing.T) {
	res := MakeCircleBurst(utils.Vec(0, 0), testBurstParams(2), utils.NewRand(5))
	for _, b := range res.Particles {
		if b.Life < 50 || b.Life > 100 || b.Life != math.Trunc(b.Life) {
			t.Fatalf("circle life %v not an integer in [50, 100]", b.Life)
		}
	}
}

func TestHeartSpeed(t *testing.T) {
	v := 4.0
	q := math.Pi / 2
	tests := []struct {
		name   string
		offset float64
		want   float64
	}{
		{"起点", 0, v},
		{"第一象限中点", q / 2, 1.5 * v},
		{"象限边界", q, v},
		{"第二象限中点", q * 1.5, 1.5 * v},
		{"π 边界", math.Pi, v},
		{"第三象限中点", q * 2.5, 0.5 * v},
		{"第四象限中点", q * 3.5, 0.5 * v},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeartSpeed(tt.offset, v); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HeartSpeed(%v) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestPickBurstPattern(t *testing.T) {
	if got := PickBurstPattern(fixedRand(0)).Name; got != "double-full-circle" {
		t.Errorf("rand 0 picked %q", got)
	}
	if got := PickBurstPattern(fixedRand(0.9999)).Name; got != "random" {
		t.Errorf("rand ~1 picked %q", got)
	}

	seen := map[string]bool{}
	r := utils.NewRand(11)
	for i := 0; i < 500; i++ {
		seen[PickBurstPattern(r).Name] = true
	}
	if len(seen) != len(BurstPatterns) {
		t.Errorf("only %d of %d patterns picked", len(seen), len(BurstPatterns))
	}
}

func TestRandomColorOpaque(t *testing.T) {
	r := utils.NewRand(1)
	for i := 0; i < 100; i++ {
		if c := RandomColor(r); c.A != 0xff {
			t.Fatalf("RandomColor alpha = %d", c.A)
		}
	}
	if c := RandomColor(fixedRand(0.9999)); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("rand ~1 gave %v, want white", c)
	}
}
