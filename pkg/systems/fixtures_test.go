package systems

import (
	"testing"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
)

// recordingSounds 记录播放过的音效
type recordingSounds struct {
	played []game.SoundCue
}

func (r *recordingSounds) PlaySound(cue game.SoundCue) bool {
	r.played = append(r.played, cue)
	return true
}

func (r *recordingSounds) count(cue game.SoundCue) int {
	n := 0
	for _, c := range r.played {
		if c == cue {
			n++
		}
	}
	return n
}

// fixedRand 每次返回同一个值
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// sequenceRand 依次返回给定值，用完后重复最后一个
type sequenceRand struct {
	values []float64
	i      int
}

func (s *sequenceRand) Float64() float64 {
	v := s.values[s.i]
	if s.i < len(s.values)-1 {
		s.i++
	}
	return v
}

func testConfig(t *testing.T) *config.FireworksConfig {
	t.Helper()
	cfg := config.DefaultFireworksConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return cfg
}
