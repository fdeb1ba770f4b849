package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"
)

// peak 返回 PCM 片段（字节偏移 [from, to)）的最大振幅
func peak(pcm []byte, from, to int) float64 {
	max := 0.0
	for i := from; i+1 < to && i+1 < len(pcm); i += 2 {
		v := math.Abs(float64(int16(binary.LittleEndian.Uint16(pcm[i:]))))
		if v > max {
			max = v
		}
	}
	return max / math.MaxInt16
}

func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(440, 0, 10*time.Millisecond, WaveSine, SampleRate)
	total := 0
	buf := make([][2]float64, 100)
	for {
		n, ok := osc.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample out of range: %v", buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if want := SampleRate.N(10 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestEnvelopeDecays(t *testing.T) {
	src := NewOscillator(0, 0, 100*time.Millisecond, WaveNoise, SampleRate)
	env := NewEnvelope(src, 0, 10*time.Millisecond, SampleRate)
	pcm, err := Render(env)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	quarter := len(pcm) / 4
	head := peak(pcm, 0, quarter)
	tail := peak(pcm, 3*quarter, len(pcm))
	if head <= tail*10 {
		t.Errorf("envelope did not decay: head %.3f tail %.3f", head, tail)
	}
}

func TestSynthesizeCues(t *testing.T) {
	tests := []struct {
		name    string
		minimum time.Duration
	}{
		{"launch", 500 * time.Millisecond},
		{"explosion", time.Second},
		{"crackle", 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm, err := Synthesize(tt.name, SampleRate)
			if err != nil {
				t.Fatalf("Synthesize(%q): %v", tt.name, err)
			}
			if len(pcm)%4 != 0 {
				t.Errorf("PCM length %d is not whole stereo frames", len(pcm))
			}
			if frames := len(pcm) / 4; frames < SampleRate.N(tt.minimum) {
				t.Errorf("%d frames, want at least %d", frames, SampleRate.N(tt.minimum))
			}
			if p := peak(pcm, 0, len(pcm)); p == 0 || p > 1 {
				t.Errorf("peak amplitude %.3f, want (0, 1]", p)
			}
		})
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a, _ := Synthesize("explosion", SampleRate)
	b, _ := Synthesize("explosion", SampleRate)
	if string(a) != string(b) {
		t.Error("same cue rendered differently")
	}
}

func TestSynthesizeUnknown(t *testing.T) {
	_, err := Synthesize("fanfare", SampleRate)
	if !errors.Is(err, ErrUnknownCue) {
		t.Errorf("err = %v, want ErrUnknownCue", err)
	}
}

func TestRenderClamps(t *testing.T) {
	loud := newVolume(NewOscillator(440, 0, 5*time.Millisecond, WaveSine, SampleRate), 8)
	pcm, err := Render(loud)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if p := peak(pcm, 0, len(pcm)); p > 1 {
		t.Errorf("peak %.3f exceeds full scale", p)
	}
}
