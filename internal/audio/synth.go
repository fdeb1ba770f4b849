// Package audio 合成烟花音效
//
// 所有音效都由振荡器与包络实时拼接而成，然后渲染成 16 位小端立体声 PCM，
// 可以直接交给 ebiten 的音频播放器。不依赖任何音频资源文件。
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 渲染使用的采样率，与 ebiten 音频上下文保持一致
const SampleRate beep.SampleRate = 44100

// ErrUnknownCue 未定义的音效名
var ErrUnknownCue = errors.New("unknown sound cue")

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveNoise
)

// oscillator 频率可线性滑动的振荡器
type oscillator struct {
	freq, sweep float64 // 起始频率与每秒的频率变化
	phase       float64
	position    int
	samples     int
	wave        Wave
	rate        beep.SampleRate
	rnd         *rand.Rand
}

// NewOscillator 创建振荡器；噪声波形使用固定种子，保证同一音效每次渲染结果一致
func NewOscillator(freq, sweep float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:    freq,
		sweep:   sweep,
		samples: rate.N(duration),
		wave:    wave,
		rate:    rate,
		rnd:     rand.New(rand.NewPCG(uint64(freq*1000)+1, 0x5eed)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.samples {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			v = o.rnd.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.position) / float64(o.rate)
		o.phase += math.Max(0, o.freq+o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 线性起音 + 指数衰减
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	decay    float64 // 每个采样的衰减系数
}

// NewEnvelope 为 s 加上包络：attack 内线性淡入，之后每 halfLife 音量减半
func NewEnvelope(s beep.Streamer, attack, halfLife time.Duration, rate beep.SampleRate) beep.Streamer {
	decay := 1.0
	if n := rate.N(halfLife); n > 0 {
		decay = math.Pow(0.5, 1/float64(n))
	}
	return &envelope{streamer: s, attack: rate.N(attack), decay: decay}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		} else {
			vol = math.Pow(e.decay, float64(e.position-e.attack))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume 线性音量转 effects.Volume（以 2 为底）
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Launch 升空：一段上扬的嘶声
func Launch(rate beep.SampleRate) beep.Streamer {
	d := 600 * time.Millisecond
	hiss := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), 150*time.Millisecond, 120*time.Millisecond, rate)
	whistle := NewEnvelope(NewOscillator(900, 1400, d, WaveSine, rate), 100*time.Millisecond, 150*time.Millisecond, rate)
	return beep.Mix(newVolume(hiss, 0.25), newVolume(whistle, 0.15))
}

// Explosion 爆炸：低频闷响叠加快速衰减的噪声
func Explosion(rate beep.SampleRate) beep.Streamer {
	d := 1200 * time.Millisecond
	boom := NewEnvelope(NewOscillator(70, -40, d, WaveSine, rate), 5*time.Millisecond, 200*time.Millisecond, rate)
	blast := NewEnvelope(NewOscillator(1, 0, d, WaveNoise, rate), 2*time.Millisecond, 90*time.Millisecond, rate)
	return beep.Mix(newVolume(boom, 0.8), newVolume(blast, 0.5))
}

// Crackle 噼啪：几段极短的噪声脉冲，中间夹着静音
func Crackle(rate beep.SampleRate) beep.Streamer {
	var parts []beep.Streamer
	for i, gap := range []time.Duration{25, 40, 15, 60, 30} {
		pop := NewEnvelope(NewOscillator(float64(i+2), 0, 12*time.Millisecond, WaveNoise, rate), time.Millisecond, 3*time.Millisecond, rate)
		silence := newVolume(NewOscillator(0, 0, gap*time.Millisecond, WaveSine, rate), 0)
		parts = append(parts, newVolume(pop, 0.4), silence)
	}
	return beep.Seq(parts...)
}

// cues 音效名 → 合成函数
var cues = map[string]func(beep.SampleRate) beep.Streamer{
	"launch":    Launch,
	"explosion": Explosion,
	"crackle":   Crackle,
}

// Streamer 返回指定音效的一个新 streamer
func Streamer(name string, rate beep.SampleRate) (beep.Streamer, error) {
	build, ok := cues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	return build(rate), nil
}

// Synthesize 渲染指定音效
func Synthesize(name string, rate beep.SampleRate) ([]byte, error) {
	s, err := Streamer(name, rate)
	if err != nil {
		return nil, err
	}
	return Render(s)
}

// Render 把 streamer 完整渲染为 16 位小端立体声 PCM，样本被限幅到 [-1, 1]
func Render(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to render sound: %w", err)
	}
	return out, nil
}
