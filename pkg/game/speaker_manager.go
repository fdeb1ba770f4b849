package game

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	synth "github.com/gonewx/fireworks/internal/audio"
)

// SpeakerManager 直接通过 beep/speaker 播放音效
//
// 终端版没有 ebiten 音频上下文，音效在播放时即时合成并加入混音器。
// 开关与音量同样来自 SettingsManager。
type SpeakerManager struct {
	mu              sync.Mutex
	rate            beep.SampleRate
	mixer           *beep.Mixer
	settingsManager *SettingsManager
	initialized     bool
}

// NewSpeakerManager 创建管理器；调用 Initialize 之前所有播放都是 no-op
func NewSpeakerManager(sm *SettingsManager) *SpeakerManager {
	return &SpeakerManager{
		rate:            synth.SampleRate,
		mixer:           &beep.Mixer{},
		settingsManager: sm,
	}
}

// Initialize 打开音频设备并开始播放混音器
func (m *SpeakerManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	log.Printf("[SpeakerManager] Speaker initialized at %d Hz", m.rate)
	return nil
}

// PlaySound 实现 SoundPlayer
func (m *SpeakerManager) PlaySound(cue SoundCue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || !m.soundEnabled() {
		return false
	}
	s, err := m.streamer(cue)
	if err != nil {
		log.Printf("[SpeakerManager] Warning: %v", err)
		return false
	}

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return true
}

// streamer 合成音效并按设置音量缩放
func (m *SpeakerManager) streamer(cue SoundCue) (beep.Streamer, error) {
	s, err := synth.Streamer(string(cue), m.rate)
	if err != nil {
		return nil, err
	}
	volume := DefaultSettings().SoundVolume
	if m.settingsManager != nil {
		volume = m.settingsManager.GetSettings().SoundVolume
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-3)),
		Silent:   volume <= 0,
	}, nil
}

func (m *SpeakerManager) soundEnabled() bool {
	return m.settingsManager == nil || m.settingsManager.GetSettings().SoundEnabled
}

// ToggleSound 切换音效开关，返回切换后的状态
func (m *SpeakerManager) ToggleSound() bool {
	if m.settingsManager == nil {
		return true
	}
	enabled := !m.settingsManager.GetSettings().SoundEnabled
	m.settingsManager.SetSoundEnabled(enabled)
	if !enabled {
		m.mu.Lock()
		if m.initialized {
			speaker.Lock()
			m.mixer.Clear()
			speaker.Unlock()
		}
		m.mu.Unlock()
	}
	return enabled
}

// Close 停止所有声音并关闭设备
func (m *SpeakerManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}
