package game

import (
	"log"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"

	synth "github.com/gonewx/fireworks/internal/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 启动时合成全部音效（internal/audio），之后按 SoundCue 播放
//   - 与设置联动：音效开关与音量来自 SettingsManager
//   - 实现 SoundPlayer，模拟代码只通过该接口播放
//
// 没有音频上下文（终端模式、测试）时所有播放都是静默的 no-op。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	pcm             map[SoundCue][]byte
	soundPlayers    map[SoundCue]*audio.Player
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: SettingsManager 实例，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcm:             make(map[SoundCue][]byte),
		soundPlayers:    make(map[SoundCue]*audio.Player),
	}
	rate := synth.SampleRate
	if ctx != nil {
		rate = beep.SampleRate(ctx.SampleRate())
	}
	for _, cue := range AllSoundCues {
		data, err := synth.Synthesize(string(cue), rate)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to synthesize %s: %v", cue, err)
			continue
		}
		am.pcm[cue] = data
	}
	log.Printf("[AudioManager] Synthesized %d sounds", len(am.pcm))
	return am
}

// PlaySound 播放音效，单次播放
//
// 返回：
//   - bool: 是否成功播放（音效被禁用或没有音频上下文时返回 false）
func (am *AudioManager) PlaySound(cue SoundCue) bool {
	if !am.SoundEnabled() {
		return false
	}
	player := am.getSoundPlayer(cue)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", cue, err)
	}
	player.Play()
	return true
}

// SoundEnabled 当前是否允许播放音效
func (am *AudioManager) SoundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// ToggleSound 切换音效开关并保存设置，返回切换后的状态
func (am *AudioManager) ToggleSound() bool {
	if am.settingsManager == nil {
		return true
	}
	enabled := !am.settingsManager.GetSettings().SoundEnabled
	am.settingsManager.SetSoundEnabled(enabled)
	if !enabled {
		for _, player := range am.soundPlayers {
			player.Pause()
		}
	}
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to save settings: %v", err)
	}
	log.Printf("[AudioManager] Sound enabled: %v", enabled)
	return enabled
}

// SetSoundVolume 设置音效音量，影响之后播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// PCM 返回合成好的音效数据（16 位小端立体声）
func (am *AudioManager) PCM(cue SoundCue) []byte {
	return am.pcm[cue]
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(cue SoundCue) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.soundPlayers[cue]; exists {
		return player
	}
	data, ok := am.pcm[cue]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", cue)
		return nil
	}
	player := am.context.NewPlayerFromBytes(data)
	am.soundPlayers[cue] = player
	return player
}

// PreloadSounds 预先创建全部播放器，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() {
	for _, cue := range AllSoundCues {
		am.getSoundPlayer(cue)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}
