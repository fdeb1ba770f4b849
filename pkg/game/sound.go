package game

// SoundCue 合成音效的标识
type SoundCue string

const (
	// SoundLaunch 引信/火箭升空的嘶声
	SoundLaunch SoundCue = "launch"
	// SoundExplosion 爆炸的闷响
	SoundExplosion SoundCue = "explosion"
	// SoundCrackle 连锁火花的噼啪声
	SoundCrackle SoundCue = "crackle"
)

// AllSoundCues 全部音效，AudioManager 启动时预先合成
var AllSoundCues = []SoundCue{SoundLaunch, SoundExplosion, SoundCrackle}

// SoundPlayer 播放音效的能力
// 模拟代码只依赖该接口，测试中可以记录调用而不需要音频设备。
type SoundPlayer interface {
	PlaySound(cue SoundCue) bool
}

// PlaySound 在 player 为 nil 时静默忽略
func PlaySound(player SoundPlayer, cue SoundCue) {
	if player != nil {
		player.PlaySound(cue)
	}
}
