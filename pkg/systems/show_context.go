package systems

import (
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ShowContext 庆典场景的共享状态
//
// 所有池的 Update 都通过同一个 ShowContext 读写爆炸计数、挂起数、
// 惊喜模式与文字进度；场景构造时 Init，销毁时 Reset。
type ShowContext struct {
	Config *config.ShowConfig
	Glyphs *config.GlyphConfig
	Params entities.ShowParams

	Rand      utils.Rand
	Scheduler *game.Scheduler
	Sounds    game.SoundPlayer

	Width, Height float64
	Center        utils.Vector2

	Fired     int  // 累计爆炸次数
	OnHold    int  // 当前挂起的引信数
	Surprise  bool // 惊喜模式：新爆炸的引信被挂起
	TextIndex int  // 下一个要生成的字符
	textTimer game.TimerID

	Lights []components.Light // 本帧待绘制的光晕
}

// NewShowContext 创建并初始化共享状态
func NewShowContext(cfg *config.FireworksConfig, rnd utils.Rand, scheduler *game.Scheduler, sounds game.SoundPlayer, width, height float64) (*ShowContext, error) {
	params, err := entities.NewShowParams(&cfg.Show)
	if err != nil {
		return nil, err
	}
	ctx := &ShowContext{
		Config:    &cfg.Show,
		Glyphs:    &cfg.Glyphs,
		Params:    params,
		Rand:      rnd,
		Scheduler: scheduler,
		Sounds:    sounds,
	}
	ctx.Init(width, height)
	return ctx, nil
}

// Init 设置视口并清空计数
func (c *ShowContext) Init(width, height float64) {
	c.Resize(width, height)
	c.Fired = 0
	c.OnHold = 0
	c.Surprise = false
	c.TextIndex = 0
	c.textTimer = 0
	c.Lights = c.Lights[:0]
}

// Reset 场景销毁时取消文字序列并清空状态
func (c *ShowContext) Reset() {
	if c.textTimer != 0 && c.Scheduler != nil {
		c.Scheduler.Cancel(c.textTimer)
	}
	c.Init(c.Width, c.Height)
}

// Resize 更新视口；只影响之后生成的实体
func (c *ShowContext) Resize(width, height float64) {
	c.Width = width
	c.Height = height
	c.Center = utils.Vec(width/2, height/2)
}

// PushLight 排队一个单帧光晕
func (c *ShowContext) PushLight(light components.Light) {
	c.Lights = append(c.Lights, light)
}

// Play 播放音效（没有播放器时忽略）
func (c *ShowContext) Play(cue game.SoundCue) {
	game.PlaySound(c.Sounds, cue)
}

// RecordDetonation 记录一次引信爆炸，返回是否需要发射特殊引信
func (c *ShowContext) RecordDetonation() (launchSpecials bool) {
	c.Fired++
	if c.Fired%c.Config.SurpriseEvery == 0 && !c.Surprise {
		c.Surprise = true
		log.Printf("[ShowContext] Surprise mode after %d detonations", c.Fired)
	}
	return c.Fired%c.Config.SparkEvery == 0
}

// surpriseReady 挂起的引信达到阈值时退出惊喜模式
func (c *ShowContext) surpriseReady() bool {
	if !c.Surprise || c.OnHold != c.Config.SurpriseHoldCount {
		return false
	}
	c.Surprise = false
	return true
}

// scheduleText 延迟后逐字生成文字
func (c *ShowContext) scheduleText(delay float64, emit func()) {
	if c.Scheduler == nil {
		emit()
		return
	}
	c.textTimer = c.Scheduler.After(delay, func() {
		c.textTimer = 0
		emit()
	})
}
