package systems

import (
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
)

// GlyphSystem 文字粒子池
//
// Update 先检查惊喜模式是否攒够了挂起的引信，满足时在 TextDelay 秒后
// 开始逐字生成（每个字符间隔 TextStep 秒），然后推进已有的文字粒子。
type GlyphSystem struct {
	em   *ecs.EntityManager
	ctx  *ShowContext
	text []rune
}

// NewGlyphSystem 创建文字粒子池
func NewGlyphSystem(em *ecs.EntityManager, ctx *ShowContext) *GlyphSystem {
	return &GlyphSystem{em: em, ctx: ctx, text: []rune(ctx.Config.Text)}
}

// Update 推进文字粒子
func (s *GlyphSystem) Update(dt float64) {
	if s.ctx.surpriseReady() {
		log.Printf("[GlyphSystem] %d fuses on hold, text in %.1fs", s.ctx.OnHold, s.ctx.Config.TextDelay)
		s.ctx.scheduleText(s.ctx.Config.TextDelay, s.EmitNext)
	}

	cfg := s.ctx.Config
	for _, id := range ecs.GetEntitiesWith1[*components.GlyphComponent](s.em) {
		g, _ := ecs.GetComponent[*components.GlyphComponent](s.em, id)
		g.Direct *= cfg.Friction
		if tickDecay(&g.DecayBody, cfg.Friction, cfg.AlphaClamp, g.Direct) == Dead {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// EmitNext 生成当前字符的粒子，并安排下一个字符
// 无法生成的字符被跳过，不会中断序列。
func (s *GlyphSystem) EmitNext() {
	ctx := s.ctx
	if len(s.text) == 0 {
		return
	}
	if ctx.TextIndex >= len(s.text) {
		ctx.TextIndex = 0
	}

	ch := s.text[ctx.TextIndex]
	burst, err := entities.MakeGlyph(ch, ctx.TextIndex, ctx.Glyphs, ctx.Center, ctx.Params, ctx.Rand)
	if err != nil {
		log.Printf("[GlyphSystem] Warning: skipping character %q: %v", ch, err)
	} else {
		for i := range burst.Particles {
			g := burst.Particles[i]
			id := s.em.CreateEntity()
			s.em.AddComponent(id, &g)
		}
		ctx.PushLight(burst.Light)
		ctx.Play(game.SoundExplosion)
	}

	ctx.TextIndex++
	if ctx.TextIndex < len(s.text) {
		ctx.scheduleText(ctx.Config.TextStep, s.EmitNext)
	} else {
		ctx.TextIndex = 0
	}
}

// Draw 以方块绘制
func (s *GlyphSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeScreen)
	for _, id := range ecs.GetEntitiesWith1[*components.GlyphComponent](s.em) {
		g, _ := ecs.GetComponent[*components.GlyphComponent](s.em, id)
		surface.SetGlobalAlpha(g.Alpha)
		surface.SetFillColor(g.Fill)
		fillSquare(surface, g.X, g.Y, g.Size)
	}
	surface.Restore()
}

// Count 返回池中文字粒子数量
func (s *GlyphSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.GlyphComponent](s.em))
}
