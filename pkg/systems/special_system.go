package systems

import (
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// SpecialSystem 特殊引信池：到达目标高度后放出一组火花并移除
type SpecialSystem struct {
	em     *ecs.EntityManager
	ctx    *ShowContext
	sparks *SparkSystem
}

// NewSpecialSystem 创建特殊引信池
func NewSpecialSystem(em *ecs.EntityManager, ctx *ShowContext, sparks *SparkSystem) *SpecialSystem {
	return &SpecialSystem{em: em, ctx: ctx, sparks: sparks}
}

// Launch 发射一组特殊引信
func (s *SpecialSystem) Launch() {
	for _, sp := range entities.NewSpecials(s.ctx.Center, s.ctx.Height, s.ctx.Params, s.ctx.Rand) {
		s.Add(sp)
		s.ctx.Play(game.SoundLaunch)
	}
}

// Add 加入一个特殊引信
func (s *SpecialSystem) Add(sp components.SpecialComponent) ecs.EntityID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &sp)
	return id
}

// Update 推进特殊引信
func (s *SpecialSystem) Update(dt float64) {
	ctx := s.ctx
	for _, id := range ecs.GetEntitiesWith1[*components.SpecialComponent](s.em) {
		sp, _ := ecs.GetComponent[*components.SpecialComponent](s.em, id)
		if sp.Y <= sp.Far {
			ctx.Play(game.SoundExplosion)
			ctx.PushLight(components.Light{
				X:      sp.X,
				Y:      sp.Y,
				Color:  sp.Fill,
				Alpha:  ctx.Config.SpecialLightAlpha,
				Radius: ctx.Params.LightRadius,
			})
			if s.sparks != nil {
				s.sparks.Add(entities.MakeSparks(utils.Vec(sp.X, sp.Y), sp.Fill, sp.Direct, ctx.Params, ctx.Rand))
			}
			s.em.DestroyEntity(id)
			continue
		}
		sp.X += sp.VX
		sp.Y += sp.VY
		sp.VX += sp.AX
		sp.Alpha = (sp.Y - sp.Far) / sp.Far
	}
	s.em.RemoveMarkedEntities()
}

// Draw 以方块绘制
func (s *SpecialSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeScreen)
	for _, id := range ecs.GetEntitiesWith1[*components.SpecialComponent](s.em) {
		sp, _ := ecs.GetComponent[*components.SpecialComponent](s.em, id)
		surface.SetGlobalAlpha(sp.Alpha)
		surface.SetFillColor(sp.Fill)
		fillSquare(surface, sp.X, sp.Y, sp.Size)
	}
	surface.Restore()
}

// Count 返回特殊引信数量
func (s *SpecialSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.SpecialComponent](s.em))
}
