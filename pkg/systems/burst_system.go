package systems

import (
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/render"
)

// BurstSystem 爆点粒子池
type BurstSystem struct {
	em  *ecs.EntityManager
	ctx *ShowContext
}

// NewBurstSystem 创建爆点粒子池
func NewBurstSystem(em *ecs.EntityManager, ctx *ShowContext) *BurstSystem {
	return &BurstSystem{em: em, ctx: ctx}
}

// Add 把图案生成的粒子加入池中
func (s *BurstSystem) Add(particles []components.BurstComponent) {
	for i := range particles {
		b := particles[i]
		id := s.em.CreateEntity()
		s.em.AddComponent(id, &b)
	}
}

// Update 推进所有爆点粒子，寿命耗尽的被移除
func (s *BurstSystem) Update(dt float64) {
	cfg := s.ctx.Config
	for _, id := range ecs.GetEntitiesWith1[*components.BurstComponent](s.em) {
		b, _ := ecs.GetComponent[*components.BurstComponent](s.em, id)
		if tickDecay(&b.DecayBody, cfg.Friction, cfg.AlphaClamp, 0) == Dead {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// Draw 以圆点绘制
func (s *BurstSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeScreen)
	for _, id := range ecs.GetEntitiesWith1[*components.BurstComponent](s.em) {
		b, _ := ecs.GetComponent[*components.BurstComponent](s.em, id)
		surface.SetGlobalAlpha(b.Alpha)
		surface.SetFillColor(b.Fill)
		surface.FillCircle(b.X, b.Y, b.Size)
	}
	surface.Restore()
}

// Count 返回池中粒子数量
func (s *BurstSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.BurstComponent](s.em))
}
