package systems

import (
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
)

// SparkSystem 火花池（包括连锁火花）
type SparkSystem struct {
	em  *ecs.EntityManager
	ctx *ShowContext
}

// NewSparkSystem 创建火花池
func NewSparkSystem(em *ecs.EntityManager, ctx *ShowContext) *SparkSystem {
	return &SparkSystem{em: em, ctx: ctx}
}

// Add 加入一组火花
func (s *SparkSystem) Add(sparks []components.SparkComponent) {
	for i := range sparks {
		sp := sparks[i]
		id := s.em.CreateEntity()
		s.em.AddComponent(id, &sp)
	}
}

// Update 推进火花；本 tick 新生成的连锁火花从下一 tick 开始推进
func (s *SparkSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkComponent](s.em) {
		sp, _ := ecs.GetComponent[*components.SparkComponent](s.em, id)
		if s.tick(sp) == Dead {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// tick 推进一个火花
//
// 剩余寿命低于 BaseLife×ChainThreshold 后每 tick 递减 Chain（不小于 0），
// Chain 仍为正时放出一组子火花。
func (s *SparkSystem) tick(sp *components.SparkComponent) Liveness {
	cfg := s.ctx.Config
	sp.VX *= cfg.Friction
	sp.VY *= cfg.Friction
	sp.X += sp.VX
	sp.Y += sp.VY
	sp.VY += sp.AY
	sp.Alpha = sp.Life/sp.BaseLife + 0.2
	sp.Life--

	if sp.Life < sp.BaseLife*cfg.ChainThreshold && sp.Life > 0 {
		if sp.Chain > 0 {
			sp.Chain--
		}
		if children := entities.ChainSparks(sp, s.ctx.Rand); len(children) > 0 {
			s.Add(children)
		}
		if sp.Chain > 1 && s.ctx.Rand.Float64() > 0.9 {
			s.ctx.Play(game.SoundCrackle)
		}
	}

	if sp.Life <= 0 {
		return Dead
	}
	return Alive
}

// Draw 以方块绘制
func (s *SparkSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeScreen)
	for _, id := range ecs.GetEntitiesWith1[*components.SparkComponent](s.em) {
		sp, _ := ecs.GetComponent[*components.SparkComponent](s.em, id)
		surface.SetGlobalAlpha(sp.Alpha)
		surface.SetFillColor(sp.Fill)
		fillSquare(surface, sp.X, sp.Y, sp.Size)
	}
	surface.Restore()
}

// Count 返回火花数量
func (s *SparkSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.SparkComponent](s.em))
}
