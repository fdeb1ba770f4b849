package systems

import (
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// FuseSystem 引信池
//
// 引信上升到 Far 后爆炸：随机选择一种爆点图案、排队一个光晕、回到发射点，
// 然后重新发射；惊喜模式下则挂起，等待 Delay 个 tick 后再发射。
// 引信永不死亡，池的大小在 Spawn 后保持不变。
type FuseSystem struct {
	em       *ecs.EntityManager
	ctx      *ShowContext
	bursts   *BurstSystem
	specials *SpecialSystem
}

// NewFuseSystem 创建引信池
func NewFuseSystem(em *ecs.EntityManager, ctx *ShowContext, bursts *BurstSystem, specials *SpecialSystem) *FuseSystem {
	return &FuseSystem{em: em, ctx: ctx, bursts: bursts, specials: specials}
}

// Spawn 生成 FireNumber 个引信
func (s *FuseSystem) Spawn() {
	for i := 0; i < s.ctx.Params.FireNumber; i++ {
		f := entities.NewFuse(s.ctx.Center, s.ctx.Height, s.ctx.Params, s.ctx.Rand)
		s.Add(f)
		s.ctx.Play(game.SoundLaunch)
	}
}

// Add 加入一个引信
func (s *FuseSystem) Add(f components.FuseComponent) ecs.EntityID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &f)
	return id
}

// Update 推进所有引信
func (s *FuseSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FuseComponent](s.em) {
		f, _ := ecs.GetComponent[*components.FuseComponent](s.em, id)
		if f.Y <= f.Far {
			s.detonate(f)
		}
		s.advance(f)
	}
}

// detonate 爆炸并回到发射点
func (s *FuseSystem) detonate(f *components.FuseComponent) {
	ctx := s.ctx
	ctx.Play(game.SoundExplosion)
	launchSpecials := ctx.RecordDetonation()

	pattern := entities.PickBurstPattern(ctx.Rand)
	result := pattern.Generate(utils.Vec(f.X, f.Y), ctx.Params.Burst(), ctx.Rand)
	if s.bursts != nil {
		s.bursts.Add(result.Particles)
	}
	ctx.PushLight(components.Light{
		X:      f.X,
		Y:      f.Y,
		Color:  result.Color,
		Radius: ctx.Params.LightRadius,
	})

	f.X = f.Base.X
	f.Y = f.Base.Y

	if launchSpecials && s.specials != nil {
		s.specials.Launch()
	}

	if ctx.Surprise {
		f.VX = 0
		f.VY = 0
		f.AX = 0
		f.Hold = true
		ctx.OnHold++
		return
	}
	f.VX = f.Base.VX
	f.VY = f.Base.VY
	f.AX = entities.FuseDrift(ctx.Rand)
	ctx.Play(game.SoundLaunch)
}

// advance 挂起的引信倒计时，其余的上升
func (s *FuseSystem) advance(f *components.FuseComponent) {
	ctx := s.ctx
	switch {
	case f.Hold && f.Delay <= 0:
		ctx.OnHold--
		f.Hold = false
		f.Delay = entities.FuseDelay(ctx.Params, ctx.Rand)
		f.VX = f.Base.VX
		f.VY = f.Base.VY
		f.AX = entities.FuseDrift(ctx.Rand)
		f.Alpha = 1
		ctx.Play(game.SoundLaunch)
	case f.Hold:
		f.Delay--
	default:
		f.X += f.VX
		f.Y += f.VY
		f.VX += f.AX
		f.Alpha = (f.Y - f.Far) / f.Far
	}
}

// Draw 以圆点绘制
func (s *FuseSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeScreen)
	for _, id := range ecs.GetEntitiesWith1[*components.FuseComponent](s.em) {
		f, _ := ecs.GetComponent[*components.FuseComponent](s.em, id)
		surface.SetGlobalAlpha(f.Alpha)
		surface.SetFillColor(f.Fill)
		surface.FillCircle(f.X, f.Y, f.Size)
	}
	surface.Restore()
}

// Count 返回引信数量
func (s *FuseSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.FuseComponent](s.em))
}
