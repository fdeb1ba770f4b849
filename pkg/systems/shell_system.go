package systems

import (
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ShellSystem 夜景烟花池：上升 → 停顿 → 绽放淡出
type ShellSystem struct {
	em  *ecs.EntityManager
	cfg *config.ShellConfig
	rnd utils.Rand
}

// NewShellSystem 创建夜景烟花池
func NewShellSystem(em *ecs.EntityManager, cfg *config.ShellConfig, rnd utils.Rand) *ShellSystem {
	return &ShellSystem{em: em, cfg: cfg, rnd: rnd}
}

// Spawn 在视口内生成一枚新烟花
func (s *ShellSystem) Spawn(width, height float64) ecs.EntityID {
	return s.Add(entities.NewShell(s.cfg, width, height, s.rnd))
}

// Add 加入一枚烟花
func (s *ShellSystem) Add(shell components.ShellComponent) ecs.EntityID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &shell)
	return id
}

// ShellOpacity 只有绽放阶段才有亮度，其余阶段为 0
func ShellOpacity(shell *components.ShellComponent) float64 {
	if shell.State == components.ShellBurst {
		return shell.Opacity
	}
	return 0
}

// MaxOpacity 当前所有烟花中最大的绽放亮度，用于提亮天空
func (s *ShellSystem) MaxOpacity() float64 {
	max := 0.0
	for _, id := range ecs.GetEntitiesWith1[*components.ShellComponent](s.em) {
		shell, _ := ecs.GetComponent[*components.ShellComponent](s.em, id)
		max = math.Max(max, ShellOpacity(shell))
	}
	return max
}

// Update 推进所有烟花，绽放结束的被移除
func (s *ShellSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ShellComponent](s.em) {
		shell, _ := ecs.GetComponent[*components.ShellComponent](s.em, id)
		if TickShell(shell, s.cfg) == Dead {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// TickShell 推进一枚烟花一帧
func TickShell(shell *components.ShellComponent, cfg *config.ShellConfig) Liveness {
	switch shell.State {
	case components.ShellAscend:
		shell.Alpha = ascendAlpha(shell, cfg.Threshold)
		shell.Y0 += shell.Velocity
		// 视口很高时弹体可能在到达绽放点前就停止上升，此时原地绽放
		if shell.Y0 <= shell.Y || shell.Velocity >= 0 {
			shell.State = components.ShellWait
		}
		shell.Theta = math.Mod(shell.Theta+cfg.DeltaTheta, math.Pi*2)
		shell.Velocity += cfg.Gravity
	case components.ShellWait:
		shell.WaitCount--
		if shell.WaitCount <= 0 {
			shell.State = components.ShellBurst
		}
	case components.ShellBurst:
		for i := range shell.Particles {
			p := &shell.Particles[i]
			p.X += p.VX
			p.Y += p.VY
			p.VY += cfg.ParticleGravity
			p.VX *= cfg.ParticleFriction
			p.VY *= cfg.ParticleFriction
		}
		shell.Opacity -= cfg.DeltaOpacity
		if shell.Opacity <= 0 {
			return Dead
		}
	}
	return Alive
}

// ascendAlpha 离发射点 threshold 以内线性淡入
func ascendAlpha(shell *components.ShellComponent, threshold float64) float64 {
	risen := shell.LaunchY - shell.Y0
	if risen <= 0 {
		return 0
	}
	if risen <= threshold {
		return risen / threshold
	}
	return 1
}

// Draw 上升阶段画一个被拉长的光点，绽放阶段画全部粒子
func (s *ShellSystem) Draw(surface render.Surface) {
	for _, id := range ecs.GetEntitiesWith1[*components.ShellComponent](s.em) {
		shell, _ := ecs.GetComponent[*components.ShellComponent](s.em, id)
		s.drawShell(surface, shell)
	}
}

func (s *ShellSystem) drawShell(surface render.Surface, shell *components.ShellComponent) {
	switch shell.State {
	case components.ShellAscend:
		surface.Save()
		surface.SetCompositeMode(render.CompositeLighter)
		surface.SetGlobalAlpha(ascendAlpha(shell, s.cfg.Threshold))
		surface.SetFillColor(shell.Color)
		surface.Translate(shell.X0+math.Sin(shell.Theta)/2, shell.Y0)
		surface.Scale(0.8, 2.4)
		surface.FillCircle(0, 0, s.cfg.Radius)
		surface.Restore()
	case components.ShellBurst:
		surface.Save()
		surface.SetCompositeMode(render.CompositeLighter)
		surface.SetGlobalAlpha(shell.Opacity)
		surface.SetFillColor(shell.Color)
		for _, p := range shell.Particles {
			surface.FillCircle(p.X, p.Y, s.cfg.ParticleRadius)
		}
		surface.Restore()
	}
}

// Count 返回烟花数量
func (s *ShellSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ShellComponent](s.em))
}
