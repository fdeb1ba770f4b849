package systems

import (
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/render"
)

// RemainingLifetime 返回粒子剩余寿命比例 [0, 1]
//
// 每次调用都根据 now 重新计算，不缓存；now 单调不减时结果单调不增。
// 寿命非法（<= 0 或 NaN）或已被强制过期时返回 0。
func RemainingLifetime(p *components.ParticleComponent, now float64) float64 {
	if p.Expired || !(p.Lifetime > 0) {
		return 0
	}
	age := now - p.CreatedOn
	if age < 0 {
		age = 0
	}
	return math.Max(0, p.Lifetime-age) / p.Lifetime
}

// ParticleSystem 粒子的物理积分与绘制
//
// 重力为每秒² 的像素加速度，按质量缩放：质量接近 0 的粒子几乎只受初速度影响，
// 用来模拟被空气拖慢的烟雾。
type ParticleSystem struct {
	Gravity float64
	now     func() float64
}

// NewParticleSystem 创建粒子系统
// now 返回当前帧的时钟读数（通常是 Clock.Now）
func NewParticleSystem(gravity float64, now func() float64) *ParticleSystem {
	return &ParticleSystem{Gravity: gravity, now: now}
}

// Remaining 以当前时钟计算剩余寿命
func (ps *ParticleSystem) Remaining(p *components.ParticleComponent) float64 {
	return RemainingLifetime(p, ps.now())
}

// Integrate 推进一步：velocity += gravity·mass·dt，position += velocity·dt
// 已死亡的粒子不动。
func (ps *ParticleSystem) Integrate(p *components.ParticleComponent, dt float64) {
	if ps.Remaining(p) == 0 {
		return
	}
	p.Velocity.Y += ps.Gravity * p.Mass * dt
	p.Position = p.Position.Add(p.Velocity.MultiplyScalar(dt))
}

// Draw 以加色混合绘制粒子，透明度与半径都随剩余寿命缩小
func (ps *ParticleSystem) Draw(surface render.Surface, p *components.ParticleComponent) {
	remaining := ps.Remaining(p)
	if remaining == 0 || p.Color == nil {
		return
	}
	surface.Save()
	surface.SetCompositeMode(render.CompositeLighter)
	surface.SetGlobalAlpha(remaining)
	surface.SetFillColor(p.Color)
	surface.FillCircle(p.Position.X, p.Position.Y, p.Radius*remaining)
	surface.Restore()
}
