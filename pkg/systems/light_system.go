package systems

import (
	"image/color"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/render"
)

// LightSystem 单帧光晕：Draw 时逐个弹出并绘制，绘制后即丢弃
type LightSystem struct {
	ctx *ShowContext
}

// NewLightSystem 创建光晕池
func NewLightSystem(ctx *ShowContext) *LightSystem {
	return &LightSystem{ctx: ctx}
}

// Update 光晕没有逐帧状态
func (s *LightSystem) Update(dt float64) {}

// Draw 绘制并清空队列（后进先出）
func (s *LightSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeScreen)
	for len(s.ctx.Lights) > 0 {
		last := len(s.ctx.Lights) - 1
		light := s.ctx.Lights[last]
		s.ctx.Lights = s.ctx.Lights[:last]

		alpha := light.Alpha
		if alpha == 0 {
			alpha = s.ctx.Config.LightAlpha
		}
		surface.SetGlobalAlpha(alpha)
		surface.FillRadialGradient(light.X, light.Y, light.Radius, LightStops(light))
	}
	surface.Restore()
}

// LightStops 白色核心 → 染色 → 透明边缘
func LightStops(light components.Light) []render.ColorStop {
	tint := light.Color
	if tint == nil {
		tint = color.White
	}
	return []render.ColorStop{
		{Offset: 0, Color: color.White},
		{Offset: 0.2, Color: tint},
		{Offset: 0.8, Color: render.Transparent},
		{Offset: 1, Color: render.Transparent},
	}
}

// Count 返回待绘制的光晕数量
func (s *LightSystem) Count() int {
	return len(s.ctx.Lights)
}
