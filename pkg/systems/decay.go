package systems

import (
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/render"
)

// DecayAlpha 衰减粒子的透明度：比例高于 clamp 时保持不透明，之后线性淡出
func DecayAlpha(life, baseLife, clamp float64) float64 {
	ratio := life / baseLife
	if ratio > clamp {
		return 1
	}
	return ratio
}

// tickDecay 爆点与文字粒子共用的衰减步骤
// drift 是额外的水平位移（文字粒子朝目标列的偏置）。
func tickDecay(b *components.DecayBody, friction, clamp, drift float64) Liveness {
	b.VX *= friction
	b.VY *= friction
	b.X += b.VX + drift
	b.Y += b.VY
	b.VY += b.AY

	ratio := b.Life / b.BaseLife
	b.Size = ratio * b.BaseSize
	b.Alpha = DecayAlpha(b.Life, b.BaseLife, clamp)

	b.Life--
	if b.Life <= 0 {
		return Dead
	}
	return Alive
}

// fillSquare 以 (x, y) 为中心绘制边长 2·size 的方块
func fillSquare(surface render.Surface, x, y, size float64) {
	surface.FillRect(x-size, y-size, size*2, size*2)
}
