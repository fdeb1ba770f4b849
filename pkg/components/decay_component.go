package components

import "image/color"

// DecayBody 衰减粒子的公共状态
//
// 每 tick：速度乘以摩擦，移动，vy += AY，alpha = Life/BaseLife，
// 尺寸同比缩小，比例高于阈值时 alpha 固定为 1，Life--，Life <= 0 时移除。
type DecayBody struct {
	X, Y   float64
	VX, VY float64
	AY     float64
	Size   float64
	Fill   color.Color
	Alpha  float64

	Life     float64
	BaseLife float64
	BaseSize float64
}

// BurstComponent 烟花爆点粒子
type BurstComponent struct {
	DecayBody
}

// GlyphComponent 组成文字的粒子
//
// Direct 是朝目标列漂移的水平偏置，每 tick 乘以摩擦衰减。
type GlyphComponent struct {
	DecayBody
	Left   float64 // 目标列的 x 坐标
	Direct float64
}
