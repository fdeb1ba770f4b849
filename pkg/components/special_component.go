package components

import "image/color"

// SpecialComponent 低频的特殊引信，到达目标高度后放出一组火花并移除
type SpecialComponent struct {
	X, Y   float64
	VX, VY float64
	AX     float64
	Size   float64
	Fill   color.Color
	Alpha  float64
	Far    float64
	Direct float64 // 火花的方向偏置（弧度）
}
