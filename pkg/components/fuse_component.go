package components

import "image/color"

// FuseComponent 上升中的引信（庆典场景）
//
// 所有速度与加速度都以 tick 为单位。
type FuseComponent struct {
	X, Y   float64
	VX, VY float64
	AX     float64
	Size   float64
	Fill   color.Color
	Alpha  float64

	Far   float64 // 到达该高度（y <= Far）即爆炸
	Delay int     // 挂起状态下的剩余 tick 数
	Hold  bool

	Base FuseBase // 发射点快照，爆炸后复位
}

// FuseBase 引信的初始位置与速度
type FuseBase struct {
	X, Y   float64
	VX, VY float64
}
