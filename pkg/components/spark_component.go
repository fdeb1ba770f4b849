package components

import "image/color"

// SparkComponent 可连锁的火花
//
// 剩余寿命低于 BaseLife 的一定比例后，每 tick 递减 Chain（不会小于 0），
// Chain 仍为正时放出一组更小更慢的子火花。
type SparkComponent struct {
	X, Y   float64
	VX, VY float64
	AY     float64
	Size   float64
	Fill   color.Color
	Alpha  float64

	Rad    float64 // 发射角
	Direct float64 // 继承的方向偏置
	Chain  int

	Life         float64
	BaseLife     float64
	BaseVelocity float64
}
