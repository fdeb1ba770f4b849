package utils

import (
	"math"
	"math/rand/v2"
	"time"
)

// Rand 随机数来源
//
// 所有随机生成函数（爆炸图案、字形粒子等）都显式接收 Rand，
// 测试中可以传入固定种子的实例得到可重复的结果。
type Rand interface {
	Float64() float64
}

// NewRand 创建一个指定种子的随机数生成器
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededRand 创建一个以当前时间为种子的随机数生成器
func NewTimeSeededRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// RandomInRange 返回 [min, max) 内均匀分布的随机值
func RandomInRange(r Rand, min, max float64) float64 {
	return min + (max-min)*r.Float64()
}

// RandomAngle 返回 [0, 2π) 内的随机角度
func RandomAngle(r Rand) float64 {
	return r.Float64() * math.Pi * 2
}

// RandomSigned 返回 [-half, half) 内的随机抖动值
func RandomSigned(r Rand, half float64) float64 {
	return (r.Float64() - 0.5) * 2 * half
}

// Round 与 JavaScript 的 Math.round 一致：.5 向正无穷舍入
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
