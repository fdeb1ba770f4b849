package components

import (
	"image/color"

	"github.com/gonewx/fireworks/pkg/utils"
)

// ParticleComponent 单个受重力影响的物理粒子
//
// 剩余寿命不缓存：每次查询都由 systems.RemainingLifetime 根据时钟重新计算。
// Expired 用于强制死亡（火箭引爆后把寿命归零）。
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	Position utils.Vector2 // 像素
	Velocity utils.Vector2 // 像素/秒

	Color  color.Color
	Radius float64 // 满寿命时的半径

	Lifetime  float64 // 总寿命（秒），必须 > 0
	Mass      float64 // 重力乘数；接近 0 的质量用来模拟烟雾
	CreatedOn float64 // 创建时刻（Clock.Elapsed）
	Expired   bool
}
