package entities

import (
	"image/color"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/utils"
)

// BurstParams 爆点图案的输入
type BurstParams struct {
	FireNumber  int     // 扇出基数 N，粒子数都是 N 的倍数
	Range       float64 // 寿命基数
	PlanetColor color.Color
	RingColor   color.Color
}

// BurstResult 爆点图案的输出
// Color 是光晕使用的颜色（多色图案取最后一种）。
type BurstResult struct {
	Particles []components.BurstComponent
	Color     color.Color
}

// BurstPattern 纯函数：给定爆炸点、参数和随机源，生成一组爆点粒子
type BurstPattern func(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult

// NamedBurstPattern 带名字的图案，便于日志与测试
type NamedBurstPattern struct {
	Name     string
	Generate BurstPattern
}

// BurstPatterns 引信爆炸时从中均匀随机选择一种
var BurstPatterns = []NamedBurstPattern{
	{"double-full-circle", MakeDoubleFullCircleBurst},
	{"planet", MakePlanetBurst},
	{"full-circle", MakeFullCircleBurst},
	{"double-circle", MakeDoubleCircleBurst},
	{"heart", MakeHeartBurst},
	{"circle", MakeCircleBurst},
	{"random", MakeRandomBurst},
}

// PickBurstPattern 均匀随机选择一种图案
func PickBurstPattern(rnd utils.Rand) NamedBurstPattern {
	return BurstPatterns[int(rnd.Float64()*float64(len(BurstPatterns)))%len(BurstPatterns)]
}

// RandomColor 随机 RGB 颜色，每个通道 0-255
func RandomColor(rnd utils.Rand) color.NRGBA {
	return color.NRGBA{
		R: uint8(rnd.Float64() * 256),
		G: uint8(rnd.Float64() * 256),
		B: uint8(rnd.Float64() * 256),
		A: 0xff,
	}
}

// 两种寿命：短 = round(rand·range/2) + range/2，长 = round(rand·range/2) + range/1.5
func shortLife(params BurstParams, rnd utils.Rand) float64 {
	return utils.Round(rnd.Float64()*params.Range/2) + params.Range/2
}

func longLife(params BurstParams, rnd utils.Rand) float64 {
	return utils.Round(rnd.Float64()*params.Range/2) + params.Range/1.5
}

func jitter(rnd utils.Rand) float64 {
	return (rnd.Float64() - 0.5) * 0.5
}

func newBurst(origin utils.Vector2, vx, vy, ay float64, fill color.Color, life float64, rnd utils.Rand) components.BurstComponent {
	size := rnd.Float64() + 1.5
	return components.BurstComponent{DecayBody: components.DecayBody{
		X:        origin.X,
		Y:        origin.Y,
		VX:       vx,
		VY:       vy,
		AY:       ay,
		Size:     size,
		Fill:     fill,
		Alpha:    1,
		Life:     life,
		BaseLife: life,
		BaseSize: size,
	}}
}

// appendRing 等角度分布的一圈粒子，速度带少量抖动
func appendRing(out []components.BurstComponent, origin utils.Vector2, count int, velocity, ay float64, fill color.Color, life func() float64, rnd utils.Rand) []components.BurstComponent {
	for i := 0; i < count; i++ {
		rad := float64(i) * math.Pi * 2 / float64(count)
		vx := math.Cos(rad)*velocity + jitter(rnd)
		vy := math.Sin(rad)*velocity + jitter(rnd)
		out = append(out, newBurst(origin, vx, vy, ay, fill, life(), rnd))
	}
	return out
}

// appendScatter 等角度分布但速度随机缩放，填充圆盘内部
func appendScatter(out []components.BurstComponent, origin utils.Vector2, count int, velocity, ay float64, fill color.Color, life func() float64, rnd utils.Rand) []components.BurstComponent {
	for i := 0; i < count; i++ {
		rad := float64(i) * math.Pi * 2 / float64(count)
		vx := math.Cos(rad) * velocity * rnd.Float64()
		vy := math.Sin(rad) * velocity * rnd.Float64()
		out = append(out, newBurst(origin, vx, vy, ay, fill, life(), rnd))
	}
	return out
}

// MakeCircleBurst 单圈：5N 个粒子
func MakeCircleBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	fill := RandomColor(rnd)
	velocity := rnd.Float64()*2 + 6
	n := params.FireNumber * 5
	life := func() float64 { return shortLife(params, rnd) }
	particles := appendRing(make([]components.BurstComponent, 0, n), origin, n, velocity, 0.04, fill, life, rnd)
	return BurstResult{Particles: particles, Color: fill}
}

// MakeDoubleCircleBurst 内外两圈不同颜色：3N + 3N
func MakeDoubleCircleBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	n := params.FireNumber * 3
	life := func() float64 { return longLife(params, rnd) }
	particles := make([]components.BurstComponent, 0, n*2)

	outer := RandomColor(rnd)
	particles = appendRing(particles, origin, n, rnd.Float64()*2+8, 0.04, outer, life, rnd)

	inner := RandomColor(rnd)
	particles = appendRing(particles, origin, n, rnd.Float64()*3+4, 0.04, inner, life, rnd)
	return BurstResult{Particles: particles, Color: inner}
}

// MakePlanetBurst 星球：2N 外圈 + 4N 内核 + 3N 倾斜的椭圆光环
func MakePlanetBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	life := func() float64 { return longLife(params, rnd) }
	n := params.FireNumber
	particles := make([]components.BurstComponent, 0, n*9)

	velocity := rnd.Float64()*2 + 4
	particles = appendRing(particles, origin, n*2, velocity, 0.04, params.PlanetColor, life, rnd)
	particles = appendScatter(particles, origin, n*4, velocity, 0.04, params.PlanetColor, life, rnd)

	rotate := utils.RandomAngle(rnd)
	rx := velocity * (rnd.Float64() + 2)
	ry := velocity * 0.6
	sin, cos := math.Sincos(rotate)
	count := n * 3
	for i := 0; i < count; i++ {
		rad := float64(i) * math.Pi * 2 / float64(count)
		cx := math.Cos(rad)*rx + jitter(rnd)
		cy := math.Sin(rad)*ry + jitter(rnd)
		particles = append(particles, newBurst(origin,
			cx*cos-cy*sin,
			cx*sin+cy*cos,
			0.02, params.RingColor, life(), rnd))
	}
	return BurstResult{Particles: particles, Color: params.PlanetColor}
}

// MakeFullCircleBurst 实心圆：3N 外圈 + N×round(rand·4+4) 内部散点
func MakeFullCircleBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	fill := RandomColor(rnd)
	velocity := rnd.Float64()*8 + 8
	life := func() float64 { return longLife(params, rnd) }
	n := params.FireNumber

	particles := appendRing(nil, origin, n*3, velocity, 0.06, fill, life, rnd)
	inner := n * int(utils.Round(rnd.Float64()*4+4))
	particles = appendScatter(particles, origin, inner, velocity, 0.06, fill, life, rnd)
	return BurstResult{Particles: particles, Color: fill}
}

// MakeDoubleFullCircleBurst 外圈 3N + 第二色 2N 圈 + 4N 实心
func MakeDoubleFullCircleBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	life := func() float64 { return longLife(params, rnd) }
	n := params.FireNumber
	particles := make([]components.BurstComponent, 0, n*9)

	outer := RandomColor(rnd)
	particles = appendRing(particles, origin, n*3, rnd.Float64()*8+8, 0.04, outer, life, rnd)

	inner := RandomColor(rnd)
	velocity := rnd.Float64()*3 + 4
	particles = appendRing(particles, origin, n*2, velocity, 0.06, inner, life, rnd)
	particles = appendScatter(particles, origin, n*4, velocity, 0.06, inner, life, rnd)
	return BurstResult{Particles: particles, Color: inner}
}

// HeartSpeed 心形速度曲线
//
// offset 为相对随机旋转角的发射角（[0, 2π)），四个象限分段线性：
// v→2v、2v→v、v→0、0→v，恰好落在象限边界上时为 v。
func HeartSpeed(offset, velocity float64) float64 {
	quarter := math.Pi * 0.5
	switch {
	case offset < quarter:
		return velocity + velocity*(offset/quarter)
	case offset > quarter && offset < math.Pi:
		return velocity * (2 - (offset-quarter)/quarter)
	case offset > math.Pi && offset < math.Pi*1.5:
		return velocity * (1 - (offset-math.Pi)/quarter)
	case offset > math.Pi*1.5 && offset < math.Pi*2:
		return velocity * ((offset - math.Pi*1.5) / quarter)
	default:
		return velocity
	}
}

// MakeHeartBurst 心形：5N 个粒子，速度随角度分段变化
func MakeHeartBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	fill := RandomColor(rnd)
	velocity := rnd.Float64()*3 + 3
	n := params.FireNumber * 5
	rotate := utils.RandomAngle(rnd)
	particles := make([]components.BurstComponent, 0, n)
	for i := 0; i < n; i++ {
		offset := float64(i) * math.Pi * 2 / float64(n)
		rad := offset + rotate
		v := HeartSpeed(offset, velocity) + (rnd.Float64()-0.5)*0.25
		particles = append(particles, newBurst(origin,
			math.Cos(rad)*v,
			math.Sin(rad)*v,
			0.02, fill, longLife(params, rnd), rnd))
	}
	return BurstResult{Particles: particles, Color: fill}
}

// MakeRandomBurst 完全随机散射：5N 个粒子，整体偏向上方
func MakeRandomBurst(origin utils.Vector2, params BurstParams, rnd utils.Rand) BurstResult {
	fill := RandomColor(rnd)
	n := params.FireNumber * 5
	particles := make([]components.BurstComponent, 0, n)
	for i := 0; i < n; i++ {
		vx := rnd.Float64()*15 - 7.5
		vy := rnd.Float64()*-15 + 5
		particles = append(particles, newBurst(origin, vx, vy, 0.05, fill, shortLife(params, rnd), rnd))
	}
	return BurstResult{Particles: particles, Color: fill}
}
