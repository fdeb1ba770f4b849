package components

import "image/color"

// ShellState 夜景烟花的阶段
type ShellState int

const (
	ShellAscend ShellState = iota // 上升
	ShellWait                     // 停顿
	ShellBurst                    // 绽放并淡出
)

func (s ShellState) String() string {
	switch s {
	case ShellAscend:
		return "ascend"
	case ShellWait:
		return "wait"
	case ShellBurst:
		return "burst"
	default:
		return "unknown"
	}
}

// ShellComponent 三阶段烟花（夜景场景）
type ShellComponent struct {
	X, Y    float64 // 绽放点
	X0, Y0  float64 // 当前弹体位置
	LaunchY float64 // 发射高度，用于起始淡入
	Color   color.Color

	State     ShellState
	Theta     float64 // 横向摆动相位
	WaitCount float64
	Opacity   float64
	Velocity  float64

	Particles []ShellParticle
	Alpha     float64 // 上升阶段的绘制透明度
}

// ShellParticle 绽放粒子，位置相对 ShellComponent 的绽放点初始化
type ShellParticle struct {
	X, Y   float64
	VX, VY float64
}
