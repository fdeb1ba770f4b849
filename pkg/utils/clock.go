package utils

import "time"

// Clock 帧时间追踪器
//
// 每帧更新一次，所有粒子池在同一帧内共享只读的 Delta/Elapsed。
// 支持两种驱动方式：
//   - Advance(dt): 固定步长（ebiten 的 Update 每 tick 调用一次）
//   - Update(now): 墙钟驱动（终端模式按真实时间推进）
type Clock struct {
	Delta   float64 // 上一帧到本帧经过的秒数
	Elapsed float64 // 从启动到本帧经过的秒数

	start    time.Time
	previous time.Time
}

// NewClock 创建一个从 0 开始计时的时钟
func NewClock() *Clock {
	return &Clock{}
}

// Advance 以固定步长推进时钟
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.Delta = dt
	c.Elapsed += dt
}

// Update 使用墙钟时间推进时钟
// 第一次调用只记录起点，Delta 为 0
func (c *Clock) Update(now time.Time) {
	if c.start.IsZero() {
		c.start = now
		c.previous = now
		c.Delta = 0
		c.Elapsed = 0
		return
	}

	delta := now.Sub(c.previous).Seconds()
	if delta < 0 {
		delta = 0
	}
	c.Delta = delta
	c.Elapsed = now.Sub(c.start).Seconds()
	c.previous = now
}

// Now 返回当前帧的单调时间（秒）
func (c *Clock) Now() float64 {
	return c.Elapsed
}
