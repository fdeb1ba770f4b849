// Package render 定义所有粒子池共享的绘制能力（Surface），以及它的几种实现：
//
//   - EbitenSurface: 绘制到 *ebiten.Image（桌面/移动端）
//   - Raster: 纯软件 RGBA 缓冲区（测试与终端模式）
//   - TerminalSurface: Raster + tcell，按半格字符输出到终端
//
// 接口刻意保持很小：圆、矩形、路径、径向渐变、全局透明度、合成模式和仿射变换栈。
package render

import "image/color"

// CompositeMode 合成模式
type CompositeMode int

const (
	// CompositeSourceOver 普通覆盖
	CompositeSourceOver CompositeMode = iota
	// CompositeLighter 加法混合，重叠处变亮（canvas 的 "lighter"）
	CompositeLighter
	// CompositeScreen 滤色混合（canvas 的 "screen"）
	CompositeScreen
)

func (m CompositeMode) String() string {
	switch m {
	case CompositeLighter:
		return "lighter"
	case CompositeScreen:
		return "screen"
	default:
		return "source-over"
	}
}

// ColorStop 径向渐变的色标
type ColorStop struct {
	Offset float64 // 0 = 圆心, 1 = 边缘
	Color  color.Color
}

// Surface 绘制能力
//
// 坐标均为当前变换下的用户坐标。Save/Restore 保存和恢复变换、透明度、
// 合成模式与填充颜色。
type Surface interface {
	// Size 返回逻辑尺寸（像素）
	Size() (width, height int)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)
	Scale(sx, sy float64)

	SetGlobalAlpha(alpha float64)
	SetCompositeMode(mode CompositeMode)
	SetFillColor(c color.Color)

	FillCircle(x, y, radius float64)
	FillRect(x, y, width, height float64)
	FillPath(path *Path)
	StrokePath(path *Path, lineWidth float64)

	// FillRadialGradient 以 (x, y) 为圆心、radius 为半径绘制径向渐变圆盘
	FillRadialGradient(x, y, radius float64, stops []ColorStop)

	// ClearRect 将区域清为完全透明（忽略合成模式与透明度）
	ClearRect(x, y, width, height float64)

	// NewLayer 创建与当前后端相同类型的离屏图层
	NewLayer(width, height int) Surface
	// DrawLayer 以当前透明度与合成模式将图层绘制到本表面左上角
	DrawLayer(layer Surface)
}

// GradientColorAt 计算径向渐变在 t ∈ [0,1] 处的颜色（非预乘 RGBA，0-1）
func GradientColorAt(stops []ColorStop, t float64) (r, g, b, a float64) {
	if len(stops) == 0 {
		return 0, 0, 0, 0
	}
	if t <= stops[0].Offset {
		return nrgbaFloat(stops[0].Color)
	}
	for i := 0; i < len(stops)-1; i++ {
		lhs, rhs := stops[i], stops[i+1]
		if t > rhs.Offset {
			continue
		}
		span := rhs.Offset - lhs.Offset
		f := 0.0
		if span > 0 {
			f = (t - lhs.Offset) / span
		}
		r1, g1, b1, a1 := nrgbaFloat(lhs.Color)
		r2, g2, b2, a2 := nrgbaFloat(rhs.Color)
		return r1 + (r2-r1)*f, g1 + (g2-g1)*f, b1 + (b2-b1)*f, a1 + (a2-a1)*f
	}
	return nrgbaFloat(stops[len(stops)-1].Color)
}

// nrgbaFloat 将任意颜色转换为非预乘的 0-1 分量
func nrgbaFloat(c color.Color) (r, g, b, a float64) {
	if c == nil {
		return 0, 0, 0, 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255, float64(n.A) / 255
}
