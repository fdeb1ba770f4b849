package components

import "image/color"

// Light 单帧的径向光晕：白色核心 → 染色中段 → 透明边缘
type Light struct {
	X, Y   float64
	Color  color.Color
	Radius float64
	Alpha  float64 // 0 表示使用默认透明度
}
