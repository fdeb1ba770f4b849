package components

// TwigComponent 角落里递归生长的树枝，永不死亡
type TwigComponent struct {
	X, Y  float64
	Angle float64 // 主干方向
	Theta float64 // 摇摆相位
	Rate  float64 // 按视口大小缩放
}
