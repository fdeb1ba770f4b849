package components

// StarComponent 闪烁的星星
//
// Count 倒数到 0 时 Theta 重置为 π，然后逐帧衰减到 0；
// 亮度为 |cos(Theta)|。Phi 是绕视口中心的缓慢旋转角。
type StarComponent struct {
	X, Y     float64
	Radius   float64
	MaxCount int
	Count    int
	Theta    float64
	Phi      float64
}
