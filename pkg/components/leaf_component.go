package components

// LeafComponent 飘落的叶子
type LeafComponent struct {
	X, Y       float64
	VX, VY     float64
	Rate       float64 // 尺寸与速度的缩放
	Theta      float64
	DeltaTheta float64
}
