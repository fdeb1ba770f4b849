package render

import "math"

// Affine 2x3 仿射矩阵，语义与 canvas 一致：
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// Translate/Rotate/Scale 都是右乘（先作用于局部坐标），
// 与 ctx.translate/rotate/scale 的叠加顺序相同。
type Affine struct {
	A, B, C, D, E, F float64
}

// IdentityAffine 返回单位矩阵
func IdentityAffine() Affine {
	return Affine{A: 1, D: 1}
}

// Translate 右乘平移
func (m Affine) Translate(tx, ty float64) Affine {
	m.E += m.A*tx + m.C*ty
	m.F += m.B*tx + m.D*ty
	return m
}

// Rotate 右乘旋转（弧度）
func (m Affine) Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	a, b, c, d := m.A, m.B, m.C, m.D
	m.A = a*cos + c*sin
	m.B = b*cos + d*sin
	m.C = -a*sin + c*cos
	m.D = -b*sin + d*cos
	return m
}

// Scale 右乘缩放
func (m Affine) Scale(sx, sy float64) Affine {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// Apply 变换一个点
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Inverse 返回逆矩阵；矩阵奇异时 ok 为 false
func (m Affine) Inverse() (inv Affine, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 || math.IsNaN(det) {
		return Affine{}, false
	}
	inv.A = m.D / det
	inv.B = -m.B / det
	inv.C = -m.C / det
	inv.D = m.A / det
	inv.E = -(inv.A*m.E + inv.C*m.F)
	inv.F = -(inv.B*m.E + inv.D*m.F)
	return inv, true
}

// ScaleFactor 返回平均缩放系数，用于线宽等各向同性量
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}
