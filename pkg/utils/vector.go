// Package utils 提供通用工具函数
package utils

import (
	"fmt"
	"math"
)

// Vector2 是二维向量（值类型，所有运算返回新向量）
type Vector2 struct {
	X, Y float64
}

// Vec 创建一个二维向量
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add 返回 v + other
func (v Vector2) Add(other Vector2) Vector2 {
	v.X += other.X
	v.Y += other.Y
	return v
}

// Sub 返回 v - other
func (v Vector2) Sub(other Vector2) Vector2 {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

// MultiplyScalar 返回 v * s
func (v Vector2) MultiplyScalar(s float64) Vector2 {
	v.X *= s
	v.Y *= s
	return v
}

// Clone 返回向量副本
// Vector2 是值类型，Clone 只是让"复制父实体位置"的意图更明显
func (v Vector2) Clone() Vector2 {
	return v
}

// Length 返回向量长度
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// FromAngle 根据角度和长度构造向量
func FromAngle(angle, length float64) Vector2 {
	return Vector2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

func (v Vector2) String() string {
	return fmt.Sprintf("vec(x=%v, y=%v)", v.X, v.Y)
}
