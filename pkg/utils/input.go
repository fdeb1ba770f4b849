package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// JustPressedPointers 返回本帧新按下的所有指针位置（逻辑坐标）
// 每个新触摸点各返回一次；没有触摸时检查鼠标左键。
func JustPressedPointers(dst []image.Point) []image.Point {
	dst = dst[:0]
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, image.Pt(x, y))
	}
	if len(dst) > 0 {
		return dst
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, image.Pt(x, y))
	}
	return dst
}

// IsKeyJustPressed 本帧是否刚按下任意一个给定按键
func IsKeyJustPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
