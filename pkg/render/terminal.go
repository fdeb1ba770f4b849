package render

import (
	"github.com/gdamore/tcell/v2"
)

// halfBlock 上半格字符：前景色为上方像素，背景色为下方像素
const halfBlock = '▀'

// TerminalSurface 在终端上显示的 Surface
//
// 内部是一张 Raster，像素网格为 列数 x (行数*2)，每个字符格显示上下两个像素。
type TerminalSurface struct {
	*Raster
	screen tcell.Screen
}

// NewTerminalSurface 为 screen 创建表面，逻辑尺寸为 width x height
func NewTerminalSurface(screen tcell.Screen, width, height int) *TerminalSurface {
	cols, rows := screen.Size()
	return &TerminalSurface{
		Raster: NewRaster(width, height, terminalScale(width, height, cols, rows)),
		screen: screen,
	}
}

// terminalScale 选择能把逻辑尺寸完整放入字符网格的缩放
func terminalScale(width, height, cols, rows int) float64 {
	if width <= 0 || height <= 0 || cols <= 0 || rows <= 0 {
		return 1
	}
	sx := float64(cols) / float64(width)
	sy := float64(rows*2) / float64(height)
	return min(sx, sy)
}

// CellToLogical 把字符格坐标换算为逻辑坐标（格子中心）
func (t *TerminalSurface) CellToLogical(col, row int) (x, y float64) {
	return (float64(col) + 0.5) / t.scale, (float64(row)*2 + 1) / t.scale
}

// Present 把像素缓冲区写入终端并刷新
func (t *TerminalSurface) Present() {
	pw, ph := t.PixelSize()
	cols, rows := t.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if col >= pw || row*2 >= ph {
				t.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			top := t.Pixel(col, row*2)
			bottom := t.Pixel(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(cellColor(top.R, top.G, top.B, top.A)).
				Background(cellColor(bottom.R, bottom.G, bottom.B, bottom.A))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// cellColor 终端没有透明度，按 alpha 压暗到黑色背景上
func cellColor(r, g, b, a uint8) tcell.Color {
	k := int32(a)
	return tcell.NewRGBColor(int32(r)*k/255, int32(g)*k/255, int32(b)*k/255)
}
