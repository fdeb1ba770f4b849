package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTerminalScale(t *testing.T) {
	tests := []struct {
		name                      string
		width, height, cols, rows int
		want                      float64
	}{
		{"宽度受限", 200, 100, 50, 100, 0.25},
		{"高度受限", 100, 200, 100, 25, 0.25},
		{"无效尺寸", 0, 100, 50, 50, 1},
		{"终端尚未就绪", 100, 100, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := terminalScale(tt.width, tt.height, tt.cols, tt.rows); got != tt.want {
				t.Errorf("terminalScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func TestTerminalSurfacePresent(t *testing.T) {
	screen := newSimScreen(t, 40, 20)
	surface := NewTerminalSurface(screen, 80, 80)

	if pw, ph := surface.PixelSize(); pw != 40 || ph != 40 {
		t.Fatalf("PixelSize = %dx%d, want 40x40", pw, ph)
	}

	surface.SetFillColor(red)
	surface.FillRect(0, 0, 80, 40)
	surface.Present()

	cells, cols, _ := screen.GetContents()
	top := cells[0]
	if len(top.Runes) == 0 || top.Runes[0] != halfBlock {
		t.Fatalf("cell (0,0) runes = %q, want half block", top.Runes)
	}
	fg, bg, _ := top.Style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("cell (0,0) foreground = (%d,%d,%d), want red", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("cell (0,0) background = (%d,%d,%d), want red", r, g, b)
	}

	// 下半部分没有绘制，按黑色显示
	bottom := cells[15*cols]
	fg, _, _ = bottom.Style.Decompose()
	if r, g, b := fg.RGB(); r != 0 || g != 0 || b != 0 {
		t.Errorf("cell (0,15) foreground = (%d,%d,%d), want black", r, g, b)
	}
}

func TestTerminalSurfaceCellToLogical(t *testing.T) {
	screen := newSimScreen(t, 40, 20)
	surface := NewTerminalSurface(screen, 80, 80)

	x, y := surface.CellToLogical(0, 0)
	if x != 1 || y != 2 {
		t.Errorf("CellToLogical(0, 0) = (%v, %v), want (1, 2)", x, y)
	}
	x, y = surface.CellToLogical(39, 19)
	if x != 79 || y != 78 {
		t.Errorf("CellToLogical(39, 19) = (%v, %v), want (79, 78)", x, y)
	}
}
