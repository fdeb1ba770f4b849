package render

import "math"

// Point 路径上的点
type Point struct {
	X, Y float64
}

// PathWalker 接收变换后的路径命令
//
// golang.org/x/image/vector.Rasterizer 直接满足这个接口；
// ebiten 后端用一个小适配器转发到 vector.Path。
type PathWalker interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubeTo(c1x, c1y, c2x, c2y, x, y float32)
	ClosePath()
}

type segmentKind uint8

const (
	segMoveTo segmentKind = iota
	segLineTo
	segQuadTo
	segCubeTo
	segClose
)

// segment 一条路径命令，控制点在前，终点在最后
type segment struct {
	kind segmentKind
	pts  [3]Point
}

// Path 用户坐标下的路径，曲线保留为贝塞尔命令，由后端在设备坐标下光栅化
type Path struct {
	segs  []segment
	start Point
	open  bool
}

// NewPath 创建空路径
func NewPath() *Path {
	return &Path{}
}

// Reset 清空路径，保留底层存储
func (p *Path) Reset() {
	p.segs = p.segs[:0]
	p.open = false
}

// MoveTo 开始新的子路径
func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMoveTo, pts: [3]Point{{x, y}}})
	p.start = Point{x, y}
	p.open = true
}

// LineTo 添加直线段；没有当前点时等价于 MoveTo
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.segs = append(p.segs, segment{kind: segLineTo, pts: [3]Point{{x, y}}})
}

// QuadTo 添加二次贝塞尔曲线
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.open {
		p.MoveTo(cx, cy)
	}
	p.segs = append(p.segs, segment{kind: segQuadTo, pts: [3]Point{{cx, cy}, {x, y}}})
}

// CubeTo 添加三次贝塞尔曲线
func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	p.segs = append(p.segs, segment{kind: segCubeTo, pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// Arc 添加圆弧（从 start 到 end，正方向为顺时针），与当前点之间以直线相连
//
// 圆弧按不超过 90° 一段转换为三次贝塞尔曲线。
func (p *Path) Arc(x, y, radius, start, end float64) {
	sin0, cos0 := math.Sincos(start)
	p.LineTo(x+radius*cos0, y+radius*sin0)

	sweep := end - start
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := sweep / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)
	a := start
	for i := 0; i < n; i++ {
		sin1, cos1 := math.Sincos(a + step)
		p.CubeTo(
			x+radius*(cos0-k*sin0), y+radius*(sin0+k*cos0),
			x+radius*(cos1+k*sin1), y+radius*(sin1-k*cos1),
			x+radius*cos1, y+radius*sin1,
		)
		a += step
		sin0, cos0 = sin1, cos1
	}
}

// Circle 追加一个完整的圆作为闭合子路径
func (p *Path) Circle(x, y, radius float64) {
	p.MoveTo(x+radius, y)
	p.Arc(x, y, radius, 0, 2*math.Pi)
	p.Close()
}

// Rect 追加一个矩形作为闭合子路径
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Close 闭合当前子路径
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose, pts: [3]Point{p.start}})
	p.open = false
}

// Empty 路径不包含任何点
func (p *Path) Empty() bool {
	return len(p.segs) == 0
}

// Walk 以变换 m 把路径交给 w；closeAll 为 true 时每个未闭合的子路径都会补上 ClosePath（填充用）
func (p *Path) Walk(m Affine, w PathWalker, closeAll bool) {
	open := false
	for _, s := range p.segs {
		switch s.kind {
		case segMoveTo:
			if open && closeAll {
				w.ClosePath()
			}
			x, y := apply32(m, s.pts[0])
			w.MoveTo(x, y)
			open = true
		case segLineTo:
			x, y := apply32(m, s.pts[0])
			w.LineTo(x, y)
		case segQuadTo:
			cx, cy := apply32(m, s.pts[0])
			x, y := apply32(m, s.pts[1])
			w.QuadTo(cx, cy, x, y)
		case segCubeTo:
			c1x, c1y := apply32(m, s.pts[0])
			c2x, c2y := apply32(m, s.pts[1])
			x, y := apply32(m, s.pts[2])
			w.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case segClose:
			w.ClosePath()
			open = false
		}
	}
	if open && closeAll {
		w.ClosePath()
	}
}

// Bounds 返回变换后的包围盒（含控制点，偏大但不会偏小）
func (p *Path) Bounds(m Affine) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range p.segs {
		n := 1
		switch s.kind {
		case segQuadTo:
			n = 2
		case segCubeTo:
			n = 3
		}
		for _, pt := range s.pts[:n] {
			x, y := m.Apply(pt.X, pt.Y)
			minX, minY = math.Min(minX, x), math.Min(minY, y)
			maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
			ok = true
		}
	}
	return
}

// CirclePath 构造一个完整圆的路径
func CirclePath(x, y, radius float64) *Path {
	p := NewPath()
	p.Circle(x, y, radius)
	return p
}

// RectPath 构造矩形路径
func RectPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rect(x, y, w, h)
	return p
}

func apply32(m Affine, pt Point) (float32, float32) {
	x, y := m.Apply(pt.X, pt.Y)
	return float32(x), float32(y)
}
