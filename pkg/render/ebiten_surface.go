package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 渐变环的分段数
const gradientSegments = 48

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whiteTexture 返回 1x1 的白色子图，用作 DrawTriangles 的纹理
// 延迟创建，避免在包初始化时触碰图形驱动
func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// blendScreen 预乘空间的滤色混合：out = src + dst*(1-src)
var blendScreen = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// ebitenBlend 将合成模式映射为 ebiten 混合参数
func ebitenBlend(mode CompositeMode) ebiten.Blend {
	switch mode {
	case CompositeLighter:
		return ebiten.BlendLighter
	case CompositeScreen:
		return blendScreen
	default:
		return ebiten.BlendSourceOver
	}
}

// EbitenSurface 绘制到 *ebiten.Image 的 Surface
//
// 所有变换在 CPU 侧完成，顶点以屏幕坐标提交。
type EbitenSurface struct {
	stateStack

	img      *ebiten.Image
	path     vector.Path
	scratch  Path
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenSurface 包装一张 ebiten 图像
func NewEbitenSurface(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{
		stateStack: newStateStack(IdentityAffine()),
		img:        img,
	}
}

// Reset 切换绘制目标并清空状态栈
func (s *EbitenSurface) Reset(img *ebiten.Image) {
	s.img = img
	s.stateStack = newStateStack(IdentityAffine())
}

// Image 返回底层图像
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Size 实现 Surface
func (s *EbitenSurface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// FillCircle 实现 Surface
func (s *EbitenSurface) FillCircle(x, y, radius float64) {
	if radius <= 0 {
		return
	}
	s.scratch.Reset()
	s.scratch.Circle(x, y, radius)
	s.fill(&s.scratch)
}

// FillRect 实现 Surface
func (s *EbitenSurface) FillRect(x, y, width, height float64) {
	if width == 0 || height == 0 {
		return
	}
	s.scratch.Reset()
	s.scratch.Rect(x, y, width, height)
	s.fill(&s.scratch)
}

// FillPath 实现 Surface
func (s *EbitenSurface) FillPath(path *Path) {
	if path == nil || path.Empty() {
		return
	}
	s.fill(path)
}

// StrokePath 实现 Surface
func (s *EbitenSurface) StrokePath(path *Path, lineWidth float64) {
	if s.img == nil || path == nil || path.Empty() || lineWidth <= 0 {
		return
	}
	s.buildPath(path, false)
	opts := s.drawOptions()
	vector.StrokePath(s.img, &s.path, &vector.StrokeOptions{
		Width:    float32(lineWidth * s.current.transform.ScaleFactor()),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}, opts)
}

// FillRadialGradient 实现 Surface，以同心环网格和逐顶点颜色插值近似渐变
func (s *EbitenSurface) FillRadialGradient(x, y, radius float64, stops []ColorStop) {
	if s.img == nil || radius <= 0 || len(stops) == 0 {
		return
	}
	m := s.current.transform
	alpha := s.current.alpha

	// 环的半径取色标位置（至少包含 0 和 1）
	rings := []float64{0}
	for _, st := range stops {
		if st.Offset > 0 && st.Offset < 1 {
			rings = append(rings, st.Offset)
		}
	}
	rings = append(rings, 1)

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for _, t := range rings {
		cr, cg, cb, ca := GradientColorAt(stops, t)
		for i := 0; i < gradientSegments; i++ {
			theta := 2 * math.Pi * float64(i) / gradientSegments
			px, py := m.Apply(x+radius*t*math.Cos(theta), y+radius*t*math.Sin(theta))
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX: float32(px), DstY: float32(py),
				SrcX: 1, SrcY: 1,
				ColorR: float32(cr), ColorG: float32(cg), ColorB: float32(cb),
				ColorA: float32(ca * alpha),
			})
		}
	}
	for ring := 0; ring+1 < len(rings); ring++ {
		inner := uint16(ring * gradientSegments)
		outer := uint16((ring + 1) * gradientSegments)
		for i := uint16(0); i < gradientSegments; i++ {
			j := (i + 1) % gradientSegments
			s.indices = append(s.indices,
				inner+i, outer+i, outer+j,
				inner+i, outer+j, inner+j,
			)
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.Blend = ebitenBlend(s.current.composite)
	s.img.DrawTriangles(s.vertices, s.indices, whiteTexture(), op)
}

// ClearRect 实现 Surface
func (s *EbitenSurface) ClearRect(x, y, width, height float64) {
	if s.img == nil {
		return
	}
	s.scratch.Reset()
	s.scratch.Rect(x, y, width, height)
	s.buildPath(&s.scratch, true)
	opts := &vector.DrawPathOptions{}
	opts.Blend = ebiten.BlendClear
	vector.FillPath(s.img, &s.path, &vector.FillOptions{}, opts)
}

// NewLayer 实现 Surface
func (s *EbitenSurface) NewLayer(width, height int) Surface {
	return NewEbitenSurface(ebiten.NewImage(max(width, 1), max(height, 1)))
}

// DrawLayer 实现 Surface
func (s *EbitenSurface) DrawLayer(layer Surface) {
	src, ok := layer.(*EbitenSurface)
	if !ok || s.img == nil || src.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(s.current.alpha))
	op.Blend = ebitenBlend(s.current.composite)
	s.img.DrawImage(src.img, op)
}

func (s *EbitenSurface) fill(path *Path) {
	if s.img == nil {
		return
	}
	s.buildPath(path, true)
	vector.FillPath(s.img, &s.path, &vector.FillOptions{FillRule: vector.FillRuleNonZero}, s.drawOptions())
}

// buildPath 把用户坐标路径变换到屏幕坐标，写入复用的 vector.Path
func (s *EbitenSurface) buildPath(path *Path, closeAll bool) {
	s.path.Reset()
	path.Walk(s.current.transform, ebitenPath{&s.path}, closeAll)
}

// ebitenPath 让 vector.Path 满足 PathWalker
type ebitenPath struct {
	p *vector.Path
}

func (w ebitenPath) MoveTo(x, y float32)         { w.p.MoveTo(x, y) }
func (w ebitenPath) LineTo(x, y float32)         { w.p.LineTo(x, y) }
func (w ebitenPath) QuadTo(cx, cy, x, y float32) { w.p.QuadTo(cx, cy, x, y) }
func (w ebitenPath) ClosePath()                  { w.p.Close() }

func (w ebitenPath) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	w.p.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (s *EbitenSurface) drawOptions() *vector.DrawPathOptions {
	cr, cg, cb, ca := nrgbaFloat(s.current.fill)
	a := ca * s.current.alpha
	opts := &vector.DrawPathOptions{}
	opts.AntiAlias = true
	opts.ColorScale.Scale(float32(cr*a), float32(cg*a), float32(cb*a), float32(a))
	opts.Blend = ebitenBlend(s.current.composite)
	return opts
}
