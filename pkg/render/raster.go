package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Raster 纯软件实现的 Surface
//
// 像素以预乘 alpha 的 float32 RGBA 存储。scale 将逻辑坐标映射到像素坐标，
// 终端模式用 scale < 1 把整个场景缩到字符网格上。
// 图形由 x/image/vector 光栅化为覆盖率遮罩，合成（source-over/lighter/screen）在本地完成。
// 小于一个像素的图形不会丢失，而是按面积累加到中心所在像素。
type Raster struct {
	stateStack

	width, height int
	scale         float64
	pw, ph        int
	pix           []float32

	rasterizer *vector.Rasterizer
	mask       *image.Alpha
	scratch    Path
	lines      polylineWalker
}

// NewRaster 创建逻辑尺寸为 width x height 的软件表面
func NewRaster(width, height int, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(float64(width) * scale))
	ph := int(math.Ceil(float64(height) * scale))
	if pw < 0 {
		pw = 0
	}
	if ph < 0 {
		ph = 0
	}
	return &Raster{
		stateStack: newStateStack(IdentityAffine().Scale(scale, scale)),
		width:      width,
		height:     height,
		scale:      scale,
		pw:         pw,
		ph:         ph,
		pix:        make([]float32, pw*ph*4),
	}
}

// Size 实现 Surface
func (r *Raster) Size() (int, int) {
	return r.width, r.height
}

// PixelSize 返回像素缓冲区尺寸
func (r *Raster) PixelSize() (int, int) {
	return r.pw, r.ph
}

// Clear 清空为透明并重置状态栈
func (r *Raster) Clear() {
	for i := range r.pix {
		r.pix[i] = 0
	}
	r.stateStack = newStateStack(IdentityAffine().Scale(r.scale, r.scale))
}

// Pixel 返回像素 (px, py) 的非预乘颜色
func (r *Raster) Pixel(px, py int) color.NRGBA {
	if px < 0 || py < 0 || px >= r.pw || py >= r.ph {
		return color.NRGBA{}
	}
	i := (py*r.pw + px) * 4
	a := float64(r.pix[i+3])
	if a <= 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: to8(float64(r.pix[i]) / a),
		G: to8(float64(r.pix[i+1]) / a),
		B: to8(float64(r.pix[i+2]) / a),
		A: to8(a),
	}
}

// At 返回逻辑坐标 (x, y) 处的颜色
func (r *Raster) At(x, y float64) color.NRGBA {
	return r.Pixel(int(math.Floor(x*r.scale)), int(math.Floor(y*r.scale)))
}

// Image 导出为 *image.NRGBA
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.pw, r.ph))
	for y := 0; y < r.ph; y++ {
		for x := 0; x < r.pw; x++ {
			img.SetNRGBA(x, y, r.Pixel(x, y))
		}
	}
	return img
}

// CoveredPixels 统计 alpha 大于 0 的像素数量
func (r *Raster) CoveredPixels() int {
	n := 0
	for i := 3; i < len(r.pix); i += 4 {
		if r.pix[i] > 0 {
			n++
		}
	}
	return n
}

// FillCircle 实现 Surface
func (r *Raster) FillCircle(x, y, radius float64) {
	if radius <= 0 {
		return
	}
	m := r.current.transform
	r.scratch.Reset()
	r.scratch.Circle(x, y, radius)
	cx, cy := m.Apply(x, y)
	r.fillPath(&r.scratch, math.Pi*radius*radius*math.Abs(m.A*m.D-m.B*m.C), cx, cy)
}

// FillRect 实现 Surface
func (r *Raster) FillRect(x, y, width, height float64) {
	if width == 0 || height == 0 {
		return
	}
	m := r.current.transform
	r.scratch.Reset()
	r.scratch.Rect(x, y, width, height)
	cx, cy := m.Apply(x+width/2, y+height/2)
	r.fillPath(&r.scratch, math.Abs(width*height*(m.A*m.D-m.B*m.C)), cx, cy)
}

// FillPath 实现 Surface（非零环绕规则）
func (r *Raster) FillPath(path *Path) {
	if path == nil || path.Empty() {
		return
	}
	minX, minY, maxX, maxY, ok := path.Bounds(r.current.transform)
	if !ok {
		return
	}
	r.fillPath(path, (maxX-minX)*(maxY-minY)/2, (minX+maxX)/2, (minY+maxY)/2)
}

// StrokePath 实现 Surface，线段两端和拐点用圆头
//
// x/image/vector 只做填充：曲线先展平为折线，每段折线转成一个矩形，
// 每个顶点补一个圆，全部以同一绕向加入光栅器。
func (r *Raster) StrokePath(path *Path, lineWidth float64) {
	if path == nil || path.Empty() || lineWidth <= 0 {
		return
	}
	hw := lineWidth * r.current.transform.ScaleFactor() / 2
	if hw <= 0 {
		return
	}
	r.lines.reset()
	path.Walk(r.current.transform, &r.lines, false)
	if len(r.lines.pts) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	length := 0.0
	for _, line := range r.lines.polylines() {
		for i, p := range line {
			minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
			maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
			if i > 0 {
				length += math.Hypot(p.X-line[i-1].X, p.Y-line[i-1].Y)
			}
		}
	}
	first := r.lines.pts[0]
	r.coverage(minX-hw, minY-hw, maxX+hw, maxY+hw, func(z *vector.Rasterizer, ox, oy float64) {
		for _, line := range r.lines.polylines() {
			for i, p := range line {
				addDisc(z, p.X-ox, p.Y-oy, hw)
				if i > 0 {
					addBar(z, line[i-1].X-ox, line[i-1].Y-oy, p.X-ox, p.Y-oy, hw)
				}
			}
		}
	}, length*2*hw, first.X, first.Y)
}

// FillRadialGradient 实现 Surface
func (r *Raster) FillRadialGradient(x, y, radius float64, stops []ColorStop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	m := r.current.transform
	inv, ok := m.Inverse()
	if !ok {
		return
	}
	cx, cy := m.Apply(x, y)
	rx := radius * math.Hypot(m.A, m.C)
	ry := radius * math.Hypot(m.B, m.D)
	x0, y0, x1, y1 := r.clipBounds(cx-rx, cy-ry, cx+rx, cy+ry)
	alpha := r.current.alpha
	mode := r.current.composite
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			ux, uy := inv.Apply(float64(px)+0.5, float64(py)+0.5)
			t := math.Hypot(ux-x, uy-y) / radius
			if t > 1 {
				continue
			}
			cr, cg, cb, ca := GradientColorAt(stops, t)
			a := ca * alpha
			if a <= 0 {
				continue
			}
			r.blend(px, py, cr*a, cg*a, cb*a, a, mode)
		}
	}
}

// ClearRect 实现 Surface
func (r *Raster) ClearRect(x, y, width, height float64) {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	m := r.current.transform
	inv, ok := m.Inverse()
	if !ok {
		return
	}
	minX, minY, maxX, maxY := transformedBounds(m, x, y, width, height)
	x0, y0, x1, y1 := r.clipBounds(minX, minY, maxX, maxY)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			ux, uy := inv.Apply(float64(px)+0.5, float64(py)+0.5)
			if ux >= x && ux < x+width && uy >= y && uy < y+height {
				i := (py*r.pw + px) * 4
				r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3] = 0, 0, 0, 0
			}
		}
	}
}

// NewLayer 实现 Surface
func (r *Raster) NewLayer(width, height int) Surface {
	return NewRaster(width, height, r.scale)
}

// DrawLayer 实现 Surface；只接受 *Raster 图层，按像素对齐合成
func (r *Raster) DrawLayer(layer Surface) {
	src, ok := layer.(*Raster)
	if !ok || src == r {
		return
	}
	alpha := float32(r.current.alpha)
	mode := r.current.composite
	w := min(r.pw, src.pw)
	h := min(r.ph, src.ph)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			i := (py*src.pw + px) * 4
			sa := src.pix[i+3] * alpha
			if sa <= 0 {
				continue
			}
			r.blend(px, py,
				float64(src.pix[i]*alpha), float64(src.pix[i+1]*alpha), float64(src.pix[i+2]*alpha),
				float64(sa), mode)
		}
	}
}

// fillPath 以非零规则填充 path（用户坐标，经当前变换）
func (r *Raster) fillPath(path *Path, area, cx, cy float64) {
	m := r.current.transform
	minX, minY, maxX, maxY, ok := path.Bounds(m)
	if !ok {
		return
	}
	r.coverage(minX, minY, maxX, maxY, func(z *vector.Rasterizer, ox, oy float64) {
		shifted := m
		shifted.E -= ox
		shifted.F -= oy
		path.Walk(shifted, z, true)
	}, area, cx, cy)
}

// coverage 在像素包围盒内用 vector.Rasterizer 生成抗锯齿覆盖率遮罩，再按当前填充色合成
//
// add 收到的 (ox, oy) 是遮罩原点的像素坐标。整个图形小到遮罩里没有任何覆盖时，
// 按面积点染 (cx, cy) 所在像素，保证远景的小粒子不会消失。
func (r *Raster) coverage(minX, minY, maxX, maxY float64, add func(z *vector.Rasterizer, ox, oy float64), area, cx, cy float64) {
	cr, cg, cb, ca := nrgbaFloat(r.current.fill)
	a := ca * r.current.alpha
	if a <= 0 {
		return
	}
	mode := r.current.composite

	x0, y0, x1, y1 := r.clipBounds(minX, minY, maxX, maxY)
	w, h := x1-x0+1, y1-y0+1
	hit := false
	if w > 0 && h > 0 {
		if r.rasterizer == nil {
			r.rasterizer = vector.NewRasterizer(w, h)
		} else {
			r.rasterizer.Reset(w, h)
		}
		r.rasterizer.DrawOp = draw.Src
		add(r.rasterizer, float64(x0), float64(y0))

		mask := r.maskFor(w, h)
		r.rasterizer.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
		for py := 0; py < h; py++ {
			row := mask.Pix[py*mask.Stride : py*mask.Stride+w]
			for px, m := range row {
				if m == 0 {
					continue
				}
				hit = true
				cov := a * float64(m) / 255
				r.blend(x0+px, y0+py, cr*cov, cg*cov, cb*cov, cov, mode)
			}
		}
	}
	if hit || area <= 0 {
		return
	}
	px, py := int(math.Floor(cx)), int(math.Floor(cy))
	if px < 0 || py < 0 || px >= r.pw || py >= r.ph {
		return
	}
	cov := a * math.Min(area, 1)
	r.blend(px, py, cr*cov, cg*cov, cb*cov, cov, mode)
}

// maskFor 返回复用的 w x h 覆盖率遮罩
func (r *Raster) maskFor(w, h int) *image.Alpha {
	if r.mask == nil || cap(r.mask.Pix) < w*h {
		r.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return r.mask
	}
	r.mask.Pix = r.mask.Pix[:w*h]
	r.mask.Stride = w
	r.mask.Rect = image.Rect(0, 0, w, h)
	return r.mask
}

// blend 以预乘颜色 (sr, sg, sb, sa) 合成到像素
func (r *Raster) blend(px, py int, sr, sg, sb, sa float64, mode CompositeMode) {
	i := (py*r.pw + px) * 4
	dr, dg, db, da := float64(r.pix[i]), float64(r.pix[i+1]), float64(r.pix[i+2]), float64(r.pix[i+3])
	var or, og, ob, oa float64
	switch mode {
	case CompositeLighter:
		or, og, ob, oa = sr+dr, sg+dg, sb+db, sa+da
	case CompositeScreen:
		or, og, ob, oa = sr+dr-sr*dr, sg+dg-sg*dg, sb+db-sb*db, sa+da-sa*da
	default:
		k := 1 - sa
		or, og, ob, oa = sr+dr*k, sg+dg*k, sb+db*k, sa+da*k
	}
	oa = clamp01(oa)
	r.pix[i] = float32(math.Min(or, oa))
	r.pix[i+1] = float32(math.Min(og, oa))
	r.pix[i+2] = float32(math.Min(ob, oa))
	r.pix[i+3] = float32(oa)
}

func (r *Raster) clipBounds(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	x0 = max(0, int(math.Floor(minX)))
	y0 = max(0, int(math.Floor(minY)))
	x1 = min(r.pw-1, int(math.Ceil(maxX)))
	y1 = min(r.ph-1, int(math.Ceil(maxY)))
	return
}

func transformedBounds(m Affine, x, y, w, h float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		px, py := m.Apply(c[0], c[1])
		minX, minY = math.Min(minX, px), math.Min(minY, py)
		maxX, maxY = math.Max(maxX, px), math.Max(maxY, py)
	}
	return
}

// 圆用四段三次贝塞尔近似
const discKappa = 0.5522847498

// addDisc 以顺时针向光栅器加入一个圆
func addDisc(z *vector.Rasterizer, x, y, radius float64) {
	k := radius * discKappa
	f := func(v float64) float32 { return float32(v) }
	z.MoveTo(f(x+radius), f(y))
	z.CubeTo(f(x+radius), f(y+k), f(x+k), f(y+radius), f(x), f(y+radius))
	z.CubeTo(f(x-k), f(y+radius), f(x-radius), f(y+k), f(x-radius), f(y))
	z.CubeTo(f(x-radius), f(y-k), f(x-k), f(y-radius), f(x), f(y-radius))
	z.CubeTo(f(x+k), f(y-radius), f(x+radius), f(y-k), f(x+radius), f(y))
	z.ClosePath()
}

// addBar 加入线段 a→b 两侧各 hw 宽的矩形，绕向与 addDisc 一致
func addBar(z *vector.Rasterizer, ax, ay, bx, by, hw float64) {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(ax-nx), float32(ay-ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(ax+nx), float32(ay+ny))
	z.ClosePath()
}

// 描边时曲线展平的目标段长（像素）
const strokeFlatness = 2.0

// polylineWalker 把路径展平为像素坐标下的折线，供描边使用
type polylineWalker struct {
	pts    []Point
	starts []int // 每条折线在 pts 中的起始下标
}

func (w *polylineWalker) reset() {
	w.pts = w.pts[:0]
	w.starts = w.starts[:0]
}

func (w *polylineWalker) last() Point {
	return w.pts[len(w.pts)-1]
}

func (w *polylineWalker) MoveTo(x, y float32) {
	w.starts = append(w.starts, len(w.pts))
	w.pts = append(w.pts, Point{float64(x), float64(y)})
}

func (w *polylineWalker) LineTo(x, y float32) {
	w.pts = append(w.pts, Point{float64(x), float64(y)})
}

func (w *polylineWalker) QuadTo(cx, cy, x, y float32) {
	p0, c, p1 := w.last(), Point{float64(cx), float64(cy)}, Point{float64(x), float64(y)}
	n := flattenSteps(p0, c, p1)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		w.pts = append(w.pts, Point{
			mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
			mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
		})
	}
}

func (w *polylineWalker) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	p0 := w.last()
	c1, c2, p1 := Point{float64(c1x), float64(c1y)}, Point{float64(c2x), float64(c2y)}, Point{float64(x), float64(y)}
	n := flattenSteps(p0, c1, c2, p1)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		w.pts = append(w.pts, Point{
			a*p0.X + b*c1.X + c*c2.X + d*p1.X,
			a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
		})
	}
}

func (w *polylineWalker) ClosePath() {
	if len(w.starts) == 0 {
		return
	}
	w.pts = append(w.pts, w.pts[w.starts[len(w.starts)-1]])
}

// polylines 按子路径切分 pts
func (w *polylineWalker) polylines() [][]Point {
	lines := make([][]Point, 0, len(w.starts))
	for i, start := range w.starts {
		end := len(w.pts)
		if i+1 < len(w.starts) {
			end = w.starts[i+1]
		}
		lines = append(lines, w.pts[start:end])
	}
	return lines
}

// flattenSteps 按控制多边形长度决定分段数
func flattenSteps(pts ...Point) int {
	l := 0.0
	for i := 1; i < len(pts); i++ {
		l += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return min(64, max(1, int(math.Ceil(l/strokeFlatness))))
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
