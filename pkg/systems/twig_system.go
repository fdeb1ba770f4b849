package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/render"
)

const twigSegment = 40.0

// TwigSystem 角落树枝：Update 只推进摇摆相位，Draw 按当前相位递归绘制
type TwigSystem struct {
	em    *ecs.EntityManager
	cfg   *config.TwigConfig
	color color.Color
}

// NewTwigSystem 创建树枝池
func NewTwigSystem(em *ecs.EntityManager, cfg *config.TwigConfig) (*TwigSystem, error) {
	c, err := render.ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	return &TwigSystem{em: em, cfg: cfg, color: c}, nil
}

// Add 加入一根树枝
func (s *TwigSystem) Add(twig components.TwigComponent) ecs.EntityID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &twig)
	return id
}

// TwigShake 摇摆角：±π/48 的正弦摆动
func TwigShake(theta float64) float64 {
	return math.Pi / 48 * math.Sin(theta)
}

// Update 推进摇摆相位；树枝永不死亡
func (s *TwigSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TwigComponent](s.em) {
		twig, _ := ecs.GetComponent[*components.TwigComponent](s.em, id)
		twig.Theta = math.Mod(twig.Theta+s.cfg.ShakeFrequency, math.Pi*2)
	}
}

// Draw 绘制全部树枝
func (s *TwigSystem) Draw(surface render.Surface) {
	surface.Save()
	surface.SetCompositeMode(render.CompositeSourceOver)
	surface.SetGlobalAlpha(1)
	surface.SetFillColor(s.color)
	for _, id := range ecs.GetEntitiesWith1[*components.TwigComponent](s.em) {
		twig, _ := ecs.GetComponent[*components.TwigComponent](s.em, id)
		s.drawBlock(surface, twig, twig.X, twig.Y, twigSegment, 0, TwigShake(twig.Theta))
	}
	surface.Restore()
}

// drawBlock 画一段枝干和两侧的小枝，然后沿主干递归；到达最大层级时以叶子收尾
func (s *TwigSystem) drawBlock(surface render.Surface, twig *components.TwigComponent, x, y, length float64, level int, shake float64) {
	lw := s.cfg.LineWidth
	shrink := 1 - float64(level)/10

	surface.Save()
	surface.Translate(x, y)
	surface.Rotate(twig.Angle + shake*float64(level+1))
	surface.Scale(twig.Rate, twig.Rate)

	stem := render.NewPath()
	stem.MoveTo(0, 0)
	stem.LineTo(0, -length)
	surface.StrokePath(stem, lw)

	if level == s.cfg.MaxLevel {
		length /= shrink
		surface.Save()
		surface.Scale(shrink, shrink)
		leaf := leafPath(0, -length)
		surface.StrokePath(leaf, lw)
		surface.FillPath(leaf)
		surface.Restore()
		surface.Restore()
		return
	}

	for _, side := range []float64{-1, 1} {
		surface.Save()
		surface.Translate(0, -twigSegment)
		surface.Rotate((math.Pi/3 - math.Pi/20*float64(level)) * side)
		surface.Scale(shrink, shrink)
		branch := render.NewPath()
		branch.MoveTo(0, 0)
		branch.LineTo(0, -length*0.8)
		appendLeaf(branch, -length*0.8)
		surface.StrokePath(branch, lw)
		surface.FillPath(branch)
		surface.Restore()
	}
	surface.Restore()

	level++
	angle := twig.Angle + shake*float64(level)
	s.drawBlock(surface, twig,
		x+twigSegment*math.Sin(angle),
		y-twigSegment*math.Cos(angle),
		length, level, shake)
}

// leafPath 以 (x, y) 为叶柄、向上延伸 80 的叶片轮廓
func leafPath(x, y float64) *render.Path {
	p := render.NewPath()
	p.MoveTo(x, y)
	p.QuadTo(x+30, y-20, x, y-80)
	p.QuadTo(x-30, y-20, x, y)
	return p
}

// appendLeaf 在当前子路径末端 (0, y) 追加叶片
func appendLeaf(p *render.Path, y float64) {
	p.QuadTo(30, y-20, 0, y-80)
	p.QuadTo(-30, y-20, 0, y)
}

// Count 返回树枝数量
func (s *TwigSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.TwigComponent](s.em))
}
