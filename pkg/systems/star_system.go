package systems

import (
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// starStops 星光：蓝白核心向外渐隐
var starStops = []render.ColorStop{
	{Offset: 0, Color: render.HSLA(220, 80, 100, 1)},
	{Offset: 0.1, Color: render.HSLA(220, 80, 80, 1)},
	{Offset: 0.25, Color: render.HSLA(220, 80, 50, 1)},
	{Offset: 1, Color: render.HSLA(220, 80, 30, 0)},
}

// StarSystem 星星池：闪烁并绕视口中心缓慢旋转
type StarSystem struct {
	em            *ecs.EntityManager
	cfg           *config.StarConfig
	rnd           utils.Rand
	width, height float64
}

// NewStarSystem 创建星星池
func NewStarSystem(em *ecs.EntityManager, cfg *config.StarConfig, rnd utils.Rand, width, height float64) *StarSystem {
	return &StarSystem{em: em, cfg: cfg, rnd: rnd, width: width, height: height}
}

// Resize 更新旋转中心；已有星星的位置不变
func (s *StarSystem) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Spawn 生成 n 颗星星
func (s *StarSystem) Spawn(n int) {
	for i := 0; i < n; i++ {
		s.Add(entities.NewStar(s.cfg, s.width, s.height, s.rnd))
	}
}

// Add 加入一颗星星
func (s *StarSystem) Add(star components.StarComponent) ecs.EntityID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &star)
	return id
}

// StarBrightness 星星亮度 |cos θ|
func StarBrightness(star *components.StarComponent) float64 {
	return math.Abs(math.Cos(star.Theta))
}

// TickStar 推进闪烁周期与旋转角
func TickStar(star *components.StarComponent, cfg *config.StarConfig) {
	star.Count--
	if star.Count <= 0 {
		star.Theta = math.Pi
		star.Count = star.MaxCount
	}
	if star.Theta > 0 {
		star.Theta -= cfg.DeltaTheta
	}
	star.Phi = math.Mod(star.Phi+cfg.DeltaPhi, math.Pi/2)
}

// Update 推进所有星星；星星永不死亡
func (s *StarSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.StarComponent](s.em) {
		star, _ := ecs.GetComponent[*components.StarComponent](s.em, id)
		TickStar(star, s.cfg)
	}
}

// Draw 以视口中心为原点旋转后绘制星光
func (s *StarSystem) Draw(surface render.Surface) {
	cx, cy := s.width/2, s.height/2
	for _, id := range ecs.GetEntitiesWith1[*components.StarComponent](s.em) {
		star, _ := ecs.GetComponent[*components.StarComponent](s.em, id)
		surface.Save()
		surface.SetCompositeMode(render.CompositeSourceOver)
		surface.SetGlobalAlpha(StarBrightness(star))
		surface.Translate(cx, cy)
		surface.Rotate(star.Phi)
		surface.Translate(star.X-cx, star.Y-cy)
		surface.FillRadialGradient(0, 0, star.Radius, starStops)
		surface.Restore()
	}
}

// Count 返回星星数量
func (s *StarSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.StarComponent](s.em))
}
