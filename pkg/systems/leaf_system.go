package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// LeafSystem 落叶池，飘出视口（含边距）的叶子被移除
type LeafSystem struct {
	em            *ecs.EntityManager
	cfg           *config.LeafConfig
	rnd           utils.Rand
	color         color.Color
	width, height float64
}

// NewLeafSystem 创建落叶池
func NewLeafSystem(em *ecs.EntityManager, cfg *config.LeafConfig, rnd utils.Rand, width, height float64) (*LeafSystem, error) {
	c, err := render.ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	return &LeafSystem{em: em, cfg: cfg, rnd: rnd, color: c, width: width, height: height}, nil
}

// Resize 更新视口边界
func (s *LeafSystem) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Spawn 在视口上方生成一片叶子
func (s *LeafSystem) Spawn() ecs.EntityID {
	return s.Add(entities.NewLeaf(s.cfg, s.width, s.rnd))
}

// Add 加入一片叶子
func (s *LeafSystem) Add(leaf components.LeafComponent) ecs.EntityID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &leaf)
	return id
}

// TickLeaf 推进一片叶子，离开视口边距后返回 Dead
func TickLeaf(leaf *components.LeafComponent, width, height, offset float64) Liveness {
	leaf.X += leaf.VX * leaf.Rate
	leaf.Y += leaf.VY * leaf.Rate
	leaf.Theta = math.Mod(leaf.Theta+leaf.DeltaTheta, math.Pi*2)

	if leaf.Y <= height+offset && leaf.X >= -offset && leaf.X <= width+offset {
		return Alive
	}
	return Dead
}

// Update 推进所有叶子
func (s *LeafSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LeafComponent](s.em) {
		leaf, _ := ecs.GetComponent[*components.LeafComponent](s.em, id)
		if TickLeaf(leaf, s.width, s.height, s.cfg.Offset) == Dead {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// Draw 绘制叶片
func (s *LeafSystem) Draw(surface render.Surface) {
	shape := leafPath(0, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.LeafComponent](s.em) {
		leaf, _ := ecs.GetComponent[*components.LeafComponent](s.em, id)
		surface.Save()
		surface.SetCompositeMode(render.CompositeSourceOver)
		surface.SetGlobalAlpha(1)
		surface.SetFillColor(s.color)
		surface.Translate(leaf.X, leaf.Y)
		surface.Rotate(leaf.Theta)
		surface.Scale(leaf.Rate, leaf.Rate)
		surface.FillPath(shape)
		surface.Restore()
	}
}

// Count 返回叶子数量
func (s *LeafSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.LeafComponent](s.em))
}
