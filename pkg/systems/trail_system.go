package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/render"
)

// TrailSystem 拖尾树的更新与绘制
//
// 拖尾独占它的子实体：子实体只会被父拖尾修剪并销毁，
// 不会出现在任何池的顶层列表中。
type TrailSystem struct {
	em        *ecs.EntityManager
	particles *ParticleSystem
}

// NewTrailSystem 创建拖尾系统
func NewTrailSystem(em *ecs.EntityManager, particles *ParticleSystem) *TrailSystem {
	return &TrailSystem{em: em, particles: particles}
}

// UpdateTrail 推进拖尾 id 一个 tick
//
// 顺序：积分自身 → 生成一个子实体 → 修剪死亡子实体 → 递归更新存活的子实体 →
// 没有子实体则永久死亡。工厂出错、panic 或生成非法粒子时本 tick 不生成子实体。
func (ts *TrailSystem) UpdateTrail(id ecs.EntityID, dt float64) Liveness {
	p, ok := ecs.GetComponent[*components.ParticleComponent](ts.em, id)
	if !ok {
		return Dead
	}
	trail, ok := ecs.GetComponent[*components.TrailComponent](ts.em, id)
	if !ok {
		return Dead
	}

	ts.particles.Integrate(p, dt)

	if trail.IsAlive && ts.particles.Remaining(p) > 0 && trail.Factory != nil {
		if spec, err := spawnChild(trail.Factory, p); err != nil {
			log.Printf("[TrailSystem] Warning: child factory of trail %d failed: %v", id, err)
		} else {
			ts.Adopt(trail, spec)
		}
	}

	survivors := trail.Children[:0]
	for _, child := range trail.Children {
		if ts.childAlive(child) {
			survivors = append(survivors, child)
		} else {
			ts.destroy(child)
		}
	}
	trail.Children = survivors

	for _, child := range trail.Children {
		if ecs.HasComponent[*components.TrailComponent](ts.em, child) {
			ts.UpdateTrail(child, dt)
		} else if cp, ok := ecs.GetComponent[*components.ParticleComponent](ts.em, child); ok {
			ts.particles.Integrate(cp, dt)
		}
	}

	if len(trail.Children) == 0 {
		trail.IsAlive = false
	}
	if trail.IsAlive {
		return Alive
	}
	return Dead
}

// spawnChild 调用子实体工厂，panic 转成 error，不让单个拖尾中断整帧
func spawnChild(factory components.ChildFactory, parent *components.ParticleComponent) (spec components.SpawnSpec, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("child factory panicked: %v", r)
		}
	}()
	return factory(parent)
}

// Adopt 为拖尾创建一个子实体，非法的子实体被丢弃
func (ts *TrailSystem) Adopt(trail *components.TrailComponent, spec components.SpawnSpec) bool {
	child, err := entities.CreateParticleEntity(ts.em, spec)
	if err != nil {
		return false
	}
	trail.Children = append(trail.Children, child)
	return true
}

// childAlive 子拖尾看 IsAlive，子粒子看剩余寿命
func (ts *TrailSystem) childAlive(id ecs.EntityID) bool {
	if trail, ok := ecs.GetComponent[*components.TrailComponent](ts.em, id); ok {
		return trail.IsAlive
	}
	p, ok := ecs.GetComponent[*components.ParticleComponent](ts.em, id)
	return ok && ts.particles.Remaining(p) > 0
}

// destroy 标记实体及其整棵子树待删除
func (ts *TrailSystem) destroy(id ecs.EntityID) {
	if trail, ok := ecs.GetComponent[*components.TrailComponent](ts.em, id); ok {
		for _, child := range trail.Children {
			ts.destroy(child)
		}
		trail.Children = nil
	}
	ts.em.DestroyEntity(id)
}

// Destroy 销毁拖尾及其子树（由拖尾的所有者调用）
func (ts *TrailSystem) Destroy(id ecs.EntityID) {
	ts.destroy(id)
}

// DrawTrail 拖尾自身不可见，只绘制子实体
func (ts *TrailSystem) DrawTrail(surface render.Surface, id ecs.EntityID) {
	trail, ok := ecs.GetComponent[*components.TrailComponent](ts.em, id)
	if !ok {
		return
	}
	for _, child := range trail.Children {
		if ecs.HasComponent[*components.TrailComponent](ts.em, child) {
			ts.DrawTrail(surface, child)
		} else if p, ok := ecs.GetComponent[*components.ParticleComponent](ts.em, child); ok {
			ts.particles.Draw(surface, p)
		}
	}
}

// Descendants 返回子树中的实体数量（不含自身）
func (ts *TrailSystem) Descendants(id ecs.EntityID) int {
	trail, ok := ecs.GetComponent[*components.TrailComponent](ts.em, id)
	if !ok {
		return 0
	}
	n := len(trail.Children)
	for _, child := range trail.Children {
		n += ts.Descendants(child)
	}
	return n
}
