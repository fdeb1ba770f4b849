package components

import (
	"github.com/gonewx/fireworks/pkg/ecs"
)

// SpawnSpec 描述一个待生成的子实体
//
// Factory 非空时，子实体本身也是一条拖尾（递归所有权树）。
type SpawnSpec struct {
	Particle ParticleComponent
	Factory  ChildFactory
}

// ChildFactory 每个 tick 为拖尾制造一个子实体
// parent 为拖尾自身的粒子状态（只读），子实体可据此继承位置和速度。
// 返回错误表示本 tick 不生成子实体。
type ChildFactory func(parent *ParticleComponent) (SpawnSpec, error)

// TrailComponent 拖尾：持续生成并修剪子粒子，没有子粒子后永久死亡
type TrailComponent struct {
	Factory  ChildFactory
	Children []ecs.EntityID // 独占所有权，按生成顺序
	IsAlive  bool
}
