package entities

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ErrInvalidLifetime 寿命 <= 0 或 NaN 的粒子无法计算剩余寿命
var ErrInvalidLifetime = errors.New("particle lifetime must be > 0")

// NewParticle 构造一个粒子，CreatedOn 取 clock 的当前时刻
func NewParticle(clock *utils.Clock, position, velocity utils.Vector2, c color.Color, radius, lifetime, mass float64) components.ParticleComponent {
	return components.ParticleComponent{
		Position:  position,
		Velocity:  velocity,
		Color:     c,
		Radius:    radius,
		Lifetime:  lifetime,
		Mass:      mass,
		CreatedOn: clock.Now(),
	}
}

// ValidateParticle 检查粒子能否安全地参与模拟
func ValidateParticle(p *components.ParticleComponent) error {
	if math.IsNaN(p.Lifetime) || p.Lifetime <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidLifetime, p.Lifetime)
	}
	return nil
}

// CreateParticleEntity 根据 SpawnSpec 创建实体
//
// spec.Factory 非空时实体同时获得 TrailComponent（即子拖尾）。
// 非法的粒子不会创建任何实体。
//
// Returns:
//   - ecs.EntityID: 新实体 ID
//   - error: 粒子校验失败
func CreateParticleEntity(em *ecs.EntityManager, spec components.SpawnSpec) (ecs.EntityID, error) {
	p := spec.Particle
	if err := ValidateParticle(&p); err != nil {
		return 0, err
	}
	id := em.CreateEntity()
	em.AddComponent(id, &p)
	if spec.Factory != nil {
		em.AddComponent(id, &components.TrailComponent{
			Factory: spec.Factory,
			IsAlive: true,
		})
	}
	return id, nil
}
