package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ApexReached 顶点判定（使用上一 tick 积分后的竖直速度）
func ApexReached(vy float64, mode config.ApexMode) bool {
	if mode == config.ApexStrict {
		return vy > 0
	}
	return vy >= 0
}

// RocketSystem 火箭池
//
// 火箭是带爆炸回调的拖尾：每 tick 先做顶点判定，到达顶点时调用一次爆炸工厂，
// 产生的拖尾由火箭自身收养，然后火箭寿命归零；之后照常执行拖尾更新。
type RocketSystem struct {
	em      *ecs.EntityManager
	clock   *utils.Clock
	cfg     *config.RocketsConfig
	rnd     utils.Rand
	sounds  game.SoundPlayer
	trails  *TrailSystem
	rockets []ecs.EntityID
}

// NewRocketSystem 创建火箭池
func NewRocketSystem(em *ecs.EntityManager, clock *utils.Clock, cfg *config.RocketsConfig, rnd utils.Rand, sounds game.SoundPlayer) *RocketSystem {
	particles := NewParticleSystem(cfg.Gravity, clock.Now)
	return &RocketSystem{
		em:     em,
		clock:  clock,
		cfg:    cfg,
		rnd:    rnd,
		sounds: sounds,
		trails: NewTrailSystem(em, particles),
	}
}

// Trails 返回内部的拖尾系统
func (rs *RocketSystem) Trails() *TrailSystem {
	return rs.trails
}

// Launch 在视口底边随机发射一枚火箭，随后立即清理已死亡的火箭
func (rs *RocketSystem) Launch(width, height float64) (ecs.EntityID, error) {
	launch := entities.NewRocketLaunch(rs.cfg, rs.rnd, width, height)
	id, err := entities.CreateRocket(rs.em, rs.cfg, rs.rnd, rs.clock, launch)
	if err != nil {
		return 0, err
	}
	rs.Add(id)
	game.PlaySound(rs.sounds, game.SoundLaunch)
	return id, nil
}

// Add 把已创建的火箭实体交给火箭池，并清理已死亡的火箭
func (rs *RocketSystem) Add(id ecs.EntityID) {
	rs.rockets = append(rs.rockets, id)
	rs.pruneDead()
	rs.em.RemoveMarkedEntities()
}

// Update 推进所有火箭一个 tick
func (rs *RocketSystem) Update(dt float64) {
	for _, id := range rs.rockets {
		rs.tick(id, dt)
	}
	rs.em.RemoveMarkedEntities()
}

func (rs *RocketSystem) tick(id ecs.EntityID, dt float64) Liveness {
	p, ok := ecs.GetComponent[*components.ParticleComponent](rs.em, id)
	if !ok {
		return Dead
	}
	rocket, ok := ecs.GetComponent[*components.RocketComponent](rs.em, id)
	if !ok {
		return Dead
	}

	if !rocket.Detonated && rs.trails.particles.Remaining(p) > 0 && ApexReached(p.Velocity.Y, rs.cfg.ApexMode) {
		rs.detonate(id, p, rocket)
	}
	return rs.trails.UpdateTrail(id, dt)
}

func (rs *RocketSystem) detonate(id ecs.EntityID, p *components.ParticleComponent, rocket *components.RocketComponent) {
	rocket.Detonated = true
	p.Expired = true

	if rocket.Explode == nil {
		return
	}
	trail, ok := ecs.GetComponent[*components.TrailComponent](rs.em, id)
	if !ok {
		return
	}
	specs, err := explode(rocket.Explode, p)
	if err != nil {
		log.Printf("[RocketSystem] Warning: explosion of rocket %d failed: %v", id, err)
		return
	}
	for _, spec := range specs {
		rs.trails.Adopt(trail, spec)
	}
	game.PlaySound(rs.sounds, game.SoundExplosion)
}

// explode 调用爆炸工厂，panic 按失败处理
func explode(factory components.ExplosionFactory, p *components.ParticleComponent) (specs []components.SpawnSpec, err error) {
	defer func() {
		if r := recover(); r != nil {
			specs, err = nil, fmt.Errorf("explosion factory panicked: %v", r)
		}
	}()
	return factory(p)
}

// pruneDead 移除并销毁 IsAlive 为 false 的火箭
func (rs *RocketSystem) pruneDead() {
	alive := rs.rockets[:0]
	for _, id := range rs.rockets {
		trail, ok := ecs.GetComponent[*components.TrailComponent](rs.em, id)
		if ok && trail.IsAlive {
			alive = append(alive, id)
			continue
		}
		rs.trails.Destroy(id)
	}
	rs.rockets = alive
}

// Draw 绘制所有火箭的尾焰和爆炸
func (rs *RocketSystem) Draw(surface render.Surface) {
	for _, id := range rs.rockets {
		rs.trails.DrawTrail(surface, id)
	}
}

// Count 返回火箭池中的火箭数量（包括尚未清理的死亡火箭）
func (rs *RocketSystem) Count() int {
	return len(rs.rockets)
}

// Rockets 返回火箭实体 ID 的副本
func (rs *RocketSystem) Rockets() []ecs.EntityID {
	return append([]ecs.EntityID(nil), rs.rockets...)
}

// Reset 销毁全部火箭
func (rs *RocketSystem) Reset() {
	for _, id := range rs.rockets {
		rs.trails.Destroy(id)
	}
	rs.rockets = nil
	rs.em.RemoveMarkedEntities()
}
