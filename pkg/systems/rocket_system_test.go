package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

func TestApexReached(t *testing.T) {
	tests := []struct {
		name string
		vy   float64
		mode config.ApexMode
		want bool
	}{
		{"包含模式-上升", -0.1, config.ApexInclusive, false},
		{"包含模式-静止", 0, config.ApexInclusive, true},
		{"包含模式-下落", 0.1, config.ApexInclusive, true},
		{"严格模式-上升", -0.1, config.ApexStrict, false},
		{"严格模式-静止", 0, config.ApexStrict, false},
		{"严格模式-下落", 0.1, config.ApexStrict, true},
		{"未设置按包含处理", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApexReached(tt.vy, tt.mode); got != tt.want {
				t.Errorf("ApexReached(%v, %q) = %v, want %v", tt.vy, tt.mode, got, tt.want)
			}
		})
	}
}

// addTestRocket 创建一枚自定义火箭：尾焰是长寿命的不可见粒子
func addTestRocket(em *ecs.EntityManager, clock *utils.Clock, pos, vel utils.Vector2, explode components.ExplosionFactory) ecs.EntityID {
	thrust := func(parent *components.ParticleComponent) (components.SpawnSpec, error) {
		return components.SpawnSpec{Particle: entities.NewParticle(clock, parent.Position, utils.Vec(0, 0), nil, 1, 100, 0)}, nil
	}
	id, _ := entities.CreateParticleEntity(em, components.SpawnSpec{
		Particle: entities.NewParticle(clock, pos, vel, nil, 0, 10, 1),
		Factory:  thrust,
	})
	em.AddComponent(id, &components.RocketComponent{Explode: explode})
	return id
}

func TestRocketDetonatesAtApex(t *testing.T) {
	cfg := config.DefaultFireworksConfig().Rockets
	cfg.Gravity = 9.81

	em := ecs.NewEntityManager()
	clock := utils.NewClock()
	sounds := &recordingSounds{}
	sys := NewRocketSystem(em, clock, &cfg, utils.NewRand(1), sounds)

	var explodedAt []float64
	var apexY float64
	id := addTestRocket(em, clock, utils.Vec(100, 600), utils.Vec(0, -50), func(rocket *components.ParticleComponent) ([]components.SpawnSpec, error) {
		explodedAt = append(explodedAt, clock.Now())
		apexY = rocket.Position.Y
		return []components.SpawnSpec{
			{Particle: entities.NewParticle(clock, rocket.Position, utils.Vec(10, 0), nil, 1, 0.5, 0)},
			{Particle: entities.NewParticle(clock, rocket.Position, utils.Vec(-10, 0), nil, 1, 0.5, 0)},
		}, nil
	})
	sys.Add(id)

	const dt = 1.0 / 60
	for i := 0; i < 600; i++ {
		sys.Update(dt)
		clock.Advance(dt)
	}

	if len(explodedAt) != 1 {
		t.Fatalf("explosion called %d times, want exactly 1", len(explodedAt))
	}
	assert.InDelta(t, 50/9.81, explodedAt[0], dt)
	assert.InDelta(t, 600-50*50/(2*9.81), apexY, 1)
	assert.Equal(t, 1, sounds.count(game.SoundExplosion))

	rocket, _ := ecs.GetComponent[*components.RocketComponent](em, id)
	p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	assert.True(t, rocket.Detonated)
	assert.True(t, p.Expired)
	assert.Equal(t, 0.0, sys.Trails().particles.Remaining(p))
}

func TestRocketStrictApexWaitsForDescent(t *testing.T) {
	tests := []struct {
		name      string
		mode      config.ApexMode
		wantTicks int
	}{
		{"包含模式在速度为 0 时引爆", config.ApexInclusive, 2},
		{"严格模式在速度为正时引爆", config.ApexStrict, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFireworksConfig().Rockets
			cfg.Gravity = 10
			cfg.ApexMode = tt.mode

			em := ecs.NewEntityManager()
			clock := utils.NewClock()
			sys := NewRocketSystem(em, clock, &cfg, utils.NewRand(1), nil)

			exploded := -1
			tick := 0
			// vy: -10 → -5 → 0 → 5（dt = 0.5）
			sys.Add(addTestRocket(em, clock, utils.Vec(0, 100), utils.Vec(0, -10), func(*components.ParticleComponent) ([]components.SpawnSpec, error) {
				exploded = tick
				return nil, nil
			}))
			for tick = 0; tick < 6; tick++ {
				sys.Update(0.5)
				clock.Advance(0.5)
			}
			if exploded != tt.wantTicks {
				t.Errorf("exploded on tick %d, want %d", exploded, tt.wantTicks)
			}
		})
	}
}

func TestRocketExplosionFailure(t *testing.T) {
	tests := []struct {
		name    string
		explode func() ([]components.SpawnSpec, error)
	}{
		{
			name: "工厂返回错误",
			explode: func() ([]components.SpawnSpec, error) {
				return nil, errors.New("no powder")
			},
		},
		{
			name: "工厂 panic",
			explode: func() ([]components.SpawnSpec, error) {
				var shells []components.SpawnSpec
				_ = shells[3]
				return shells, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFireworksConfig().Rockets
			em := ecs.NewEntityManager()
			clock := utils.NewClock()
			sounds := &recordingSounds{}
			sys := NewRocketSystem(em, clock, &cfg, utils.NewRand(1), sounds)

			calls := 0
			id := addTestRocket(em, clock, utils.Vec(0, 0), utils.Vec(0, 0), func(*components.ParticleComponent) ([]components.SpawnSpec, error) {
				calls++
				return tt.explode()
			})
			sys.Add(id)

			assert.NotPanics(t, func() {
				for i := 0; i < 3; i++ {
					sys.Update(1.0 / 60)
					clock.Advance(1.0 / 60)
				}
			})

			assert.Equal(t, 1, calls)
			assert.Equal(t, 0, sounds.count(game.SoundExplosion))
			p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
			assert.True(t, p.Expired, "rocket must be spent even when the explosion fails")
		})
	}
}

func TestRocketExplosionAdoptsTrails(t *testing.T) {
	cfg := testConfig(t).Rockets
	em := ecs.NewEntityManager()
	clock := utils.NewClock()
	sounds := &recordingSounds{}
	sys := NewRocketSystem(em, clock, &cfg, utils.NewRand(7), sounds)

	id, err := sys.Launch(1280, 720)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	assert.Equal(t, 1, sounds.count(game.SoundLaunch))

	rocket, _ := ecs.GetComponent[*components.RocketComponent](em, id)
	const dt = 1.0 / 60
	for i := 0; i < 600 && !rocket.Detonated; i++ {
		sys.Update(dt)
		clock.Advance(dt)
	}
	if !rocket.Detonated {
		t.Fatal("rocket never reached its apex")
	}

	trail, _ := ecs.GetComponent[*components.TrailComponent](em, id)
	explosionTrails := 0
	for _, child := range trail.Children {
		if ecs.HasComponent[*components.TrailComponent](em, child) {
			explosionTrails++
		}
	}
	assert.Equal(t, cfg.Explosion.Trails, explosionTrails)

	surface := render.NewRaster(1280, 720, 0.25)
	for i := 0; i < 10; i++ {
		sys.Update(dt)
		clock.Advance(dt)
	}
	sys.Draw(surface)
	if surface.CoveredPixels() == 0 {
		t.Error("explosion drew nothing")
	}

	// 拖尾最终全部熄灭，火箭随之死亡
	for i := 0; i < 600 && trail.IsAlive; i++ {
		sys.Update(dt)
		clock.Advance(dt)
	}
	assert.False(t, trail.IsAlive)
}

func TestRocketLaunchPrunesDead(t *testing.T) {
	cfg := testConfig(t).Rockets
	em := ecs.NewEntityManager()
	clock := utils.NewClock()
	sys := NewRocketSystem(em, clock, &cfg, utils.NewRand(3), nil)

	first, err := sys.Launch(800, 600)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	sys.Update(1.0 / 60)
	assert.Equal(t, 1, sys.Count())

	trail, _ := ecs.GetComponent[*components.TrailComponent](em, first)
	trail.IsAlive = false

	second, err := sys.Launch(800, 600)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	assert.Equal(t, []ecs.EntityID{second}, sys.Rockets())
	assert.False(t, em.Exists(first), "dead rocket should be destroyed on the next launch")

	sys.Reset()
	assert.Equal(t, 0, sys.Count())
	assert.Equal(t, 0, em.Count())
}
