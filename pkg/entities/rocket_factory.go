package entities

import (
	"image/color"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// RocketLaunch 一次发射的初始状态
type RocketLaunch struct {
	Position utils.Vector2
	Velocity utils.Vector2
	BaseHue  float64 // 爆炸颜色的基准色相
}

// NewRocketLaunch 在视口底边随机选择发射点
//
// 水平位置在视口宽度内均匀分布，发射角在竖直向上附近扰动 ±LaunchSpread/2，
// 速度 = LaunchSpeedFactor × 视口高度。
func NewRocketLaunch(cfg *config.RocketsConfig, rnd utils.Rand, width, height float64) RocketLaunch {
	x := rnd.Float64() * width
	angle := -math.Pi/2 + (rnd.Float64()-0.5)*cfg.LaunchSpread
	speed := cfg.LaunchSpeedFactor * height
	return RocketLaunch{
		Position: utils.Vec(x, height),
		Velocity: utils.FromAngle(angle, speed),
		BaseHue:  rnd.Float64() * 360,
	}
}

// NewThrustFactory 火箭尾焰：每 tick 在火箭位置生成一个反向喷出的暖色小粒子
func NewThrustFactory(cfg *config.ThrustConfig, rnd utils.Rand, clock *utils.Clock) components.ChildFactory {
	return func(parent *components.ParticleComponent) (components.SpawnSpec, error) {
		velocity := parent.Velocity.MultiplyScalar(cfg.VelocityFactor)
		velocity.X += (rnd.Float64() - 0.5) * cfg.Jitter
		hue := math.Floor(cfg.Hue.Sample(rnd))
		p := NewParticle(clock,
			parent.Position,
			velocity,
			render.HSL(hue, 100, cfg.Lightness),
			cfg.Radius.Sample(rnd),
			cfg.Lifetime.Sample(rnd),
			cfg.Mass,
		)
		return components.SpawnSpec{Particle: p}, nil
	}
}

// NewExplosionFactory 火箭爆炸：一组向四周散开的拖尾，每条拖尾再拖出彩色火星
func NewExplosionFactory(cfg *config.ExplosionConfig, rnd utils.Rand, clock *utils.Clock, baseHue float64) components.ExplosionFactory {
	sparkColor := func() color.NRGBA {
		hue := math.Mod(math.Floor(baseHue+rnd.Float64()*cfg.HueSpread), 360)
		r := rnd.Float64()
		lightness := math.Floor(r*r*50 + 50)
		return render.HSL(hue, 100, lightness)
	}

	sparkFactory := func(parent *components.ParticleComponent) (components.SpawnSpec, error) {
		velocity := utils.FromAngle(utils.RandomAngle(rnd), cfg.SparkForce)
		p := NewParticle(clock,
			parent.Position,
			velocity,
			sparkColor(),
			cfg.SparkRadius.Sample(rnd),
			cfg.SparkLifetime,
			cfg.SparkMass,
		)
		return components.SpawnSpec{Particle: p}, nil
	}

	return func(rocket *components.ParticleComponent) ([]components.SpawnSpec, error) {
		specs := make([]components.SpawnSpec, 0, cfg.Trails)
		for i := 0; i < cfg.Trails; i++ {
			direction := utils.RandomAngle(rnd)
			force := cfg.Force.Sample(rnd)
			trail := NewParticle(clock,
				rocket.Position,
				utils.FromAngle(direction, force),
				nil,
				0,
				cfg.Lifetime.Sample(rnd),
				cfg.Mass,
			)
			specs = append(specs, components.SpawnSpec{Particle: trail, Factory: sparkFactory})
		}
		return specs, nil
	}
}

// CreateRocket 创建火箭实体
//
// 火箭由 ParticleComponent（自身物理）、TrailComponent（尾焰）和
// RocketComponent（爆炸）组成。
//
// Parameters:
//   - em: EntityManager
//   - cfg: 火箭配置
//   - rnd: 随机源，尾焰与爆炸工厂共享
//   - clock: 场景时钟
//   - launch: 发射状态（见 NewRocketLaunch）
func CreateRocket(em *ecs.EntityManager, cfg *config.RocketsConfig, rnd utils.Rand, clock *utils.Clock, launch RocketLaunch) (ecs.EntityID, error) {
	body := NewParticle(clock, launch.Position, launch.Velocity, nil, 0, cfg.Lifetime, cfg.Mass)
	id, err := CreateParticleEntity(em, components.SpawnSpec{
		Particle: body,
		Factory:  NewThrustFactory(&cfg.Thrust, rnd, clock),
	})
	if err != nil {
		return 0, err
	}
	em.AddComponent(id, &components.RocketComponent{
		Explode: NewExplosionFactory(&cfg.Explosion, rnd, clock, launch.BaseHue),
	})
	return id, nil
}
