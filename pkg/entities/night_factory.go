package entities

import (
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// NewShell 夜景烟花：从视口底部升起，在 [w/8, 7w/8] × [h/4, h/2] 内绽放
//
// 绽放粒子在创建时一次性生成，速度 (1 - rand⁶)·max·rand，方向均匀。
func NewShell(cfg *config.ShellConfig, width, height float64, rnd utils.Rand) components.ShellComponent {
	hue := float64(int(256 * rnd.Float64()))
	x := utils.RandomInRange(rnd, width/8, width*7/8)
	y := utils.RandomInRange(rnd, height/4, height/2)
	launchY := height + cfg.Radius

	particles := make([]components.ShellParticle, cfg.ParticleCount)
	for i := range particles {
		radian := utils.RandomAngle(rnd)
		velocity := (1 - math.Pow(rnd.Float64(), 6)) * cfg.ParticleVelocity
		rate := rnd.Float64()
		particles[i] = components.ShellParticle{
			X:  x,
			Y:  y,
			VX: velocity * math.Cos(radian) * rate,
			VY: velocity * math.Sin(radian) * rate,
		}
	}

	return components.ShellComponent{
		X:         x,
		Y:         y,
		X0:        x,
		Y0:        launchY,
		LaunchY:   launchY,
		Color:     render.HSL(hue, cfg.Saturation, cfg.Lightness),
		State:     components.ShellAscend,
		WaitCount: cfg.WaitCount.Sample(rnd),
		Opacity:   1,
		Velocity:  cfg.Velocity,
		Particles: particles,
	}
}

// NewLeaf 从视口上方飘下的叶子，水平速度朝向视口中线
func NewLeaf(cfg *config.LeafConfig, width float64, rnd utils.Rand) components.LeafComponent {
	x := rnd.Float64() * width
	direction := 1.0
	if x > width/2 {
		direction = -1
	}
	return components.LeafComponent{
		X:          x,
		Y:          -cfg.Offset,
		VX:         rnd.Float64() * direction,
		VY:         cfg.VelocityY,
		Rate:       cfg.Rate.Sample(rnd),
		Theta:      utils.RandomAngle(rnd),
		DeltaTheta: utils.RandomInRange(rnd, -cfg.DeltaTheta, cfg.DeltaTheta),
	}
}

// NewStar 随机位置的星星，初始处于熄灭后的静止状态（Theta = 0）
func NewStar(cfg *config.StarConfig, width, height float64, rnd utils.Rand) components.StarComponent {
	maxCount := cfg.Count.SampleInt(rnd)
	if maxCount < 1 {
		maxCount = 1
	}
	return components.StarComponent{
		X:        rnd.Float64() * width,
		Y:        rnd.Float64() * height,
		Radius:   cfg.Radius.Sample(rnd),
		MaxCount: maxCount,
		Count:    maxCount,
	}
}

// NewTwigs 四个角落的树枝，主干指向视口内侧
func NewTwigs(width, height float64) []components.TwigComponent {
	rate := math.Min(width, height) / 500
	return []components.TwigComponent{
		{X: 0, Y: 0, Angle: math.Pi * 3 / 4, Theta: 0, Rate: rate},
		{X: width, Y: 0, Angle: -math.Pi * 3 / 4, Theta: math.Pi, Rate: rate},
		{X: 0, Y: height, Angle: math.Pi / 4, Theta: math.Pi, Rate: rate},
		{X: width, Y: height, Angle: -math.Pi / 4, Theta: 0, Rate: rate},
	}
}
