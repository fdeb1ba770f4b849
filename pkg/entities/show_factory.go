package entities

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ShowParams 庆典场景各工厂共享的参数（颜色已解析）
type ShowParams struct {
	FireNumber  int
	Range       float64
	FuseColor   color.Color
	PlanetColor color.Color
	RingColor   color.Color
	LightRadius float64
}

// NewShowParams 从配置解析颜色
func NewShowParams(cfg *config.ShowConfig) (ShowParams, error) {
	fuse, err := render.ParseColor(cfg.FuseColor)
	if err != nil {
		return ShowParams{}, fmt.Errorf("fuseColor: %w", err)
	}
	planet, err := render.ParseColor(cfg.PlanetColor)
	if err != nil {
		return ShowParams{}, fmt.Errorf("planetColor: %w", err)
	}
	ring, err := render.ParseColor(cfg.RingColor)
	if err != nil {
		return ShowParams{}, fmt.Errorf("ringColor: %w", err)
	}
	return ShowParams{
		FireNumber:  cfg.FireNumber,
		Range:       cfg.Range,
		FuseColor:   fuse,
		PlanetColor: planet,
		RingColor:   ring,
		LightRadius: cfg.LightRadius,
	}, nil
}

// Burst 爆点图案所需的子集
func (p ShowParams) Burst() BurstParams {
	return BurstParams{
		FireNumber:  p.FireNumber,
		Range:       p.Range,
		PlanetColor: p.PlanetColor,
		RingColor:   p.RingColor,
	}
}

// NewFuse 在视口底部下方生成一个引信，目标高度在中心线上方
func NewFuse(center utils.Vector2, height float64, params ShowParams, rnd utils.Rand) components.FuseComponent {
	r := params.Range
	f := components.FuseComponent{
		X:     rnd.Float64()*r/2 - r/4 + center.X,
		Y:     rnd.Float64()*r*2.5 + height,
		Size:  rnd.Float64() + 0.5,
		Fill:  params.FuseColor,
		VX:    rnd.Float64() - 0.5,
		VY:    -(rnd.Float64() + 4),
		AX:    FuseDrift(rnd),
		Delay: FuseDelay(params, rnd),
		Alpha: 1,
		Far:   rnd.Float64()*r + (center.Y - r),
	}
	f.Base = components.FuseBase{X: f.X, Y: f.Y, VX: f.VX, VY: f.VY}
	return f
}

// FuseDrift 引信每次发射时重新选择的水平加速度
func FuseDrift(rnd utils.Rand) float64 {
	return rnd.Float64()*0.06 - 0.03
}

// FuseDelay 挂起引信的等待 tick 数
func FuseDelay(params ShowParams, rnd utils.Rand) int {
	return int(utils.Round(rnd.Float64()*params.Range) + params.Range*4)
}

// NewSpecials 一组从同一列发射的特殊引信（N/2 个），共享速度与方向偏置
func NewSpecials(center utils.Vector2, height float64, params ShowParams, rnd utils.Rand) []components.SpecialComponent {
	r := params.Range
	x := rnd.Float64()*r*3 - r*1.5 + center.X
	vx := rnd.Float64() - 0.5
	vy := -(rnd.Float64() + 4)
	ax := rnd.Float64()*0.04 - 0.02
	far := rnd.Float64()*r*4 - r + center.Y
	direct := ax * 10 * math.Pi

	count := int(math.Ceil(float64(params.FireNumber) * 0.5))
	specials := make([]components.SpecialComponent, 0, count)
	for i := 0; i < count; i++ {
		y := rnd.Float64()*r*0.25 + height
		specials = append(specials, components.SpecialComponent{
			X:      x,
			Y:      y,
			Size:   rnd.Float64() + 2,
			Fill:   params.FuseColor,
			VX:     vx,
			VY:     vy,
			AX:     ax,
			Direct: direct,
			Alpha:  1,
			Far:    far - (y - height),
		})
	}
	return specials
}

// MakeSparks 特殊引信到达目标后放出的一组火花（N 个），大致朝上方扇形散开
func MakeSparks(origin utils.Vector2, fill color.Color, direct float64, params ShowParams, rnd utils.Rand) []components.SparkComponent {
	velocity := rnd.Float64()*6 + 12
	sparks := make([]components.SparkComponent, 0, params.FireNumber)
	for i := 0; i < params.FireNumber; i++ {
		rad := rnd.Float64()*math.Pi*0.3 + math.Pi*0.35 + math.Pi + direct
		life := utils.Round(rnd.Float64()*params.Range/2) + params.Range/2
		sparks = append(sparks, components.SparkComponent{
			X:            origin.X,
			Y:            origin.Y,
			Size:         rnd.Float64() + 1,
			Fill:         fill,
			VX:           math.Cos(rad)*velocity + jitter(rnd),
			VY:           math.Sin(rad)*velocity + jitter(rnd),
			AY:           0.02,
			Alpha:        1,
			Rad:          rad,
			Direct:       direct,
			Chain:        int(utils.Round(rnd.Float64()*2)) + 2,
			Life:         life,
			BaseLife:     life,
			BaseVelocity: velocity,
		})
	}
	return sparks
}

// ChainSparks 连锁火花：0-5 个更小更慢的子火花，沿父火花方向 ±0.15π 散开
//
// 父火花的 Chain 为 0 时不生成任何子火花。子火花继承父火花当前的 Chain。
func ChainSparks(parent *components.SparkComponent, rnd utils.Rand) []components.SparkComponent {
	if parent.Chain <= 0 {
		return nil
	}
	velocity := parent.BaseVelocity * 0.6
	count := int(utils.Round(rnd.Float64() * 5))
	sparks := make([]components.SparkComponent, 0, count)
	for i := 0; i < count; i++ {
		rad := rnd.Float64()*math.Pi*0.3 - math.Pi*0.15 + parent.Rad + parent.Direct
		life := parent.BaseLife * 0.8
		sparks = append(sparks, components.SparkComponent{
			X:            parent.X,
			Y:            parent.Y,
			Size:         parent.Size * 0.6,
			Fill:         parent.Fill,
			VX:           math.Cos(rad)*velocity + jitter(rnd),
			VY:           math.Sin(rad)*velocity + jitter(rnd),
			AY:           0.02,
			Alpha:        1,
			Rad:          rad,
			Direct:       parent.Direct,
			Chain:        parent.Chain,
			Life:         life,
			BaseLife:     life,
			BaseVelocity: velocity,
		})
	}
	return sparks
}
