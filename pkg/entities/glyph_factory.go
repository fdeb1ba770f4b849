package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/utils"
)

// GlyphBurst 一个字符的粒子和伴随的光晕
type GlyphBurst struct {
	Particles []components.GlyphComponent
	Light     components.Light
}

// MakeGlyph 生成文本第 index 个字符 ch 的粒子
//
// 粒子从排版位置附近出发，初速度正比于随机选中的点阵格子坐标，
// 因此粒子散开时会短暂拼出字符的形状；Direct 把它们拉向目标列。
// 字符没有点阵或排版位置时返回错误，不生成任何粒子。
func MakeGlyph(ch rune, index int, glyphs *config.GlyphConfig, center utils.Vector2, params ShowParams, rnd utils.Rand) (GlyphBurst, error) {
	cells, ok := glyphs.Cells(ch)
	if !ok {
		return GlyphBurst{}, fmt.Errorf("no glyph for character %q", ch)
	}
	pos, ok := glyphs.Position(index)
	if !ok {
		return GlyphBurst{}, fmt.Errorf("no layout position for character %d", index)
	}

	velocity := glyphs.Velocity.Sample(rnd)
	shiftX := -(rnd.Float64() + 2)
	shiftY := -(rnd.Float64() + 3)
	left := pos.Col*glyphs.CellWidth - glyphs.HalfColumns*glyphs.CellWidth
	top := pos.Row*glyphs.RowHeight - glyphs.RowOffset

	startX := center.X + left*glyphs.StartScale
	startY := center.Y + top
	target := center.X + left

	count := int(math.Ceil(float64(params.FireNumber) * float64(len(cells)) * 0.5))
	particles := make([]components.GlyphComponent, 0, count)
	for j := 0; j < count; j++ {
		cell := cells[int(rnd.Float64()*float64(len(cells)))%len(cells)]
		x := cell.Col + shiftX
		y := cell.Row + shiftY
		size := rnd.Float64() + 0.5
		life := utils.Round(rnd.Float64()*params.Range/2) + params.Range/1.5
		particles = append(particles, components.GlyphComponent{
			DecayBody: components.DecayBody{
				X:        startX,
				Y:        startY,
				VX:       x * (velocity + (rnd.Float64()-0.5)*0.5),
				VY:       y * (velocity + (rnd.Float64()-0.5)*0.5),
				AY:       glyphs.Gravity,
				Size:     size,
				Fill:     params.FuseColor,
				Alpha:    1,
				Life:     life,
				BaseLife: life,
				BaseSize: size,
			},
			Left:   target,
			Direct: (target - startX) * glyphs.DriftFactor,
		})
	}

	return GlyphBurst{
		Particles: particles,
		Light: components.Light{
			X:      startX,
			Y:      startY,
			Color:  params.FuseColor,
			Radius: params.LightRadius,
		},
	}, nil
}
