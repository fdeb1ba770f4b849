package config

import (
	"fmt"

	"github.com/gonewx/fireworks/internal/particle"
)

// GlyphCell 字符点阵中的一个格子（列, 行）
type GlyphCell struct {
	Col, Row float64
}

// GlyphConfig 文字粒子的点阵与排版
//
// Layout 与 Chars 使用扁平的 [x0, y0, x1, y1, ...] 数组，
// Layout 的第 i 对是文本第 i 个字符在排版网格中的位置。
type GlyphConfig struct {
	CellWidth   float64              `yaml:"cellWidth"`   // 排版网格列宽
	HalfColumns float64              `yaml:"halfColumns"` // 文本中心相对网格左侧的列数
	RowHeight   float64              `yaml:"rowHeight"`   // 排版网格行高
	RowOffset   float64              `yaml:"rowOffset"`   // 第 0 行相对视口中心的上移量
	StartScale  float64              `yaml:"startScale"`  // 粒子起点 = 中心 + left × startScale
	DriftFactor float64              `yaml:"driftFactor"` // direct = (目标列 - 起点) × driftFactor
	Gravity     float64              `yaml:"gravity"`     // 文字粒子的 ay
	Velocity    particle.Range       `yaml:"velocity"`    // 字形速度倍率
	Layout      []float64            `yaml:"layout"`
	Chars       map[string][]float64 `yaml:"chars"`
}

// Cells 返回字符的点阵格子；未定义的字符返回 false
func (g *GlyphConfig) Cells(ch rune) ([]GlyphCell, bool) {
	flat, ok := g.Chars[string(ch)]
	if !ok || len(flat) < 2 || len(flat)%2 != 0 {
		return nil, false
	}
	cells := make([]GlyphCell, len(flat)/2)
	for i := range cells {
		cells[i] = GlyphCell{Col: flat[i*2], Row: flat[i*2+1]}
	}
	return cells, true
}

// Position 返回文本第 index 个字符的排版位置
func (g *GlyphConfig) Position(index int) (GlyphCell, bool) {
	if index < 0 || index*2+1 >= len(g.Layout) {
		return GlyphCell{}, false
	}
	return GlyphCell{Col: g.Layout[index*2], Row: g.Layout[index*2+1]}, true
}

// Validate 检查 text 中每个字符都有排版位置和点阵
func (g *GlyphConfig) Validate(text string) error {
	if g.CellWidth <= 0 || g.RowHeight <= 0 {
		return fmt.Errorf("cellWidth and rowHeight must be > 0")
	}
	if len(g.Layout)%2 != 0 {
		return fmt.Errorf("layout must contain (col, row) pairs, got %d values", len(g.Layout))
	}
	i := 0
	for _, ch := range text {
		if _, ok := g.Position(i); !ok {
			return fmt.Errorf("no layout position for character %d (%q)", i, ch)
		}
		if _, ok := g.Cells(ch); !ok {
			return fmt.Errorf("no glyph for character %q", ch)
		}
		i++
	}
	return nil
}

// DefaultGlyphConfig 返回内置点阵（"happylunarnewyear2017" 排成三行）
func DefaultGlyphConfig() GlyphConfig {
	return GlyphConfig{
		CellWidth:   80,
		HalfColumns: 6.5,
		RowHeight:   120,
		RowOffset:   240,
		StartScale:  0.9,
		DriftFactor: 0.08,
		Gravity:     0.08,
		Velocity:    particle.Between(1, 1.25),
		Layout: []float64{
			4.5, 0, 5.5, 0, 6.5, 0, 7.5, 0, 8.5, 0,
			0, 1, 1, 1, 2, 1, 3, 1, 4, 1, 6, 1, 7, 1, 8, 1, 10, 1, 11, 1, 12, 1, 13, 1,
			5, 2, 6, 2, 7, 2, 8, 2,
		},
		Chars: map[string][]float64{
			"h": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 1, 3, 2, 3, 3, 3, 4, 3, 5, 0, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5, 5, 6, 5, 7},
			"a": {2, 0, 2, 1, 2, 2, 1, 2, 1, 3, 1, 4, 1, 5, 0, 5, 0, 6, 0, 7, 2, 5, 3, 0, 3, 1, 3, 2, 4, 2, 4, 3, 4, 4, 4, 1, 5, 5, 5, 6, 5, 7, 3, 5},
			"p": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 1, 0, 2, 0, 3, 0, 4, 1, 5, 2, 4, 3, 3, 4, 2, 4, 1, 4},
			"y": {0, 0, 0, 1, 1, 1, 1, 2, 1, 3, 2, 3, 2, 4, 2, 5, 2, 6, 2, 7, 3, 2, 3, 3, 4, 1, 4, 2, 5, 0, 5, 1},
			"l": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 1, 7, 2, 7, 3, 7, 4, 7, 5, 7},
			"u": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 1, 7, 2, 7, 3, 7, 4, 7, 5, 0, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5, 5, 6},
			"n": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 1, 1, 1, 2, 2, 2, 2, 3, 2, 4, 3, 4, 3, 5, 4, 5, 4, 6, 5, 0, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5, 5, 6, 5, 7},
			"e": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 1, 3, 2, 3, 3, 3, 4, 3, 1, 7, 2, 7, 3, 7, 4, 7, 5, 7},
			"w": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 1, 6, 2, 1, 2, 2, 2, 3, 2, 4, 2, 5, 2, 6, 2, 7, 3, 7, 5, 0, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5, 4, 5, 4, 6},
			"r": {0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 1, 0, 2, 0, 3, 0, 4, 1, 5, 2, 4, 3, 3, 4, 2, 4, 1, 4, 1, 5, 2, 5, 3, 6, 4, 6, 5, 7},
			"2": {0, 1, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 5, 1, 5, 2, 5, 3, 4, 3, 3, 3, 2, 3, 2, 4, 1, 4, 1, 5, 0, 5, 0, 6, 0, 7, 1, 7, 2, 7, 3, 7, 4, 7, 5, 7, 5, 6},
			"0": {0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 1, 0, 2, 0, 3, 0, 4, 0, 1, 7, 2, 7, 3, 7, 4, 7, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5, 5, 6},
			"1": {1, 2, 2, 2, 2, 1, 3, 1, 3, 0, 4, 0, 4, 1, 4, 2, 4, 3, 4, 4, 4, 5, 4, 6, 4, 7, 1, 7, 2, 7, 3, 7, 5, 7},
			"7": {0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 5, 1, 5, 2, 5, 3, 4, 3, 4, 4, 3, 4, 3, 5, 3, 6, 3, 7},
		},
	}
}
