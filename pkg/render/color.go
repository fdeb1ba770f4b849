package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent 完全透明
var Transparent = color.NRGBA{}

// HSL 按 CSS 习惯构造颜色：hue 为角度，saturation/lightness 为百分比 (0-100)
func HSL(hue, saturation, lightness float64) color.NRGBA {
	return HSLA(hue, saturation, lightness, 1)
}

// HSLA 同 HSL，alpha 范围 0-1
func HSLA(hue, saturation, lightness, alpha float64) color.NRGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	c := colorful.Hsl(hue, clamp01(saturation/100), clamp01(lightness/100)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// WithAlpha 返回替换了 alpha 的颜色（0-1）
func WithAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(clamp01(alpha) * 255))
	return n
}

// ParseColor 解析 CSS 风格的颜色字符串
//
// 支持 #rgb、#rrggbb、#rrggbbaa、rgb()/rgba()、hsl()/hsla() 以及
// "transparent"/"white"/"black"。
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return nil, fmt.Errorf("empty color")
	case "transparent":
		return Transparent, nil
	case "white":
		return color.NRGBA{255, 255, 255, 255}, nil
	case "black":
		return color.NRGBA{0, 0, 0, 255}, nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("unsupported color %q", s)
	}
	fn := s[:open]
	args := strings.Split(s[open+1:len(s)-1], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	switch fn {
	case "hsl", "hsla":
		if len(args) != 3 && len(args) != 4 {
			return nil, fmt.Errorf("%s expects 3 or 4 arguments: %q", fn, s)
		}
		h, err := parseNumber(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid hue in %q: %w", s, err)
		}
		sat, err := parseNumber(strings.TrimSuffix(args[1], "%"))
		if err != nil {
			return nil, fmt.Errorf("invalid saturation in %q: %w", s, err)
		}
		light, err := parseNumber(strings.TrimSuffix(args[2], "%"))
		if err != nil {
			return nil, fmt.Errorf("invalid lightness in %q: %w", s, err)
		}
		alpha := 1.0
		if len(args) == 4 {
			if alpha, err = parseAlpha(args[3]); err != nil {
				return nil, fmt.Errorf("invalid alpha in %q: %w", s, err)
			}
		}
		return HSLA(h, sat, light, alpha), nil

	case "rgb", "rgba":
		if len(args) != 3 && len(args) != 4 {
			return nil, fmt.Errorf("%s expects 3 or 4 arguments: %q", fn, s)
		}
		var ch [3]uint8
		for i := 0; i < 3; i++ {
			v, err := parseNumber(args[i])
			if err != nil {
				return nil, fmt.Errorf("invalid channel in %q: %w", s, err)
			}
			ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
		}
		alpha := 1.0
		if len(args) == 4 {
			var err error
			if alpha, err = parseAlpha(args[3]); err != nil {
				return nil, fmt.Errorf("invalid alpha in %q: %w", s, err)
			}
		}
		return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(math.Round(alpha * 255))}, nil
	}

	return nil, fmt.Errorf("unsupported color function %q", fn)
}

// MustParseColor 解析失败时 panic，仅用于常量表
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (color.Color, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		// #rgb -> #rrggbb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		alpha, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
	default:
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "deg")
	return strconv.ParseFloat(s, 64)
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := parseNumber(strings.TrimSuffix(s, "%"))
		return clamp01(v / 100), err
	}
	v, err := parseNumber(s)
	return clamp01(v), err
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
