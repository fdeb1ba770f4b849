// Package scenes 提供三个烟花场景：火箭、庆典与夜景
//
// 每个场景拥有自己的实体管理器与离屏图层，由 game.SceneManager 按层叠顺序
// 更新和合成。场景之间不共享任何可变状态。
package scenes

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

// Scene names accepted by NewFactory.
const (
	SceneNight   = "night"
	SceneShow    = "show"
	SceneRockets = "rockets"
)

// DefaultScenes is the bottom-up layer order used when none is requested.
var DefaultScenes = []string{SceneNight, SceneShow, SceneRockets}

// ParseSceneList parses a comma separated layer list such as "night,show".
// Empty input yields DefaultScenes.
func ParseSceneList(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return slices.Clone(DefaultScenes), nil
	}
	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !slices.Contains(DefaultScenes, name) {
			return nil, fmt.Errorf("unknown scene %q (want one of %s)", name, strings.Join(DefaultScenes, ", "))
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenes in %q", list)
	}
	return names, nil
}

// Options carries the shared dependencies every scene is built from.
type Options struct {
	Config *config.FireworksConfig
	Rand   utils.Rand
	Sounds game.SoundPlayer
	Width  float64
	Height float64
}

// NewFactory returns a scene factory for the SceneManager.
func NewFactory(opts Options) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		log.Printf("[Scenes] Creating scene %q (%.0fx%.0f)", name, opts.Width, opts.Height)
		switch name {
		case SceneRockets:
			return NewRocketScene(opts.Config, opts.Rand, opts.Sounds, opts.Width, opts.Height), nil
		case SceneShow:
			return NewShowScene(opts.Config, opts.Rand, opts.Sounds, opts.Width, opts.Height)
		case SceneNight:
			return NewNightScene(opts.Config, opts.Rand, opts.Width, opts.Height)
		default:
			return nil, fmt.Errorf("unknown scene %q", name)
		}
	}
}

// layer is an offscreen surface that follows the viewport size.
type layer struct {
	surface render.Surface
}

// ensure returns a layer matching the target's size, creating a fresh one
// when missing or when the size changed. fresh reports a new (blank) layer.
func (l *layer) ensure(target render.Surface) (surface render.Surface, fresh bool) {
	w, h := target.Size()
	if l.surface != nil {
		lw, lh := l.surface.Size()
		if lw == w && lh == h {
			return l.surface, false
		}
	}
	l.surface = target.NewLayer(w, h)
	return l.surface, true
}

// reset drops the layer so the next ensure creates a fresh one.
func (l *layer) reset() {
	l.surface = nil
}

// clearSurface wipes the whole layer.
func clearSurface(s render.Surface) {
	w, h := s.Size()
	s.ClearRect(0, 0, float64(w), float64(h))
}
