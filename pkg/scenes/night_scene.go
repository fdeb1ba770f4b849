package scenes

import (
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/entities"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/gonewx/fireworks/pkg/utils"
)

// NightScene is the decorative night sky: corner twigs, falling leaves,
// twinkling stars and three-stage fireworks.
//
// Two layers are kept. The sky layer persists and is covered each frame with
// a translucent sky colour that brightens while a firework is bursting. The
// twig layer (stars, twigs, leaves) is cleared every frame.
type NightScene struct {
	cfg *config.NightConfig
	rnd utils.Rand
	em  *ecs.EntityManager

	shells *systems.ShellSystem
	stars  *systems.StarSystem
	twigs  *systems.TwigSystem
	leaves *systems.LeafSystem

	leafCountdown     int // 距离下一片落叶的帧数
	fireworkCountdown int // 距离下一枚烟花的帧数
	maxOpacity        float64

	width, height float64
	sky           layer
	foreground    layer
}

// NewNightScene creates the scene with one leaf, one firework, the stars and
// the four corner twigs.
func NewNightScene(cfg *config.FireworksConfig, rnd utils.Rand, width, height float64) (*NightScene, error) {
	night := &cfg.Night
	em := ecs.NewEntityManager()

	leaves, err := systems.NewLeafSystem(em, &night.Leaf, rnd, width, height)
	if err != nil {
		return nil, err
	}
	twigs, err := systems.NewTwigSystem(em, &night.Twig)
	if err != nil {
		return nil, err
	}

	s := &NightScene{
		cfg:    night,
		rnd:    rnd,
		em:     em,
		shells: systems.NewShellSystem(em, &night.Shell, rnd),
		stars:  systems.NewStarSystem(em, &night.Star, rnd, width, height),
		twigs:  twigs,
		leaves: leaves,
		width:  width,
		height: height,
	}

	s.addTwigs()
	s.leaves.Spawn()
	s.stars.Spawn(night.StarCount)
	s.shells.Spawn(width, height)

	s.leafCountdown = night.LeafInterval.SampleInt(rnd)
	s.fireworkCountdown = night.FireworkInterval.SampleInt(rnd)
	log.Printf("[NightScene] Started: %d stars, next leaf in %d frames, next firework in %d frames",
		s.stars.Count(), s.leafCountdown, s.fireworkCountdown)
	return s, nil
}

func (s *NightScene) addTwigs() {
	for _, twig := range entities.NewTwigs(s.width, s.height) {
		s.twigs.Add(twig)
	}
}

// Update advances every pool by one frame and spawns leaves and fireworks
// when their countdowns run out.
func (s *NightScene) Update(deltaTime float64) {
	// 天空亮度取本帧推进之前的烟花亮度
	s.maxOpacity = s.shells.MaxOpacity()

	s.shells.Update(deltaTime)
	s.stars.Update(deltaTime)
	s.twigs.Update(deltaTime)
	s.leaves.Update(deltaTime)

	s.leafCountdown--
	if s.leafCountdown <= 0 {
		s.leaves.Spawn()
		s.leafCountdown = s.cfg.LeafInterval.SampleInt(s.rnd)
	}
	s.fireworkCountdown--
	if s.fireworkCountdown <= 0 {
		s.shells.Spawn(s.width, s.height)
		s.fireworkCountdown = s.cfg.FireworkInterval.SampleInt(s.rnd)
	}
}

// SkyLuminance is the sky lightness for the current frame.
func (s *NightScene) SkyLuminance() float64 {
	return s.cfg.SkyLuminanceBase + s.maxOpacity*s.cfg.SkyLuminanceGain
}

// Draw covers the sky layer, renders fireworks onto it, redraws the
// foreground layer and composites both.
func (s *NightScene) Draw(surface render.Surface) {
	sky, _ := s.sky.ensure(surface)
	fg, _ := s.foreground.ensure(surface)
	w, h := sky.Size()

	clearSurface(fg)

	sky.Save()
	sky.SetFillColor(render.HSLA(s.cfg.SkyHue, s.cfg.SkySaturation, s.SkyLuminance(), s.cfg.SkyAlpha))
	sky.FillRect(0, 0, float64(w), float64(h))
	sky.Restore()
	s.shells.Draw(sky)

	s.stars.Draw(fg)
	s.twigs.Draw(fg)
	s.leaves.Draw(fg)

	surface.DrawLayer(sky)
	surface.DrawLayer(fg)
}

// Resize moves the twigs to the new corners and updates spawn bounds.
func (s *NightScene) Resize(width, height float64) {
	s.width = width
	s.height = height
	s.leaves.Resize(width, height)
	s.stars.Resize(width, height)
	s.sky.reset()
	s.foreground.reset()

	for _, id := range ecs.GetEntitiesWith1[*components.TwigComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()
	s.addTwigs()
}

// Counts returns the pool sizes: shells, stars, twigs, leaves.
func (s *NightScene) Counts() (shells, stars, twigs, leaves int) {
	return s.shells.Count(), s.stars.Count(), s.twigs.Count(), s.leaves.Count()
}

// Close discards every entity.
func (s *NightScene) Close() {
	s.em.Clear()
	log.Printf("[NightScene] Closed")
}
