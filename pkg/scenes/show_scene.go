package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/gonewx/fireworks/pkg/utils"
)

// ShowScene is the tick-based celebration: fuses, burst patterns, specials,
// chained sparks, light glows and the surprise text.
//
// Its layer persists between frames; every frame is first covered with a
// translucent backdrop so older frames fade into trails.
type ShowScene struct {
	cfg       *config.ShowConfig
	em        *ecs.EntityManager
	scheduler *game.Scheduler
	ctx       *systems.ShowContext

	fuses    *systems.FuseSystem
	bursts   *systems.BurstSystem
	glyphs   *systems.GlyphSystem
	specials *systems.SpecialSystem
	sparks   *systems.SparkSystem
	lights   *systems.LightSystem

	backdrop color.Color
	layer    layer
	repaint  bool // next Draw covers the layer with an opaque backdrop
}

// NewShowScene creates the scene and launches the initial fuses.
func NewShowScene(cfg *config.FireworksConfig, rnd utils.Rand, sounds game.SoundPlayer, width, height float64) (*ShowScene, error) {
	backdrop, err := render.ParseColor(cfg.Show.BackdropColor)
	if err != nil {
		return nil, err
	}
	scheduler := game.NewScheduler()
	ctx, err := systems.NewShowContext(cfg, rnd, scheduler, sounds, width, height)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	s := &ShowScene{
		cfg:       &cfg.Show,
		em:        em,
		scheduler: scheduler,
		ctx:       ctx,
		backdrop:  backdrop,
		repaint:   true,
	}
	s.sparks = systems.NewSparkSystem(em, ctx)
	s.specials = systems.NewSpecialSystem(em, ctx, s.sparks)
	s.bursts = systems.NewBurstSystem(em, ctx)
	s.glyphs = systems.NewGlyphSystem(em, ctx)
	s.fuses = systems.NewFuseSystem(em, ctx, s.bursts, s.specials)
	s.lights = systems.NewLightSystem(ctx)

	s.fuses.Spawn()
	log.Printf("[ShowScene] Started with %d fuses", s.fuses.Count())
	return s, nil
}

// pools returns the pools in update order.
func (s *ShowScene) pools() []systems.PoolSystem {
	return []systems.PoolSystem{s.fuses, s.bursts, s.glyphs, s.specials, s.sparks}
}

// Update runs due text timers, then advances every pool by one tick.
func (s *ShowScene) Update(deltaTime float64) {
	s.scheduler.Update(deltaTime)
	for _, pool := range s.pools() {
		pool.Update(deltaTime)
	}
}

// Draw fades the previous frame, then renders fuses, bursts, specials,
// sparks, the queued lights and finally the glyphs.
func (s *ShowScene) Draw(surface render.Surface) {
	l, fresh := s.layer.ensure(surface)
	w, h := l.Size()

	l.Save()
	l.SetCompositeMode(render.CompositeSourceOver)
	l.SetFillColor(s.backdrop)
	if !fresh && !s.repaint {
		l.SetGlobalAlpha(s.cfg.BackdropAlpha)
	}
	l.FillRect(0, 0, float64(w), float64(h))
	l.Restore()
	s.repaint = false

	l.Save()
	l.SetCompositeMode(render.CompositeScreen)
	for _, pool := range []systems.PoolSystem{s.fuses, s.bursts, s.specials, s.sparks, s.lights, s.glyphs} {
		pool.Draw(l)
	}
	l.Restore()

	surface.DrawLayer(l)
}

// Resize recentres future spawns and repaints the backdrop.
func (s *ShowScene) Resize(width, height float64) {
	s.ctx.Resize(width, height)
	s.layer.reset()
	s.repaint = true
}

// Trigger launches a round of specials.
func (s *ShowScene) Trigger(x, y float64) {
	s.specials.Launch()
}

// Context exposes the shared show state.
func (s *ShowScene) Context() *systems.ShowContext {
	return s.ctx
}

// Counts returns the pool sizes: fuses, bursts, glyphs, specials, sparks.
func (s *ShowScene) Counts() (fuses, bursts, glyphs, specials, sparks int) {
	return s.fuses.Count(), s.bursts.Count(), s.glyphs.Count(), s.specials.Count(), s.sparks.Count()
}

// Close cancels the text sequence and discards every entity.
func (s *ShowScene) Close() {
	s.ctx.Reset()
	s.scheduler.Reset()
	s.em.Clear()
	log.Printf("[ShowScene] Closed")
}
