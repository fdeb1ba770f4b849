package scenes

import (
	"log"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/ecs"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/gonewx/fireworks/pkg/utils"
)

// RocketScene launches a rocket every SpawnInterval seconds and on every click.
//
// The scene's clock advances once per Update; the rocket layer is cleared
// every frame so nothing persists between frames.
type RocketScene struct {
	em        *ecs.EntityManager
	clock     *utils.Clock
	scheduler *game.Scheduler
	rockets   *systems.RocketSystem

	width, height float64
	layer         layer
}

// NewRocketScene creates the scene and starts the periodic launcher.
func NewRocketScene(cfg *config.FireworksConfig, rnd utils.Rand, sounds game.SoundPlayer, width, height float64) *RocketScene {
	em := ecs.NewEntityManager()
	clock := utils.NewClock()
	s := &RocketScene{
		em:        em,
		clock:     clock,
		scheduler: game.NewScheduler(),
		rockets:   systems.NewRocketSystem(em, clock, &cfg.Rockets, rnd, sounds),
		width:     width,
		height:    height,
	}
	s.scheduler.Every(cfg.Rockets.SpawnInterval, s.launch)
	return s
}

func (s *RocketScene) launch() {
	if _, err := s.rockets.Launch(s.width, s.height); err != nil {
		log.Printf("[RocketScene] Warning: launch failed: %v", err)
	}
}

// Update advances the clock, runs due launches, then ticks every rocket.
func (s *RocketScene) Update(deltaTime float64) {
	s.clock.Advance(deltaTime)
	s.scheduler.Update(deltaTime)
	s.rockets.Update(deltaTime)
}

// Draw clears the rocket layer, renders every rocket and composites the layer.
func (s *RocketScene) Draw(surface render.Surface) {
	l, _ := s.layer.ensure(surface)
	clearSurface(l)
	s.rockets.Draw(l)
	surface.DrawLayer(l)
}

// Resize only affects rockets launched afterwards.
func (s *RocketScene) Resize(width, height float64) {
	s.width = width
	s.height = height
	s.layer.reset()
}

// Trigger launches one extra rocket. The click position is ignored.
func (s *RocketScene) Trigger(x, y float64) {
	s.launch()
}

// Count returns the number of rockets in the pool.
func (s *RocketScene) Count() int {
	return s.rockets.Count()
}

// Close stops the launcher and destroys every rocket.
func (s *RocketScene) Close() {
	s.scheduler.Reset()
	s.rockets.Reset()
	s.em.Clear()
	log.Printf("[RocketScene] Closed")
}
