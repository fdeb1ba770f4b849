package entities

import (
	"math"
	"testing"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/utils"
)

func TestNewShell(t *testing.T) {
	cfg := config.DefaultFireworksConfig().Night.Shell
	r := utils.NewRand(5)

	for i := 0; i < 20; i++ {
		s := NewShell(&cfg, 800, 600, r)
		if s.X < 100 || s.X >= 700 || s.Y < 150 || s.Y >= 300 {
			t.Fatalf("burst point (%v, %v) out of range", s.X, s.Y)
		}
		if s.Y0 != 602 || s.LaunchY != 602 || s.X0 != s.X {
			t.Fatalf("launch (%v, %v)", s.X0, s.Y0)
		}
		if s.State != components.ShellAscend || s.Opacity != 1 || s.Velocity != cfg.Velocity {
			t.Fatalf("initial state %v opacity %v velocity %v", s.State, s.Opacity, s.Velocity)
		}
		if len(s.Particles) != cfg.ParticleCount {
			t.Fatalf("got %d particles", len(s.Particles))
		}
		for _, p := range s.Particles {
			if math.Hypot(p.VX, p.VY) > cfg.ParticleVelocity {
				t.Fatalf("particle speed %v > max", math.Hypot(p.VX, p.VY))
			}
			if p.X != s.X || p.Y != s.Y {
				t.Fatal("particles start at the burst point")
			}
		}
	}
}

func TestNewLeafDriftsInward(t *testing.T) {
	cfg := config.DefaultFireworksConfig().Night.Leaf
	r := utils.NewRand(2)
	for i := 0; i < 100; i++ {
		l := NewLeaf(&cfg, 800, r)
		if l.Y != -cfg.Offset || l.VY != cfg.VelocityY {
			t.Fatalf("leaf start y %v vy %v", l.Y, l.VY)
		}
		if l.X <= 400 && l.VX < 0 || l.X > 400 && l.VX > 0 {
			t.Fatalf("leaf at x=%v drifts outward (vx=%v)", l.X, l.VX)
		}
		if math.Abs(l.DeltaTheta) > cfg.DeltaTheta || l.Rate < 0.4 || l.Rate >= 0.8 {
			t.Fatalf("leaf rate %v dtheta %v", l.Rate, l.DeltaTheta)
		}
	}
}

func TestNewStar(t *testing.T) {
	cfg := config.DefaultFireworksConfig().Night.Star
	s := NewStar(&cfg, 800, 600, utils.NewRand(3))
	if s.Count != s.MaxCount || s.MaxCount < 100 || s.MaxCount >= 1000 {
		t.Errorf("count %d / max %d", s.Count, s.MaxCount)
	}
	if s.Theta != 0 || s.Phi != 0 {
		t.Errorf("star must start dark and unrotated")
	}
}

func TestNewTwigs(t *testing.T) {
	twigs := NewTwigs(1000, 500)
	if len(twigs) != 4 {
		t.Fatalf("got %d twigs, want 4", len(twigs))
	}
	for _, tw := range twigs {
		if tw.Rate != 1 {
			t.Errorf("rate %v, want min(w, h)/500 = 1", tw.Rate)
		}
		if (tw.X != 0 && tw.X != 1000) || (tw.Y != 0 && tw.Y != 500) {
			t.Errorf("twig at (%v, %v) is not in a corner", tw.X, tw.Y)
		}
	}
}
