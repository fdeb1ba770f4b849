package scenes

import (
	"strings"
	"testing"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/utils"
)

const (
	testWidth  = 800
	testHeight = 600
	tick       = 1.0 / config.TicksPerSecond
)

type soundLog struct {
	played map[game.SoundCue]int
}

func newSoundLog() *soundLog {
	return &soundLog{played: make(map[game.SoundCue]int)}
}

func (s *soundLog) PlaySound(cue game.SoundCue) bool {
	s.played[cue]++
	return true
}

func testConfig(t *testing.T) *config.FireworksConfig {
	t.Helper()
	cfg := config.DefaultFireworksConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return cfg
}

func newTestRaster() *render.Raster {
	return render.NewRaster(testWidth, testHeight, 0.25)
}

func TestRocketScene_TriggerLaunches(t *testing.T) {
	sounds := newSoundLog()
	s := NewRocketScene(testConfig(t), utils.NewRand(1), sounds, testWidth, testHeight)

	s.Trigger(10, 10)
	if s.Count() != 1 {
		t.Fatalf("Count after trigger = %d, want 1", s.Count())
	}
	if sounds.played[game.SoundLaunch] != 1 {
		t.Errorf("launch cues = %d, want 1", sounds.played[game.SoundLaunch])
	}

	for i := 0; i < 5; i++ {
		s.Update(tick)
	}
	surface := newTestRaster()
	s.Draw(surface)
	if surface.CoveredPixels() == 0 {
		t.Error("rocket thrust should be visible after a few ticks")
	}
}

func TestRocketScene_PeriodicSpawn(t *testing.T) {
	sounds := newSoundLog()
	cfg := testConfig(t)
	s := NewRocketScene(cfg, utils.NewRand(2), sounds, testWidth, testHeight)

	// 2 秒内按 0.5 秒间隔自动发射
	for i := 0; i < 2*config.TicksPerSecond+1; i++ {
		s.Update(tick)
	}
	launches := sounds.played[game.SoundLaunch]
	if launches < 3 || launches > 4 {
		t.Errorf("launches in 2s = %d, want 3..4", launches)
	}
	if s.Count() == 0 {
		t.Error("rocket pool should not be empty")
	}
}

func TestRocketScene_CloseStopsLauncher(t *testing.T) {
	sounds := newSoundLog()
	s := NewRocketScene(testConfig(t), utils.NewRand(3), sounds, testWidth, testHeight)
	s.Trigger(0, 0)
	s.Close()
	if s.Count() != 0 {
		t.Fatalf("Count after Close = %d, want 0", s.Count())
	}
	for i := 0; i < config.TicksPerSecond; i++ {
		s.Update(tick)
	}
	if s.Count() != 0 {
		t.Errorf("closed scene launched %d rockets", s.Count())
	}
}

func TestRocketScene_ClearsLayerEachFrame(t *testing.T) {
	s := NewRocketScene(testConfig(t), utils.NewRand(4), nil, testWidth, testHeight)
	s.Trigger(0, 0)
	for i := 0; i < 5; i++ {
		s.Update(tick)
	}
	s.Draw(newTestRaster())
	s.Close()

	surface := newTestRaster()
	s.Draw(surface)
	if n := surface.CoveredPixels(); n != 0 {
		t.Errorf("empty scene drew %d pixels", n)
	}
}

func TestShowScene_Lifecycle(t *testing.T) {
	sounds := newSoundLog()
	cfg := testConfig(t)
	s, err := NewShowScene(cfg, utils.NewRand(5), sounds, testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewShowScene failed: %v", err)
	}

	fuses, _, _, _, _ := s.Counts()
	if fuses != cfg.Show.FireNumber {
		t.Fatalf("fuses = %d, want %d", fuses, cfg.Show.FireNumber)
	}
	if sounds.played[game.SoundLaunch] != cfg.Show.FireNumber {
		t.Errorf("launch cues = %d, want %d", sounds.played[game.SoundLaunch], cfg.Show.FireNumber)
	}

	for i := 0; i < 600; i++ {
		s.Update(tick)
	}
	if s.Context().Fired == 0 {
		t.Error("no fuse detonated in 600 ticks")
	}
	fuses, _, _, _, _ = s.Counts()
	if fuses != cfg.Show.FireNumber {
		t.Errorf("fuse pool size changed to %d", fuses)
	}

	s.Close()
	fuses, bursts, glyphs, specials, sparks := s.Counts()
	if fuses+bursts+glyphs+specials+sparks != 0 {
		t.Errorf("pools not empty after Close: %d %d %d %d %d", fuses, bursts, glyphs, specials, sparks)
	}
	if s.Context().Fired != 0 {
		t.Errorf("Fired = %d after Close, want 0", s.Context().Fired)
	}
}

func TestShowScene_TriggerLaunchesSpecials(t *testing.T) {
	s, err := NewShowScene(testConfig(t), utils.NewRand(6), nil, testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewShowScene failed: %v", err)
	}
	s.Trigger(0, 0)
	_, _, _, specials, _ := s.Counts()
	if specials != 5 {
		t.Errorf("specials = %d, want 5", specials)
	}
}

func TestShowScene_DrawBackdrop(t *testing.T) {
	s, err := NewShowScene(testConfig(t), utils.NewRand(7), nil, testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewShowScene failed: %v", err)
	}
	surface := newTestRaster()
	s.Draw(surface)

	c := surface.At(2, 2)
	if c.A != 255 || c.R != 0 || c.G != 0 {
		t.Errorf("first frame backdrop = %+v, want opaque #000003", c)
	}
}

func TestShowScene_ResizeRecentres(t *testing.T) {
	s, err := NewShowScene(testConfig(t), utils.NewRand(8), nil, testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewShowScene failed: %v", err)
	}
	s.Resize(400, 200)
	if c := s.Context().Center; c.X != 200 || c.Y != 100 {
		t.Errorf("center = %+v, want (200, 100)", c)
	}
}

func TestShowScene_BadBackdrop(t *testing.T) {
	cfg := testConfig(t)
	cfg.Show.BackdropColor = "not-a-colour"
	if _, err := NewShowScene(cfg, utils.NewRand(9), nil, testWidth, testHeight); err == nil {
		t.Error("expected error for invalid backdrop colour")
	}
}

func TestNightScene_InitialPools(t *testing.T) {
	cfg := testConfig(t)
	s, err := NewNightScene(cfg, utils.NewRand(10), testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewNightScene failed: %v", err)
	}
	shells, stars, twigs, leaves := s.Counts()
	if shells != 1 || stars != cfg.Night.StarCount || twigs != 4 || leaves != 1 {
		t.Errorf("Counts = (%d, %d, %d, %d), want (1, %d, 4, 1)", shells, stars, twigs, leaves, cfg.Night.StarCount)
	}
	if got := s.SkyLuminance(); got != cfg.Night.SkyLuminanceBase {
		t.Errorf("SkyLuminance = %v, want %v", got, cfg.Night.SkyLuminanceBase)
	}
}

func TestNightScene_SpawnCountdowns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Night.LeafInterval = particle.Fixed(5)
	cfg.Night.FireworkInterval = particle.Fixed(7)
	s, err := NewNightScene(cfg, utils.NewRand(11), testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewNightScene failed: %v", err)
	}

	tests := []struct {
		name   string
		frames int
		shells int
		leaves int
	}{
		{"第4帧之前无新实体", 4, 1, 1},
		{"第5帧生成落叶", 1, 1, 2},
		{"第7帧生成烟花", 2, 2, 2},
		{"第10帧再生成落叶", 3, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.frames; i++ {
				s.Update(tick)
			}
			shells, _, _, leaves := s.Counts()
			if shells != tt.shells || leaves != tt.leaves {
				t.Errorf("shells=%d leaves=%d, want %d %d", shells, leaves, tt.shells, tt.leaves)
			}
		})
	}
}

func TestNightScene_DrawAndResize(t *testing.T) {
	s, err := NewNightScene(testConfig(t), utils.NewRand(12), testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewNightScene failed: %v", err)
	}
	s.Update(tick)
	surface := newTestRaster()
	s.Draw(surface)
	if c := surface.At(testWidth/2, testHeight/2); c.A == 0 {
		t.Error("sky should cover the centre")
	}

	s.Resize(400, 300)
	_, _, twigs, _ := s.Counts()
	if twigs != 4 {
		t.Errorf("twigs after resize = %d, want 4", twigs)
	}

	s.Close()
	shells, stars, twigs, leaves := s.Counts()
	if shells+stars+twigs+leaves != 0 {
		t.Error("pools should be empty after Close")
	}
}

func TestNightScene_BadTwigColour(t *testing.T) {
	cfg := testConfig(t)
	cfg.Night.Twig.Color = "bogus"
	if _, err := NewNightScene(cfg, utils.NewRand(13), testWidth, testHeight); err == nil {
		t.Error("expected error for invalid twig colour")
	}
}

func TestFactory(t *testing.T) {
	opts := Options{Config: testConfig(t), Rand: utils.NewRand(14), Width: testWidth, Height: testHeight}

	tests := []struct {
		name    string
		wantErr bool
	}{
		{SceneNight, false},
		{SceneShow, false},
		{SceneRockets, false},
		{"unknown", true},
	}
	factory := NewFactory(opts)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := factory(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("factory(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && scene == nil {
				t.Error("scene should not be nil")
			}
		})
	}
}

func TestFactory_SceneManagerLayers(t *testing.T) {
	sm := game.NewSceneManager()
	sm.SetSceneFactory(NewFactory(Options{Config: testConfig(t), Rand: utils.NewRand(15), Width: testWidth, Height: testHeight}))
	if err := sm.LoadScenes(DefaultScenes); err != nil {
		t.Fatalf("LoadScenes failed: %v", err)
	}
	if sm.Len() != 3 {
		t.Fatalf("Len = %d, want 3", sm.Len())
	}
	for i := 0; i < 10; i++ {
		sm.Update(tick)
	}
	sm.Trigger(1, 1)
	surface := newTestRaster()
	sm.Draw(surface)
	if surface.CoveredPixels() == 0 {
		t.Error("layered scenes drew nothing")
	}
	sm.Close()
	if sm.Len() != 0 {
		t.Errorf("Len after Close = %d", sm.Len())
	}
}

func TestParseSceneList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"空字符串使用默认", "", DefaultScenes, false},
		{"单个场景", "rockets", []string{"rockets"}, false},
		{"空格与大小写", " Night , SHOW ", []string{"night", "show"}, false},
		{"忽略空项", "night,,rockets,", []string{"night", "rockets"}, false},
		{"未知场景", "night,day", nil, true},
		{"只有逗号", ",,", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSceneList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSceneList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ParseSceneList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
