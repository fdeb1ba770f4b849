// Package main renders the fireworks scenes in a terminal.
//
// Usage:
//
//	go run ./cmd/fireworks-tty [flags]
//
// Flags:
//
//	--scenes <list>     Scene layers, bottom first (default night,show,rockets)
//	--config <file>     External fireworks YAML config
//	--seed <n>          Random seed, 0 seeds from the current time
//	--mute              Start without sound
//	--verbose           Write logs to fireworks-tty.log
//	--profile <mode>    Enable profiling
//
// Controls:
//
//	Mouse Click       - Trigger every scene at the clicked cell
//	Space             - Trigger at the centre
//	M                 - Toggle sound
//	Q/Escape/Ctrl-C   - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/fireworks/data"
	"github.com/gonewx/fireworks/pkg/app"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/scenes"
	"github.com/gonewx/fireworks/pkg/utils"
)

var (
	scenesFlag  = flag.String("scenes", "", "Comma separated scene layers, bottom first (default night,show,rockets)")
	configFlag  = flag.String("config", "", "External fireworks YAML config (default: embedded data/fireworks.yaml)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed, 0 seeds from the current time")
	muteFlag    = flag.Bool("mute", false, "Start without sound")
	verboseFlag = flag.Bool("verbose", false, "Write logs to fireworks-tty.log")
	profileFlag = flag.String("profile", "", "Enable profiling: "+app.ProfileModes())
)

// maxFrameDelta 终端卡顿后单帧最多推进的时间
const maxFrameDelta = 0.1

// Viewer 终端烟花
type Viewer struct {
	screen   tcell.Screen
	surface  *render.TerminalSurface
	scenes   *game.SceneManager
	speaker  *game.SpeakerManager
	settings *game.SettingsManager
	clock    *utils.Clock
}

// NewViewer 初始化终端并创建场景
func NewViewer(names []string, cfg *config.FireworksConfig, rnd utils.Rand) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	settings := game.NewSettingsManager(app.OpenStorage())
	if err := settings.Load(); err != nil {
		log.Printf("[Viewer] Warning: %v, using default settings", err)
	}
	if *muteFlag {
		settings.SetSoundEnabled(false)
	}
	speaker := game.NewSpeakerManager(settings)
	if err := speaker.Initialize(); err != nil {
		log.Printf("[Viewer] Warning: no audio device: %v", err)
	}

	sm := game.NewSceneManager()
	sm.SetSceneFactory(scenes.NewFactory(scenes.Options{
		Config: cfg,
		Rand:   rnd,
		Sounds: speaker,
		Width:  config.GameWindowWidth,
		Height: config.GameWindowHeight,
	}))
	if err := sm.LoadScenes(names); err != nil {
		screen.Fini()
		speaker.Close()
		return nil, err
	}

	v := &Viewer{
		screen:   screen,
		scenes:   sm,
		speaker:  speaker,
		settings: settings,
		clock:    utils.NewClock(),
	}
	v.resize()
	return v, nil
}

// resize 按当前终端尺寸重建表面；逻辑尺寸保持不变
func (v *Viewer) resize() {
	v.screen.Sync()
	v.surface = render.NewTerminalSurface(v.screen, config.GameWindowWidth, config.GameWindowHeight)
	// 像素网格变了，场景需要重建各自的图层
	v.scenes.Resize(config.GameWindowWidth, config.GameWindowHeight)
	cols, rows := v.screen.Size()
	log.Printf("[Viewer] Terminal %dx%d", cols, rows)
}

// handleEvent 返回 false 表示退出
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M'):
			log.Printf("[Viewer] Sound enabled: %v", v.speaker.ToggleSound())
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.scenes.Trigger(config.GameWindowWidth/2, config.GameWindowHeight/2)
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			v.scenes.Trigger(v.surface.CellToLogical(col, row))
		}
	case *tcell.EventResize:
		v.resize()
	}
	return true
}

// frame 推进一帧并刷新终端
func (v *Viewer) frame(now time.Time) {
	v.clock.Update(now)
	dt := min(v.clock.Delta, maxFrameDelta)
	if dt <= 0 {
		dt = 1.0 / config.TicksPerSecond
	}
	v.scenes.Update(dt)

	v.surface.Clear()
	v.scenes.Draw(v.surface)
	v.surface.Present()
}

// Run 事件循环，直到用户退出
func (v *Viewer) Run() {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			v.frame(now)
		}
	}
}

// Close 关闭场景、音频和终端
func (v *Viewer) Close() {
	v.scenes.Close()
	v.speaker.Close()
	if err := v.settings.Save(); err != nil {
		log.Printf("[Viewer] Warning: failed to save settings: %v", err)
	}
	v.screen.Fini()
}

func setupLogging() (io.Closer, error) {
	if !*verboseFlag {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.Create("fireworks-tty.log")
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

func main() {
	flag.Parse()

	logFile, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	stop, err := app.StartProfile(*profileFlag, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer stop()

	names, err := scenes.ParseSceneList(*scenesFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	embedded.Init(data.Files)
	cfg, err := app.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rnd := utils.NewTimeSeededRand()
	if *seedFlag != 0 {
		rnd = utils.NewRand(*seedFlag)
	}

	viewer, err := NewViewer(names, cfg, rnd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.Close()

	viewer.Run()
}
