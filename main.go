// Package main 是烟花桌面版的入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose           输出详细日志
//	--scenes <list>     自下而上叠加的场景，默认 night,show,rockets
//	--config <file>     外部 YAML 配置，默认使用嵌入的 data/fireworks.yaml
//	--seed <n>          固定随机种子（0 表示按时间取种子）
//	--profile <mode>    性能分析：cpu|mem|block|mutex|goroutine|trace
//
// Controls:
//
//	Mouse Click / Tap   - 每个场景各自响应一次触发
//	M                   - 切换音效
//	F11                 - 切换全屏
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/fireworks/data"
	"github.com/gonewx/fireworks/pkg/app"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/scenes"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	scenesFlag  = flag.String("scenes", "", "Comma separated scene layers, bottom first (default night,show,rockets)")
	configFlag  = flag.String("config", "", "External fireworks YAML config (default: embedded data/fireworks.yaml)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed, 0 seeds from the current time")
	profileFlag = flag.String("profile", "", "Enable profiling: "+app.ProfileModes())
)

func main() {
	flag.Parse()

	stop, err := app.StartProfile(*profileFlag, "")
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	names, err := scenes.ParseSceneList(*scenesFlag)
	if err != nil {
		log.Fatal(err)
	}

	embedded.Init(data.Files)

	fireworks, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Scenes:     names,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer fireworks.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)
	ebiten.SetFullscreen(fireworks.Fullscreen())

	if err := ebiten.RunGame(fireworks); err != nil {
		log.Printf("[Main] %v", err)
	}
}
