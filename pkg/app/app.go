// Package app 提供烟花应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	synth "github.com/gonewx/fireworks/internal/audio"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/scenes"
	"github.com/gonewx/fireworks/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "fireworks"

// EmbeddedConfigPath 嵌入的默认烟花配置
const EmbeddedConfigPath = "data/fireworks.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scenes 自下而上叠加的场景名，为空时使用 scenes.DefaultScenes
	Scenes []string
	// ConfigPath 外部 YAML 配置文件，为空时使用嵌入的配置
	ConfigPath string
	// Seed 随机种子，0 表示按时间取种子
	Seed uint64
}

// App 是烟花应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	surface         *render.EbitenSurface
	verbose         bool

	width, height int
	pointers      []image.Point

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fireworksConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	settingsManager := game.NewSettingsManager(OpenStorage())
	if err := settingsManager.Load(); err != nil {
		log.Printf("[App] Warning: %v, using default settings", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(int(synth.SampleRate))
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	audioManager.PreloadSounds()
	log.Printf("[App] AudioManager initialized")

	rnd := utils.NewTimeSeededRand()
	if cfg.Seed != 0 {
		rnd = utils.NewRand(cfg.Seed)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewFactory(scenes.Options{
		Config: fireworksConfig,
		Rand:   rnd,
		Sounds: audioManager,
		Width:  config.GameWindowWidth,
		Height: config.GameWindowHeight,
	}))

	names := cfg.Scenes
	if len(names) == 0 {
		names = scenes.DefaultScenes
	}
	if err := sceneManager.LoadScenes(names); err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	log.Printf("[App] Scenes: %v", sceneManager.Names())

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		surface:         render.NewEbitenSurface(nil),
		verbose:         cfg.Verbose,
		width:           config.GameWindowWidth,
		height:          config.GameWindowHeight,
	}, nil
}

// LoadConfig 读取烟花配置：外部文件优先，其次是嵌入文件，最后是内置默认值
func LoadConfig(path string) (*config.FireworksConfig, error) {
	if path != "" {
		cfg, err := config.LoadFireworksConfig(path)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded %s", path)
		return cfg, nil
	}
	if embedded.Exists(EmbeddedConfigPath) {
		data, err := embedded.ReadFile(EmbeddedConfigPath)
		if err != nil {
			return nil, fmt.Errorf("配置读取失败: %w", err)
		}
		cfg, err := config.ParseFireworksConfig(data)
		if err != nil {
			return nil, fmt.Errorf("嵌入配置无效: %w", err)
		}
		log.Printf("[Config] Loaded embedded %s", EmbeddedConfigPath)
		return cfg, nil
	}
	log.Printf("[Config] Using built-in defaults")
	return config.DefaultFireworksConfig(), nil
}

// OpenStorage 打开 gdata 存储；失败时返回 nil，设置只保存在内存中
func OpenStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage path: %s", path)
	}
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v", err)
		return nil
	}
	return m
}

// Update 更新逻辑
// 每个 tick 调用一次（每秒 config.TicksPerSecond 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !utils.IsMobile() {
		a.handleKeys()
	}

	a.pointers = utils.JustPressedPointers(a.pointers)
	for _, p := range a.pointers {
		a.sceneManager.Trigger(float64(p.X), float64(p.Y))
	}

	a.sceneManager.Update(1.0 / config.TicksPerSecond)
	return nil
}

// handleKeys F11 切换全屏，M 切换音效
func (a *App) handleKeys() {
	if utils.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	}
	if utils.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.audioManager.ToggleSound()
		log.Printf("[App] Sound enabled: %v", enabled)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.surface.Reset(screen)
	a.sceneManager.Draw(a.surface)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑尺寸跟随窗口尺寸，尺寸变化时通知所有场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.width, a.height
	}
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.sceneManager.Resize(float64(outsideWidth), float64(outsideHeight))
		log.Printf("[App] Resized to %dx%d", outsideWidth, outsideHeight)
	}
	return a.width, a.height
}

// Fullscreen 返回保存的全屏设置
func (a *App) Fullscreen() bool {
	return a.settingsManager.GetSettings().Fullscreen
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 关闭所有场景并保存设置
func (a *App) Close() {
	a.sceneManager.Close()
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}
