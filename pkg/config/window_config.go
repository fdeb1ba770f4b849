package config

// 窗口配置常量
const (
	// GameWindowWidth 默认窗口宽度（逻辑像素）
	GameWindowWidth = 1280

	// GameWindowHeight 默认窗口高度（逻辑像素）
	GameWindowHeight = 720

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Fireworks"

	// TicksPerSecond 固定步长的更新频率
	TicksPerSecond = 60
)
