package game

import (
	"github.com/gonewx/fireworks/pkg/render"
)

// Scene represents one layer of the show (rockets, celebration, night sky).
// Each scene owns its pools and is driven once per tick by the SceneManager.
type Scene interface {
	// Update advances the scene by one tick.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene onto the provided surface.
	Draw(surface render.Surface)
}

// Resizable 视口尺寸变化时收到通知的场景
// 只影响之后生成的实体，已有实体保持原位。
type Resizable interface {
	Resize(width, height float64)
}

// Triggerable 响应点击/触摸的场景（例如在点击处立即发射）
type Triggerable interface {
	Trigger(x, y float64)
}

// Closer 场景销毁时需要释放资源的场景
//
// 所有延迟生成（定时器）都必须在 Close 中取消，
// 否则回调会在场景销毁后继续向已经不存在的池中添加实体。
type Closer interface {
	Close()
}
