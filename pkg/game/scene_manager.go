package game

import (
	"fmt"
	"log"

	"github.com/gonewx/fireworks/pkg/render"
)

// SceneFactory 根据场景名创建场景
// 由 app 注入，避免 game 包依赖具体的场景实现
type SceneFactory func(name string) (Scene, error)

// SceneManager 管理按顺序叠放的场景
//
// 每个 tick 按加入顺序 Update 每个场景一次，Draw 时自底向上绘制，
// 因此后加入的场景覆盖在先加入的场景之上。
type SceneManager struct {
	scenes       []Scene
	names        []string
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no scenes; use Push or LoadScenes to add them.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// Push 在最上层加入一个场景
func (sm *SceneManager) Push(name string, scene Scene) {
	sm.scenes = append(sm.scenes, scene)
	sm.names = append(sm.names, name)
}

// SwitchTo 关闭所有场景，只保留 scene
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	sm.Close()
	sm.Push(name, scene)
}

// LoadScenes 关闭当前场景并按顺序创建 names 中的场景
//
// 任何一个场景创建失败都会关闭已创建的场景并返回错误。
func (sm *SceneManager) LoadScenes(names []string) error {
	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}
	sm.Close()
	for _, name := range names {
		scene, err := sm.sceneFactory(name)
		if err != nil {
			sm.Close()
			return fmt.Errorf("failed to create scene %q: %w", name, err)
		}
		sm.Push(name, scene)
		log.Printf("[SceneManager] Loaded scene: %s", name)
	}
	return nil
}

// GetCurrentScene 返回最上层的场景，没有场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	if len(sm.scenes) == 0 {
		return nil
	}
	return sm.scenes[len(sm.scenes)-1]
}

// Names 返回场景名（自底向上）
func (sm *SceneManager) Names() []string {
	return append([]string(nil), sm.names...)
}

// Len 返回场景数量
func (sm *SceneManager) Len() int {
	return len(sm.scenes)
}

// Update updates every scene once, bottom layer first.
func (sm *SceneManager) Update(deltaTime float64) {
	for _, scene := range sm.scenes {
		scene.Update(deltaTime)
	}
}

// Draw renders every scene bottom-up onto the provided surface.
func (sm *SceneManager) Draw(surface render.Surface) {
	for _, scene := range sm.scenes {
		scene.Draw(surface)
	}
}

// Resize 通知所有实现了 Resizable 的场景
func (sm *SceneManager) Resize(width, height float64) {
	for _, scene := range sm.scenes {
		if r, ok := scene.(Resizable); ok {
			r.Resize(width, height)
		}
	}
}

// Trigger 把点击转发给所有实现了 Triggerable 的场景
func (sm *SceneManager) Trigger(x, y float64) {
	for _, scene := range sm.scenes {
		if t, ok := scene.(Triggerable); ok {
			t.Trigger(x, y)
		}
	}
}

// Close 自顶向下关闭并移除所有场景
func (sm *SceneManager) Close() {
	for i := len(sm.scenes) - 1; i >= 0; i-- {
		if c, ok := sm.scenes[i].(Closer); ok {
			c.Close()
		}
		log.Printf("[SceneManager] Closed scene: %s", sm.names[i])
	}
	sm.scenes = nil
	sm.names = nil
}
