package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., the walking sandbox).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，窗口尺寸变化时由 SceneManager 通知场景
type Resizable interface {
	Resize(width, height int)
}

// Closer 是一个可选接口，场景被替换时调用 Close 释放后台任务
type Closer interface {
	Close()
}
