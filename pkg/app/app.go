// Package app 提供游戏应用的核心包装器
//
// 该包将场景装配逻辑从 main 包提取出来，main.go 只负责命令行解析、
// 日志初始化和 ebiten.RunGame。
package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/game"
	"github.com/decker502/stickwalk/pkg/locomotion"
	"github.com/decker502/stickwalk/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Profiles 已加载的运动配置集合
	Profiles *config.ProfileSet
	// Profile 启动时使用的配置名，为空则使用 Profiles.Default
	Profile string
	// MeshOverride 非空时所有配置改用该网格作为地面
	MeshOverride string
	// Parity 强制使用逐帧固定步长（与 60Hz 下的原始行为逐帧一致）
	Parity bool
	// Script 非空时由输入脚本驱动角色
	Script *locomotion.InputScript
	// HUDFont 非空时 HUD 使用该字体文件，否则使用内置字体
	HUDFont string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg                      Config
	sceneManager             *game.SceneManager
	resourceManager          *game.ResourceManager
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if cfg.Profiles == nil {
		return nil, errors.New("no locomotion profiles loaded")
	}
	if cfg.Profile == "" {
		cfg.Profile = cfg.Profiles.Default
	}

	a := &App{
		cfg:             cfg,
		sceneManager:    game.NewSceneManager(),
		resourceManager: game.NewResourceManager(),
	}
	a.sceneManager.SetSceneFactory(a.buildScene)
	if err := a.sceneManager.Load(cfg.Profile); err != nil {
		return nil, err
	}
	return a, nil
}

// buildScene 按配置名创建行走场景，并应用命令行覆盖项
func (a *App) buildScene(name string) (game.Scene, error) {
	base, err := a.cfg.Profiles.Profile(name)
	if err != nil {
		return nil, err
	}
	profile := *base
	if a.cfg.MeshOverride != "" {
		profile.Surface.Type = config.SurfaceMesh
		profile.Surface.Mesh = a.cfg.MeshOverride
	}
	if a.cfg.Parity {
		profile.Locomotion.StepMode = config.StepModeFixed
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}

	opts := scenes.WalkSceneOptions{Font: a.cfg.HUDFont}
	if a.cfg.Script != nil {
		script := *a.cfg.Script
		opts.Script = &script
	}
	return scenes.NewWalkScene(a.resourceManager, &profile, opts)
}

// NextProfile 返回 current 之后的配置名（按名称排序循环）
func NextProfile(names []string, current string) string {
	if len(names) == 0 {
		return current
	}
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.sceneManager.Close()
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// Tab 切换到下一个运动配置
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := NextProfile(a.cfg.Profiles.Names(), a.sceneManager.CurrentName())
		if err := a.sceneManager.Load(next); err != nil {
			log.Error().Err(err).Str("profile", next).Msg("[App] failed to switch profile")
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，窗口变化时通知场景更新宽高比
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
