// Package scenes 包含游戏场景
package scenes

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/entities"
	"github.com/decker502/stickwalk/pkg/game"
	"github.com/decker502/stickwalk/pkg/locomotion"
	"github.com/decker502/stickwalk/pkg/systems"
	"github.com/decker502/stickwalk/pkg/utils"
)

// WalkSceneOptions 可选的场景参数
type WalkSceneOptions struct {
	// Keys / Pointer 替换默认的 ebiten 输入来源（测试用）
	Keys    utils.KeySource
	Pointer systems.PointerSource
	// Script 非空时由脚本驱动角色
	Script *locomotion.InputScript
	// Font HUD 字体文件路径，为空或加载失败时使用内置字体
	Font string
}

// WalkScene 火柴人行走场景
//
// 每帧顺序：输入采样 → 运动控制 → 镜头 → HUD；绘制顺序：地面 → 阴影 → 火柴人 → HUD。
type WalkScene struct {
	profile         *config.Profile
	resourceManager *game.ResourceManager
	entityManager   *ecs.EntityManager

	ctx    context.Context
	cancel context.CancelFunc

	inputSystem      *systems.InputSystem
	locomotionSystem *systems.LocomotionSystem
	cameraSystem     *systems.CameraSystem
	renderSystem     *systems.RenderSystem
	hudSystem        *systems.HUDSystem

	characterEntity ecs.EntityID
	groundEntity    ecs.EntityID
	cameraEntity    ecs.EntityID
}

// NewWalkScene 按运动配置创建场景
// 网格地面在后台加载，场景创建后立即可以运行
func NewWalkScene(rm *game.ResourceManager, profile *config.Profile, opts WalkSceneOptions) (*WalkScene, error) {
	if rm == nil || profile == nil {
		return nil, fmt.Errorf("walk scene needs a resource manager and a profile")
	}

	em := ecs.NewEntityManager()
	ctx, cancel := context.WithCancel(context.Background())
	s := &WalkScene{
		profile:         profile,
		resourceManager: rm,
		entityManager:   em,
		ctx:             ctx,
		cancel:          cancel,
	}
	if err := s.initEntities(); err != nil {
		cancel()
		return nil, err
	}
	s.initSystems(opts)

	log.Info().
		Str("profile", profile.Name).
		Str("surface", string(profile.Surface.Type)).
		Str("stepMode", string(profile.Locomotion.StepMode)).
		Msg("[WalkScene] initialized")
	return s, nil
}

func (s *WalkScene) initEntities() error {
	var err error
	s.characterEntity, err = entities.NewCharacterEntity(s.entityManager, s.profile)
	if err != nil {
		return err
	}

	var loader locomotion.MeshLoader
	if s.profile.Surface.Type == config.SurfaceMesh {
		loader = s.resourceManager.MeshLoader(s.profile.Surface.Mesh)
	}
	s.groundEntity, err = entities.NewGroundEntity(s.ctx, s.entityManager, s.profile.Surface, loader)
	if err != nil {
		return err
	}

	s.cameraEntity, err = entities.NewCameraEntity(s.entityManager, s.profile.Camera, s.characterEntity, mgl64.Vec3(s.profile.Spawn))
	if err != nil {
		return err
	}
	_, err = entities.NewHUDEntity(s.entityManager, s.profile)
	return err
}

func (s *WalkScene) initSystems(opts WalkSceneOptions) {
	keys, pointer := opts.Keys, opts.Pointer
	if keys == nil {
		keys = utils.EbitenKeys{}
	}
	if pointer == nil {
		pointer = systems.EbitenPointer{}
	}
	s.inputSystem = systems.NewInputSystem(s.entityManager, utils.DefaultKeyBindings(), keys, pointer)
	if opts.Script != nil {
		s.inputSystem.SetScript(opts.Script)
	}

	s.locomotionSystem = systems.NewLocomotionSystem(s.entityManager)
	s.cameraSystem = systems.NewCameraSystem(s.entityManager)
	s.renderSystem = systems.NewRenderSystem(s.entityManager)

	s.hudSystem = systems.NewHUDSystem(s.entityManager, s.hudFace(opts.Font))
}

// hudFace 依次尝试指定字体和内置字体，都失败时返回 nil
func (s *WalkScene) hudFace(path string) text.Face {
	if path != "" {
		f, err := s.resourceManager.LoadFont(path, config.HUDFontSize)
		if err == nil {
			return f
		}
		log.Warn().Err(err).Str("font", path).Msg("[WalkScene] HUD font unavailable, using built-in font")
	}
	f, err := s.resourceManager.DefaultFont(config.HUDFontSize)
	if err != nil {
		log.Warn().Err(err).Msg("[WalkScene] built-in font unavailable, using debug print")
		return nil
	}
	return f
}

// Update 推进一帧
func (s *WalkScene) Update(deltaTime float64) {
	s.inputSystem.Update()
	s.locomotionSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)
	s.hudSystem.Update()
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *WalkScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.hudSystem.Draw(screen)
}

// Resize 窗口尺寸变化时更新镜头宽高比
func (s *WalkScene) Resize(width, height int) {
	s.cameraSystem.SetViewport(width, height)
}

// Close 取消后台网格加载
func (s *WalkScene) Close() {
	s.cancel()
}

// Profile 返回场景使用的运动配置
func (s *WalkScene) Profile() *config.Profile {
	return s.profile
}

// Pose 返回角色最近一帧的姿态
func (s *WalkScene) Pose() locomotion.Pose {
	loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.characterEntity)
	if !ok {
		return locomotion.Pose{}
	}
	return loco.Pose
}

// Ground 返回地面组件
func (s *WalkScene) Ground() *components.SurfaceComponent {
	ground, _ := ecs.GetComponent[*components.SurfaceComponent](s.entityManager, s.groundEntity)
	return ground
}

// Camera 返回镜头组件
func (s *WalkScene) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	return cam
}
