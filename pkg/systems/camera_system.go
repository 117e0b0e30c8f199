package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/utils"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// CameraSystem 管理轨道镜头：拖拽环绕、滚轮缩放、平滑跟随角色，并计算视图/投影矩阵
type CameraSystem struct {
	entityManager *ecs.EntityManager
}

// NewCameraSystem 创建镜头系统
func NewCameraSystem(em *ecs.EntityManager) *CameraSystem {
	return &CameraSystem{entityManager: em}
}

// SetViewport 窗口尺寸变化时更新所有镜头的画面尺寸
func (cs *CameraSystem) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.CameraComponent](cs.entityManager) {
		cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, id)
		cam.ViewportWidth, cam.ViewportHeight = width, height
	}
}

// Update 更新镜头
func (cs *CameraSystem) Update(deltaTime float64) {
	s := 1.0
	if deltaTime > 0 {
		s = deltaTime / config.ReferenceFrameTime
	}
	for _, id := range ecs.GetEntitiesWith1[*components.CameraComponent](cs.entityManager) {
		cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, id)
		cs.applyOrbit(cam)
		cs.follow(cam, s)
		cam.View = mgl64.LookAtV(cam.Eye(), cam.Target, worldUp)
		cam.Projection = mgl64.Perspective(cam.FovY, cam.Aspect(), cam.Near, cam.Far)
	}
}

// applyOrbit 消费本帧的拖拽和滚轮增量
// 向右拖动镜头绕角色向左转，向下拖动抬高俯仰角
func (cs *CameraSystem) applyOrbit(cam *components.CameraComponent) {
	sens := mgl64.DegToRad(config.CameraOrbitSensitivity)
	cam.Azimuth -= cam.OrbitDX * sens
	cam.Elevation = mgl64.Clamp(cam.Elevation+cam.OrbitDY*sens, cam.MinElevation, cam.MaxElevation)
	if cam.ZoomSteps != 0 {
		cam.Distance *= math.Pow(config.CameraZoomFactor, cam.ZoomSteps)
	}
	cam.Distance = mgl64.Clamp(cam.Distance, cam.MinDistance, cam.MaxDistance)
	cam.OrbitDX, cam.OrbitDY, cam.ZoomSteps = 0, 0, 0
}

// follow 注视点平滑追随被跟随角色的躯干
func (cs *CameraSystem) follow(cam *components.CameraComponent, s float64) {
	if cam.Follow == ecs.InvalidEntity {
		return
	}
	loco, ok := ecs.GetComponent[*components.LocomotionComponent](cs.entityManager, cam.Follow)
	if !ok {
		return
	}
	goal := loco.Pose.Transform.Position.Add(mgl64.Vec3{0, cam.TargetHeight, 0})
	for i := range cam.Target {
		cam.Target[i] = utils.Damp(cam.Target[i], goal[i], config.CameraFollowRate, s)
	}
}
