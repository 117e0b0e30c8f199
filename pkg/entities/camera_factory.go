package entities

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
)

// NewCameraEntity 创建跟随 target 的轨道镜头
// 初始注视点直接放在目标的出生点上，避免第一帧从原点飞过去
func NewCameraEntity(em *ecs.EntityManager, cfg config.CameraConfig, target ecs.EntityID, start mgl64.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, ErrNilEntityManager
	}
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.CameraComponent{
		Distance:       cfg.Distance,
		Azimuth:        mgl64.DegToRad(cfg.Azimuth),
		Elevation:      mgl64.DegToRad(cfg.Elevation),
		FovY:           mgl64.DegToRad(cfg.FovY),
		MinDistance:    config.CameraMinDistance,
		MaxDistance:    config.CameraMaxDistance,
		MinElevation:   mgl64.DegToRad(config.CameraMinElevation),
		MaxElevation:   mgl64.DegToRad(config.CameraMaxElevation),
		Follow:         target,
		TargetHeight:   config.CameraTargetHeight,
		Target:         start.Add(mgl64.Vec3{0, config.CameraTargetHeight, 0}),
		ViewportWidth:  config.WindowWidth,
		ViewportHeight: config.WindowHeight,
		Near:           config.CameraNear,
		Far:            config.CameraFar,
	})
	return entityID, nil
}
