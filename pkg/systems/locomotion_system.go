package systems

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// LocomotionSystem 逐帧推进所有角色的运动控制器
type LocomotionSystem struct {
	entityManager *ecs.EntityManager
	elapsed       float64
}

// NewLocomotionSystem 创建运动系统
func NewLocomotionSystem(em *ecs.EntityManager) *LocomotionSystem {
	return &LocomotionSystem{entityManager: em}
}

// Elapsed 返回累计运行时间（秒）
func (s *LocomotionSystem) Elapsed() float64 {
	return s.elapsed
}

// Update 推进一帧
// 地面取第一个 SurfaceComponent；没有地面实体时角色自由落体
func (s *LocomotionSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		deltaTime = config.ReferenceFrameTime
	}
	s.elapsed += deltaTime
	tick := locomotion.Tick{Elapsed: s.elapsed, Delta: deltaTime}

	var surface locomotion.SurfaceProvider
	if _, ground, ok := ecs.First[*components.SurfaceComponent](s.entityManager); ok {
		surface = ground.Provider
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LocomotionComponent](s.entityManager) {
		loco, _ := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, id)
		if loco.Controller == nil {
			continue
		}
		if loco.ResetRequested {
			loco.Controller.Reset()
			loco.ResetRequested = false
			loco.StallReported = false
			log.Info().Uint64("entity", uint64(id)).Msg("[Locomotion] character respawned")
		}

		prev := loco.Pose
		loco.Pose = loco.Controller.Update(tick, loco.Input, surface)
		s.report(id, loco, prev)
	}
}

// report 记录状态变化：起跳、落地、滞空警告（每次滞空只警告一次）
func (s *LocomotionSystem) report(id ecs.EntityID, loco *components.LocomotionComponent, prev locomotion.Pose) {
	pose := loco.Pose
	switch {
	case pose.Flags.JumpRequested:
		log.Debug().Uint64("entity", uint64(id)).Float64("y", pose.Transform.Position.Y()).Msg("[Locomotion] jump")
	case pose.Flags.Grounded && !prev.Flags.Grounded:
		log.Debug().Uint64("entity", uint64(id)).Float64("y", pose.Transform.Position.Y()).Msg("[Locomotion] landed")
	}

	if pose.Stalled && !loco.StallReported {
		loco.StallReported = true
		log.Warn().
			Uint64("entity", uint64(id)).
			Float64("airTime", pose.AirTime).
			Float64("y", pose.Transform.Position.Y()).
			Msg("[Locomotion] character is falling with no ground; surface never became ready")
	}
	if !pose.Stalled {
		loco.StallReported = false
	}
}
