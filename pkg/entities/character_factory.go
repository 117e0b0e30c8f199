package entities

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// ErrNilEntityManager 实体管理器为 nil
var ErrNilEntityManager = errors.New("entity manager cannot be nil")

// FigureColor 火柴人线条颜色
var FigureColor = color.RGBA{R: 235, G: 235, B: 240, A: 255}

// NewCharacterEntity 创建火柴人角色实体
//
// 参数:
//   - em: 实体管理器
//   - profile: 运动配置（运动参数和出生点）
//
// 返回:
//   - ecs.EntityID: 角色实体ID
//   - error: 配置无效时返回错误
func NewCharacterEntity(em *ecs.EntityManager, profile *config.Profile) (ecs.EntityID, error) {
	if em == nil {
		return 0, ErrNilEntityManager
	}
	if profile == nil {
		return 0, fmt.Errorf("profile cannot be nil")
	}
	if err := profile.Locomotion.Validate(); err != nil {
		return 0, fmt.Errorf("character %q: %w", profile.Name, err)
	}

	spawn := mgl64.Vec3(profile.Spawn)
	controller := locomotion.NewController(profile.Locomotion, spawn)

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.LocomotionComponent{
		Controller: controller,
		Pose: locomotion.Pose{
			Transform:   controller.Transform(),
			GroundLevel: controller.GroundLevel(),
		},
	})
	ecs.AddComponent(em, entityID, &components.FigureComponent{
		HipHeight:         config.FigureHipHeight,
		ShoulderHeight:    config.FigureShoulderHeight,
		NeckHeight:        config.FigureNeckHeight,
		HeadRadius:        config.FigureHeadRadius,
		HipHalfWidth:      config.FigureHipHalfWidth,
		ShoulderHalfWidth: config.FigureShoulderHalf,
		ArmLength:         config.FigureArmLength,
		LegLength:         config.FigureLegLength,
		Color:             FigureColor,
		LineWidth:         2.5,
	})
	ecs.AddComponent(em, entityID, &components.ShadowComponent{
		Radius:     config.FigureShadowRadius,
		Alpha:      0.55,
		FadeHeight: 4,
		Segments:   16,
		Color:      color.RGBA{A: 255},
	})
	return entityID, nil
}
