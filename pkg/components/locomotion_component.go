package components

import (
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// LocomotionComponent 角色运动状态
// Controller 持有全部物理状态；Input 和 Pose 是本帧的输入与输出，
// 由 InputSystem / LocomotionSystem 每帧覆盖
type LocomotionComponent struct {
	Controller *locomotion.Controller

	// Input 本帧按键快照
	Input locomotion.InputSnapshot

	// ResetRequested 本帧请求回到出生点（R 键）
	ResetRequested bool

	// Pose 最近一帧的运动结果
	Pose locomotion.Pose

	// StallReported 滞空警告已输出过，避免每帧重复
	StallReported bool
}
