package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/locomotion"
	"github.com/decker502/stickwalk/pkg/utils"
)

// PointerSource 指针与滚轮状态来源
type PointerSource interface {
	// Pointer 返回指针是否按下及其屏幕坐标
	Pointer() (pressed bool, x, y int)
	// Wheel 返回本帧滚轮竖直增量
	Wheel() float64
}

// EbitenPointer 读取 ebiten 的鼠标/触摸和滚轮状态
type EbitenPointer struct{}

// Pointer 返回指针状态
func (EbitenPointer) Pointer() (bool, int, int) { return utils.GetPointerState() }

// Wheel 返回滚轮竖直增量
func (EbitenPointer) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

// InputSystem 每帧采样键盘和指针
//
// 键盘状态转换为 InputSnapshot 写入角色的 LocomotionComponent；
// 拖拽和滚轮写入镜头的 CameraComponent。没有输入缓冲，只看当前帧。
type InputSystem struct {
	entityManager *ecs.EntityManager
	keys          utils.KeySource
	pointer       PointerSource
	bindings      utils.KeyBindings
	drag          *utils.DragManager
	// script 非空时代替键盘驱动角色，指针仍然生效
	script *locomotion.InputScript
	frame  int
}

// NewInputSystem 创建输入系统
// 运行时 keys 为 utils.EbitenKeys，pointer 为 EbitenPointer
func NewInputSystem(em *ecs.EntityManager, bindings utils.KeyBindings, keys utils.KeySource, pointer PointerSource) *InputSystem {
	return &InputSystem{
		entityManager: em,
		keys:          keys,
		pointer:       pointer,
		bindings:      bindings,
		drag:          utils.NewDragManager(),
	}
}

// SetScript 用输入脚本驱动角色；脚本结束后角色保持静止
func (s *InputSystem) SetScript(script *locomotion.InputScript) {
	s.script = script
	s.frame = 0
}

// Snapshot 读取当前按住的按键
func (s *InputSystem) Snapshot() locomotion.InputSnapshot {
	b := s.bindings
	return locomotion.InputSnapshot{
		Forward:   utils.AnyPressed(s.keys, b.Forward),
		Backward:  utils.AnyPressed(s.keys, b.Backward),
		TurnLeft:  utils.AnyPressed(s.keys, b.TurnLeft),
		TurnRight: utils.AnyPressed(s.keys, b.TurnRight),
		Run:       utils.AnyPressed(s.keys, b.Run),
		Jump:      utils.AnyPressed(s.keys, b.Jump),
	}
}

// Update 采样本帧输入
func (s *InputSystem) Update() {
	input := s.Snapshot()
	if s.script != nil {
		input = s.script.At(s.frame)
		s.frame++
	}
	reset := utils.AnyJustPressed(s.keys, s.bindings.Reset)

	for _, id := range ecs.GetEntitiesWith1[*components.LocomotionComponent](s.entityManager) {
		loco, _ := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, id)
		loco.Input = input
		loco.ResetRequested = reset
	}

	if s.keys.IsKeyJustPressed(ebiten.KeyH) {
		for _, id := range ecs.GetEntitiesWith1[*components.HUDComponent](s.entityManager) {
			hud, _ := ecs.GetComponent[*components.HUDComponent](s.entityManager, id)
			hud.Visible = !hud.Visible
		}
	}

	s.drag.Update(s.pointer.Pointer())
	dx, dy := s.drag.GetFrameDelta()
	wheel := s.pointer.Wheel()
	for _, id := range ecs.GetEntitiesWith1[*components.CameraComponent](s.entityManager) {
		cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, id)
		cam.OrbitDX += float64(dx)
		cam.OrbitDY += float64(dy)
		cam.ZoomSteps += wheel
	}
}
