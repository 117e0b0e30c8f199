// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeySource 按键状态来源
// 默认使用 ebiten 的键盘状态，测试中可以替换为固定的按键集合
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// EbitenKeys 读取 ebiten 的键盘状态
type EbitenKeys struct{}

// IsKeyPressed 按键是否按住
func (EbitenKeys) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

// IsKeyJustPressed 按键是否在本帧按下
func (EbitenKeys) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// KeyBindings 动作到按键的映射，任一按键按住即视为动作激活
type KeyBindings struct {
	Forward   []ebiten.Key
	Backward  []ebiten.Key
	TurnLeft  []ebiten.Key
	TurnRight []ebiten.Key
	Run       []ebiten.Key
	Jump      []ebiten.Key
	Reset     []ebiten.Key
}

// DefaultKeyBindings 默认键位：WASD / 方向键移动，Shift 奔跑，空格跳跃，R 重生
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward:   []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Backward:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		TurnLeft:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		TurnRight: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Run:       []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		Jump:      []ebiten.Key{ebiten.KeySpace},
		Reset:     []ebiten.Key{ebiten.KeyR},
	}
}

// AnyPressed 任一按键按住
func AnyPressed(src KeySource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// AnyJustPressed 任一按键在本帧按下
func AnyJustPressed(src KeySource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// GetPointerState 获取指针的完整状态（触摸优先，其次鼠标左键）
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	return pressed, x, y
}

// ============================================================================
// 拖拽状态管理器 - 用于镜头环绕
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// LastX, LastY 上一帧位置，用于计算逐帧增量
	LastX, LastY int
}

// DragManager 拖拽管理器
// 每帧调用一次 Update，输入为当前指针状态
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	return &DragManager{}
}

// Update 更新拖拽状态
func (dm *DragManager) Update(pressed bool, x, y int) {
	switch dm.info.State {
	case DragStateNone, DragStateEnded:
		if pressed {
			dm.info = DragInfo{
				State:    DragStateStarted,
				CurrentX: x,
				CurrentY: y,
				LastX:    x,
				LastY:    y,
			}
			return
		}
		dm.info = DragInfo{}

	case DragStateStarted, DragStateDragging:
		dm.info.LastX, dm.info.LastY = dm.info.CurrentX, dm.info.CurrentY
		if !pressed {
			// 结束状态只持续一帧
			dm.info.State = DragStateEnded
			return
		}
		dm.info.State = DragStateDragging
		dm.info.CurrentX, dm.info.CurrentY = x, y
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetFrameDelta 本帧指针移动量，非拖拽状态为 0
func (dm *DragManager) GetFrameDelta() (dx, dy int) {
	if dm.info.State != DragStateDragging {
		return 0, 0
	}
	return dm.info.CurrentX - dm.info.LastX, dm.info.CurrentY - dm.info.LastY
}
