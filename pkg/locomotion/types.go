// Package locomotion 实现火柴人角色的逐帧运动控制
//
// 每帧输入一个按键快照和时间信息，输出角色的变换（位置 + 朝向）
// 和四肢关节角度。地面接触通过 SurfaceProvider 查询，
// 支持常量高度平面和异步加载的静态网格两种实现。
//
// 本包不依赖渲染库，可以在无窗口环境下运行（见 cmd/simulate）。
package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform 角色的位置与朝向
type Transform struct {
	// Position 脚底位置（世界坐标）
	Position mgl64.Vec3
	// Yaw 绕竖直轴的朝向角（弧度），0 表示面向 +Z
	Yaw float64
}

// Forward 返回朝向对应的水平单位向量 (sin yaw, 0, cos yaw)
func (t Transform) Forward() mgl64.Vec3 {
	return forwardFromYaw(t.Yaw)
}

// VelocityState 竖直速度
type VelocityState struct {
	Y float64
}

// LocomotionFlags 每帧从输入派生的运动标志
type LocomotionFlags struct {
	MovingForward  bool
	MovingBackward bool
	TurningLeft    bool
	TurningRight   bool
	Running        bool
	// JumpRequested 本帧触发起跳（边沿触发，且仅在着地时为 true）
	JumpRequested bool
	// Grounded 接触状态，跨帧保持直到接触状态改变
	Grounded bool
}

// Moving 是否在平移（前进或后退）
func (f LocomotionFlags) Moving() bool {
	return f.MovingForward || f.MovingBackward
}

// Limb 肢体枚举
type Limb int

const (
	LeftArm Limb = iota
	RightArm
	LeftLeg
	RightLeg

	// LimbCount 肢体数量
	LimbCount = 4
)

var limbNames = [LimbCount]string{"leftArm", "rightArm", "leftLeg", "rightLeg"}

// String 返回肢体名称
func (l Limb) String() string {
	if l < 0 || int(l) >= LimbCount {
		return fmt.Sprintf("Limb(%d)", int(l))
	}
	return limbNames[l]
}

// Limbs 按固定顺序列出所有肢体
func Limbs() [LimbCount]Limb {
	return [LimbCount]Limb{LeftArm, RightArm, LeftLeg, RightLeg}
}

// JointAngles 每个肢体绕其枢轴的旋转角（弧度）
// 每帧重新计算，不持久化
type JointAngles [LimbCount]float64

// Get 返回指定肢体的角度
func (j JointAngles) Get(l Limb) float64 {
	return j[l]
}

// Map 以肢体名称为键返回角度表
func (j JointAngles) Map() map[string]float64 {
	m := make(map[string]float64, LimbCount)
	for _, l := range Limbs() {
		m[l.String()] = j[l]
	}
	return m
}

// InputSnapshot 当前按住的按键集合
// 只关心本帧的按住状态，没有缓冲或队列
type InputSnapshot struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
	Run       bool
	Jump      bool
}

// Tick 帧时间信息
type Tick struct {
	// Elapsed 自启动以来的总时间（秒），驱动步态相位
	Elapsed float64
	// Delta 距上一帧的时间（秒）
	Delta float64
}

// Pose 一帧的运动结果
type Pose struct {
	Transform Transform
	Velocity  VelocityState
	Joints    JointAngles
	// Bob 渲染时叠加在脚底高度上的身体起伏
	Bob float64
	// GroundLevel 最近一次探测到的地面高度，用于阴影和静息参考
	GroundLevel float64
	Flags       LocomotionFlags
	// Phase 本帧步态相位（静止时为 0）
	Phase float64
	// AirTime 持续滞空时间（秒）
	AirTime float64
	// Stalled 地面未就绪且滞空超过阈值
	Stalled bool
}
