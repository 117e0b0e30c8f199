package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/stickwalk/pkg/config"
)

// Controller 角色运动控制器
//
// 持有角色的变换、竖直速度、接触状态和当前关节角度，
// 每帧调用一次 Update。所有状态只由调用 Update 的帧循环修改。
type Controller struct {
	cfg   config.LocomotionConfig
	spawn mgl64.Vec3

	transform      Transform
	velocity       VelocityState
	grounded       bool
	joints         JointAngles
	bob            float64
	groundLevel    float64
	pendingImpulse float64
	jumpHeld       bool
	airTime        float64
}

// NewController 创建控制器，角色位于 spawn，朝向 +Z
//
// 参数:
//   - cfg: 运动参数（应已通过 Validate）
//   - spawn: 出生点；Reset 时回到该点
func NewController(cfg config.LocomotionConfig, spawn mgl64.Vec3) *Controller {
	c := &Controller{cfg: cfg, spawn: spawn}
	c.Reset()
	return c
}

// Reset 将角色放回出生点并清除所有运动状态
func (c *Controller) Reset() {
	c.transform = Transform{Position: c.spawn}
	c.velocity = VelocityState{}
	c.grounded = false
	c.joints = JointAngles{}
	c.bob = 0
	c.groundLevel = c.cfg.GroundHeight
	c.pendingImpulse = 0
	c.jumpHeld = false
	c.airTime = 0
}

// Config 返回运动参数
func (c *Controller) Config() config.LocomotionConfig { return c.cfg }

// Transform 返回当前变换
func (c *Controller) Transform() Transform { return c.transform }

// Grounded 是否着地
func (c *Controller) Grounded() bool { return c.grounded }

// Joints 返回当前关节角度
func (c *Controller) Joints() JointAngles { return c.joints }

// GroundLevel 返回最近一次探测到的地面高度
func (c *Controller) GroundLevel() float64 { return c.groundLevel }

// Update 推进一帧
//
// 顺序：派生标志 → 转向 → 水平平移 → 起跳 → 竖直积分 → 地面接触 → 肢体动画。
// 转向和平移在空中同样生效。surface 为 nil 或未就绪时跳过接触判定。
//
// 参数:
//   - tick: 帧时间
//   - input: 本帧按住的按键
//   - surface: 地面查询
//
// 返回:
//   - Pose: 本帧运动结果
func (c *Controller) Update(tick Tick, input InputSnapshot, surface SurfaceProvider) Pose {
	s := c.stepScale(tick.Delta)
	flags := c.deriveFlags(input)

	// 转向：每帧固定角步长（scaled 模式下按帧间隔缩放）
	if flags.TurningLeft {
		c.transform.Yaw += c.cfg.TurnSpeed * s
	}
	if flags.TurningRight {
		c.transform.Yaw -= c.cfg.TurnSpeed * s
	}

	// 水平平移：前进与后退相互独立
	speed := c.cfg.WalkSpeed
	if flags.Running {
		speed = c.cfg.RunSpeed
	}
	forward := c.transform.Forward()
	if flags.MovingForward {
		c.transform.Position = c.transform.Position.Add(forward.Mul(speed * s))
	}
	if flags.MovingBackward {
		c.transform.Position = c.transform.Position.Sub(forward.Mul(speed * c.cfg.BackwardFactor * s))
	}

	if flags.JumpRequested {
		c.pendingImpulse = c.cfg.JumpImpulse
		c.grounded = false
	}

	// 显式欧拉积分
	c.velocity.Y += c.cfg.Gravity * s
	c.velocity.Y += c.pendingImpulse
	c.pendingImpulse = 0
	c.transform.Position[1] += c.velocity.Y * s

	c.resolveContact(surface)
	flags.Grounded = c.grounded

	if c.grounded {
		c.airTime = 0
	} else {
		c.airTime += frameSeconds(tick.Delta)
	}

	phase := c.animate(tick, flags, s)

	return Pose{
		Transform:   c.transform,
		Velocity:    c.velocity,
		Joints:      c.joints,
		Bob:         c.bob,
		GroundLevel: c.groundLevel,
		Flags:       flags,
		Phase:       phase,
		AirTime:     c.airTime,
		Stalled:     c.stalled(surface),
	}
}

// deriveFlags 移动/转向/奔跑为电平触发；起跳为边沿触发且必须着地
func (c *Controller) deriveFlags(input InputSnapshot) LocomotionFlags {
	flags := LocomotionFlags{
		MovingForward:  input.Forward,
		MovingBackward: input.Backward,
		TurningLeft:    input.TurnLeft,
		TurningRight:   input.TurnRight,
		Running:        input.Run,
		JumpRequested:  input.Jump && !c.jumpHeld && c.grounded,
		Grounded:       c.grounded,
	}
	c.jumpHeld = input.Jump
	return flags
}

// resolveContact 把角色钳制到地面上，或记录下方的地面高度
func (c *Controller) resolveContact(surface SurfaceProvider) {
	if surface == nil || !surface.Ready() {
		c.grounded = false
		return
	}
	contact, ok := surface.HeightBelow(c.transform.Position)
	if !ok {
		c.grounded = false
		return
	}

	h := contact.Height()
	y := c.transform.Position.Y()
	// 上升中只在真正低于地面时钳制，避免容差吞掉起跳
	touching := y <= h+contact.Tolerance && (c.velocity.Y <= 0 || y <= h)
	c.groundLevel = h
	if !touching {
		c.grounded = false
		return
	}
	c.transform.Position[1] = h
	c.velocity.Y = 0
	c.grounded = true
}

// animate 更新关节角度与身体起伏，返回本帧步态相位
func (c *Controller) animate(tick Tick, flags LocomotionFlags, s float64) float64 {
	k := c.smoothing(s)
	if !flags.Moving() {
		c.joints = c.joints.Relax(k)
		c.bob -= c.bob * k
		return 0
	}

	freq, amp := c.cfg.WalkFrequency, c.cfg.WalkAmplitude
	if flags.Running {
		freq, amp = c.cfg.RunFrequency, c.cfg.RunAmplitude
	}
	phase := tick.Elapsed * freq
	c.joints = GaitAngles(phase, amp)
	if c.grounded {
		c.bob = BobOffset(phase, c.cfg.BobAmplitude)
	} else {
		c.bob -= c.bob * k
	}
	return phase
}

// stepScale 返回本帧相对参考帧的步长倍数
func (c *Controller) stepScale(delta float64) float64 {
	if c.cfg.StepMode == config.StepModeFixed || delta <= 0 {
		return 1
	}
	return delta / config.ReferenceFrameTime
}

// smoothing 返回本帧的插值系数；s 为 1 时等于 SmoothingFactor
func (c *Controller) smoothing(s float64) float64 {
	k := c.cfg.SmoothingFactor
	if s == 1 {
		return k
	}
	return 1 - math.Pow(1-k, s)
}

// stalled 地面从未就绪且滞空超过阈值，说明网格加载失败或仍在加载
func (c *Controller) stalled(surface SurfaceProvider) bool {
	if surface != nil && surface.Ready() {
		return false
	}
	return c.airTime > c.cfg.StallThreshold
}

func frameSeconds(delta float64) float64 {
	if delta <= 0 {
		return config.ReferenceFrameTime
	}
	return delta
}

func forwardFromYaw(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}
