package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/stickwalk/pkg/ecs"
)

// CameraComponent 绕角色旋转的轨道镜头
// 角度单位为弧度；Azimuth 从 +Z 轴绕竖直轴逆时针量取
type CameraComponent struct {
	// Distance 镜头到目标点的距离
	Distance float64
	// Azimuth 水平方位角
	Azimuth float64
	// Elevation 俯仰角，正值表示从上方俯视
	Elevation float64
	// FovY 垂直视场角
	FovY float64

	// MinDistance, MaxDistance 缩放范围
	MinDistance float64
	MaxDistance float64
	// MinElevation, MaxElevation 俯仰范围
	MinElevation float64
	MaxElevation float64

	// Target 镜头注视点（平滑跟随角色）
	Target mgl64.Vec3
	// Follow 被跟随的实体，为 0 时镜头静止
	Follow ecs.EntityID
	// TargetHeight 注视点相对角色脚底的高度
	TargetHeight float64

	// OrbitDX, OrbitDY 本帧拖拽增量（像素），ZoomSteps 本帧滚轮格数
	// 由 InputSystem 写入，CameraSystem 消费后清零
	OrbitDX   float64
	OrbitDY   float64
	ZoomSteps float64

	// ViewportWidth, ViewportHeight 最近一次 Layout 给出的画面尺寸
	ViewportWidth  int
	ViewportHeight int

	Near float64
	Far  float64

	// View, Projection 本帧矩阵，由 CameraSystem 更新
	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// Aspect 返回画面宽高比
func (c *CameraComponent) Aspect() float64 {
	if c.ViewportHeight <= 0 {
		return 1
	}
	return float64(c.ViewportWidth) / float64(c.ViewportHeight)
}

// Eye 返回镜头世界坐标
func (c *CameraComponent) Eye() mgl64.Vec3 {
	return OrbitOffset(c.Azimuth, c.Elevation, c.Distance).Add(c.Target)
}
