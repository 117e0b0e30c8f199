package config

// 布局与渲染配置常量
// 本文件定义窗口、时间步长、相机限制和火柴人骨架尺寸

// 窗口配置
const (
	// WindowWidth / WindowHeight 初始窗口尺寸（窗口可调整大小）
	WindowWidth  = 960
	WindowHeight = 540

	// WindowTitle 窗口标题
	WindowTitle = "Stickwalk"

	// TicksPerSecond 逻辑帧率（ebiten TPS）
	TicksPerSecond = 60

	// ReferenceFrameTime 运动常量所基于的参考帧时长（秒）
	ReferenceFrameTime = 1.0 / 60.0
)

// 相机配置
const (
	// CameraMinDistance / CameraMaxDistance 轨道半径限制
	CameraMinDistance = 2.0
	CameraMaxDistance = 40.0

	// CameraMinElevation / CameraMaxElevation 俯仰角限制（度）
	CameraMinElevation = -10.0
	CameraMaxElevation = 85.0

	// CameraOrbitSensitivity 拖拽每像素旋转角度（度）
	CameraOrbitSensitivity = 0.3

	// CameraZoomFactor 每格滚轮缩放比例
	CameraZoomFactor = 0.9

	// CameraFollowRate 相机目标追随角色的每帧插值系数
	CameraFollowRate = 0.15

	// CameraTargetHeight 相机注视点相对角色脚底的高度
	CameraTargetHeight = 1.0

	// CameraNear / CameraFar 裁剪面
	CameraNear = 0.1
	CameraFar  = 300.0
)

// 地面网格绘制
const (
	// GroundGridHalfExtent 平面网格半边长（世界单位）
	GroundGridHalfExtent = 20.0
	// GroundGridStep 网格间距
	GroundGridStep = 1.0
)

// 火柴人骨架尺寸（世界单位，脚底为原点）
const (
	FigureHipHeight      = 0.9
	FigureShoulderHeight = 1.45
	FigureNeckHeight     = 1.55
	FigureHeadRadius     = 0.15
	FigureHipHalfWidth   = 0.12
	FigureShoulderHalf   = 0.22
	FigureArmLength      = 0.65
	FigureLegLength      = 0.9
	FigureShadowRadius   = 0.35
)

// HUD
const (
	HUDMarginX    = 12
	HUDMarginY    = 10
	HUDFontSize   = 14.0
	HUDLineHeight = 18
)
