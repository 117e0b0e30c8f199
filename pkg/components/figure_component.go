package components

import "image/color"

// FigureComponent 火柴人的外观与骨架尺寸（世界单位）
type FigureComponent struct {
	// HipHeight 髋部离脚底的高度
	HipHeight float64
	// ShoulderHeight 肩部离脚底的高度
	ShoulderHeight float64
	// NeckHeight 颈部离脚底的高度，头部圆心在其上方 HeadRadius 处
	NeckHeight float64
	HeadRadius float64

	// HipHalfWidth, ShoulderHalfWidth 左右枢轴到中线的距离
	HipHalfWidth      float64
	ShoulderHalfWidth float64

	ArmLength float64
	LegLength float64

	Color color.Color
	// LineWidth 线宽（像素）
	LineWidth float32
}
