package components

import "image/color"

// ShadowComponent 阴影组件
// 在记录的地面高度上绘制一个圆形阴影，角色离地越高阴影越淡
type ShadowComponent struct {
	// Radius 阴影半径（世界单位）
	Radius float64

	// Alpha 着地时的透明度 (0.0-1.0)
	Alpha float64

	// FadeHeight 离地超过该高度时阴影完全消失
	FadeHeight float64

	// Segments 圆周分段数
	Segments int

	Color color.RGBA
}
