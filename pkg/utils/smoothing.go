package utils

import "math"

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FrameRate 把每参考帧的插值系数 k 换算到 s 个参考帧
// s 为 1 时返回 k 本身
func FrameRate(k, s float64) float64 {
	if s == 1 {
		return k
	}
	return 1 - math.Pow(1-k, s)
}

// Damp 以每参考帧系数 k 从 current 向 target 靠近，s 为经过的参考帧数
func Damp(current, target, k, s float64) float64 {
	return Lerp(current, target, FrameRate(k, s))
}
