package systems

import (
	"github.com/go-gl/mathgl/mgl64"
)

// minClipW 裁剪空间中 w 的下限，小于它的点视为在镜头后方
const minClipW = 1e-4

// Viewport 透视投影到屏幕像素
type Viewport struct {
	ViewProj mgl64.Mat4
	Width    float64
	Height   float64
}

// NewViewport 由视图矩阵、投影矩阵和画面尺寸创建视口
func NewViewport(view, proj mgl64.Mat4, width, height int) Viewport {
	return Viewport{
		ViewProj: proj.Mul4(view),
		Width:    float64(width),
		Height:   float64(height),
	}
}

func (v Viewport) clip(p mgl64.Vec3) mgl64.Vec4 {
	return v.ViewProj.Mul4x1(p.Vec4(1))
}

func (v Viewport) toScreen(c mgl64.Vec4) mgl64.Vec2 {
	ndcX := c.X() / c.W()
	ndcY := c.Y() / c.W()
	return mgl64.Vec2{
		(ndcX + 1) * 0.5 * v.Width,
		(1 - ndcY) * 0.5 * v.Height,
	}
}

// Project 把世界坐标点投影到屏幕；点在镜头后方时返回 false
func (v Viewport) Project(p mgl64.Vec3) (mgl64.Vec2, bool) {
	c := v.clip(p)
	if c.W() <= minClipW {
		return mgl64.Vec2{}, false
	}
	return v.toScreen(c), true
}

// ProjectSegment 投影线段，跨过镜头平面的部分被裁掉
func (v Viewport) ProjectSegment(a, b mgl64.Vec3) (mgl64.Vec2, mgl64.Vec2, bool) {
	ca, cb := v.clip(a), v.clip(b)
	aBehind, bBehind := ca.W() <= minClipW, cb.W() <= minClipW
	if aBehind && bBehind {
		return mgl64.Vec2{}, mgl64.Vec2{}, false
	}
	if aBehind || bBehind {
		t := (minClipW - ca.W()) / (cb.W() - ca.W())
		mid := ca.Add(cb.Sub(ca).Mul(t))
		if aBehind {
			ca = mid
		} else {
			cb = mid
		}
	}
	return v.toScreen(ca), v.toScreen(cb), true
}

// PixelsPerUnit 估算 p 处单位长度在屏幕上的像素数（用于头部圆半径）
func (v Viewport) PixelsPerUnit(p mgl64.Vec3, up mgl64.Vec3) float64 {
	s0, ok0 := v.Project(p)
	s1, ok1 := v.Project(p.Add(up))
	if !ok0 || !ok1 {
		return 0
	}
	return s1.Sub(s0).Len()
}
