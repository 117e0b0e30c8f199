package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViewport() Viewport {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, worldUp)
	proj := mgl64.Perspective(mgl64.DegToRad(60), 1, 0.1, 100)
	return NewViewport(view, proj, 200, 100)
}

func TestViewport_Project(t *testing.T) {
	vp := testViewport()

	center, ok := vp.Project(mgl64.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 100.0, center.X(), 1e-9)
	assert.InDelta(t, 50.0, center.Y(), 1e-9)

	// 屏幕 y 向下：世界上方的点投影到中心之上
	up, ok := vp.Project(mgl64.Vec3{0, 1, 0})
	require.True(t, ok)
	assert.Less(t, up.Y(), center.Y())

	right, ok := vp.Project(mgl64.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.Greater(t, right.X(), center.X())

	_, ok = vp.Project(mgl64.Vec3{0, 0, 10})
	assert.False(t, ok, "behind the camera")
}

func TestViewport_ProjectSegmentClipsBehindCamera(t *testing.T) {
	vp := testViewport()

	_, _, ok := vp.ProjectSegment(mgl64.Vec3{0, 0, 8}, mgl64.Vec3{1, 0, 9})
	assert.False(t, ok)

	a, b, ok := vp.ProjectSegment(mgl64.Vec3{}, mgl64.Vec3{0, -1, 9})
	require.True(t, ok)
	assert.InDelta(t, 100.0, a.X(), 1e-9)
	assert.Greater(t, b.Y(), a.Y())

	full, _ := vp.Project(mgl64.Vec3{0.5, 0.5, 0})
	c, _, ok := vp.ProjectSegment(mgl64.Vec3{0.5, 0.5, 0}, mgl64.Vec3{-0.5, 0, 1})
	require.True(t, ok)
	assert.Equal(t, full, c)
}

func TestViewport_PixelsPerUnitShrinksWithDistance(t *testing.T) {
	vp := testViewport()
	near := vp.PixelsPerUnit(mgl64.Vec3{0, 0, 2}, worldUp)
	far := vp.PixelsPerUnit(mgl64.Vec3{0, 0, -20}, worldUp)
	assert.Greater(t, near, far)
	assert.Greater(t, far, 0.0)
	assert.Zero(t, vp.PixelsPerUnit(mgl64.Vec3{0, 0, 6}, worldUp))
}
