package components

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestOrbitOffset(t *testing.T) {
	v := OrbitOffset(0, 0, 5)
	assert.InDelta(t, 0.0, v.X(), 1e-12)
	assert.InDelta(t, 0.0, v.Y(), 1e-12)
	assert.InDelta(t, 5.0, v.Z(), 1e-12)

	v = OrbitOffset(math.Pi/2, 0, 2)
	assert.InDelta(t, 2.0, v.X(), 1e-12)

	v = OrbitOffset(1.3, 0.4, 7)
	assert.InDelta(t, 7.0, v.Len(), 1e-12)
	assert.InDelta(t, 7*math.Sin(0.4), v.Y(), 1e-12)
}

func TestCameraComponent_EyeAndAspect(t *testing.T) {
	c := &CameraComponent{Distance: 4, Target: mgl64.Vec3{1, 1, 1}}
	assert.Equal(t, 1.0, c.Aspect())

	c.ViewportWidth, c.ViewportHeight = 960, 540
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-12)

	eye := c.Eye()
	assert.InDelta(t, 5.0, eye.Z(), 1e-12)
	assert.InDelta(t, 1.0, eye.Y(), 1e-12)
}
