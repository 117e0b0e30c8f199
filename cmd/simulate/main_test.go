package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

func TestSimulate_EmitsEveryNFrames(t *testing.T) {
	p := config.DefaultProfile()
	script, err := locomotion.ParseInputScript("forward:45")
	require.NoError(t, err)

	ctrl := locomotion.NewController(p.Locomotion, mgl64.Vec3(p.Spawn))
	var frames []int
	last := simulate(ctrl, locomotion.NewSurface(p.Surface), script, script.TotalFrames(), 20, func(frame int, _ locomotion.Pose) {
		frames = append(frames, frame)
	})

	assert.Equal(t, []int{20, 40, 45}, frames)
	assert.Greater(t, last.Transform.Position.Z(), 0.0)
	assert.InDelta(t, 0.0, last.Transform.Position.X(), 1e-9)
	assert.True(t, last.Flags.Grounded)
}

func TestSimulate_ZeroEveryEmitsEachFrame(t *testing.T) {
	p := config.DefaultProfile()
	ctrl := locomotion.NewController(p.Locomotion, mgl64.Vec3(p.Spawn))
	count := 0
	simulate(ctrl, locomotion.NewSurface(p.Surface), locomotion.InputScript{}, 5, 0, func(int, locomotion.Pose) { count++ })
	assert.Equal(t, 5, count)
}

func TestOpenSurface_Mesh(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flat.obj")
	src := "v -5 2 -5\nv 5 2 -5\nv 5 2 5\nv -5 2 5\nf 1 2 3 4\n"
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))

	surface, err := openSurface(config.SurfaceConfig{Type: config.SurfaceMesh, Mesh: file, RayOffset: 10, Epsilon: 0.01})
	require.NoError(t, err)
	require.True(t, surface.Ready())

	contact, ok := surface.HeightBelow(mgl64.Vec3{1, 0, -2})
	require.True(t, ok)
	assert.InDelta(t, 2.0, contact.Height(), 1e-9)
}

func TestOpenSurface_MissingMesh(t *testing.T) {
	_, err := openSurface(config.SurfaceConfig{Type: config.SurfaceMesh, Mesh: filepath.Join(t.TempDir(), "nope.obj"), RayOffset: 10})
	assert.Error(t, err)
}

func TestWriteTrace(t *testing.T) {
	var buf bytes.Buffer
	pose := locomotion.Pose{}
	pose.Flags.Grounded = true
	pose.Transform.Yaw = -math.Pi / 2
	writeTrace(&buf, 7, pose)

	out := buf.String()
	assert.Contains(t, out, "ground ")
	assert.Contains(t, out, "270.00")
	assert.Contains(t, out, "    7")
}

func TestYawDegrees(t *testing.T) {
	assert.InDelta(t, 90.0, yawDegrees(math.Pi/2), 1e-9)
	assert.InDelta(t, 270.0, yawDegrees(-math.Pi/2), 1e-9)
	assert.InDelta(t, 0.0, yawDegrees(2*math.Pi), 1e-9)
}
