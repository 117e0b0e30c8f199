package locomotion

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/stickwalk/internal/obj"
	"github.com/decker502/stickwalk/pkg/config"
)

// platformOBJ 位于 y=1 的 10x10 平台
const platformOBJ = `o platform
v -5 1 -5
v 5 1 -5
v 5 1 5
v -5 1 5
f 1 2 3 4
`

func platformMesh(t *testing.T) *obj.Mesh {
	t.Helper()
	mesh, err := obj.Parse(strings.NewReader(platformOBJ))
	require.NoError(t, err)
	return mesh
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mesh load did not finish")
	}
}

func TestNewSurface(t *testing.T) {
	plane := NewSurface(config.SurfaceConfig{Type: config.SurfacePlane, Height: 2})
	assert.Equal(t, FlatPlane{Height: 2}, plane)

	mesh := NewSurface(config.SurfaceConfig{Type: config.SurfaceMesh, RayOffset: 1, Epsilon: 0.1})
	require.IsType(t, &MeshSurface{}, mesh)
	assert.False(t, mesh.Ready())
}

func TestFlatPlane_HeightBelow(t *testing.T) {
	c, ok := FlatPlane{Height: 0.5}.HeightBelow(mgl64.Vec3{3, 10, -2})
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{3, 0.5, -2}, c.Point)
	assert.Equal(t, 0.0, c.Tolerance)
}

// TestMeshSurface_LoadAsync 测试异步加载成功后发布网格
func TestMeshSurface_LoadAsync(t *testing.T) {
	s := NewMeshSurface(1, 0.1)
	release := make(chan struct{})
	var calls atomic.Int32
	mesh := platformMesh(t)

	done := s.LoadAsync(context.Background(), func(ctx context.Context) (*obj.Mesh, error) {
		calls.Add(1)
		<-release
		return mesh, nil
	})

	// 加载完成前不可用
	assert.False(t, s.Ready())
	_, ok := s.HeightBelow(mgl64.Vec3{})
	assert.False(t, ok)

	// 重复调用被忽略
	again := s.LoadAsync(context.Background(), func(ctx context.Context) (*obj.Mesh, error) {
		calls.Add(1)
		return nil, nil
	})
	assert.Equal(t, done, again)

	close(release)
	waitDone(t, done)

	assert.True(t, s.Ready())
	assert.NoError(t, s.Err())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "platform", s.Mesh().Name)

	c, ok := s.HeightBelow(mgl64.Vec3{1, 1.05, 1})
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.Height(), 1e-9)
	assert.Equal(t, 0.1, c.Tolerance)

	// 平台之外没有地面
	_, ok = s.HeightBelow(mgl64.Vec3{8, 2, 0})
	assert.False(t, ok)
}

// TestMeshSurface_LoadFailure 测试加载失败时地面保持不可用
func TestMeshSurface_LoadFailure(t *testing.T) {
	boom := errors.New("boom")
	s := NewMeshSurface(1, 0.1)
	waitDone(t, s.LoadAsync(context.Background(), func(ctx context.Context) (*obj.Mesh, error) {
		return nil, boom
	}))
	assert.False(t, s.Ready())
	assert.ErrorIs(t, s.Err(), boom)

	s = NewMeshSurface(1, 0.1)
	waitDone(t, s.LoadAsync(context.Background(), func(ctx context.Context) (*obj.Mesh, error) {
		return nil, nil
	}))
	assert.ErrorIs(t, s.Err(), ErrSurfaceNotLoaded)
}

func TestMeshSurface_SetMeshOnce(t *testing.T) {
	s := NewMeshSurface(1, 0.1)
	first := platformMesh(t)
	assert.False(t, s.SetMesh(nil))
	assert.True(t, s.SetMesh(first))
	assert.False(t, s.SetMesh(platformMesh(t)))
	assert.Same(t, first, s.Mesh())
}

// TestController_LandsOnMesh 测试角色落到网格上并在边缘外继续下落
func TestController_LandsOnMesh(t *testing.T) {
	cfg := fixedConfig()
	surface := NewMeshSurface(1, 0.1)
	s := newStepper(cfg, mgl64.Vec3{0, 3, 0}, surface)

	// 网格尚未就绪：自由落体
	pose := s.run(10, InputSnapshot{})
	assert.False(t, pose.Flags.Grounded)
	yBefore := pose.Transform.Position.Y()
	require.Greater(t, yBefore, 1.0)

	require.True(t, surface.SetMesh(platformMesh(t)))
	for i := 0; i < 200 && !pose.Flags.Grounded; i++ {
		pose = s.step(InputSnapshot{})
	}
	require.True(t, pose.Flags.Grounded)
	assert.InDelta(t, 1.0, pose.Transform.Position.Y(), 1e-9)
	assert.Equal(t, 0.0, pose.Velocity.Y)
	assert.InDelta(t, 1.0, pose.GroundLevel, 1e-9)
	assert.False(t, pose.Stalled)

	// 起跳不会被接触容差吞掉
	pose = s.step(InputSnapshot{Jump: true})
	assert.True(t, pose.Flags.JumpRequested)
	assert.False(t, pose.Flags.Grounded)
	pose = s.run(100, InputSnapshot{})
	require.True(t, pose.Flags.Grounded)

	// 跑出平台边缘后下落，地面高度保持最后一次命中
	s.c.transform.Yaw = 0
	for i := 0; i < 200 && pose.Transform.Position.Z() < 6; i++ {
		pose = s.step(InputSnapshot{Forward: true, Run: true})
	}
	pose = s.run(30, InputSnapshot{})
	assert.False(t, pose.Flags.Grounded)
	assert.Less(t, pose.Transform.Position.Y(), 1.0)
	assert.InDelta(t, 1.0, pose.GroundLevel, 1e-9)
}

// stepOBJ 两级台阶：z∈[-5,5] 高度 2，z∈[5,15] 高度 0
const stepOBJ = `o step
v -5 2 -5
v 5 2 -5
v 5 2 5
v -5 2 5
v -5 0 5
v 5 0 5
v 5 0 15
v -5 0 15
f 1 2 3 4
f 5 6 7 8
`

// TestController_GroundLevelFollowsMeshWhileAirborne 测试滞空时地面高度随射线命中更新
func TestController_GroundLevelFollowsMeshWhileAirborne(t *testing.T) {
	mesh, err := obj.Parse(strings.NewReader(stepOBJ))
	require.NoError(t, err)
	surface := NewMeshSurface(1, 0.1)
	require.True(t, surface.SetMesh(mesh))

	s := newStepper(fixedConfig(), mgl64.Vec3{0, 2, 0}, surface)
	pose := s.step(InputSnapshot{})
	require.True(t, pose.Flags.Grounded)
	assert.InDelta(t, 2.0, pose.GroundLevel, 1e-9)

	// 原地起跳：仍在高台上方，地面高度保持 2
	pose = s.step(InputSnapshot{Jump: true})
	require.False(t, pose.Flags.Grounded)
	pose = s.run(5, InputSnapshot{})
	require.False(t, pose.Flags.Grounded)
	assert.InDelta(t, 2.0, pose.GroundLevel, 1e-9)
	pose = s.run(200, InputSnapshot{})
	require.True(t, pose.Flags.Grounded)

	// 走下台阶：离开高台的第一帧即记录低处的命中高度
	for i := 0; i < 500 && pose.Transform.Position.Z() <= 5; i++ {
		pose = s.step(InputSnapshot{Forward: true, Run: true})
	}
	require.Greater(t, pose.Transform.Position.Z(), 5.0)
	assert.False(t, pose.Flags.Grounded)
	assert.Greater(t, pose.Transform.Position.Y(), 1.0)
	assert.InDelta(t, 0.0, pose.GroundLevel, 1e-9)

	// 下落过程中保持低处高度，最终落在低处
	pose = s.step(InputSnapshot{})
	assert.False(t, pose.Flags.Grounded)
	assert.InDelta(t, 0.0, pose.GroundLevel, 1e-9)
	for i := 0; i < 200 && !pose.Flags.Grounded; i++ {
		pose = s.step(InputSnapshot{})
	}
	require.True(t, pose.Flags.Grounded)
	assert.InDelta(t, 0.0, pose.Transform.Position.Y(), 1e-9)
}
