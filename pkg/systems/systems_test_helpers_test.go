package systems

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"

	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/entities"
)

// fakeKeys 固定按键集合；just 中的按键同时视为本帧按下
type fakeKeys struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func (f *fakeKeys) IsKeyPressed(k ebiten.Key) bool     { return f.held[k] || f.just[k] }
func (f *fakeKeys) IsKeyJustPressed(k ebiten.Key) bool { return f.just[k] }

type fakePointer struct {
	pressed bool
	x, y    int
	wheel   float64
}

func (f *fakePointer) Pointer() (bool, int, int) { return f.pressed, f.x, f.y }
func (f *fakePointer) Wheel() float64            { return f.wheel }

// world 用默认平面配置创建角色、地面、镜头
type world struct {
	em        *ecs.EntityManager
	character ecs.EntityID
	ground    ecs.EntityID
	camera    ecs.EntityID
	profile   *config.Profile
}

func newWorld(t *testing.T, surface config.SurfaceConfig) *world {
	t.Helper()
	p := config.DefaultProfile()
	p.Surface = surface
	em := ecs.NewEntityManager()

	character, err := entities.NewCharacterEntity(em, &p)
	require.NoError(t, err)
	var ground ecs.EntityID
	if surface.Type == config.SurfacePlane {
		ground, err = entities.NewGroundEntity(context.Background(), em, surface, nil)
		require.NoError(t, err)
	}
	camera, err := entities.NewCameraEntity(em, p.Camera, character, mgl64.Vec3(p.Spawn))
	require.NoError(t, err)
	return &world{em: em, character: character, ground: ground, camera: camera, profile: &p}
}
