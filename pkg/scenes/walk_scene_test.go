package scenes

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/embedded"
	"github.com/decker502/stickwalk/pkg/game"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

type heldKeys map[ebiten.Key]bool

func (k heldKeys) IsKeyPressed(key ebiten.Key) bool     { return k[key] }
func (k heldKeys) IsKeyJustPressed(key ebiten.Key) bool { return false }

type noPointer struct{}

func (noPointer) Pointer() (bool, int, int) { return false, 0, 0 }
func (noPointer) Wheel() float64            { return 0 }

const platformOBJ = "o platform\nv -5 1 -5\nv 5 1 -5\nv 5 1 5\nv -5 1 5\nf 1 2 3 4\n"

func TestWalkScene_WalksForwardOnPlane(t *testing.T) {
	profile := config.DefaultProfile()
	keys := heldKeys{ebiten.KeyW: true}
	scene, err := NewWalkScene(game.NewResourceManager(), &profile, WalkSceneOptions{Keys: keys, Pointer: noPointer{}})
	require.NoError(t, err)
	defer scene.Close()

	for i := 0; i < 60; i++ {
		scene.Update(config.ReferenceFrameTime)
	}
	pose := scene.Pose()
	assert.True(t, pose.Flags.Grounded)
	assert.InDelta(t, 60*profile.Locomotion.WalkSpeed, pose.Transform.Position.Z(), 1e-9)

	// 镜头跟随角色
	assert.Greater(t, scene.Camera().Target.Z(), 0.0)
}

func TestWalkScene_MeshLoadsThenCharacterLands(t *testing.T) {
	embedded.Init(fstest.MapFS{"assets/meshes/platform.obj": {Data: []byte(platformOBJ)}}, fstest.MapFS{})
	t.Cleanup(embedded.Reset)

	profile := config.DefaultProfile()
	profile.Name = "platform"
	profile.Surface = config.SurfaceConfig{Type: config.SurfaceMesh, Mesh: "assets/meshes/platform.obj", RayOffset: 1, Epsilon: 0.1}
	profile.Spawn = [3]float64{0, 3, 0}

	scene, err := NewWalkScene(game.NewResourceManager(), &profile, WalkSceneOptions{Keys: heldKeys{}, Pointer: noPointer{}})
	require.NoError(t, err)
	defer scene.Close()

	select {
	case <-scene.Ground().Mesh.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("mesh did not load")
	}
	require.NoError(t, scene.Ground().Mesh.Err())

	for i := 0; i < 200 && !scene.Pose().Flags.Grounded; i++ {
		scene.Update(config.ReferenceFrameTime)
	}
	pose := scene.Pose()
	require.True(t, pose.Flags.Grounded)
	assert.InDelta(t, 1.0, pose.Transform.Position.Y(), 1e-9)
}

func TestWalkScene_Script(t *testing.T) {
	profile := config.DefaultProfile()
	script, err := locomotion.ParseInputScript("left:10")
	require.NoError(t, err)

	scene, err := NewWalkScene(game.NewResourceManager(), &profile, WalkSceneOptions{Keys: heldKeys{}, Pointer: noPointer{}, Script: &script})
	require.NoError(t, err)
	defer scene.Close()

	for i := 0; i < 20; i++ {
		scene.Update(config.ReferenceFrameTime)
	}
	assert.InDelta(t, 10*profile.Locomotion.TurnSpeed, scene.Pose().Transform.Yaw, 1e-9)
}

func TestWalkScene_Resize(t *testing.T) {
	profile := config.DefaultProfile()
	scene, err := NewWalkScene(game.NewResourceManager(), &profile, WalkSceneOptions{Keys: heldKeys{}, Pointer: noPointer{}})
	require.NoError(t, err)
	defer scene.Close()

	scene.Resize(400, 800)
	scene.Update(config.ReferenceFrameTime)
	assert.InDelta(t, 0.5, scene.Camera().Aspect(), 1e-12)
}

func TestNewWalkScene_InvalidProfile(t *testing.T) {
	profile := config.DefaultProfile()
	profile.Surface.Type = "water"
	_, err := NewWalkScene(game.NewResourceManager(), &profile, WalkSceneOptions{Keys: heldKeys{}, Pointer: noPointer{}})
	assert.Error(t, err)

	_, err = NewWalkScene(nil, &profile, WalkSceneOptions{})
	assert.Error(t, err)
}

func TestWalkScene_HUDFont(t *testing.T) {
	embedded.Init(fstest.MapFS{"assets/fonts/hud.ttf": {Data: goregular.TTF}}, fstest.MapFS{})
	t.Cleanup(embedded.Reset)

	profile := config.DefaultProfile()
	rm := game.NewResourceManager()
	scene, err := NewWalkScene(rm, &profile, WalkSceneOptions{Keys: heldKeys{}, Pointer: noPointer{}})
	require.NoError(t, err)
	defer scene.Close()

	builtin, err := rm.DefaultFont(config.HUDFontSize)
	require.NoError(t, err)
	loaded, err := rm.LoadFont("assets/fonts/hud.ttf", config.HUDFontSize)
	require.NoError(t, err)

	assert.Same(t, loaded, scene.hudFace("assets/fonts/hud.ttf"))
	// 字体缺失时退回内置字体
	assert.Same(t, builtin, scene.hudFace("assets/fonts/missing.ttf"))
	assert.Same(t, builtin, scene.hudFace(""))
}
