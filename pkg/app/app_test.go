package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/scenes"
)

const testProfiles = `
default: moon
profiles:
  plane:
    surface: {type: plane}
  moon:
    locomotion: {gravity: -0.004}
    surface: {type: plane, height: 1}
`

func loadProfiles(t *testing.T) *config.ProfileSet {
	t.Helper()
	set, err := config.ParseLocomotionProfiles([]byte(testProfiles))
	require.NoError(t, err)
	return set
}

func TestNextProfile(t *testing.T) {
	names := []string{"moon", "plane", "terrain"}
	assert.Equal(t, "plane", NextProfile(names, "moon"))
	assert.Equal(t, "moon", NextProfile(names, "terrain"))
	assert.Equal(t, "moon", NextProfile(names, "unknown"))
	assert.Equal(t, "x", NextProfile(nil, "x"))
}

func TestNewApp_LoadsDefaultProfile(t *testing.T) {
	a, err := NewApp(Config{Profiles: loadProfiles(t)})
	require.NoError(t, err)
	defer a.GetSceneManager().Close()

	assert.Equal(t, "moon", a.GetSceneManager().CurrentName())
	scene, ok := a.GetSceneManager().GetCurrentScene().(*scenes.WalkScene)
	require.True(t, ok)
	assert.Equal(t, 1.0, scene.Profile().Surface.Height)
	assert.Equal(t, config.StepModeScaled, scene.Profile().Locomotion.StepMode)
}

func TestNewApp_Overrides(t *testing.T) {
	set := loadProfiles(t)
	a, err := NewApp(Config{Profiles: set, Profile: "plane", Parity: true, MeshOverride: "assets/meshes/none.obj"})
	require.NoError(t, err)
	defer a.GetSceneManager().Close()

	scene := a.GetSceneManager().GetCurrentScene().(*scenes.WalkScene)
	assert.Equal(t, config.StepModeFixed, scene.Profile().Locomotion.StepMode)
	assert.Equal(t, config.SurfaceMesh, scene.Profile().Surface.Type)

	// 覆盖项只作用于场景副本
	orig, _ := set.Profile("plane")
	assert.Equal(t, config.SurfacePlane, orig.Surface.Type)
}

func TestNewApp_Errors(t *testing.T) {
	_, err := NewApp(Config{})
	assert.Error(t, err)

	_, err = NewApp(Config{Profiles: loadProfiles(t), Profile: "mars"})
	assert.ErrorIs(t, err, config.ErrUnknownProfile)
}

func TestApp_Layout(t *testing.T) {
	a, err := NewApp(Config{Profiles: loadProfiles(t)})
	require.NoError(t, err)
	defer a.GetSceneManager().Close()

	w, h := a.Layout(1280, 720)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}
