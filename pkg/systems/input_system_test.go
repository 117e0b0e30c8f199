package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/locomotion"
	"github.com/decker502/stickwalk/pkg/utils"
)

func TestInputSystem_KeysToSnapshot(t *testing.T) {
	w := newWorld(t, config.SurfaceConfig{Type: config.SurfacePlane})
	keys := &fakeKeys{held: map[ebiten.Key]bool{
		ebiten.KeyW:         true,
		ebiten.KeyArrowLeft: true,
		ebiten.KeyShiftLeft: true,
		ebiten.KeySpace:     true,
	}}
	sys := NewInputSystem(w.em, utils.DefaultKeyBindings(), keys, &fakePointer{})
	sys.Update()

	loco, _ := ecs.GetComponent[*components.LocomotionComponent](w.em, w.character)
	assert.Equal(t, locomotion.InputSnapshot{Forward: true, TurnLeft: true, Run: true, Jump: true}, loco.Input)
	assert.False(t, loco.ResetRequested)

	// 松开所有按键：快照立即清空，没有缓冲
	keys.held = nil
	keys.just = map[ebiten.Key]bool{ebiten.KeyR: true}
	sys.Update()
	assert.Equal(t, locomotion.InputSnapshot{}, loco.Input)
	assert.True(t, loco.ResetRequested)
}

func TestInputSystem_PointerDragAndWheel(t *testing.T) {
	w := newWorld(t, config.SurfaceConfig{Type: config.SurfacePlane})
	pointer := &fakePointer{}
	sys := NewInputSystem(w.em, utils.DefaultKeyBindings(), &fakeKeys{}, pointer)
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, w.camera)

	pointer.pressed, pointer.x, pointer.y = true, 100, 100
	sys.Update()
	pointer.x, pointer.y, pointer.wheel = 110, 95, 1
	sys.Update()

	assert.Equal(t, 10.0, cam.OrbitDX)
	assert.Equal(t, -5.0, cam.OrbitDY)
	assert.Equal(t, 1.0, cam.ZoomSteps)
}

func TestInputSystem_ToggleHUD(t *testing.T) {
	w := newWorld(t, config.SurfaceConfig{Type: config.SurfacePlane})
	hudID := w.em.CreateEntity()
	ecs.AddComponent(w.em, hudID, &components.HUDComponent{Visible: true})

	keys := &fakeKeys{just: map[ebiten.Key]bool{ebiten.KeyH: true}}
	sys := NewInputSystem(w.em, utils.DefaultKeyBindings(), keys, &fakePointer{})
	sys.Update()

	hud, _ := ecs.GetComponent[*components.HUDComponent](w.em, hudID)
	assert.False(t, hud.Visible)
}

func TestInputSystem_Script(t *testing.T) {
	w := newWorld(t, config.SurfaceConfig{Type: config.SurfacePlane})
	script, err := locomotion.ParseInputScript("forward:2,jump")
	require.NoError(t, err)

	keys := &fakeKeys{held: map[ebiten.Key]bool{ebiten.KeyS: true}}
	sys := NewInputSystem(w.em, utils.DefaultKeyBindings(), keys, &fakePointer{})
	sys.SetScript(&script)
	loco, _ := ecs.GetComponent[*components.LocomotionComponent](w.em, w.character)

	var got []locomotion.InputSnapshot
	for i := 0; i < 4; i++ {
		sys.Update()
		got = append(got, loco.Input)
	}
	assert.Equal(t, []locomotion.InputSnapshot{{Forward: true}, {Forward: true}, {Jump: true}, {}}, got)
}
