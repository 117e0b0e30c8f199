package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

var (
	hudTextColor    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	hudWarningColor = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	hudPanelColor   = color.RGBA{A: 140}
)

// HUDSystem 生成并绘制状态信息
type HUDSystem struct {
	entityManager *ecs.EntityManager
	// face 为 nil 时退回 ebitenutil.DebugPrintAt
	face text.Face
}

// NewHUDSystem 创建 HUD 系统
func NewHUDSystem(em *ecs.EntityManager, face text.Face) *HUDSystem {
	return &HUDSystem{entityManager: em, face: face}
}

// SurfaceStatus 返回地面状态描述
func SurfaceStatus(ground *components.SurfaceComponent) string {
	if ground == nil || ground.Provider == nil {
		return "none"
	}
	if ground.Mesh == nil {
		if plane, ok := ground.Provider.(locomotion.FlatPlane); ok {
			return fmt.Sprintf("plane y=%.2f", plane.Height)
		}
		return "ready"
	}
	if mesh := ground.Mesh.Mesh(); mesh != nil {
		return fmt.Sprintf("mesh %s (%d tris)", mesh.Name, len(mesh.Triangles))
	}
	if err := ground.Mesh.Err(); err != nil {
		return "mesh failed: " + err.Error()
	}
	return "mesh loading..."
}

// FormatHUD 生成 HUD 文本行和警告
func FormatHUD(hud *components.HUDComponent, pose locomotion.Pose, surface string) ([]string, string) {
	p := pose.Transform.Position
	state := "airborne"
	if pose.Flags.Grounded {
		state = "grounded"
	}
	gait := "idle"
	switch {
	case pose.Flags.Moving() && pose.Flags.Running:
		gait = "run"
	case pose.Flags.Moving():
		gait = "walk"
	}
	yawDeg := math.Mod(pose.Transform.Yaw*180/math.Pi, 360)
	if yawDeg < 0 {
		yawDeg += 360
	}

	lines := []string{
		fmt.Sprintf("profile: %s  step: %s", hud.ProfileName, hud.StepMode),
		fmt.Sprintf("pos: %6.2f %6.2f %6.2f  yaw: %5.1f°", p.X(), p.Y(), p.Z(), yawDeg),
		fmt.Sprintf("%s  %s  vy: %+.3f  ground: %.2f", state, gait, pose.Velocity.Y, pose.GroundLevel),
		"surface: " + surface,
		"WASD/arrows move  Shift run  Space jump  R respawn  H hide  drag orbit  wheel zoom",
	}
	warning := ""
	if pose.Stalled {
		warning = fmt.Sprintf("no ground below for %.1fs: surface not ready", pose.AirTime)
	}
	return lines, warning
}

// Update 根据第一个角色的姿态刷新 HUD 文本
func (s *HUDSystem) Update() {
	_, loco, ok := ecs.First[*components.LocomotionComponent](s.entityManager)
	if !ok {
		return
	}
	_, ground, _ := ecs.First[*components.SurfaceComponent](s.entityManager)
	status := SurfaceStatus(ground)

	for _, id := range ecs.GetEntitiesWith1[*components.HUDComponent](s.entityManager) {
		hud, _ := ecs.GetComponent[*components.HUDComponent](s.entityManager, id)
		hud.Lines, hud.Warning = FormatHUD(hud, loco.Pose, status)
	}
}

// Draw 绘制 HUD
func (s *HUDSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.HUDComponent](s.entityManager) {
		hud, _ := ecs.GetComponent[*components.HUDComponent](s.entityManager, id)
		if !hud.Visible || len(hud.Lines) == 0 {
			continue
		}
		lines := len(hud.Lines)
		if hud.Warning != "" {
			lines++
		}
		panelH := float32(lines*config.HUDLineHeight + 2*config.HUDMarginY)
		vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), panelH, hudPanelColor, false)

		y := float64(config.HUDMarginY)
		for _, line := range hud.Lines {
			s.drawLine(screen, line, y, hudTextColor)
			y += config.HUDLineHeight
		}
		if hud.Warning != "" {
			s.drawLine(screen, hud.Warning, y, hudWarningColor)
		}
	}
}

func (s *HUDSystem) drawLine(screen *ebiten.Image, line string, y float64, clr color.Color) {
	if s.face == nil {
		ebitenutil.DebugPrintAt(screen, line, config.HUDMarginX, int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(config.HUDMarginX, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, line, s.face, op)
}
