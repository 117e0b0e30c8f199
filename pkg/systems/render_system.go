package systems

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/ecs"
)

// SkyColor 背景色
var SkyColor = color.RGBA{R: 24, G: 28, B: 38, A: 255}

// RenderSystem 线框渲染：地面、阴影、火柴人
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// Draw 绘制一帧，需要先由 CameraSystem 更新矩阵
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(SkyColor)

	_, cam, ok := ecs.First[*components.CameraComponent](s.entityManager)
	if !ok {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vp := NewViewport(cam.View, cam.Projection, w, h)

	for _, id := range ecs.GetEntitiesWith1[*components.SurfaceComponent](s.entityManager) {
		ground, _ := ecs.GetComponent[*components.SurfaceComponent](s.entityManager, id)
		s.drawGround(screen, vp, ground)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.LocomotionComponent, *components.FigureComponent](s.entityManager) {
		loco, _ := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, id)
		fig, _ := ecs.GetComponent[*components.FigureComponent](s.entityManager, id)
		if shadow, ok := ecs.GetComponent[*components.ShadowComponent](s.entityManager, id); ok {
			s.drawShadow(screen, vp, loco, shadow)
		}
		s.drawFigure(screen, vp, loco, fig)
	}
}

func (s *RenderSystem) drawGround(screen *ebiten.Image, vp Viewport, ground *components.SurfaceComponent) {
	if ground.Mesh == nil {
		DrawGrid(screen, vp, groundHeight(ground), ground.GridHalfExtent, ground.GridStep, ground.Color)
		return
	}
	mesh := ground.Mesh.Mesh()
	if mesh == nil {
		return
	}
	if ground.EdgesFor != mesh {
		ground.Edges = mesh.Edges()
		ground.EdgesFor = mesh
	}
	for _, e := range ground.Edges {
		strokeSegment(screen, vp, mesh.Vertices[e[0]], mesh.Vertices[e[1]], 1, ground.Color)
	}
}

// DrawGrid 绘制 y=height 平面上的方形网格
func DrawGrid(screen *ebiten.Image, vp Viewport, height, halfExtent, step float64, clr color.Color) {
	if step <= 0 {
		return
	}
	n := int(math.Floor(halfExtent / step))
	for i := -n; i <= n; i++ {
		c := float64(i) * step
		strokeSegment(screen, vp, mgl64.Vec3{c, height, -halfExtent}, mgl64.Vec3{c, height, halfExtent}, 1, clr)
		strokeSegment(screen, vp, mgl64.Vec3{-halfExtent, height, c}, mgl64.Vec3{halfExtent, height, c}, 1, clr)
	}
}

func groundHeight(ground *components.SurfaceComponent) float64 {
	if c, ok := ground.Provider.HeightBelow(mgl64.Vec3{}); ok {
		return c.Height()
	}
	return 0
}

// drawShadow 阴影画在记录的地面高度上，离地越高越淡
func (s *RenderSystem) drawShadow(screen *ebiten.Image, vp Viewport, loco *components.LocomotionComponent, shadow *components.ShadowComponent) {
	pos := loco.Pose.Transform.Position
	lift := pos.Y() - loco.Pose.GroundLevel
	alpha := shadow.Alpha
	if shadow.FadeHeight > 0 {
		alpha *= 1 - mgl64.Clamp(lift/shadow.FadeHeight, 0, 1)
	}
	if alpha <= 0 || shadow.Segments < 3 {
		return
	}
	// 颜色为预乘 alpha，RGB 需要同比例缩放
	clr := color.RGBA{
		R: uint8(float64(shadow.Color.R) * alpha),
		G: uint8(float64(shadow.Color.G) * alpha),
		B: uint8(float64(shadow.Color.B) * alpha),
		A: uint8(alpha * 255),
	}
	center := mgl64.Vec3{pos.X(), loco.Pose.GroundLevel + 0.01, pos.Z()}
	prev := center.Add(mgl64.Vec3{shadow.Radius, 0, 0})
	for i := 1; i <= shadow.Segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(shadow.Segments)
		next := center.Add(mgl64.Vec3{math.Cos(a) * shadow.Radius, 0, math.Sin(a) * shadow.Radius})
		strokeSegment(screen, vp, prev, next, 2, clr)
		strokeSegment(screen, vp, center, next, 2, clr)
		prev = next
	}
}

func (s *RenderSystem) drawFigure(screen *ebiten.Image, vp Viewport, loco *components.LocomotionComponent, fig *components.FigureComponent) {
	sk := BuildSkeleton(fig, loco.Pose)
	for _, seg := range sk.Segments() {
		strokeSegment(screen, vp, seg[0], seg[1], fig.LineWidth, fig.Color)
	}
	if center, ok := vp.Project(sk.Head); ok {
		r := vp.PixelsPerUnit(sk.Head, worldUp) * fig.HeadRadius
		vector.StrokeCircle(screen, float32(center.X()), float32(center.Y()), float32(r), fig.LineWidth, fig.Color, true)
	}
}

func strokeSegment(screen *ebiten.Image, vp Viewport, a, b mgl64.Vec3, width float32, clr color.Color) {
	sa, sb, ok := vp.ProjectSegment(a, b)
	if !ok {
		return
	}
	vector.StrokeLine(screen,
		float32(sa.X()), float32(sa.Y()),
		float32(sb.X()), float32(sb.Y()),
		width, clr, true)
}
