package components

import (
	"image/color"

	"github.com/decker502/stickwalk/internal/obj"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// SurfaceComponent 地面实体
type SurfaceComponent struct {
	Provider locomotion.SurfaceProvider

	// Mesh 网格地面的加载器；平面地面为 nil
	Mesh *locomotion.MeshSurface

	// Edges 网格线框边，网格就绪后由 RenderSystem 懒计算一次
	Edges [][2]int
	// EdgesFor 计算 Edges 时使用的网格
	EdgesFor *obj.Mesh

	// GridHalfExtent, GridStep 平面地面的网格线范围和间距
	GridHalfExtent float64
	GridStep       float64

	Color color.RGBA
}
