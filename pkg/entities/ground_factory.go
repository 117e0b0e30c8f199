package entities

import (
	"context"
	"fmt"
	"image/color"

	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// GroundColor 地面网格/线框颜色
var GroundColor = color.RGBA{R: 90, G: 150, B: 95, A: 255}

// NewGroundEntity 创建地面实体
// 网格地面会立即在后台开始加载，实体创建后即可使用（加载完成前 Ready() 为 false）
//
// 参数:
//   - ctx: 控制后台加载的上下文
//   - em: 实体管理器
//   - cfg: 地面配置
//   - load: 网格加载函数，平面地面可以为 nil
func NewGroundEntity(ctx context.Context, em *ecs.EntityManager, cfg config.SurfaceConfig, load locomotion.MeshLoader) (ecs.EntityID, error) {
	if em == nil {
		return 0, ErrNilEntityManager
	}
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("ground: %w", err)
	}

	provider := locomotion.NewSurface(cfg)
	comp := &components.SurfaceComponent{
		Provider:       provider,
		GridHalfExtent: config.GroundGridHalfExtent,
		GridStep:       config.GroundGridStep,
		Color:          GroundColor,
	}

	if mesh, ok := provider.(*locomotion.MeshSurface); ok {
		if load == nil {
			return 0, fmt.Errorf("ground: mesh surface %q needs a loader", cfg.Mesh)
		}
		comp.Mesh = mesh
		mesh.LoadAsync(ctx, load)
		log.Info().Str("mesh", cfg.Mesh).Msg("[Ground] loading mesh in background")
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, comp)
	return entityID, nil
}
