package entities

import (
	"github.com/decker502/stickwalk/pkg/components"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/ecs"
)

// NewHUDEntity 创建状态信息面板
func NewHUDEntity(em *ecs.EntityManager, profile *config.Profile) (ecs.EntityID, error) {
	if em == nil {
		return 0, ErrNilEntityManager
	}
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.HUDComponent{
		ProfileName: profile.Name,
		StepMode:    string(profile.Locomotion.StepMode),
		Visible:     true,
	})
	return entityID, nil
}
