// Package ecs 提供最小的实体-组件存储
//
// 组件按其动态类型存放，查询结果按实体 ID 升序返回，
// 使系统的遍历顺序在各帧之间保持稳定。
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// InvalidEntity 无效实体
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
// 只由帧循环所在的 goroutine 访问，不加锁
type EntityManager struct {
	nextID uint64
	// EntityID -> 组件类型 -> 组件实例
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体，在 RemoveMarkedEntities 时统一清理
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回其 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除（不立即删除）
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; !ok || slices.Contains(em.entitiesToDestroy, id) {
		return
	}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// Exists 实体是否存在（包括已标记但尚未清理的实体）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// AddComponent 为实体添加组件，同类型组件会被替换
// 实体不存在时返回 false
func (em *EntityManager) AddComponent(id EntityID, component any) bool {
	compMap, ok := em.components[id]
	if !ok || component == nil {
		return false
	}
	compMap[reflect.TypeOf(component)] = component
	return true
}

// GetComponent 获取实体的指定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	compMap, ok := em.components[id]
	if !ok {
		return nil, false
	}
	comp, found := compMap[componentType]
	return comp, found
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体，按 ID 升序返回
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}
