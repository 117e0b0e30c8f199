package ecs

import "reflect"

// 泛型包装，组件类型由类型参数给出，调用方不需要类型断言：
//
//	tc, ok := ecs.GetComponent[*components.TransformComponent](em, id)
//	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.FigureComponent](em)

// AddComponent 为实体添加类型为 T 的组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) bool {
	compMap, ok := em.components[id]
	if !ok {
		return false
	}
	compMap[typeFor[T]()] = component
	return true
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// GetEntitiesWith1 查询拥有 T1 组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeFor[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeFor[T1](), typeFor[T2]())
}

// First 返回拥有 T 组件的第一个实体（ID 最小）
func First[T any](em *EntityManager) (EntityID, T, bool) {
	var zero T
	ids := GetEntitiesWith1[T](em)
	if len(ids) == 0 {
		return InvalidEntity, zero, false
	}
	comp, ok := GetComponent[T](em, ids[0])
	return ids[0], comp, ok
}

// typeFor 等同于 reflect.TypeFor（Go 1.22+），供 Go 1.21 工具链使用
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
