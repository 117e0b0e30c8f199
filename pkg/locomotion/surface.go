package locomotion

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/internal/obj"
	"github.com/decker502/stickwalk/pkg/config"
)

// ErrSurfaceNotLoaded 网格尚未加载完成
var ErrSurfaceNotLoaded = errors.New("surface mesh not loaded")

// Contact 地面查询结果
type Contact struct {
	// Point 角色下方的接触点
	Point mgl64.Vec3
	// Tolerance 接触判定容差：脚底高度不超过 Point.Y+Tolerance 即视为着地
	Tolerance float64
}

// Height 返回接触点高度
func (c Contact) Height() float64 {
	return c.Point.Y()
}

// SurfaceProvider 地面高度查询接口
type SurfaceProvider interface {
	// Ready 地面是否可用；不可用时控制器跳过接触判定
	Ready() bool
	// HeightBelow 查询 pos 正下方的接触点，下方没有地面时返回 false
	HeightBelow(pos mgl64.Vec3) (Contact, bool)
}

// FlatPlane 常量高度的无限平面
type FlatPlane struct {
	Height float64
}

// Ready 平面总是可用
func (p FlatPlane) Ready() bool { return true }

// HeightBelow 返回平面上正下方的点
func (p FlatPlane) HeightBelow(pos mgl64.Vec3) (Contact, bool) {
	return Contact{Point: mgl64.Vec3{pos.X(), p.Height, pos.Z()}}, true
}

// MeshLoader 加载网格的函数，在独立 goroutine 中执行
type MeshLoader func(ctx context.Context) (*obj.Mesh, error)

// MeshSurface 基于静态网格的地面
//
// 网格只写入一次（nil → 可用），之后不再修改；
// 每帧通过 Ready() 轮询加载状态，不需要加锁。
type MeshSurface struct {
	rayOffset float64
	epsilon   float64

	mesh    atomic.Pointer[obj.Mesh]
	err     atomic.Pointer[error]
	started atomic.Bool
	done    chan struct{}
}

// NewMeshSurface 创建一个尚未加载网格的地面
//
// 参数:
//   - rayOffset: 射线起点相对角色位置的向上偏移
//   - epsilon: 接触判定容差
func NewMeshSurface(rayOffset, epsilon float64) *MeshSurface {
	return &MeshSurface{
		rayOffset: rayOffset,
		epsilon:   epsilon,
		done:      make(chan struct{}),
	}
}

// NewSurface 根据配置选择地面实现
// mesh 类型返回未加载的 *MeshSurface，由调用方启动 LoadAsync
func NewSurface(cfg config.SurfaceConfig) SurfaceProvider {
	if cfg.Type == config.SurfaceMesh {
		return NewMeshSurface(cfg.RayOffset, cfg.Epsilon)
	}
	return FlatPlane{Height: cfg.Height}
}

// SetMesh 直接发布网格；只有第一次调用生效
func (m *MeshSurface) SetMesh(mesh *obj.Mesh) bool {
	if mesh == nil {
		return false
	}
	return m.mesh.CompareAndSwap(nil, mesh)
}

// LoadAsync 在独立 goroutine 中执行 load，完成后发布网格
// 重复调用会被忽略。返回的通道在加载结束（成功或失败）后关闭。
func (m *MeshSurface) LoadAsync(ctx context.Context, load MeshLoader) <-chan struct{} {
	if !m.started.CompareAndSwap(false, true) {
		return m.done
	}
	go func() {
		defer close(m.done)
		mesh, err := load(ctx)
		if err == nil && mesh == nil {
			err = ErrSurfaceNotLoaded
		}
		if err != nil {
			m.err.Store(&err)
			log.Warn().Err(err).Msg("[Surface] mesh load failed, character will free-fall")
			return
		}
		m.SetMesh(mesh)
		log.Info().
			Str("mesh", mesh.Name).
			Int("triangles", len(mesh.Triangles)).
			Msg("[Surface] mesh loaded")
	}()
	return m.done
}

// Done 返回加载结束通道（未调用 LoadAsync 时永不关闭）
func (m *MeshSurface) Done() <-chan struct{} {
	return m.done
}

// Err 返回加载错误；加载中或成功时为 nil
func (m *MeshSurface) Err() error {
	if p := m.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Mesh 返回已加载的网格，未加载时为 nil
func (m *MeshSurface) Mesh() *obj.Mesh {
	return m.mesh.Load()
}

// Ready 网格是否已加载
func (m *MeshSurface) Ready() bool {
	return m.mesh.Load() != nil
}

// HeightBelow 从 pos 上方 rayOffset 处向下投射射线
func (m *MeshSurface) HeightBelow(pos mgl64.Vec3) (Contact, bool) {
	mesh := m.mesh.Load()
	if mesh == nil {
		return Contact{}, false
	}
	hit, ok := mesh.CastDown(pos.Add(mgl64.Vec3{0, m.rayOffset, 0}))
	if !ok {
		return Contact{}, false
	}
	return Contact{Point: hit.Point, Tolerance: m.epsilon}, true
}
