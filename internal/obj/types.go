package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle references three vertex positions of a Mesh by index.
type Triangle [3]int

// Mesh is the static triangle geometry decoded from a Wavefront OBJ file.
// Polygonal faces are fan-triangulated at decode time, so every face is a Triangle.
type Mesh struct {
	// Name is the first object/group name found in the file, or the file name.
	Name string
	// Vertices holds every "v" position in file order.
	Vertices []mgl64.Vec3
	// Triangles holds every face after triangulation.
	Triangles []Triangle
	// Bounds is the axis aligned box enclosing all referenced vertices.
	Bounds AABB
}

// AABB is an axis aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// emptyAABB returns an inverted box that any Extend call will replace.
func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the box so that it contains p.
func (b *AABB) Extend(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsXZ reports whether the vertical column through (x, z) crosses the box.
func (b AABB) ContainsXZ(x, z float64) bool {
	return x >= b.Min.X() && x <= b.Max.X() && z >= b.Min.Z() && z <= b.Max.Z()
}

// Edges returns every unique triangle edge as a pair of vertex indices.
// Used by renderers that draw the mesh as a wireframe.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Triangles)*3)
	edges := make([][2]int, 0, len(m.Triangles)*3/2)
	for _, tri := range m.Triangles {
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}
