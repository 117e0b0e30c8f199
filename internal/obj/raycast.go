package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rayEpsilon rejects rays parallel to a triangle plane.
const rayEpsilon = 1e-9

// Down is the unit vector pointing straight down (-Y).
var Down = mgl64.Vec3{0, -1, 0}

// Hit describes the nearest intersection found by RayCast.
type Hit struct {
	// Point is the world position of the intersection.
	Point mgl64.Vec3
	// Distance is the ray parameter of the hit, in units of the ray direction.
	Distance float64
	// Triangle is the index into Mesh.Triangles.
	Triangle int
	// Normal is the unit face normal, flipped to face the ray origin.
	Normal mgl64.Vec3
}

// RayCast returns the nearest intersection of the ray origin+t*dir (t >= 0)
// with the mesh. Triangles are treated as double sided.
//
// Parameters:
//   - origin: Ray start position
//   - dir: Ray direction; it does not need to be normalized
//
// Returns:
//   - Hit: The closest intersection
//   - bool: false when the ray misses every triangle
func (m *Mesh) RayCast(origin, dir mgl64.Vec3) (Hit, bool) {
	best := Hit{Distance: math.Inf(1), Triangle: -1}
	for i, tri := range m.Triangles {
		t, ok := intersectTriangle(origin, dir, m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]])
		if !ok || t >= best.Distance {
			continue
		}
		best.Distance = t
		best.Triangle = i
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	tri := m.Triangles[best.Triangle]
	a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if normal.Dot(dir) > 0 {
		normal = normal.Mul(-1)
	}
	best.Point = origin.Add(dir.Mul(best.Distance))
	best.Normal = normal
	return best, true
}

// CastDown casts a ray straight down from origin.
// Columns that lie outside the mesh bounds are rejected without testing triangles.
func (m *Mesh) CastDown(origin mgl64.Vec3) (Hit, bool) {
	if !m.Bounds.ContainsXZ(origin.X(), origin.Z()) || origin.Y() < m.Bounds.Min.Y() {
		return Hit{}, false
	}
	return m.RayCast(origin, Down)
}

// intersectTriangle implements the Möller–Trumbore ray/triangle test.
func intersectTriangle(origin, dir, a, b, c mgl64.Vec3) (float64, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := dir.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1.0 / det

	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
