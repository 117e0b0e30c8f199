package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitOffset 返回球面坐标 (azimuth, elevation, distance) 对应的偏移
// azimuth 为 0、elevation 为 0 时指向 +Z
func OrbitOffset(azimuth, elevation, distance float64) mgl64.Vec3 {
	cosE := math.Cos(elevation)
	return mgl64.Vec3{
		math.Sin(azimuth) * cosE * distance,
		math.Sin(elevation) * distance,
		math.Cos(azimuth) * cosE * distance,
	}
}
