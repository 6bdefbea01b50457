package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rayIntersectsBox determines whether ray intersects an axis-aligned bounding box
// and returns the ray parameter of the entry point, or of the exit point when
// the origin is inside the box.
// based on https://github.com/Galaco/kero/blob/dedc4e04e830cc2597308cbfe9e9bcbe30491fae/physics/collision/ray.go#L73
func rayIntersectsBox(ray Ray, min, max mgl64.Vec3) (float64, bool) {
	// Any component of direction could be 0!
	// Address this by using a small number, close to
	// 0 in case any of directions components are 0
	dir := ray.Direction
	for i := range dir {
		if dir[i] == 0 {
			dir[i] = 0.00001
		}
	}

	origin := ray.Origin

	t1 := (min[0] - origin[0]) / dir[0]
	t2 := (max[0] - origin[0]) / dir[0]
	t3 := (min[1] - origin[1]) / dir[1]
	t4 := (max[1] - origin[1]) / dir[1]
	t5 := (min[2] - origin[2]) / dir[2]
	t6 := (max[2] - origin[2]) / dir[2]

	tmin := math.Max(math.Max(math.Min(t1, t2), math.Min(t3, t4)), math.Min(t5, t6))
	tmax := math.Min(math.Min(math.Max(t1, t2), math.Max(t3, t4)), math.Max(t5, t6))

	// box is behind the ray origin
	if tmax < 0 {
		return 0, false
	}

	if tmin > tmax {
		return 0, false
	}

	// origin is inside the box
	if tmin < 0 {
		return tmax, true
	}

	return tmin, true
}
