package meshexport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const mollerTrumboreEpsilon = 1e-9

// IntersectRay returns the distance along the ray to the closest triangle of
// the mesh, from either side.
func (m Mesh) IntersectRay(origin, direction mgl64.Vec3) (float64, bool) {
	best, hit := math.Inf(1), false

	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := [3]mgl64.Vec3{
			vec64(m.Positions[m.Indices[i]]),
			vec64(m.Positions[m.Indices[i+1]]),
			vec64(m.Positions[m.Indices[i+2]]),
		}

		if t, ok := rayIntersectsTriangle(origin, direction, tri); ok && t < best {
			best, hit = t, true
		}
	}

	return best, hit
}

func vec64(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// rayIntersectsTriangle determines if a ray intersects a triangle using https://en.wikipedia.org/wiki/M%C3%B6ller%E2%80%93Trumbore_intersection_algorithm
// based on https://github.com/Galaco/kero/blob/dedc4e04e830cc2597308cbfe9e9bcbe30491fae/physics/collision/ray.go#L143
func rayIntersectsTriangle(rayOrigin, rayVector mgl64.Vec3, inTriangle [3]mgl64.Vec3) (float64, bool) {
	vertex0 := inTriangle[0]
	vertex1 := inTriangle[1]
	vertex2 := inTriangle[2]

	edge1 := vertex1.Sub(vertex0)
	edge2 := vertex2.Sub(vertex0)
	h := rayVector.Cross(edge2)
	a := edge1.Dot(h)

	if a > -mollerTrumboreEpsilon && a < mollerTrumboreEpsilon {
		return 0, false // This ray is parallel to this triangle.
	}

	f := 1.0 / a
	s := rayOrigin.Sub(vertex0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * rayVector.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	// At this stage we can compute t to find out where the intersection point is on the line.
	t := f * edge2.Dot(q)
	if t > mollerTrumboreEpsilon {
		return t, true
	}

	// This means that there is a line intersection but not a ray intersection.
	return 0, false
}
