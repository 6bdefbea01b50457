package pick

import (
	"math"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

// PickFace intersects the ray with the faces of s that face the ray origin.
// The intersection point must lie within the face polygon.
func PickFace(ray Ray, s *halfspace.Solid) Hit {
	if !validQuery(ray, 0) {
		return NoHit
	}

	eps := s.Tolerances().Point
	best := NoHit

	for _, f := range s.Faces() {
		plane := f.Plane()

		dot := plane.Normal.Dot(ray.Direction)
		if dot >= 0 {
			// parallel or back-facing
			continue
		}

		t := (plane.Distance - plane.Normal.Dot(ray.Origin)) / dot
		if t < 0 || t >= best.Distance {
			continue
		}

		loop, err := s.FaceVertices(f.ID())
		if err != nil {
			halfspace.Logger().Debug("pick: face without loop", "err", err)
			continue
		}

		point := ray.PointAt(t)

		i := 0
		for ; i < len(loop); i++ {
			a, b := loop[i].Position, loop[(i+1)%len(loop)].Position
			e := b.Sub(a)

			// inside of a counter-clockwise loop is to the left of every edge
			inward := plane.Normal.Cross(e)
			if inward.Dot(point.Sub(a)) < -eps*e.Len() {
				break
			}
		}

		if i == len(loop) {
			best = Hit{Type: FaceHit, Distance: t, Point: point, Target: f.ID()}
		}
	}

	return best
}

// PickEdge returns the edge closest along the ray whose distance to the ray
// is at most radius.
func PickEdge(ray Ray, s *halfspace.Solid, radius float64) Hit {
	if !validQuery(ray, radius) {
		return NoHit
	}

	best := NoHit
	bestMiss := math.Inf(1)

	for _, e := range s.Edges() {
		t, u := ray.closestToSegment(e.Start, e.End)

		point := e.Start.Add(e.End.Sub(e.Start).Mul(u))
		miss := ray.PointAt(t).Sub(point).Len()
		if miss > radius {
			continue
		}

		if t < best.Distance || (t == best.Distance && miss < bestMiss) {
			best = Hit{Type: EdgeHit, Distance: t, Point: point, Target: e.ID, Error: radius}
			bestMiss = miss
		}
	}

	return best
}

// PickVertex returns the vertex closest along the ray whose distance to the
// ray is at most radius. Vertices behind the ray origin are ignored.
func PickVertex(ray Ray, s *halfspace.Solid, radius float64) Hit {
	if !validQuery(ray, radius) {
		return NoHit
	}

	best := NoHit
	bestMiss := math.Inf(1)

	for _, v := range s.Vertices() {
		t := ray.Direction.Dot(v.Position.Sub(ray.Origin))
		if t < 0 {
			continue
		}

		miss := ray.PointAt(t).Sub(v.Position).Len()
		if miss > radius {
			continue
		}

		if t < best.Distance || (t == best.Distance && miss < bestMiss) {
			best = Hit{Type: VertexHit, Distance: t, Point: v.Position, Target: v.ID, Error: radius}
			bestMiss = miss
		}
	}

	return best
}

// Pick runs all three queries and returns the closest hit, preferring vertices
// over edges over faces at comparable distance.
func Pick(ray Ray, s *halfspace.Solid, radius float64) Hit {
	if !validQuery(ray, radius) {
		return NoHit
	}

	return SelectClosest(
		PickVertex(ray, s, radius),
		PickEdge(ray, s, radius),
		PickFace(ray, s),
	)
}

// PickSolids picks across solids and returns the closest hit together with the
// index of the solid it belongs to, or NoHit and -1.
func PickSolids(ray Ray, solids []*halfspace.Solid, radius float64) (Hit, int) {
	if !validQuery(ray, radius) {
		return NoHit, -1
	}

	hits := make([]Hit, len(solids))

	for i, s := range solids {
		hits[i] = NoHit

		if s == nil {
			continue
		}

		b := s.Bounds().Inflate(radius + s.Tolerances().Point)
		if _, ok := rayIntersectsBox(ray, b.Min, b.Max); !ok {
			continue
		}

		hits[i] = Pick(ray, s, radius)
	}

	i := selectClosest(hits)
	if i < 0 {
		return NoHit, -1
	}

	return hits[i], i
}
