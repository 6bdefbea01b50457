package halfspace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// Touches reports whether two solids intersect or share boundary points. It
// runs a separating axis test over both solids' face normals and the cross
// products of their edge directions.
func Touches(a, b *Solid) bool {
	if !a.bounds.Intersects(b.bounds) {
		return false
	}

	eps := math.Max(a.tol.Point, b.tol.Point)
	pa, pb := a.positions(), b.positions()

	var axes []mgl64.Vec3
	for _, f := range a.faces {
		axes = append(axes, f.plane.Normal)
	}
	for _, f := range b.faces {
		axes = append(axes, f.plane.Normal)
	}
	for _, ea := range a.edges {
		da := a.vertices[ea.vertices[1]].position.Sub(a.vertices[ea.vertices[0]].position)
		for _, eb := range b.edges {
			db := b.vertices[eb.vertices[1]].position.Sub(b.vertices[eb.vertices[0]].position)
			if axis := da.Cross(db); axis.Len() > eps {
				axes = append(axes, axis.Normalize())
			}
		}
	}

	for _, axis := range axes {
		minA, maxA := project(pa, axis)
		minB, maxB := project(pb, axis)
		if maxA < minB-eps || maxB < minA-eps {
			return false
		}
	}

	return true
}

// Contains reports whether every vertex of inner lies inside outer.
func Contains(outer, inner *Solid) bool {
	if !outer.bounds.Inflate(outer.tol.Point).Contains(inner.bounds.Min) ||
		!outer.bounds.Inflate(outer.tol.Point).Contains(inner.bounds.Max) {
		return false
	}

	return lo.EveryBy(inner.vertices, func(v vertexRecord) bool {
		return outer.ContainsPoint(v.position)
	})
}

func (s *Solid) positions() []mgl64.Vec3 {
	return lo.Map(s.vertices, func(v vertexRecord, _ int) mgl64.Vec3 { return v.position })
}

func project(points []mgl64.Vec3, axis mgl64.Vec3) (lower, upper float64) {
	lower, upper = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		lower = math.Min(lower, d)
		upper = math.Max(upper, d)
	}
	return lower, upper
}
