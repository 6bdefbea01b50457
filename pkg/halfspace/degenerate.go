package halfspace

import (
	"math"

	"github.com/samber/lo"
)

// IsDegenerate reports whether face would be a degenerate face of s: fewer than
// three vertices of s lie on its plane, or two of them coincide. The face does
// not need to belong to s, which makes this usable to preview clip planes.
func IsDegenerate(face *Face, s *Solid) bool {
	if face == nil || s == nil {
		return true
	}

	on := lo.Filter(s.vertices, func(v vertexRecord, _ int) bool {
		return math.Abs(face.plane.Dist(v.position)) <= s.tol.Point
	})
	if len(on) < 3 {
		return true
	}

	for i := range on {
		for j := i + 1; j < len(on); j++ {
			if on[i].position.Sub(on[j].position).Len() <= s.tol.Point {
				return true
			}
		}
	}

	return false
}
