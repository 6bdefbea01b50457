// Package pick implements ray picking of solid faces, edges and vertices.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

// Ray is a half-line starting at Origin. Direction has unit length; rays built
// without NewRay that break this are ignored by every pick query.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl64.Vec3) (Ray, error) {
	for i := 0; i < 3; i++ {
		if !finite(origin[i]) || !finite(direction[i]) {
			return Ray{}, errors.Wrapf(halfspace.ErrInvalidInput, "non-finite ray %v -> %v", origin, direction)
		}
	}

	l := direction.Len()
	if l == 0 {
		return Ray{}, errors.Wrap(halfspace.ErrInvalidInput, "ray direction is zero")
	}

	return Ray{Origin: origin, Direction: direction.Mul(1 / l)}, nil
}

// unitTolerance bounds how far |Direction| may stray from 1.
const unitTolerance = 1e-6

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// valid reports whether the ray is finite with a unit-length direction.
func (r Ray) valid() bool {
	for i := 0; i < 3; i++ {
		if !finite(r.Origin[i]) || !finite(r.Direction[i]) {
			return false
		}
	}

	return math.Abs(r.Direction.Len()-1) <= unitTolerance
}

// validQuery reports whether a pick with ray and radius can return a hit.
// NaN and negative radii never match.
func validQuery(ray Ray, radius float64) bool {
	if !ray.valid() || !(radius >= 0) {
		halfspace.Logger().Debug("pick: rejected query", "ray", ray, "radius", radius)
		return false
	}

	return true
}

// PointAt returns the point at distance t along the ray.
func (r Ray) PointAt(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// closestToSegment returns the ray parameter t >= 0 and segment parameter
// u in [0, 1] of the closest points between the ray and segment a-b.
func (r Ray) closestToSegment(a, b mgl64.Vec3) (t, u float64) {
	e := b.Sub(a)
	ee := e.Dot(e)
	if ee == 0 {
		return math.Max(0, r.Direction.Dot(a.Sub(r.Origin))), 0
	}

	w := r.Origin.Sub(a)
	de := r.Direction.Dot(e)
	dw := r.Direction.Dot(w)
	ew := e.Dot(w)

	// Direction has unit length, so the determinant is |e|^2 - (d.e)^2.
	if denom := ee - de*de; denom > 1e-12*ee {
		u = (ew - de*dw) / denom
	}

	u = clamp01(u)
	t = math.Max(0, r.Direction.Dot(a.Add(e.Mul(u)).Sub(r.Origin)))
	u = clamp01(r.PointAt(t).Sub(a).Dot(e) / ee)

	return t, u
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
