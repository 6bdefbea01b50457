package halfspace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Plane is the boundary of a half-space. Points p with Normal·p <= Distance
// are inside.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// PointStatus classifies a point against a plane.
type PointStatus int

const (
	PointBelow PointStatus = iota - 1
	PointInside
	PointAbove
)

// NewPlane returns a plane with the given normal (normalized) and distance
// from the origin. The normal is rejected as zero when its length is below
// the determinant tolerance; any longer normal is accepted and rescaled.
func NewPlane(normal mgl64.Vec3, distance float64) (Plane, error) {
	if !finiteVec(normal) || !finite(distance) {
		return Plane{}, errors.Wrapf(ErrInvalidInput, "non-finite plane (%v, %v)", normal, distance)
	}

	l := normal.Len()
	if l < CurrentTolerances().Determinant {
		return Plane{}, errors.Wrapf(ErrInvalidInput, "zero plane normal %v", normal)
	}

	return Plane{Normal: normal.Mul(1 / l), Distance: distance / l}, nil
}

// PlaneFromPoints returns the plane through a, b and c with the normal
// (b-a)×(c-a).
func PlaneFromPoints(a, b, c mgl64.Vec3) (Plane, error) {
	if !finiteVec(a) || !finiteVec(b) || !finiteVec(c) {
		return Plane{}, errors.Wrapf(ErrInvalidInput, "non-finite point in (%v, %v, %v)", a, b, c)
	}

	cross := b.Sub(a).Cross(c.Sub(a))
	if cross.Len() < CurrentTolerances().Point {
		return Plane{}, errors.Wrapf(ErrCollinearPoints, "(%v, %v, %v)", a, b, c)
	}

	normal := cross.Normalize()

	return Plane{Normal: normal, Distance: normal.Dot(a)}, nil
}

// Dist returns the signed distance of p from the plane. Positive values are
// outside.
func (p Plane) Dist(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) - p.Distance
}

// PointStatus classifies point with the given thickness.
func (p Plane) PointStatus(point mgl64.Vec3, eps float64) PointStatus {
	d := p.Dist(point)

	switch {
	case d > eps:
		return PointAbove
	case d < -eps:
		return PointBelow
	default:
		return PointInside
	}
}

// Anchor returns the point on the plane closest to the origin.
func (p Plane) Anchor() mgl64.Vec3 {
	return p.Normal.Mul(p.Distance)
}

// Translate returns the plane moved by delta.
func (p Plane) Translate(delta mgl64.Vec3) Plane {
	return Plane{Normal: p.Normal, Distance: p.Distance + p.Normal.Dot(delta)}
}

// Flip returns the plane bounding the opposite half-space.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Mul(-1), Distance: -p.Distance}
}

// Equal reports whether the planes coincide within tol. Only the geometry is
// compared.
func (p Plane) Equal(other Plane, tol Tolerances) bool {
	return p.Normal.Sub(other.Normal).Len() <= tol.Angle &&
		math.Abs(p.Distance-other.Distance) <= tol.Point
}

func (p Plane) valid() bool {
	return finiteVec(p.Normal) && finite(p.Distance) && math.Abs(p.Normal.Len()-1) < 1e-6
}

// intersect3 returns the point shared by three planes using Cramer's rule.
func intersect3(a, b, c Plane, detEps float64) (mgl64.Vec3, bool) {
	bc := b.Normal.Cross(c.Normal)
	det := a.Normal.Dot(bc)

	if math.Abs(det) < detEps {
		return mgl64.Vec3{}, false
	}

	ca := c.Normal.Cross(a.Normal)
	ab := a.Normal.Cross(b.Normal)

	p := bc.Mul(a.Distance).Add(ca.Mul(b.Distance)).Add(ab.Mul(c.Distance)).Mul(1 / det)

	return p, finiteVec(p)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
