package halfspace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Side names one of the six sides of a bounding box.
type Side int

const (
	SideMinX Side = iota
	SideMaxX
	SideMinY
	SideMaxY
	SideMinZ
	SideMaxZ
)

// Axis returns 0, 1 or 2.
func (s Side) Axis() int {
	return int(s) / 2
}

// IsMax reports whether the side faces the positive axis direction.
func (s Side) IsMax() bool {
	return int(s)%2 == 1
}

// Anchor selects what stays in place while a bounding box side is dragged.
type Anchor int

const (
	// AnchorOpposite keeps the opposite side fixed.
	AnchorOpposite Anchor = iota
	// AnchorCenter keeps the center fixed and moves both sides.
	AnchorCenter
)

// Translate moves every face plane by delta.
func (s *Solid) Translate(delta mgl64.Vec3) error {
	if !finiteVec(delta) {
		return errors.Wrapf(ErrInvalidInput, "non-finite delta %v", delta)
	}

	planes := lo.Map(s.faces, func(f *Face, _ int) Plane { return f.plane.Translate(delta) })

	return s.apply(s.faces, planes, s.faces...)
}

// ScaleTo maps the solid's current bounds onto bounds with a per-axis scale
// and translation, transforming every face plane.
func (s *Solid) ScaleTo(bounds BBox) error {
	if !finiteVec(bounds.Min) || !finiteVec(bounds.Max) {
		return errors.Wrapf(ErrInvalidInput, "non-finite bounds %+v", bounds)
	}

	from, to := s.bounds.Size(), bounds.Size()

	var scale, offset mgl64.Vec3
	for i := 0; i < 3; i++ {
		if to[i] <= s.tol.Point {
			s.invalid = true
			return errors.Wrapf(ErrDegenerateGeometry, "target bounds have size %v on axis %d", to[i], i)
		}
		scale[i] = to[i] / from[i]
		offset[i] = bounds.Min[i] - scale[i]*s.bounds.Min[i]
	}

	planes := lo.Map(s.faces, func(f *Face, _ int) Plane {
		n := f.plane.Normal
		normal := mgl64.Vec3{n[0] / scale[0], n[1] / scale[1], n[2] / scale[2]}.Normalize()

		a := f.plane.Anchor()
		anchor := mgl64.Vec3{a[0]*scale[0] + offset[0], a[1]*scale[1] + offset[1], a[2]*scale[2] + offset[2]}

		return Plane{Normal: normal, Distance: normal.Dot(anchor)}
	})

	return s.apply(s.faces, planes, s.faces...)
}

// Clip intersects the solid with the half-space of face. A face that does not
// cut the solid leaves it unchanged and is not added.
func (s *Solid) Clip(face *Face) error {
	if face == nil || face.solid != nil || !face.plane.valid() {
		return errors.Wrap(ErrInvalidInput, "clip face must be a valid face without a solid")
	}

	if lo.EveryBy(s.vertices, func(v vertexRecord) bool { return face.plane.Dist(v.position) <= s.tol.Point }) {
		return nil
	}

	faces := append(s.Faces(), face)
	planes := lo.Map(faces, func(f *Face, _ int) Plane { return f.plane })

	if err := s.apply(faces, planes, face); err != nil {
		return errors.Wrap(err, "clip would leave no solid")
	}

	return nil
}

// MoveBoundsSide returns bounds with side dragged by the delta component along
// the side's axis. Axes flagged in proportional are scaled by the same factor
// around their center. Bounds that would collapse or invert are rejected.
func MoveBoundsSide(bounds BBox, side Side, delta mgl64.Vec3, anchor Anchor, proportional [3]bool) (BBox, error) {
	if !finiteVec(delta) || !finiteVec(bounds.Min) || !finiteVec(bounds.Max) {
		return bounds, errors.Wrapf(ErrInvalidInput, "non-finite delta %v or bounds %+v", delta, bounds)
	}

	axis := side.Axis()
	d := delta[axis]

	out := bounds
	if side.IsMax() {
		out.Max[axis] += d
		if anchor == AnchorCenter {
			out.Min[axis] -= d
		}
	} else {
		out.Min[axis] += d
		if anchor == AnchorCenter {
			out.Max[axis] -= d
		}
	}

	oldSize, newSize := bounds.Size()[axis], out.Size()[axis]
	if newSize <= 0 || oldSize <= 0 {
		return bounds, errors.Wrapf(ErrDegenerateGeometry, "side %d would collapse to size %v", side, newSize)
	}

	factor := newSize / oldSize
	center := bounds.Center()

	for i := 0; i < 3; i++ {
		if i == axis || !proportional[i] {
			continue
		}
		half := bounds.Size()[i] * factor / 2
		out.Min[i] = center[i] - half
		out.Max[i] = center[i] + half
	}

	return out, nil
}

// SnapDelta rounds every component of delta to a multiple of grid. A grid
// size of zero or less disables snapping.
func SnapDelta(delta mgl64.Vec3, grid float64) (mgl64.Vec3, error) {
	if !finiteVec(delta) || !finite(grid) {
		return delta, errors.Wrapf(ErrInvalidInput, "non-finite delta %v or grid %v", delta, grid)
	}

	if grid <= 0 {
		return delta, nil
	}

	for i := range delta {
		delta[i] = math.Round(delta[i]/grid) * grid
	}

	return delta, nil
}
