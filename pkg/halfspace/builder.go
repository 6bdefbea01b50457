package halfspace

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Cuboid returns an axis-aligned box solid with faces ordered -X, +X, -Y, +Y,
// -Z, +Z. Every face gets a copy of attrs.
func Cuboid(bounds BBox, attrs Attributes) (*Solid, error) {
	if bounds.Empty() || !finiteVec(bounds.Min) || !finiteVec(bounds.Max) {
		return nil, errors.Wrapf(ErrInvalidInput, "invalid cuboid bounds %+v", bounds)
	}

	planes := []Plane{
		{Normal: mgl64.Vec3{-1, 0, 0}, Distance: -bounds.Min[0]},
		{Normal: mgl64.Vec3{1, 0, 0}, Distance: bounds.Max[0]},
		{Normal: mgl64.Vec3{0, -1, 0}, Distance: -bounds.Min[1]},
		{Normal: mgl64.Vec3{0, 1, 0}, Distance: bounds.Max[1]},
		{Normal: mgl64.Vec3{0, 0, -1}, Distance: -bounds.Min[2]},
		{Normal: mgl64.Vec3{0, 0, 1}, Distance: bounds.Max[2]},
	}

	faces := make([]*Face, len(planes))
	for i, p := range planes {
		faces[i] = &Face{plane: p, attributes: attrs, index: -1}
		faces[i].attributes.SurfaceParms = append([]string(nil), attrs.SurfaceParms...)
	}

	return NewFromFaces(faces...)
}
