package halfspace

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Attributes is the surface payload of a face. The kernel carries it but never
// looks at it.
type Attributes struct {
	TextureName  string
	Offset       [2]float64
	Rotation     float64
	Scale        [2]float64
	SurfaceFlags int32
	ContentFlags int32
	SurfaceParms []string
}

// DefaultAttributes returns attributes with the given texture and unit scale.
func DefaultAttributes(textureName string) Attributes {
	return Attributes{
		TextureName: textureName,
		Scale:       [2]float64{1, 1},
	}
}

// Face is one bounding plane of a solid together with its surface attributes.
type Face struct {
	plane      Plane
	attributes Attributes

	solid *Solid
	index int
}

// NewFace returns a face that is not yet part of a solid.
func NewFace(plane Plane, attrs Attributes) (*Face, error) {
	if !plane.valid() {
		return nil, errors.Wrapf(ErrInvalidInput, "face plane %+v is not normalized or not finite", plane)
	}

	return &Face{plane: plane, attributes: attrs, index: -1}, nil
}

// NewFaceFromPoints returns a face through three points.
func NewFaceFromPoints(a, b, c mgl64.Vec3, attrs Attributes) (*Face, error) {
	p, err := PlaneFromPoints(a, b, c)
	if err != nil {
		return nil, err
	}

	return &Face{plane: p, attributes: attrs, index: -1}, nil
}

// Plane returns the face's plane.
func (f *Face) Plane() Plane {
	return f.plane
}

// Attributes returns a copy of the surface attributes.
func (f *Face) Attributes() Attributes {
	attrs := f.attributes
	attrs.SurfaceParms = append([]string(nil), f.attributes.SurfaceParms...)

	return attrs
}

// SetAttributes replaces the surface attributes. The geometry is unaffected.
func (f *Face) SetAttributes(attrs Attributes) {
	f.attributes = attrs
}

// Solid returns the solid owning the face, or nil.
func (f *Face) Solid() *Solid {
	return f.solid
}

// ID returns the face's handle in the current generation of its solid. The
// zero FaceID is returned for faces without a solid.
func (f *Face) ID() FaceID {
	if f.solid == nil {
		return FaceID{}
	}

	return FaceID{handle: f.solid.handle(f.index)}
}

func (f *Face) clone() *Face {
	c := *f
	c.attributes = f.Attributes()
	c.solid = nil
	c.index = -1

	return &c
}
