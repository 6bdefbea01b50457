// Package halfspace implements convex solids ("brushes") defined as the
// intersection of half-spaces.
//
// A Solid owns its faces, vertices and edges. Vertices and edges are derived
// from the face planes and recomputed from scratch whenever a plane changes.
// Handles returned by queries are stamped with the solid's generation and
// become invalid after the next successful rebuild.
package halfspace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Solid is a closed convex polyhedron. A Solid must not be mutated
// concurrently.
type Solid struct {
	id  uuid.UUID
	gen uint64
	tol Tolerances

	faces    []*Face
	vertices []vertexRecord
	edges    []edgeRecord
	loops    [][]int
	bounds   BBox

	invalid bool
}

// Vertex is a snapshot of a solid vertex.
type Vertex struct {
	ID       VertexID
	Position mgl64.Vec3
}

// Edge is a snapshot of a solid edge. Vertices[0] has the lower index.
type Edge struct {
	ID       EdgeID
	Vertices [2]VertexID
	Faces    [2]FaceID
	Start    mgl64.Vec3
	End      mgl64.Vec3
}

// New builds a solid from planes. Faces get empty attributes.
func New(planes ...Plane) (*Solid, error) {
	faces := make([]*Face, 0, len(planes))

	for _, p := range planes {
		f, err := NewFace(p, Attributes{})
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}

	return NewFromFaces(faces...)
}

// NewFromFaces builds the convex solid bounded by the faces. Faces whose planes
// do not contribute to the hull are dropped, as are faces duplicating the plane
// of an earlier face. The faces must not belong to another solid.
func NewFromFaces(faces ...*Face) (*Solid, error) {
	return NewFromFacesWithTolerances(CurrentTolerances(), faces...)
}

// NewFromFacesWithTolerances is like NewFromFaces but builds the solid with
// tol instead of the process-wide tolerances.
func NewFromFacesWithTolerances(tol Tolerances, faces ...*Face) (*Solid, error) {
	if err := tol.validate(); err != nil {
		return nil, err
	}

	for i, f := range faces {
		if f == nil {
			return nil, errors.Wrapf(ErrInvalidInput, "face %d is nil", i)
		}
		if f.solid != nil {
			return nil, errors.Wrapf(ErrInvalidInput, "face %d already belongs to solid %s", i, f.solid.id)
		}
		if !f.plane.valid() {
			return nil, errors.Wrapf(ErrInvalidInput, "face %d has an invalid plane %+v", i, f.plane)
		}
	}

	s := &Solid{
		id:  uuid.New(),
		tol: tol,
	}

	planes := lo.Map(faces, func(f *Face, _ int) Plane { return f.plane })
	if err := s.apply(faces, planes); err != nil {
		return nil, err
	}

	return s, nil
}

// Clone returns a copy of the solid with a new identity and copies of its
// faces. Handles of s do not resolve in the clone.
func (s *Solid) Clone() *Solid {
	c := *s
	c.id = uuid.New()
	c.faces = make([]*Face, len(s.faces))

	for i, f := range s.faces {
		c.faces[i] = f.clone()
		c.faces[i].solid, c.faces[i].index = &c, i
	}

	return &c
}

// ID returns the identity of the solid. It does not change across rebuilds.
func (s *Solid) ID() uuid.UUID {
	return s.id
}

// Generation is incremented by every successful rebuild.
func (s *Solid) Generation() uint64 {
	return s.gen
}

// Tolerances returns the thresholds captured when the solid was built.
func (s *Solid) Tolerances() Tolerances {
	return s.tol
}

// Invalid reports whether the last requested mutation failed. The solid then
// still holds the geometry of its last successful rebuild.
func (s *Solid) Invalid() bool {
	return s.invalid
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (s *Solid) Bounds() BBox {
	return s.bounds
}

// Faces returns the faces in insertion order.
func (s *Solid) Faces() []*Face {
	return append([]*Face(nil), s.faces...)
}

// Planes returns the face planes in face order.
func (s *Solid) Planes() []Plane {
	return lo.Map(s.faces, func(f *Face, _ int) Plane { return f.plane })
}

// Vertices returns the vertices sorted by position.
func (s *Solid) Vertices() []Vertex {
	return lo.Map(s.vertices, func(_ vertexRecord, i int) Vertex { return s.vertex(i) })
}

// Edges returns the edges sorted by vertex index.
func (s *Solid) Edges() []Edge {
	return lo.Map(s.edges, func(_ edgeRecord, i int) Edge { return s.edge(i) })
}

// Face resolves a face handle.
func (s *Solid) Face(id FaceID) (*Face, error) {
	i, err := s.resolve(id.handle, len(s.faces))
	if err != nil {
		return nil, err
	}
	return s.faces[i], nil
}

// Vertex resolves a vertex handle.
func (s *Solid) Vertex(id VertexID) (Vertex, error) {
	i, err := s.resolve(id.handle, len(s.vertices))
	if err != nil {
		return Vertex{}, err
	}
	return s.vertex(i), nil
}

// Edge resolves an edge handle.
func (s *Solid) Edge(id EdgeID) (Edge, error) {
	i, err := s.resolve(id.handle, len(s.edges))
	if err != nil {
		return Edge{}, err
	}
	return s.edge(i), nil
}

// FaceVertices returns the vertex loop of a face, counter-clockwise when seen
// from outside the solid.
func (s *Solid) FaceVertices(id FaceID) ([]Vertex, error) {
	i, err := s.resolve(id.handle, len(s.faces))
	if err != nil {
		return nil, err
	}
	return lo.Map(s.loops[i], func(v int, _ int) Vertex { return s.vertex(v) }), nil
}

// FaceArea returns the area of a face polygon.
func (s *Solid) FaceArea(id FaceID) (float64, error) {
	i, err := s.resolve(id.handle, len(s.faces))
	if err != nil {
		return 0, err
	}

	loop := s.loops[i]
	origin := s.vertices[loop[0]].position

	var sum mgl64.Vec3
	for j := 1; j+1 < len(loop); j++ {
		a := s.vertices[loop[j]].position.Sub(origin)
		b := s.vertices[loop[j+1]].position.Sub(origin)
		sum = sum.Add(a.Cross(b))
	}

	return math.Abs(sum.Dot(s.faces[i].plane.Normal)) / 2, nil
}

// ContainsPoint reports whether p lies inside or on the solid.
func (s *Solid) ContainsPoint(p mgl64.Vec3) bool {
	return insideAll(s.Planes(), p, s.tol.Point)
}

// MovePlane replaces the plane of a face and rebuilds the solid. On failure
// the solid keeps its previous geometry and reports Invalid.
func (s *Solid) MovePlane(id FaceID, plane Plane) error {
	i, err := s.resolve(id.handle, len(s.faces))
	if err != nil {
		return err
	}
	if !plane.valid() {
		return errors.Wrapf(ErrInvalidInput, "plane %+v is not normalized or not finite", plane)
	}

	planes := s.Planes()
	planes[i] = plane

	return s.apply(s.faces, planes, s.faces[i])
}

func (s *Solid) vertex(i int) Vertex {
	return Vertex{
		ID:       VertexID{handle: s.handle(i)},
		Position: s.vertices[i].position,
	}
}

func (s *Solid) edge(i int) Edge {
	e := s.edges[i]
	return Edge{
		ID:       EdgeID{handle: s.handle(i)},
		Vertices: [2]VertexID{{handle: s.handle(e.vertices[0])}, {handle: s.handle(e.vertices[1])}},
		Faces:    [2]FaceID{{handle: s.handle(e.faces[0])}, {handle: s.handle(e.faces[1])}},
		Start:    s.vertices[e.vertices[0]].position,
		End:      s.vertices[e.vertices[1]].position,
	}
}

func (s *Solid) handle(index int) handle {
	return handle{owner: s.id, gen: s.gen, index: index}
}

func (s *Solid) resolve(h handle, n int) (int, error) {
	if h.IsZero() {
		return 0, errors.Wrap(ErrInvalidReference, "zero handle")
	}
	if h.owner != s.id {
		return 0, errors.Wrapf(ErrInvalidReference, "handle belongs to solid %s, not %s", h.owner, s.id)
	}
	if h.gen != s.gen {
		return 0, errors.Wrapf(ErrInvalidReference, "handle from generation %d, solid is at %d", h.gen, s.gen)
	}
	if h.index < 0 || h.index >= n {
		return 0, errors.Wrapf(ErrInvalidReference, "index %d out of range [0, %d)", h.index, n)
	}
	return h.index, nil
}

// apply rebuilds the solid from faces with the given planes (planes[i] belongs
// to faces[i]). Nothing is modified unless the rebuild succeeds and every face
// in required survives.
func (s *Solid) apply(faces []*Face, planes []Plane, required ...*Face) error {
	log := Logger().With("solid", s.id)

	unique := make([]int, 0, len(planes))
	for i, p := range planes {
		if lo.ContainsBy(unique, func(j int) bool { return planes[j].Equal(p, s.tol) }) {
			log.Debug("dropping duplicate face", "plane", p)
			continue
		}
		unique = append(unique, i)
	}

	uniquePlanes := lo.Map(unique, func(i int, _ int) Plane { return planes[i] })

	poly, err := buildPolyhedron(uniquePlanes, s.tol)
	if err != nil {
		s.invalid = s.faces != nil
		log.Debug("rebuild failed", "faces", len(unique), "err", err)
		return err
	}

	kept := lo.Map(poly.kept, func(k int, _ int) int { return unique[k] })

	for _, r := range required {
		if !lo.ContainsBy(kept, func(i int) bool { return faces[i] == r }) {
			s.invalid = s.faces != nil
			log.Debug("rebuild would drop a required face", "plane", r.plane)
			return errors.Wrap(ErrDegenerateGeometry, "face would no longer bound the solid")
		}
	}

	for _, f := range s.faces {
		f.solid, f.index = nil, -1
	}

	newFaces := make([]*Face, len(kept))
	for i, k := range kept {
		f := faces[k]
		f.plane = planes[k]
		f.solid, f.index = s, i
		newFaces[i] = f
	}

	if dropped := len(planes) - len(kept); dropped > 0 {
		log.Debug("dropped redundant faces", "count", dropped)
	}

	s.faces = newFaces
	s.vertices = poly.vertices
	s.edges = poly.edges
	s.loops = poly.loops
	s.bounds = poly.bounds
	s.invalid = false
	s.gen++

	return nil
}
