package halfspace

import "github.com/google/uuid"

// handle addresses a record in a solid's arena. It is only valid for the
// generation of the solid that produced it.
type handle struct {
	owner uuid.UUID
	gen   uint64
	index int
}

// Index returns the position of the record in the ordered sequence it was
// taken from.
func (h handle) Index() int {
	return h.index
}

// IsZero reports whether the handle was never assigned.
func (h handle) IsZero() bool {
	return h.owner == uuid.Nil
}

// FaceID is a non-owning reference to a face of a solid.
type FaceID struct{ handle }

// VertexID is a non-owning reference to a vertex of a solid.
type VertexID struct{ handle }

// EdgeID is a non-owning reference to an edge of a solid.
type EdgeID struct{ handle }
