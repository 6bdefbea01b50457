package pick

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// HitType classifies a hit. Types are bits so that callers can filter with a mask.
type HitType uint32

const (
	FaceHit HitType = 1 << iota
	EdgeHit
	VertexHit

	numBuiltinHitTypes = iota
)

// AnyHit matches every hit type.
const AnyHit = ^HitType(0)

var nextHitType atomic.Uint32

func init() {
	nextHitType.Store(numBuiltinHitTypes)
}

// FreeHitType allocates a hit type that no other caller has been handed.
// It returns 0 once all bits are used.
func FreeHitType() HitType {
	n := nextHitType.Add(1) - 1
	if n >= 32 {
		return 0
	}
	return HitType(1) << n
}

// priority ranks types that win ties in SelectClosest.
func (t HitType) priority() int {
	switch t {
	case VertexHit:
		return 3
	case EdgeHit:
		return 2
	case FaceHit:
		return 1
	default:
		return 0
	}
}

// Hit is the result of a pick query.
type Hit struct {
	Type HitType
	// Distance along the ray to Point.
	Distance float64
	Point    mgl64.Vec3
	// Target is a halfspace.FaceID, EdgeID or VertexID for the built-in types.
	Target any
	// Error is the tolerance the hit was matched with.
	Error float64
}

// NoHit is returned when a query matches nothing.
var NoHit = Hit{Distance: math.Inf(1)}

// IsMatch reports whether the hit matched anything.
func (h Hit) IsMatch() bool {
	return h.Type != 0
}

// HasType reports whether the hit type is in mask.
func (h Hit) HasType(mask HitType) bool {
	return h.Type&mask != 0
}

// SelectClosest returns the hit with the smallest distance. Hits closer to the
// best one than the larger of their errors count as equally close, in which
// case vertices win over edges and edges over faces.
func SelectClosest(hits ...Hit) Hit {
	if i := selectClosest(hits); i >= 0 {
		return hits[i]
	}
	return NoHit
}

func selectClosest(hits []Hit) int {
	closest := -1
	for i, h := range hits {
		if h.IsMatch() && (closest < 0 || h.Distance < hits[closest].Distance) {
			closest = i
		}
	}
	if closest < 0 {
		return -1
	}

	best := closest
	for i, h := range hits {
		if !h.IsMatch() || i == closest {
			continue
		}

		tie := h.Distance-hits[closest].Distance <= math.Max(h.Error, hits[closest].Error)
		if !tie {
			continue
		}

		b := hits[best]
		if p := h.Type.priority(); p > b.Type.priority() ||
			(p == b.Type.priority() && h.Distance < b.Distance) {
			best = i
		}
	}

	return best
}
