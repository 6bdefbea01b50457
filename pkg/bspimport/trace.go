package bspimport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

// distEpsilon keeps trace end positions this far off the hit plane.
const distEpsilon = 0.03125

// Trace captures the result of a segment trace.
type Trace struct {
	AllSolid   bool
	StartSolid bool
	// Fraction of the segment that is free, 1 if nothing was hit.
	Fraction float64
	EndPos   mgl64.Vec3
	Contents int32
	// Solid is the index of the solid that stopped the trace, or -1.
	Solid int
}

// IsVisible returns true if destination is visible from origin, as computed by
// a segment trace.
func (m *Map) IsVisible(origin, destination mgl64.Vec3) bool {
	return m.TraceRay(origin, destination).Fraction >= 1
}

// TraceRay traces the segment from origin to destination through all solids.
func (m *Map) TraceRay(origin, destination mgl64.Vec3) Trace {
	out := Trace{
		Fraction: 1,
		Solid:    -1,
	}

	segment := halfspace.NewBBox(origin, destination)

	for i, s := range m.Solids {
		if !s.Bounds().Inflate(distEpsilon).Intersects(segment) {
			continue
		}

		traceSolid(i, s, origin, destination, &out)

		if out.AllSolid {
			break
		}
	}

	if out.Fraction < 1 {
		out.EndPos = origin.Add(destination.Sub(origin).Mul(out.Fraction))
	} else {
		out.EndPos = destination
	}

	return out
}

// traceSolid clips the segment against the planes of s and records the
// earliest entry in out.
func traceSolid(index int, s *halfspace.Solid, origin, destination mgl64.Vec3, out *Trace) {
	fractionToEnter := math.Inf(-1)
	fractionToLeave := 1.0
	startsOut := false
	endsOut := false

	for _, p := range s.Planes() {
		startDistance := p.Dist(origin)
		endDistance := p.Dist(destination)

		if startDistance > 0 {
			startsOut = true

			if endDistance > 0 {
				return
			}
		} else {
			if endDistance <= 0 {
				continue
			}
			endsOut = true
		}

		if startDistance > endDistance {
			fraction := math.Max(0, (startDistance-distEpsilon)/(startDistance-endDistance))
			fractionToEnter = math.Max(fractionToEnter, fraction)
		} else {
			fraction := (startDistance + distEpsilon) / (startDistance - endDistance)
			fractionToLeave = math.Min(fractionToLeave, fraction)
		}
	}

	contents := int32(0)
	if faces := s.Faces(); len(faces) > 0 {
		contents = faces[0].Attributes().ContentFlags
	}

	if !startsOut {
		out.StartSolid = true
		out.Contents = contents

		if !endsOut {
			out.AllSolid = true
			out.Fraction = 0
			out.Solid = index
		}

		return
	}

	if fractionToEnter < fractionToLeave && fractionToEnter < out.Fraction {
		out.Fraction = fractionToEnter
		out.Solid = index
		out.Contents = contents
	}
}
