package halfspace

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type vertexRecord struct {
	position mgl64.Vec3
	faces    []int // ascending face indices
}

type edgeRecord struct {
	vertices [2]int
	faces    [2]int
}

// polyhedron is the mesh derived from a plane set. Face indices refer to
// kept, which maps them back to the input planes.
type polyhedron struct {
	kept     []int
	vertices []vertexRecord
	edges    []edgeRecord
	loops    [][]int
	bounds   BBox
}

// buildPolyhedron enumerates the vertices of the convex intersection of the
// half-spaces bounded by planes. Every triple of planes that meets in a single
// point contributes that point if it lies inside all half-spaces. Planes that
// end up with fewer than three vertices are redundant and dropped.
func buildPolyhedron(planes []Plane, tol Tolerances) (*polyhedron, error) {
	points := enumerateVertices(planes, tol)
	if len(points) == 0 {
		return nil, errors.Wrap(ErrDegenerateGeometry, "half-spaces have no common vertex")
	}

	incidence := make([][]int, len(points))
	for i, p := range points {
		for j, plane := range planes {
			if math.Abs(plane.Dist(p)) <= tol.Point {
				incidence[i] = append(incidence[i], j)
			}
		}
	}

	faceAlive := make([]bool, len(planes))
	for i := range faceAlive {
		faceAlive[i] = true
	}
	vertexAlive := make([]bool, len(points))
	for i := range vertexAlive {
		vertexAlive[i] = true
	}

	for changed := true; changed; {
		changed = false

		faceCount := make([]int, len(planes))
		for i, faces := range incidence {
			if !vertexAlive[i] {
				continue
			}
			for _, f := range faces {
				faceCount[f]++
			}
		}
		for f := range planes {
			if faceAlive[f] && faceCount[f] < 3 {
				faceAlive[f] = false
				changed = true
			}
		}

		for i, faces := range incidence {
			if !vertexAlive[i] {
				continue
			}
			alive := lo.CountBy(faces, func(f int) bool { return faceAlive[f] })
			if alive < 3 {
				vertexAlive[i] = false
				changed = true
			}
		}

		if mergeCoplanarFaces(incidence, vertexAlive, faceAlive) {
			changed = true
		}
	}

	kept := lo.Filter(lo.Range(len(planes)), func(f int, _ int) bool { return faceAlive[f] })
	if len(kept) < 4 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "only %d of %d faces bound the solid", len(kept), len(planes))
	}

	remap := make(map[int]int, len(kept))
	for i, f := range kept {
		remap[f] = i
	}

	var vertices []vertexRecord
	for i, p := range points {
		if !vertexAlive[i] {
			continue
		}
		faces := lo.FilterMap(incidence[i], func(f int, _ int) (int, bool) {
			idx, ok := remap[f]
			return idx, ok
		})
		vertices = append(vertices, vertexRecord{position: p, faces: faces})
	}

	sort.Slice(vertices, func(i, j int) bool {
		return lessVec(vertices[i].position, vertices[j].position, tol.Point)
	})

	edges, err := buildEdges(vertices)
	if err != nil {
		return nil, err
	}

	loops := make([][]int, len(kept))
	for f := range kept {
		loops[f] = faceLoop(f, planes[kept[f]].Normal, vertices)
	}

	if err := checkClosed(vertices, edges, loops); err != nil {
		return nil, err
	}

	bounds := NewBBox(lo.Map(vertices, func(v vertexRecord, _ int) mgl64.Vec3 { return v.position })...)

	return &polyhedron{
		kept:     kept,
		vertices: vertices,
		edges:    edges,
		loops:    loops,
		bounds:   bounds,
	}, nil
}

// mergeCoplanarFaces drops every face whose alive vertices are exactly those
// of an earlier face. Planes that are coplanar within the point tolerance
// but not equal within the angle tolerance end up like this.
func mergeCoplanarFaces(incidence [][]int, vertexAlive, faceAlive []bool) bool {
	faceVertices := make([][]int, len(faceAlive))
	for i, faces := range incidence {
		if !vertexAlive[i] {
			continue
		}
		for _, f := range faces {
			if faceAlive[f] {
				faceVertices[f] = append(faceVertices[f], i)
			}
		}
	}

	merged := false
	seen := make(map[string]int, len(faceAlive))

	for f, vertices := range faceVertices {
		if !faceAlive[f] || len(vertices) == 0 {
			continue
		}

		key := fmt.Sprint(vertices)
		if first, ok := seen[key]; ok {
			Logger().Debug("merging coplanar face", "face", f, "into", first)
			faceAlive[f] = false
			merged = true
			continue
		}
		seen[key] = f
	}

	return merged
}

// enumerateVertices returns the distinct intersection points of plane triples
// that satisfy every half-space. Points closer than tol.Point are merged.
func enumerateVertices(planes []Plane, tol Tolerances) []mgl64.Vec3 {
	var points []mgl64.Vec3

	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			for k := j + 1; k < len(planes); k++ {
				p, ok := intersect3(planes[i], planes[j], planes[k], tol.Determinant)
				if !ok || !insideAll(planes, p, tol.Point) {
					continue
				}

				if lo.ContainsBy(points, func(q mgl64.Vec3) bool { return q.Sub(p).Len() <= tol.Point }) {
					continue
				}

				points = append(points, p)
			}
		}
	}

	return points
}

func insideAll(planes []Plane, p mgl64.Vec3, eps float64) bool {
	for _, plane := range planes {
		if plane.Dist(p) > eps {
			return false
		}
	}
	return true
}

// buildEdges pairs every two vertices that share exactly two faces.
func buildEdges(vertices []vertexRecord) ([]edgeRecord, error) {
	var edges []edgeRecord

	for u := 0; u < len(vertices); u++ {
		for v := u + 1; v < len(vertices); v++ {
			shared := lo.Intersect(vertices[u].faces, vertices[v].faces)
			switch {
			case len(shared) < 2:
				continue
			case len(shared) > 2:
				return nil, errors.Wrapf(ErrDegenerateGeometry,
					"vertices %v and %v share %d faces", vertices[u].position, vertices[v].position, len(shared))
			}

			sort.Ints(shared)
			edges = append(edges, edgeRecord{
				vertices: [2]int{u, v},
				faces:    [2]int{shared[0], shared[1]},
			})
		}
	}

	return edges, nil
}

// faceLoop returns the vertices of face f ordered counter-clockwise when seen
// from the side normal points to, starting at the lowest vertex index.
func faceLoop(f int, normal mgl64.Vec3, vertices []vertexRecord) []int {
	loop := lo.Filter(lo.Range(len(vertices)), func(v int, _ int) bool {
		return lo.Contains(vertices[v].faces, f)
	})

	var center mgl64.Vec3
	for _, v := range loop {
		center = center.Add(vertices[v].position)
	}
	center = center.Mul(1 / float64(len(loop)))

	u := vertices[loop[0]].position.Sub(center).Normalize()
	w := normal.Cross(u)

	angle := func(v int) float64 {
		d := vertices[v].position.Sub(center)
		return math.Atan2(d.Dot(w), d.Dot(u))
	}

	sort.SliceStable(loop, func(i, j int) bool { return angle(loop[i]) < angle(loop[j]) })

	first := lo.IndexOf(loop, lo.Min(loop))

	ordered := make([]int, 0, len(loop))
	ordered = append(ordered, loop[first:]...)

	return append(ordered, loop[:first]...)
}

// checkClosed verifies that every face loop walks along edges of that face,
// every edge borders exactly two loops and the mesh has the Euler
// characteristic of a sphere.
func checkClosed(vertices []vertexRecord, edges []edgeRecord, loops [][]int) error {
	index := make(map[[2]int]int, len(edges))
	for i, e := range edges {
		index[e.vertices] = i
	}

	uses := make([]int, len(edges))

	for f, loop := range loops {
		for i := range loop {
			a, b := loop[i], loop[(i+1)%len(loop)]
			if a > b {
				a, b = b, a
			}

			e, ok := index[[2]int{a, b}]
			if !ok || (edges[e].faces[0] != f && edges[e].faces[1] != f) {
				return errors.Wrapf(ErrDegenerateGeometry, "face %d is not closed", f)
			}
			uses[e]++
		}
	}

	for i, n := range uses {
		if n != 2 {
			return errors.Wrapf(ErrDegenerateGeometry, "edge %d borders %d faces", i, n)
		}
	}

	if euler := len(vertices) - len(edges) + len(loops); euler != 2 {
		return errors.Wrapf(ErrDegenerateGeometry, "euler characteristic is %d", euler)
	}

	return nil
}

// lessVec orders positions lexicographically, treating coordinates closer
// than eps as equal.
func lessVec(a, b mgl64.Vec3, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > eps {
			return a[i] < b[i]
		}
	}
	return false
}
