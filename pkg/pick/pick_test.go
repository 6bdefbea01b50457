package pick

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

func cube(t *testing.T, min, max mgl64.Vec3) *halfspace.Solid {
	t.Helper()

	s, err := halfspace.Cuboid(halfspace.BBox{Min: min, Max: max}, halfspace.DefaultAttributes("dev/grid"))
	require.NoError(t, err)

	return s
}

func ray(t *testing.T, origin, towards mgl64.Vec3) Ray {
	t.Helper()

	r, err := NewRay(origin, towards.Sub(origin))
	require.NoError(t, err)

	return r
}

func TestNewRay(t *testing.T) {
	t.Parallel()

	r, err := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, -10})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, r.Direction)
	assert.Equal(t, mgl64.Vec3{1, 2, 1}, r.PointAt(2))

	_, err = NewRay(mgl64.Vec3{}, mgl64.Vec3{})
	assert.ErrorIs(t, err, halfspace.ErrInvalidInput)

	_, err = NewRay(mgl64.Vec3{math.NaN(), 0, 0}, mgl64.Vec3{1, 0, 0})
	assert.ErrorIs(t, err, halfspace.ErrInvalidInput)
}

func TestPick_CornerPriority(t *testing.T) {
	t.Parallel()

	s := cube(t, mgl64.Vec3{-16, -16, -16}, mgl64.Vec3{16, 16, 16})
	r := ray(t, mgl64.Vec3{48, 48, 48}, mgl64.Vec3{16, 16, 16})
	radius := 2.0

	face := PickFace(r, s)
	edge := PickEdge(r, s, radius)
	vertex := PickVertex(r, s, radius)

	require.True(t, face.IsMatch())
	require.True(t, edge.IsMatch())
	require.True(t, vertex.IsMatch())

	hit := Pick(r, s, radius)

	assert.Equal(t, VertexHit, hit.Type)
	assert.InDelta(t, 32*math.Sqrt(3), hit.Distance, 1e-9)
	assert.Equal(t, mgl64.Vec3{16, 16, 16}, hit.Point)

	id, ok := hit.Target.(halfspace.VertexID)
	require.True(t, ok)
	v, err := s.Vertex(id)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{16, 16, 16}, v.Position)
}

func TestPick(t *testing.T) {
	t.Parallel()

	s := cube(t, mgl64.Vec3{-16, -16, -16}, mgl64.Vec3{16, 16, 16})

	tests := []struct {
		name         string
		origin, to   mgl64.Vec3
		wantType     HitType
		wantDistance float64
	}{
		{
			name:         "face center",
			origin:       mgl64.Vec3{48, 0, 0},
			to:           mgl64.Vec3{0, 0, 0},
			wantType:     FaceHit,
			wantDistance: 32,
		},
		{
			name:         "near an edge",
			origin:       mgl64.Vec3{48, 0, 15.8},
			to:           mgl64.Vec3{0, 0, 15.8},
			wantType:     EdgeHit,
			wantDistance: 32,
		},
		{
			name:     "miss",
			origin:   mgl64.Vec3{48, 48, 0},
			to:       mgl64.Vec3{48, 48, 10},
			wantType: 0,
		},
		{
			name:     "from inside",
			origin:   mgl64.Vec3{0, 0, 0},
			to:       mgl64.Vec3{1, 0, 0},
			wantType: 0,
		},
		{
			name:     "pointing away",
			origin:   mgl64.Vec3{48, 0, 0},
			to:       mgl64.Vec3{64, 0, 0},
			wantType: 0,
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hit := Pick(ray(t, tt.origin, tt.to), s, 1)

			assert.Equal(t, tt.wantType, hit.Type)
			if tt.wantType == 0 {
				assert.False(t, hit.IsMatch())
				return
			}
			assert.InDelta(t, tt.wantDistance, hit.Distance, 1e-9)
		})
	}
}

func TestPickFace_Target(t *testing.T) {
	t.Parallel()

	s := cube(t, mgl64.Vec3{-16, -16, -16}, mgl64.Vec3{16, 16, 16})

	hit := PickFace(ray(t, mgl64.Vec3{0, 0, 100}, mgl64.Vec3{5, 5, 0}), s)
	require.True(t, hit.HasType(FaceHit))

	f, err := s.Face(hit.Target.(halfspace.FaceID))
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, f.Plane().Normal)
	assert.InDelta(t, 16, hit.Point[2], 1e-9)
}

func TestSelectClosest(t *testing.T) {
	t.Parallel()

	face := Hit{Type: FaceHit, Distance: 10}
	edge := Hit{Type: EdgeHit, Distance: 10.5, Error: 1}
	vertex := Hit{Type: VertexHit, Distance: 10.8, Error: 1}
	farVertex := Hit{Type: VertexHit, Distance: 20, Error: 1}

	assert.Equal(t, vertex, SelectClosest(face, edge, vertex))
	assert.Equal(t, edge, SelectClosest(face, edge, farVertex))
	assert.Equal(t, face, SelectClosest(NoHit, face, farVertex))
	assert.Equal(t, NoHit, SelectClosest())
	assert.Equal(t, NoHit, SelectClosest(NoHit, NoHit))
}

func TestHitType(t *testing.T) {
	t.Parallel()

	a, b := FreeHitType(), FreeHitType()

	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.Zero(t, a&(FaceHit|EdgeHit|VertexHit))

	h := Hit{Type: a}
	assert.True(t, h.IsMatch())
	assert.True(t, h.HasType(a|FaceHit))
	assert.False(t, h.HasType(FaceHit|EdgeHit))
	assert.True(t, h.HasType(AnyHit))
}

func TestPickSolids(t *testing.T) {
	t.Parallel()

	solids := []*halfspace.Solid{
		cube(t, mgl64.Vec3{-16, -16, -16}, mgl64.Vec3{16, 16, 16}),
		nil,
		cube(t, mgl64.Vec3{48, -16, -16}, mgl64.Vec3{80, 16, 16}),
	}

	hit, i := PickSolids(ray(t, mgl64.Vec3{-100, 0, 0}, mgl64.Vec3{0, 0, 0}), solids, 1)
	assert.Equal(t, 0, i)
	assert.Equal(t, FaceHit, hit.Type)
	assert.InDelta(t, 84, hit.Distance, 1e-9)

	hit, i = PickSolids(ray(t, mgl64.Vec3{200, 0, 0}, mgl64.Vec3{0, 0, 0}), solids, 1)
	assert.Equal(t, 2, i)
	assert.InDelta(t, 120, hit.Distance, 1e-9)

	hit, i = PickSolids(ray(t, mgl64.Vec3{0, 100, 0}, mgl64.Vec3{0, 100, 1}), solids, 1)
	assert.Equal(t, -1, i)
	assert.False(t, hit.IsMatch())
}

func TestRayIntersectsBox(t *testing.T) {
	t.Parallel()

	min, max := mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}

	r := ray(t, mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{0, 0, 0})
	tt, ok := rayIntersectsBox(r, min, max)
	assert.True(t, ok)
	assert.InDelta(t, 4, tt, 1e-9)
	assert.True(t, r.PointAt(tt).ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-9))

	tt, ok = rayIntersectsBox(ray(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}), min, max)
	assert.True(t, ok)
	assert.InDelta(t, 1, tt, 1e-9)

	_, ok = rayIntersectsBox(ray(t, mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{-6, 0, 0}), min, max)
	assert.False(t, ok)

	_, ok = rayIntersectsBox(ray(t, mgl64.Vec3{-5, 3, 0}, mgl64.Vec3{0, 3, 0}), min, max)
	assert.False(t, ok)
}

func TestPick_RejectsInvalidQueries(t *testing.T) {
	t.Parallel()

	s := cube(t, mgl64.Vec3{-16, -16, -16}, mgl64.Vec3{16, 16, 16})
	away := ray(t, mgl64.Vec3{100, 100, 100}, mgl64.Vec3{200, 100, 100})
	down := ray(t, mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 0, 0})

	tests := []struct {
		name   string
		ray    Ray
		radius float64
	}{
		{name: "NaN radius", ray: away, radius: math.NaN()},
		{name: "NaN radius towards the solid", ray: down, radius: math.NaN()},
		{name: "negative radius", ray: down, radius: -1},
		{name: "unnormalized direction", ray: Ray{Origin: mgl64.Vec3{0, 0, 100}, Direction: mgl64.Vec3{0, 0, -10}}, radius: 1},
		{name: "NaN origin", ray: Ray{Origin: mgl64.Vec3{math.NaN(), 0, 100}, Direction: mgl64.Vec3{0, 0, -1}}, radius: 1},
		{name: "infinite direction", ray: Ray{Origin: mgl64.Vec3{0, 0, 100}, Direction: mgl64.Vec3{0, 0, math.Inf(-1)}}, radius: 1},
		{name: "zero ray", ray: Ray{}, radius: 1},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, NoHit, PickEdge(tt.ray, s, tt.radius))
			assert.Equal(t, NoHit, PickVertex(tt.ray, s, tt.radius))
			assert.Equal(t, NoHit, Pick(tt.ray, s, tt.radius))

			hit, i := PickSolids(tt.ray, []*halfspace.Solid{s}, tt.radius)
			assert.Equal(t, NoHit, hit)
			assert.Equal(t, -1, i)
		})
	}

	t.Run("valid literal ray", func(t *testing.T) {
		t.Parallel()

		r := Ray{Origin: mgl64.Vec3{0, 0, 100}, Direction: mgl64.Vec3{0, 0, -1}}
		assert.Equal(t, NoHit, PickFace(Ray{Origin: r.Origin, Direction: mgl64.Vec3{0, 0, -10}}, s))

		hit := PickFace(r, s)
		require.True(t, hit.IsMatch())
		assert.InDelta(t, 84, hit.Distance, 1e-9)

		assert.Equal(t, hit, Pick(r, s, 0))
	})
}
