package halfspace

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(t *testing.T, min, max mgl64.Vec3) *Solid {
	t.Helper()

	s, err := Cuboid(BBox{Min: min, Max: max}, Attributes{})
	require.NoError(t, err)

	return s
}

func TestTouches(t *testing.T) {
	t.Parallel()

	clipped := cube(t)
	n := mgl64.Vec3{1, 1, 0}.Normalize()
	clip, err := NewFace(Plane{Normal: n, Distance: n.Dot(mgl64.Vec3{16, 0, 0})}, Attributes{})
	require.NoError(t, err)
	require.NoError(t, clipped.Clip(clip))

	tests := []struct {
		name string
		a, b *Solid
		want bool
	}{
		{
			name: "overlapping",
			a:    box(t, mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{32, 32, 32}),
			b:    box(t, mgl64.Vec3{-16, -16, -48}, mgl64.Vec3{16, 16, 48}),
			want: true,
		},
		{
			name: "sharing a face",
			a:    box(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{32, 32, 32}),
			b:    box(t, mgl64.Vec3{-32, 0, 0}, mgl64.Vec3{0, 32, 32}),
			want: true,
		},
		{
			name: "apart",
			a:    box(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{32, 32, 32}),
			b:    box(t, mgl64.Vec3{33, 0, 0}, mgl64.Vec3{64, 32, 32}),
			want: false,
		},
		{
			name: "bounds overlap but the clip plane separates",
			a:    clipped,
			b:    box(t, mgl64.Vec3{10, 10, -1}, mgl64.Vec3{16, 16, 1}),
			want: false,
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Touches(tt.a, tt.b))
			assert.Equal(t, tt.want, Touches(tt.b, tt.a))
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	outer := box(t, mgl64.Vec3{-48, -48, -48}, mgl64.Vec3{48, 48, 48})
	inner := box(t, mgl64.Vec3{-32, -32, -32}, mgl64.Vec3{32, 32, 32})

	assert.True(t, Contains(outer, inner))
	assert.False(t, Contains(inner, outer))
	assert.True(t, Contains(inner, inner))

	sticksOut := box(t, mgl64.Vec3{-16, -16, -16}, mgl64.Vec3{16, 16, 64})
	assert.False(t, Contains(outer, sticksOut))

	assert.True(t, Contains(outer, tetrahedron(t)))
	assert.False(t, Contains(pyramid(t), cube(t)))
}
