package tagmatch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

func face(t *testing.T, attrs halfspace.Attributes) *halfspace.Face {
	t.Helper()

	f, err := halfspace.NewFace(halfspace.Plane{Normal: mgl64.Vec3{0, 0, 1}}, attrs)
	require.NoError(t, err)

	return f
}

func TestMatches(t *testing.T) {
	t.Parallel()

	attrs := halfspace.DefaultAttributes("tools/Toolsclip")
	attrs.SurfaceFlags = 0x80
	attrs.ContentFlags = 0x1 | 0x10000
	attrs.SurfaceParms = []string{"nodraw", "playerclip"}
	f := face(t, attrs)

	tests := []struct {
		name string
		m    Matcher
		want bool
	}{
		{"texture, exact", TextureName{Pattern: "toolsclip"}, true},
		{"texture, wildcard", TextureName{Pattern: "tools*"}, true},
		{"texture, full path", TextureName{Pattern: "TOOLS/*clip"}, true},
		{"texture, other", TextureName{Pattern: "trigger"}, false},
		{"texture, bad pattern", TextureName{Pattern: "[tools"}, false},
		{"surface parm", SurfaceParm{Parameter: "playerclip"}, true},
		{"surface parm, missing", SurfaceParm{Parameter: "trigger"}, false},
		{"surface flags", SurfaceFlags{Flags: 0x80 | 0x4}, true},
		{"surface flags, none", SurfaceFlags{Flags: 0x4}, false},
		{"content flags", ContentFlags{Flags: 0x10000}, true},
		{"content flags, none", ContentFlags{Flags: 0x2}, false},
		{"nil matcher", nil, false},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Matches(tt.m, f))
		})
	}

	assert.False(t, Matches(SurfaceParm{Parameter: "nodraw"}, nil))
}

func TestSelectFaces(t *testing.T) {
	t.Parallel()

	s, err := halfspace.Cuboid(halfspace.BBox{Min: mgl64.Vec3{-16, -16, -16}, Max: mgl64.Vec3{16, 16, 16}},
		halfspace.DefaultAttributes("dev/dev_measuregeneric01"))
	require.NoError(t, err)

	top := s.Faces()[5]
	attrs := top.Attributes()
	attrs.TextureName = "nature/grass"
	top.SetAttributes(attrs)

	assert.Equal(t, []halfspace.FaceID{top.ID()}, SelectFaces(s, TextureName{Pattern: "grass"}))
	assert.Len(t, SelectFaces(s, TextureName{Pattern: "dev_*"}), 5)
	assert.Empty(t, SelectFaces(s, ContentFlags{Flags: 1}))
}

func TestEnableDisable(t *testing.T) {
	t.Parallel()

	f := face(t, halfspace.DefaultAttributes("brick"))

	for _, m := range []Matcher{SurfaceFlags{Flags: 0x4}, ContentFlags{Flags: 0x8}, SurfaceParm{Parameter: "metal"}} {
		assert.False(t, Matches(m, f))
		assert.True(t, Enable(m, f))
		assert.True(t, Matches(m, f))
		assert.True(t, Disable(m, f))
		assert.False(t, Matches(m, f))
	}

	assert.False(t, Enable(TextureName{Pattern: "*"}, f))
	assert.False(t, Disable(TextureName{Pattern: "*"}, f))
	assert.False(t, Enable(SurfaceFlags{Flags: 1}, nil))
}
