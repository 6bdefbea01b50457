// Package tagmatch selects solid faces by their attributes.
package tagmatch

import (
	"path"
	"strings"

	"github.com/samber/lo"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

// Matcher is one of TextureName, SurfaceParm, SurfaceFlags or ContentFlags.
type Matcher interface {
	matcher()
}

// TextureName matches faces whose texture name matches Pattern, ignoring case.
// Pattern uses path.Match syntax. A pattern without a slash is matched
// against the last element of the texture name only.
type TextureName struct {
	Pattern string
}

// SurfaceParm matches faces carrying Parameter.
type SurfaceParm struct {
	Parameter string
}

// SurfaceFlags matches faces with any of Flags set.
type SurfaceFlags struct {
	Flags int32
}

// ContentFlags matches faces with any of Flags set.
type ContentFlags struct {
	Flags int32
}

func (TextureName) matcher()  {}
func (SurfaceParm) matcher()  {}
func (SurfaceFlags) matcher() {}
func (ContentFlags) matcher() {}

// Matches reports whether f matches m. A nil face or matcher never matches.
func Matches(m Matcher, f *halfspace.Face) bool {
	if f == nil {
		return false
	}

	attrs := f.Attributes()

	switch m := m.(type) {
	case TextureName:
		return matchesTextureName(m.Pattern, attrs.TextureName)
	case SurfaceParm:
		return lo.Contains(attrs.SurfaceParms, m.Parameter)
	case SurfaceFlags:
		return attrs.SurfaceFlags&m.Flags != 0
	case ContentFlags:
		return attrs.ContentFlags&m.Flags != 0
	default:
		return false
	}
}

func matchesTextureName(pattern, name string) bool {
	pattern, name = strings.ToLower(pattern), strings.ToLower(name)

	if !strings.Contains(pattern, "/") {
		name = path.Base(name)
	}

	ok, err := path.Match(pattern, name)
	if err != nil {
		halfspace.Logger().Debug("tagmatch: bad texture pattern", "pattern", pattern, "err", err)
		return false
	}

	return ok
}

// SelectFaces returns the IDs of all faces of s that match m, in face order.
func SelectFaces(s *halfspace.Solid, m Matcher) []halfspace.FaceID {
	return lo.FilterMap(s.Faces(), func(f *halfspace.Face, _ int) (halfspace.FaceID, bool) {
		return f.ID(), Matches(m, f)
	})
}

// Enable sets the flags of a SurfaceFlags or ContentFlags matcher on f, or
// adds the parameter of a SurfaceParm matcher. It reports whether m can be
// applied at all.
func Enable(m Matcher, f *halfspace.Face) bool {
	if f == nil {
		return false
	}

	attrs := f.Attributes()

	switch m := m.(type) {
	case SurfaceFlags:
		attrs.SurfaceFlags |= m.Flags
	case ContentFlags:
		attrs.ContentFlags |= m.Flags
	case SurfaceParm:
		if !lo.Contains(attrs.SurfaceParms, m.Parameter) {
			attrs.SurfaceParms = append(attrs.SurfaceParms, m.Parameter)
		}
	default:
		return false
	}

	f.SetAttributes(attrs)

	return true
}

// Disable is the inverse of Enable.
func Disable(m Matcher, f *halfspace.Face) bool {
	if f == nil {
		return false
	}

	attrs := f.Attributes()

	switch m := m.(type) {
	case SurfaceFlags:
		attrs.SurfaceFlags &^= m.Flags
	case ContentFlags:
		attrs.ContentFlags &^= m.Flags
	case SurfaceParm:
		attrs.SurfaceParms = lo.Without(attrs.SurfaceParms, m.Parameter)
	default:
		return false
	}

	f.SetAttributes(attrs)

	return true
}
