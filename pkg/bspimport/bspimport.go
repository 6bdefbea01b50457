// Package bspimport builds solids from the brushes of compiled Source engine
// BSP maps, on top of github.com/galaco/bsp.
package bspimport

import (
	"fmt"
	"os"
	"strings"

	"github.com/galaco/bsp"
	"github.com/galaco/bsp/lumps"
	"github.com/galaco/bsp/primitives/brush"
	"github.com/galaco/bsp/primitives/brushside"
	"github.com/galaco/bsp/primitives/plane"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

// DefaultContentsMask selects brushes that block bullets.
const DefaultContentsMask = int32(bsp.MASK_SHOT_HULL)

// DefaultTolerances are loose enough for the single precision planes stored
// in BSP files at map scale.
func DefaultTolerances() halfspace.Tolerances {
	return halfspace.Tolerances{
		Point:       0.01,
		Angle:       1e-5,
		Determinant: 1e-9,
	}
}

// Map holds the solids built from a BSP file.
type Map struct {
	Solids []*halfspace.Solid
	// Skipped counts brushes that matched the contents mask but did not form
	// a valid solid.
	Skipped int
}

// SkippedBrushesError is returned together with a usable Map when some
// brushes could not be built.
type SkippedBrushesError struct {
	skippedBrushes []int
}

func (e SkippedBrushesError) Error() string {
	ids := make([]string, len(e.skippedBrushes))
	for i, b := range e.skippedBrushes {
		ids[i] = fmt.Sprint(b)
	}

	return fmt.Sprintf("skipped brushes: (%s)", strings.Join(ids, ", "))
}

// Brushes returns the indices of the skipped brushes in the brush lump.
func (e SkippedBrushesError) Brushes() []int {
	return append([]int(nil), e.skippedBrushes...)
}

// Loader configures how brushes are turned into solids.
type Loader struct {
	// ContentsMask selects brushes by their contents flags.
	ContentsMask int32
	Tolerances   halfspace.Tolerances
}

// LoadBrushes loads the brushes of a BSP map with the default loader. path is
// tried on disk first and then inside the VPK archives, e.g.
// "csgo/pak01" for csgo/pak01_dir.vpk.
func LoadBrushes(path string, vpkPaths ...string) (*Map, error) {
	l := Loader{
		ContentsMask: DefaultContentsMask,
		Tolerances:   DefaultTolerances(),
	}

	return l.Load(path, vpkPaths...)
}

// Load reads the BSP file at path and builds a solid for every brush matching
// the contents mask. A SkippedBrushesError is returned alongside the map if
// some brushes could not be built.
func (l Loader) Load(path string, vpkPaths ...string) (*Map, error) {
	bspfile, err := l.read(path, vpkPaths)
	if err != nil {
		return nil, err
	}

	data := brushLumps{
		brushes:  bspfile.Lump(bsp.LumpBrushes).(*lumps.Brush).GetData(),
		sides:    bspfile.Lump(bsp.LumpBrushSides).(*lumps.BrushSide).GetData(),
		planes:   bspfile.Lump(bsp.LumpPlanes).(*lumps.Planes).GetData(),
		surfaces: surfaces(bspfile),
	}

	return l.build(data)
}

func (l Loader) read(path string, vpkPaths []string) (*bsp.Bsp, error) {
	if _, err := os.Stat(path); err == nil {
		bspfile, err := bsp.ReadFromFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}

		return bspfile, nil
	}

	vpks, err := openVPKs(vpkPaths)
	if err != nil {
		return nil, err
	}

	f, err := vfs{vpks: vpks}.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bspfile, err := bsp.ReadFromStream(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return bspfile, nil
}

type brushLumps struct {
	brushes  []brush.Brush
	sides    []brushside.BrushSide
	planes   []plane.Plane
	surfaces []surface // by texinfo index
}

func (l Loader) build(data brushLumps) (*Map, error) {
	log := halfspace.Logger().With("component", "bspimport")

	var (
		m       Map
		skipped []int
	)

	for i, b := range data.brushes {
		if b.Contents&l.ContentsMask == 0 {
			continue
		}

		s, err := l.buildBrush(b, data)
		if err != nil {
			log.Debug("skipping brush", "brush", i, "err", err)

			skipped = append(skipped, i)

			continue
		}

		m.Solids = append(m.Solids, s)
	}

	m.Skipped = len(skipped)

	if len(skipped) > 0 {
		return &m, SkippedBrushesError{skippedBrushes: skipped}
	}

	return &m, nil
}

func (l Loader) buildBrush(b brush.Brush, data brushLumps) (*halfspace.Solid, error) {
	if b.FirstSide < 0 || int(b.FirstSide)+int(b.NumSides) > len(data.sides) {
		return nil, errors.Wrapf(halfspace.ErrInvalidInput, "brush sides [%d, %d) out of range", b.FirstSide, b.FirstSide+b.NumSides)
	}

	var faces []*halfspace.Face

	for i := int32(0); i < b.NumSides; i++ {
		side := data.sides[b.FirstSide+i]
		if side.Bevel&0xff != 0 {
			continue
		}

		if int(side.PlaneNum) >= len(data.planes) {
			return nil, errors.Wrapf(halfspace.ErrInvalidInput, "plane %d out of range", side.PlaneNum)
		}

		p := data.planes[side.PlaneNum]
		hp, err := halfspace.NewPlane(
			mgl64.Vec3{float64(p.Normal[0]), float64(p.Normal[1]), float64(p.Normal[2])},
			float64(p.Distance),
		)
		if err != nil {
			return nil, err
		}

		attrs := halfspace.DefaultAttributes("")
		attrs.ContentFlags = b.Contents

		if t := int(side.TexInfo); t >= 0 && t < len(data.surfaces) {
			attrs.TextureName = data.surfaces[t].name
			attrs.SurfaceFlags = data.surfaces[t].flags
		}

		f, err := halfspace.NewFace(hp, attrs)
		if err != nil {
			return nil, err
		}

		faces = append(faces, f)
	}

	return halfspace.NewFromFacesWithTolerances(l.Tolerances, faces...)
}
