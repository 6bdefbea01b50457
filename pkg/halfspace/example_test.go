package halfspace_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

func ExampleSolid_MovePlane() {
	s, err := halfspace.Cuboid(halfspace.BBox{
		Min: mgl64.Vec3{-16, -16, -16},
		Max: mgl64.Vec3{16, 16, 16},
	}, halfspace.DefaultAttributes("dev/grid"))
	if err != nil {
		panic(err)
	}

	fmt.Println("faces:", len(s.Faces()), "vertices:", len(s.Vertices()), "edges:", len(s.Edges()))

	// drag the +X face outwards
	maxX := s.Faces()[1]
	if err := s.MovePlane(maxX.ID(), halfspace.Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: 32}); err != nil {
		panic(err)
	}

	fmt.Println("bounds:", s.Bounds().Min, s.Bounds().Max)

	// pushing it through the opposite face fails and leaves the solid as it was
	err = s.MovePlane(maxX.ID(), halfspace.Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: -32})
	fmt.Println("error:", err != nil, "invalid:", s.Invalid(), "bounds:", s.Bounds().Max)

	// Output:
	// faces: 6 vertices: 8 edges: 12
	// bounds: [-16 -16 -16] [32 16 16]
	// error: true invalid: true bounds: [32 16 16]
}
