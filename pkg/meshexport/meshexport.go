// Package meshexport triangulates solids and writes them as glTF.
package meshexport

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/saiko-tech/brush-kernel/pkg/halfspace"
)

// Mesh is an indexed triangle list with flat per-face normals. Vertices are
// not shared between faces.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// Triangulate fans every face loop of s around its first vertex. Triangles
// wind counter-clockwise when seen from outside.
func Triangulate(s *halfspace.Solid) Mesh {
	var m Mesh

	for _, f := range s.Faces() {
		loop, err := s.FaceVertices(f.ID())
		if err != nil {
			halfspace.Logger().Debug("meshexport: skipping face", "err", err)
			continue
		}

		n := f.Plane().Normal
		normal := [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
		base := uint32(len(m.Positions))

		for _, v := range loop {
			m.Positions = append(m.Positions, [3]float32{float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2])})
			m.Normals = append(m.Normals, normal)
		}

		for i := 1; i+1 < len(loop); i++ {
			m.Indices = append(m.Indices, base, base+uint32(i), base+uint32(i)+1)
		}
	}

	return m
}

// Document returns a glTF document with one mesh and one node per solid.
func Document(solids ...*halfspace.Solid) *gltf.Document {
	doc := gltf.NewDocument()

	for _, s := range solids {
		if s == nil {
			continue
		}

		m := Triangulate(s)
		if len(m.Indices) == 0 {
			continue
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: s.ID().String(),
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(modeler.WriteIndices(doc, m.Indices)),
				Attributes: map[string]int{
					"POSITION": modeler.WritePosition(doc, m.Positions),
					"NORMAL":   modeler.WriteNormal(doc, m.Normals),
				},
			}},
		})

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: s.ID().String(),
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	return doc
}

// WriteGLTF writes the solids to w as binary glTF.
func WriteGLTF(w io.Writer, solids ...*halfspace.Solid) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true

	if err := enc.Encode(Document(solids...)); err != nil {
		return errors.Wrap(err, "failed to encode glTF")
	}

	return nil
}

// SaveGLTF writes the solids to path. A .gltf extension produces JSON with an
// embedded buffer, anything else binary glTF.
func SaveGLTF(path string, solids ...*halfspace.Solid) error {
	doc := Document(solids...)

	var err error

	if strings.EqualFold(filepath.Ext(path), ".gltf") {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	} else {
		err = gltf.SaveBinary(doc, path)
	}

	if err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}

	return nil
}
