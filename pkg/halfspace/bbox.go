package halfspace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max mgl64.Vec3
}

// NewBBox returns the smallest box containing all points. With no points the
// box is empty.
func NewBBox(points ...mgl64.Vec3) BBox {
	b := BBox{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range points {
		b = b.Expand(p)
	}
	return b
}

// Expand returns the box grown to contain p.
func (b BBox) Expand(p mgl64.Vec3) BBox {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Empty reports whether Max < Min on any axis.
func (b BBox) Empty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

func (b BBox) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b BBox) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies in the box, boundary included.
func (b BBox) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Intersects reports whether the boxes overlap or touch.
func (b BBox) Intersects(o BBox) bool {
	return b.Min[0] <= o.Max[0] && o.Min[0] <= b.Max[0] &&
		b.Min[1] <= o.Max[1] && o.Min[1] <= b.Max[1] &&
		b.Min[2] <= o.Max[2] && o.Min[2] <= b.Max[2]
}

// Inflate returns the box grown by r on every side.
func (b BBox) Inflate(r float64) BBox {
	d := mgl64.Vec3{r, r, r}
	return BBox{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}
