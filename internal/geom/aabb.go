package geom

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector2
	Max rl.Vector2
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half rl.Vector2) AABB {
	return AABB{
		Min: rl.Vector2Subtract(center, half),
		Max: rl.Vector2Add(center, half),
	}
}

// NewAABBFromPoints returns the tight box around points. Empty input yields a zero box.
func NewAABBFromPoints(points []rl.Vector2) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.X = min(box.Min.X, p.X)
		box.Min.Y = min(box.Min.Y, p.Y)
		box.Max.X = max(box.Max.X, p.X)
		box.Max.Y = max(box.Max.Y, p.Y)
	}
	return box
}

// Intersects is inclusive: boxes that only touch still count as overlapping.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

func (a AABB) Size() rl.Vector2 {
	return rl.Vector2Subtract(a.Max, a.Min)
}

// Rectangle converts the box for raylib drawing and rl.CheckCollisionRecs.
func (a AABB) Rectangle() rl.Rectangle {
	size := a.Size()
	return rl.Rectangle{X: a.Min.X, Y: a.Min.Y, Width: size.X, Height: size.Y}
}
