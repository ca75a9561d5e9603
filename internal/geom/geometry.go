package geom

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// World-space queries over (Shape, Local, Transform). Nothing here is cached: every call
// recomputes from the current transform.

// WorldPoints returns the polygon's vertices in world space. Circles have none.
func WorldPoints(s Shape, l Local, t Transform) []rl.Vector2 {
	if s.Kind != Polygon {
		return nil
	}
	out := make([]rl.Vector2, len(s.Points))
	for i, p := range s.Points {
		out[i] = ToWorld(p, l, t)
	}
	return out
}

// WorldRadius scales the circle radius by the average of the combined scale axes.
// Non-uniform scale does not turn a circle into an ellipse.
func WorldRadius(s Shape, l Local, t Transform) float32 {
	sx := t.Scale.X * l.Scale.X
	sy := t.Scale.Y * l.Scale.Y
	return s.Radius * (sx + sy) * 0.5
}

// Center is the transformed origin for circles and the vertex mean for polygons.
func Center(s Shape, l Local, t Transform) rl.Vector2 {
	if s.Kind == Circle {
		return ToWorld(l.Origin, l, t)
	}
	pts := WorldPoints(s, l, t)
	if len(pts) == 0 {
		return t.Position
	}
	return Mean(pts)
}

// Bounds returns the world AABB: exact for circles, vertex min/max for polygons.
func Bounds(s Shape, l Local, t Transform) AABB {
	if s.Kind == Circle {
		r := WorldRadius(s, l, t)
		return NewAABBFromCenter(Center(s, l, t), rl.Vector2{X: r, Y: r})
	}
	return NewAABBFromPoints(WorldPoints(s, l, t))
}
