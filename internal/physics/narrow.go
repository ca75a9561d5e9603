package physics

import (
	"collide2d/internal/components"
	"collide2d/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Result describes one narrow-phase query. Normal is unit length and points from the
// first shape toward the second. It is only meaningful when Intersects is true.
type Result struct {
	Intersects bool
	Normal     rl.Vector2
	Depth      float32
}

var miss = Result{}

// Flip returns the same contact seen from the other body.
func (r Result) Flip() Result {
	r.Normal = rl.Vector2Negate(r.Normal)
	return r
}

// Check is the single narrow-phase entry point. It rejects on bounds first, then
// dispatches on the pair of shape kinds.
func Check(a *components.Collider, ta geom.Transform, b *components.Collider, tb geom.Transform) Result {
	if !BoundsOverlap(a, ta, b, tb) {
		return miss
	}
	return dispatch(a, ta, b, tb)
}

// dispatch runs the exact test for the pair of shape kinds. Callers have already
// passed the bounds test.
func dispatch(a *components.Collider, ta geom.Transform, b *components.Collider, tb geom.Transform) Result {
	switch {
	case a.Shape.Kind == geom.Circle && b.Shape.Kind == geom.Circle:
		return CircleCircle(a.Center(ta), a.Radius(ta), b.Center(tb), b.Radius(tb))
	case a.Shape.Kind == geom.Circle:
		// CirclePolygon reports polygon -> circle; flip so it runs A -> B.
		return CirclePolygon(a.Center(ta), a.Radius(ta), b.Points(tb)).Flip()
	case b.Shape.Kind == geom.Circle:
		return CirclePolygon(b.Center(tb), b.Radius(tb), a.Points(ta))
	default:
		return PolygonPolygon(a.Points(ta), b.Points(tb))
	}
}

// CircleCircle intersects two circles given in world space. Coincident centres get the
// fallback axis as normal.
func CircleCircle(centerA rl.Vector2, radiusA float32, centerB rl.Vector2, radiusB float32) Result {
	diff := rl.Vector2Subtract(centerB, centerA)
	distSq := rl.Vector2LengthSqr(diff)
	sum := radiusA + radiusB
	if distSq >= sum*sum {
		return miss
	}

	dist := math32.Sqrt(distSq)
	normal := geom.FallbackAxis
	if dist > geom.Epsilon {
		normal = rl.Vector2Scale(diff, 1/dist)
	}
	return Result{Intersects: true, Normal: normal, Depth: sum - dist}
}

// CirclePolygon tests a circle against a convex polygon in world space. The normal
// points from the polygon toward the circle.
//
// Edge normals alone miss the vertex region, so the axis from the centre to the
// nearest vertex is tested as well.
func CirclePolygon(center rl.Vector2, radius float32, poly []rl.Vector2) Result {
	if len(poly) == 0 {
		return miss
	}

	var minOverlap float32 = math32.MaxFloat32
	var minAxis rl.Vector2

	test := func(axis rl.Vector2) bool {
		polyMin, polyMax := geom.Project(poly, axis)
		c := rl.Vector2DotProduct(center, axis)
		circleMin, circleMax := c-radius, c+radius
		if circleMax < polyMin || polyMax < circleMin {
			return false
		}
		if overlap := min(circleMax-polyMin, polyMax-circleMin); overlap < minOverlap {
			minOverlap = overlap
			minAxis = axis
		}
		return true
	}

	for i, p1 := range poly {
		edge := rl.Vector2Subtract(poly[(i+1)%len(poly)], p1)
		if rl.Vector2LengthSqr(edge) < geom.Epsilon*geom.Epsilon {
			continue
		}
		if !test(rl.Vector2Normalize(geom.Perpendicular(edge))) {
			return miss
		}
	}

	nearest := poly[0]
	nearestSq := rl.Vector2DistanceSqr(center, nearest)
	for _, v := range poly[1:] {
		if d := rl.Vector2DistanceSqr(center, v); d < nearestSq {
			nearest, nearestSq = v, d
		}
	}
	// A centre sitting on a vertex has no usable axis but is certainly touching.
	if toVertex := rl.Vector2Subtract(nearest, center); rl.Vector2LengthSqr(toVertex) >= geom.Epsilon*geom.Epsilon {
		if !test(rl.Vector2Normalize(toVertex)) {
			return miss
		}
	}

	if minOverlap == math32.MaxFloat32 {
		// Every edge was degenerate and the centre sits on the only vertex.
		return Result{Intersects: true, Normal: geom.FallbackAxis, Depth: radius}
	}

	if rl.Vector2DotProduct(minAxis, rl.Vector2Subtract(center, geom.Mean(poly))) < 0 {
		minAxis = rl.Vector2Negate(minAxis)
	}
	return Result{Intersects: true, Normal: minAxis, Depth: minOverlap}
}

// PolygonPolygon runs SAT over the edge normals of a, then of b. Axes stay
// un-normalised while searching and overlaps are compared squared, so only the winning
// axis pays for a square root. On equal overlap the first axis tested wins.
func PolygonPolygon(a, b []rl.Vector2) Result {
	if len(a) == 0 || len(b) == 0 {
		return miss
	}

	s := satSearch{minOverlapSq: math32.MaxFloat32}
	if !s.edges(a, a, b) || !s.edges(b, a, b) {
		return miss
	}
	return Result{
		Intersects: true,
		Normal:     geom.NormalizeOr(s.minAxis, geom.FallbackAxis),
		Depth:      math32.Sqrt(s.minOverlapSq),
	}
}

type satSearch struct {
	minOverlapSq float32
	minAxis      rl.Vector2
}

// edges tests every edge normal of src. It reports false as soon as an axis separates a and b.
func (s *satSearch) edges(src, a, b []rl.Vector2) bool {
	for i, p1 := range src {
		axis := geom.Perpendicular(rl.Vector2Subtract(src[(i+1)%len(src)], p1))
		if !s.axis(a, b, axis) {
			return false
		}
	}
	return true
}

func (s *satSearch) axis(a, b []rl.Vector2, axis rl.Vector2) bool {
	minA, maxA := geom.Project(a, axis)
	minB, maxB := geom.Project(b, axis)
	if maxA < minB || maxB < minA {
		return false
	}

	overlap := min(maxA-minB, maxB-minA)
	overlapSq := overlap * overlap
	if lenSq := rl.Vector2LengthSqr(axis); lenSq > geom.Epsilon {
		overlapSq /= lenSq
	}

	if overlapSq < s.minOverlapSq {
		s.minOverlapSq = overlapSq
		// Orient from a to b by the centres of the two shadows.
		if (minA+maxA)*0.5 < (minB+maxB)*0.5 {
			s.minAxis = axis
		} else {
			s.minAxis = rl.Vector2Negate(axis)
		}
	}
	return true
}
