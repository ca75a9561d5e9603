package physics

import (
	"testing"

	"collide2d/internal/engine"
	"collide2d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleCircleIntersectsIffCloserThanRadii(t *testing.T) {
	tests := []struct {
		dist      float32
		intersect bool
	}{
		{0.5, true},
		{2.9, true},
		{3.0, false},
		{3.1, false},
	}
	for _, tt := range tests {
		res := CircleCircle(rl.Vector2{}, 1, rl.Vector2{X: tt.dist}, 2)
		assert.Equal(t, tt.intersect, res.Intersects, "dist %v", tt.dist)
		if tt.intersect {
			assert.InDelta(t, 3-tt.dist, res.Depth, tol, "dist %v", tt.dist)
			assertVec(t, rl.Vector2{X: 1}, res.Normal)
		}
	}
}

func TestCircleCircleUnitNormal(t *testing.T) {
	res := CircleCircle(rl.Vector2{X: 1, Y: 1}, 3, rl.Vector2{X: 4, Y: 5}, 3)
	require.True(t, res.Intersects)
	assertUnit(t, res.Normal)
	assertVec(t, rl.Vector2{X: 0.6, Y: 0.8}, res.Normal)
	assert.InDelta(t, 1.0, res.Depth, tol)
}

func TestCircleCircleCoincidentCentersUseFallback(t *testing.T) {
	res := CircleCircle(rl.Vector2{X: 2, Y: 2}, 1, rl.Vector2{X: 2, Y: 2}, 1)
	require.True(t, res.Intersects)
	assert.Equal(t, geom.FallbackAxis, res.Normal)
	assert.InDelta(t, 2.0, res.Depth, tol)
}

func TestUnitSquaresHalfOffsetOverlap(t *testing.T) {
	a := body("a", geom.NewBox(1, 1), 0, 0)
	b := body("b", geom.NewBox(1, 1), 0.5, 0)

	res := Check(a.Collider, a.Transform, b.Collider, b.Transform)
	require.True(t, res.Intersects)
	assert.InDelta(t, 0.5, res.Depth, tol)
	assertVec(t, rl.Vector2{X: 1, Y: 0}, res.Normal)
	assertUnit(t, res.Normal)
}

func TestUnitSquaresFarApartDoNotOverlap(t *testing.T) {
	a := body("a", geom.NewBox(1, 1), 0, 0)
	b := body("b", geom.NewBox(1, 1), 2, 0)

	assert.False(t, Check(a.Collider, a.Transform, b.Collider, b.Transform).Intersects)
	assert.False(t, PolygonPolygon(a.Collider.Points(a.Transform), b.Collider.Points(b.Transform)).Intersects,
		"SAT alone must find the gap too")
}

func TestPolygonPolygonRotated(t *testing.T) {
	a := body("a", geom.NewBox(2, 2), 0, 0)
	b := body("b", geom.NewBox(2, 2), 2.2, 0)
	b.Transform.Rotation = 45

	// The rotated box reaches sqrt(2) toward a, so it pokes 1 + sqrt(2) - 2.2 into it.
	res := Check(a.Collider, a.Transform, b.Collider, b.Transform)
	require.True(t, res.Intersects)
	assertUnit(t, res.Normal)
	assert.Greater(t, res.Normal.X, float32(0))
	assert.InDelta(t, 1+1.41421356-2.2, res.Depth, 1e-3)
}

func TestDetectionIsSymmetric(t *testing.T) {
	cases := map[string][2]*struct {
		shape geom.Shape
		pos   rl.Vector2
	}{
		"circle-circle": {
			{geom.NewCircle(1), rl.Vector2{}},
			{geom.NewCircle(1.5), rl.Vector2{X: 1, Y: 1}},
		},
		"circle-polygon": {
			{geom.NewCircle(1), rl.Vector2{X: 1.6, Y: 0.3}},
			{geom.NewBox(2, 2), rl.Vector2{}},
		},
		"polygon-polygon": {
			{geom.NewBox(1, 1), rl.Vector2{}},
			{geom.NewBox(1, 1), rl.Vector2{X: 0.5, Y: 0.2}},
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			a := body("a", c[0].shape, c[0].pos.X, c[0].pos.Y)
			b := body("b", c[1].shape, c[1].pos.X, c[1].pos.Y)

			ab := Check(a.Collider, a.Transform, b.Collider, b.Transform)
			ba := Check(b.Collider, b.Transform, a.Collider, a.Transform)

			require.True(t, ab.Intersects)
			assert.Equal(t, ab.Intersects, ba.Intersects)
			assertVec(t, ab.Normal, rl.Vector2Negate(ba.Normal))
			assert.InDelta(t, ab.Depth, ba.Depth, tol)
			assertUnit(t, ab.Normal)
		})
	}
}

func TestCirclePolygonVertexRegion(t *testing.T) {
	box := geom.WorldPoints(geom.NewBox(2, 2), geom.DefaultLocal(), geom.NewTransform(rl.Vector2{}))

	// Inside both edge slabs but farther than r from the corner.
	assert.False(t, CirclePolygon(rl.Vector2{X: 1.4, Y: 1.4}, 0.5, box).Intersects)

	res := CirclePolygon(rl.Vector2{X: 1.3, Y: 1.3}, 0.5, box)
	require.True(t, res.Intersects)
	assertVec(t, rl.Vector2{X: 0.70710678, Y: 0.70710678}, res.Normal)
	assert.InDelta(t, 0.5-0.42426407, res.Depth, 1e-3)
}

func TestCirclePolygonNormalPointsAToB(t *testing.T) {
	ball := body("ball", geom.NewCircle(1), 1.5, 0)
	box := body("box", geom.NewBox(2, 2), 0, 0)

	boxFirst := Check(box.Collider, box.Transform, ball.Collider, ball.Transform)
	require.True(t, boxFirst.Intersects)
	assertVec(t, rl.Vector2{X: 1}, boxFirst.Normal)
	assert.InDelta(t, 0.5, boxFirst.Depth, tol)

	ballFirst := Check(ball.Collider, ball.Transform, box.Collider, box.Transform)
	assertVec(t, rl.Vector2{X: -1}, ballFirst.Normal)
}

func TestCheckRespectsLocalOffset(t *testing.T) {
	a := body("a", geom.NewCircle(1), 0, 0)
	b := body("b", geom.NewCircle(1), 5, 0)
	assert.False(t, Check(a.Collider, a.Transform, b.Collider, b.Transform).Intersects)

	a.Collider.Local.Offset = rl.Vector2{X: 3.5}
	res := Check(a.Collider, a.Transform, b.Collider, b.Transform)
	require.True(t, res.Intersects)
	assert.InDelta(t, 0.5, res.Depth, tol)
}

func TestNarrowPhaseIsIdempotent(t *testing.T) {
	a := body("a", geom.NewPolygon(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 2, Y: 0}, rl.Vector2{X: 0, Y: 2}), 0.3, 0.1)
	a.Transform.Rotation = 17
	a.Transform.Scale = rl.Vector2{X: 1.3, Y: 0.8}
	b := body("b", geom.NewBox(1.5, 1), 1.1, 0.4)
	b.Transform.Rotation = -33
	c := body("c", geom.NewCircle(0.7), 0.9, 1.2)

	first := Check(a.Collider, a.Transform, b.Collider, b.Transform)
	second := Check(a.Collider, a.Transform, b.Collider, b.Transform)
	assert.Equal(t, first, second)

	first = Check(c.Collider, c.Transform, a.Collider, a.Transform)
	second = Check(c.Collider, c.Transform, a.Collider, a.Transform)
	assert.Equal(t, first, second)
}

func TestDispatchMatchesCheckOnceBoundsOverlap(t *testing.T) {
	poly := body("poly", geom.NewPolygon(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 2, Y: 0}, rl.Vector2{X: 0, Y: 2}), 0, 0)
	poly.Transform.Rotation = 25
	box := body("box", geom.NewBox(1.5, 1), 1.1, 0.4)
	ball := body("ball", geom.NewCircle(0.7), 0.9, 1.2)
	other := body("other", geom.NewCircle(0.5), 1.4, 1.6)

	pairs := [][2]*engine.Entity{{poly, box}, {box, poly}, {ball, poly}, {poly, ball}, {ball, other}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		require.True(t, BoundsOverlap(a.Collider, a.Transform, b.Collider, b.Transform), a.Name+"-"+b.Name)
		assert.Equal(t,
			Check(a.Collider, a.Transform, b.Collider, b.Transform),
			dispatch(a.Collider, a.Transform, b.Collider, b.Transform),
			a.Name+"-"+b.Name)
	}
}

func TestBroadPhaseRejectsBeforeNarrow(t *testing.T) {
	a := body("a", geom.NewBox(1, 1), 0, 0)
	b := body("b", geom.NewCircle(0.5), 1.0, 0)
	assert.True(t, BoundsOverlap(a.Collider, a.Transform, b.Collider, b.Transform), "touching bounds overlap")

	b.Transform.Position.X = 1.01
	assert.False(t, BoundsOverlap(a.Collider, a.Transform, b.Collider, b.Transform))
	assert.Equal(t, Result{}, Check(a.Collider, a.Transform, b.Collider, b.Transform))
}

func TestPolygonPolygonTieKeepsFirstAxis(t *testing.T) {
	// Diagonal offset gives equal overlap on x and y; A's first edge normal is y.
	a := geom.WorldPoints(geom.NewBox(1, 1), geom.DefaultLocal(), geom.NewTransform(rl.Vector2{}))
	b := geom.WorldPoints(geom.NewBox(1, 1), geom.DefaultLocal(), geom.NewTransform(rl.Vector2{X: 0.5, Y: 0.5}))

	res := PolygonPolygon(a, b)
	require.True(t, res.Intersects)
	assertVec(t, rl.Vector2{X: 0, Y: 1}, res.Normal)
	assert.InDelta(t, 0.5, res.Depth, tol)
}
