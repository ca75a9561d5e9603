package geom

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got rl.Vector2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
}

func TestRotate(t *testing.T) {
	assertVec(t, rl.Vector2{X: 0, Y: 1}, Rotate(rl.Vector2{X: 1, Y: 0}, 90))
	assertVec(t, rl.Vector2{X: -1, Y: 0}, Rotate(rl.Vector2{X: 1, Y: 0}, 180))
	assert.Equal(t, rl.Vector2{X: 3, Y: 4}, Rotate(rl.Vector2{X: 3, Y: 4}, 0))
}

func TestNormalizeOrFallsBack(t *testing.T) {
	assert.Equal(t, FallbackAxis, NormalizeOr(rl.Vector2{}, FallbackAxis))
	assertVec(t, rl.Vector2{X: 0.6, Y: 0.8}, NormalizeOr(rl.Vector2{X: 3, Y: 4}, FallbackAxis))
}

func TestProject(t *testing.T) {
	pts := []rl.Vector2{{X: -1, Y: 2}, {X: 3, Y: -5}, {X: 0, Y: 0}}
	lo, hi := Project(pts, rl.Vector2{X: 1, Y: 0})
	assert.Equal(t, float32(-1), lo)
	assert.Equal(t, float32(3), hi)
}

func TestWorldPointsOrder(t *testing.T) {
	// Origin, local scale, local rotation, offset, then entity scale, rotation, position.
	s := NewPolygon(rl.Vector2{X: 2, Y: 0}, rl.Vector2{X: 3, Y: 0}, rl.Vector2{X: 2, Y: 1})
	l := Local{
		Offset:   rl.Vector2{X: 1, Y: 0},
		Rotation: 90,
		Scale:    rl.Vector2{X: 2, Y: 2},
		Origin:   rl.Vector2{X: 2, Y: 0},
	}
	tr := Transform{Position: rl.Vector2{X: 10, Y: 10}, Rotation: 0, Scale: rl.Vector2{X: 1, Y: 1}}

	pts := WorldPoints(s, l, tr)
	require.Len(t, pts, 3)
	// (2,0)-origin=(0,0) -> offset (1,0) -> world (11,10)
	assertVec(t, rl.Vector2{X: 11, Y: 10}, pts[0])
	// (3,0)-origin=(1,0) -> scale (2,0) -> rot90 (0,2) -> +offset (1,2) -> (11,12)
	assertVec(t, rl.Vector2{X: 11, Y: 12}, pts[1])
	// (2,1)-origin=(0,1) -> (0,2) -> rot90 (-2,0) -> (-1,0) -> (9,10)
	assertVec(t, rl.Vector2{X: 9, Y: 10}, pts[2])
}

func TestWorldPointsEntityRotationAfterOffset(t *testing.T) {
	s := NewPolygon(rl.Vector2{}, rl.Vector2{X: 1}, rl.Vector2{Y: 1})
	l := DefaultLocal()
	l.Offset = rl.Vector2{X: 5}
	tr := Transform{Rotation: 90, Scale: rl.Vector2{X: 1, Y: 1}}

	pts := WorldPoints(s, l, tr)
	assertVec(t, rl.Vector2{X: 0, Y: 5}, pts[0])
}

func TestWorldRadiusAveragesScale(t *testing.T) {
	s := NewCircle(2)
	l := DefaultLocal()
	l.Scale = rl.Vector2{X: 1, Y: 2}
	tr := NewTransform(rl.Vector2{})
	tr.Scale = rl.Vector2{X: 3, Y: 1}
	// combined scale (3, 2) -> average 2.5
	assert.InDelta(t, 5.0, WorldRadius(s, l, tr), tol)
}

func TestCenter(t *testing.T) {
	tr := NewTransform(rl.Vector2{X: 4, Y: 6})
	l := DefaultLocal()
	l.Offset = rl.Vector2{X: 1, Y: 1}

	assertVec(t, rl.Vector2{X: 5, Y: 7}, Center(NewCircle(1), l, tr))
	assertVec(t, rl.Vector2{X: 5, Y: 7}, Center(NewBox(2, 2), l, tr))
	assertVec(t, tr.Position, Center(Shape{Kind: Polygon}, l, tr))
}

func TestBounds(t *testing.T) {
	tr := NewTransform(rl.Vector2{X: 1, Y: 1})
	l := DefaultLocal()

	c := Bounds(NewCircle(2), l, tr)
	assertVec(t, rl.Vector2{X: -1, Y: -1}, c.Min)
	assertVec(t, rl.Vector2{X: 3, Y: 3}, c.Max)

	tr.Rotation = 45
	b := Bounds(NewBox(2, 2), l, tr)
	half := float32(1.41421356)
	assertVec(t, rl.Vector2{X: 1 - half, Y: 1 - half}, b.Min)
	assertVec(t, rl.Vector2{X: 1 + half, Y: 1 + half}, b.Max)

	assert.Equal(t, AABB{}, Bounds(Shape{Kind: Polygon}, l, tr))
}

func TestAABBIntersectsInclusive(t *testing.T) {
	a := AABB{Min: rl.Vector2{}, Max: rl.Vector2{X: 1, Y: 1}}
	touching := AABB{Min: rl.Vector2{X: 1}, Max: rl.Vector2{X: 2, Y: 1}}
	apart := AABB{Min: rl.Vector2{X: 1.5}, Max: rl.Vector2{X: 2, Y: 1}}

	assert.True(t, a.Intersects(touching))
	assert.True(t, touching.Intersects(a))
	assert.False(t, a.Intersects(apart))
	assert.Equal(t, rl.Rectangle{X: 0, Y: 0, Width: 1, Height: 1}, a.Rectangle())
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, NewCircle(1).Validate())
	assert.NoError(t, NewBox(1, 2).Validate())

	assert.ErrorIs(t, NewCircle(0).Validate(), ErrBadRadius)
	assert.ErrorIs(t, NewPolygon(rl.Vector2{}, rl.Vector2{X: 1}).Validate(), ErrTooFewPoints)

	dart := NewPolygon(
		rl.Vector2{X: 0, Y: 0},
		rl.Vector2{X: 2, Y: 1},
		rl.Vector2{X: 4, Y: 0},
		rl.Vector2{X: 2, Y: 4},
	)
	assert.ErrorIs(t, dart.Validate(), ErrNotConvex)
}

func TestNewPolygonCopiesPoints(t *testing.T) {
	src := []rl.Vector2{{X: 0}, {X: 1}, {Y: 1}}
	s := NewPolygon(src...)
	src[0].X = 99
	assert.Equal(t, float32(0), s.Points[0].X)
}
