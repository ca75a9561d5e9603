package physics

import (
	"testing"

	"collide2d/internal/components"
	"collide2d/internal/config"
	"collide2d/internal/engine"
	"collide2d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got rl.Vector2, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
}

func assertUnit(t *testing.T, v rl.Vector2) {
	t.Helper()
	assert.InDelta(t, 1.0, rl.Vector2Length(v), tol)
}

func body(name string, shape geom.Shape, x, y float32) *engine.Entity {
	e := engine.NewEntity(name)
	e.Transform.Position = rl.Vector2{X: x, Y: y}
	e.Collider = components.NewCollider(shape)
	e.Kinematics = components.NewKinematics()
	return e
}

func wall(name string, shape geom.Shape, x, y float32) *engine.Entity {
	e := body(name, shape, x, y)
	e.Kinematics = components.NewStaticKinematics()
	return e
}

func defaultParams() config.Physics {
	return config.Default().Physics
}
