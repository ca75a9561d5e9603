package motion

import (
	"collide2d/internal/config"
	"collide2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ClampToBounds keeps moving colliders inside the arena, margin units away from each
// edge. Entities without a collider or kinematics are left alone. Disabled bounds are a
// no-op.
func ClampToBounds(entities []*engine.Entity, b config.Bounds, margin float32) {
	if !b.Enabled() {
		return
	}
	lo := rl.Vector2{X: b.Min.X + margin, Y: b.Min.Y + margin}
	hi := rl.Vector2{X: b.Max.X - margin, Y: b.Max.Y - margin}
	for _, e := range entities {
		if e.Collider == nil || e.Kinematics == nil || e.Kinematics.Static {
			continue
		}
		e.Transform.Position = rl.Vector2Clamp(e.Transform.Position, lo, hi)
	}
}
