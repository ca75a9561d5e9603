package physics

import (
	"collide2d/internal/components"
	"collide2d/internal/engine"
	"collide2d/internal/geom"
)

// shaped reports whether e takes part in collision at all.
func shaped(e *engine.Entity) bool {
	return e != nil && e.Active && e.Collider != nil && e.Collider.Enabled
}

// Eligible filters a pair before any geometry is computed. Two bodies that can never
// move, either because neither has kinematics or both are flagged static, are never
// tested.
func Eligible(a, b *engine.Entity) bool {
	if !shaped(a) || !shaped(b) {
		return false
	}
	ka, kb := a.Kinematics, b.Kinematics
	if ka == nil && kb == nil {
		return false
	}
	if ka != nil && ka.Static && kb != nil && kb.Static {
		return false
	}
	return true
}

// BoundsOverlap is the broad-phase AABB test. Touching boxes overlap.
func BoundsOverlap(a *components.Collider, ta geom.Transform, b *components.Collider, tb geom.Transform) bool {
	return a.Bounds(ta).Intersects(b.Bounds(tb))
}
