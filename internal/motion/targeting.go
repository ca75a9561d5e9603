package motion

import (
	"collide2d/internal/engine"
)

// Targeting refreshes Kinematics.Target for every owned entity. It runs once per tick
// before Step, so motion only ever reads an owned copy of the owner's position. An
// entity whose owner has left the scene loses its target.
func Targeting(scene *engine.Scene) {
	for _, e := range scene.Entities() {
		if e.Owner == nil || e.Kinematics == nil {
			continue
		}
		owner := e.Owner.Ref.Get(scene)
		if owner == nil {
			e.Kinematics.HasTarget = false
			continue
		}
		e.Kinematics.Target = owner.Transform.Apply(e.Owner.Offset)
		e.Kinematics.HasTarget = true
	}
}
