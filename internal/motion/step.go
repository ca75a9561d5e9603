package motion

import (
	"collide2d/internal/components"
	"collide2d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Step advances every active entity with kinematics by dt.
func Step(entities []*engine.Entity, dt float32) {
	for _, e := range entities {
		if e.Active && e.Kinematics != nil {
			Integrate(e, dt)
		}
	}
}

// Integrate applies the entity's behaviour flags in a fixed order: acceleration, drag,
// homing, then position (orbit or velocity), rotation and pulse.
func Integrate(e *engine.Entity, dt float32) {
	k := e.Kinematics
	tr := &e.Transform
	k.Elapsed += dt

	if k.Behavior.Has(components.Accelerate) {
		k.Velocity = rl.Vector2Add(k.Velocity, rl.Vector2Scale(k.Acceleration, dt))
		k.AngularVelocity += k.AngularAcceleration * dt
	}

	if k.Drag > 0 {
		k.Velocity = rl.Vector2Scale(k.Velocity, 1/(1+k.Drag*dt))
	}

	// Homing turns the velocity toward the target without changing speed.
	if k.Behavior.Has(components.Homing) && k.HasTarget {
		dir := rl.Vector2Normalize(rl.Vector2Subtract(k.Target, tr.Position))
		k.Velocity = rl.Vector2Scale(dir, k.Speed())
	}

	switch {
	case k.Behavior.Has(components.Orbital):
		if k.HasTarget {
			k.OrbitAngle += k.OrbitAngularVelocity * dt
			rad := k.OrbitAngle * rl.Deg2rad
			offset := rl.Vector2{X: math32.Cos(rad) * k.OrbitRadius, Y: math32.Sin(rad) * k.OrbitRadius}
			tr.Position = rl.Vector2Add(k.Target, offset)
		}
	case k.Behavior.Has(components.Linear | components.Accelerate | components.Homing):
		tr.Position = rl.Vector2Add(tr.Position, rl.Vector2Scale(k.Velocity, dt))
	}

	if k.Behavior.Has(components.Rotating) {
		tr.Rotation += k.AngularVelocity * dt
	}

	if k.Behavior.Has(components.Pulsing) {
		m := 1 + k.PulseAmplitude*math32.Sin(k.Elapsed*k.PulseFrequency)
		tr.Scale = rl.Vector2Scale(k.BaseScale, m)
	}
}
