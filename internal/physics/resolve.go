package physics

import (
	"collide2d/internal/config"
	"collide2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PairKind is the resolution strategy chosen for a colliding pair.
type PairKind uint8

const (
	StaticStatic   PairKind = iota // nothing moves
	StaticDynamic                  // A is the wall, B moves
	DynamicStatic                  // A moves, B is the wall
	DynamicDynamic                 // both move, split by mass
)

func (k PairKind) String() string {
	switch k {
	case StaticDynamic:
		return "static-dynamic"
	case DynamicStatic:
		return "dynamic-static"
	case DynamicDynamic:
		return "dynamic-dynamic"
	default:
		return "static-static"
	}
}

// Classify picks the resolution strategy from effective masses. A body without
// kinematics, flagged static, or with infinite mass counts as infinitely heavy.
//
// Two infinitely heavy bodies still interact when both carry kinematics: if neither is
// flagged static they resolve as equal unit masses, and if exactly one is flagged the
// other is pushed off it.
func Classify(a, b *engine.Entity) PairKind {
	infA, infB := a.Immovable(), b.Immovable()
	switch {
	case !infA && !infB:
		return DynamicDynamic
	case infA && !infB:
		return StaticDynamic
	case !infA && infB:
		return DynamicStatic
	}

	ka, kb := a.Kinematics, b.Kinematics
	if ka == nil || kb == nil {
		return StaticStatic
	}
	switch {
	case !ka.Static && !kb.Static:
		return DynamicDynamic
	case ka.Static && !kb.Static:
		return StaticDynamic
	case !ka.Static && kb.Static:
		return DynamicStatic
	}
	return StaticStatic
}

// Resolver applies impulse and positional correction to one pair at a time. It keeps no
// state between calls.
type Resolver struct {
	params config.Physics
}

func NewResolver(params config.Physics) *Resolver {
	return &Resolver{params: params}
}

// Resolve classifies the pair and applies the matching response. The contact normal
// must point from a to b.
func (r *Resolver) Resolve(a, b *engine.Entity, res Result) PairKind {
	kind := Classify(a, b)
	switch kind {
	case StaticDynamic:
		r.StaticDynamic(b, res.Normal, res.Depth)
	case DynamicStatic:
		r.StaticDynamic(a, rl.Vector2Negate(res.Normal), res.Depth)
	case DynamicDynamic:
		r.DynamicDynamic(a, b, res.Normal, res.Depth)
	}
	return kind
}

// StaticDynamic bounces body off an immovable surface. normal points from the surface
// toward body. The push-out overshoots depth so the body clears the surface.
func (r *Resolver) StaticDynamic(body *engine.Entity, normal rl.Vector2, depth float32) {
	k := body.Kinematics
	if k == nil {
		return
	}

	if vn := rl.Vector2DotProduct(k.Velocity, normal); vn < r.params.Epsilon {
		k.ApplyImpulse(rl.Vector2Scale(normal, -(1+r.params.StaticRestitution)*vn))
	}

	push := rl.Vector2Scale(normal, depth*r.params.StaticOvershoot)
	body.Transform.Position = rl.Vector2Add(body.Transform.Position, push)
}

// DynamicDynamic exchanges momentum along normal (a -> b) and separates the bodies by
// opposite mass share, so the heavier one moves less.
//
// The epsilon term keeps a resting contact from producing a zero impulse. The impulse is
// ((1+e)·vn + ε)/(mA+mB) with e = DynamicRestitution; the default e = 1 is elastic, so it
// is not the plain (vn + ε)/(mA+mB) form, which only e = 0 reproduces.
//
// Two immovable bodies, or a combined mass below epsilon, fall back to unit masses.
func (r *Resolver) DynamicDynamic(a, b *engine.Entity, normal rl.Vector2, depth float32) {
	ka, kb := a.Kinematics, b.Kinematics
	if ka == nil || kb == nil {
		return
	}

	massA, massB := ka.Mass, kb.Mass
	if (a.Immovable() && b.Immovable()) || massA+massB < r.params.Epsilon {
		massA, massB = 1, 1
	}
	total := massA + massB

	vn := rl.Vector2DotProduct(rl.Vector2Subtract(ka.Velocity, kb.Velocity), normal)
	if vn > -r.params.Epsilon {
		j := ((1+r.params.DynamicRestitution)*vn + r.params.Epsilon) / total
		ka.ApplyImpulse(rl.Vector2Scale(normal, -j*massB))
		kb.ApplyImpulse(rl.Vector2Scale(normal, j*massA))
	}

	a.Transform.Position = rl.Vector2Subtract(a.Transform.Position, rl.Vector2Scale(normal, depth*massB/total))
	b.Transform.Position = rl.Vector2Add(b.Transform.Position, rl.Vector2Scale(normal, depth*massA/total))
}
