package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// Transform places an entity in the world.
type Transform struct {
	Position rl.Vector2
	Rotation float32 // degrees
	Scale    rl.Vector2
}

func NewTransform(position rl.Vector2) Transform {
	return Transform{
		Position: position,
		Scale:    rl.Vector2{X: 1, Y: 1},
	}
}

// Apply maps a point from entity space to world space: scale, then rotate, then translate.
func (t Transform) Apply(p rl.Vector2) rl.Vector2 {
	p = rl.Vector2Multiply(p, t.Scale)
	p = Rotate(p, t.Rotation)
	return rl.Vector2Add(p, t.Position)
}

// Local anchors a shape to its entity. Origin is the local point that ends up at Offset.
type Local struct {
	Offset   rl.Vector2
	Rotation float32 // degrees
	Scale    rl.Vector2
	Origin   rl.Vector2
}

func DefaultLocal() Local {
	return Local{Scale: rl.Vector2{X: 1, Y: 1}}
}

// Apply maps a point from shape space to entity space.
func (l Local) Apply(p rl.Vector2) rl.Vector2 {
	p = rl.Vector2Subtract(p, l.Origin)
	p = rl.Vector2Multiply(p, l.Scale)
	p = Rotate(p, l.Rotation)
	return rl.Vector2Add(p, l.Offset)
}

// ToWorld maps a point from shape space all the way to world space.
func ToWorld(p rl.Vector2, l Local, t Transform) rl.Vector2 {
	return t.Apply(l.Apply(p))
}
