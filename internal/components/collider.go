package components

import (
	"collide2d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider gives an entity a collision shape anchored to its transform.
type Collider struct {
	Shape   geom.Shape
	Local   geom.Local
	Enabled bool

	// IsColliding is recomputed every physics tick and read by debug overlays.
	IsColliding bool

	DebugColor rl.Color
}

func NewCollider(shape geom.Shape) *Collider {
	return &Collider{
		Shape:      shape,
		Local:      geom.DefaultLocal(),
		Enabled:    true,
		DebugColor: rl.NewColor(255, 0, 0, 128),
	}
}

// Points returns the world-space polygon vertices for the given entity transform.
func (c *Collider) Points(t geom.Transform) []rl.Vector2 {
	return geom.WorldPoints(c.Shape, c.Local, t)
}

func (c *Collider) Radius(t geom.Transform) float32 {
	return geom.WorldRadius(c.Shape, c.Local, t)
}

func (c *Collider) Center(t geom.Transform) rl.Vector2 {
	return geom.Center(c.Shape, c.Local, t)
}

func (c *Collider) Bounds(t geom.Transform) geom.AABB {
	return geom.Bounds(c.Shape, c.Local, t)
}
