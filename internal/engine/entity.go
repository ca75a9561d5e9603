package engine

import (
	"slices"
	"sync/atomic"

	"collide2d/internal/components"
	"collide2d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

// Owner ties an entity to another one. The targeting step reads it to refresh
// Kinematics.Target each tick.
type Owner struct {
	Ref    EntityRef
	Offset rl.Vector2 // in the owner's local space
}

// Entity is a named transform with optional capabilities. A nil capability means the
// entity does not take part in the systems that need it.
type Entity struct {
	UID       uint64
	Name      string
	Tags      []string
	Active    bool
	Transform geom.Transform

	Collider   *components.Collider
	Kinematics *components.Kinematics
	Owner      *Owner

	Scene *Scene
}

func NewEntity(name string) *Entity {
	return &Entity{
		UID:       nextUID.Add(1),
		Name:      name,
		Active:    true,
		Transform: geom.NewTransform(rl.Vector2{}),
	}
}

func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Immovable reports whether collisions leave this entity in place.
// Entities without kinematics never move.
func (e *Entity) Immovable() bool {
	return e.Kinematics == nil || e.Kinematics.Immovable()
}

// IsColliding is false for entities without a collider.
func (e *Entity) IsColliding() bool {
	return e.Collider != nil && e.Collider.IsColliding
}
