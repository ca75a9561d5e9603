package engine

// EntityRef refers to an entity by UID instead of by pointer, so a reference held by a
// long-lived value never outlives the entity it names.
//
//	owner := scene.FindByName("player")
//	e.Owner = &engine.Owner{Offset: rl.Vector2{X: 40}}
//	e.Owner.Ref.Set(owner)
type EntityRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference. It returns nil when the reference is empty or the entity
// has left the scene.
func (r EntityRef) Get(scene *Scene) *Entity {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid does not check whether the entity still exists.
func (r EntityRef) IsValid() bool {
	return r.UID != 0
}

func (r *EntityRef) Set(e *Entity) {
	if e == nil {
		r.UID = 0
	} else {
		r.UID = e.UID
	}
}

func (r *EntityRef) Clear() {
	r.UID = 0
}
