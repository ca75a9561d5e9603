package engine

// Scene keeps entities in insertion order. Collision processing walks them in that
// order, so it is part of the observable behaviour.
type Scene struct {
	Name     string
	entities []*Entity
	byUID    map[uint64]*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		entities: make([]*Entity, 0),
		byUID:    make(map[uint64]*Entity),
	}
}

func (s *Scene) Add(e *Entity) {
	if e == nil {
		return
	}
	if _, dup := s.byUID[e.UID]; dup {
		return
	}
	e.Scene = s
	s.entities = append(s.entities, e)
	s.byUID[e.UID] = e
}

func (s *Scene) Remove(e *Entity) {
	for i, obj := range s.entities {
		if obj == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			delete(s.byUID, e.UID)
			e.Scene = nil
			return
		}
	}
}

// Entities returns the live slice. Callers must not append to it.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

func (s *Scene) Len() int {
	return len(s.entities)
}

func (s *Scene) FindByUID(uid uint64) *Entity {
	return s.byUID[uid]
}

func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*Entity {
	var result []*Entity
	for _, e := range s.entities {
		if e.HasTag(tag) {
			result = append(result, e)
		}
	}
	return result
}
