package ecs

// EntityId identifies an entity within a Storage. Ids are handed out in
// increasing order and never reused; the zero value is never a live entity.
type EntityId uint32

// Valid reports whether the id could refer to an entity.
func (e EntityId) Valid() bool {
	return e != 0
}
