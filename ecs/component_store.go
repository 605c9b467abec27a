package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage has its own registry so independent worlds do not interfere.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStore
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStore),
	}
}

// RegisterComponent registers a component type with the registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentStore {
		return newSparseSet[T]()
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStore {
	return r.factories[t]
}

// componentStore is a type-erased container for one component type.
type componentStore interface {
	put(id EntityId, value any) bool
	remove(id EntityId) bool
	get(id EntityId) any
	has(id EntityId) bool
	ids() []EntityId
	len() int
}

const blockSize = 64

// sparseSet keeps components densely packed in fixed-size blocks so pointers
// handed out during a frame stay valid while new components are appended.
// Removal moves the last component into the freed slot.
type sparseSet[T any] struct {
	index  *intmap.Map[EntityId, int]
	owners []EntityId
	blocks []*[blockSize]T
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{
		index: intmap.New[EntityId, int](64),
	}
}

func (s *sparseSet[T]) slot(i int) *T {
	return &s.blocks[i/blockSize][i%blockSize]
}

func (s *sparseSet[T]) put(id EntityId, value any) bool {
	var item T
	switch v := value.(type) {
	case T:
		item = v
	case *T:
		if v == nil {
			return false
		}
		item = *v
	default:
		return false
	}

	if i, ok := s.index.Get(id); ok {
		*s.slot(i) = item
		return true
	}

	i := len(s.owners)
	if i/blockSize >= len(s.blocks) {
		s.blocks = append(s.blocks, new([blockSize]T))
	}
	*s.slot(i) = item
	s.owners = append(s.owners, id)
	s.index.Put(id, i)
	return true
}

func (s *sparseSet[T]) remove(id EntityId) bool {
	i, ok := s.index.Get(id)
	if !ok {
		return false
	}

	last := len(s.owners) - 1
	if i != last {
		moved := s.owners[last]
		*s.slot(i) = *s.slot(last)
		s.owners[i] = moved
		s.index.Put(moved, i)
	}

	var zero T
	*s.slot(last) = zero
	s.owners = s.owners[:last]
	s.index.Del(id)
	return true
}

func (s *sparseSet[T]) get(id EntityId) any {
	i, ok := s.index.Get(id)
	if !ok {
		return nil
	}
	return s.slot(i)
}

func (s *sparseSet[T]) has(id EntityId) bool {
	_, ok := s.index.Get(id)
	return ok
}

func (s *sparseSet[T]) ids() []EntityId {
	return s.owners
}

func (s *sparseSet[T]) len() int {
	return len(s.owners)
}
