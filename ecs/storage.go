package ecs

import (
	"reflect"
	"slices"
	"sort"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage. It owns every entity, its components and
// the singleton components that are not attached to any entity.
type Storage struct {
	registry   *ComponentRegistry
	stores     map[reflect.Type]componentStore
	entities   *intmap.Map[EntityId, []reflect.Type]
	singletons map[reflect.Type]any
	nextId     EntityId
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		stores:     make(map[reflect.Type]componentStore),
		entities:   intmap.New[EntityId, []reflect.Type](256),
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; the stored copy is always a value.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	s.nextId++
	id := s.nextId

	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		s.storeFor(compType).put(id, comp)
		if !slices.Contains(types, compType) {
			types = append(types, compType)
		}
	}
	s.entities.Put(id, types)
	return id
}

// Delete removes the entity and all of its components. Deleting an unknown or
// already deleted entity is a no-op and returns false.
func (s *Storage) Delete(id EntityId) bool {
	types, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	for _, typ := range types {
		s.stores[typ].remove(id)
	}
	s.entities.Del(id)
	return true
}

// Alive reports whether the entity exists.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.entities.Get(id)
	return ok
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.entities.Len()
}

// Components returns pointers to the entity's components in the order they
// were added, or nil for an unknown entity.
func (s *Storage) Components(id EntityId) []any {
	types, ok := s.entities.Get(id)
	if !ok {
		return nil
	}
	out := make([]any, 0, len(types))
	for _, typ := range types {
		out = append(out, s.stores[typ].get(id))
	}
	return out
}

// AddComponent attaches a component to an existing entity, replacing any
// component of the same type.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	types, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	compType := componentType(component)
	s.storeFor(compType).put(id, component)
	if !slices.Contains(types, compType) {
		s.entities.Put(id, append(types, compType))
	}
	return true
}

// RemoveComponent detaches a component from an entity. An entity left without
// components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	types, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	idx := slices.Index(types, compType)
	if idx < 0 {
		return false
	}
	s.stores[compType].remove(id)

	types = slices.Delete(slices.Clone(types), idx, idx+1)
	if len(types) == 0 {
		s.entities.Del(id)
		return true
	}
	s.entities.Put(id, types)
	return true
}

// GetComponent returns a pointer to the component of the given type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	store, ok := s.stores[compType]
	if !ok {
		return nil
	}
	return store.get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	store, ok := s.stores[compType]
	if !ok {
		return false
	}
	return store.has(id)
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value. Singleton types do not need to be registered.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	v := reflect.ValueOf(value)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		v = v.Elem()
	}

	if existing, ok := s.singletons[typ]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}
	ptr := reflect.New(typ)
	ptr.Elem().Set(v)
	s.singletons[typ] = ptr.Interface()
}

// ReadSingleton fills target, which must be a pointer to a pointer, with the
// stored singleton of the pointed-to type. It returns false if none exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	existing, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(existing))
	return true
}

func (s *Storage) singleton(typ reflect.Type) any {
	return s.singletons[typ]
}

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	EntityCount     int
	ComponentCounts map[string]int
	SingletonCount  int
	SingletonTypes  []string
}

// CollectStats summarizes the storage contents.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:     s.entities.Len(),
		ComponentCounts: make(map[string]int, len(s.stores)),
		SingletonCount:  len(s.singletons),
	}
	for typ, store := range s.stores {
		stats.ComponentCounts[typ.String()] = store.len()
	}
	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)
	return stats
}

func (s *Storage) storeFor(compType reflect.Type) componentStore {
	if store, ok := s.stores[compType]; ok {
		return store
	}
	factory := s.registry.getFactory(compType)
	if factory == nil {
		panic("component type " + compType.String() + " not registered")
	}
	store := factory()
	s.stores[compType] = store
	return store
}

// componentType returns the value type of a component passed by value or pointer.
func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType == nil {
		panic("components cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components are value types: structs or primitives, never references.
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

// ComponentReader is implemented by anything that can look up components.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
