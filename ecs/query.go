package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type queryField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
	entity   bool
}

// Query iterates entities that carry a combination of components.
//
// T must be a struct whose fields are pointers to component types. Embedded
// fields are always required; named fields may be tagged `ecs:"optional"` and
// are left nil when the entity lacks that component. A field of type EntityId
// receives the id of the matched entity.
//
// Results are cached by Execute, which the Scheduler calls before the owning
// system runs; Iter and Values panic if Execute has not run.
type Query[T any] struct {
	storage *Storage
	fields  []queryField

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.fields = queryFields(reflect.TypeFor[T]())
	q.cacheValid = false
}

func queryFields(structType reflect.Type) []queryField {
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	fields := make([]queryField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, queryField{offset: field.Offset, entity: true})
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types or EntityId")
		}

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}
		fields = append(fields, queryField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return fields
}

// Execute builds the entity and component caches for this frame.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	q.cacheValid = true

	driver := q.driver()
	if driver == nil {
		return
	}

	var result T
	for _, id := range driver.ids() {
		if !q.fill(id, &result) {
			continue
		}
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, result)
	}
}

// driver picks the smallest store among required components. A query with no
// required components iterates nothing.
func (q *Query[T]) driver() componentStore {
	var best componentStore
	for _, f := range q.fields {
		if f.entity || f.optional {
			continue
		}
		store, ok := q.storage.stores[f.typ]
		if !ok {
			return nil
		}
		if best == nil || store.len() < best.len() {
			best = store
		}
	}
	return best
}

func (q *Query[T]) fill(id EntityId, ptr *T) bool {
	base := unsafe.Pointer(ptr)
	for _, f := range q.fields {
		fieldPtr := unsafe.Add(base, f.offset)
		if f.entity {
			*(*EntityId)(fieldPtr) = id
			continue
		}

		var comp any
		if store, ok := q.storage.stores[f.typ]; ok {
			comp = store.get(id)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = reflect.ValueOf(comp).UnsafePointer()
	}
	return true
}

// Get fills the query struct for a single entity without touching the cache.
func (q *Query[T]) Get(id EntityId) (T, bool) {
	var result T
	if !q.storage.Alive(id) {
		return result, false
	}
	ok := q.fill(id, &result)
	return result, ok
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of entities matched by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}
