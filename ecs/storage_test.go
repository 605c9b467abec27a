package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/bounce/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	second := storage.Spawn(Position{X: 3.0, Y: 4.0})

	assert.True(t, first.Valid())
	assert.Greater(t, second, first)
	assert.Equal(t, 2, storage.Len())
	assert.True(t, storage.Alive(first))
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	pos := storage.GetComponent(id, reflect.TypeOf(Position{})).(*Position)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "Test Entity", name.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestComponentIsMutableThroughPointer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Health{Current: 10, Max: 10})

	ecs.ReadComponent[Health](storage, id).Current = 3

	assert.Equal(t, 3, ecs.ReadComponent[Health](storage, id).Current)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	b := storage.Spawn(Position{X: 2}, Velocity{DX: 2})
	c := storage.Spawn(Position{X: 3}, Velocity{DX: 3})

	assert.True(t, storage.Delete(a))
	assert.False(t, storage.Delete(a), "second delete is a no-op")

	assert.False(t, storage.Alive(a))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))

	// Remaining entities keep their own data after the dense arrays shift.
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, b).X)
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, c).X)
	assert.Equal(t, float32(3), ecs.ReadComponent[Velocity](storage, c).DX)
	assert.Equal(t, 2, storage.Len())
}

func TestDeletedIdsAreNotReused(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{})
	storage.Delete(a)
	b := storage.Spawn(Position{})

	assert.NotEqual(t, a, b)
	assert.False(t, storage.Alive(a))
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	assert.True(t, storage.AddComponent(id, Velocity{DX: 2}))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))

	assert.True(t, storage.RemoveComponent(id, reflect.TypeOf(Velocity{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.True(t, storage.Alive(id))

	assert.True(t, storage.RemoveComponent(id, reflect.TypeOf(Position{})))
	assert.False(t, storage.Alive(id), "entity without components is deleted")
}

func TestAddComponentToMissingEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.False(t, storage.AddComponent(ecs.EntityId(42), Position{}))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	tests := []struct {
		name       string
		components []any
	}{
		{"no components", nil},
		{"unregistered type", []any{struct{ A int }{}}},
		{"map component", []any{map[string]int{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				storage.Spawn(tt.components...)
			})
		})
	}
}

func TestManyEntitiesAcrossBlocks(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, 0, 200)
	for i := 0; i < 200; i++ {
		ids = append(ids, storage.Spawn(Score(i)))
	}
	for i := 0; i < 200; i += 2 {
		storage.Delete(ids[i])
	}

	assert.Equal(t, 100, storage.Len())
	for i := 1; i < 200; i += 2 {
		assert.Equal(t, Score(i), *ecs.ReadComponent[Score](storage, ids[i]))
	}
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))

	storage.AddSingleton(Health{Current: 5, Max: 10})

	var health *Health
	require.True(t, storage.ReadSingleton(&health))
	assert.Equal(t, 5, health.Current)

	storage.AddSingleton(&Health{Current: 7, Max: 10})
	assert.Equal(t, 7, health.Current, "replacing keeps the same pointer")
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)
	assert.Equal(t, 0, stats.SingletonCount)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{})
	ecs.NewSingleton[Health](storage, Health{Max: 1})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 2, stats.ComponentCounts["ecs_test.Position"])
	assert.Equal(t, 1, stats.ComponentCounts["ecs_test.Velocity"])
	assert.Equal(t, []string{"ecs_test.Health"}, stats.SingletonTypes)
}

func TestComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Name{Value: "a"})

	comps := storage.Components(id)
	require.Len(t, comps, 2)
	assert.Equal(t, &Position{X: 1}, comps[0])
	assert.Equal(t, &Name{Value: "a"}, comps[1])

	comps[0].(*Position).X = 5
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, id).X)

	assert.Nil(t, storage.Components(ecs.EntityId(999)))
}
