package ecs_test

import (
	"testing"

	"github.com/plus3/bounce/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()

		count := 0
		for range query.Iter() {
			count++
		}

		if count != 3 {
			t.Errorf("expected 3 entities, got %d", count)
		}
		assert.Equal(t, 3, query.Len())
	})

	t.Run("panics without execute", func(t *testing.T) {
		freshQuery := ecs.NewQuery[struct {
			*Position
			*Velocity
		}](storage)

		assert.Panics(t, func() {
			for range freshQuery.Iter() {
			}
		})
	})

	t.Run("mutations through query write to storage", func(t *testing.T) {
		query.Execute()
		for item := range query.Values() {
			item.Position.X += item.Velocity.DX
		}

		sum := float32(0)
		view := ecs.NewQuery[struct{ *Position }](storage)
		view.Execute()
		for item := range view.Values() {
			sum += item.Position.X
		}
		assert.Equal(t, float32(1+3+5+7+0.5+1.0+1.5), sum)
	})

	t.Run("cache reflects new spawns after re-execute", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{X: 9, Y: 10}, Velocity{DX: 2, DY: 2})
		assert.Equal(t, before, query.Len(), "cache is stale until Execute")

		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})
}

func TestQueryOptionalAndEntityFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withHealth := storage.Spawn(Position{X: 1}, Health{Current: 50})
	without := storage.Spawn(Position{X: 2})

	query := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
		Health *Health `ecs:"optional"`
	}](storage)
	query.Execute()

	seen := map[ecs.EntityId]bool{}
	for id, item := range query.Iter() {
		assert.Equal(t, id, item.EntityId)
		seen[id] = true

		switch id {
		case withHealth:
			if assert.NotNil(t, item.Health) {
				assert.Equal(t, 50, item.Health.Current)
			}
		case without:
			assert.Nil(t, item.Health)
		}
	}
	assert.Len(t, seen, 2)
}

func TestQueryGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4}, Name{Value: "x"})

	query := ecs.NewQuery[struct {
		*Position
		*Name
	}](storage)

	item, ok := query.Get(id)
	assert.True(t, ok)
	assert.Equal(t, float32(4), item.Position.X)

	storage.Delete(id)
	_, ok = query.Get(id)
	assert.False(t, ok)
}

func TestQueryOverUnspawnedComponentIsEmpty(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{})

	query := ecs.NewQuery[struct {
		*Position
		*Health
	}](storage)
	query.Execute()

	assert.Equal(t, 0, query.Len())
}

func TestQueryRejectsBadShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewQuery[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewQuery[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewQuery[int](storage)
	})
}
