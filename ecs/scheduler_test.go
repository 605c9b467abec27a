package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/bounce/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	Total ecs.Singleton[Score]
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	total := s.Total.Get()
	*total = 0
	for item := range s.Entities.Values() {
		*total += Score(item.Health.Current)
	}
}

type SpawnerSystem struct {
	Entities ecs.Query[struct{ *Position }]
	Seen     []int
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Entities.Len())
	frame.Commands.Spawn(Position{})
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and query initialization", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[Score](storage)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		mover := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
		storage.Spawn(Health{Current: 100, Max: 100})
		storage.Spawn(Health{Current: 20, Max: 100})

		scheduler.Once(1.0)
		scheduler.Once(0.5)

		assert.Equal(t, 2, movement.ExecuteCount)
		pos := ecs.ReadComponent[Position](storage, mover)
		assert.Equal(t, float32(1.5), pos.X)
		assert.Equal(t, float32(3), pos.Y)

		var total *Score
		require.True(t, storage.ReadSingleton(&total))
		assert.Equal(t, Score(120), *total)
	})

	t.Run("commands flush after the frame", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		spawner := &SpawnerSystem{}
		scheduler.Register(spawner)

		scheduler.Once(0)
		scheduler.Once(0)
		scheduler.Once(0)

		assert.Equal(t, []int{0, 1, 2}, spawner.Seen)
		assert.Equal(t, 3, storage.Len())
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})
		scheduler.Register(&SpawnerSystem{})

		stats := scheduler.Stats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

		for i := 0; i < 4; i++ {
			scheduler.Once(1.0 / 60.0)
		}

		stats = scheduler.Stats()
		assert.Equal(t, int64(8), stats.TotalExecutions)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, "SpawnerSystem", stats.Systems[1].Name)
		for _, st := range stats.Systems {
			assert.Equal(t, int64(4), st.ExecutionCount)
			assert.LessOrEqual(t, st.MinDuration, st.MaxDuration)
			assert.Equal(t, st.TotalDuration/4, st.AvgDuration)
		}
	})

	t.Run("run stops on cancel", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after context cancellation")
		}
		assert.Greater(t, movement.ExecuteCount, 0)
	})
}
