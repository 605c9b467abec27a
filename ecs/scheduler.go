package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}

// executor is implemented by Query fields.
type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler manages and executes systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Register adds a system to the scheduler and binds its Query and Singleton
// fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.bindFields(system),
		stats: SystemStats{
			Name:        systemType.Name(),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (s *Scheduler) bindFields(system System) []executor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr || systemValue.Elem().Kind() != reflect.Struct {
		return nil
	}
	systemValue = systemValue.Elem()

	var queries []executor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(executor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time. Each
// system's queries are refreshed right before it runs, and queued commands
// are flushed after the last system.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := &rs.stats
		stats.ExecutionCount++
		stats.LastDuration = duration
		stats.TotalDuration += duration
		stats.MinDuration = min(stats.MinDuration, duration)
		stats.MaxDuration = max(stats.MaxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		st := rs.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
