package main

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/bounce/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	for i := 20; i >= 1; i-- {
		s.Samples = append(s.Samples, time.Duration(i)*time.Millisecond)
	}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 20*time.Millisecond, s.Max)
	assert.Equal(t, 10500*time.Microsecond, s.Avg)
	assert.Equal(t, 19*time.Millisecond, s.P95)
	assert.Equal(t, 20*time.Millisecond, s.Samples[0], "samples keep their order")
}

func TestStatsFinalizeEmpty(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Max)
}

func TestGenerate(t *testing.T) {
	r := &Report{
		Games:    2,
		Monsters: 100,
		Wins:     1,
		Kills:    150,
		Systems: &ecs.SchedulerStats{Systems: []ecs.SystemStats{
			{Name: "PhysicsSystem", ExecutionCount: 42},
		}},
	}

	var out strings.Builder
	require.NoError(t, r.Generate(&out))
	assert.Contains(t, out.String(), "**Won:** 1 / 2")
	assert.Contains(t, out.String(), "**Monsters Eliminated:** 150 / 200")
	assert.Contains(t, out.String(), "- PhysicsSystem: 42 runs")
}
