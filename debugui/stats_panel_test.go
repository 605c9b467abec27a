package debugui

import (
	"testing"
	"time"

	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/gesture"
	"github.com/plus3/bounce/scene"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Zero(t, h.avg())

	h.push(10 * time.Millisecond)
	h.push(20 * time.Millisecond)
	assert.InDelta(t, 15, h.avg(), 1e-4)

	h.push(30 * time.Millisecond)
	h.push(40 * time.Millisecond)
	assert.InDelta(t, 30, h.avg(), 1e-4, "oldest sample is overwritten")
}

func TestScoreLines(t *testing.T) {
	lines := scoreLines(scene.Stats{
		Score:    scene.Score{MonsterCount: 100, MonsterKilled: 40, Moves: 7},
		Entities: 65,
	})
	assert.Equal(t, []string{
		"Moves: 7",
		"Killed: 40 / 100",
		"Remaining: 60",
		"Entities: 65",
	}, lines)
}

func TestSystemRows(t *testing.T) {
	rows := systemRows(&ecs.SchedulerStats{Systems: []ecs.SystemStats{{
		Name:           "PhysicsSystem",
		ExecutionCount: 3,
		LastDuration:   time.Millisecond,
		AvgDuration:    2 * time.Millisecond,
		MaxDuration:    3 * time.Millisecond,
	}}})
	assert.Equal(t, [][]string{{"PhysicsSystem", "3", "1ms", "2ms", "3ms"}}, rows)
}

func TestComponentLines(t *testing.T) {
	lines := componentLines(ecs.StorageStats{
		ComponentCounts: map[string]int{"scene.Sprite": 5, "scene.Body": 5},
		SingletonTypes:  []string{"scene.Score"},
	})
	assert.Equal(t, []string{"scene.Body: 5", "scene.Sprite: 5", "scene.Score (singleton)"}, lines)
}

func TestGuardedSource(t *testing.T) {
	src := &gesture.ManualSource{}
	input := &InputState{}
	guarded := guardedSource{src: src, input: input}

	src.Press(3, 4)
	x, y, down := guarded.Pointer()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
	assert.True(t, down)

	input.WantCaptureMouse = true
	_, _, down = guarded.Pointer()
	assert.False(t, down)
}
