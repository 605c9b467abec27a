package gesture_test

import (
	"testing"

	"github.com/plus3/bounce/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 0.1

func states(events []gesture.Event) []gesture.State {
	out := make([]gesture.State, len(events))
	for i, ev := range events {
		out[i] = ev.State
	}
	return out
}

func TestPanLifecycle(t *testing.T) {
	src := &gesture.ManualSource{}
	r := gesture.NewRecognizer(src)

	var events []gesture.Event
	src.Press(0, 0)
	events = r.Poll(events, dt)
	src.Move(5, 0)
	events = r.Poll(events, dt)
	assert.Empty(t, events, "below hysteresis")

	src.Move(12, 0)
	events = r.Poll(events, dt)
	src.Move(20, 0)
	events = r.Poll(events, dt)
	events = r.Poll(events, dt)
	src.Release()
	events = r.Poll(events, dt)

	require.Equal(t, []gesture.State{gesture.StateBegan, gesture.StateChanged, gesture.StateEnded}, states(events))

	began := events[0]
	assert.Equal(t, gesture.Point{X: 12}, began.Location)
	assert.Equal(t, gesture.Point{X: 12}, began.Translation)
	assert.InDelta(t, 47.5, began.Velocity.X, 1e-9)

	changed := events[1]
	assert.Equal(t, gesture.Point{X: 20}, changed.Translation)
	assert.InDelta(t, 63.75, changed.Velocity.X, 1e-9)
	assert.Zero(t, changed.Velocity.Y)

	assert.Equal(t, gesture.StatePossible, r.State())
}

func TestReleaseBeforeBeganEmitsNothing(t *testing.T) {
	src := &gesture.ManualSource{}
	r := gesture.NewRecognizer(src)

	src.Press(100, 100)
	events := r.Poll(nil, dt)
	src.Move(104, 103)
	events = r.Poll(events, dt)
	src.Release()
	events = r.Poll(events, dt)

	assert.Empty(t, events)
	assert.Equal(t, gesture.StatePossible, r.State())
}

func TestChangedOnlyWhenMoving(t *testing.T) {
	src := &gesture.ManualSource{}
	r := gesture.NewRecognizer(src)

	src.Press(0, 0)
	r.Poll(nil, dt)
	src.Move(0, 30)
	events := r.Poll(nil, dt)
	require.Equal(t, []gesture.State{gesture.StateBegan}, states(events))

	for i := 0; i < 5; i++ {
		assert.Empty(t, r.Poll(nil, dt))
	}
	assert.Equal(t, gesture.StateBegan, r.State())

	src.Move(0, 40)
	events = r.Poll(nil, dt)
	require.Len(t, events, 1)
	assert.Equal(t, gesture.StateChanged, events[0].State)
	assert.Greater(t, events[0].Velocity.Y, 0.0, "screen y grows downward")
}

func TestCancel(t *testing.T) {
	src := &gesture.ManualSource{}
	r := gesture.NewRecognizer(src)

	_, ok := r.Cancel()
	assert.False(t, ok, "nothing to cancel")

	src.Press(0, 0)
	r.Poll(nil, dt)
	src.Move(50, 0)
	r.Poll(nil, dt)

	ev, ok := r.Cancel()
	require.True(t, ok)
	assert.Equal(t, gesture.StateCancelled, ev.State)
	assert.Equal(t, gesture.Point{X: 50}, ev.Translation)

	src.Move(80, 0)
	assert.Empty(t, r.Poll(nil, dt), "cancelled gesture stays quiet until release")
	src.Release()
	assert.Empty(t, r.Poll(nil, dt))

	src.Press(0, 0)
	r.Poll(nil, dt)
	src.Move(0, 20)
	events := r.Poll(nil, dt)
	assert.Equal(t, []gesture.State{gesture.StateBegan}, states(events))
}

func TestCustomHysteresis(t *testing.T) {
	src := &gesture.ManualSource{}
	r := gesture.NewRecognizer(src)
	r.Hysteresis = 0

	src.Press(10, 10)
	r.Poll(nil, dt)
	events := r.Poll(nil, dt)
	assert.Equal(t, []gesture.State{gesture.StateBegan}, states(events))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Changed", gesture.StateChanged.String())
	assert.Equal(t, "State(9)", gesture.State(9).String())
}
