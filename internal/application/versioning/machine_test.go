package versioning

import (
	"testing"

	"github.com/felixgeelhaar/statekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMachine_HappyPath(t *testing.T) {
	m, err := newRunMachine()
	require.NoError(t, err)
	assert.Equal(t, StateInit, m.current())

	steps := []struct {
		event statekit.EventType
		want  State
	}{
		{EventSync, StateSyncedOrSkipped},
		{EventResolve, StateBaselineResolved},
		{EventClassify, StateClassified},
		{EventCompute, StateComputed},
		{EventEmit, StateEmitted},
		{EventFinish, StateDone},
	}
	for _, s := range steps {
		require.NoError(t, m.send(s.event, s.want), string(s.event))
	}
	assert.Equal(t, fullTrace, m.Trace())

	m.fail()
	assert.Equal(t, StateDone, m.current(), "a finished run cannot fail")
}

func TestRunMachine_OutOfOrderEvent(t *testing.T) {
	m, err := newRunMachine()
	require.NoError(t, err)

	err = m.send(EventCompute, StateComputed)
	require.Error(t, err)
	assert.Equal(t, StateInit, m.current())
	assert.Equal(t, []State{StateInit}, m.Trace())
}

func TestRunMachine_FailFromEveryStep(t *testing.T) {
	for i := 0; i < len(fullTrace)-1; i++ {
		m, err := newRunMachine()
		require.NoError(t, err)

		events := []struct {
			event statekit.EventType
			want  State
		}{
			{EventSync, StateSyncedOrSkipped},
			{EventResolve, StateBaselineResolved},
			{EventClassify, StateClassified},
			{EventCompute, StateComputed},
			{EventEmit, StateEmitted},
		}
		for _, e := range events[:i] {
			require.NoError(t, m.send(e.event, e.want))
		}

		m.fail()
		trace := m.Trace()
		assert.Equal(t, StateFailed, trace[len(trace)-1])
		assert.Len(t, trace, i+2)
	}
}

func TestRunMachine_TraceIsCopy(t *testing.T) {
	m, err := newRunMachine()
	require.NoError(t, err)

	trace := m.Trace()
	trace[0] = StateFailed
	assert.Equal(t, StateInit, m.Trace()[0])
}
