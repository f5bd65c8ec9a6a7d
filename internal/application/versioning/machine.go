package versioning

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State is a resolution step.
type State string

// Resolution states.
const (
	StateInit             State = "init"
	StateSyncedOrSkipped  State = "synced_or_skipped"
	StateBaselineResolved State = "baseline_resolved"
	StateClassified       State = "classified"
	StateComputed         State = "computed"
	StateEmitted          State = "emitted"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Event names for the state machine.
const (
	EventSync     statekit.EventType = "SYNC"
	EventResolve  statekit.EventType = "RESOLVE"
	EventClassify statekit.EventType = "CLASSIFY"
	EventCompute  statekit.EventType = "COMPUTE"
	EventEmit     statekit.EventType = "EMIT"
	EventFinish   statekit.EventType = "FINISH"
	EventFail     statekit.EventType = "FAIL"
)

// runContext is the machine context. Transitions are driven by the
// resolver, so it carries nothing.
type runContext struct{}

// runMachine wraps the statekit interpreter and records visited states.
type runMachine struct {
	interpreter *statekit.Interpreter[runContext]
	trace       []State
}

func sid(s State) statekit.StateID {
	return statekit.StateID(s)
}

// newRunMachine builds the resolution machine. Every non-final state can fail.
func newRunMachine() (*runMachine, error) {
	machine, err := statekit.NewMachine[runContext]("next-version").
		WithInitial(sid(StateInit)).
		State(sid(StateInit)).
		On(EventSync).Target(sid(StateSyncedOrSkipped)).
		On(EventFail).Target(sid(StateFailed)).
		Done().
		State(sid(StateSyncedOrSkipped)).
		On(EventResolve).Target(sid(StateBaselineResolved)).
		On(EventFail).Target(sid(StateFailed)).
		Done().
		State(sid(StateBaselineResolved)).
		On(EventClassify).Target(sid(StateClassified)).
		On(EventFail).Target(sid(StateFailed)).
		Done().
		State(sid(StateClassified)).
		On(EventCompute).Target(sid(StateComputed)).
		On(EventFail).Target(sid(StateFailed)).
		Done().
		State(sid(StateComputed)).
		On(EventEmit).Target(sid(StateEmitted)).
		On(EventFail).Target(sid(StateFailed)).
		Done().
		State(sid(StateEmitted)).
		On(EventFinish).Target(sid(StateDone)).
		On(EventFail).Target(sid(StateFailed)).
		Done().
		State(sid(StateDone)).
		Final().
		Done().
		State(sid(StateFailed)).
		Final().
		Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	m := &runMachine{interpreter: statekit.NewInterpreter(machine)}
	m.interpreter.Start()
	m.trace = append(m.trace, m.current())
	return m, nil
}

func (m *runMachine) current() State {
	return State(m.interpreter.State().Value)
}

// send fires an event and checks that the machine reached want.
func (m *runMachine) send(event statekit.EventType, want State) error {
	from := m.current()
	m.interpreter.Send(statekit.Event{Type: event})
	if got := m.current(); got != want {
		return fmt.Errorf("invalid transition %s on %s: in %s, want %s", from, event, got, want)
	}
	m.trace = append(m.trace, want)
	return nil
}

// fail moves the machine to StateFailed unless it already is final.
func (m *runMachine) fail() {
	if m.interpreter.Done() {
		return
	}
	_ = m.send(EventFail, StateFailed)
}

// Trace returns the states visited so far.
func (m *runMachine) Trace() []State {
	return append([]State(nil), m.trace...)
}
