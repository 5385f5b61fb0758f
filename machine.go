package hsm

import "slices"

// Machine is a running state machine instance. It holds the pending event, the innermost active state and the caller's
// data. A Machine is not safe for concurrent use; callers serialize posting and dispatching.
type Machine[S, E ~uint, D any] struct {
	event E
	state *State[S, E, D]
	// Data is the caller's extended state, available to every action.
	Data D
}

// NewMachine creates a machine in the initial state with no pending event.
func NewMachine[S, E ~uint, D any](initial *State[S, E, D], data D) *Machine[S, E, D] {
	m := &Machine[S, E, D]{Data: data}
	m.Init(initial)
	return m
}

// Init moves the machine to the initial state, without running any action, and clears the pending event.
func (m *Machine[S, E, D]) Init(initial *State[S, E, D]) {
	if initial == nil {
		panic("initial state must not be nil")
	}
	m.state = initial
	m.event = 0
}

// State returns the innermost active state.
func (m *Machine[S, E, D]) State() *State[S, E, D] {
	return m.state
}

// Event returns the pending event, or 0 if there is none.
func (m *Machine[S, E, D]) Event() E {
	return m.event
}

// Pending reports whether an event waits to be dispatched.
func (m *Machine[S, E, D]) Pending() bool {
	return m.event != 0
}

// Post sets the pending event, replacing any previous one. Event code 0 is reserved.
func (m *Machine[S, E, D]) Post(event E) {
	if event == 0 {
		panic("event code 0 is reserved for no event")
	}
	m.event = event
}

// Clear drops the pending event.
func (m *Machine[S, E, D]) Clear() {
	m.event = 0
}

// ActiveHierarchy returns the active state and its ancestors, innermost first.
func (m *Machine[S, E, D]) ActiveHierarchy() []S {
	var hierarchy [MaxDepth]S
	i := m.readHierarchy(&hierarchy)
	out := hierarchy[:i]
	return out
}

// IsIn checks if the machine is in the given state, either directly or through one of its sub-states.
func (m *Machine[S, E, D]) IsIn(state S) bool {
	var hierarchy [MaxDepth]S
	i := m.readHierarchy(&hierarchy)
	return slices.Contains(hierarchy[:i], state)
}

func (m *Machine[S, E, D]) readHierarchy(hierarchy *[MaxDepth]S) int {
	i := 0
	for next := m.state; next != nil && i < MaxDepth; i++ {
		(*hierarchy)[i] = next.id
		next = next.parent
	}
	return i
}
