// Package hsm provides a small, allocation-free hierarchical state machine (HSM) dispatch engine for Go.
//
// Features:
//   - Static state topologies built once with a fluent builder and never mutated afterwards.
//   - Entry, do (handler) and exit actions per state.
//   - Event bubbling from a state to its ancestors when the state declines an event.
//   - Hierarchical transitions with UML statechart exit/entry ordering.
//   - Zero-allocation dispatch and traversal with a bounded, build-time maximum nesting depth.
//   - Hierarchical and flat dispatcher profiles behind one Dispatcher interface.
//
// Usage:
//
//	// Define your states and events as custom types. Event code 0 is reserved for "no event".
//	type State uint
//	type Event uint
//
//	// Describe the topology.
//	builder := hsm.NewTopologyBuilder[State, Event, *MyData](numStates)
//	builder.State(Idle).OnEntry(...).Handle(...).OnExit(...)
//	builder.State(Running).Parent(Active)
//	top := builder.Build()
//
//	// Create machine instances and post events to them.
//	m := hsm.NewMachine(top.State(Idle), data)
//	m.Post(Start)
//
//	// Dispatch all pending events.
//	if hsm.DispatchEvent(m) == hsm.EventUnhandled {
//		// ...
//	}
//
// Handlers move a machine with SwitchState (same parent) or TraverseState (any two states).
package hsm

import (
	"errors"
	"fmt"
)

// Result is the outcome of a state action. Values other than the three predefined codes are custom codes, which the
// engine treats as fatal and propagates unchanged to the caller.
type Result uint8

const (
	// EventHandled reports that the event was consumed.
	EventHandled Result = iota
	// EventUnhandled reports that the state declined the event.
	EventUnhandled
	// TriggeredToSelf reports that the event was consumed and a new event was posted to the same machine.
	TriggeredToSelf
)

var (
	ErrEventUnhandled = errors.New("event unhandled")
	ErrUnknownResult  = errors.New("unknown result")
)

func (r Result) String() string {
	switch r {
	case EventHandled:
		return "handled"
	case EventUnhandled:
		return "unhandled"
	case TriggeredToSelf:
		return "triggered to self"
	default:
		return fmt.Sprintf("result(%d)", uint8(r))
	}
}

// IsCustom reports whether r is outside the predefined result codes.
func (r Result) IsCustom() bool {
	return r > TriggeredToSelf
}

// Err converts the result into an error. Successful results return nil.
func (r Result) Err() error {
	switch r {
	case EventHandled, TriggeredToSelf:
		return nil
	case EventUnhandled:
		return ErrEventUnhandled
	default:
		return &ResultError{Code: r}
	}
}

// ResultError carries a custom result code returned by a state action.
type ResultError struct {
	Code Result
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("state action returned %v", e.Code)
}

func (e *ResultError) Unwrap() error {
	return ErrUnknownResult
}

// Action is a capability slot of a state: entry, handler or exit.
type Action[S, E ~uint, D any] interface {
	Run(m *Machine[S, E, D]) Result
}

// ActionFunc adapts an ordinary function to the Action interface.
type ActionFunc[S, E ~uint, D any] func(m *Machine[S, E, D]) Result

// Run calls f(m).
func (f ActionFunc[S, E, D]) Run(m *Machine[S, E, D]) Result {
	return f(m)
}

// NoAction is the absent action. It does nothing and reports EventHandled, so missing entry and exit actions are
// skipped. A state whose handler is NoAction never receives events; the dispatcher moves on to its parent instead.
type NoAction[S, E ~uint, D any] struct{}

// Run returns EventHandled.
func (NoAction[S, E, D]) Run(*Machine[S, E, D]) Result {
	return EventHandled
}

func isNoAction[S, E ~uint, D any](a Action[S, E, D]) bool {
	_, ok := a.(NoAction[S, E, D])
	return ok
}
