package hsm

// EventLogger is called before a handler receives an event, with the index of the machine in the dispatched list.
type EventLogger[S, E ~uint] func(machine int, state S, event E)

// ResultLogger is called after a handler returns, with the state the machine is in afterwards.
type ResultLogger[S ~uint] func(state S, result Result)

// Tracer observes dispatching through both hooks.
type Tracer[S, E ~uint] interface {
	Event(machine int, state S, event E)
	Result(state S, result Result)
}

type hooks[S, E ~uint] struct {
	event  []EventLogger[S, E]
	result []ResultLogger[S]
}

func (h *hooks[S, E]) logEvent(machine int, state S, event E) {
	for _, l := range h.event {
		l(machine, state, event)
	}
}

func (h *hooks[S, E]) logResult(state S, result Result) {
	for _, l := range h.result {
		l(state, result)
	}
}

// Option configures a dispatcher. A dispatcher built without options has logging compiled out: it holds no hooks and
// calls nothing around the handlers.
type Option[S, E ~uint] func(*hooks[S, E])

// WithEventLogger adds a hook called before every handler invocation.
func WithEventLogger[S, E ~uint](l EventLogger[S, E]) Option[S, E] {
	return func(h *hooks[S, E]) {
		h.event = append(h.event, l)
	}
}

// WithResultLogger adds a hook called after every handler invocation.
func WithResultLogger[S, E ~uint](l ResultLogger[S]) Option[S, E] {
	return func(h *hooks[S, E]) {
		h.result = append(h.result, l)
	}
}

// WithTracer adds both hooks of t.
func WithTracer[S, E ~uint](t Tracer[S, E]) Option[S, E] {
	return func(h *hooks[S, E]) {
		h.event = append(h.event, t.Event)
		h.result = append(h.result, t.Result)
	}
}

// Dispatcher delivers pending events to a list of machines.
//
// Machines are scanned in order. Every time a handler consumes an event the scan restarts at the first machine, so
// machines earlier in the list take priority: a machine that keeps posting events to itself starves the machines
// after it. Dispatch returns EventHandled once no machine has a pending event. It stops early, leaving the remaining
// machines untouched, when an event cannot be handled or a handler returns a custom result code.
type Dispatcher[S, E ~uint, D any] interface {
	Dispatch(machines ...*Machine[S, E, D]) Result
}

// Hierarchical is the dispatcher for hierarchical machines. An event declined by a state is offered to its ancestors,
// innermost first, skipping ancestors without a handler. Dispatch fails with EventUnhandled once a top-level state
// declines it.
type Hierarchical[S, E ~uint, D any] struct {
	hooks hooks[S, E]
}

// NewDispatcher creates a hierarchical dispatcher.
func NewDispatcher[S, E ~uint, D any](opts ...Option[S, E]) *Hierarchical[S, E, D] {
	d := &Hierarchical[S, E, D]{}
	for _, opt := range opts {
		opt(&d.hooks)
	}
	return d
}

// Dispatch delivers the pending events of machines.
func (d *Hierarchical[S, E, D]) Dispatch(machines ...*Machine[S, E, D]) Result {
	return dispatch[S, E, D, bubbling[S, E, D]](machines, &d.hooks)
}

// Flat is the dispatcher for flat machines. Parents are ignored, and an event declined by the current state fails the
// dispatch with EventUnhandled.
type Flat[S, E ~uint, D any] struct {
	hooks hooks[S, E]
}

// NewFlatDispatcher creates a flat dispatcher.
func NewFlatDispatcher[S, E ~uint, D any](opts ...Option[S, E]) *Flat[S, E, D] {
	d := &Flat[S, E, D]{}
	for _, opt := range opts {
		opt(&d.hooks)
	}
	return d
}

// Dispatch delivers the pending events of machines.
func (d *Flat[S, E, D]) Dispatch(machines ...*Machine[S, E, D]) Result {
	return dispatch[S, E, D, noBubbling[S, E, D]](machines, &d.hooks)
}

// DispatchEvent delivers the pending events of machines with a hierarchical dispatcher and no hooks.
func DispatchEvent[S, E ~uint, D any](machines ...*Machine[S, E, D]) Result {
	var h hooks[S, E]
	return dispatch[S, E, D, bubbling[S, E, D]](machines, &h)
}

// policy decides where a declined event goes next. A nil state means nowhere.
type policy[S, E ~uint, D any] interface {
	next(s *State[S, E, D]) *State[S, E, D]
}

type bubbling[S, E ~uint, D any] struct{}

func (bubbling[S, E, D]) next(s *State[S, E, D]) *State[S, E, D] {
	for s = s.parent; s != nil && !s.HasHandler(); s = s.parent {
	}
	return s
}

type noBubbling[S, E ~uint, D any] struct{}

func (noBubbling[S, E, D]) next(*State[S, E, D]) *State[S, E, D] {
	return nil
}

func dispatch[S, E ~uint, D any, P policy[S, E, D]](machines []*Machine[S, E, D], h *hooks[S, E]) Result {
	var p P
	for i := 0; i < len(machines); {
		m := machines[i]
		if m.event == 0 {
			i++
			continue
		}

		state := m.state
		if !state.HasHandler() {
			if state = p.next(state); state == nil {
				return EventUnhandled
			}
		}

		var result Result
		for {
			h.logEvent(i, state.id, m.event)
			result = state.handler.Run(m)
			h.logResult(m.state.id, result)
			if result != EventUnhandled {
				break
			}
			if state = p.next(state); state == nil {
				return EventUnhandled
			}
		}

		switch result {
		case EventHandled:
			m.event = 0
			i = 0
		case TriggeredToSelf:
			i = 0
		default:
			return result
		}
	}
	return EventHandled
}
