package hsm

import "fmt"

// Sizing is the sizing policy of the traversal path buffer.
type Sizing uint8

const (
	// SizeExact bounds the path by the level of the target state.
	SizeExact Sizing = iota
	// SizeFixed bounds the path by MaxDepth.
	SizeFixed
)

// sequence runs state actions in order and remembers whether any of them triggered a new event.
type sequence[S, E ~uint, D any] struct {
	m         *Machine[S, E, D]
	triggered bool
}

// run executes the action. It returns false, together with the offending result, when the action returned a code
// that must abort the sequence.
func (q *sequence[S, E, D]) run(action Action[S, E, D]) (Result, bool) {
	result := action.Run(q.m)
	switch result {
	case TriggeredToSelf:
		q.triggered = true
		return result, true
	case EventHandled:
		return result, true
	default:
		return result, false
	}
}

func (q *sequence[S, E, D]) result() Result {
	if q.triggered {
		return TriggeredToSelf
	}
	return EventHandled
}

// pathStack records the target branch of a traversal so its entry actions can run top-down once all exits are done.
type pathStack[S, E ~uint, D any] struct {
	items [MaxDepth]*State[S, E, D]
	n     int
	limit int
}

func (p *pathStack[S, E, D]) reset(target *State[S, E, D]) {
	p.n = 0
	p.limit = MaxDepth
	if PathSizing == SizeExact {
		p.limit = int(target.level)
	}
}

func (p *pathStack[S, E, D]) push(s *State[S, E, D]) {
	if p.n >= p.limit {
		panic(fmt.Sprintf("traversal path overflow at state (%v): capacity %d, maximum depth %d", s.id, p.limit, MaxDepth))
	}
	p.items[p.n] = s
	p.n++
}

func (p *pathStack[S, E, D]) pop() (*State[S, E, D], bool) {
	if p.n == 0 {
		return nil, false
	}
	p.n--
	return p.items[p.n], true
}

// SwitchState moves the machine to a target state that shares the parent of the current state. The machine points at
// the target before any action runs. The exit action of the current state runs first, then the entry action of the
// target.
//
// It returns TriggeredToSelf if either action did, otherwise EventHandled. If an action returns any other code, the
// remaining action is skipped and that code is returned.
func SwitchState[S, E ~uint, D any](m *Machine[S, E, D], target *State[S, E, D]) Result {
	source := m.state
	m.state = target

	seq := sequence[S, E, D]{m: m}
	if result, ok := seq.run(source.exit); !ok {
		return result
	}
	if result, ok := seq.run(target.entry); !ok {
		return result
	}
	return seq.result()
}

// TraverseState moves the machine to any target state of the topology. The machine points at the target before any
// action runs. Exit actions run from the current state up to the child of the least common ancestor, then entry
// actions run from the ancestor's child on the target branch down to the target.
//
// Results follow SwitchState: an action returning a code other than EventHandled or TriggeredToSelf stops the
// traversal where it is and that code is returned.
func TraverseState[S, E ~uint, D any](m *Machine[S, E, D], target *State[S, E, D]) Result {
	source := m.state
	m.state = target

	var path pathStack[S, E, D]
	path.reset(target)
	seq := sequence[S, E, D]{m: m}

	// Bring source and target to the same level.
	for source.level > target.level {
		if result, ok := seq.run(source.exit); !ok {
			return result
		}
		source = source.parent
	}
	for source.level < target.level {
		path.push(target)
		target = target.parent
	}

	// Climb together until both share a parent. Two top-level states share the nil parent.
	for source.parent != target.parent {
		if result, ok := seq.run(source.exit); !ok {
			return result
		}
		source = source.parent

		path.push(target)
		target = target.parent
	}

	if result, ok := seq.run(source.exit); !ok {
		return result
	}
	if result, ok := seq.run(target.entry); !ok {
		return result
	}

	for {
		s, ok := path.pop()
		if !ok {
			break
		}
		if result, ok := seq.run(s.entry); !ok {
			return result
		}
	}
	return seq.result()
}
