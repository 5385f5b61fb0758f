package hsm

import (
	"fmt"
	"strings"
)

// State is an immutable state descriptor. It is created by a topology builder and lives as long as its Topology.
// Parent and child are non-owning references into the same Topology.
type State[S, E ~uint, D any] struct {
	id      S
	entry   Action[S, E, D]
	handler Action[S, E, D]
	exit    Action[S, E, D]
	parent  *State[S, E, D]
	child   *State[S, E, D]
	level   uint
}

// ID returns the identifier of the state.
func (s *State[S, E, D]) ID() S {
	return s.id
}

// Parent returns the enclosing composite state, or nil for a top-level state.
func (s *State[S, E, D]) Parent() *State[S, E, D] {
	return s.parent
}

// Child returns the default sub-state of a composite state, or nil for a leaf state. The engine never enters it
// automatically.
func (s *State[S, E, D]) Child() *State[S, E, D] {
	return s.child
}

// Level returns the depth of the state. Top-level states are at level 0.
func (s *State[S, E, D]) Level() uint {
	return s.level
}

// IsComposite reports whether the state encloses sub-states.
func (s *State[S, E, D]) IsComposite() bool {
	return s.child != nil
}

// HasHandler reports whether the state has a do action.
func (s *State[S, E, D]) HasHandler() bool {
	return !isNoAction(s.handler)
}

func (s *State[S, E, D]) String() string {
	return fmt.Sprintf("%v", s.id)
}

type topologyBuilder[S, E ~uint, D any] struct {
	stateCount    uint
	stateBuilders []*stateBuilder[S, E, D]
}

// NewTopologyBuilder creates a builder for a topology of numStates states, identified by S(0) to S(numStates-1).
func NewTopologyBuilder[S, E ~uint, D any](numStates uint) *topologyBuilder[S, E, D] {
	if numStates == 0 {
		panic("number of states must be greater than zero")
	}
	return &topologyBuilder[S, E, D]{
		stateCount: numStates,
	}
}

// State begins the definition of a state. A state may be defined in several steps; later definitions only override
// what they set.
func (b *topologyBuilder[S, E, D]) State(state S) *stateBuilder[S, E, D] {
	if uint(state) >= b.stateCount {
		panic(fmt.Sprintf("state (%v) is out of range, the topology has %d states", state, b.stateCount))
	}
	sb := &stateBuilder[S, E, D]{
		state: state,
	}
	b.stateBuilders = append(b.stateBuilders, sb)
	return sb
}

// Build finalizes the topology. It panics if the hierarchy is inconsistent: a cycle in the parent chain, a child that
// does not name its composite state as parent, or a state nested deeper than MaxDepth allows.
func (b *topologyBuilder[S, E, D]) Build() *Topology[S, E, D] {
	states := make([]State[S, E, D], b.stateCount)
	for i := range states {
		states[i] = State[S, E, D]{
			id:      S(i),
			entry:   NoAction[S, E, D]{},
			handler: NoAction[S, E, D]{},
			exit:    NoAction[S, E, D]{},
		}
	}

	for _, sb := range b.stateBuilders {
		sb.done(states)
	}
	b.stateBuilders = nil

	for i := range states {
		child := states[i].child
		if child == nil {
			continue
		}
		if child.parent != &states[i] {
			panic(fmt.Sprintf("child state (%v) must have state (%v) as its parent", child.id, states[i].id))
		}
	}

	var depth uint
	for i := range states {
		var level uint
		for p := states[i].parent; p != nil; p = p.parent {
			level++
			if level >= b.stateCount {
				panic(fmt.Sprintf("parent chain of state (%v) contains a cycle", states[i].id))
			}
			if level >= MaxDepth {
				panic(fmt.Sprintf("state (%v) is at level %d, the maximum supported depth is %d", states[i].id, level, MaxDepth))
			}
		}
		states[i].level = level
		depth = max(depth, level)
	}

	return &Topology[S, E, D]{
		states: states,
		depth:  depth,
	}
}

type stateBuilder[S, E ~uint, D any] struct {
	state       S
	entry       ActionFunc[S, E, D]
	handler     ActionFunc[S, E, D]
	exit        ActionFunc[S, E, D]
	parent      S
	isParentSet bool
	child       S
	isChildSet  bool
}

// OnEntry sets the entry action of the state.
func (sb *stateBuilder[S, E, D]) OnEntry(action ActionFunc[S, E, D]) *stateBuilder[S, E, D] {
	sb.entry = action
	return sb
}

// Handle sets the do action of the state, which receives the events dispatched to it.
func (sb *stateBuilder[S, E, D]) Handle(action ActionFunc[S, E, D]) *stateBuilder[S, E, D] {
	sb.handler = action
	return sb
}

// OnExit sets the exit action of the state.
func (sb *stateBuilder[S, E, D]) OnExit(action ActionFunc[S, E, D]) *stateBuilder[S, E, D] {
	sb.exit = action
	return sb
}

// Parent sets the enclosing composite state.
func (sb *stateBuilder[S, E, D]) Parent(state S) *stateBuilder[S, E, D] {
	sb.parent = state
	sb.isParentSet = true
	return sb
}

// Child sets the default sub-state of a composite state.
//
// NOTE: The child MUST have this state as its parent. Otherwise, the call to build the topology will panic.
func (sb *stateBuilder[S, E, D]) Child(state S) *stateBuilder[S, E, D] {
	sb.child = state
	sb.isChildSet = true
	return sb
}

func (sb *stateBuilder[S, E, D]) done(states []State[S, E, D]) {
	s := &states[sb.state]
	if sb.entry != nil {
		s.entry = sb.entry
	}
	if sb.handler != nil {
		s.handler = sb.handler
	}
	if sb.exit != nil {
		s.exit = sb.exit
	}
	if sb.isParentSet {
		if uint(sb.parent) >= uint(len(states)) || sb.parent == sb.state {
			panic(fmt.Sprintf("invalid parent state (%v) for state (%v)", sb.parent, sb.state))
		}
		s.parent = &states[sb.parent]
	}
	if sb.isChildSet {
		if uint(sb.child) >= uint(len(states)) || sb.child == sb.state {
			panic(fmt.Sprintf("invalid child state (%v) for state (%v)", sb.child, sb.state))
		}
		s.child = &states[sb.child]
	}
}

// Topology is the immutable set of state descriptors of one kind of state machine. It is safe to share between
// goroutines and between any number of machines.
type Topology[S, E ~uint, D any] struct {
	states []State[S, E, D]
	depth  uint
}

// State returns the descriptor of the given state.
func (t *Topology[S, E, D]) State(id S) *State[S, E, D] {
	return &t.states[id]
}

// Len returns the number of states in the topology.
func (t *Topology[S, E, D]) Len() int {
	return len(t.states)
}

// Depth returns the level of the deepest state.
func (t *Topology[S, E, D]) Depth() uint {
	return t.depth
}

// MermaidJSDiagram returns a state diagram in Mermaid.js syntax showing the state hierarchy.
func (t *Topology[S, E, D]) MermaidJSDiagram() string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	for i := range t.states {
		if t.states[i].parent == nil {
			t.writeMermaidState(&sb, &t.states[i], 1)
		}
	}
	return sb.String()
}

func (t *Topology[S, E, D]) writeMermaidState(sb *strings.Builder, s *State[S, E, D], depth int) {
	indent := strings.Repeat("    ", depth)
	var children []*State[S, E, D]
	for i := range t.states {
		if t.states[i].parent == s {
			children = append(children, &t.states[i])
		}
	}
	if len(children) == 0 {
		fmt.Fprintf(sb, "%s%v\n", indent, s.id)
		return
	}
	fmt.Fprintf(sb, "%sstate %v {\n", indent, s.id)
	if s.child != nil {
		fmt.Fprintf(sb, "%s    [*] --> %v\n", indent, s.child.id)
	}
	for _, c := range children {
		t.writeMermaidState(sb, c, depth+1)
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}
