package hsm

import "fmt"

type optional[A any] struct {
	value A
	valid bool
}

type result[A any] struct {
	optional optional[A]
	panicked bool
}

// unarySupplierFunc is a function that doesn't take any arguments and returns a value of type R.
type unarySupplierFunc[R any] func() R

func tryUnarySupplier[R any](supply unarySupplierFunc[R]) (res result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res.panicked = true
		}
	}()
	got := supply()
	res.optional = optional[R]{value: got, valid: true}
	return
}

// States of the test topology:
//
//	root           other
//	├── a
//	│   └── a1
//	│       └── a11
//	└── b
//	    └── b1
//	        └── b11
const (
	root state = iota
	a
	a1
	a11
	b
	b1
	b11
	other
	numStates
)

const (
	_ event = iota
	goEvent
	backEvent
	pingEvent
)

type state uint

func (s state) String() string {
	switch s {
	case root:
		return "root"
	case a:
		return "a"
	case a1:
		return "a1"
	case a11:
		return "a11"
	case b:
		return "b"
	case b1:
		return "b1"
	case b11:
		return "b11"
	case other:
		return "other"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

type event uint

func (e event) String() string {
	switch e {
	case goEvent:
		return "go"
	case backEvent:
		return "back"
	case pingEvent:
		return "ping"
	default:
		return fmt.Sprintf("event(%d)", e)
	}
}

// recorder is the machine data of the tests. Machines created with sibling share one call log.
type recorder struct {
	name  string
	calls *[]string
}

func newRecorder(name string) *recorder {
	return &recorder{name: name, calls: new([]string)}
}

func (r *recorder) sibling(name string) *recorder {
	return &recorder{name: name, calls: r.calls}
}

func (r *recorder) add(call string) {
	*r.calls = append(*r.calls, call)
}

func (r *recorder) log() []string {
	return *r.calls
}

type (
	testMachine  = Machine[state, event, *recorder]
	testAction   = ActionFunc[state, event, *recorder]
	testTopology = Topology[state, event, *recorder]
)

// record returns an action that logs call and returns res.
func record(call string, res Result) testAction {
	return func(m *testMachine) Result {
		m.Data.add(call)
		return res
	}
}

// newTestTopology builds the test hierarchy with recording entry and exit actions. Actions in overrides replace the
// recording ones; handlers are only set through overrides.
func newTestTopology(overrides map[string]testAction) *testTopology {
	builder := NewTopologyBuilder[state, event, *recorder](uint(numStates))
	builder.State(a).Parent(root)
	builder.State(a1).Parent(a)
	builder.State(a11).Parent(a1)
	builder.State(b).Parent(root)
	builder.State(b1).Parent(b)
	builder.State(b11).Parent(b1)
	builder.State(root).Child(a)

	for s := root; s < numStates; s++ {
		entry := record(s.String()+".entry", EventHandled)
		if fn, ok := overrides[s.String()+".entry"]; ok {
			entry = fn
		}
		exit := record(s.String()+".exit", EventHandled)
		if fn, ok := overrides[s.String()+".exit"]; ok {
			exit = fn
		}
		sb := builder.State(s).OnEntry(entry).OnExit(exit)
		if fn, ok := overrides[s.String()+".handle"]; ok {
			sb.Handle(fn)
		}
	}
	return builder.Build()
}
